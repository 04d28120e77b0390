package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oxhq/fabc/internal/norma"
)

// canonicalTarget is one target's translation entry inside canonical.yaml,
// mirroring norma.Entry's split between a §-template and a named generator
// function.
type canonicalTarget struct {
	Template string   `yaml:"template"`
	Func     string   `yaml:"func"`
	Headers  []string `yaml:"headers"`
}

type canonicalEntry struct {
	Collection string                     `yaml:"collection"`
	Method     string                     `yaml:"method"`
	Form       string                     `yaml:"form"`
	Stem       string                     `yaml:"stem"`
	Targets    map[string]canonicalTarget `yaml:"targets"`
}

type canonicalFile struct {
	Entries []canonicalEntry `yaml:"entries"`
}

func newNormaGenCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "norma-gen",
		Short: "Regenerate the per-target norma tables from canonical.yaml",
		Long: "Reads internal/norma/canonical.yaml and rewrites each target's\n" +
			"*_table.go, preserving any hand-written helper functions already\n" +
			"defined below the generated table in that file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormaGen(in, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "internal/norma/canonical.yaml", "canonical source file")
	cmd.Flags().StringVar(&out, "out", "internal/norma", "output directory for *_table.go")
	return cmd
}

func runNormaGen(in, out string) error {
	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("norma-gen: reading %s: %w", in, err)
	}

	var cf canonicalFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return fmt.Errorf("norma-gen: parsing %s: %w", in, err)
	}

	for _, target := range norma.AllTargets {
		if err := writeTargetTable(out, target, cf.Entries); err != nil {
			return err
		}
	}
	return writeRadixForms(out, cf.Entries)
}

// targetHeaderNotes carries target-specific explanatory comments that would
// otherwise have nowhere to live in a generated file, keyed by target name.
var targetHeaderNotes = map[string]string{
	norma.TargetZig: "//\n" +
		"// Templates containing the literal placeholder \"§A\" are allocator-aware:\n" +
		"// the Zig dispatcher substitutes it with the name on top of its\n" +
		"// allocator-name stack after Render, since Translation.Render only knows\n" +
		"// about the receiver and positional arguments.\n",
}

var targetVarNames = map[string]string{
	norma.TargetTS:  "tsTable",
	norma.TargetPy:  "pyTable",
	norma.TargetRs:  "rsTable",
	norma.TargetZig: "zigTable",
	norma.TargetGo:  "goTable",
	norma.TargetCpp: "cppTable",
}

// writeTargetTable rewrites <out>/<target>_table.go's generated header and
// table literal from entries, leaving any hand-written tail (helper
// functions referenced by a `func:` entry) exactly as found.
func writeTargetTable(out, target string, entries []canonicalEntry) error {
	path := filepath.Join(out, target+"_table.go")

	tail := existingTail(path)

	var b strings.Builder
	b.WriteString("package norma\n\n")
	b.WriteString("// Code generated by `fabc norma-gen` from canonical.yaml. DO NOT EDIT.\n")
	if note, ok := targetHeaderNotes[target]; ok {
		b.WriteString(note)
	}
	b.WriteString("\nvar " + targetVarNames[target] + " = Table{\n")

	lastCollection := ""
	for _, e := range entries {
		t, ok := e.Targets[target]
		if !ok {
			continue
		}
		if lastCollection != "" && lastCollection != e.Collection {
			b.WriteString("\n")
		}
		lastCollection = e.Collection

		b.WriteString("\t{Collection: \"" + e.Collection + "\", Method: \"" + e.Method + "\"}: ")
		writeEntryLiteral(&b, t)
	}
	b.WriteString("}\n")

	if tail != "" {
		b.WriteString("\n")
		b.WriteString(tail)
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeEntryLiteral(b *strings.Builder, t canonicalTarget) {
	translation := ""
	switch {
	case t.Func != "":
		translation = "FuncTranslation(" + t.Func + ")"
	default:
		translation = "Template(" + quoteGo(t.Template) + ")"
	}

	if len(t.Headers) == 0 {
		b.WriteString("{Translation: " + translation + "},\n")
		return
	}

	b.WriteString("{\n")
	b.WriteString("\t\tTranslation:     " + translation + ",\n")
	b.WriteString("\t\tRequiredHeaders: []string{" + quoteList(t.Headers) + "},\n")
	b.WriteString("\t},\n")
}

func quoteGo(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = quoteGo(it)
	}
	return strings.Join(quoted, ", ")
}

// existingTail returns the portion of an already-generated table file that
// follows the table literal's closing brace: hand-written helper functions
// the `func:` entries reference. Returns "" when the file doesn't exist yet
// or has no such tail.
func existingTail(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	marker := "\n}\n"
	idx := strings.Index(string(content), marker)
	if idx < 0 {
		return ""
	}
	rest := string(content)[idx+len(marker):]
	return strings.TrimLeft(rest, "\n")
}

// writeRadixForms rewrites radixforms.go with one row per entry that has a
// non-empty stem, carrying that entry's single form; rows are sorted by
// (collection, method).
func writeRadixForms(out string, entries []canonicalEntry) error {
	path := filepath.Join(out, "radixforms.go")

	type keyed struct {
		collection, method, stem string
		forms                    []string
	}
	var rows []keyed
	for _, e := range entries {
		if e.Stem == "" {
			continue
		}
		rows = append(rows, keyed{collection: e.Collection, method: e.Method, stem: e.Stem, forms: []string{e.Form}})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].collection != rows[j].collection {
			return rows[i].collection < rows[j].collection
		}
		return rows[i].method < rows[j].method
	})

	var b strings.Builder
	b.WriteString("package norma\n\n")
	b.WriteString("// sharedRadixForms is generated by `fabc norma-gen` from the `stem:` fields\n")
	b.WriteString("// of canonical.yaml.\n")
	if len(rows) == 0 {
		b.WriteString("var sharedRadixForms = RadixForms{}\n")
		return os.WriteFile(path, []byte(b.String()), 0o644)
	}

	b.WriteString("var sharedRadixForms = RadixForms{\n")
	for _, r := range rows {
		b.WriteString("\t{Collection: \"" + r.collection + "\", Method: \"" + r.method + "\"}: {Stem: " +
			quoteGo(r.stem) + ", Forms: []string{" + quoteList(r.forms) + "}},\n")
	}
	b.WriteString("}\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
