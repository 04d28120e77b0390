package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/fabc/internal/compiler"
	"github.com/oxhq/fabc/internal/config"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/norma"
)

func newCompileCmd() *cobra.Command {
	var target, packageName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a Faber source file to one of six target languages",
		Long: "Compile reads a .fab source file (or stdin when no file is given),\n" +
			"runs it through the tokenizer, parser, semantic analyzer, and the\n" +
			"requested target's codegen dispatcher, and writes the emitted source\n" +
			"to stdout. Diagnostics are always written to stderr; --json switches\n" +
			"both streams to a single JSON envelope on stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, target, packageName, jsonOutput)
		},
	}

	defaults := config.Load()
	cmd.Flags().StringVarP(&target, "target", "t", defaults.DefaultTarget, "target language: "+targetList())
	cmd.Flags().StringVarP(&packageName, "package", "p", defaults.PackageName, "package/module name, meaningful only for the go target")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "emit a single JSON envelope (output, diagnostics, runID) instead of plain text")
	if defaults.DefaultTarget == "" {
		_ = cmd.MarkFlagRequired("target")
	}

	return cmd
}

func targetList() string {
	targets := norma.AllTargets
	out := ""
	for i, t := range targets {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

func runCompile(cmd *cobra.Command, args []string, target, packageName string, jsonOutput bool) error {
	file := "<stdin>"
	var source []byte
	var err error

	if len(args) == 1 {
		file = args[0]
		source, err = os.ReadFile(file)
		if err != nil {
			return diag.Wrap(diag.ErrIO, "reading "+file, err)
		}
	} else {
		source, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return diag.Wrap(diag.ErrIO, "reading stdin", err)
		}
	}

	res := compiler.Compile(file, string(source), compiler.Options{
		Target:      target,
		PackageName: packageName,
	})

	if jsonOutput {
		return printJSONResult(cmd.OutOrStdout(), res)
	}

	for _, d := range res.Diagnostics.Items() {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	if res.Diagnostics.HasFatal() {
		return diag.CLIError{Code: diag.ErrCompile, Message: "compilation failed"}
	}

	fmt.Fprint(cmd.OutOrStdout(), res.Output)
	return nil
}

type jsonResult struct {
	RunID       string            `json:"runId"`
	Output      string            `json:"output"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	Success     bool              `json:"success"`
}

func printJSONResult(w io.Writer, res compiler.Result) error {
	out := jsonResult{
		RunID:       res.RunID,
		Output:      res.Output,
		Diagnostics: res.Diagnostics.Items(),
		Success:     !res.Diagnostics.HasFatal(),
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return diag.Wrap(diag.ErrIO, "encoding JSON result", err)
	}
	if !out.Success {
		return diag.CLIError{Code: diag.ErrCompile, Message: "compilation failed"}
	}
	return nil
}
