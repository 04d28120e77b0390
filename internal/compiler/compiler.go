// Package compiler wires the in-process phases (tokenizer, parser, semantic
// analyzer, norma-driven codegen dispatcher) into the single entry point the
// CLI and tests call. Each compilation starts with a fresh tokenizer,
// parser, symbol table, dispatcher, and diagnostic list; nothing here
// persists across calls.
package compiler

import (
	"github.com/google/uuid"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/codegen"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/parser"
	"github.com/oxhq/fabc/internal/sema"
	"github.com/oxhq/fabc/internal/tokenizer"
)

// Options configures one Compile call. PackageName is meaningful only for
// the go target.
type Options struct {
	Target      string
	PackageName string
}

// Result is everything a caller needs out of a compilation: the emitted
// source (empty when any phase produced a fatal diagnostic), the full
// diagnostic list in pipeline order, and a RunID that distinguishes this
// invocation from any other in --json output.
type Result struct {
	RunID      string
	Output     string
	Diagnostics *diag.List
	Program    *ast.Program
}

// Compile runs source through tokenizer -> parser -> sema -> codegen for
// opts.Target, stopping before a later phase whenever the diagnostics
// collected so far carry a fatal entry.
func Compile(file, source string, opts Options) Result {
	res := Result{RunID: uuid.NewString(), Diagnostics: &diag.List{}}

	toks, tokDiags := tokenizer.Tokenize(file, source)
	res.Diagnostics.Merge(tokDiags)

	if res.Diagnostics.HasFatal() {
		res.Diagnostics.Sort()
		return res
	}

	prog, parseDiags := parser.Parse(file, toks)
	res.Diagnostics.Merge(parseDiags)
	res.Program = prog

	if res.Diagnostics.HasFatal() {
		res.Diagnostics.Sort()
		return res
	}

	ann, semaDiags := sema.Analyze(prog)
	res.Diagnostics.Merge(semaDiags)

	if res.Diagnostics.HasFatal() {
		// Non-fatal semantic diagnostics (undefined name, type mismatch,
		// ...) still let codegen produce best-effort output.
		res.Diagnostics.Sort()
		return res
	}

	dispatcher, err := codegen.Get(opts.Target)
	if err == nil {
		if namer, ok := dispatcher.(codegen.PackageNamer); ok {
			namer.SetPackageName(opts.PackageName)
		}
	}
	if err != nil {
		res.Diagnostics.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Category: diag.Capability,
			Phase:    diag.PhaseCapability,
			Position: prog.Position,
			Message:  err.Error(),
			Fatal:    true,
		})
		res.Diagnostics.Sort()
		return res
	}

	out, codegenDiags := dispatcher.Emit(prog, ann)
	res.Diagnostics.Merge(codegenDiags)
	res.Output = out
	res.Diagnostics.Sort()
	return res
}
