// Package diag defines the diagnostic and error value types shared by every
// compiler phase. No phase panics or uses exceptions for user-facing
// failures; every phase returns diagnostics as values, per the project's
// "diagnostics as values, not exceptions" convention.
package diag

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/oxhq/fabc/internal/token"
)

// Severity distinguishes a hard stop from an advisory note.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category names the taxonomy from which a diagnostic was raised.
type Category string

const (
	Lexical      Category = "lexical"
	Syntactic    Category = "syntactic"
	Semantic     Category = "semantic"
	Morphological Category = "morphological"
	Capability   Category = "capability"
	Resolution   Category = "resolution"
)

// Phase names the pipeline stage that produced a diagnostic, used to group
// diagnostics in pipeline order per the ordering guarantee.
type Phase string

const (
	PhaseTokenizer Phase = "tokenizer"
	PhaseMorphology Phase = "morphology"
	PhaseParser    Phase = "parser"
	PhaseSema      Phase = "sema"
	PhaseNorma     Phase = "norma"
	PhaseCodegen   Phase = "codegen"
	PhaseCLI       Phase = "cli-detector"
	PhaseCapability Phase = "capability"
)

var phaseOrder = map[Phase]int{
	PhaseTokenizer:  0,
	PhaseMorphology: 1,
	PhaseParser:     2,
	PhaseSema:       3,
	PhaseNorma:      4,
	PhaseCapability: 5,
	PhaseCodegen:    6,
	PhaseCLI:        7,
}

// Diagnostic is one surfaced problem: a position, a category, and a
// natural-language explanation. The compiler never lectures on Latin
// grammar beyond a single corrective hint derived from the actual input.
type Diagnostic struct {
	Severity Severity        `json:"severity"`
	Category Category        `json:"category"`
	Phase    Phase           `json:"phase"`
	Position token.Position  `json:"position"`
	Message  string          `json:"message"`
	Hint     string          `json:"hint,omitempty"`
	Fatal    bool            `json:"fatal"`
}

func (d Diagnostic) String() string {
	if d.Hint != "" {
		return fmt.Sprintf("%s: %s [%s] %s (did you mean %s?)", d.Position, d.Message, d.Category, string(d.Severity), d.Hint)
	}
	return fmt.Sprintf("%s: %s [%s] %s", d.Position, d.Message, d.Category, string(d.Severity))
}

// List is an ordered, append-only collection of diagnostics produced across
// the pipeline.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Errorf appends a non-fatal error diagnostic built from a format string.
func (l *List) Errorf(phase Phase, cat Category, pos token.Position, format string, args ...any) {
	l.Add(Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Phase:    phase,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Fatalf appends a fatal error diagnostic built from a format string.
func (l *List) Fatalf(phase Phase, cat Category, pos token.Position, format string, args ...any) {
	l.Add(Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Phase:    phase,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
		Fatal:    true,
	})
}

// Merge appends every diagnostic from other onto l, preserving phase
// provenance on each item.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// Items returns the diagnostics collected so far, in insertion order.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Len reports how many diagnostics have been collected.
func (l *List) Len() int { return len(l.items) }

// HasFatal reports whether any collected diagnostic is fatal. Codegen
// refuses to run when this is true.
func (l *List) HasFatal() bool {
	for _, d := range l.items {
		if d.Fatal {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by phase (pipeline order), then by source
// position within a phase, satisfying the ordering guarantee: diagnostics
// are emitted in source-position order per phase, grouped by phase in
// pipeline order.
func (l *List) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool {
		pi, pj := phaseOrder[l.items[i].Phase], phaseOrder[l.items[j].Phase]
		if pi != pj {
			return pi < pj
		}
		return l.items[i].Position.Less(l.items[j].Position)
	})
}

// CLIError is the uniform error payload used at the CLI boundary for both
// human and JSON output.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e CLIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// JSON renders the error as a JSON string, for --json CLI output.
func (e CLIError) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Error codes used at the CLI boundary.
const (
	ErrIO             = "ERR_IO"
	ErrUnsupportedTarget = "ERR_UNSUPPORTED_TARGET"
	ErrCompile        = "ERR_COMPILE"
	ErrConfig         = "ERR_CONFIG"
)

// Wrap builds a CLIError carrying code and msg, with inner's message as
// detail.
func Wrap(code, msg string, inner error) error {
	return CLIError{Code: code, Message: msg, Detail: inner.Error()}
}
