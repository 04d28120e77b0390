// Package clidetector implements the CLI command-tree detector: given a
// root program's AST and file path, it walks entry-point annotations and,
// when they declare the program a CLI, follows mount annotations across
// wildcard-imported submodules to assemble one command tree. It re-parses
// imported modules itself rather than sharing the semantic analyzer's symbol
// tables, keeping the CLI concern isolated from the type-checker, which is
// why it lives next to, not inside, internal/sema.
package clidetector

import "github.com/oxhq/fabc/internal/token"

// Operand is one positional argument declaration collected from an
// `@operandum` annotation on a leaf-command function.
type Operand struct {
	Name    string
	Type    string
	Rest    bool
	Default string
}

// Option is one `@optio` flag declaration on a leaf-command function.
type Option struct {
	Binding     string // internal binding name
	Short       string
	Long        string
	Type        string
	Description string
}

// Leaf carries the metadata the codegen-facing CLI dispatcher needs for
// one command: which function implements it, its declared operands and
// options, and (for a mounted submodule) the alias/module-prefix namespace
// it was pulled in under.
type Leaf struct {
	FunctionName  string
	Params        []string
	Operands      []Operand
	Options       []Option
	OptionsBundle string // name of a struct type bundling Options, if declared
	Alias         string
	ModulePrefix  string
	Description   string
}

// Node is one command-tree vertex: a group (Leaf == nil, Children
// populated) or a leaf command (Leaf != nil).
type Node struct {
	Name     string
	FullPath string
	Children map[string]*Node
	Leaf     *Leaf
	Position token.Position
}

func newNode(name, fullPath string) *Node {
	return &Node{Name: name, FullPath: fullPath, Children: map[string]*Node{}}
}

// Mode reports whether this tree is a single-command program (the root IS
// the command) or a multi-command tree. The two are mutually exclusive by
// construction: ModeSingle is set only when zero leaf-command annotations
// were found anywhere in the mount graph.
type Mode string

const (
	ModeSingle Mode = "single-command"
	ModeMulti  Mode = "multi-command"
)

// CommandTree is the detector's full result: program metadata plus the
// root of the command hierarchy.
type CommandTree struct {
	Name        string
	Version     string
	Description string
	Mode        Mode
	Root        *Node
}

// ModuleImport records one submodule the detector parsed while resolving
// mount annotations, returned alongside the command tree and any
// diagnostics collected.
type ModuleImport struct {
	Path  string
	Alias string
}
