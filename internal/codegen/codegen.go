// Package codegen dispatches a fully-annotated AST to one of six target
// language emitters. Each target registers a Dispatcher from its own
// subpackage's init function, mirroring the teacher's lang.Register /
// lang.GetQueryForLanguage provider registry: a single consumer (Compile,
// in internal/compiler) resolves a target name to a concrete implementation
// without importing every target package by name.
package codegen

import (
	"fmt"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/sema"
)

// Dispatcher is implemented once per target language.
type Dispatcher interface {
	Target() string
	Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List)
}

// PackageNamer is implemented by dispatchers for which a package/module
// name is meaningful (only the Go target). Other dispatchers don't
// implement it; callers type-assert before using it.
type PackageNamer interface {
	SetPackageName(name string)
}

var dispatchers = make(map[string]Dispatcher)

// Register makes a Dispatcher available under its own Target() name. Called
// from each target subpackage's init function.
func Register(d Dispatcher) {
	if d == nil {
		panic("codegen.Register: dispatcher is nil")
	}
	name := d.Target()
	if _, dup := dispatchers[name]; dup {
		panic("codegen.Register: called twice for target " + name)
	}
	dispatchers[name] = d
}

// Get resolves a target name to its registered Dispatcher.
func Get(target string) (Dispatcher, error) {
	d, ok := dispatchers[target]
	if !ok {
		return nil, fmt.Errorf("codegen: unsupported target %q", target)
	}
	return d, nil
}

// Targets lists every currently registered target name.
func Targets() []string {
	names := make([]string, 0, len(dispatchers))
	for name := range dispatchers {
		names = append(names, name)
	}
	return names
}
