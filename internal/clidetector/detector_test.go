package clidetector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/parser"
	"github.com/oxhq/fabc/internal/tokenizer"
)

func parseSource(t *testing.T, file, src string) *ast.Program {
	t.Helper()
	toks, tokDiags := tokenizer.Tokenize(file, src)
	require.False(t, tokDiags.HasFatal())
	prog, parseDiags := parser.Parse(file, toks)
	require.False(t, parseDiags.HasFatal())
	return prog
}

const multiCommandSource = `
@cli "tool"
@version "1.0"
incipit {
}

@imperium "build"
functio build() {
}

@imperium "clean"
functio clean() {
}
`

func TestDetectMultiCommandTree(t *testing.T) {
	prog := parseSource(t, "tool.fab", multiCommandSource)

	tree, imports, diags := Detect("tool.fab", prog, nil)

	require.False(t, diags.HasFatal())
	require.NotNil(t, tree)
	assert.Empty(t, imports)
	assert.Equal(t, "tool", tree.Name)
	assert.Equal(t, "1.0", tree.Version)
	assert.Equal(t, "tool", tree.Description)
	assert.Equal(t, ModeMulti, tree.Mode)
	assert.Len(t, tree.Root.Children, 2)

	build, ok := tree.Root.Children["build"]
	require.True(t, ok)
	require.NotNil(t, build.Leaf)
	assert.Equal(t, "build", build.Leaf.FunctionName)

	clean, ok := tree.Root.Children["clean"]
	require.True(t, ok)
	require.NotNil(t, clean.Leaf)
	assert.Equal(t, "clean", clean.Leaf.FunctionName)
}

const singleCommandSource = `
@cli "tool"
@version "1.0"
incipit {
}
`

func TestDetectSingleCommandMode(t *testing.T) {
	prog := parseSource(t, "tool.fab", singleCommandSource)

	tree, _, diags := Detect("tool.fab", prog, nil)

	require.False(t, diags.HasFatal())
	require.NotNil(t, tree)
	assert.Equal(t, ModeSingle, tree.Mode)
	require.NotNil(t, tree.Root.Leaf)
	assert.Empty(t, tree.Root.Children)
}

const notACLISource = `
functio build() {
}
`

func TestDetectReturnsNilWhenNoCLIAnnotation(t *testing.T) {
	prog := parseSource(t, "plain.fab", notACLISource)

	tree, imports, diags := Detect("plain.fab", prog, nil)

	assert.Nil(t, tree)
	assert.Nil(t, imports)
	assert.False(t, diags.HasFatal())
}

const duplicateLeafSource = `
@cli "tool"
incipit {
}

@imperium "build"
functio buildOne() {
}

@imperium "build"
functio buildTwo() {
}
`

func TestDetectDuplicateCommandPathIsFatal(t *testing.T) {
	prog := parseSource(t, "tool.fab", duplicateLeafSource)

	tree, _, diags := Detect("tool.fab", prog, nil)

	require.NotNil(t, tree)
	assert.True(t, diags.HasFatal())

	items := diags.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "resolution", string(items[0].Category))
}

const aliasedLeafSource = `
@cli "tool"
incipit {
}

@imperium "build"
@alias "b"
functio build() {
}
`

func TestDetectLeafAlias(t *testing.T) {
	prog := parseSource(t, "tool.fab", aliasedLeafSource)

	tree, _, diags := Detect("tool.fab", prog, nil)

	require.False(t, diags.HasFatal())
	require.NotNil(t, tree)
	build, ok := tree.Root.Children["build"]
	require.True(t, ok)
	require.NotNil(t, build.Leaf)
	assert.Equal(t, "b", build.Leaf.Alias)
}
