package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/tokenizer"
)

func parseSource(t *testing.T, src string) (*ast.Program, int) {
	t.Helper()
	toks, tokDiags := tokenizer.Tokenize("t.fab", src)
	require.Equal(t, 0, tokDiags.Len(), "unexpected tokenizer diagnostics")
	prog, diags := Parse("t.fab", toks)
	return prog, diags.Len()
}

func TestParseEmptySourceProducesEmptyProgram(t *testing.T) {
	prog, n := parseSource(t, "")
	assert.Equal(t, 0, n)
	assert.Empty(t, prog.Declarations)
}

func TestParseVariableDeclaration(t *testing.T) {
	prog, n := parseSource(t, `fixum xs = 1`)
	require.Equal(t, 0, n)
	require.Len(t, prog.Declarations, 1)
	v, ok := prog.Declarations[0].(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "xs", v.Name)
	assert.False(t, v.Mutable)
}

func TestParseMutableVariableDeclaration(t *testing.T) {
	prog, n := parseSource(t, `varia ys = 1`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	assert.True(t, v.Mutable)
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	prog, n := parseSource(t, `
functio greet(name: string) -> string {
	redde name;
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	assert.Equal(t, "greet", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "name", fn.Params[0].Name)
	require.Len(t, fn.Body.Statements, 1)
	ret, ok := fn.Body.Statements[0].(*ast.Return)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)
}

func TestParseAsyncFunction(t *testing.T) {
	prog, n := parseSource(t, `functio futura fetchData() { redde; }`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	assert.True(t, fn.Async)
}

func TestParseImportStatement(t *testing.T) {
	prog, n := parseSource(t, `ex "norma/tempus" importa nunc`)
	require.Equal(t, 0, n)
	imp := prog.Declarations[0].(*ast.Import)
	assert.Equal(t, "norma/tempus", imp.Path)
	assert.Contains(t, imp.Names, "nunc")
	assert.True(t, imp.IsIntrinsic())
}

func TestParseStructDeclaration(t *testing.T) {
	prog, n := parseSource(t, `
ordo Point {
	x: integer,
	y: integer,
}
`)
	require.Equal(t, 0, n)
	s := prog.Declarations[0].(*ast.Struct)
	assert.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "x", s.Fields[0].Name)
}

func TestParseTaggedUnionWithTagOnlyAndFieldVariants(t *testing.T) {
	prog, n := parseSource(t, `
discretio Event {
	Click { x: integer, y: integer },
	Quit,
}
`)
	require.Equal(t, 0, n)
	u := prog.Declarations[0].(*ast.TaggedUnion)
	require.Len(t, u.Variants, 2)
	assert.Equal(t, "Click", u.Variants[0].Name)
	assert.Len(t, u.Variants[0].Fields, 2)
	assert.Equal(t, "Quit", u.Variants[1].Name)
	assert.Empty(t, u.Variants[1].Fields)
}

func TestParseAnnotationBareValueForm(t *testing.T) {
	prog, n := parseSource(t, `
@cli "tool"
functio main() { redde; }
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	require.Len(t, fn.Annotations, 1)
	assert.Equal(t, "cli", fn.Annotations[0].Name)
	assert.Contains(t, fn.Annotations[0].Args, `"tool"`)
}

func TestParseAnnotationStructuredFieldForm(t *testing.T) {
	prog, n := parseSource(t, `
@option(name: "verbose", short: "v")
functio run() { redde; }
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	require.Len(t, fn.Annotations, 1)
	assert.Equal(t, `"verbose"`, fn.Annotations[0].Fields["name"])
	assert.Equal(t, `"v"`, fn.Annotations[0].Fields["short"])
}

func TestParseIfElseIfElseChain(t *testing.T) {
	prog, n := parseSource(t, `
functio check(x: integer) {
	si x > 0 {
		scribe "pos";
	} secus si x < 0 {
		scribe "neg";
	} secus {
		scribe "zero";
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	ifStmt := fn.Body.Statements[0].(*ast.If)
	elseIf, ok := ifStmt.Else.(*ast.If)
	require.True(t, ok)
	_, ok = elseIf.Else.(*ast.Block)
	assert.True(t, ok)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog, n := parseSource(t, `fixum x = 1 + 2 * 3`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	bin := v.Init.(*ast.Binary)
	assert.Equal(t, "+", bin.Op)
	// right side should be the higher-precedence multiplication
	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParseShiftVerb(t *testing.T) {
	prog, n := parseSource(t, `fixum y = x dextratum 3`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	shift := v.Init.(*ast.ShiftExpr)
	assert.Equal(t, ast.ShiftRight, shift.Direction)
}

func TestParseMethodCallChain(t *testing.T) {
	prog, n := parseSource(t, `fixum r = xs.addita(4)`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	call := v.Init.(*ast.Call)
	member := call.Callee.(*ast.Member)
	assert.Equal(t, "addita", member.Name)
	require.Len(t, call.Args, 1)
}

func TestParseNullCoalescing(t *testing.T) {
	prog, n := parseSource(t, `fixum r = a ?? b`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	bin := v.Init.(*ast.Binary)
	assert.Equal(t, "??", bin.Op)
}

func TestParseStructConstructExpression(t *testing.T) {
	prog, n := parseSource(t, `fixum e = Click { x: 1, y: 2 }`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	sc := v.Init.(*ast.StructuredConstruct)
	assert.Equal(t, "Click", sc.TypeName)
	assert.Equal(t, "Click", sc.VariantName)
	assert.Equal(t, []string{"x", "y"}, sc.Keys)
}

func TestParseLambdaExpression(t *testing.T) {
	prog, n := parseSource(t, `fixum f = (a, b) -> a + b`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	lam := v.Init.(*ast.Lambda)
	require.Len(t, lam.Params, 2)
	_, isExpr := lam.Body.(*ast.Binary)
	assert.True(t, isExpr)
}

func TestParseComprehension(t *testing.T) {
	prog, n := parseSource(t, `fixum ys = [x ex xs pro x si x > 0]`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	comp := v.Init.(*ast.Comprehension)
	assert.Equal(t, "x", comp.Binding)
	assert.NotNil(t, comp.Cond)
}

func TestParseEntryPointSyncAndAsync(t *testing.T) {
	prog, n := parseSource(t, `incipit { scribe "hi"; }`)
	require.Equal(t, 0, n)
	ep := prog.Declarations[0].(*ast.EntryPoint)
	assert.False(t, ep.Async)

	prog2, n2 := parseSource(t, `incipiet { scribe "hi"; }`)
	require.Equal(t, 0, n2)
	ep2 := prog2.Declarations[0].(*ast.EntryPoint)
	assert.True(t, ep2.Async)
}

func TestParseTestSuiteWithSetupAndCases(t *testing.T) {
	prog, n := parseSource(t, `
probandum "math" {
	praepara { scribe "setup"; }
	proba "adds" { adfirma 1 == 1; }
}
`)
	require.Equal(t, 0, n)
	suite := prog.Declarations[0].(*ast.TestSuite)
	assert.Equal(t, "math", suite.Name)
	assert.NotNil(t, suite.Setup)
	require.Len(t, suite.Cases, 1)
	assert.Equal(t, "adds", suite.Cases[0].Name)
}

func TestParseSyntaxErrorStillProducesDeclarations(t *testing.T) {
	toks, _ := tokenizer.Tokenize("bad.fab", `functio broken( { redde 1; }`)
	prog, diags := Parse("bad.fab", toks)
	assert.True(t, diags.Len() > 0)
	require.NotEmpty(t, prog.Declarations)
}

func TestParseRoundTripPositionWithinTokenRange(t *testing.T) {
	src := `fixum x = 1 + 2`
	toks, _ := tokenizer.Tokenize("pos.fab", src)
	prog, _ := Parse("pos.fab", toks)
	v := prog.Declarations[0].(*ast.Variable)
	first, last := toks[0].Position, toks[len(toks)-1].Position
	assert.True(t, !v.Pos().Less(first))
	assert.True(t, v.Pos().Less(last) || v.Pos() == last)
}

func TestParseDestructuringBind(t *testing.T) {
	prog, n := parseSource(t, `varia {x, y} = point`)
	require.Equal(t, 0, n)
	v := prog.Declarations[0].(*ast.Variable)
	bind, ok := v.Init.(*ast.DestructuringBind)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, bind.Names)
}
