package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/parser"
	"github.com/oxhq/fabc/internal/stype"
	"github.com/oxhq/fabc/internal/tokenizer"
)

func analyzeSource(t *testing.T, src string) (*ast.Program, *Annotations, int) {
	t.Helper()
	toks, tokDiags := tokenizer.Tokenize("t.fab", src)
	require.Equal(t, 0, tokDiags.Len())
	prog, parseDiags := parser.Parse("t.fab", toks)
	require.Equal(t, 0, parseDiags.Len())
	annos, diags := Analyze(prog)
	return prog, annos, diags.Len()
}

func TestAnalyzeLiteralResolvesPrimitiveTypes(t *testing.T) {
	prog, _, d := analyzeSource(t, `fixum x = 1;`)
	assert.Equal(t, 0, d)
	v := prog.Declarations[0].(*ast.Variable)
	assert.Equal(t, stype.Integer64, v.Init.ResolvedType().Name)
}

func TestAnalyzeArrayLiteralResolvesToGenericList(t *testing.T) {
	prog, _, d := analyzeSource(t, `fixum xs = [1, 2, 3];`)
	assert.Equal(t, 0, d)
	v := prog.Declarations[0].(*ast.Variable)
	kind, ok := v.Init.ResolvedType().IsCollection()
	require.True(t, ok)
	assert.Equal(t, stype.CollectionList, kind)
}

func TestAnalyzeUndefinedIdentifierIsNonFatalDiagnostic(t *testing.T) {
	_, _, d := analyzeSource(t, `fixum y = x;`)
	require.Equal(t, 1, d)
}

func TestAnalyzeAssignmentToImmutableBindingIsDiagnostic(t *testing.T) {
	_, _, d := analyzeSource(t, `
fixum x = 1;
functio mutateIt() {
	x = 2;
}
`)
	require.Equal(t, 1, d)
}

func TestAnalyzeAssignmentToMutableBindingIsClean(t *testing.T) {
	_, _, d := analyzeSource(t, `
varia x = 1;
functio mutateIt() {
	x = 2;
}
`)
	assert.Equal(t, 0, d)
}

func TestAnalyzeFunctionParamsAreScopedToBody(t *testing.T) {
	_, _, d := analyzeSource(t, `
functio greet(name: string) -> string {
	redde name;
}
`)
	assert.Equal(t, 0, d)
}

func TestAnalyzeRedeclarationInSameScopeIsDiagnostic(t *testing.T) {
	_, _, d := analyzeSource(t, `
fixum x = 1;
fixum x = 2;
`)
	require.Equal(t, 1, d)
}

func TestAnalyzeForEachBindingScopedToLoopBody(t *testing.T) {
	_, _, d := analyzeSource(t, `
functio sumAll() {
	fixum xs = [1, 2, 3];
	ex xs pro x {
		scribe x;
	}
}
`)
	assert.Equal(t, 0, d)
}

func TestAnalyzeCallOfNonFunctionIsDiagnostic(t *testing.T) {
	_, _, d := analyzeSource(t, `
fixum x = 1;
functio useIt() {
	x();
}
`)
	require.Equal(t, 1, d)
}

func TestAnalyzeMemberCallOnCollectionSkipsNonCallableCheck(t *testing.T) {
	_, _, d := analyzeSource(t, `
fixum xs = [1, 2, 3];
functio useIt() {
	xs.addita(4);
}
`)
	assert.Equal(t, 0, d)
}

func TestAnnotationsLookupFindsTopLevelFunction(t *testing.T) {
	_, annos, _ := analyzeSource(t, `
functio greet(name: string) -> string {
	redde name;
}
`)
	sym, ok := annos.Lookup("greet")
	require.True(t, ok)
	assert.Equal(t, stype.SymFunction, sym.Kind)
}

func TestAnalyzeConditionalJoinsBranchTypes(t *testing.T) {
	prog, _, d := analyzeSource(t, `fixum x = verum ? 1 : 2;`)
	assert.Equal(t, 0, d)
	v := prog.Declarations[0].(*ast.Variable)
	assert.Equal(t, stype.Integer64, v.Init.ResolvedType().Name)
}
