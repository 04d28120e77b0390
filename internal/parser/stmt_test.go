package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/ast"
)

func TestParseForRange(t *testing.T) {
	prog, n := parseSource(t, `
functio countUp() {
	de 0..10 pro i {
		scribe i;
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	fr := fn.Body.Statements[0].(*ast.ForRange)
	assert.Equal(t, "i", fr.Binding)
}

func TestParseForEach(t *testing.T) {
	prog, n := parseSource(t, `
functio sumAll() {
	ex xs pro x {
		scribe x;
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	fe := fn.Body.Statements[0].(*ast.ForEach)
	assert.Equal(t, "x", fe.Binding)
}

func TestParseSwitchOnTagWithBindingsAndDefault(t *testing.T) {
	prog, n := parseSource(t, `
functio handle(e: Event) {
	discerne e {
		casus Click(x, y) {
			scribe x;
		}
		casus Quit {
			redde;
		}
		defecto {
			scribe "other";
		}
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	sw := fn.Body.Statements[0].(*ast.SwitchOnTag)
	require.Len(t, sw.Cases, 2)
	assert.Equal(t, "Click", sw.Cases[0].VariantName)
	assert.Equal(t, []string{"x", "y"}, sw.Cases[0].Bindings)
	assert.Equal(t, "Quit", sw.Cases[1].VariantName)
	assert.Empty(t, sw.Cases[1].Bindings)
	assert.NotNil(t, sw.Default)
}

func TestParseGuardStatement(t *testing.T) {
	prog, n := parseSource(t, `
functio requirePositive(x: integer) {
	nisi x > 0 {
		redde;
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	g := fn.Body.Statements[0].(*ast.Guard)
	assert.NotNil(t, g.Cond)
	assert.NotNil(t, g.Else)
}

func TestParseAssertWithMessage(t *testing.T) {
	prog, n := parseSource(t, `
functio check() {
	adfirma 1 == 1, "should always hold";
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	a := fn.Body.Statements[0].(*ast.Assert)
	assert.NotNil(t, a.Message)
}

func TestParseThrowRecoverableAndFatal(t *testing.T) {
	prog, n := parseSource(t, `
functio risky() {
	iace "bad input";
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	th := fn.Body.Statements[0].(*ast.Throw)
	assert.Equal(t, ast.ThrowRecoverable, th.ThrowKind)

	prog2, n2 := parseSource(t, `
functio fatalError() {
	mori "unrecoverable";
}
`)
	require.Equal(t, 0, n2)
	fn2 := prog2.Declarations[0].(*ast.Function)
	th2 := fn2.Body.Statements[0].(*ast.Throw)
	assert.Equal(t, ast.ThrowFatal, th2.ThrowKind)
}

func TestParseTryCatchFinally(t *testing.T) {
	prog, n := parseSource(t, `
functio safeRun() {
	tempta {
		iace "oops";
	} cape err {
		scribe err;
	} demum {
		scribe "done";
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	tcf := fn.Body.Statements[0].(*ast.TryCatchFinally)
	assert.Equal(t, "err", tcf.CatchBind)
	assert.NotNil(t, tcf.Catch)
	assert.NotNil(t, tcf.Finally)
}

func TestParseScopedResourceWithArenaKind(t *testing.T) {
	prog, n := parseSource(t, `
functio useArena() {
	cura allocArena() with a arena {
		scribe a;
	}
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	sr := fn.Body.Statements[0].(*ast.ScopedResource)
	assert.Equal(t, "a", sr.Binding)
	assert.Equal(t, ast.ResourceArena, sr.Kind)
}

func TestParseDoBlockWithCatchAndWhile(t *testing.T) {
	prog, n := parseSource(t, `
functio retryLoop() {
	fac {
		scribe "tick";
	} cape err {
		scribe err;
	} dum verum;
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	db := fn.Body.Statements[0].(*ast.DoBlock)
	assert.Equal(t, "err", db.CatchBind)
	assert.NotNil(t, db.While)
}

func TestParseCompoundAssignment(t *testing.T) {
	prog, n := parseSource(t, `
functio incr() {
	x += 1;
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	asn := fn.Body.Statements[0].(*ast.Assignment)
	assert.Equal(t, "+=", asn.Op)
}

func TestParseOutputLevels(t *testing.T) {
	prog, n := parseSource(t, `
functio logAll() {
	scribe "info";
	vide "debug";
	mone "warn";
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	require.Len(t, fn.Body.Statements, 3)
	assert.Equal(t, ast.OutputLog, fn.Body.Statements[0].(*ast.Output).Level)
	assert.Equal(t, ast.OutputDebug, fn.Body.Statements[1].(*ast.Output).Level)
	assert.Equal(t, ast.OutputWarn, fn.Body.Statements[2].(*ast.Output).Level)
}

func TestParseTypeWithGenericArgsAndNullable(t *testing.T) {
	prog, n := parseSource(t, `
functio find(xs: list<integer>) -> integer? {
	redde null;
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	require.Len(t, fn.Params, 1)
	pt := fn.Params[0].DeclaredType
	assert.Equal(t, "list", pt.Name)
	require.Len(t, pt.Args, 1)
	assert.True(t, fn.ReturnType.Nullable)
}

func TestParseFunctionTypeShape(t *testing.T) {
	prog, n := parseSource(t, `
functio apply(f: (integer) -> integer) -> integer {
	redde f(1);
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	ft := fn.Params[0].DeclaredType.FunctionShape
	require.NotNil(t, ft)
	require.Len(t, ft.Params, 1)
	assert.Equal(t, "integer", ft.Return.Name)
}

func TestParseBorrowedOwnershipSuffix(t *testing.T) {
	prog, n := parseSource(t, `
functio inspect(x: string borrowed) {
	scribe x;
}
`)
	require.Equal(t, 0, n)
	fn := prog.Declarations[0].(*ast.Function)
	assert.Equal(t, ast.OwnershipBorrowed, fn.Params[0].DeclaredType.Ownership)
}
