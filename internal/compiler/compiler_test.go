package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetSource = `
functio greet(name: string) -> string {
	redde name;
}
`

func TestCompileToTypeScript(t *testing.T) {
	res := Compile("greet.fab", greetSource, Options{Target: "ts"})

	require.False(t, res.Diagnostics.HasFatal(), "unexpected fatal diagnostics: %v", res.Diagnostics.Items())
	assert.NotEmpty(t, res.RunID)
	assert.Contains(t, res.Output, "greet")
	assert.NotNil(t, res.Program)
}

func TestCompileToGoUsesDefaultPackageName(t *testing.T) {
	res := Compile("greet.fab", greetSource, Options{Target: "go"})

	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "package main")
}

func TestCompilePackageNameOnlyAffectsGoTarget(t *testing.T) {
	res := Compile("greet.fab", greetSource, Options{Target: "go", PackageName: "widgets"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "package widgets")

	res = Compile("greet.fab", greetSource, Options{Target: "ts", PackageName: "widgets"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.NotContains(t, res.Output, "widgets")
}

func TestCompileRunIDsAreUnique(t *testing.T) {
	a := Compile("greet.fab", greetSource, Options{Target: "ts"})
	b := Compile("greet.fab", greetSource, Options{Target: "ts"})
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestCompileUnknownTargetIsFatalAndProducesNoOutput(t *testing.T) {
	res := Compile("greet.fab", greetSource, Options{Target: "cobol"})

	require.True(t, res.Diagnostics.HasFatal())
	assert.Empty(t, res.Output)
}

func TestCompileSyntaxErrorShortCircuitsBeforeCodegen(t *testing.T) {
	broken := `functio broken( { redde 1; }`

	res := Compile("broken.fab", broken, Options{Target: "ts"})

	require.True(t, res.Diagnostics.HasFatal())
	assert.Empty(t, res.Output)
}

func TestCompileEmptySourceProducesEmptyOutputNoFatalDiagnostics(t *testing.T) {
	res := Compile("empty.fab", "", Options{Target: "ts"})

	assert.False(t, res.Diagnostics.HasFatal())
	assert.Empty(t, strings.TrimSpace(res.Output))
}

func TestCompileIntrinsicImportErasedFromOutput(t *testing.T) {
	src := `
ex "norma/tempus" importa nunc

functio now() -> integer {
	redde 0;
}
`
	res := Compile("uses_intrinsic.fab", src, Options{Target: "ts"})

	require.False(t, res.Diagnostics.HasFatal())
	assert.NotContains(t, res.Output, "norma/tempus")
}

func TestCompileSyntaxErrorDiagnosticCarriesPosition(t *testing.T) {
	broken := `functio broken( { redde 1; }`

	res := Compile("broken.fab", broken, Options{Target: "ts"})

	items := res.Diagnostics.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "broken.fab", items[0].Position.File)
}

func TestCompileListMutateVsCopyToTypeScript(t *testing.T) {
	src := `
fixum xs = [1, 2, 3];
functio useIt() {
	xs.addita(4);
}
`
	res := Compile("list.fab", src, Options{Target: "ts"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "[...xs, 4]")

	srcMutate := `
varia ys = [1, 2, 3];
functio useIt() {
	ys.adde(4);
}
`
	res2 := Compile("list2.fab", srcMutate, Options{Target: "ts"})
	require.False(t, res2.Diagnostics.HasFatal())
	assert.Contains(t, res2.Output, "ys.push(4)")
}

func TestCompileTaggedUnionToTypeScript(t *testing.T) {
	src := `
discretio Event {
	Click { x: integer, y: integer },
	Quit,
}
`
	res := Compile("event.fab", src, Options{Target: "ts"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, `type Click = { tag: 'Click'; x: number; y: number };`)
	assert.Contains(t, res.Output, `type Quit = { tag: 'Quit'; };`)
	assert.Contains(t, res.Output, "type Event = Click | Quit;")
}

func TestCompileShiftVerbToTypeScript(t *testing.T) {
	src := `fixum y = x dextratum 3;`
	res := Compile("shift.fab", src, Options{Target: "ts"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(x >> 3)")
}

func TestCompileNullCoalescingToCpp(t *testing.T) {
	src := `fixum c = a ?? b;`
	res := Compile("nullish.fab", src, Options{Target: "cpp"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(a != nullptr ? a : b)")
}

func TestCompileNullCoalescingPerTarget(t *testing.T) {
	src := `fixum c = a ?? b;`

	res := Compile("nullish.fab", src, Options{Target: "ts"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(a ?? b)")

	res = Compile("nullish.fab", src, Options{Target: "rs"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(a).unwrap_or(b)")

	res = Compile("nullish.fab", src, Options{Target: "zig"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(a orelse b)")

	res = Compile("nullish.fab", src, Options{Target: "go"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "func() any { if v := a; v != nil { return v }; return b }()")

	res = Compile("nullish.fab", src, Options{Target: "py"})
	require.False(t, res.Diagnostics.HasFatal())
	assert.Contains(t, res.Output, "(a if a is not None else b)")
}
