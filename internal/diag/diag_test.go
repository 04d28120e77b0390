package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/token"
)

func TestListErrorfAppendsNonFatalDiagnostic(t *testing.T) {
	var l List
	l.Errorf(PhaseSema, Semantic, token.Position{Line: 1}, "undefined identifier %q", "x")
	require.Equal(t, 1, l.Len())
	assert.False(t, l.Items()[0].Fatal)
	assert.Equal(t, `undefined identifier "x"`, l.Items()[0].Message)
}

func TestListFatalfAppendsFatalDiagnostic(t *testing.T) {
	var l List
	l.Fatalf(PhaseParser, Syntactic, token.Position{Line: 1}, "unexpected token")
	assert.True(t, l.HasFatal())
}

func TestListHasFatalFalseWhenAllNonFatal(t *testing.T) {
	var l List
	l.Errorf(PhaseSema, Semantic, token.Position{}, "minor issue")
	assert.False(t, l.HasFatal())
}

func TestListMergeAppendsOtherItemsPreservingPhase(t *testing.T) {
	var a, b List
	a.Errorf(PhaseTokenizer, Lexical, token.Position{}, "a issue")
	b.Errorf(PhaseSema, Semantic, token.Position{}, "b issue")
	a.Merge(&b)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, PhaseSema, a.Items()[1].Phase)
}

func TestListMergeOfNilIsNoOp(t *testing.T) {
	var a List
	a.Errorf(PhaseTokenizer, Lexical, token.Position{}, "issue")
	a.Merge(nil)
	assert.Equal(t, 1, a.Len())
}

func TestSortGroupsByPipelinePhaseThenPosition(t *testing.T) {
	var l List
	l.Errorf(PhaseCodegen, Capability, token.Position{Line: 1}, "codegen issue")
	l.Errorf(PhaseTokenizer, Lexical, token.Position{Line: 5}, "tokenizer issue B")
	l.Errorf(PhaseTokenizer, Lexical, token.Position{Line: 2}, "tokenizer issue A")
	l.Errorf(PhaseSema, Semantic, token.Position{Line: 1}, "sema issue")

	l.Sort()

	items := l.Items()
	require.Len(t, items, 4)
	assert.Equal(t, PhaseTokenizer, items[0].Phase)
	assert.Equal(t, PhaseTokenizer, items[1].Phase)
	assert.Equal(t, "tokenizer issue A", items[0].Message, "within a phase, earlier position sorts first")
	assert.Equal(t, "tokenizer issue B", items[1].Message)
	assert.Equal(t, PhaseSema, items[2].Phase)
	assert.Equal(t, PhaseCodegen, items[3].Phase)
}

func TestDiagnosticStringIncludesHintWhenPresent(t *testing.T) {
	d := Diagnostic{Message: "unknown verb", Category: Morphological, Severity: SeverityError, Hint: "adde"}
	assert.Contains(t, d.String(), "did you mean adde?")
}

func TestDiagnosticStringOmitsHintWhenAbsent(t *testing.T) {
	d := Diagnostic{Message: "unknown verb", Category: Morphological, Severity: SeverityError}
	assert.NotContains(t, d.String(), "did you mean")
}

func TestCLIErrorErrorIncludesDetailWhenPresent(t *testing.T) {
	e := CLIError{Code: ErrCompile, Message: "compile failed", Detail: "syntax error"}
	assert.Equal(t, "compile failed: syntax error", e.Error())
}

func TestCLIErrorErrorOmitsDetailWhenAbsent(t *testing.T) {
	e := CLIError{Code: ErrIO, Message: "read failed"}
	assert.Equal(t, "read failed", e.Error())
}

func TestCLIErrorJSONRoundTripsFields(t *testing.T) {
	e := CLIError{Code: ErrConfig, Message: "bad config", Detail: "missing key"}
	js := e.JSON()
	assert.Contains(t, js, `"code":"ERR_CONFIG"`)
	assert.Contains(t, js, `"detail":"missing key"`)
}

func TestWrapBuildsCLIErrorFromInnerError(t *testing.T) {
	inner := assertError{msg: "boom"}
	err := Wrap(ErrIO, "io failed", inner)
	cliErr, ok := err.(CLIError)
	require.True(t, ok)
	assert.Equal(t, ErrIO, cliErr.Code)
	assert.Equal(t, "boom", cliErr.Detail)
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
