package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/fabc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeEmptySourceYieldsOnlyEOF(t *testing.T) {
	toks, diags := Tokenize("empty.fab", "")
	require.Equal(t, 0, diags.Len())
	require.Len(t, toks, 1)
	assert.True(t, toks[0].IsEOF())
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, diags := Tokenize("f.fab", "varia xs = 1")
	require.Equal(t, 0, diags.Len())
	require.Len(t, toks, 5) // varia, xs, =, 1, EOF
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, "varia", toks[0].Lexeme)
	assert.Equal(t, token.Identifier, toks[1].Kind)
}

func TestTokenizeNumberLiterals(t *testing.T) {
	cases := []struct {
		src   string
		radix token.Radix
	}{
		{"42", token.Decimal},
		{"0x2A", token.Hex},
		{"0o52", token.Octal},
		{"0b101010", token.Binary},
		{"1_000_000", token.Decimal},
		{"3.14", token.Decimal},
	}
	for _, c := range cases {
		toks, diags := Tokenize("n.fab", c.src)
		require.Equal(t, 0, diags.Len(), c.src)
		require.Len(t, toks, 2, c.src)
		assert.Equal(t, token.NumberLiteral, toks[0].Kind, c.src)
		assert.Equal(t, c.radix, toks[0].Radix, c.src)
	}
}

func TestTokenizeUnderscoreGroupingStrippedFromRaw(t *testing.T) {
	toks, _ := Tokenize("n.fab", "1_000_000")
	assert.Equal(t, "1000000", toks[0].Raw)
}

func TestTokenizeStringLiteralEscapes(t *testing.T) {
	toks, diags := Tokenize("s.fab", `"hi\n"`)
	require.Equal(t, 0, diags.Len())
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Equal(t, "hi\n", toks[0].Raw)
}

func TestTokenizeUnterminatedStringIsLexicalError(t *testing.T) {
	_, diags := Tokenize("s.fab", `"unterminated`)
	require.True(t, diags.Len() > 0)
	assert.Equal(t, "lexical", string(diags.Items()[0].Category))
}

func TestTokenizeTripleQuotedString(t *testing.T) {
	toks, diags := Tokenize("s.fab", `"""line one
line two"""`)
	require.Equal(t, 0, diags.Len())
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Contains(t, toks[0].Raw, "line one")
	assert.Contains(t, toks[0].Raw, "line two")
}

func TestTokenizeTemplateLiteralWithEmbeddedExpression(t *testing.T) {
	toks, diags := Tokenize("t.fab", "`hello ${name}!`")
	require.Equal(t, 0, diags.Len())
	require.Equal(t, token.TemplateLiteral, toks[0].Kind)
	require.Len(t, toks[0].Templates, 3)
	assert.Equal(t, "hello ", toks[0].Templates[0].Text)
	assert.True(t, toks[0].Templates[1].IsExpr)
	assert.Equal(t, "name", toks[0].Templates[1].Expr)
	assert.Equal(t, "!", toks[0].Templates[2].Text)
}

func TestTokenizeRegexLiteral(t *testing.T) {
	toks, diags := Tokenize("r.fab", "varia re = /ab+c/gi")
	require.Equal(t, 0, diags.Len())
	var found bool
	for _, tk := range toks {
		if tk.Kind == token.RegexLiteral {
			found = true
			assert.Equal(t, "ab+c", tk.Lexeme)
			assert.Equal(t, "gi", tk.RegexFlags)
		}
	}
	assert.True(t, found, "expected a regex literal token")
}

func TestTokenizeDivisionIsNotMisreadAsRegex(t *testing.T) {
	toks, diags := Tokenize("d.fab", "x / y")
	require.Equal(t, 0, diags.Len())
	assert.Equal(t, token.Operator, toks[1].Kind)
	assert.Equal(t, "/", toks[1].Lexeme)
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	toks, diags := Tokenize("o.fab", "a ?? b; x === y; n ..= m; p -> q")
	require.Equal(t, 0, diags.Len())
	var ops []string
	for _, tk := range toks {
		if tk.Kind == token.Operator {
			ops = append(ops, tk.Lexeme)
		}
	}
	assert.Contains(t, ops, "??")
	assert.Contains(t, ops, "===")
	assert.Contains(t, ops, "..=")
	assert.Contains(t, ops, "->")
}

func TestTokenizeLineCommentAttachesToNextToken(t *testing.T) {
	toks, diags := Tokenize("c.fab", "# a comment\nvaria x = 1")
	require.Equal(t, 0, diags.Len())
	require.NotEmpty(t, toks[0].LeadingComments)
	assert.Equal(t, " a comment", toks[0].LeadingComments[0].Lexeme)
}

func TestTokenizeTrailingCommentAttachesToPreviousTokenOnSameLine(t *testing.T) {
	toks, diags := Tokenize("c.fab", "varia x = 1 # trailing\nvaria y = 2")
	require.Equal(t, 0, diags.Len())
	// locate the '1' number literal token
	var numTok *token.Token
	for i := range toks {
		if toks[i].Kind == token.NumberLiteral && toks[i].Lexeme == "1" {
			numTok = &toks[i]
		}
	}
	require.NotNil(t, numTok)
	require.NotNil(t, numTok.TrailingComment)
	assert.Equal(t, " trailing", numTok.TrailingComment.Lexeme)
}

func TestTokenizeIllegalCharacterIsRecoverable(t *testing.T) {
	toks, diags := Tokenize("bad.fab", "varia x = 1 ~ 2")
	require.True(t, diags.Len() > 0)
	// scanning continues past the illegal character
	var sawSecondNumber bool
	for _, tk := range toks {
		if tk.Kind == token.NumberLiteral && tk.Lexeme == "2" {
			sawSecondNumber = true
		}
	}
	assert.True(t, sawSecondNumber)
}

func TestTokenizePositionsAdvanceAcrossLines(t *testing.T) {
	toks, _ := Tokenize("p.fab", "varia x\nvaria y")
	require.True(t, len(toks) >= 4)
	assert.Equal(t, 1, toks[0].Position.Line)
	var secondVaria token.Token
	for _, tk := range toks {
		if tk.Lexeme == "y" {
			secondVaria = tk
		}
	}
	assert.Equal(t, 2, secondVaria.Position.Line)
}
