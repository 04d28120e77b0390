package parser

import (
	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/token"
	"github.com/oxhq/fabc/internal/tokenizer"
)

// diagDiscard is the throwaway diagnostic sink used when parsing a
// `${...}` template span embedded inside another parse: lexical/syntactic
// errors in the embedded source were already reported once, against the
// original token stream, when the enclosing template literal's source file
// was first parsed as a whole; re-parsing a span here is purely to build
// that span's own subtree.
var diagDiscard = diag.List{}

// tokenizeForEmbedding re-tokenizes the raw source of a `${...}` span found
// inside a template literal, reusing the normal tokenizer.
func tokenizeForEmbedding(file, src string) ([]token.Token, *diag.List) {
	return tokenizer.Tokenize(file, src)
}

// parseType parses a type expression: types parse greedily left to right,
// generic parameters are comma-separated between `<` `>`, the nullable
// suffix `?` binds tightest, and the borrow/ownership preposition binds
// loosest of all.
func (p *parser) parseType() *ast.NamedType {
	if p.isPunct("(") {
		if t := p.tryParseFunctionType(); t != nil {
			return t
		}
	}

	pos := p.cur().Position
	name, _ := p.expectIdentifier()
	n := &ast.NamedType{Name: name}
	n.Position = pos

	if p.acceptPunct("<") {
		for !p.isPunct(">") && !p.atEOF() {
			n.Args = append(n.Args, p.parseTypeArg())
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct(">")
	}

	if p.acceptPunct("?") {
		n.Nullable = true
	}

	switch {
	case p.acceptKeyword("borrowed"):
		n.Ownership = ast.OwnershipBorrowed
	case p.acceptKeyword("mutable"):
		n.Ownership = ast.OwnershipMutable
	}

	return n
}

func (p *parser) parseTypeArg() ast.TypeArg {
	if p.cur().Kind == token.NumberLiteral {
		lit := p.advance()
		return ast.TypeArg{Literal: lit.Raw}
	}
	return ast.TypeArg{Type: p.parseType()}
}

// tryParseFunctionType attempts the alternative `(T, U) -> V` type shape,
// restoring position and returning nil when the lookahead doesn't confirm
// it (a plain parenthesized type has no `->` after the matching `)`).
func (p *parser) tryParseFunctionType() *ast.NamedType {
	if !p.confirmsFunctionTypeShape() {
		return nil
	}
	pos := p.cur().Position
	p.expectPunct("(")
	ft := &ast.FunctionType{}
	ft.Position = pos
	for !p.isPunct(")") && !p.atEOF() {
		ft.Params = append(ft.Params, p.parseType())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	p.expectPunct("->")
	ft.Return = p.parseType()

	n := &ast.NamedType{FunctionShape: ft}
	n.Position = pos
	if p.acceptPunct("?") {
		n.Nullable = true
	}
	return n
}

// confirmsFunctionTypeShape scans ahead for a matching `)` immediately
// followed by `->`, without consuming any tokens.
func (p *parser) confirmsFunctionTypeShape() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind == token.Punctuation && t.Lexeme == "(" {
			depth++
		} else if t.Kind == token.Punctuation && t.Lexeme == ")" {
			depth--
			if depth == 0 {
				next := token.Token{Kind: token.EOF}
				if i+1 < len(p.toks) {
					next = p.toks[i+1]
				}
				return next.Kind == token.Operator && next.Lexeme == "->"
			}
		}
		if t.Kind == token.EOF {
			return false
		}
	}
	return false
}
