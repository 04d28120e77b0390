package parser

import (
	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/token"
)

// precedence levels, lowest to highest. parseExpr starts at the lowest
// (assignment is handled separately, at the statement level) and recurses
// down to primaries and postfix call/member chains.
const (
	precNone = iota
	precConditional
	precNullish
	precOr
	precAnd
	precEquality
	precRelational
	precRange
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

func binOpPrecedence(op string) int {
	switch op {
	case "??":
		return precNullish
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "===", "!==", "==", "!=":
		return precEquality
	case "<", ">", "<=", ">=":
		return precRelational
	case "..", "..=":
		return precRange
	case "+", "-":
		return precAdditive
	case "*", "/", "%":
		return precMultiplicative
	default:
		return precNone
	}
}

// parseExpr parses a full expression, including the trailing `? then : else`
// conditional, which binds loosest among expression forms.
func (p *parser) parseExpr() ast.Node {
	expr := p.parseBinary(precNullish)
	if p.acceptPunct("?") {
		pos := expr.Pos()
		then := p.parseExpr()
		p.expectPunct(":")
		els := p.parseExpr()
		n := &ast.Conditional{Cond: expr, Then: then, Else: els}
		n.Position = pos
		return n
	}
	return expr
}

func (p *parser) parseBinary(minPrec int) ast.Node {
	left := p.parseUnary()
	for {
		t := p.cur()
		if t.Kind != token.Operator {
			break
		}
		prec := binOpPrecedence(t.Lexeme)
		if prec < minPrec || prec == precNone {
			break
		}
		op := p.advance().Lexeme
		right := p.parseBinary(prec + 1)
		if op == ".." || op == "..=" {
			n := &ast.RangeExpr{Start: left, End: right, Inclusive: op == "..="}
			n.Position = left.Pos()
			left = n
			continue
		}
		n := &ast.Binary{Op: op, Left: left, Right: right}
		n.Position = left.Pos()
		left = n
	}
	return left
}

func (p *parser) parseUnary() ast.Node {
	t := p.cur()
	if (t.Kind == token.Operator && (t.Lexeme == "-" || t.Lexeme == "!")) || t.Kind == token.Punctuation && t.Lexeme == "..." {
		pos := t.Position
		op := p.advance().Lexeme
		if op == "..." {
			n := &ast.Spread{Value: p.parseUnary()}
			n.Position = pos
			return n
		}
		n := &ast.Unary{Op: op, Operand: p.parseUnary()}
		n.Position = pos
		return n
	}
	return p.parseShiftOrPostfix()
}

// parseShiftOrPostfix handles the shift verbs (`x dextratum 3`) and the type
// verbs (`is`/`as`), which bind tighter than binary operators but looser
// than postfix call/member chains. Conversion verbs are parsed in
// parsePrimary.
func (p *parser) parseShiftOrPostfix() ast.Node {
	expr := p.parsePostfix()
	for {
		switch {
		case p.isKeyword("dextratum"), p.isKeyword("sinistratum"):
			dir := ast.ShiftRight
			if p.cur().Lexeme == "sinistratum" {
				dir = ast.ShiftLeft
			}
			p.advance()
			amount := p.parsePostfix()
			n := &ast.ShiftExpr{Direction: dir, Value: expr, Amount: amount}
			n.Position = expr.Pos()
			expr = n
		case p.isKeyword("is"):
			p.advance()
			ty := p.parseType()
			n := &ast.IsType{Value: expr, Type: ty}
			n.Position = expr.Pos()
			expr = n
		case p.isKeyword("as"):
			p.advance()
			ty := p.parseType()
			n := &ast.AsType{Value: expr, Type: ty}
			n.Position = expr.Pos()
			expr = n
		default:
			return expr
		}
	}
}

// parsePostfix parses a primary expression followed by any chain of calls,
// member accesses, and index expressions. A method name is stored on the
// Member exactly as written; no morphological analysis happens here.
func (p *parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			optional := false
			name, namePos := p.expectIdentifier()
			if p.isPunct("(") {
				args, optCall, nonNull := p.parseCallArgsAndFlavor()
				m := &ast.Member{Receiver: expr, Name: name, Optional: optional}
				m.Position = namePos
				call := &ast.Call{Callee: m, Args: args, Optional: optCall, NonNull: nonNull}
				call.Position = namePos
				expr = call
				continue
			}
			m := &ast.Member{Receiver: expr, Name: name, Optional: optional}
			m.Position = namePos
			expr = m
		case p.isPunct("?."):
			p.advance()
			name, namePos := p.expectIdentifier()
			m := &ast.Member{Receiver: expr, Name: name, Optional: true}
			m.Position = namePos
			expr = m
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpr()
			p.expectPunct("]")
			m := &ast.Member{Receiver: expr, Index: idx}
			m.Position = expr.Pos()
			expr = m
		case p.isPunct("("):
			args, optCall, nonNull := p.parseCallArgsAndFlavor()
			call := &ast.Call{Callee: expr, Args: args, Optional: optCall, NonNull: nonNull}
			call.Position = expr.Pos()
			expr = call
		default:
			return expr
		}
	}
}

// parseCallArgsAndFlavor parses `(args...)` possibly followed by `?` (optional
// call) or `!` (non-null assertion), and returns the already-emitted
// argument *nodes* as a list -- codegen later emits each one independently
// so multi-argument lambda bodies (which contain commas) stay unambiguous.
func (p *parser) parseCallArgsAndFlavor() ([]ast.Node, bool, bool) {
	p.expectPunct("(")
	var args []ast.Node
	for !p.isPunct(")") && !p.atEOF() {
		args = append(args, p.parseExpr())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	optional := p.acceptPunct("?")
	nonNull := p.acceptPunct("!")
	return args, optional, nonNull
}

func (p *parser) parsePrimary() ast.Node {
	t := p.cur()
	switch {
	case t.Kind == token.NumberLiteral:
		p.advance()
		kind := ast.LitInteger
		if containsDot(t.Raw) {
			kind = ast.LitFraction
		}
		n := &ast.Literal{LitKind: kind, Raw: t.Raw}
		n.Position = t.Position
		return n
	case t.Kind == token.StringLiteral:
		p.advance()
		if containsFormatPlaceholder(t.Raw) {
			n := p.parseFormatStringFromRaw(t)
			return n
		}
		n := &ast.Literal{LitKind: ast.LitString, Raw: t.Raw}
		n.Position = t.Position
		return n
	case t.Kind == token.TemplateLiteral:
		p.advance()
		return p.buildTemplateLiteral(t)
	case t.Kind == token.RegexLiteral:
		p.advance()
		n := &ast.Regex{Pattern: t.Lexeme, Flags: t.RegexFlags}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "verum":
		p.advance()
		n := &ast.Literal{LitKind: ast.LitBool, Raw: "true"}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "falsum":
		p.advance()
		n := &ast.Literal{LitKind: ast.LitBool, Raw: "false"}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "null":
		p.advance()
		n := &ast.Literal{LitKind: ast.LitNull}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "se":
		p.advance()
		n := &ast.SelfRef{}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "yield":
		p.advance()
		n := &ast.Yield{Value: p.parseExpr()}
		n.Position = t.Position
		return n
	case t.Kind == token.Keyword && t.Lexeme == "new":
		return p.parseNew()
	case t.Kind == token.Keyword && (t.Lexeme == "numeratum" || t.Lexeme == "fractatum" || t.Lexeme == "textatum" || t.Lexeme == "bivalentum"):
		return p.parseConversion()
	case p.isPunct("("):
		return p.parseParenOrLambda()
	case p.isPunct("["):
		return p.parseArrayOrComprehension()
	case p.isPunct("{"):
		return p.parseObjectLit()
	case t.Kind == token.Identifier:
		return p.parseIdentOrStructConstruct()
	default:
		p.errorf("unexpected token %q in expression", t.Lexeme)
		return p.errorNode()
	}
}

func containsDot(s string) bool {
	for _, r := range s {
		if r == '.' {
			return true
		}
	}
	return false
}

func containsFormatPlaceholder(s string) bool {
	for i, r := range s {
		if r == '§' { // '§'
			_ = i
			return true
		}
	}
	return false
}

func (p *parser) parseFormatStringFromRaw(t token.Token) *ast.FormatString {
	// Only the template text is captured here. A call that follows
	// (`fmt"...§..." (a, b)`) parses in parsePostfix as an ordinary Call
	// whose callee is this FormatString; Args stays empty.
	n := &ast.FormatString{Template: t.Raw}
	n.Position = t.Position
	return n
}

func (p *parser) buildTemplateLiteral(t token.Token) *ast.TemplateLiteral {
	n := &ast.TemplateLiteral{}
	n.Position = t.Position
	for _, span := range t.Templates {
		if !span.IsExpr {
			lit := &ast.Literal{LitKind: ast.LitString, Raw: span.Text}
			lit.Position = t.Position
			n.Parts = append(n.Parts, lit)
			continue
		}
		sub := parseEmbeddedExpr(t.Position, span.Expr)
		n.Parts = append(n.Parts, sub)
	}
	return n
}

// parseEmbeddedExpr re-tokenizes and re-parses the raw source of a
// `${...}` span found inside a template literal.
func parseEmbeddedExpr(pos token.Position, src string) ast.Node {
	toks, _ := tokenizeForEmbedding(pos.File, src)
	sub := &parser{file: pos.File, toks: toks, diags: &diagDiscard}
	return sub.parseExpr()
}

func (p *parser) parseNew() ast.Node {
	pos := p.advance().Position // new
	ty := p.parseType()
	n := &ast.New{Type: ty}
	n.Position = pos
	if p.isPunct("(") {
		args, _, _ := p.parseCallArgsAndFlavor()
		n.Args = args
	}
	return n
}

func (p *parser) parseConversion() ast.Node {
	t := p.advance()
	kind := ast.ConversionKind(t.Lexeme)
	p.expectPunct("(")
	n := &ast.TypeConversion{ConversionKind: kind}
	n.Position = t.Position
	n.Value = p.parseExpr()
	if p.acceptPunct(",") {
		n.Radix = p.parseExpr()
	}
	p.expectPunct(")")
	if p.acceptPunct("??") {
		n.Fallback = p.parseExpr()
	}
	return n
}

// parseParenOrLambda disambiguates `(a, b) -> expr` lambda syntax from a
// parenthesized expression by scanning ahead for a matching `)` followed by
// `->`.
func (p *parser) parseParenOrLambda() ast.Node {
	if p.looksLikeLambdaParams() {
		return p.parseLambda()
	}
	pos := p.advance().Position // (
	expr := p.parseExpr()
	p.expectPunct(")")
	_ = pos
	return expr
}

func (p *parser) looksLikeLambdaParams() bool {
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

func (p *parser) parseLambda() *ast.Lambda {
	pos := p.cur().Position
	p.expectPunct("(")
	lam := &ast.Lambda{}
	lam.Position = pos
	for !p.isPunct(")") && !p.atEOF() {
		lam.Params = append(lam.Params, p.parseParam())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	p.expectPunct("->")
	if p.isPunct("{") {
		lam.Body = p.parseBlock()
	} else {
		lam.Body = p.parseExpr()
	}
	return lam
}

func (p *parser) parseArrayOrComprehension() ast.Node {
	pos := p.advance().Position // [
	if p.isPunct("]") {
		p.advance()
		n := &ast.ArrayLit{}
		n.Position = pos
		return n
	}
	first := p.parseExpr()
	if p.isKeyword("ex") {
		p.advance()
		iterable := p.parseExpr()
		p.acceptKeyword("pro")
		binding, _ := p.expectIdentifier()
		var cond ast.Node
		if p.acceptKeyword("si") {
			cond = p.parseExpr()
		}
		p.expectPunct("]")
		n := &ast.Comprehension{Result: first, Iterable: iterable, Binding: binding, Cond: cond}
		n.Position = pos
		return n
	}
	arr := &ast.ArrayLit{Elements: []ast.Node{first}}
	arr.Position = pos
	for p.acceptPunct(",") {
		if p.isPunct("]") {
			break
		}
		arr.Elements = append(arr.Elements, p.parseExpr())
	}
	p.expectPunct("]")
	return arr
}

func (p *parser) parseObjectLit() ast.Node {
	pos := p.advance().Position // {
	n := &ast.ObjectLit{}
	n.Position = pos
	for !p.isPunct("}") && !p.atEOF() {
		key, _ := p.expectIdentifier()
		p.expectPunct(":")
		val := p.parseExpr()
		n.Keys = append(n.Keys, key)
		n.Values = append(n.Values, val)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	return n
}

// parseIdentOrStructConstruct disambiguates a bare identifier reference
// from `TypeName { field: value }` struct/variant construction by
// lookahead on whether `{` follows an identifier starting with an
// uppercase letter (the surface language's type-naming convention).
func (p *parser) parseIdentOrStructConstruct() ast.Node {
	name, pos := p.expectIdentifier()
	if p.isPunct("{") && startsUpper(name) {
		p.advance()
		n := &ast.StructuredConstruct{TypeName: name, VariantName: name}
		n.Position = pos
		for !p.isPunct("}") && !p.atEOF() {
			key, _ := p.expectIdentifier()
			p.expectPunct(":")
			val := p.parseExpr()
			n.Keys = append(n.Keys, key)
			n.Values = append(n.Values, val)
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct("}")
		return n
	}
	id := &ast.Identifier{Name: name}
	id.Position = pos
	return id
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	r := s[0]
	return r >= 'A' && r <= 'Z'
}
