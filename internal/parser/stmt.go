package parser

import (
	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/token"
)

// parseStatement dispatches on the leading token to produce one statement.
// It never returns nil: on a syntax error it returns an *ast.ErrorNode and
// has already recovered to the next statement boundary.
func (p *parser) parseStatement(anns []*ast.Annotation) ast.Node {
	switch {
	case p.isKeyword("varia"), p.isKeyword("fixum"):
		return p.parseVariableDecl(anns)
	case p.isKeyword("functio"):
		return p.parseFunction(anns, nil)
	case p.isKeyword("si"):
		return p.parseIf()
	case p.isKeyword("dum"):
		return p.parseWhile()
	case p.isKeyword("ex"):
		return p.parseImportOrForEach(anns)
	case p.isKeyword("de"):
		return p.parseForRange()
	case p.isKeyword("redde"):
		return p.parseReturn()
	case p.isKeyword("rumpe"):
		pos := p.advance().Position
		p.acceptPunct(";")
		n := &ast.Break{}
		n.Position = pos
		return n
	case p.isKeyword("perge"):
		pos := p.advance().Position
		p.acceptPunct(";")
		n := &ast.Continue{}
		n.Position = pos
		return n
	case p.isKeyword("tempta"):
		return p.parseTryCatchFinally()
	case p.isKeyword("iace"):
		return p.parseThrow(ast.ThrowRecoverable)
	case p.isKeyword("mori"):
		return p.parseThrow(ast.ThrowFatal)
	case p.isKeyword("scribe"):
		return p.parseOutput(ast.OutputLog)
	case p.isKeyword("vide"):
		return p.parseOutput(ast.OutputDebug)
	case p.isKeyword("mone"):
		return p.parseOutput(ast.OutputWarn)
	case p.isKeyword("adfirma"):
		return p.parseAssert()
	case p.isKeyword("cura"):
		return p.parseScopedResource()
	case p.isKeyword("fac"):
		return p.parseDoBlock()
	case p.isKeyword("nisi"):
		return p.parseGuard()
	case p.isKeyword("discerne"):
		return p.parseSwitchOnTag()
	case p.isKeyword("ordo"):
		return p.parseStruct(anns)
	case p.isKeyword("discretio"):
		return p.parseTaggedUnion(anns)
	case p.isKeyword("pactum"):
		return p.parseProtocol(anns)
	case p.isPunct(";"):
		pos := p.advance().Position
		n := &ast.NoOp{}
		n.Position = pos
		return n
	case p.isPunct("{"):
		return p.parseBlockAsSwitchOrPlain()
	default:
		return p.parseExprStatement()
	}
}

// parseBlockAsSwitchOrPlain disambiguates a bare block from a switch-on-tag:
// in this grammar, switch-on-tag always begins with the subject expression
// before its `{`, so a leading `{` is always a plain nested block.
func (p *parser) parseBlockAsSwitchOrPlain() ast.Node {
	return p.parseBlock()
}

func (p *parser) parseIf() *ast.If {
	pos := p.advance().Position // si
	n := &ast.If{}
	n.Position = pos
	n.Cond = p.parseExpr()
	n.Then = p.parseBlock()
	if p.acceptKeyword("secus") {
		if p.isKeyword("si") {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *parser) parseWhile() *ast.While {
	pos := p.advance().Position // dum
	n := &ast.While{}
	n.Position = pos
	n.Cond = p.parseExpr()
	n.Body = p.parseBlock()
	return n
}

func (p *parser) parseForEach() *ast.ForEach {
	pos := p.advance().Position // ex
	n := &ast.ForEach{}
	n.Position = pos
	n.Iterable = p.parseExpr()
	p.acceptKeyword("pro")
	n.Binding, _ = p.expectIdentifier()
	n.Body = p.parseBlock()
	return n
}

func (p *parser) parseForRange() *ast.ForRange {
	pos := p.advance().Position // de
	n := &ast.ForRange{}
	n.Position = pos
	n.Range = p.parseExpr()
	p.acceptKeyword("pro")
	n.Binding, _ = p.expectIdentifier()
	n.Body = p.parseBlock()
	return n
}

func (p *parser) parseReturn() *ast.Return {
	pos := p.advance().Position // redde
	n := &ast.Return{}
	n.Position = pos
	if !p.isPunct(";") && !p.isPunct("}") && !isStmtStartKeyword(p.cur()) {
		n.Value = p.parseExpr()
	}
	p.acceptPunct(";")
	return n
}

func (p *parser) parseTryCatchFinally() *ast.TryCatchFinally {
	pos := p.advance().Position // tempta
	n := &ast.TryCatchFinally{}
	n.Position = pos
	n.Try = p.parseBlock()
	if p.acceptKeyword("cape") {
		n.CatchBind, _ = p.expectIdentifier()
		n.Catch = p.parseBlock()
	}
	if p.acceptKeyword("demum") {
		n.Finally = p.parseBlock()
	}
	return n
}

func (p *parser) parseThrow(kind ast.ThrowKind) *ast.Throw {
	pos := p.advance().Position
	n := &ast.Throw{ThrowKind: kind}
	n.Position = pos
	n.Value = p.parseExpr()
	p.acceptPunct(";")
	return n
}

func (p *parser) parseOutput(level ast.OutputLevel) *ast.Output {
	pos := p.advance().Position
	n := &ast.Output{Level: level}
	n.Position = pos
	n.Value = p.parseExpr()
	p.acceptPunct(";")
	return n
}

func (p *parser) parseAssert() *ast.Assert {
	pos := p.advance().Position // adfirma
	n := &ast.Assert{}
	n.Position = pos
	n.Cond = p.parseExpr()
	if p.acceptPunct(",") {
		n.Message = p.parseExpr()
	}
	p.acceptPunct(";")
	return n
}

func (p *parser) parseScopedResource() *ast.ScopedResource {
	pos := p.advance().Position // cura
	n := &ast.ScopedResource{Kind: ast.ResourcePlain}
	n.Position = pos
	n.Resource = p.parseExpr()
	if p.acceptKeyword("with") {
		n.Binding, _ = p.expectIdentifier()
	}
	if t := p.cur(); t.Kind == token.Identifier && (t.Lexeme == "arena" || t.Lexeme == "page") {
		if t.Lexeme == "arena" {
			n.Kind = ast.ResourceArena
		} else {
			n.Kind = ast.ResourcePage
		}
		p.advance()
	}
	n.Body = p.parseBlock()
	return n
}

func (p *parser) parseDoBlock() *ast.DoBlock {
	pos := p.advance().Position // fac
	n := &ast.DoBlock{}
	n.Position = pos
	n.Body = p.parseBlock()
	if p.acceptKeyword("cape") {
		n.CatchBind, _ = p.expectIdentifier()
		n.Catch = p.parseBlock()
	}
	if p.acceptKeyword("dum") {
		n.While = p.parseExpr()
	}
	return n
}

// parseGuard is `nisi cond { else-body }`: an early-exit conditional. When
// cond is false at runtime, Else runs and control leaves the enclosing
// block (codegen emits the target's native early-return idiom).
func (p *parser) parseGuard() *ast.Guard {
	pos := p.advance().Position // nisi
	n := &ast.Guard{}
	n.Position = pos
	n.Cond = p.parseExpr()
	n.Else = p.parseBlock()
	return n
}

// parseSwitchOnTag is `discerne subject { casus Variant(bindings...) { ... }
// ... defecto { ... } }`. A tag-only case (`casus Quit { ... }`) is told
// from one that destructures fields (`casus Click(x, y) { ... }`) by
// whether `(` follows the variant name.
func (p *parser) parseSwitchOnTag() *ast.SwitchOnTag {
	pos := p.advance().Position // discerne
	n := &ast.SwitchOnTag{}
	n.Position = pos
	n.Subject = p.parseExpr()
	p.expectPunct("{")
	for !p.isPunct("}") && !p.atEOF() {
		switch {
		case p.isKeyword("casus"):
			p.advance()
			variantName, _ := p.expectIdentifier()
			c := ast.SwitchCase{VariantName: variantName}
			if p.acceptPunct("(") {
				for !p.isPunct(")") && !p.atEOF() {
					name, _ := p.expectIdentifier()
					c.Bindings = append(c.Bindings, name)
					if !p.acceptPunct(",") {
						break
					}
				}
				p.expectPunct(")")
			}
			c.Body = p.parseBlock()
			n.Cases = append(n.Cases, c)
		case p.isKeyword("defecto"):
			p.advance()
			n.Default = p.parseBlock()
		default:
			p.errorf("expected casus/defecto inside discerne, found %q", p.cur().Lexeme)
			p.recoverToStatementBoundary()
		}
	}
	p.expectPunct("}")
	return n
}

func (p *parser) parseExprStatement() ast.Node {
	pos := p.cur().Position
	expr := p.parseExpr()
	if p.isPunct("=") || isCompoundAssignOp(p.cur()) {
		op := p.advance().Lexeme
		val := p.parseExpr()
		n := &ast.Assignment{Op: op, Target: expr, Value: val}
		n.Position = pos
		p.acceptPunct(";")
		return n
	}
	p.acceptPunct(";")
	n := &ast.ExprStmt{Expr: expr}
	n.Position = pos
	return n
}

func isCompoundAssignOp(t token.Token) bool {
	if t.Kind != token.Operator {
		return false
	}
	switch t.Lexeme {
	case "+=", "-=", "*=", "/=", "%=":
		return true
	}
	return false
}
