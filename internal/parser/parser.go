// Package parser implements the hand-written recursive-descent parser for
// the surface language. There is no backtracking, and most productions
// decide on the current token alone. Two look further ahead: telling an
// import from a for-each after `ex` peeks two tokens, and telling a lambda
// from a parenthesized expression scans forward to the matching `)`. Every
// production function returns an AST node; on a recoverable error it
// returns an *ast.ErrorNode rather than nil, so the tree never has a hole.
package parser

import (
	"fmt"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/token"
)

// Parse builds a Program from tok, the token stream produced by the
// tokenizer for file.
func Parse(file string, toks []token.Token) (*ast.Program, *diag.List) {
	p := &parser{file: file, toks: toks, diags: &diag.List{}}
	prog := p.parseProgram()
	return prog, p.diags
}

type parser struct {
	file  string
	toks  []token.Token
	pos   int
	diags *diag.List
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) isKeyword(lexeme string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Lexeme == lexeme
}

func (p *parser) isPunct(lexeme string) bool {
	t := p.cur()
	return (t.Kind == token.Punctuation || t.Kind == token.Operator) && t.Lexeme == lexeme
}

func (p *parser) acceptPunct(lexeme string) bool {
	if p.isPunct(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptKeyword(lexeme string) bool {
	if p.isKeyword(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectPunct(lexeme string) bool {
	if p.acceptPunct(lexeme) {
		return true
	}
	p.errorf("expected %q, found %q", lexeme, p.cur().Lexeme)
	return false
}

func (p *parser) expectIdentifier() (string, token.Position) {
	t := p.cur()
	if t.Kind == token.Identifier {
		p.advance()
		return t.Lexeme, t.Position
	}
	p.errorf("expected identifier, found %q", t.Lexeme)
	return "", t.Position
}

func (p *parser) errorf(format string, args ...any) {
	p.diags.Errorf(diag.PhaseParser, diag.Syntactic, p.cur().Position, format, args...)
}

// errorHint raises a syntax diagnostic carrying a corrective hint, used when
// the parser can name what the author probably meant (e.g. a misspelled
// keyword close to a known one).
func (p *parser) errorHint(hint string, format string, args ...any) {
	p.diags.Add(diag.Diagnostic{
		Severity: diag.SeverityError,
		Category: diag.Syntactic,
		Phase:    diag.PhaseParser,
		Position: p.cur().Position,
		Hint:     hint,
		Message:  fmt.Sprintf(format, args...),
	})
}

// recoverToStatementBoundary skips tokens until a newline-equivalent
// statement boundary: here, since the tokenizer discards newlines, that
// boundary is a block-close `}`, a `;`, or a keyword known to begin a
// statement. It never consumes the boundary token itself when it is `}`.
func (p *parser) recoverToStatementBoundary() {
	for !p.atEOF() {
		if p.isPunct("}") {
			return
		}
		if p.acceptPunct(";") {
			return
		}
		if isStmtStartKeyword(p.cur()) {
			return
		}
		p.advance()
	}
}

func isStmtStartKeyword(t token.Token) bool {
	if t.Kind != token.Keyword {
		return false
	}
	switch t.Lexeme {
	case "varia", "fixum", "si", "dum", "ex", "de", "redde", "rumpe", "perge",
		"tempta", "iace", "mori", "scribe", "vide", "mone", "adfirma", "fac",
		"functio", "ordo", "discretio", "pactum", "cura", "incipit", "incipiet",
		"probandum", "proba", "praepara", "postpara", "discerne", "nisi":
		return true
	}
	return false
}

func (p *parser) errorNode() *ast.ErrorNode {
	pos := p.cur().Position
	n := &ast.ErrorNode{Message: "syntax error"}
	n.Position = pos
	p.recoverToStatementBoundary()
	return n
}

// parseProgram parses an entire file: a sequence of annotated declarations.
func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	if len(p.toks) > 0 {
		prog.Position = p.toks[0].Position
	}
	for !p.atEOF() {
		anns := p.parseAnnotations()
		if p.atEOF() {
			prog.Annotations = append(prog.Annotations, anns...)
			break
		}
		decl := p.parseDeclaration(anns)
		if decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
	}
	return prog
}

// parseAnnotations consumes zero or more `@name ...` annotations preceding
// a declaration or statement.
func (p *parser) parseAnnotations() []*ast.Annotation {
	var out []*ast.Annotation
	for p.isPunct("@") {
		out = append(out, p.parseAnnotation())
	}
	return out
}

// parseAnnotation parses `@name`, `@name value`, or `@name(field: value, ...)`.
func (p *parser) parseAnnotation() *ast.Annotation {
	pos := p.cur().Position
	p.advance() // '@'
	name, _ := p.expectIdentifier()
	ann := &ast.Annotation{Name: name, Fields: map[string]string{}}
	ann.Position = pos

	if p.acceptPunct("(") {
		for !p.isPunct(")") && !p.atEOF() {
			key, _ := p.expectIdentifier()
			p.expectPunct(":")
			val := p.parseAnnotationValue()
			ann.Fields[key] = val
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct(")")
		return ann
	}

	// Bare value form: consume tokens up to the next '@' or declaration
	// boundary, one Args entry per token lexeme.
	for !p.atEOF() && !p.isPunct("@") && !isStmtStartKeyword(p.cur()) && !p.isPunct("{") {
		ann.Args = append(ann.Args, p.cur().Lexeme)
		p.advance()
	}
	return ann
}

func (p *parser) parseAnnotationValue() string {
	t := p.advance()
	return t.Lexeme
}

// parseDeclaration dispatches on the leading keyword.
func (p *parser) parseDeclaration(anns []*ast.Annotation) ast.Node {
	switch {
	case p.isKeyword("ex"):
		return p.parseImportOrForEach(anns)
	case p.isKeyword("varia"), p.isKeyword("fixum"):
		return p.parseVariableDecl(anns)
	case p.isKeyword("functio"):
		return p.parseFunction(anns, nil)
	case p.isKeyword("ordo"):
		return p.parseStruct(anns)
	case p.isKeyword("discretio"):
		return p.parseTaggedUnion(anns)
	case p.isKeyword("pactum"):
		return p.parseProtocol(anns)
	case p.isKeyword("incipit"), p.isKeyword("incipiet"):
		return p.parseEntryPoint(anns)
	case p.isKeyword("probandum"):
		return p.parseTestSuite(anns)
	default:
		return p.parseStatement(anns)
	}
}

// parseImportOrForEach disambiguates `ex "path" importa ...` from the
// `ex iterable pro name { ... }` for-each statement by lookahead on whether
// a string literal immediately follows `ex`.
func (p *parser) parseImportOrForEach(anns []*ast.Annotation) ast.Node {
	if p.peekAt(1).Kind == token.StringLiteral && p.peekAt(2).Kind == token.Keyword && p.peekAt(2).Lexeme == "importa" {
		return p.parseImport()
	}
	return p.parseForEach()
}

func (p *parser) parseImport() *ast.Import {
	pos := p.cur().Position
	p.advance() // ex
	pathTok := p.advance()
	p.acceptKeyword("importa")
	n := &ast.Import{Path: pathTok.Raw}
	n.Position = pos
	for {
		name, _ := p.expectIdentifier()
		if name != "" {
			n.Names = append(n.Names, name)
		}
		if !p.acceptPunct(",") {
			break
		}
	}
	return n
}

func (p *parser) parseVariableDecl(anns []*ast.Annotation) *ast.Variable {
	pos := p.cur().Position
	mutable := p.cur().Lexeme == "varia"
	p.advance()
	if p.isPunct("{") {
		return p.parseDestructuringAsVariable(pos, mutable, anns)
	}
	name, _ := p.expectIdentifier()
	n := &ast.Variable{Name: name, Mutable: mutable, Annotations: anns}
	n.Position = pos
	if p.acceptPunct(":") {
		n.DeclaredType = p.parseType()
	}
	if p.acceptPunct("=") {
		n.Init = p.parseExpr()
	}
	p.acceptPunct(";")
	return n
}

// parseDestructuringAsVariable handles `varia {x, y} = point`, returning a
// Variable whose Init wraps a DestructuringBind isn't representable in a
// single node, so we surface a DestructuringBind wrapped as an ExprStmt is
// wrong too; instead return a synthetic Variable carrying no declared type
// and delegate to a dedicated node via Init being the bind itself is also
// awkward. We resolve this by returning the DestructuringBind cast through
// an adapter stored in Init for the semantic analyzer to special-case.
func (p *parser) parseDestructuringAsVariable(pos token.Position, mutable bool, anns []*ast.Annotation) *ast.Variable {
	bind := p.parseDestructuringBind(pos, mutable)
	v := &ast.Variable{Name: "", Mutable: mutable, Annotations: anns}
	v.Position = pos
	v.Init = bind
	return v
}

func (p *parser) parseDestructuringBind(pos token.Position, mutable bool) *ast.DestructuringBind {
	p.expectPunct("{")
	bind := &ast.DestructuringBind{Mutable: mutable}
	bind.Position = pos
	for !p.isPunct("}") && !p.atEOF() {
		name, _ := p.expectIdentifier()
		bind.Names = append(bind.Names, name)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	if p.acceptPunct("=") {
		bind.Initializer = p.parseExpr()
	}
	p.acceptPunct(";")
	return bind
}

func (p *parser) parseFunction(anns []*ast.Annotation, receiver *ast.Param) *ast.Function {
	pos := p.cur().Position
	async := false
	p.advance() // functio
	if p.acceptKeyword("futura") {
		async = true
	}
	generator := p.acceptKeyword("cursor")
	name, _ := p.expectIdentifier()
	fn := &ast.Function{Name: name, Async: async, Generator: generator, Receiver: receiver, Annotations: anns}
	fn.Position = pos

	p.expectPunct("(")
	for !p.isPunct(")") && !p.atEOF() {
		fn.Params = append(fn.Params, p.parseParam())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct(")")

	if p.acceptPunct("->") {
		fn.ReturnType = p.parseType()
	}
	if p.acceptKeyword("mori") {
		fn.Throws = true
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *parser) parseParam() ast.Param {
	mutRecv := p.acceptKeyword("mutable")
	_ = mutRecv
	name, _ := p.expectIdentifier()
	param := ast.Param{Name: name}
	if p.acceptPunct(":") {
		param.DeclaredType = p.parseType()
	}
	if p.acceptPunct("=") {
		param.Default = p.parseExpr()
	}
	return param
}

func (p *parser) parseStruct(anns []*ast.Annotation) *ast.Struct {
	pos := p.cur().Position
	p.advance() // ordo
	name, _ := p.expectIdentifier()
	s := &ast.Struct{Name: name, Annotations: anns}
	s.Position = pos
	p.expectPunct("{")
	for !p.isPunct("}") && !p.atEOF() {
		s.Fields = append(s.Fields, p.parseFieldDeclaration())
		p.acceptPunct(",")
	}
	p.expectPunct("}")
	return s
}

func (p *parser) parseFieldDeclaration() *ast.FieldDeclaration {
	fieldAnns := p.parseAnnotations()
	pos := p.cur().Position
	name, _ := p.expectIdentifier()
	f := &ast.FieldDeclaration{Name: name, Annotations: fieldAnns}
	f.Position = pos
	if p.acceptPunct(":") {
		f.DeclaredType = p.parseType()
	}
	if p.acceptPunct("=") {
		f.Default = p.parseExpr()
	}
	return f
}

func (p *parser) parseTaggedUnion(anns []*ast.Annotation) *ast.TaggedUnion {
	pos := p.cur().Position
	p.advance() // discretio
	name, _ := p.expectIdentifier()
	u := &ast.TaggedUnion{Name: name}
	u.Position = pos
	p.expectPunct("{")
	for !p.isPunct("}") && !p.atEOF() {
		u.Variants = append(u.Variants, p.parseVariant())
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	return u
}

// parseVariant tells a tag-only variant (`Quit`) from one followed by a
// field block (`Click { x, y }`) by whether `{` follows the name.
func (p *parser) parseVariant() ast.UnionVariant {
	name, _ := p.expectIdentifier()
	v := ast.UnionVariant{Name: name}
	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			v.Fields = append(v.Fields, p.parseFieldDeclaration())
			if !p.acceptPunct(",") {
				break
			}
		}
		p.expectPunct("}")
	}
	return v
}

func (p *parser) parseProtocol(anns []*ast.Annotation) *ast.Protocol {
	pos := p.cur().Position
	p.advance() // pactum
	name, _ := p.expectIdentifier()
	proto := &ast.Protocol{Name: name}
	proto.Position = pos
	p.expectPunct("{")
	for !p.isPunct("}") && !p.atEOF() {
		methodAnns := p.parseAnnotations()
		if p.isKeyword("functio") {
			fnPos := p.cur().Position
			p.advance()
			async := p.acceptKeyword("futura")
			mname, _ := p.expectIdentifier()
			fn := &ast.Function{Name: mname, Async: async, Annotations: methodAnns}
			fn.Position = fnPos
			p.expectPunct("(")
			for !p.isPunct(")") && !p.atEOF() {
				fn.Params = append(fn.Params, p.parseParam())
				if !p.acceptPunct(",") {
					break
				}
			}
			p.expectPunct(")")
			if p.acceptPunct("->") {
				fn.ReturnType = p.parseType()
			}
			p.acceptPunct(";")
			proto.Methods = append(proto.Methods, fn)
			continue
		}
		p.advance()
	}
	p.expectPunct("}")
	return proto
}

func (p *parser) parseEntryPoint(anns []*ast.Annotation) *ast.EntryPoint {
	pos := p.cur().Position
	async := p.cur().Lexeme == "incipiet"
	p.advance()
	e := &ast.EntryPoint{Async: async, Annotations: anns}
	e.Position = pos
	e.Body = p.parseBlock()
	return e
}

func (p *parser) parseTestSuite(anns []*ast.Annotation) *ast.TestSuite {
	pos := p.cur().Position
	p.advance() // probandum
	nameTok := p.advance()
	suite := &ast.TestSuite{Name: nameTok.Raw}
	suite.Position = pos
	p.expectPunct("{")
	for !p.isPunct("}") && !p.atEOF() {
		switch {
		case p.isKeyword("praepara"):
			spos := p.cur().Position
			p.advance()
			st := &ast.SetupTeardown{Body: p.parseBlock()}
			st.Position = spos
			suite.Setup = st
		case p.isKeyword("postpara"):
			spos := p.cur().Position
			p.advance()
			st := &ast.SetupTeardown{Body: p.parseBlock()}
			st.Position = spos
			suite.Teardown = st
		case p.isKeyword("proba"):
			cpos := p.cur().Position
			p.advance()
			nameTok := p.advance()
			tc := &ast.TestCase{Name: nameTok.Raw, Body: p.parseBlock()}
			tc.Position = cpos
			suite.Cases = append(suite.Cases, tc)
		default:
			p.errorf("expected proba/praepara/postpara inside probandum, found %q", p.cur().Lexeme)
			p.recoverToStatementBoundary()
		}
	}
	p.expectPunct("}")
	return suite
}

func (p *parser) parseBlock() *ast.Block {
	pos := p.cur().Position
	b := &ast.Block{}
	b.Position = pos
	if !p.expectPunct("{") {
		return b
	}
	for !p.isPunct("}") && !p.atEOF() {
		anns := p.parseAnnotations()
		stmt := p.parseStatement(anns)
		if stmt != nil {
			b.Statements = append(b.Statements, stmt)
		}
	}
	p.expectPunct("}")
	return b
}
