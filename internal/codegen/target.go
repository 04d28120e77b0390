package codegen

import "github.com/oxhq/fabc/internal/ast"

// Target supplies the pieces of emission that genuinely diverge between the
// five brace-delimited targets (TypeScript, Rust, Zig, Go, C++); Engine
// drives the traversal and calls back into Target only where a language's
// idiom can't be expressed by a shared template. Python diverges enough
// (indentation blocks, no statement terminator, no braces) that its
// dispatcher in internal/codegen/py does not use Engine/Target at all.
type Target interface {
	Name() string
	IndentUnit() string
	StmtTerm() string
	SelfName() string
	NullLiteral() string
	BoolLiteral(v bool) string

	// Operator maps a source operator token (as parsed) to this target's
	// spelling of the same operator. Most entries are the identity.
	Operator(op string) string

	// NullCoalesce renders `left ?? right` for targets without a native
	// operator of the same shape.
	NullCoalesce(e *Engine, left, right string) string

	FuncHeader(e *Engine, fn *ast.Function) string
	LambdaWrap(e *Engine, lam *ast.Lambda, body string) string
	StructDecl(e *Engine, s *ast.Struct) []string
	TaggedUnionDecl(e *Engine, tu *ast.TaggedUnion) []string
	ProtocolDecl(e *Engine, p *ast.Protocol) []string
	TypeAliasDecl(e *Engine, ta *ast.TypeAlias) []string
	EntryPointWrap(e *Engine, ep *ast.EntryPoint, body []string) []string
	TestSuiteDecl(e *Engine, ts *ast.TestSuite) []string

	VarDeclLine(e *Engine, v *ast.Variable, value string) string
	DestructuringBindLine(e *Engine, d *ast.DestructuringBind, value string) string

	SwitchOnTag(e *Engine, n *ast.SwitchOnTag) []string
	TryCatchFinally(e *Engine, n *ast.TryCatchFinally) []string
	ScopedResource(e *Engine, n *ast.ScopedResource) []string
	ThrowLine(e *Engine, n *ast.Throw, value string) string
	OutputLine(e *Engine, n *ast.Output, value string) string
	ForEachHeader(e *Engine, n *ast.ForEach, iterable string) string
	ForRangeHeader(e *Engine, n *ast.ForRange, rng string) string

	New(e *Engine, n *ast.New, args []string) string
	StructuredConstruct(e *Engine, n *ast.StructuredConstruct, values []string) string
	CollectionDSL(e *Engine, n *ast.CollectionDSL, elements []string, keys []string) string
	Comprehension(e *Engine, n *ast.Comprehension, result, iterable, cond string) string
	TypeConversion(e *Engine, n *ast.TypeConversion, value, radix, fallback string) string
	FormatString(e *Engine, n *ast.FormatString, args []string) string
	RegexLiteral(e *Engine, n *ast.Regex) string
	TemplateLiteral(e *Engine, n *ast.TemplateLiteral, parts []string) string
	TypeRef(e *Engine, t *ast.NamedType) string

	Preamble(e *Engine) []string
}
