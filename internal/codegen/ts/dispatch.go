// Package ts implements codegen.Target for TypeScript: the reference target,
// whose capability row marks no feature Unsupported (arena allocators and
// comprehensions are Emulated). Registers itself with internal/codegen from init,
// mirroring the teacher's lang.Register pattern.
package ts

import (
	"fmt"
	"strings"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/codegen"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/norma"
	"github.com/oxhq/fabc/internal/sema"
)

func init() {
	codegen.Register(&dispatcher{})
}

type dispatcher struct{}

func (d *dispatcher) Target() string { return norma.TargetTS }

func (d *dispatcher) Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List) {
	return codegen.Run(&target{}, prog, types)
}

type target struct{}

func (t *target) Name() string       { return norma.TargetTS }
func (t *target) IndentUnit() string { return "  " }
func (t *target) StmtTerm() string   { return ";" }
func (t *target) SelfName() string   { return "this" }
func (t *target) NullLiteral() string { return "null" }

func (t *target) BoolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (t *target) Operator(op string) string { return op }

func (t *target) NullCoalesce(e *codegen.Engine, left, right string) string {
	return fmt.Sprintf("(%s ?? %s)", left, right)
}

func (t *target) Preamble(e *codegen.Engine) []string {
	var lines []string
	for _, imp := range e.Imports() {
		lines = append(lines, imp)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

func (t *target) FuncHeader(e *codegen.Engine, fn *ast.Function) string {
	var b strings.Builder
	if fn.Async {
		b.WriteString("async ")
	}
	b.WriteString("function ")
	if fn.Generator {
		b.WriteString("*")
	}
	b.WriteString(fn.Name)
	b.WriteString("(")
	b.WriteString(t.paramList(e, fn.Receiver, fn.Params))
	b.WriteString(")")
	if fn.ReturnType != nil {
		b.WriteString(": ")
		b.WriteString(t.TypeRef(e, fn.ReturnType))
	}
	b.WriteString(" {")
	return b.String()
}

func (t *target) paramList(e *codegen.Engine, recv *ast.Param, params []ast.Param) string {
	var parts []string
	if recv != nil {
		parts = append(parts, "this: "+recv.DeclaredType.Name)
	}
	for _, p := range params {
		part := p.Name
		if p.DeclaredType != nil {
			part += ": " + t.TypeRef(e, p.DeclaredType)
		}
		if p.Default != nil {
			part += " = " + e.ExprOf(p.Default)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func (t *target) LambdaWrap(e *codegen.Engine, lam *ast.Lambda, body string) string {
	var params []string
	for _, p := range lam.Params {
		params = append(params, p.Name)
	}
	prefix := "("
	if lam.Async {
		prefix = "async ("
	}
	return fmt.Sprintf("%s%s) => %s", prefix, strings.Join(params, ", "), body)
}

func (t *target) StructDecl(e *codegen.Engine, s *ast.Struct) []string {
	lines := []string{fmt.Sprintf("interface %s {", s.Name)}
	for _, f := range s.Fields {
		opt := ""
		if f.DeclaredType != nil && f.DeclaredType.Nullable {
			opt = "?"
		}
		lines = append(lines, fmt.Sprintf("  %s%s: %s;", f.Name, opt, t.TypeRef(e, f.DeclaredType)))
	}
	lines = append(lines, "}")
	return lines
}

// TaggedUnionDecl emits each variant as a standalone object-literal type
// alias (spec §8's worked example: `type Click = { tag: 'Click'; x: number;
// y: number };`, `type Quit = { tag: 'Quit'; };`) rather than an interface,
// plus the discriminated-union alias over all variant names.
func (t *target) TaggedUnionDecl(e *codegen.Engine, tu *ast.TaggedUnion) []string {
	var lines []string
	var variantNames []string
	for _, v := range tu.Variants {
		variantNames = append(variantNames, v.Name)
		members := []string{fmt.Sprintf("tag: '%s'", v.Name)}
		for _, f := range v.Fields {
			members = append(members, fmt.Sprintf("%s: %s", f.Name, t.TypeRef(e, f.DeclaredType)))
		}
		body := strings.Join(members, "; ")
		if len(v.Fields) == 0 {
			body += ";"
		}
		lines = append(lines, fmt.Sprintf("type %s = { %s };", v.Name, body))
	}
	lines = append(lines, fmt.Sprintf("type %s = %s;", tu.Name, strings.Join(variantNames, " | ")))
	return lines
}

func (t *target) ProtocolDecl(e *codegen.Engine, p *ast.Protocol) []string {
	lines := []string{fmt.Sprintf("interface %s {", p.Name)}
	for _, m := range p.Methods {
		lines = append(lines, fmt.Sprintf("  %s(%s): %s;", m.Name, t.paramList(e, nil, m.Params), t.TypeRef(e, m.ReturnType)))
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TypeAliasDecl(e *codegen.Engine, ta *ast.TypeAlias) []string {
	return []string{fmt.Sprintf("type %s = %s;", ta.Name, t.TypeRef(e, ta.Type))}
}

func (t *target) EntryPointWrap(e *codegen.Engine, ep *ast.EntryPoint, body []string) []string {
	header := "function main() {"
	if ep.Async {
		header = "async function main() {"
	}
	lines := []string{header}
	lines = append(lines, body...)
	lines = append(lines, "}")
	lines = append(lines, "main();")
	return lines
}

func (t *target) TestSuiteDecl(e *codegen.Engine, ts *ast.TestSuite) []string {
	lines := []string{fmt.Sprintf("describe(%q, () => {", ts.Name)}
	if ts.Setup != nil {
		lines = append(lines, "  beforeEach(() => {")
		lines = append(lines, e.Block(ts.Setup.Body)...)
		lines = append(lines, "  });")
	}
	for _, c := range ts.Cases {
		lines = append(lines, fmt.Sprintf("  it(%q, () => {", c.Name))
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "  });")
	}
	lines = append(lines, "});")
	return lines
}

func (t *target) VarDeclLine(e *codegen.Engine, v *ast.Variable, value string) string {
	kw := "const"
	if v.Mutable {
		kw = "let"
	}
	decl := kw + " " + v.Name
	if v.DeclaredType != nil {
		decl += ": " + t.TypeRef(e, v.DeclaredType)
	}
	if v.Init != nil {
		decl += " = " + value
	}
	return decl + ";"
}

func (t *target) DestructuringBindLine(e *codegen.Engine, d *ast.DestructuringBind, value string) string {
	kw := "const"
	if d.Mutable {
		kw = "let"
	}
	return fmt.Sprintf("%s { %s } = %s;", kw, strings.Join(d.Names, ", "), value)
}

func (t *target) SwitchOnTag(e *codegen.Engine, n *ast.SwitchOnTag) []string {
	subject := e.ExprOf(n.Subject)
	lines := []string{fmt.Sprintf("switch (%s.tag) {", subject)}
	for _, c := range n.Cases {
		lines = append(lines, fmt.Sprintf("  case %q: {", c.VariantName))
		for _, b := range c.Bindings {
			lines = append(lines, fmt.Sprintf("    const { %s } = %s;", b, subject))
		}
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "    break;")
		lines = append(lines, "  }")
	}
	if n.Default != nil {
		lines = append(lines, "  default: {")
		lines = append(lines, e.Block(n.Default)...)
		lines = append(lines, "  }")
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TryCatchFinally(e *codegen.Engine, n *ast.TryCatchFinally) []string {
	lines := []string{"try {"}
	lines = append(lines, e.Block(n.Try)...)
	if n.Catch != nil {
		bind := n.CatchBind
		if bind == "" {
			bind = "_err"
		}
		lines = append(lines, fmt.Sprintf("} catch (%s) {", bind))
		lines = append(lines, e.Block(n.Catch)...)
	}
	if n.Finally != nil {
		lines = append(lines, "} finally {")
		lines = append(lines, e.Block(n.Finally)...)
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) ScopedResource(e *codegen.Engine, n *ast.ScopedResource) []string {
	resource := e.ExprOf(n.Resource)
	lines := []string{fmt.Sprintf("{ using %s = %s;", n.Binding, resource)}
	lines = append(lines, e.Block(n.Body)...)
	lines = append(lines, "}")
	return lines
}

func (t *target) ThrowLine(e *codegen.Engine, n *ast.Throw, value string) string {
	if value == "" {
		return "throw new Error();"
	}
	return fmt.Sprintf("throw new Error(%s);", value)
}

func (t *target) OutputLine(e *codegen.Engine, n *ast.Output, value string) string {
	switch n.Level {
	case ast.OutputDebug:
		return fmt.Sprintf("console.debug(%s);", value)
	case ast.OutputWarn:
		return fmt.Sprintf("console.warn(%s);", value)
	default:
		return fmt.Sprintf("console.log(%s);", value)
	}
}

func (t *target) ForEachHeader(e *codegen.Engine, n *ast.ForEach, iterable string) string {
	return fmt.Sprintf("for (const %s of %s) {", n.Binding, iterable)
}

func (t *target) ForRangeHeader(e *codegen.Engine, n *ast.ForRange, rng string) string {
	r, ok := n.Range.(*ast.RangeExpr)
	if !ok {
		return fmt.Sprintf("for (const %s of %s) {", n.Binding, rng)
	}
	op := "<"
	if r.Inclusive {
		op = "<="
	}
	start, end := e.ExprOf(r.Start), e.ExprOf(r.End)
	return fmt.Sprintf("for (let %s = %s; %s %s %s; %s++) {", n.Binding, start, n.Binding, op, end, n.Binding)
}

func (t *target) New(e *codegen.Engine, n *ast.New, args []string) string {
	return fmt.Sprintf("new %s(%s)", n.Type.Name, strings.Join(args, ", "))
}

func (t *target) StructuredConstruct(e *codegen.Engine, n *ast.StructuredConstruct, values []string) string {
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, values[i])
	}
	if n.VariantName != "" {
		parts = append([]string{fmt.Sprintf("tag: %q", n.VariantName)}, parts...)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (t *target) CollectionDSL(e *codegen.Engine, n *ast.CollectionDSL, elements []string, keys []string) string {
	switch n.CollectionKind {
	case "map":
		parts := make([]string, len(elements))
		for i, v := range elements {
			parts[i] = fmt.Sprintf("[%s, %s]", keys[i], v)
		}
		return fmt.Sprintf("new Map([%s])", strings.Join(parts, ", "))
	case "set":
		return fmt.Sprintf("new Set([%s])", strings.Join(elements, ", "))
	default:
		return "[" + strings.Join(elements, ", ") + "]"
	}
}

func (t *target) Comprehension(e *codegen.Engine, n *ast.Comprehension, result, iterable, cond string) string {
	if cond != "" {
		return fmt.Sprintf("%s.filter((%s) => %s).map((%s) => %s)", iterable, n.Binding, cond, n.Binding, result)
	}
	return fmt.Sprintf("%s.map((%s) => %s)", iterable, n.Binding, result)
}

func (t *target) TypeConversion(e *codegen.Engine, n *ast.TypeConversion, value, radix, fallback string) string {
	var call string
	switch n.ConversionKind {
	case ast.ConvertToInteger:
		if radix != "" {
			call = fmt.Sprintf("parseInt(String(%s), %s)", value, radix)
		} else {
			call = fmt.Sprintf("parseInt(String(%s), 10)", value)
		}
	case ast.ConvertToFraction:
		call = fmt.Sprintf("parseFloat(String(%s))", value)
	case ast.ConvertToString:
		call = fmt.Sprintf("String(%s)", value)
	default:
		call = fmt.Sprintf("Boolean(%s)", value)
	}
	if fallback != "" {
		return fmt.Sprintf("(Number.isNaN(%s) ? %s : %s)", call, fallback, call)
	}
	return call
}

func (t *target) FormatString(e *codegen.Engine, n *ast.FormatString, args []string) string {
	out := n.Template
	out = strings.ReplaceAll(out, "§", "${"+firstOr(args, "")+"}")
	for i, a := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("§%d", i+1), "${"+a+"}")
	}
	return "`" + out + "`"
}

func firstOr(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return args[0]
}

func (t *target) RegexLiteral(e *codegen.Engine, n *ast.Regex) string {
	return fmt.Sprintf("/%s/%s", n.Pattern, n.Flags)
}

func (t *target) TemplateLiteral(e *codegen.Engine, n *ast.TemplateLiteral, parts []string) string {
	var b strings.Builder
	b.WriteString("`")
	for i, part := range parts {
		if lit, ok := n.Parts[i].(*ast.Literal); ok && lit.LitKind == ast.LitString {
			b.WriteString(lit.Raw)
			continue
		}
		b.WriteString("${")
		b.WriteString(part)
		b.WriteString("}")
	}
	b.WriteString("`")
	return b.String()
}

func (t *target) TypeRef(e *codegen.Engine, nt *ast.NamedType) string {
	if nt == nil {
		return "void"
	}
	if nt.FunctionShape != nil {
		var params []string
		for i, p := range nt.FunctionShape.Params {
			params = append(params, fmt.Sprintf("a%d: %s", i, t.TypeRef(e, p)))
		}
		return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), t.TypeRef(e, nt.FunctionShape.Return))
	}
	name := tsBuiltinName(nt.Name)
	args := e.TypeArgs(nt)
	if len(args) > 0 {
		switch name {
		case "Array":
			name = args[0] + "[]"
			args = nil
		default:
			name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
			args = nil
		}
	}
	if nt.Nullable {
		name += " | null"
	}
	return name
}

func tsBuiltinName(name string) string {
	switch name {
	case "integer-64", "fraction-64":
		return "number"
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "list":
		return "Array"
	case "map":
		return "Map"
	case "set":
		return "Set"
	default:
		return name
	}
}
