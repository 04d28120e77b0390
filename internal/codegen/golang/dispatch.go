// Package golang implements codegen.Target for Go. Exceptions have no Go
// analogue, so Throw/TryCatchFinally lower to the (value, error) idiom:
// a throwing function gains an error return, and a catch arm becomes an
// `if err != nil` branch immediately after the fallible call sequence.
package golang

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/codegen"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/norma"
	"github.com/oxhq/fabc/internal/sema"
)

// titleCaser capitalizes only the first letter of a stem (cases.NoLower
// leaves the rest untouched), giving Go's exported-identifier convention
// without clobbering an already-camelCased remainder like "userId".
var titleCaser = cases.Title(language.Und, cases.NoLower)

func init() {
	codegen.Register(&dispatcher{pkgName: "main"})
}

// dispatcher carries the -p package-name CLI flag; every other target
// ignores it entirely.
type dispatcher struct {
	pkgName string
}

func (d *dispatcher) Target() string { return norma.TargetGo }

// SetPackageName overrides the emitted package clause for the next Emit
// call. internal/compiler calls this when Options.PackageName is set.
func (d *dispatcher) SetPackageName(name string) {
	if name != "" {
		d.pkgName = name
	}
}

func (d *dispatcher) Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List) {
	pkg := d.pkgName
	if pkg == "" {
		pkg = "main"
	}
	return codegen.Run(&target{pkgName: pkg}, prog, types)
}

type target struct {
	pkgName string
}

func (t *target) Name() string        { return norma.TargetGo }
func (t *target) IndentUnit() string  { return "\t" }
func (t *target) StmtTerm() string    { return "" }
func (t *target) SelfName() string    { return "recv" }
func (t *target) NullLiteral() string { return "nil" }

func (t *target) BoolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (t *target) Operator(op string) string {
	switch op {
	case "===":
		return "=="
	case "!==":
		return "!="
	case "&&":
		return "&&"
	case "||":
		return "||"
	default:
		return op
	}
}

// NullCoalesce emulates `left ?? right` with an IIFE: Go has no ternary and
// nil-ness isn't expressible as a single expression otherwise.
func (t *target) NullCoalesce(e *codegen.Engine, left, right string) string {
	return fmt.Sprintf("func() any { if v := %s; v != nil { return v }; return %s }()", left, right)
}

func (t *target) Preamble(e *codegen.Engine) []string {
	lines := []string{"package " + t.pkgName, ""}
	imports := e.Imports()
	if len(imports) > 0 {
		lines = append(lines, "import (")
		for _, i := range imports {
			lines = append(lines, "\t"+strings.TrimPrefix(i, "import "))
		}
		lines = append(lines, ")", "")
	}
	return lines
}

func (t *target) paramList(e *codegen.Engine, recv *ast.Param, params []ast.Param) string {
	var parts []string
	for _, p := range params {
		ty := "any"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		parts = append(parts, fmt.Sprintf("%s %s", p.Name, ty))
	}
	return strings.Join(parts, ", ")
}

func (t *target) FuncHeader(e *codegen.Engine, fn *ast.Function) string {
	recv := ""
	if fn.Receiver != nil {
		ty := "any"
		if fn.Receiver.DeclaredType != nil {
			ty = t.TypeRef(e, fn.Receiver.DeclaredType)
		}
		recv = fmt.Sprintf("(recv *%s) ", ty)
	}
	ret := ""
	if fn.ReturnType != nil {
		ret = " " + t.TypeRef(e, fn.ReturnType)
	}
	if fn.Throws {
		if ret == "" {
			ret = " error"
		} else {
			ret = fmt.Sprintf(" (%s, error)", strings.TrimSpace(ret))
		}
	}
	return fmt.Sprintf("func %s%s(%s)%s {", recv, fn.Name, t.paramList(e, nil, fn.Params), ret)
}

func (t *target) LambdaWrap(e *codegen.Engine, lam *ast.Lambda, body string) string {
	var params []string
	for _, p := range lam.Params {
		ty := "any"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		params = append(params, fmt.Sprintf("%s %s", p.Name, ty))
	}
	return fmt.Sprintf("func(%s) any { return %s }", strings.Join(params, ", "), body)
}

func (t *target) StructDecl(e *codegen.Engine, s *ast.Struct) []string {
	lines := []string{fmt.Sprintf("type %s struct {", s.Name)}
	for _, f := range s.Fields {
		lines = append(lines, fmt.Sprintf("\t%s %s", exported(f.Name), t.TypeRef(e, f.DeclaredType)))
	}
	lines = append(lines, "}")
	return lines
}

func exported(name string) string {
	if name == "" {
		return name
	}
	return titleCaser.String(name)
}

func (t *target) TaggedUnionDecl(e *codegen.Engine, tu *ast.TaggedUnion) []string {
	lines := []string{fmt.Sprintf("type %sKind int", tu.Name), "", "const ("}
	for i, v := range tu.Variants {
		if i == 0 {
			lines = append(lines, fmt.Sprintf("\t%s%s %sKind = iota", tu.Name, v.Name, tu.Name))
		} else {
			lines = append(lines, fmt.Sprintf("\t%s%s", tu.Name, v.Name))
		}
	}
	lines = append(lines, ")", "")
	lines = append(lines, fmt.Sprintf("type %s struct {", tu.Name))
	lines = append(lines, fmt.Sprintf("\tKind %sKind", tu.Name))
	seen := map[string]bool{}
	for _, v := range tu.Variants {
		for _, f := range v.Fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			lines = append(lines, fmt.Sprintf("\t%s %s", exported(f.Name), t.TypeRef(e, f.DeclaredType)))
		}
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) ProtocolDecl(e *codegen.Engine, p *ast.Protocol) []string {
	lines := []string{fmt.Sprintf("type %s interface {", p.Name)}
	for _, m := range p.Methods {
		ret := t.TypeRef(e, m.ReturnType)
		lines = append(lines, fmt.Sprintf("\t%s(%s) %s", exported(m.Name), t.paramList(e, nil, m.Params), ret))
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TypeAliasDecl(e *codegen.Engine, ta *ast.TypeAlias) []string {
	return []string{fmt.Sprintf("type %s = %s", ta.Name, t.TypeRef(e, ta.Type))}
}

func (t *target) EntryPointWrap(e *codegen.Engine, ep *ast.EntryPoint, body []string) []string {
	lines := []string{"func main() {"}
	lines = append(lines, body...)
	lines = append(lines, "}")
	return lines
}

func (t *target) TestSuiteDecl(e *codegen.Engine, ts *ast.TestSuite) []string {
	lines := []string{fmt.Sprintf("func Test%s(t *testing.T) {", exported(sanitizeIdent(ts.Name)))}
	for _, c := range ts.Cases {
		lines = append(lines, fmt.Sprintf("\tt.Run(%q, func(t *testing.T) {", c.Name))
		for _, l := range e.Block(c.Body) {
			lines = append(lines, "\t"+l)
		}
		lines = append(lines, "\t})")
	}
	lines = append(lines, "}")
	return lines
}

func sanitizeIdent(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_")
}

func (t *target) VarDeclLine(e *codegen.Engine, v *ast.Variable, value string) string {
	if v.Init == nil {
		return fmt.Sprintf("var %s %s", v.Name, t.TypeRef(e, v.DeclaredType))
	}
	return fmt.Sprintf("%s := %s", v.Name, value)
}

func (t *target) DestructuringBindLine(e *codegen.Engine, d *ast.DestructuringBind, value string) string {
	var assigns []string
	tmp := "_dv"
	assigns = append(assigns, fmt.Sprintf("%s := %s", tmp, value))
	for _, n := range d.Names {
		assigns = append(assigns, fmt.Sprintf("%s := %s.%s", n, tmp, exported(n)))
	}
	return strings.Join(assigns, "; ")
}

func (t *target) SwitchOnTag(e *codegen.Engine, n *ast.SwitchOnTag) []string {
	lines := []string{fmt.Sprintf("switch %s.Kind {", e.ExprOf(n.Subject))}
	typeName := ""
	if m, ok := n.Subject.(*ast.Identifier); ok {
		typeName = m.Name
	}
	for _, c := range n.Cases {
		lines = append(lines, fmt.Sprintf("case %s%s:", typeName, c.VariantName))
		for _, b := range c.Bindings {
			lines = append(lines, fmt.Sprintf("\t%s := %s.%s", b, e.ExprOf(n.Subject), exported(b)))
		}
		lines = append(lines, e.Block(c.Body)...)
	}
	if n.Default != nil {
		lines = append(lines, "default:")
		lines = append(lines, e.Block(n.Default)...)
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TryCatchFinally(e *codegen.Engine, n *ast.TryCatchFinally) []string {
	bind := n.CatchBind
	if bind == "" {
		bind = "err"
	}
	lines := []string{fmt.Sprintf("if %s := func() (err error) {", bind)}
	lines = append(lines, e.Block(n.Try)...)
	lines = append(lines, "\treturn nil")
	lines = append(lines, fmt.Sprintf("}(); %s != nil {", bind))
	if n.Catch != nil {
		lines = append(lines, e.Block(n.Catch)...)
	}
	lines = append(lines, "}")
	if n.Finally != nil {
		lines = append(lines, e.Block(n.Finally)...)
	}
	return lines
}

func (t *target) ScopedResource(e *codegen.Engine, n *ast.ScopedResource) []string {
	lines := []string{fmt.Sprintf("%s := %s", n.Binding, e.ExprOf(n.Resource)), fmt.Sprintf("defer %s.Close()", n.Binding)}
	lines = append(lines, e.Block(n.Body)...)
	return lines
}

func (t *target) ThrowLine(e *codegen.Engine, n *ast.Throw, value string) string {
	if value == "" {
		return `return errors.New("failed")`
	}
	return fmt.Sprintf("return fmt.Errorf(\"%%v\", %s)", value)
}

func (t *target) OutputLine(e *codegen.Engine, n *ast.Output, value string) string {
	if n.Level == ast.OutputWarn {
		return fmt.Sprintf("fmt.Fprintln(os.Stderr, %s)", value)
	}
	return fmt.Sprintf("fmt.Println(%s)", value)
}

func (t *target) ForEachHeader(e *codegen.Engine, n *ast.ForEach, iterable string) string {
	return fmt.Sprintf("for _, %s := range %s {", n.Binding, iterable)
}

func (t *target) ForRangeHeader(e *codegen.Engine, n *ast.ForRange, rng string) string {
	r, ok := n.Range.(*ast.RangeExpr)
	if !ok {
		return fmt.Sprintf("for _, %s := range %s {", n.Binding, rng)
	}
	op := "<"
	if r.Inclusive {
		op = "<="
	}
	start, end := e.ExprOf(r.Start), e.ExprOf(r.End)
	return fmt.Sprintf("for %s := %s; %s %s %s; %s++ {", n.Binding, start, n.Binding, op, end, n.Binding)
}

func (t *target) New(e *codegen.Engine, n *ast.New, args []string) string {
	return fmt.Sprintf("New%s(%s)", n.Type.Name, strings.Join(args, ", "))
}

func (t *target) StructuredConstruct(e *codegen.Engine, n *ast.StructuredConstruct, values []string) string {
	name := n.TypeName
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = fmt.Sprintf("%s: %s", exported(k), values[i])
	}
	if n.VariantName != "" {
		parts = append(parts, fmt.Sprintf("Kind: %s%s", n.TypeName, n.VariantName))
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(parts, ", "))
}

func (t *target) CollectionDSL(e *codegen.Engine, n *ast.CollectionDSL, elements []string, keys []string) string {
	switch n.CollectionKind {
	case "map":
		parts := make([]string, len(elements))
		for i, v := range elements {
			parts[i] = fmt.Sprintf("%s: %s", keys[i], v)
		}
		return fmt.Sprintf("map[any]any{%s}", strings.Join(parts, ", "))
	case "set":
		parts := make([]string, len(elements))
		for i, v := range elements {
			parts[i] = fmt.Sprintf("%s: {}", v)
		}
		return fmt.Sprintf("map[any]struct{}{%s}", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("[]any{%s}", strings.Join(elements, ", "))
	}
}

func (t *target) Comprehension(e *codegen.Engine, n *ast.Comprehension, result, iterable, cond string) string {
	fn := fmt.Sprintf("func(%s any) any { return %s }", n.Binding, result)
	if cond != "" {
		filterFn := fmt.Sprintf("func(%s any) bool { return %s }", n.Binding, cond)
		return fmt.Sprintf("std_compat.MapSlice(std_compat.FilterSlice(%s, %s), %s)", iterable, filterFn, fn)
	}
	return fmt.Sprintf("std_compat.MapSlice(%s, %s)", iterable, fn)
}

func (t *target) TypeConversion(e *codegen.Engine, n *ast.TypeConversion, value, radix, fallback string) string {
	var call string
	switch n.ConversionKind {
	case ast.ConvertToInteger:
		base := "10"
		if radix != "" {
			base = radix
		}
		call = fmt.Sprintf("strconv.ParseInt(fmt.Sprint(%s), %s, 64)", value, base)
	case ast.ConvertToFraction:
		call = fmt.Sprintf("strconv.ParseFloat(fmt.Sprint(%s), 64)", value)
	case ast.ConvertToString:
		return fmt.Sprintf("fmt.Sprint(%s)", value)
	default:
		return fmt.Sprintf("(%s != 0)", value)
	}
	if fallback != "" {
		return fmt.Sprintf("std_compat.OrDefault(%s, %s)", call, fallback)
	}
	return fmt.Sprintf("std_compat.Must(%s)", call)
}

func (t *target) FormatString(e *codegen.Engine, n *ast.FormatString, args []string) string {
	out := strings.ReplaceAll(n.Template, "§", "%v")
	for i := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("§%d", i+1), "%v")
	}
	return fmt.Sprintf("fmt.Sprintf(%q, %s)", out, strings.Join(args, ", "))
}

func (t *target) RegexLiteral(e *codegen.Engine, n *ast.Regex) string {
	return fmt.Sprintf("regexp.MustCompile(%q)", n.Pattern)
}

func (t *target) TemplateLiteral(e *codegen.Engine, n *ast.TemplateLiteral, parts []string) string {
	var fmtStr strings.Builder
	var args []string
	for i, part := range parts {
		if lit, ok := n.Parts[i].(*ast.Literal); ok && lit.LitKind == ast.LitString {
			fmtStr.WriteString(lit.Raw)
			continue
		}
		fmtStr.WriteString("%v")
		args = append(args, part)
	}
	if len(args) == 0 {
		return fmt.Sprintf("%q", fmtStr.String())
	}
	return fmt.Sprintf("fmt.Sprintf(%q, %s)", fmtStr.String(), strings.Join(args, ", "))
}

func (t *target) TypeRef(e *codegen.Engine, nt *ast.NamedType) string {
	if nt == nil {
		return ""
	}
	if nt.FunctionShape != nil {
		var params []string
		for _, p := range nt.FunctionShape.Params {
			params = append(params, t.TypeRef(e, p))
		}
		return fmt.Sprintf("func(%s) %s", strings.Join(params, ", "), t.TypeRef(e, nt.FunctionShape.Return))
	}
	name := goBuiltinName(nt.Name)
	args := e.TypeArgs(nt)
	switch nt.Name {
	case "list":
		elem := "any"
		if len(args) > 0 {
			elem = args[0]
		}
		name = "[]" + elem
	case "map":
		k, v := "any", "any"
		if len(args) > 1 {
			k, v = args[0], args[1]
		}
		name = fmt.Sprintf("map[%s]%s", k, v)
	case "set":
		elem := "any"
		if len(args) > 0 {
			elem = args[0]
		}
		name = fmt.Sprintf("map[%s]struct{}", elem)
	}
	if nt.Nullable {
		name = "*" + name
	}
	return name
}

func goBuiltinName(name string) string {
	switch name {
	case "integer-64":
		return "int64"
	case "fraction-64":
		return "float64"
	case "string":
		return "string"
	case "bool":
		return "bool"
	default:
		return name
	}
}
