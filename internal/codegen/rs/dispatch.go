// Package rs implements codegen.Target for Rust. Exceptions have no
// analogue in Rust, so Throw/TryCatchFinally lower to an error-union
// threaded through Result<T, String> returns.
package rs

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

// lowerCaser does the Unicode-correct case-folding half of snake_case
// conversion; word-boundary delimiter replacement (spaces/dashes to
// underscores) is ours, since x/text has no camelCase word splitter.
var lowerCaser = cases.Lower(language.Und)

func init() {
	codegen.Register(&dispatcher{})
}

type dispatcher struct{}

func (d *dispatcher) Target() string { return norma.TargetRs }

func (d *dispatcher) Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List) {
	return codegen.Run(&target{}, prog, types)
}

type target struct{}

func (t *target) Name() string        { return norma.TargetRs }
func (t *target) IndentUnit() string  { return "    " }
func (t *target) StmtTerm() string    { return ";" }
func (t *target) SelfName() string    { return "self" }
func (t *target) NullLiteral() string { return "None" }

func (t *target) BoolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (t *target) Operator(op string) string {
	if op == "===" {
		return "=="
	}
	if op == "!==" {
		return "!="
	}
	return op
}

func (t *target) NullCoalesce(e *codegen.Engine, left, right string) string {
	return fmt.Sprintf("(%s).unwrap_or(%s)", left, right)
}

func (t *target) Preamble(e *codegen.Engine) []string {
	lines := e.Imports()
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

func (t *target) paramList(e *codegen.Engine, recv *ast.Param, params []ast.Param) string {
	var parts []string
	if recv != nil {
		if recv.DeclaredType != nil && recv.DeclaredType.Ownership == ast.OwnershipMutable {
			parts = append(parts, "&mut self")
		} else {
			parts = append(parts, "&self")
		}
	}
	for _, p := range params {
		ty := "impl std::fmt::Debug"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, ty))
	}
	return strings.Join(parts, ", ")
}

func (t *target) FuncHeader(e *codegen.Engine, fn *ast.Function) string {
	ret := "()"
	if fn.ReturnType != nil {
		ret = t.TypeRef(e, fn.ReturnType)
	}
	if fn.Throws {
		ret = fmt.Sprintf("Result<%s, String>", ret)
	}
	async := ""
	if fn.Async {
		async = "async "
	}
	return fmt.Sprintf("pub %sfn %s(%s) -> %s {", async, fn.Name, t.paramList(e, fn.Receiver, fn.Params), ret)
}

func (t *target) LambdaWrap(e *codegen.Engine, lam *ast.Lambda, body string) string {
	var params []string
	for _, p := range lam.Params {
		params = append(params, p.Name)
	}
	return fmt.Sprintf("|%s| %s", strings.Join(params, ", "), body)
}

func (t *target) StructDecl(e *codegen.Engine, s *ast.Struct) []string {
	lines := []string{"#[derive(Debug, Clone)]", fmt.Sprintf("pub struct %s {", s.Name)}
	for _, f := range s.Fields {
		lines = append(lines, fmt.Sprintf("    pub %s: %s,", f.Name, t.TypeRef(e, f.DeclaredType)))
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TaggedUnionDecl(e *codegen.Engine, tu *ast.TaggedUnion) []string {
	lines := []string{"#[derive(Debug, Clone)]", fmt.Sprintf("pub enum %s {", tu.Name)}
	for _, v := range tu.Variants {
		if len(v.Fields) == 0 {
			lines = append(lines, fmt.Sprintf("    %s,", v.Name))
			continue
		}
		var fields []string
		for _, f := range v.Fields {
			fields = append(fields, fmt.Sprintf("%s: %s", f.Name, t.TypeRef(e, f.DeclaredType)))
		}
		lines = append(lines, fmt.Sprintf("    %s { %s },", v.Name, strings.Join(fields, ", ")))
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) ProtocolDecl(e *codegen.Engine, p *ast.Protocol) []string {
	lines := []string{fmt.Sprintf("pub trait %s {", p.Name)}
	for _, m := range p.Methods {
		ret := t.TypeRef(e, m.ReturnType)
		lines = append(lines, fmt.Sprintf("    fn %s(%s) -> %s;", m.Name, t.paramList(e, nil, m.Params), ret))
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TypeAliasDecl(e *codegen.Engine, ta *ast.TypeAlias) []string {
	return []string{fmt.Sprintf("pub type %s = %s;", ta.Name, t.TypeRef(e, ta.Type))}
}

func (t *target) EntryPointWrap(e *codegen.Engine, ep *ast.EntryPoint, body []string) []string {
	lines := []string{"fn main() {"}
	lines = append(lines, body...)
	lines = append(lines, "}")
	return lines
}

func (t *target) TestSuiteDecl(e *codegen.Engine, ts *ast.TestSuite) []string {
	lines := []string{fmt.Sprintf("#[cfg(test)]\nmod %s {", snake(ts.Name))}
	lines = append(lines, "    use super::*;")
	for _, c := range ts.Cases {
		lines = append(lines, "    #[test]")
		lines = append(lines, fmt.Sprintf("    fn %s() {", snake(c.Name)))
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "    }")
	}
	lines = append(lines, "}")
	return lines
}

func snake(s string) string {
	return lowerCaser.String(strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_"))
}

func (t *target) VarDeclLine(e *codegen.Engine, v *ast.Variable, value string) string {
	kw := "let"
	if v.Mutable {
		kw = "let mut"
	}
	decl := fmt.Sprintf("%s %s", kw, v.Name)
	if v.DeclaredType != nil {
		decl += ": " + t.TypeRef(e, v.DeclaredType)
	}
	if v.Init != nil {
		decl += " = " + value
	}
	return decl + ";"
}

func (t *target) DestructuringBindLine(e *codegen.Engine, d *ast.DestructuringBind, value string) string {
	kw := "let"
	if d.Mutable {
		kw = "let mut"
	}
	return fmt.Sprintf("%s (%s) = %s;", kw, strings.Join(d.Names, ", "), value)
}

func (t *target) SwitchOnTag(e *codegen.Engine, n *ast.SwitchOnTag) []string {
	lines := []string{fmt.Sprintf("match %s {", e.ExprOf(n.Subject))}
	for _, c := range n.Cases {
		pattern := c.VariantName
		if len(c.Bindings) > 0 {
			pattern += fmt.Sprintf(" {{ {} }}", strings.Join(c.Bindings, ", "))
			pattern = fmt.Sprintf("%s { %s }", c.VariantName, strings.Join(c.Bindings, ", "))
		}
		lines = append(lines, fmt.Sprintf("    %s => {", pattern))
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "    }")
	}
	if n.Default != nil {
		lines = append(lines, "    _ => {")
		lines = append(lines, e.Block(n.Default)...)
		lines = append(lines, "    }")
	}
	lines = append(lines, "}")
	return lines
}

// TryCatchFinally has no Rust analogue: the try body's fallible calls
// already return Result, so the catch arm binds the Err payload via a
// closure invoked immediately, and a finally block (if present) runs after
// via a defer-like scope guard is not attempted here — it runs as a plain
// trailing block, since Rust has no native finally.
func (t *target) TryCatchFinally(e *codegen.Engine, n *ast.TryCatchFinally) []string {
	bind := n.CatchBind
	if bind == "" {
		bind = "_err"
	}
	lines := []string{"if let Err(" + bind + ") = (|| -> Result<(), String> {"}
	lines = append(lines, e.Block(n.Try)...)
	lines = append(lines, "    Ok(())")
	lines = append(lines, "})() {")
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
	lines := []string{fmt.Sprintf("{ let %s = %s;", n.Binding, e.ExprOf(n.Resource))}
	lines = append(lines, e.Block(n.Body)...)
	lines = append(lines, "}")
	return lines
}

func (t *target) ThrowLine(e *codegen.Engine, n *ast.Throw, value string) string {
	if value == "" {
		return `return Err(String::new());`
	}
	return fmt.Sprintf("return Err(format!(\"{:?}\", %s));", value)
}

func (t *target) OutputLine(e *codegen.Engine, n *ast.Output, value string) string {
	if n.Level == ast.OutputWarn {
		return fmt.Sprintf("eprintln!(\"{:?}\", %s);", value)
	}
	return fmt.Sprintf("println!(\"{:?}\", %s);", value)
}

func (t *target) ForEachHeader(e *codegen.Engine, n *ast.ForEach, iterable string) string {
	return fmt.Sprintf("for %s in %s {", n.Binding, iterable)
}

func (t *target) ForRangeHeader(e *codegen.Engine, n *ast.ForRange, rng string) string {
	if r, ok := n.Range.(*ast.RangeExpr); ok {
		op := ".."
		if r.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("for %s in %s%s%s {", n.Binding, e.ExprOf(r.Start), op, e.ExprOf(r.End))
	}
	return fmt.Sprintf("for %s in %s {", n.Binding, rng)
}

func (t *target) New(e *codegen.Engine, n *ast.New, args []string) string {
	return fmt.Sprintf("%s::new(%s)", n.Type.Name, strings.Join(args, ", "))
}

func (t *target) StructuredConstruct(e *codegen.Engine, n *ast.StructuredConstruct, values []string) string {
	name := n.TypeName
	if n.VariantName != "" {
		name = n.TypeName + "::" + n.VariantName
	}
	if len(n.Keys) == 0 {
		return name
	}
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, values[i])
	}
	return fmt.Sprintf("%s { %s }", name, strings.Join(parts, ", "))
}

func (t *target) CollectionDSL(e *codegen.Engine, n *ast.CollectionDSL, elements []string, keys []string) string {
	switch n.CollectionKind {
	case "map":
		parts := make([]string, len(elements))
		for i, v := range elements {
			parts[i] = fmt.Sprintf("(%s, %s)", keys[i], v)
		}
		return fmt.Sprintf("std::collections::HashMap::from([%s])", strings.Join(parts, ", "))
	case "set":
		return fmt.Sprintf("std::collections::HashSet::from([%s])", strings.Join(elements, ", "))
	default:
		return fmt.Sprintf("vec![%s]", strings.Join(elements, ", "))
	}
}

func (t *target) Comprehension(e *codegen.Engine, n *ast.Comprehension, result, iterable, cond string) string {
	if cond != "" {
		return fmt.Sprintf("%s.iter().filter(|%s| %s).map(|%s| %s).collect::<Vec<_>>()", iterable, n.Binding, cond, n.Binding, result)
	}
	return fmt.Sprintf("%s.iter().map(|%s| %s).collect::<Vec<_>>()", iterable, n.Binding, result)
}

func (t *target) TypeConversion(e *codegen.Engine, n *ast.TypeConversion, value, radix, fallback string) string {
	var call string
	switch n.ConversionKind {
	case ast.ConvertToInteger:
		if radix != "" {
			call = fmt.Sprintf("i64::from_str_radix(&%s.to_string(), %s as u32)", value, radix)
		} else {
			call = fmt.Sprintf("%s.to_string().parse::<i64>()", value)
		}
	case ast.ConvertToFraction:
		call = fmt.Sprintf("%s.to_string().parse::<f64>()", value)
	case ast.ConvertToString:
		return fmt.Sprintf("%s.to_string()", value)
	default:
		return fmt.Sprintf("(%s != 0)", value)
	}
	if fallback != "" {
		return fmt.Sprintf("%s.unwrap_or(%s)", call, fallback)
	}
	return fmt.Sprintf("%s.unwrap()", call)
}

func (t *target) FormatString(e *codegen.Engine, n *ast.FormatString, args []string) string {
	out := strings.ReplaceAll(n.Template, "§", "{}")
	for i := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("§%d", i+1), "{}")
	}
	return fmt.Sprintf("format!(%q, %s)", out, strings.Join(args, ", "))
}

func (t *target) RegexLiteral(e *codegen.Engine, n *ast.Regex) string {
	return fmt.Sprintf("Regex::new(%q).unwrap()", n.Pattern)
}

func (t *target) TemplateLiteral(e *codegen.Engine, n *ast.TemplateLiteral, parts []string) string {
	var fmtStr strings.Builder
	var args []string
	for i, part := range parts {
		if lit, ok := n.Parts[i].(*ast.Literal); ok && lit.LitKind == ast.LitString {
			fmtStr.WriteString(lit.Raw)
			continue
		}
		fmtStr.WriteString("{}")
		args = append(args, part)
	}
	if len(args) == 0 {
		return fmt.Sprintf("%q.to_string()", fmtStr.String())
	}
	return fmt.Sprintf("format!(%q, %s)", fmtStr.String(), strings.Join(args, ", "))
}

func (t *target) TypeRef(e *codegen.Engine, nt *ast.NamedType) string {
	if nt == nil {
		return "()"
	}
	if nt.FunctionShape != nil {
		var params []string
		for _, p := range nt.FunctionShape.Params {
			params = append(params, t.TypeRef(e, p))
		}
		return fmt.Sprintf("Box<dyn Fn(%s) -> %s>", strings.Join(params, ", "), t.TypeRef(e, nt.FunctionShape.Return))
	}
	name := rsBuiltinName(nt.Name)
	args := e.TypeArgs(nt)
	if len(args) > 0 {
		name = fmt.Sprintf("%s<%s>", name, strings.Join(args, ", "))
	}
	if nt.Nullable {
		name = fmt.Sprintf("Option<%s>", name)
	}
	return name
}

func rsBuiltinName(name string) string {
	switch name {
	case "integer-64":
		return "i64"
	case "fraction-64":
		return "f64"
	case "string":
		return "String"
	case "bool":
		return "bool"
	case "list":
		return "Vec"
	case "map":
		return "std::collections::HashMap"
	case "set":
		return "std::collections::HashSet"
	default:
		return name
	}
}
