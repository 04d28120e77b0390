// Package cpp implements codegen.Target for C++. Exceptions, RAII-based
// scoped resources, and std::variant-backed tagged unions all have close
// native analogues, so this target needs the least amount of
// transformation of the five shared-engine targets.
package cpp

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

func (d *dispatcher) Target() string { return norma.TargetCpp }

func (d *dispatcher) Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List) {
	return codegen.Run(&target{}, prog, types)
}

type target struct{}

func (t *target) Name() string        { return norma.TargetCpp }
func (t *target) IndentUnit() string  { return "    " }
func (t *target) StmtTerm() string    { return ";" }
func (t *target) SelfName() string    { return "this" }
func (t *target) NullLiteral() string { return "std::nullopt" }

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
	return fmt.Sprintf("(%s != nullptr ? %s : %s)", left, left, right)
}

func (t *target) Preamble(e *codegen.Engine) []string {
	lines := []string{
		"#include <string>", "#include <vector>", "#include <map>", "#include <set>",
		"#include <optional>", "#include <variant>", "#include <iostream>", "#include <stdexcept>",
		"#include <any>", "#include <sstream>", "#include <regex>", "#include <functional>",
	}
	lines = append(lines, e.Imports()...)
	lines = append(lines, "", "using namespace std;", "")
	return lines
}

func (t *target) paramList(e *codegen.Engine, recv *ast.Param, params []ast.Param) string {
	var parts []string
	for _, p := range params {
		ty := "auto"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		decl := fmt.Sprintf("%s %s", ty, p.Name)
		if p.Default != nil {
			decl += " = " + e.ExprOf(p.Default)
		}
		parts = append(parts, decl)
	}
	return strings.Join(parts, ", ")
}

func (t *target) FuncHeader(e *codegen.Engine, fn *ast.Function) string {
	ret := "void"
	if fn.ReturnType != nil {
		ret = t.TypeRef(e, fn.ReturnType)
	}
	quals := ""
	if !fn.MutatesSelf && fn.Receiver != nil {
		quals = " const"
	}
	return fmt.Sprintf("%s %s(%s)%s {", ret, fn.Name, t.paramList(e, fn.Receiver, fn.Params), quals)
}

func (t *target) LambdaWrap(e *codegen.Engine, lam *ast.Lambda, body string) string {
	var params []string
	for _, p := range lam.Params {
		ty := "auto"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		params = append(params, fmt.Sprintf("%s %s", ty, p.Name))
	}
	return fmt.Sprintf("[&](%s) { return %s; }", strings.Join(params, ", "), body)
}

func (t *target) StructDecl(e *codegen.Engine, s *ast.Struct) []string {
	lines := []string{fmt.Sprintf("struct %s {", s.Name)}
	for _, f := range s.Fields {
		lines = append(lines, fmt.Sprintf("    %s %s;", t.TypeRef(e, f.DeclaredType), f.Name))
	}
	lines = append(lines, "};")
	return lines
}

func (t *target) TaggedUnionDecl(e *codegen.Engine, tu *ast.TaggedUnion) []string {
	var lines []string
	var variantTypes []string
	for _, v := range tu.Variants {
		structName := tu.Name + v.Name
		lines = append(lines, fmt.Sprintf("struct %s {", structName))
		for _, f := range v.Fields {
			lines = append(lines, fmt.Sprintf("    %s %s;", t.TypeRef(e, f.DeclaredType), f.Name))
		}
		lines = append(lines, "};")
		variantTypes = append(variantTypes, structName)
	}
	lines = append(lines, fmt.Sprintf("using %s = std::variant<%s>;", tu.Name, strings.Join(variantTypes, ", ")))
	return lines
}

func (t *target) ProtocolDecl(e *codegen.Engine, p *ast.Protocol) []string {
	lines := []string{fmt.Sprintf("struct %s {", p.Name)}
	for _, m := range p.Methods {
		ret := t.TypeRef(e, m.ReturnType)
		lines = append(lines, fmt.Sprintf("    virtual %s %s(%s) = 0;", ret, m.Name, t.paramList(e, nil, m.Params)))
	}
	lines = append(lines, fmt.Sprintf("    virtual ~%s() = default;", p.Name))
	lines = append(lines, "};")
	return lines
}

func (t *target) TypeAliasDecl(e *codegen.Engine, ta *ast.TypeAlias) []string {
	return []string{fmt.Sprintf("using %s = %s;", ta.Name, t.TypeRef(e, ta.Type))}
}

func (t *target) EntryPointWrap(e *codegen.Engine, ep *ast.EntryPoint, body []string) []string {
	lines := []string{"int main() {"}
	lines = append(lines, body...)
	lines = append(lines, "    return 0;", "}")
	return lines
}

func (t *target) TestSuiteDecl(e *codegen.Engine, ts *ast.TestSuite) []string {
	var lines []string
	for _, c := range ts.Cases {
		lines = append(lines, fmt.Sprintf(`TEST(%s, %s) {`, sanitize(ts.Name), sanitize(c.Name)))
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "}")
	}
	return lines
}

func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_")
}

func (t *target) VarDeclLine(e *codegen.Engine, v *ast.Variable, value string) string {
	ty := "auto"
	if v.DeclaredType != nil {
		ty = t.TypeRef(e, v.DeclaredType)
	}
	qualifier := ty
	if !v.Mutable {
		qualifier = "const " + ty
	}
	if v.Init == nil {
		return fmt.Sprintf("%s %s;", ty, v.Name)
	}
	return fmt.Sprintf("%s %s = %s;", qualifier, v.Name, value)
}

func (t *target) DestructuringBindLine(e *codegen.Engine, d *ast.DestructuringBind, value string) string {
	return fmt.Sprintf("auto [%s] = %s;", strings.Join(d.Names, ", "), value)
}

func (t *target) SwitchOnTag(e *codegen.Engine, n *ast.SwitchOnTag) []string {
	subj := e.ExprOf(n.Subject)
	var lines []string
	for i, c := range n.Cases {
		kw := "if"
		if i > 0 {
			kw = "else if"
		}
		varName := strings.ToLower(c.VariantName) + "_v"
		tagName := "" // variant type name resolved from subject's declared union; left generic
		lines = append(lines, fmt.Sprintf("%s (auto* %s = std::get_if<%s%s>(&%s)) {", kw, varName, tagName, c.VariantName, subj))
		for _, b := range c.Bindings {
			lines = append(lines, fmt.Sprintf("    auto %s = %s->%s;", b, varName, b))
		}
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "}")
	}
	if n.Default != nil {
		lines = append(lines, "else {")
		lines = append(lines, e.Block(n.Default)...)
		lines = append(lines, "}")
	}
	return lines
}

func (t *target) TryCatchFinally(e *codegen.Engine, n *ast.TryCatchFinally) []string {
	bind := n.CatchBind
	if bind == "" {
		bind = "err"
	}
	lines := []string{"try {"}
	lines = append(lines, e.Block(n.Try)...)
	lines = append(lines, fmt.Sprintf("} catch (const std::exception& %s) {", bind))
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
	lines := []string{fmt.Sprintf("{ auto %s = %s;", n.Binding, e.ExprOf(n.Resource))}
	lines = append(lines, e.Block(n.Body)...)
	lines = append(lines, "}")
	return lines
}

func (t *target) ThrowLine(e *codegen.Engine, n *ast.Throw, value string) string {
	if value == "" {
		return "throw std::runtime_error(\"failed\");"
	}
	return fmt.Sprintf("throw std::runtime_error(%s);", value)
}

func (t *target) OutputLine(e *codegen.Engine, n *ast.Output, value string) string {
	if n.Level == ast.OutputWarn {
		return fmt.Sprintf("std::cerr << %s << std::endl;", value)
	}
	return fmt.Sprintf("std::cout << %s << std::endl;", value)
}

func (t *target) ForEachHeader(e *codegen.Engine, n *ast.ForEach, iterable string) string {
	return fmt.Sprintf("for (auto& %s : %s) {", n.Binding, iterable)
}

func (t *target) ForRangeHeader(e *codegen.Engine, n *ast.ForRange, rng string) string {
	r, ok := n.Range.(*ast.RangeExpr)
	if !ok {
		return fmt.Sprintf("for (auto& %s : %s) {", n.Binding, rng)
	}
	op := "<"
	if r.Inclusive {
		op = "<="
	}
	start, end := e.ExprOf(r.Start), e.ExprOf(r.End)
	return fmt.Sprintf("for (auto %s = %s; %s %s %s; ++%s) {", n.Binding, start, n.Binding, op, end, n.Binding)
}

func (t *target) New(e *codegen.Engine, n *ast.New, args []string) string {
	return fmt.Sprintf("%s(%s)", n.Type.Name, strings.Join(args, ", "))
}

func (t *target) StructuredConstruct(e *codegen.Engine, n *ast.StructuredConstruct, values []string) string {
	name := n.TypeName
	if n.VariantName != "" {
		name = n.TypeName + n.VariantName
	}
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = fmt.Sprintf(".%s = %s", k, values[i])
	}
	return fmt.Sprintf("%s{ %s }", name, strings.Join(parts, ", "))
}

func (t *target) CollectionDSL(e *codegen.Engine, n *ast.CollectionDSL, elements []string, keys []string) string {
	switch n.CollectionKind {
	case "map":
		parts := make([]string, len(elements))
		for i, v := range elements {
			parts[i] = fmt.Sprintf("{%s, %s}", keys[i], v)
		}
		return fmt.Sprintf("std::map<std::string, std::any>{%s}", strings.Join(parts, ", "))
	case "set":
		return fmt.Sprintf("std::set<std::any>{%s}", strings.Join(elements, ", "))
	default:
		return fmt.Sprintf("std::vector<std::any>{%s}", strings.Join(elements, ", "))
	}
}

func (t *target) Comprehension(e *codegen.Engine, n *ast.Comprehension, result, iterable, cond string) string {
	if cond != "" {
		return fmt.Sprintf("std_compat::filter_map(%s, [&](auto& %s) { return %s; }, [&](auto& %s) { return %s; })",
			iterable, n.Binding, cond, n.Binding, result)
	}
	return fmt.Sprintf("std_compat::map(%s, [&](auto& %s) { return %s; })", iterable, n.Binding, result)
}

func (t *target) TypeConversion(e *codegen.Engine, n *ast.TypeConversion, value, radix, fallback string) string {
	var call string
	switch n.ConversionKind {
	case ast.ConvertToInteger:
		if radix != "" {
			call = fmt.Sprintf("std::stoll(std::to_string(%s), nullptr, %s)", value, radix)
		} else {
			call = fmt.Sprintf("std::stoll(std::to_string(%s))", value)
		}
	case ast.ConvertToFraction:
		call = fmt.Sprintf("std::stod(std::to_string(%s))", value)
	case ast.ConvertToString:
		return fmt.Sprintf("std::to_string(%s)", value)
	default:
		return fmt.Sprintf("(%s != 0)", value)
	}
	if fallback != "" {
		return fmt.Sprintf("std_compat::or_default([&]{ return %s; }, %s)", call, fallback)
	}
	return call
}

func (t *target) FormatString(e *codegen.Engine, n *ast.FormatString, args []string) string {
	parts := strings.Split(strings.ReplaceAll(n.Template, "§", "\x00"), "\x00")
	var b strings.Builder
	b.WriteString("(std::ostringstream{}")
	for i, p := range parts {
		if p != "" {
			fmt.Fprintf(&b, " << %q", p)
		}
		if i < len(args) {
			fmt.Fprintf(&b, " << %s", args[i])
		}
	}
	b.WriteString(").str()")
	return b.String()
}

func (t *target) RegexLiteral(e *codegen.Engine, n *ast.Regex) string {
	return fmt.Sprintf("std::regex(%q)", n.Pattern)
}

func (t *target) TemplateLiteral(e *codegen.Engine, n *ast.TemplateLiteral, parts []string) string {
	var b strings.Builder
	b.WriteString("(std::ostringstream{}")
	for i, part := range parts {
		if lit, ok := n.Parts[i].(*ast.Literal); ok && lit.LitKind == ast.LitString {
			fmt.Fprintf(&b, " << %q", lit.Raw)
			continue
		}
		fmt.Fprintf(&b, " << %s", part)
	}
	b.WriteString(").str()")
	return b.String()
}

func (t *target) TypeRef(e *codegen.Engine, nt *ast.NamedType) string {
	if nt == nil {
		return "void"
	}
	if nt.FunctionShape != nil {
		var params []string
		for _, p := range nt.FunctionShape.Params {
			params = append(params, t.TypeRef(e, p))
		}
		return fmt.Sprintf("std::function<%s(%s)>", t.TypeRef(e, nt.FunctionShape.Return), strings.Join(params, ", "))
	}
	name := cppBuiltinName(nt.Name)
	args := e.TypeArgs(nt)
	switch nt.Name {
	case "list":
		elem := "std::any"
		if len(args) > 0 {
			elem = args[0]
		}
		name = fmt.Sprintf("std::vector<%s>", elem)
	case "map":
		k, v := "std::string", "std::any"
		if len(args) > 1 {
			k, v = args[0], args[1]
		}
		name = fmt.Sprintf("std::map<%s, %s>", k, v)
	case "set":
		elem := "std::any"
		if len(args) > 0 {
			elem = args[0]
		}
		name = fmt.Sprintf("std::set<%s>", elem)
	}
	if nt.Nullable {
		name = fmt.Sprintf("std::optional<%s>", name)
	}
	return name
}

func cppBuiltinName(name string) string {
	switch name {
	case "integer-64":
		return "int64_t"
	case "fraction-64":
		return "double"
	case "string":
		return "std::string"
	case "bool":
		return "bool"
	default:
		return name
	}
}
