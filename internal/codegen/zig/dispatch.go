// Package zig implements codegen.Target for Zig. Exceptions lower to Zig's
// error-union/try idiom; scoped resources of kind arena/page push an
// allocator name onto the engine's allocator stack for the duration of
// their body, since Zig has no implicit global allocator the norma
// registry's collection helpers can close over.
package zig

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

func (d *dispatcher) Target() string { return norma.TargetZig }

func (d *dispatcher) Emit(prog *ast.Program, types *sema.Annotations) (string, *diag.List) {
	return codegen.Run(&target{}, prog, types)
}

type target struct{}

func (t *target) Name() string        { return norma.TargetZig }
func (t *target) IndentUnit() string  { return "    " }
func (t *target) StmtTerm() string    { return ";" }
func (t *target) SelfName() string    { return "self" }
func (t *target) NullLiteral() string { return "null" }

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
		return "and"
	case "||":
		return "or"
	default:
		return op
	}
}

func (t *target) NullCoalesce(e *codegen.Engine, left, right string) string {
	return fmt.Sprintf("(%s orelse %s)", left, right)
}

func (t *target) Preamble(e *codegen.Engine) []string {
	lines := []string{`const std = @import("std");`}
	lines = append(lines, e.Imports()...)
	lines = append(lines, "")
	return lines
}

func (t *target) paramList(e *codegen.Engine, recv *ast.Param, params []ast.Param) string {
	var parts []string
	if recv != nil {
		parts = append(parts, "self: *Self")
	}
	for _, p := range params {
		ty := "anytype"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, ty))
	}
	return strings.Join(parts, ", ")
}

func (t *target) FuncHeader(e *codegen.Engine, fn *ast.Function) string {
	ret := "void"
	if fn.ReturnType != nil {
		ret = t.TypeRef(e, fn.ReturnType)
	}
	if fn.Throws {
		ret = "!" + ret
	}
	return fmt.Sprintf("pub fn %s(%s) %s {", fn.Name, t.paramList(e, fn.Receiver, fn.Params), ret)
}

func (t *target) LambdaWrap(e *codegen.Engine, lam *ast.Lambda, body string) string {
	var params []string
	for _, p := range lam.Params {
		ty := "anytype"
		if p.DeclaredType != nil {
			ty = t.TypeRef(e, p.DeclaredType)
		}
		params = append(params, fmt.Sprintf("%s: %s", p.Name, ty))
	}
	return fmt.Sprintf("struct { fn call(%s) @TypeOf(%s) { return %s; } }.call", strings.Join(params, ", "), body, body)
}

func (t *target) StructDecl(e *codegen.Engine, s *ast.Struct) []string {
	lines := []string{fmt.Sprintf("pub const %s = struct {", s.Name)}
	for _, f := range s.Fields {
		lines = append(lines, fmt.Sprintf("    %s: %s,", f.Name, t.TypeRef(e, f.DeclaredType)))
	}
	lines = append(lines, "};")
	return lines
}

func (t *target) TaggedUnionDecl(e *codegen.Engine, tu *ast.TaggedUnion) []string {
	lines := []string{fmt.Sprintf("pub const %sTag = enum {", tu.Name)}
	for _, v := range tu.Variants {
		lines = append(lines, fmt.Sprintf("    %s,", v.Name))
	}
	lines = append(lines, "};")
	lines = append(lines, fmt.Sprintf("pub const %s = union(%sTag) {", tu.Name, tu.Name))
	for _, v := range tu.Variants {
		if len(v.Fields) == 0 {
			lines = append(lines, fmt.Sprintf("    %s: void,", v.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("    %s: struct {", v.Name))
		for _, f := range v.Fields {
			lines = append(lines, fmt.Sprintf("        %s: %s,", f.Name, t.TypeRef(e, f.DeclaredType)))
		}
		lines = append(lines, "    },")
	}
	lines = append(lines, "};")
	return lines
}

func (t *target) ProtocolDecl(e *codegen.Engine, p *ast.Protocol) []string {
	lines := []string{fmt.Sprintf("// protocol %s", p.Name)}
	for _, m := range p.Methods {
		ret := t.TypeRef(e, m.ReturnType)
		lines = append(lines, fmt.Sprintf("// fn %s(%s) %s;", m.Name, t.paramList(e, nil, m.Params), ret))
	}
	return lines
}

func (t *target) TypeAliasDecl(e *codegen.Engine, ta *ast.TypeAlias) []string {
	return []string{fmt.Sprintf("pub const %s = %s;", ta.Name, t.TypeRef(e, ta.Type))}
}

func (t *target) EntryPointWrap(e *codegen.Engine, ep *ast.EntryPoint, body []string) []string {
	lines := []string{"pub fn main() !void {"}
	lines = append(lines, body...)
	lines = append(lines, "}")
	return lines
}

func (t *target) TestSuiteDecl(e *codegen.Engine, ts *ast.TestSuite) []string {
	var lines []string
	for _, c := range ts.Cases {
		lines = append(lines, fmt.Sprintf(`test "%s: %s" {`, ts.Name, c.Name))
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "}")
	}
	return lines
}

func (t *target) VarDeclLine(e *codegen.Engine, v *ast.Variable, value string) string {
	kw := "const"
	if v.Mutable {
		kw = "var"
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
	kw := "const"
	if d.Mutable {
		kw = "var"
	}
	var parts []string
	for _, n := range d.Names {
		parts = append(parts, fmt.Sprintf("%s %s = %s.%s;", kw, n, value, n))
	}
	return strings.Join(parts, " ")
}

func (t *target) SwitchOnTag(e *codegen.Engine, n *ast.SwitchOnTag) []string {
	lines := []string{fmt.Sprintf("switch (%s) {", e.ExprOf(n.Subject))}
	for _, c := range n.Cases {
		lines = append(lines, fmt.Sprintf("    .%s => {", c.VariantName))
		for _, b := range c.Bindings {
			lines = append(lines, fmt.Sprintf("        const %s = %s.%s.%s;", b, e.ExprOf(n.Subject), c.VariantName, b))
		}
		lines = append(lines, e.Block(c.Body)...)
		lines = append(lines, "    },")
	}
	if n.Default != nil {
		lines = append(lines, "    else => {")
		lines = append(lines, e.Block(n.Default)...)
		lines = append(lines, "    },")
	}
	lines = append(lines, "}")
	return lines
}

func (t *target) TryCatchFinally(e *codegen.Engine, n *ast.TryCatchFinally) []string {
	bind := n.CatchBind
	if bind == "" {
		bind = "_err"
	}
	lines := []string{fmt.Sprintf("if (blk: { %s catch |%s| { break :blk %s; } break :blk null; })) |_| {", tryBody(e, n.Try), bind, "true")}
	if n.Catch != nil {
		lines = append(lines, e.Block(n.Catch)...)
	}
	lines = append(lines, "}")
	if n.Finally != nil {
		lines = append(lines, e.Block(n.Finally)...)
	}
	return lines
}

func tryBody(e *codegen.Engine, b *ast.Block) string {
	return strings.Join(e.Block(b), " ")
}

func (t *target) ScopedResource(e *codegen.Engine, n *ast.ScopedResource) []string {
	isAlloc := n.Kind == ast.ResourceArena || n.Kind == ast.ResourcePage
	if isAlloc {
		e.PushAllocator(n.Binding)
	}
	lines := []string{fmt.Sprintf("{ const %s = %s; defer %s.deinit();", n.Binding, e.ExprOf(n.Resource), n.Binding)}
	lines = append(lines, e.Block(n.Body)...)
	lines = append(lines, "}")
	if isAlloc {
		e.PopAllocator()
	}
	return lines
}

func (t *target) ThrowLine(e *codegen.Engine, n *ast.Throw, value string) string {
	if value == "" {
		return "return error.Failed;"
	}
	return fmt.Sprintf("return error.%s;", toErrorName(value))
}

func toErrorName(value string) string {
	name := strings.Trim(value, `"`)
	name = strings.ReplaceAll(name, " ", "")
	if name == "" {
		return "Failed"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (t *target) OutputLine(e *codegen.Engine, n *ast.Output, value string) string {
	stream := "std.debug.print"
	return fmt.Sprintf(`%s("{}\n", .{%s});`, stream, value)
}

func (t *target) ForEachHeader(e *codegen.Engine, n *ast.ForEach, iterable string) string {
	return fmt.Sprintf("for (%s.items) |%s| {", iterable, n.Binding)
}

func (t *target) ForRangeHeader(e *codegen.Engine, n *ast.ForRange, rng string) string {
	r, ok := n.Range.(*ast.RangeExpr)
	if !ok {
		return fmt.Sprintf("for (%s) |%s| {", rng, n.Binding)
	}
	end := e.ExprOf(r.End)
	if r.Inclusive {
		end = fmt.Sprintf("(%s + 1)", end)
	}
	return fmt.Sprintf("{ var %s: i64 = %s; while (%s < %s) : (%s += 1) {", n.Binding, e.ExprOf(r.Start), n.Binding, end, n.Binding)
}

func (t *target) New(e *codegen.Engine, n *ast.New, args []string) string {
	return fmt.Sprintf("%s.init(%s)", n.Type.Name, strings.Join(args, ", "))
}

func (t *target) StructuredConstruct(e *codegen.Engine, n *ast.StructuredConstruct, values []string) string {
	name := n.TypeName
	if n.VariantName != "" {
		name = fmt.Sprintf("%s{ .%s = .{", n.TypeName, n.VariantName)
		parts := make([]string, len(n.Keys))
		for i, k := range n.Keys {
			parts[i] = fmt.Sprintf(".%s = %s", k, values[i])
		}
		return name + strings.Join(parts, ", ") + "} }"
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
		lines := "blk: { var m = std.StringHashMap(anytype).init(std.heap.page_allocator);"
		for i, v := range elements {
			lines += fmt.Sprintf(" m.put(%s, %s) catch unreachable;", keys[i], v)
		}
		return lines + " break :blk m; }"
	case "set":
		lines := "blk: { var s = std.AutoHashMap(@TypeOf(" + firstOrZig(elements) + "), void).init(std.heap.page_allocator);"
		for _, v := range elements {
			lines += fmt.Sprintf(" s.put(%s, {}) catch unreachable;", v)
		}
		return lines + " break :blk s; }"
	default:
		return fmt.Sprintf("[_]@TypeOf(%s){ %s }", firstOrZig(elements), strings.Join(elements, ", "))
	}
}

func firstOrZig(xs []string) string {
	if len(xs) == 0 {
		return "void"
	}
	return xs[0]
}

func (t *target) Comprehension(e *codegen.Engine, n *ast.Comprehension, result, iterable, cond string) string {
	if cond != "" {
		return fmt.Sprintf("try std_compat.filterMapAlloc(std.heap.page_allocator, %s, %s, %s)", iterable, cond, result)
	}
	return fmt.Sprintf("try std_compat.mapAlloc(std.heap.page_allocator, %s, %s)", iterable, result)
}

func (t *target) TypeConversion(e *codegen.Engine, n *ast.TypeConversion, value, radix, fallback string) string {
	var call string
	switch n.ConversionKind {
	case ast.ConvertToInteger:
		base := "10"
		if radix != "" {
			base = radix
		}
		call = fmt.Sprintf("std.fmt.parseInt(i64, %s, %s)", value, base)
	case ast.ConvertToFraction:
		call = fmt.Sprintf("std.fmt.parseFloat(f64, %s)", value)
	case ast.ConvertToString:
		return fmt.Sprintf("std.fmt.allocPrint(std.heap.page_allocator, \"{}\", .{%s})", value)
	default:
		return fmt.Sprintf("(%s != 0)", value)
	}
	if fallback != "" {
		return fmt.Sprintf("(%s catch %s)", call, fallback)
	}
	return fmt.Sprintf("(try %s)", call)
}

func (t *target) FormatString(e *codegen.Engine, n *ast.FormatString, args []string) string {
	out := strings.ReplaceAll(n.Template, "§", "{}")
	for i := range args {
		out = strings.ReplaceAll(out, fmt.Sprintf("§%d", i+1), "{}")
	}
	return fmt.Sprintf("try std.fmt.allocPrint(%s, %q, .{%s})", e.CurrentAllocator(), out, strings.Join(args, ", "))
}

func (t *target) RegexLiteral(e *codegen.Engine, n *ast.Regex) string {
	return fmt.Sprintf("std_compat.Regex.compile(%q)", n.Pattern)
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
	return fmt.Sprintf("try std.fmt.allocPrint(%s, %q, .{%s})", e.CurrentAllocator(), fmtStr.String(), strings.Join(args, ", "))
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
		return fmt.Sprintf("*const fn(%s) %s", strings.Join(params, ", "), t.TypeRef(e, nt.FunctionShape.Return))
	}
	name := zigBuiltinName(nt.Name)
	args := e.TypeArgs(nt)
	switch nt.Name {
	case "list":
		if len(args) > 0 {
			name = fmt.Sprintf("std.ArrayList(%s)", args[0])
		}
	case "map":
		if len(args) > 1 {
			name = fmt.Sprintf("std.AutoHashMap(%s, %s)", args[0], args[1])
		}
	case "set":
		if len(args) > 0 {
			name = fmt.Sprintf("std.AutoHashMap(%s, void)", args[0])
		}
	}
	if nt.Nullable {
		name = "?" + name
	}
	return name
}

func zigBuiltinName(name string) string {
	switch name {
	case "integer-64":
		return "i64"
	case "fraction-64":
		return "f64"
	case "string":
		return "[]const u8"
	case "bool":
		return "bool"
	default:
		return name
	}
}
