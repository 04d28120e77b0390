// Package py implements codegen.Dispatcher for Python directly, bypassing
// the shared brace-oriented Engine: Python's indentation-delimited blocks,
// absent statement terminators, and native try/except/comprehension/match
// syntax diverge enough from the other five targets that sharing Engine's
// traversal would cost more in special-casing than a dedicated walker.
package py

import (
	"fmt"
	"strings"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/capability"
	"github.com/oxhq/fabc/internal/codegen"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/norma"
	"github.com/oxhq/fabc/internal/sema"
	"github.com/oxhq/fabc/internal/token"
)

func init() {
	codegen.Register(&dispatcher{})
}

type dispatcher struct{}

func (d *dispatcher) Target() string { return norma.TargetPy }

func (d *dispatcher) Emit(prog *ast.Program, ann *sema.Annotations) (string, *diag.List) {
	w := &walker{
		diags:     &diag.List{},
		ann:       ann,
		pos:       prog.Position,
		imports:   map[string]bool{},
		capMatrix: capability.Default,
	}
	var body []string
	for _, d := range prog.Declarations {
		if imp, ok := d.(*ast.Import); ok {
			w.recordImport(imp)
			continue
		}
		body = append(body, w.genDecl(d)...)
		body = append(body, "")
	}
	if w.fatal {
		return "", w.diags
	}
	var out []string
	out = append(out, w.preamble()...)
	out = append(out, body...)
	return strings.Join(out, "\n") + "\n", w.diags
}

type walker struct {
	diags         *diag.List
	ann           *sema.Annotations
	pos           token.Position
	indent        int
	imports       map[string]bool
	usedDataclass bool
	usedUnion     bool
	usedTyping    bool
	fatal         bool
	capMatrix     capability.Matrix
}

func (w *walker) preamble() []string {
	var lines []string
	if w.usedDataclass {
		lines = append(lines, "from dataclasses import dataclass")
	}
	if w.usedUnion || w.usedTyping {
		lines = append(lines, "from typing import Union, Optional, Any, Callable")
	}
	names := make([]string, 0, len(w.imports))
	for name, used := range w.imports {
		if used {
			names = append(names, name)
		}
	}
	sortStrings(names)
	for _, n := range names {
		lines = append(lines, "import "+n)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

func sortStrings(xs []string) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func (w *walker) recordImport(imp *ast.Import) {
	if imp.IsIntrinsic() {
		return
	}
	w.imports[imp.Path] = true
}

func (w *walker) use(f capability.Feature) {
	if w.capMatrix.Lookup(norma.TargetPy, f) == capability.Unsupported {
		w.diags.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Category: diag.Capability,
			Phase:    diag.PhaseCapability,
			Position: w.pos,
			Message:  fmt.Sprintf("feature %s is not supported targeting py", f),
			Fatal:    true,
		})
		w.fatal = true
	}
}

func (w *walker) indentStr() string { return strings.Repeat("    ", w.indent) }

func (w *walker) line(format string, args ...any) string {
	return w.indentStr() + fmt.Sprintf(format, args...)
}

func (w *walker) block(b *ast.Block) []string {
	w.indent++
	defer func() { w.indent-- }()
	if b == nil || len(b.Statements) == 0 {
		return []string{w.line("pass")}
	}
	var lines []string
	for _, s := range b.Statements {
		lines = append(lines, w.genStmt(s)...)
	}
	return lines
}

func (w *walker) genDecl(n ast.Node) []string {
	switch x := n.(type) {
	case *ast.Function:
		return w.genFunction(x)
	case *ast.Variable:
		return []string{w.varDeclLine(x)}
	case *ast.Struct:
		return w.genStruct(x)
	case *ast.TaggedUnion:
		return w.genTaggedUnion(x)
	case *ast.Protocol:
		return w.genProtocol(x)
	case *ast.TypeAlias:
		w.usedTyping = true
		return []string{w.line("%s = %s", x.Name, w.typeRef(x.Type))}
	case *ast.EntryPoint:
		return w.genEntryPoint(x)
	case *ast.TestSuite:
		return w.genTestSuite(x)
	default:
		return []string{w.line("# unhandled declaration %T", n)}
	}
}

func (w *walker) paramList(recv *ast.Param, params []ast.Param) string {
	var parts []string
	if recv != nil {
		parts = append(parts, "self")
	}
	for _, p := range params {
		part := p.Name
		if p.DeclaredType != nil {
			part += ": " + w.typeRef(p.DeclaredType)
		}
		if p.Default != nil {
			w.use(capability.FeatureDefaultParam)
			part += " = " + w.genExpr(p.Default)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func (w *walker) genFunction(fn *ast.Function) []string {
	if fn.Async {
		w.use(capability.FeatureAsyncFunction)
	}
	if fn.Generator {
		w.use(capability.FeatureGenerator)
	}
	async := ""
	if fn.Async {
		async = "async "
	}
	ret := ""
	if fn.ReturnType != nil {
		ret = " -> " + w.typeRef(fn.ReturnType)
	}
	header := w.line("%sdef %s(%s)%s:", async, fn.Name, w.paramList(fn.Receiver, fn.Params), ret)
	lines := []string{header}
	lines = append(lines, w.block(fn.Body)...)
	return lines
}

func (w *walker) genStruct(s *ast.Struct) []string {
	w.usedDataclass = true
	lines := []string{w.line("@dataclass"), w.line("class %s:", s.Name)}
	w.indent++
	if len(s.Fields) == 0 {
		lines = append(lines, w.line("pass"))
	}
	for _, f := range s.Fields {
		line := w.line("%s: %s", f.Name, w.typeRef(f.DeclaredType))
		if f.Default != nil {
			line += " = " + w.genExpr(f.Default)
		}
		lines = append(lines, line)
	}
	w.indent--
	return lines
}

func (w *walker) genTaggedUnion(tu *ast.TaggedUnion) []string {
	w.use(capability.FeatureTaggedUnion)
	w.usedDataclass = true
	w.usedUnion = true
	var lines []string
	var variantNames []string
	for _, v := range tu.Variants {
		variantNames = append(variantNames, v.Name)
		lines = append(lines, w.line("@dataclass"), w.line("class %s:", v.Name))
		w.indent++
		if len(v.Fields) == 0 {
			lines = append(lines, w.line("pass"))
		}
		for _, f := range v.Fields {
			lines = append(lines, w.line("%s: %s", f.Name, w.typeRef(f.DeclaredType)))
		}
		w.indent--
		lines = append(lines, "")
	}
	lines = append(lines, w.line("%s = Union[%s]", tu.Name, strings.Join(variantNames, ", ")))
	return lines
}

func (w *walker) genProtocol(p *ast.Protocol) []string {
	lines := []string{w.line("class %s:", p.Name)}
	w.indent++
	if len(p.Methods) == 0 {
		lines = append(lines, w.line("pass"))
	}
	for _, m := range p.Methods {
		ret := ""
		if m.ReturnType != nil {
			ret = " -> " + w.typeRef(m.ReturnType)
		}
		lines = append(lines, w.line("def %s(%s)%s: ...", m.Name, w.paramList(nil, m.Params), ret))
	}
	w.indent--
	return lines
}

func (w *walker) genEntryPoint(ep *ast.EntryPoint) []string {
	async := ""
	call := "main()"
	if ep.Async {
		w.use(capability.FeatureAsyncFunction)
		async = "async "
		call = "asyncio.run(main())"
		w.imports["asyncio"] = true
	}
	lines := []string{w.line("%sdef main():", async)}
	lines = append(lines, w.block(ep.Body)...)
	lines = append(lines, "", w.line("if __name__ == \"__main__\":"))
	w.indent++
	lines = append(lines, w.line("%s", call))
	w.indent--
	return lines
}

func (w *walker) genTestSuite(ts *ast.TestSuite) []string {
	w.imports["pytest"] = true
	className := "Test" + sanitize(ts.Name)
	lines := []string{w.line("class %s:", className)}
	w.indent++
	if ts.Setup != nil {
		lines = append(lines, w.line("def setup_method(self):"))
		lines = append(lines, w.block(ts.Setup.Body)...)
	}
	if ts.Teardown != nil {
		lines = append(lines, w.line("def teardown_method(self):"))
		lines = append(lines, w.block(ts.Teardown.Body)...)
	}
	for _, c := range ts.Cases {
		lines = append(lines, w.line("def %s(self):", "test_"+sanitize(c.Name)))
		lines = append(lines, w.block(c.Body)...)
	}
	w.indent--
	return lines
}

func sanitize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_"))
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (w *walker) varDeclLine(v *ast.Variable) string {
	decl := v.Name
	if v.DeclaredType != nil {
		decl += ": " + w.typeRef(v.DeclaredType)
	}
	if v.Init != nil {
		decl += " = " + w.genExpr(v.Init)
	}
	return w.line("%s", decl)
}

func (w *walker) genStmt(n ast.Node) []string {
	switch x := n.(type) {
	case *ast.Variable:
		return []string{w.varDeclLine(x)}
	case *ast.DestructuringBind:
		w.use(capability.FeatureDestructuring)
		return []string{w.line("%s = %s", strings.Join(x.Names, ", "), w.genExpr(x.Initializer))}
	case *ast.ExprStmt:
		return []string{w.line("%s", w.genExpr(x.Expr))}
	case *ast.Assignment:
		return []string{w.line("%s %s %s", w.genExpr(x.Target), x.Op, w.genExpr(x.Value))}
	case *ast.If:
		return w.genIf(x)
	case *ast.While:
		lines := []string{w.line("while %s:", w.genExpr(x.Cond))}
		return append(lines, w.block(x.Body)...)
	case *ast.ForEach:
		lines := []string{w.line("for %s in %s:", x.Binding, w.genExpr(x.Iterable))}
		return append(lines, w.block(x.Body)...)
	case *ast.ForRange:
		return w.genForRange(x)
	case *ast.SwitchOnTag:
		return w.genSwitchOnTag(x)
	case *ast.Guard:
		lines := []string{w.line("if not (%s):", w.genExpr(x.Cond))}
		return append(lines, w.block(x.Else)...)
	case *ast.Assert:
		if x.Message != nil {
			return []string{w.line("assert %s, %s", w.genExpr(x.Cond), w.genExpr(x.Message))}
		}
		return []string{w.line("assert %s", w.genExpr(x.Cond))}
	case *ast.Return:
		if x.Value == nil {
			return []string{w.line("return")}
		}
		return []string{w.line("return %s", w.genExpr(x.Value))}
	case *ast.Break:
		return []string{w.line("break")}
	case *ast.Continue:
		return []string{w.line("continue")}
	case *ast.NoOp:
		return []string{w.line("pass")}
	case *ast.Throw:
		if x.Value == nil {
			return []string{w.line("raise Exception()")}
		}
		return []string{w.line("raise Exception(%s)", w.genExpr(x.Value))}
	case *ast.TryCatchFinally:
		return w.genTryCatchFinally(x)
	case *ast.Output:
		return w.genOutput(x)
	case *ast.DoBlock:
		return w.genDoBlock(x)
	case *ast.ScopedResource:
		w.use(capability.FeatureArenaAllocator)
		lines := []string{w.line("with %s as %s:", w.genExpr(x.Resource), x.Binding)}
		return append(lines, w.block(x.Body)...)
	case *ast.Block:
		return w.block(x)
	default:
		return []string{w.line("# unhandled statement %T", n)}
	}
}

func (w *walker) genIf(n *ast.If) []string {
	lines := []string{w.line("if %s:", w.genExpr(n.Cond))}
	lines = append(lines, w.block(n.Then)...)
	for {
		switch els := n.Else.(type) {
		case nil:
			return lines
		case *ast.Block:
			lines = append(lines, w.line("else:"))
			lines = append(lines, w.block(els)...)
			return lines
		case *ast.If:
			lines = append(lines, w.line("elif %s:", w.genExpr(els.Cond)))
			lines = append(lines, w.block(els.Then)...)
			n = els
		default:
			return lines
		}
	}
}

func (w *walker) genForRange(n *ast.ForRange) []string {
	r, ok := n.Range.(*ast.RangeExpr)
	if !ok {
		lines := []string{w.line("for %s in %s:", n.Binding, w.genExpr(n.Range))}
		return append(lines, w.block(n.Body)...)
	}
	end := w.genExpr(r.End)
	if r.Inclusive {
		end = fmt.Sprintf("(%s) + 1", end)
	}
	lines := []string{w.line("for %s in range(%s, %s):", n.Binding, w.genExpr(r.Start), end)}
	return append(lines, w.block(n.Body)...)
}

func (w *walker) genSwitchOnTag(n *ast.SwitchOnTag) []string {
	lines := []string{w.line("match %s:", w.genExpr(n.Subject))}
	w.indent++
	for _, c := range n.Cases {
		if len(c.Bindings) > 0 {
			var parts []string
			for _, b := range c.Bindings {
				parts = append(parts, fmt.Sprintf("%s=%s", b, b))
			}
			lines = append(lines, w.line("case %s(%s):", c.VariantName, strings.Join(parts, ", ")))
		} else {
			lines = append(lines, w.line("case %s():", c.VariantName))
		}
		lines = append(lines, w.block(c.Body)...)
	}
	if n.Default != nil {
		lines = append(lines, w.line("case _:"))
		lines = append(lines, w.block(n.Default)...)
	} else {
		lines = append(lines, w.line("case _:"))
		w.indent++
		lines = append(lines, w.line("pass"))
		w.indent--
	}
	w.indent--
	return lines
}

func (w *walker) genTryCatchFinally(n *ast.TryCatchFinally) []string {
	w.use(capability.FeatureExceptions)
	lines := []string{w.line("try:")}
	lines = append(lines, w.block(n.Try)...)
	bind := n.CatchBind
	if bind == "" {
		lines = append(lines, w.line("except Exception:"))
	} else {
		lines = append(lines, w.line("except Exception as %s:", bind))
	}
	if n.Catch != nil {
		lines = append(lines, w.block(n.Catch)...)
	} else {
		w.indent++
		lines = append(lines, w.line("pass"))
		w.indent--
	}
	if n.Finally != nil {
		lines = append(lines, w.line("finally:"))
		lines = append(lines, w.block(n.Finally)...)
	}
	return lines
}

func (w *walker) genDoBlock(n *ast.DoBlock) []string {
	if n.While != nil {
		lines := []string{w.line("while True:")}
		lines = append(lines, w.block(n.Body)...)
		w.indent++
		lines = append(lines, w.line("if not (%s):", w.genExpr(n.While)))
		w.indent++
		lines = append(lines, w.line("break"))
		w.indent--
		w.indent--
		return lines
	}
	return w.genTryCatchFinally(&ast.TryCatchFinally{Try: n.Body, CatchBind: n.CatchBind, Catch: n.Catch})
}

func (w *walker) genOutput(n *ast.Output) []string {
	value := w.genExpr(n.Value)
	switch n.Level {
	case ast.OutputWarn:
		w.imports["sys"] = true
		return []string{w.line("print(%s, file=sys.stderr)", value)}
	default:
		return []string{w.line("print(%s)", value)}
	}
}

func (w *walker) genExpr(n ast.Node) string {
	switch x := n.(type) {
	case *ast.Identifier:
		return remapIdent(x.Name)
	case *ast.SelfRef:
		return "self"
	case *ast.Literal:
		return w.genLiteral(x)
	case *ast.TemplateLiteral:
		return w.genTemplateLiteral(x)
	case *ast.Regex:
		w.use(capability.FeatureRegex)
		w.imports["re"] = true
		return fmt.Sprintf("re.compile(%q)", x.Pattern)
	case *ast.ArrayLit:
		parts := make([]string, len(x.Elements))
		for i, el := range x.Elements {
			parts[i] = w.genExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLit:
		parts := make([]string, len(x.Keys))
		for i, k := range x.Keys {
			parts[i] = fmt.Sprintf("%q: %s", k, w.genExpr(x.Values[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.Spread:
		return fmt.Sprintf("*%s", w.genExpr(x.Value))
	case *ast.RangeExpr:
		op := ""
		if x.Inclusive {
			op = "="
		}
		return fmt.Sprintf("%s..%s%s", w.genExpr(x.Start), op, w.genExpr(x.End))
	case *ast.Binary:
		if x.Op == "??" {
			left := w.genExpr(x.Left)
			return fmt.Sprintf("(%s if %s is not None else %s)", left, left, w.genExpr(x.Right))
		}
		return fmt.Sprintf("(%s %s %s)", w.genExpr(x.Left), pyOperator(x.Op), w.genExpr(x.Right))
	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", pyOperator(x.Op), w.genExpr(x.Operand))
	case *ast.IsType:
		return fmt.Sprintf("isinstance(%s, %s)", w.genExpr(x.Value), w.typeRef(x.Type))
	case *ast.AsType:
		return fmt.Sprintf("%s(%s)", w.typeRef(x.Type), w.genExpr(x.Value))
	case *ast.Call:
		return w.genCall(x)
	case *ast.Member:
		return w.genMember(x)
	case *ast.Assignment:
		return fmt.Sprintf("%s %s %s", w.genExpr(x.Target), x.Op, w.genExpr(x.Value))
	case *ast.Conditional:
		return fmt.Sprintf("(%s if %s else %s)", w.genExpr(x.Then), w.genExpr(x.Cond), w.genExpr(x.Else))
	case *ast.Yield:
		if x.Value == nil {
			return "yield"
		}
		return fmt.Sprintf("(yield %s)", w.genExpr(x.Value))
	case *ast.New:
		return w.genNew(x)
	case *ast.StructuredConstruct:
		return w.genStructuredConstruct(x)
	case *ast.Lambda:
		return w.genLambda(x)
	case *ast.InlineCodeInject:
		if x.Target == norma.TargetPy {
			return x.Code
		}
		return "None"
	case *ast.CollectionDSL:
		return w.genCollectionDSL(x)
	case *ast.Comprehension:
		return w.genComprehension(x)
	case *ast.FormatString:
		return w.genFormatString(x)
	case *ast.TypeConversion:
		return w.genTypeConversion(x)
	default:
		return fmt.Sprintf("None  # unhandled expr %T", n)
	}
}

func pyOperator(op string) string {
	switch op {
	case "===":
		return "=="
	case "!==":
		return "!="
	case "&&":
		return "and"
	case "||":
		return "or"
	case "!":
		return "not "
	default:
		return op
	}
}

func remapIdent(name string) string {
	switch name {
	case "pi_constant":
		return "math.pi"
	default:
		return name
	}
}

func (w *walker) genLiteral(x *ast.Literal) string {
	switch x.LitKind {
	case ast.LitNull:
		return "None"
	case ast.LitBool:
		if x.Raw == "true" {
			return "True"
		}
		return "False"
	case ast.LitString:
		return fmt.Sprintf("%q", x.Raw)
	default:
		return x.Raw
	}
}

func (w *walker) genTemplateLiteral(x *ast.TemplateLiteral) string {
	var b strings.Builder
	b.WriteString("f\"")
	for _, part := range x.Parts {
		if lit, ok := part.(*ast.Literal); ok && lit.LitKind == ast.LitString {
			b.WriteString(strings.ReplaceAll(lit.Raw, `"`, `\"`))
			continue
		}
		b.WriteString("{")
		b.WriteString(w.genExpr(part))
		b.WriteString("}")
	}
	b.WriteString("\"")
	return b.String()
}

func (w *walker) genFormatString(x *ast.FormatString) string {
	w.use(capability.FeatureFormatString)
	parts := strings.Split(x.Template, "§")
	var b strings.Builder
	b.WriteString("(")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(fmt.Sprintf("%q", p))
		if i > 0 && i-1 < len(x.Args) {
			b.WriteString(" + str(" + w.genExpr(x.Args[i-1]) + ")")
		}
	}
	b.WriteString(")")
	return b.String()
}

func (w *walker) genNew(x *ast.New) string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = w.genExpr(a)
	}
	return fmt.Sprintf("%s(%s)", x.Type.Name, strings.Join(args, ", "))
}

func (w *walker) genStructuredConstruct(x *ast.StructuredConstruct) string {
	name := x.TypeName
	if x.VariantName != "" {
		name = x.VariantName
	}
	parts := make([]string, len(x.Keys))
	for i, k := range x.Keys {
		parts[i] = fmt.Sprintf("%s=%s", k, w.genExpr(x.Values[i]))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

func (w *walker) genLambda(x *ast.Lambda) string {
	var params []string
	for _, p := range x.Params {
		params = append(params, p.Name)
	}
	body := "None"
	if b, ok := x.Body.(*ast.Block); ok {
		if len(b.Statements) == 1 {
			if ret, ok := b.Statements[0].(*ast.Return); ok && ret.Value != nil {
				body = w.genExpr(ret.Value)
			}
		}
	} else if x.Body != nil {
		body = w.genExpr(x.Body)
	}
	return fmt.Sprintf("lambda %s: %s", strings.Join(params, ", "), body)
}

func (w *walker) genCollectionDSL(x *ast.CollectionDSL) string {
	switch x.CollectionKind {
	case "map":
		parts := make([]string, len(x.Elements))
		for i, v := range x.Elements {
			parts[i] = fmt.Sprintf("%s: %s", w.genExpr(x.Keys[i]), w.genExpr(v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case "set":
		if len(x.Elements) == 0 {
			return "set()"
		}
		parts := make([]string, len(x.Elements))
		for i, v := range x.Elements {
			parts[i] = w.genExpr(v)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		parts := make([]string, len(x.Elements))
		for i, v := range x.Elements {
			parts[i] = w.genExpr(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

func (w *walker) genComprehension(x *ast.Comprehension) string {
	w.use(capability.FeatureComprehension)
	result := w.genExpr(x.Result)
	iterable := w.genExpr(x.Iterable)
	if x.Cond != nil {
		return fmt.Sprintf("[%s for %s in %s if %s]", result, x.Binding, iterable, w.genExpr(x.Cond))
	}
	return fmt.Sprintf("[%s for %s in %s]", result, x.Binding, iterable)
}

func (w *walker) genTypeConversion(x *ast.TypeConversion) string {
	value := w.genExpr(x.Value)
	var call string
	switch x.ConversionKind {
	case ast.ConvertToInteger:
		if x.Radix != nil {
			call = fmt.Sprintf("int(%s, %s)", value, w.genExpr(x.Radix))
		} else {
			call = fmt.Sprintf("int(%s)", value)
		}
	case ast.ConvertToFraction:
		call = fmt.Sprintf("float(%s)", value)
	case ast.ConvertToString:
		return fmt.Sprintf("str(%s)", value)
	default:
		return fmt.Sprintf("bool(%s)", value)
	}
	if x.Fallback != nil {
		return fmt.Sprintf("std_compat.or_default(lambda: %s, %s)", call, w.genExpr(x.Fallback))
	}
	return call
}

func (w *walker) genCall(x *ast.Call) string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = w.genExpr(a)
	}
	if member, ok := x.Callee.(*ast.Member); ok && member.Name != "" {
		collection, _ := member.Receiver.ResolvedType().IsCollection()
		entry, ok := norma.Default.Lookup(norma.TargetPy, collection, member.Name)
		if ok {
			receiver := w.genExpr(member.Receiver)
			for _, h := range entry.RequiredHeaders {
				w.imports[h] = true
			}
			switch tr := entry.Translation.(type) {
			case norma.Template:
				return tr.Render(receiver, args)
			case norma.FuncTranslation:
				return tr(receiver, args)
			}
		}
	}
	callee := w.genExpr(x.Callee)
	call := fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	return call
}

func (w *walker) genMember(x *ast.Member) string {
	receiver := w.genExpr(x.Receiver)
	if x.Index != nil {
		return fmt.Sprintf("%s[%s]", receiver, w.genExpr(x.Index))
	}
	return fmt.Sprintf("%s.%s", receiver, x.Name)
}

func (w *walker) typeRef(nt *ast.NamedType) string {
	if nt == nil {
		return "None"
	}
	if nt.FunctionShape != nil {
		w.usedTyping = true
		var params []string
		for _, p := range nt.FunctionShape.Params {
			params = append(params, w.typeRef(p))
		}
		return fmt.Sprintf("Callable[[%s], %s]", strings.Join(params, ", "), w.typeRef(nt.FunctionShape.Return))
	}
	name := pyBuiltinName(nt.Name)
	var args []string
	for _, a := range nt.Args {
		if a.Literal != "" {
			args = append(args, a.Literal)
			continue
		}
		args = append(args, w.typeRef(a.Type))
	}
	switch nt.Name {
	case "list":
		if len(args) > 0 {
			name = fmt.Sprintf("list[%s]", args[0])
		} else {
			name = "list"
		}
	case "map":
		if len(args) > 1 {
			name = fmt.Sprintf("dict[%s, %s]", args[0], args[1])
		} else {
			name = "dict"
		}
	case "set":
		if len(args) > 0 {
			name = fmt.Sprintf("set[%s]", args[0])
		} else {
			name = "set"
		}
	}
	if nt.Nullable {
		w.usedTyping = true
		name = fmt.Sprintf("Optional[%s]", name)
	}
	return name
}

func pyBuiltinName(name string) string {
	switch name {
	case "integer-64":
		return "int"
	case "fraction-64":
		return "float"
	case "string":
		return "str"
	case "bool":
		return "bool"
	default:
		return name
	}
}
