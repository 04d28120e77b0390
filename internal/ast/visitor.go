package ast

import "fmt"

// Visitor is implemented by callers that walk the tree with Walk. Its single
// Visit method receives every node; a caller type-switches on the nodes it
// cares about and returns false to skip a node's children.
type Visitor interface {
	Visit(n Node) (children bool)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node) bool

func (f VisitorFunc) Visit(n Node) bool { return f(n) }

// Walk traverses node in pre-order, calling v.Visit on every node reachable
// from it. The traversal only recurses into a node's children when Visit
// returns true. An unhandled Kind in the internal children-dispatch table is
// a programming error and panics, naming the missing kind, rather than
// silently skipping part of the tree.
func Walk(n Node, v Visitor) {
	if n == nil {
		return
	}
	if !v.Visit(n) {
		return
	}
	for _, child := range children(n) {
		Walk(child, v)
	}
}

// children returns the direct child nodes of n. Every case in ast's closed
// sum must appear here exactly once.
func children(n Node) []Node {
	switch t := n.(type) {
	case *Program:
		return t.Declarations
	case *Annotation:
		return nil
	case *Import:
		return nil
	case *DestructuringBind:
		return []Node{t.Initializer}
	case *Variable:
		return nonNil(typeNode(t.DeclaredType), t.Init)
	case *Function:
		return nonNil(typeNode(t.ReturnType), t.Body)
	case *TypeAlias:
		return nonNil(typeNode(t.Type))
	case *Struct:
		out := make([]Node, 0, len(t.Fields))
		for _, f := range t.Fields {
			out = append(out, f)
		}
		return out
	case *TaggedUnion:
		var out []Node
		for _, v := range t.Variants {
			for _, f := range v.Fields {
				out = append(out, f)
			}
		}
		return out
	case *Protocol:
		out := make([]Node, 0, len(t.Methods))
		for _, m := range t.Methods {
			out = append(out, m)
		}
		return out
	case *FieldDeclaration:
		return nonNil(typeNode(t.DeclaredType), t.Default)
	case *Block:
		return t.Statements
	case *ExprStmt:
		return nonNil(t.Expr)
	case *If:
		return nonNil(t.Cond, t.Then, t.Else)
	case *While:
		return nonNil(t.Cond, t.Body)
	case *ForEach:
		return nonNil(t.Iterable, t.Body)
	case *ForRange:
		return nonNil(t.Range, t.Body)
	case *SwitchOnTag:
		out := nonNil(t.Subject, t.Default)
		for _, c := range t.Cases {
			out = append(out, c.Body)
		}
		return out
	case *Guard:
		return nonNil(t.Cond, t.Else)
	case *Assert:
		return nonNil(t.Cond, t.Message)
	case *Return:
		return nonNil(t.Value)
	case *Break, *Continue, *NoOp:
		return nil
	case *Throw:
		return nonNil(t.Value)
	case *TryCatchFinally:
		return nonNil(t.Try, t.Catch, t.Finally)
	case *Output:
		return nonNil(t.Value)
	case *DoBlock:
		return nonNil(t.Body, t.Catch, t.While)
	case *TestSuite:
		var out []Node
		if t.Setup != nil {
			out = append(out, t.Setup)
		}
		if t.Teardown != nil {
			out = append(out, t.Teardown)
		}
		for _, c := range t.Cases {
			out = append(out, c)
		}
		return out
	case *TestCase:
		return nonNil(t.Body)
	case *SetupTeardown:
		return nonNil(t.Body)
	case *ScopedResource:
		return nonNil(t.Resource, t.Body)
	case *DispatchTableEntry:
		return nil
	case *EntryPoint:
		return nonNil(t.Body)
	case *ErrorNode:
		return nil
	case *Identifier, *SelfRef, *Literal, *Regex:
		return nil
	case *TemplateLiteral:
		return t.Parts
	case *ArrayLit:
		return t.Elements
	case *Spread:
		return nonNil(t.Value)
	case *ObjectLit:
		return t.Values
	case *RangeExpr:
		return nonNil(t.Start, t.End)
	case *Binary:
		return nonNil(t.Left, t.Right)
	case *Unary:
		return nonNil(t.Operand)
	case *IsType:
		return nonNil(t.Value, typeNode(t.Type))
	case *AsType:
		return nonNil(t.Value, typeNode(t.Type))
	case *InherentMethodAccess:
		return nonNil(t.Receiver)
	case *TypeConversion:
		return nonNil(t.Value, t.Radix, t.Fallback)
	case *ShiftExpr:
		return nonNil(t.Value, t.Amount)
	case *Call:
		out := nonNil(t.Callee)
		return append(out, t.Args...)
	case *Member:
		return nonNil(t.Receiver, t.Index)
	case *Assignment:
		return nonNil(t.Target, t.Value)
	case *Conditional:
		return nonNil(t.Cond, t.Then, t.Else)
	case *Yield:
		return nonNil(t.Value)
	case *New:
		out := nonNil(typeNode(t.Type))
		return append(out, t.Args...)
	case *StructuredConstruct:
		return t.Values
	case *Lambda:
		return nonNil(t.Body)
	case *InlineCodeInject:
		return nil
	case *CollectionDSL:
		out := append([]Node{}, t.Elements...)
		for _, k := range t.Keys {
			if k != nil {
				out = append(out, k)
			}
		}
		return out
	case *Comprehension:
		return nonNil(t.Result, t.Iterable, t.Cond)
	case *FormatString:
		return t.Args
	case *ReadFileLiteral:
		return nil
	case *NamedType:
		return nil
	case *FunctionType:
		return nil
	default:
		panic(fmt.Sprintf("ast.children: unhandled node kind %T", n))
	}
}

func typeNode(t *NamedType) Node {
	if t == nil {
		return nil
	}
	return t
}

func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
