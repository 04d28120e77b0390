// Package ast defines the surface language's abstract syntax tree as a
// single closed sum type, one struct per node kind, discriminated by Kind().
// Visitors pattern-match exhaustively; a missed variant is caught by the
// default branch in Walk, which names the offending kind.
package ast

import (
	"github.com/oxhq/fabc/internal/stype"
	"github.com/oxhq/fabc/internal/token"
)

// Kind discriminates every node in the tree.
type Kind string

const (
	KindProgram Kind = "Program"

	// Declarations
	KindImport             Kind = "Import"
	KindDestructuringBind  Kind = "DestructuringBind"
	KindVariable            Kind = "Variable"
	KindFunction             Kind = "Function"
	KindTypeAlias            Kind = "TypeAlias"
	KindStruct               Kind = "Struct"
	KindTaggedUnion          Kind = "TaggedUnion"
	KindProtocol             Kind = "Protocol"
	KindFieldDeclaration     Kind = "FieldDeclaration"

	// Statements
	KindBlock            Kind = "Block"
	KindExprStmt          Kind = "ExprStmt"
	KindIf                Kind = "If"
	KindWhile             Kind = "While"
	KindForEach           Kind = "ForEach"
	KindForRange          Kind = "ForRange"
	KindSwitchOnTag       Kind = "SwitchOnTag"
	KindGuard             Kind = "Guard"
	KindAssert            Kind = "Assert"
	KindReturn            Kind = "Return"
	KindBreak             Kind = "Break"
	KindContinue          Kind = "Continue"
	KindNoOp              Kind = "NoOp"
	KindThrow             Kind = "Throw"
	KindTryCatchFinally   Kind = "TryCatchFinally"
	KindOutput            Kind = "Output"
	KindDoBlock           Kind = "DoBlock"
	KindTestSuite         Kind = "TestSuite"
	KindTestCase          Kind = "TestCase"
	KindSetupTeardown     Kind = "SetupTeardown"
	KindScopedResource    Kind = "ScopedResource"
	KindDispatchTableEntry Kind = "DispatchTableEntry"
	KindEntryPoint        Kind = "EntryPoint"
	KindErrorStmt         Kind = "ErrorStmt"

	// Expressions
	KindIdentifier          Kind = "Identifier"
	KindSelfRef              Kind = "SelfRef"
	KindLiteral              Kind = "Literal"
	KindTemplateLiteral      Kind = "TemplateLiteral"
	KindRegex                Kind = "Regex"
	KindArrayLit             Kind = "ArrayLit"
	KindSpread               Kind = "Spread"
	KindObjectLit            Kind = "ObjectLit"
	KindRangeExpr            Kind = "RangeExpr"
	KindBinary               Kind = "Binary"
	KindUnary                Kind = "Unary"
	KindIsType               Kind = "IsType"
	KindAsType               Kind = "AsType"
	KindInherentMethodAccess Kind = "InherentMethodAccess"
	KindTypeConversion       Kind = "TypeConversion"
	KindShiftExpr            Kind = "ShiftExpr"
	KindCall                 Kind = "Call"
	KindMember               Kind = "Member"
	KindAssignment           Kind = "Assignment"
	KindConditional          Kind = "Conditional"
	KindYield                Kind = "Yield"
	KindNew                  Kind = "New"
	KindStructuredConstruct  Kind = "StructuredConstruct"
	KindLambda               Kind = "Lambda"
	KindInlineCodeInject     Kind = "InlineCodeInject"
	KindCollectionDSL        Kind = "CollectionDSL"
	KindComprehension        Kind = "Comprehension"
	KindFormatString         Kind = "FormatString"
	KindReadFileLiteral      Kind = "ReadFileLiteral"

	// Types
	KindNamedType   Kind = "NamedType"
	KindFunctionType Kind = "FunctionType"

	// Annotation (attaches to declarations/statements)
	KindAnnotation Kind = "Annotation"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() Kind
	Pos() token.Position
	ResolvedType() *stype.Type
	SetResolvedType(*stype.Type)
}

// Base is embedded by every concrete node and carries the invariants every
// node must satisfy: a position, and (after the semantic phase) a resolved
// type.
type Base struct {
	Position token.Position
	Resolved *stype.Type
}

func (b Base) Pos() token.Position        { return b.Position }
func (b Base) ResolvedType() *stype.Type   { return b.Resolved }
func (b *Base) SetResolvedType(t *stype.Type) { b.Resolved = t }

// Annotation is `@name value...` attached to the next declaration or
// statement. Structured annotations (e.g. CLI option annotations) carry
// Fields in addition to the raw Args.
type Annotation struct {
	Base
	Name   string
	Args   []string
	Fields map[string]string
}

func (a *Annotation) Kind() Kind { return KindAnnotation }

// Program is the root of a parsed file.
type Program struct {
	Base
	File        string
	Declarations []Node
	Annotations  []*Annotation // file-level / entry-point annotations
}

func (p *Program) Kind() Kind { return KindProgram }

// ErrorNode is the placeholder the parser produces on a recoverable syntax
// error. It is never nil; it carries the position where recovery began so
// the round-trip-position invariant still holds for a faulty parse.
type ErrorNode struct {
	Base
	Message string
}

func (e *ErrorNode) Kind() Kind { return KindErrorStmt }
