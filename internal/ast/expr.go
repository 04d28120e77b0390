package ast

// Identifier references a bound name.
type Identifier struct {
	Base
	Name string
}

func (n *Identifier) Kind() Kind { return KindIdentifier }

// SelfRef is the receiver self-reference (`se`).
type SelfRef struct{ Base }

func (n *SelfRef) Kind() Kind { return KindSelfRef }

// LiteralKind discriminates Literal's value.
type LiteralKind string

const (
	LitInteger  LiteralKind = "integer"
	LitFraction LiteralKind = "fraction"
	LitString   LiteralKind = "string"
	LitBool     LiteralKind = "bool"
	LitNull     LiteralKind = "null"
)

// Literal is a number, string, boolean, or null-marker literal.
type Literal struct {
	Base
	LitKind LiteralKind
	Raw     string
}

func (n *Literal) Kind() Kind { return KindLiteral }

// TemplateLiteral is a string built from alternating literal text and
// embedded expressions.
type TemplateLiteral struct {
	Base
	Parts []Node // *Literal (string) or any expression
}

func (n *TemplateLiteral) Kind() Kind { return KindTemplateLiteral }

// Regex is a /pattern/flags literal.
type Regex struct {
	Base
	Pattern string
	Flags   string
}

func (n *Regex) Kind() Kind { return KindRegex }

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Base
	Elements []Node
}

func (n *ArrayLit) Kind() Kind { return KindArrayLit }

// Spread is `...expr` inside an array or call argument list.
type Spread struct {
	Base
	Value Node
}

func (n *Spread) Kind() Kind { return KindSpread }

// ObjectLit is `{ key: value, ... }`.
type ObjectLit struct {
	Base
	Keys   []string
	Values []Node
}

func (n *ObjectLit) Kind() Kind { return KindObjectLit }

// RangeExpr is `start..end` or `start..=end` (inclusive).
type RangeExpr struct {
	Base
	Start     Node
	End       Node
	Inclusive bool
}

func (n *RangeExpr) Kind() Kind { return KindRangeExpr }

// Binary is a binary operator expression.
type Binary struct {
	Base
	Op    string
	Left  Node
	Right Node
}

func (n *Binary) Kind() Kind { return KindBinary }

// Unary is a prefix unary operator expression.
type Unary struct {
	Base
	Op      string
	Operand Node
}

func (n *Unary) Kind() Kind { return KindUnary }

// IsType is `expr is Type`.
type IsType struct {
	Base
	Value Node
	Type  *NamedType
}

func (n *IsType) Kind() Kind { return KindIsType }

// AsType is `expr as Type`.
type AsType struct {
	Base
	Value Node
	Type  *NamedType
}

func (n *AsType) Kind() Kind { return KindAsType }

// InherentMethodAccess is a bare `.methodName` reference used for method
// values / partial application rather than an immediate call.
type InherentMethodAccess struct {
	Base
	Receiver Node
	Name     string
}

func (n *InherentMethodAccess) Kind() Kind { return KindInherentMethodAccess }

// ConversionKind names the four conversion verbs.
type ConversionKind string

const (
	ConvertToInteger  ConversionKind = "numeratum"
	ConvertToFraction ConversionKind = "fractatum"
	ConvertToString   ConversionKind = "textatum"
	ConvertToBool     ConversionKind = "bivalentum"
)

// TypeConversion is `numeratum(expr, radix?) ?? fallback`-style conversion,
// with an optional radix (bivalentum/numeratum only) and an optional
// fallback value used when the conversion fails.
type TypeConversion struct {
	Base
	ConversionKind ConversionKind
	Value          Node
	Radix          Node // nil unless explicitly given
	Fallback       Node // nil unless given
}

func (n *TypeConversion) Kind() Kind { return KindTypeConversion }

// ShiftDirection distinguishes the two shift verbs.
type ShiftDirection string

const (
	ShiftLeft  ShiftDirection = "sinistratum"
	ShiftRight ShiftDirection = "dextratum"
)

// ShiftExpr is `x dextratum 3` / `x sinistratum 3`.
type ShiftExpr struct {
	Base
	Direction ShiftDirection
	Value     Node
	Amount    Node
}

func (n *ShiftExpr) Kind() Kind { return KindShiftExpr }

// Call is a function/method call, with optional-call (`?.`) and
// non-null-assert (`!`) flavors.
type Call struct {
	Base
	Callee   Node
	Args     []Node
	Optional bool
	NonNull  bool
}

func (n *Call) Kind() Kind { return KindCall }

// Member is `.name` (dot) or `[expr]` (bracket) access.
type Member struct {
	Base
	Receiver Node
	Name     string // set for dot access
	Index    Node   // set for bracket access
	Optional bool
}

func (n *Member) Kind() Kind { return KindMember }

// Assignment is `target = value` or a compound assignment (`+=`, etc).
type Assignment struct {
	Base
	Op     string
	Target Node
	Value  Node
}

func (n *Assignment) Kind() Kind { return KindAssignment }

// Conditional is `cond ? then : else`.
type Conditional struct {
	Base
	Cond Node
	Then Node
	Else Node
}

func (n *Conditional) Kind() Kind { return KindConditional }

// Yield is `yield expr` inside a generator (cursor) function.
type Yield struct {
	Base
	Value Node
}

func (n *Yield) Kind() Kind { return KindYield }

// New is `new Type(args...)`.
type New struct {
	Base
	Type *NamedType
	Args []Node
}

func (n *New) Kind() Kind { return KindNew }

// StructuredConstruct builds a struct or tagged-union variant by name:
// `TypeName { field: value, ... }`.
type StructuredConstruct struct {
	Base
	TypeName    string
	VariantName string // equals TypeName's variant tag, when constructing a union
	Keys        []string
	Values      []Node
}

func (n *StructuredConstruct) Kind() Kind { return KindStructuredConstruct }

// Lambda is an anonymous function expression.
type Lambda struct {
	Base
	Params []Param
	Body   Node // *Block or a single expression
	Async  bool
}

func (n *Lambda) Kind() Kind { return KindLambda }

// InlineCodeInject is a target-language escape hatch embedded verbatim in
// generated output for the named target.
type InlineCodeInject struct {
	Base
	Target string
	Code   string
}

func (n *InlineCodeInject) Kind() Kind { return KindInlineCodeInject }

// CollectionDSL is a collection-construction shorthand, e.g. a set or map
// literal DSL distinct from ArrayLit/ObjectLit.
type CollectionDSL struct {
	Base
	CollectionKind string // "list", "map", "set"
	Elements       []Node
	Keys           []Node // non-nil entries only for "map"
}

func (n *CollectionDSL) Kind() Kind { return KindCollectionDSL }

// Comprehension is `[expr ex iterable pro binding si cond]`.
type Comprehension struct {
	Base
	Result   Node
	Binding  string
	Iterable Node
	Cond     Node // nil when no filter
}

func (n *Comprehension) Kind() Kind { return KindComprehension }

// FormatString is a format-string constructor using `§`/`§N` placeholders.
type FormatString struct {
	Base
	Template string
	Args     []Node
}

func (n *FormatString) Kind() Kind { return KindFormatString }

// ReadFileLiteral embeds the contents of a file at compile time.
type ReadFileLiteral struct {
	Base
	Path string
}

func (n *ReadFileLiteral) Kind() Kind { return KindReadFileLiteral }
