package ast

// TypeArg is a generic type parameter: either a nested type or a literal
// number (for fixed-size array/vector types).
type TypeArg struct {
	Type    *NamedType
	Literal string // set when this argument is a literal number, not a type
}

// Ownership names the borrow/ownership preposition on a type, binding
// loosest of all type modifiers.
type Ownership string

const (
	OwnershipNone     Ownership = ""
	OwnershipBorrowed Ownership = "borrowed"
	OwnershipMutable  Ownership = "mutable-borrow"
)

// NamedType is a named type with optional type parameters, nullability, and
// borrow/ownership preposition. Function types (T, U) -> V are represented
// via FunctionShape instead of Name/Args.
type NamedType struct {
	Base
	Name      string
	Args      []TypeArg
	Nullable  bool
	Ownership Ownership

	FunctionShape *FunctionType // non-nil for the `(T, U) -> V` alternative shape
}

func (n *NamedType) Kind() Kind { return KindNamedType }

// FunctionType is the `(params) -> return` alternative type shape.
type FunctionType struct {
	Base
	Params []*NamedType
	Return *NamedType
}

func (n *FunctionType) Kind() Kind { return KindFunctionType }
