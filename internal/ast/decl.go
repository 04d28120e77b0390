package ast

// Import is `ex "path" importa name1, name2 ...`. An import whose Path
// is "norma" or begins with "norma/" is a compiler-intrinsic import and is
// erased at codegen: no target code is emitted for it.
type Import struct {
	Base
	Path    string
	Names   []string
	Alias   string // module-alias namespace, set by mount-annotation resolution
}

func (n *Import) Kind() Kind { return KindImport }

// IsIntrinsic reports whether this import's path is the reserved norma
// prefix and therefore produces no code in any target.
func (n *Import) IsIntrinsic() bool {
	return n.Path == "norma" || (len(n.Path) > len("norma/") && n.Path[:len("norma/")] == "norma/")
}

// DestructuringBind binds multiple names out of a single initializer, e.g.
// `varia {x, y} = point`.
type DestructuringBind struct {
	Base
	Names       []string
	Mutable     bool
	Initializer Node
}

func (n *DestructuringBind) Kind() Kind { return KindDestructuringBind }

// Variable is `varia name = expr` (mutable) or `fixum name = expr`
// (immutable). DeclaredType is nil when the type is inferred from Init.
type Variable struct {
	Base
	Name         string
	Mutable      bool
	DeclaredType *NamedType
	Init         Node
	Annotations  []*Annotation
}

func (n *Variable) Kind() Kind { return KindVariable }

// Param is one function parameter.
type Param struct {
	Name         string
	DeclaredType *NamedType
	Default      Node // nil when no default value
	Annotations  []*Annotation
}

// Function covers `functio`, with modifiers for async (futura), generator
// (cursor), mutating receiver, and throws.
type Function struct {
	Base
	Name        string
	Receiver    *Param // non-nil for a method
	Params      []Param
	ReturnType  *NamedType
	Body        *Block
	Async       bool
	Generator   bool
	MutatesSelf bool
	Throws      bool
	Annotations []*Annotation
}

func (n *Function) Kind() Kind { return KindFunction }

// TypeAlias is a named alias for another type expression.
type TypeAlias struct {
	Base
	Name string
	Type *NamedType
}

func (n *TypeAlias) Kind() Kind { return KindTypeAlias }

// Struct is `ordo Name { field: Type, ... }`.
type Struct struct {
	Base
	Name        string
	Fields      []*FieldDeclaration
	Annotations []*Annotation
}

func (n *Struct) Kind() Kind { return KindStruct }

// TaggedUnion is `discretio Name { Variant1 {fields}, Variant2, ... }`.
// Variants share a name space with the enclosing union; the tag value of a
// construction equals the variant name.
type TaggedUnion struct {
	Base
	Name     string
	Variants []UnionVariant
}

func (n *TaggedUnion) Kind() Kind { return KindTaggedUnion }

// UnionVariant is one member of a tagged union. Fields is empty for a
// tag-only variant (e.g. `Quit` with no payload).
type UnionVariant struct {
	Name   string
	Fields []*FieldDeclaration
	Pos    Node // not populated; variants are not standalone nodes
}

// Protocol is `pactum Name { method signatures... }`.
type Protocol struct {
	Base
	Name    string
	Methods []*Function // bodies are nil; signatures only
}

func (n *Protocol) Kind() Kind { return KindProtocol }

// FieldDeclaration is one field of a Struct or union variant.
type FieldDeclaration struct {
	Base
	Name         string
	DeclaredType *NamedType
	Default      Node
	Annotations  []*Annotation
}

func (n *FieldDeclaration) Kind() Kind { return KindFieldDeclaration }
