// Package stype holds the semantic type lattice and symbol table shared by
// the AST (every expression node carries a *stype.Type) and the semantic
// analyzer (which builds and assigns them). Kept separate from both ast and
// sema so neither package needs to import the other.
package stype

import "fmt"

// Sort discriminates the semantic type sum.
type Sort int

const (
	Primitive Sort = iota
	Generic
	Function
	Union
	User
	Unknown
)

// Type is the semantic type sum described in the data model: primitive,
// generic, function, union, user, or unknown, each carrying a nullability
// flag.
type Type struct {
	Sort     Sort
	Name     string  // primitive/user name, or generic base name
	Args     []*Type // generic type arguments
	Params   []*Type // function parameter types
	Return   *Type   // function return type
	Members  []*Type // union member types
	Nullable bool
}

// Well-known primitive type names, per the semantic analyzer's inference
// rules.
const (
	Integer64 = "integer-64"
	Fraction64 = "fraction-64"
	String     = "string"
	Bool       = "bool"
)

// Collection kind names, the three generic collections the norma registry
// keys translations on.
const (
	CollectionList = "list"
	CollectionMap  = "map"
	CollectionSet  = "set"
)

func NewPrimitive(name string) *Type { return &Type{Sort: Primitive, Name: name} }

func NewGeneric(name string, args ...*Type) *Type {
	return &Type{Sort: Generic, Name: name, Args: args}
}

func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Sort: Function, Params: params, Return: ret}
}

func NewUnion(members ...*Type) *Type {
	if len(members) == 1 {
		return members[0]
	}
	return &Type{Sort: Union, Members: members}
}

func NewUser(name string) *Type { return &Type{Sort: User, Name: name} }

var UnknownType = &Type{Sort: Unknown}

// IsUnknown reports whether t is absent or the unknown sentinel.
func (t *Type) IsUnknown() bool { return t == nil || t.Sort == Unknown }

// IsCollection reports whether t is a generic list/map/set, and which kind.
func (t *Type) IsCollection() (kind string, ok bool) {
	if t == nil || t.Sort != Generic {
		return "", false
	}
	switch t.Name {
	case CollectionList, CollectionMap, CollectionSet:
		return t.Name, true
	default:
		return "", false
	}
}

// WithNullable returns a copy of t with Nullable set.
func (t *Type) WithNullable(nullable bool) *Type {
	if t == nil {
		return t
	}
	cp := *t
	cp.Nullable = nullable
	return &cp
}

func (t *Type) String() string {
	if t == nil {
		return "unknown"
	}
	suffix := ""
	if t.Nullable {
		suffix = "?"
	}
	switch t.Sort {
	case Primitive:
		return t.Name + suffix
	case Generic:
		args := ""
		for i, a := range t.Args {
			if i > 0 {
				args += ", "
			}
			args += a.String()
		}
		return fmt.Sprintf("%s<%s>%s", t.Name, args, suffix)
	case Function:
		params := ""
		for i, p := range t.Params {
			if i > 0 {
				params += ", "
			}
			params += p.String()
		}
		return fmt.Sprintf("(%s) -> %s%s", params, t.Return, suffix)
	case Union:
		out := ""
		for i, m := range t.Members {
			if i > 0 {
				out += " | "
			}
			out += m.String()
		}
		return out + suffix
	case User:
		return t.Name + suffix
	default:
		return "unknown" + suffix
	}
}

// Equal reports structural equality, ignoring nullability, used to decide
// whether array-literal element types are compatible or must join into a
// union.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Sort != other.Sort {
		return false
	}
	switch t.Sort {
	case Primitive, User:
		return t.Name == other.Name
	case Generic:
		if t.Name != other.Name || len(t.Args) != len(other.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(other.Args[i]) {
				return false
			}
		}
		return true
	case Function:
		if !t.Return.Equal(other.Return) || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	case Unknown:
		return true
	default:
		return false
	}
}

// Join computes the type of an array literal from its element types: equal
// types join to themselves, otherwise they join to a union, per the
// semantic analyzer's array-literal inference rule.
func Join(types []*Type) *Type {
	if len(types) == 0 {
		return UnknownType
	}
	uniq := make([]*Type, 0, len(types))
	for _, t := range types {
		found := false
		for _, u := range uniq {
			if u.Equal(t) {
				found = true
				break
			}
		}
		if !found {
			uniq = append(uniq, t)
		}
	}
	return NewUnion(uniq...)
}
