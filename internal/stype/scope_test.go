package stype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeDefineAndLookup(t *testing.T) {
	s := NewScope(nil)
	ok := s.Define(Symbol{Name: "x", Kind: SymVariable, Type: NewPrimitive(Integer64)})
	require.True(t, ok)

	sym, found := s.Lookup("x")
	require.True(t, found)
	assert.Equal(t, SymVariable, sym.Kind)
}

func TestScopeDefineRejectsDuplicateInSameScope(t *testing.T) {
	s := NewScope(nil)
	require.True(t, s.Define(Symbol{Name: "x"}))
	assert.False(t, s.Define(Symbol{Name: "x"}))
}

func TestScopeLookupWalksParents(t *testing.T) {
	parent := NewScope(nil)
	parent.Define(Symbol{Name: "outer"})
	child := NewScope(parent)

	_, found := child.Lookup("outer")
	assert.True(t, found)
}

func TestScopeIsolationAfterBlockCloses(t *testing.T) {
	// Simulates testable property 6: a name defined inside a block is not
	// visible once that scope is discarded (a sibling scope sharing the same
	// parent cannot see it).
	parent := NewScope(nil)
	block := NewScope(parent)
	block.Define(Symbol{Name: "inner"})

	sibling := NewScope(parent)
	_, found := sibling.Lookup("inner")
	assert.False(t, found)
}

func TestScopeShadowingAcrossScopesIsAllowed(t *testing.T) {
	parent := NewScope(nil)
	parent.Define(Symbol{Name: "x", Type: NewPrimitive(Integer64)})
	child := NewScope(parent)
	require.True(t, child.Define(Symbol{Name: "x", Type: NewPrimitive(String)}))

	sym, _ := child.Lookup("x")
	assert.Equal(t, String, sym.Type.Name)
}

func TestScopeLookupLocalDoesNotWalkParents(t *testing.T) {
	parent := NewScope(nil)
	parent.Define(Symbol{Name: "outer"})
	child := NewScope(parent)

	_, found := child.LookupLocal("outer")
	assert.False(t, found)
}

func TestScopeLookupMissingNameReturnsFalse(t *testing.T) {
	s := NewScope(nil)
	_, found := s.Lookup("nope")
	assert.False(t, found)
}
