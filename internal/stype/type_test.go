package stype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknownForNilAndSentinel(t *testing.T) {
	var nilType *Type
	assert.True(t, nilType.IsUnknown())
	assert.True(t, UnknownType.IsUnknown())
	assert.False(t, NewPrimitive(Integer64).IsUnknown())
}

func TestIsCollectionRecognizesGenericCollectionKinds(t *testing.T) {
	kind, ok := NewGeneric(CollectionList, NewPrimitive(Integer64)).IsCollection()
	assert.True(t, ok)
	assert.Equal(t, CollectionList, kind)

	_, ok = NewPrimitive(String).IsCollection()
	assert.False(t, ok)
}

func TestWithNullablePreservesOriginal(t *testing.T) {
	base := NewPrimitive(String)
	nullable := base.WithNullable(true)
	assert.False(t, base.Nullable)
	assert.True(t, nullable.Nullable)
}

func TestEqualIgnoresNullability(t *testing.T) {
	a := NewPrimitive(Integer64)
	b := NewPrimitive(Integer64).WithNullable(true)
	assert.True(t, a.Equal(b))
}

func TestEqualGenericComparesArgsPositionally(t *testing.T) {
	a := NewGeneric(CollectionList, NewPrimitive(Integer64))
	b := NewGeneric(CollectionList, NewPrimitive(Integer64))
	c := NewGeneric(CollectionList, NewPrimitive(String))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqualFunctionComparesParamsAndReturn(t *testing.T) {
	f1 := NewFunction([]*Type{NewPrimitive(Integer64)}, NewPrimitive(Bool))
	f2 := NewFunction([]*Type{NewPrimitive(Integer64)}, NewPrimitive(Bool))
	f3 := NewFunction([]*Type{NewPrimitive(String)}, NewPrimitive(Bool))
	assert.True(t, f1.Equal(f2))
	assert.False(t, f1.Equal(f3))
}

func TestJoinOfIdenticalTypesYieldsSingleType(t *testing.T) {
	joined := Join([]*Type{NewPrimitive(Integer64), NewPrimitive(Integer64)})
	assert.Equal(t, Primitive, joined.Sort)
	assert.Equal(t, Integer64, joined.Name)
}

func TestJoinOfIncompatibleTypesYieldsUnion(t *testing.T) {
	joined := Join([]*Type{NewPrimitive(Integer64), NewPrimitive(String)})
	assert.Equal(t, Union, joined.Sort)
	assert.Len(t, joined.Members, 2)
}

func TestJoinOfEmptySliceYieldsUnknown(t *testing.T) {
	assert.True(t, Join(nil).IsUnknown())
}

func TestStringRendersGenericWithArgs(t *testing.T) {
	ty := NewGeneric(CollectionList, NewPrimitive(Integer64))
	assert.Equal(t, "list<integer-64>", ty.String())
}

func TestStringRendersNullableSuffix(t *testing.T) {
	ty := NewPrimitive(String).WithNullable(true)
	assert.Equal(t, "string?", ty.String())
}
