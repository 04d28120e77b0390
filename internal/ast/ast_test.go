package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/fabc/internal/stype"
	"github.com/oxhq/fabc/internal/token"
)

func TestBasePosReturnsEmbeddedPosition(t *testing.T) {
	b := Base{Position: token.Position{File: "f.fab", Line: 3, Column: 1}}
	assert.Equal(t, 3, b.Pos().Line)
}

func TestBaseResolvedTypeDefaultsNil(t *testing.T) {
	var b Base
	assert.Nil(t, b.ResolvedType())
}

func TestBaseSetResolvedTypeMutatesInPlace(t *testing.T) {
	b := &Base{}
	b.SetResolvedType(stype.NewPrimitive(stype.Integer64))
	assert.Equal(t, stype.Integer64, b.ResolvedType().Name)
}

func TestErrorNodeKindIsErrorStmt(t *testing.T) {
	n := &ErrorNode{Message: "unexpected token"}
	assert.Equal(t, KindErrorStmt, n.Kind())
}

func TestErrorNodeIsNeverNilSentinelCarriesPosition(t *testing.T) {
	pos := token.Position{File: "f.fab", Line: 5, Column: 2}
	n := &ErrorNode{Base: Base{Position: pos}, Message: "bad"}
	var node Node = n
	assert.Equal(t, pos, node.Pos())
}

func TestProgramKindIsProgram(t *testing.T) {
	p := &Program{File: "f.fab"}
	assert.Equal(t, KindProgram, p.Kind())
}

func TestAnnotationKindIsAnnotation(t *testing.T) {
	a := &Annotation{Name: "cli", Args: []string{"tool"}}
	assert.Equal(t, KindAnnotation, a.Kind())
}
