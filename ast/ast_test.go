package ast

import (
	"testing"

	"github.com/akashmaji946/go-cel/value"
	"github.com/stretchr/testify/assert"
)

func TestRender_Literal(t *testing.T) {
	assert.Equal(t, `"hi"`, (&Literal{Value: value.String("hi"), TypeTag: "string"}).Render())
	assert.Equal(t, "42", (&Literal{Value: value.Int(42), TypeTag: "int"}).Render())
	assert.Equal(t, "null", (&Literal{Value: value.Null(), TypeTag: "null"}).Render())
}

func TestRender_Identifier(t *testing.T) {
	assert.Equal(t, "a", (&Identifier{Name: "a"}).Render())
}

func TestRender_MemberAndIndex(t *testing.T) {
	m := &MemberAccess{Object: &Identifier{Name: "user"}, Field: "name"}
	assert.Equal(t, "user.name", m.Render())

	idx := &IndexAccess{Object: &Identifier{Name: "tags"}, Index: &Literal{Value: value.Int(0), TypeTag: "int"}}
	assert.Equal(t, "tags[0]", idx.Render())
}

func TestRender_UnaryAndBinary(t *testing.T) {
	u := &UnaryOp{Op: "-", Operand: &Literal{Value: value.Int(5), TypeTag: "int"}}
	assert.Equal(t, "-5", u.Render())

	b := &BinaryOp{Op: "+", Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}}
	assert.Equal(t, "(a + b)", b.Render())
}

func TestRender_Ternary(t *testing.T) {
	tn := &TernaryOp{Cond: &Identifier{Name: "c"}, Then: &Identifier{Name: "t"}, Else: &Identifier{Name: "e"}}
	assert.Equal(t, "(c ? t : e)", tn.Render())
}

func TestRender_FunctionCall(t *testing.T) {
	c := &FunctionCall{Callee: &Identifier{Name: "size"}, Args: []Node{&Identifier{Name: "tags"}}}
	assert.Equal(t, "size(tags)", c.Render())
}

func TestRender_ListAndMap(t *testing.T) {
	l := &ListExpr{Elements: []Node{&Literal{Value: value.Int(1), TypeTag: "int"}, &Literal{Value: value.Int(2), TypeTag: "int"}}}
	assert.Equal(t, "[1, 2]", l.Render())

	m := &MapExpr{Entries: []MapEntry{{Key: &Literal{Value: value.String("a"), TypeTag: "string"}, Value: &Literal{Value: value.Int(1), TypeTag: "int"}}}}
	assert.Equal(t, `{"a": 1}`, m.Render())
}
