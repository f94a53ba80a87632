package parser

import (
	"testing"

	"github.com/akashmaji946/go-cel/ast"
	"github.com/akashmaji946/go-cel/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precedence(t *testing.T) {
	node, err := Parse("a + b * 2")
	require.NoError(t, err)
	bin, ok := node.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	assert.IsType(t, &ast.Identifier{}, bin.Left)
	rhs, ok := bin.Right.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParse_Parentheses(t *testing.T) {
	node, err := Parse("(a + b) * 2")
	require.NoError(t, err)
	bin, ok := node.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Op)
	assert.IsType(t, &ast.BinaryOp{}, bin.Left)
}

func TestParse_TernaryRightAssociative(t *testing.T) {
	node, err := Parse("a ? b : c ? d : e")
	require.NoError(t, err)
	top, ok := node.(*ast.TernaryOp)
	require.True(t, ok)
	assert.IsType(t, &ast.Identifier{}, top.Then)
	assert.IsType(t, &ast.TernaryOp{}, top.Else)
}

func TestParse_LogicalAndComparison(t *testing.T) {
	node, err := Parse("a && b || c == d")
	require.NoError(t, err)
	or, ok := node.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "||", or.Op)
	and, ok := or.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "&&", and.Op)
	eq, ok := or.Right.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "==", eq.Op)
}

func TestParse_UnaryNegateLiteral(t *testing.T) {
	node, err := Parse("-5")
	require.NoError(t, err)
	un, ok := node.(*ast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "-", un.Op)
	assert.IsType(t, &ast.Literal{}, un.Operand)
}

func TestParse_UnaryNesting(t *testing.T) {
	node, err := Parse("!!a")
	require.NoError(t, err)
	outer, ok := node.(*ast.UnaryOp)
	require.True(t, ok)
	inner, ok := outer.Operand.(*ast.UnaryOp)
	require.True(t, ok)
	assert.IsType(t, &ast.Identifier{}, inner.Operand)
}

func TestParse_MemberAndIndexAndCallChain(t *testing.T) {
	node, err := Parse("user.profile.email")
	require.NoError(t, err)
	outer, ok := node.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "email", outer.Field)
	inner, ok := outer.Object.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "profile", inner.Field)
}

func TestParse_MemberOnNonIdentifier(t *testing.T) {
	_, err := Parse("(x).y")
	require.NoError(t, err)
	_, err = Parse("f().y")
	require.NoError(t, err)
}

func TestParse_IndexAccess(t *testing.T) {
	node, err := Parse("tags[0]")
	require.NoError(t, err)
	idx, ok := node.(*ast.IndexAccess)
	require.True(t, ok)
	assert.IsType(t, &ast.Identifier{}, idx.Object)
	assert.IsType(t, &ast.Literal{}, idx.Index)
}

func TestParse_FunctionCall(t *testing.T) {
	node, err := Parse("contains(tags, 'admin')")
	require.NoError(t, err)
	call, ok := node.(*ast.FunctionCall)
	require.True(t, ok)
	assert.IsType(t, &ast.Identifier{}, call.Callee)
	require.Len(t, call.Args, 2)
}

func TestParse_EmptyListAndMap(t *testing.T) {
	node, err := Parse("[]")
	require.NoError(t, err)
	list, ok := node.(*ast.ListExpr)
	require.True(t, ok)
	assert.Empty(t, list.Elements)

	node, err = Parse("{}")
	require.NoError(t, err)
	m, ok := node.(*ast.MapExpr)
	require.True(t, ok)
	assert.Empty(t, m.Entries)
}

func TestParse_ListAndMapLiterals(t *testing.T) {
	node, err := Parse(`[1, 2, 3]`)
	require.NoError(t, err)
	list, ok := node.(*ast.ListExpr)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)

	node, err = Parse(`{"a": 1, "b": 2}`)
	require.NoError(t, err)
	m, ok := node.(*ast.MapExpr)
	require.True(t, ok)
	assert.Len(t, m.Entries, 2)
}

func TestParse_TrailingCommaRejected(t *testing.T) {
	_, err := Parse("[1, 2,]")
	require.Error(t, err)
	assert.True(t, diagnostics.Is(err, diagnostics.Syntax))

	_, err = Parse("f(1, 2,)")
	require.Error(t, err)

	_, err = Parse(`{"a": 1,}`)
	require.Error(t, err)
}

func TestParse_UnterminatedAtOpeningOffset(t *testing.T) {
	_, err := Parse("[1, 2")
	require.Error(t, err)
	de, ok := err.(*diagnostics.Error)
	require.True(t, ok)
	assert.Equal(t, 0, de.Offset)
}

func TestParse_SyntaxErrorWithCaret(t *testing.T) {
	_, err := Parse("a + * b")
	require.Error(t, err)
	de, ok := err.(*diagnostics.Error)
	require.True(t, ok)
	assert.Equal(t, diagnostics.Syntax, de.Kind)
	assert.Equal(t, 4, de.Offset)
	assert.Contains(t, de.Error(), "^")
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		src      string
		typeTag  string
	}{
		{"42", "int"},
		{"3.14", "double"},
		{`"hi"`, "string"},
		{"true", "bool"},
		{"false", "bool"},
		{"null", "null"},
	}
	for _, tc := range tests {
		node, err := Parse(tc.src)
		require.NoError(t, err, tc.src)
		lit, ok := node.(*ast.Literal)
		require.True(t, ok, tc.src)
		assert.Equal(t, tc.typeTag, lit.TypeTag, tc.src)
	}
}
