// Package ast defines CEL's abstract syntax tree: ten immutable node
// variants forming a tree with no sharing and no cycles. Grounded in
// original_source/pycel/ast.py for field names and shape, and in the
// teacher's parser/node.go for the Go idiom of a small tagged interface
// instead of a visitor hierarchy (CEL's grammar is small enough that a
// single-method Node interface plus a type switch in the evaluator reads
// more directly than a double-dispatch visitor).
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akashmaji946/go-cel/value"
)

// Node is implemented by every AST variant. Render reconstructs enough of
// the original source to be useful in diagnostics; it is not guaranteed
// to byte-for-byte match the input (whitespace and redundant parens are
// not preserved).
type Node interface {
	Render() string
}

// Literal holds a constant value produced directly by a token: an int,
// double, string, bool, or null. TypeTag records the scalar type name for
// diagnostics ("int", "double", "bool", "string", "null").
type Literal struct {
	Value   value.Value
	TypeTag string
}

func (l *Literal) Render() string {
	if s, ok := l.Value.AsString(); ok {
		return strconv.Quote(s)
	}
	return value.CanonicalString(l.Value)
}

// Identifier references a name resolved against the evaluation context or
// the built-in registry.
type Identifier struct {
	Name string
}

func (i *Identifier) Render() string { return i.Name }

// MemberAccess is obj.field. Object may be any expression, not just an
// identifier — (x).y and f().y are syntactically valid per spec.md's
// parser tie-breaks.
type MemberAccess struct {
	Object Node
	Field  string
}

func (m *MemberAccess) Render() string { return fmt.Sprintf("%s.%s", m.Object.Render(), m.Field) }

// IndexAccess is obj[index]: array indexing or map lookup depending on
// Object's runtime type.
type IndexAccess struct {
	Object Node
	Index  Node
}

func (x *IndexAccess) Render() string {
	return fmt.Sprintf("%s[%s]", x.Object.Render(), x.Index.Render())
}

// UnaryOp is a prefix operator (! or -) applied to Operand.
type UnaryOp struct {
	Op      string
	Operand Node
}

func (u *UnaryOp) Render() string { return u.Op + u.Operand.Render() }

// BinaryOp is an infix operator applied to Left and Right.
type BinaryOp struct {
	Op          string
	Left, Right Node
}

func (b *BinaryOp) Render() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.Render(), b.Op, b.Right.Render())
}

// TernaryOp is cond ? Then : Else.
type TernaryOp struct {
	Cond, Then, Else Node
}

func (t *TernaryOp) Render() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond.Render(), t.Then.Render(), t.Else.Render())
}

// FunctionCall is Callee(Args...). Callee is syntactically unrestricted
// (any postfix-chain expression); only an Identifier callee that names a
// built-in succeeds at evaluation, per spec.md §4.5.
type FunctionCall struct {
	Callee Node
	Args   []Node
}

func (c *FunctionCall) Render() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Render()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.Render(), strings.Join(parts, ", "))
}

// ListExpr is a list literal [e1, e2, ...].
type ListExpr struct {
	Elements []Node
}

func (l *ListExpr) Render() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Render()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapEntry is one key: value pair inside a MapExpr.
type MapEntry struct {
	Key, Value Node
}

// MapExpr is a map literal {k1: v1, k2: v2, ...}.
type MapExpr struct {
	Entries []MapEntry
}

func (m *MapExpr) Render() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key.Render(), e.Value.Render())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
