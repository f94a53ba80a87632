// Package eval implements CEL's tree-walking evaluator: Compile turns
// source text into an immutable CompiledExpression, and Evaluate runs it
// against a caller-supplied context. Grounded on the teacher's eval/eval.go
// (a single Eval(node, env) tree walk dispatching on node type) but with
// go-mix's mutable Environment replaced by a read-only map[string]value.Value
// per call, since CEL expressions are side-effect-free and the evaluator
// must never write back into the caller's context — std/builtins.go's
// callback registry is consulted, never copied into it.
package eval

import (
	"github.com/akashmaji946/go-cel/ast"
	"github.com/akashmaji946/go-cel/builtin"
	"github.com/akashmaji946/go-cel/diagnostics"
	"github.com/akashmaji946/go-cel/parser"
	"github.com/akashmaji946/go-cel/value"
)

// maxDepth bounds recursive tree-walking depth to guard against stack
// exhaustion on adversarial input, per spec.md §6's ~200 recursion guidance.
const maxDepth = 200

// Context is the set of variable bindings an expression evaluates against.
// It is read-only from the evaluator's perspective: Evaluate never writes
// into it.
type Context map[string]value.Value

// Policy controls identifier-resolution strictness.
type Policy struct {
	// AllowUndeclaredVars, when true (the default), defers the Undefined
	// error on an unresolved identifier until its value is actually
	// consumed — a read inside an untaken short-circuit branch never
	// raises. When false, every identifier in the expression must resolve
	// against the context or the built-in registry, checked eagerly
	// before evaluation begins.
	AllowUndeclaredVars bool
}

// DefaultPolicy is the permissive policy used by the package-level
// Evaluate convenience function.
var DefaultPolicy = Policy{AllowUndeclaredVars: true}

// CompiledExpression is an immutable parsed expression paired with the
// policy it was compiled under. It is safe to evaluate concurrently
// against distinct contexts.
type CompiledExpression struct {
	AST    ast.Node
	Policy Policy
	source string
}

var registry = builtin.NewRegistry()

// Compile parses source and pairs the resulting AST with policy. It does
// no identifier validation: the context is not known until Evaluate is
// called, so the strict-policy check (checkDeclared) runs there, before
// evaluation begins.
func Compile(source string, policy Policy) (*CompiledExpression, error) {
	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &CompiledExpression{AST: node, Policy: policy, source: source}, nil
}

// Evaluate runs the compiled expression against context.
func (c *CompiledExpression) Evaluate(context Context) (value.Value, error) {
	ev := &evaluator{context: context, policy: c.Policy}
	if !c.Policy.AllowUndeclaredVars {
		if err := ev.checkDeclared(c.AST); err != nil {
			return value.Null(), err
		}
	}
	return ev.eval(c.AST, 0)
}

// Evaluate is a convenience wrapper that evaluates an already-parsed AST
// against context under the default (permissive) policy.
func Evaluate(node ast.Node, context Context) (value.Value, error) {
	ev := &evaluator{context: context, policy: DefaultPolicy}
	return ev.eval(node, 0)
}

type evaluator struct {
	context Context
	policy  Policy
}

// checkDeclared walks the entire tree up front, raising Undefined for any
// identifier that resolves neither in the context nor the built-in
// registry. This implements the strict (allow_undeclared_vars=false) mode:
// every identifier must be known before evaluation proceeds, even ones a
// short-circuit would otherwise skip.
func (ev *evaluator) checkDeclared(n ast.Node) error {
	switch node := n.(type) {
	case *ast.Literal:
		return nil
	case *ast.Identifier:
		if _, ok := ev.context[node.Name]; ok {
			return nil
		}
		if registry.Has(node.Name) {
			return nil
		}
		return diagnostics.NewUndefined("undefined identifier %q", node.Name)
	case *ast.MemberAccess:
		return ev.checkDeclared(node.Object)
	case *ast.IndexAccess:
		if err := ev.checkDeclared(node.Object); err != nil {
			return err
		}
		return ev.checkDeclared(node.Index)
	case *ast.UnaryOp:
		return ev.checkDeclared(node.Operand)
	case *ast.BinaryOp:
		if err := ev.checkDeclared(node.Left); err != nil {
			return err
		}
		return ev.checkDeclared(node.Right)
	case *ast.TernaryOp:
		if err := ev.checkDeclared(node.Cond); err != nil {
			return err
		}
		if err := ev.checkDeclared(node.Then); err != nil {
			return err
		}
		return ev.checkDeclared(node.Else)
	case *ast.FunctionCall:
		if callee, ok := node.Callee.(*ast.Identifier); ok {
			if _, shadowed := ev.context[callee.Name]; !shadowed && !registry.Has(callee.Name) {
				return diagnostics.NewUndefined("undefined function %q", callee.Name)
			}
		} else if err := ev.checkDeclared(node.Callee); err != nil {
			return err
		}
		for _, a := range node.Args {
			if err := ev.checkDeclared(a); err != nil {
				return err
			}
		}
		return nil
	case *ast.ListExpr:
		for _, e := range node.Elements {
			if err := ev.checkDeclared(e); err != nil {
				return err
			}
		}
		return nil
	case *ast.MapExpr:
		for _, entry := range node.Entries {
			if err := ev.checkDeclared(entry.Key); err != nil {
				return err
			}
			if err := ev.checkDeclared(entry.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (ev *evaluator) eval(n ast.Node, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Null(), diagnostics.NewOther("maximum recursion depth exceeded")
	}
	switch node := n.(type) {
	case *ast.Literal:
		return node.Value, nil
	case *ast.Identifier:
		return ev.evalIdentifier(node)
	case *ast.MemberAccess:
		return ev.evalMemberAccess(node, depth)
	case *ast.IndexAccess:
		return ev.evalIndexAccess(node, depth)
	case *ast.UnaryOp:
		return ev.evalUnary(node, depth)
	case *ast.BinaryOp:
		return ev.evalBinary(node, depth)
	case *ast.TernaryOp:
		return ev.evalTernary(node, depth)
	case *ast.FunctionCall:
		return ev.evalCall(node, depth)
	case *ast.ListExpr:
		return ev.evalList(node, depth)
	case *ast.MapExpr:
		return ev.evalMap(node, depth)
	default:
		return value.Null(), diagnostics.NewOther("unknown AST node %T", n)
	}
}

// evalIdentifier resolves a bare name: context first, then the built-in
// registry (returned as a sentinel null — a bare reference to a built-in
// name that is never called has no useful value in CEL; it is only
// meaningful as a FunctionCall callee, handled separately in evalCall),
// else Undefined.
func (ev *evaluator) evalIdentifier(node *ast.Identifier) (value.Value, error) {
	if v, ok := ev.context[node.Name]; ok {
		return v, nil
	}
	if registry.Has(node.Name) {
		return value.Null(), nil
	}
	return value.Null(), diagnostics.NewUndefined("undefined identifier %q", node.Name)
}

func (ev *evaluator) evalMemberAccess(node *ast.MemberAccess, depth int) (value.Value, error) {
	obj, err := ev.eval(node.Object, depth+1)
	if err != nil {
		return value.Null(), err
	}
	m, ok := obj.AsMap()
	if !ok {
		return value.Null(), diagnostics.NewType("member access requires a map, got %s", obj.TypeName())
	}
	key := value.MapKey{Kind: value.KindString, S: node.Field}
	v, ok := m[key]
	if !ok {
		return value.Null(), diagnostics.NewUndefined("undefined field %q", node.Field)
	}
	return v, nil
}

func (ev *evaluator) evalIndexAccess(node *ast.IndexAccess, depth int) (value.Value, error) {
	obj, err := ev.eval(node.Object, depth+1)
	if err != nil {
		return value.Null(), err
	}
	idx, err := ev.eval(node.Index, depth+1)
	if err != nil {
		return value.Null(), err
	}
	switch obj.Kind() {
	case value.KindList:
		l, _ := obj.AsList()
		i, ok := idx.AsInt()
		if !ok {
			return value.Null(), diagnostics.NewType("list index must be an int, got %s", idx.TypeName())
		}
		if i < 0 || i >= int64(len(l)) {
			return value.Null(), diagnostics.NewOther("list index %d out of range (length %d)", i, len(l))
		}
		return l[i], nil
	case value.KindMap:
		m, _ := obj.AsMap()
		key, ok := value.ToMapKey(idx)
		if !ok {
			return value.Null(), diagnostics.NewType("map key must be null, bool, int, or string, got %s", idx.TypeName())
		}
		v, ok := m[key]
		if !ok {
			return value.Null(), diagnostics.NewUndefined("undefined map key %s", value.CanonicalString(idx))
		}
		return v, nil
	default:
		return value.Null(), diagnostics.NewType("index access requires a list or map, got %s", obj.TypeName())
	}
}

func (ev *evaluator) evalUnary(node *ast.UnaryOp, depth int) (value.Value, error) {
	operand, err := ev.eval(node.Operand, depth+1)
	if err != nil {
		return value.Null(), err
	}
	switch node.Op {
	case "!":
		b, ok := operand.AsBool()
		if !ok {
			return value.Null(), diagnostics.NewType("'!' requires bool, got %s", operand.TypeName())
		}
		return value.Bool(!b), nil
	case "-":
		switch operand.Kind() {
		case value.KindInt:
			i, _ := operand.AsInt()
			return value.Int(-i), nil
		case value.KindDouble:
			f, _ := operand.AsDouble()
			return value.Double(-f), nil
		default:
			return value.Null(), diagnostics.NewType("unary '-' requires int or double, got %s", operand.TypeName())
		}
	default:
		return value.Null(), diagnostics.NewOther("unknown unary operator %q", node.Op)
	}
}

func (ev *evaluator) evalTernary(node *ast.TernaryOp, depth int) (value.Value, error) {
	cond, err := ev.eval(node.Cond, depth+1)
	if err != nil {
		return value.Null(), err
	}
	b, ok := cond.AsBool()
	if !ok {
		return value.Null(), diagnostics.NewType("ternary condition requires bool, got %s", cond.TypeName())
	}
	if b {
		return ev.eval(node.Then, depth+1)
	}
	return ev.eval(node.Else, depth+1)
}

func (ev *evaluator) evalBinary(node *ast.BinaryOp, depth int) (value.Value, error) {
	switch node.Op {
	case "&&":
		return ev.evalLogical(node, depth, true)
	case "||":
		return ev.evalLogical(node, depth, false)
	}

	left, err := ev.eval(node.Left, depth+1)
	if err != nil {
		return value.Null(), err
	}
	right, err := ev.eval(node.Right, depth+1)
	if err != nil {
		return value.Null(), err
	}

	switch node.Op {
	case "==":
		return value.Bool(left.Equal(right)), nil
	case "!=":
		return value.Bool(!left.Equal(right)), nil
	case "<", "<=", ">", ">=":
		return evalComparison(node.Op, left, right)
	case "+", "-", "*", "/", "%":
		return evalArithmetic(node.Op, left, right)
	default:
		return value.Null(), diagnostics.NewOther("unknown binary operator %q", node.Op)
	}
}

// evalLogical implements && (isAnd true) and || (isAnd false) with
// short-circuiting: the right side is never evaluated, and its type never
// inspected, once the left side alone determines the result.
func (ev *evaluator) evalLogical(node *ast.BinaryOp, depth int, isAnd bool) (value.Value, error) {
	left, err := ev.eval(node.Left, depth+1)
	if err != nil {
		return value.Null(), err
	}
	lb, ok := left.AsBool()
	if !ok {
		return value.Null(), diagnostics.NewType("%q requires bool operands, got %s", node.Op, left.TypeName())
	}
	if isAnd && !lb {
		return value.Bool(false), nil
	}
	if !isAnd && lb {
		return value.Bool(true), nil
	}
	right, err := ev.eval(node.Right, depth+1)
	if err != nil {
		return value.Null(), err
	}
	rb, ok := right.AsBool()
	if !ok {
		return value.Null(), diagnostics.NewType("%q requires bool operands, got %s", node.Op, right.TypeName())
	}
	return value.Bool(rb), nil
}

func evalComparison(op string, left, right value.Value) (value.Value, error) {
	cmp, err := value.Compare(left, right)
	if err != nil {
		return value.Null(), diagnostics.NewType("%s", err.Error())
	}
	switch op {
	case "<":
		return value.Bool(cmp < 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	case ">=":
		return value.Bool(cmp >= 0), nil
	default:
		return value.Null(), diagnostics.NewOther("unknown comparison operator %q", op)
	}
}

// evalArithmetic implements +, -, *, /, % with CEL's numeric promotion
// (int op double promotes to double) plus the string/list special cases
// for '+'. Integer division truncates toward zero (Go's native behavior);
// double division by zero follows IEEE semantics and never errors.
func evalArithmetic(op string, left, right value.Value) (value.Value, error) {
	if op == "+" {
		if ls, ok := left.AsString(); ok {
			if rs, ok := right.AsString(); ok {
				return value.String(ls + rs), nil
			}
			return value.Null(), diagnostics.NewType("'+' requires matching operand types, got string and %s", right.TypeName())
		}
		if ll, ok := left.AsList(); ok {
			if rl, ok := right.AsList(); ok {
				out := make([]value.Value, 0, len(ll)+len(rl))
				out = append(out, ll...)
				out = append(out, rl...)
				return value.List(out), nil
			}
			return value.Null(), diagnostics.NewType("'+' requires matching operand types, got list and %s", right.TypeName())
		}
	}

	if !left.IsNumeric() || !right.IsNumeric() {
		return value.Null(), diagnostics.NewType("'%s' requires numeric operands, got %s and %s", op, left.TypeName(), right.TypeName())
	}

	if left.Kind() == value.KindInt && right.Kind() == value.KindInt {
		li, _ := left.AsInt()
		ri, _ := right.AsInt()
		switch op {
		case "+":
			return value.Int(li + ri), nil
		case "-":
			return value.Int(li - ri), nil
		case "*":
			return value.Int(li * ri), nil
		case "/":
			if ri == 0 {
				return value.Null(), diagnostics.NewOther("integer division by zero")
			}
			return value.Int(li / ri), nil
		case "%":
			if ri == 0 {
				return value.Null(), diagnostics.NewOther("integer modulo by zero")
			}
			return value.Int(li % ri), nil
		}
	}

	if op == "%" {
		return value.Null(), diagnostics.NewType("'%%' requires int operands, got %s and %s", left.TypeName(), right.TypeName())
	}

	lf, _ := left.AsFloat64()
	rf, _ := right.AsFloat64()
	switch op {
	case "+":
		return value.Double(lf + rf), nil
	case "-":
		return value.Double(lf - rf), nil
	case "*":
		return value.Double(lf * rf), nil
	case "/":
		return value.Double(lf / rf), nil
	default:
		return value.Null(), diagnostics.NewOther("unknown arithmetic operator %q", op)
	}
}

func (ev *evaluator) evalCall(node *ast.FunctionCall, depth int) (value.Value, error) {
	callee, ok := node.Callee.(*ast.Identifier)
	if !ok {
		return value.Null(), diagnostics.NewType("call target must be a built-in function name")
	}
	if _, shadowed := ev.context[callee.Name]; shadowed {
		return value.Null(), diagnostics.NewType("%q is not callable", callee.Name)
	}
	fn, ok := registry.Lookup(callee.Name)
	if !ok {
		return value.Null(), diagnostics.NewUndefined("undefined function %q", callee.Name)
	}
	args := make([]value.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := ev.eval(a, depth+1)
		if err != nil {
			return value.Null(), err
		}
		args[i] = v
	}
	return fn(args)
}

func (ev *evaluator) evalList(node *ast.ListExpr, depth int) (value.Value, error) {
	elems := make([]value.Value, len(node.Elements))
	for i, e := range node.Elements {
		v, err := ev.eval(e, depth+1)
		if err != nil {
			return value.Null(), err
		}
		elems[i] = v
	}
	return value.List(elems), nil
}

func (ev *evaluator) evalMap(node *ast.MapExpr, depth int) (value.Value, error) {
	entries := make(map[value.MapKey]value.Value, len(node.Entries))
	for _, entry := range node.Entries {
		k, err := ev.eval(entry.Key, depth+1)
		if err != nil {
			return value.Null(), err
		}
		key, ok := value.ToMapKey(k)
		if !ok {
			return value.Null(), diagnostics.NewType("map key must be null, bool, int, or string, got %s", k.TypeName())
		}
		if _, dup := entries[key]; dup {
			return value.Null(), diagnostics.NewOther("duplicate map key %s", value.CanonicalString(k))
		}
		v, err := ev.eval(entry.Value, depth+1)
		if err != nil {
			return value.Null(), err
		}
		entries[key] = v
	}
	return value.Map(entries), nil
}
