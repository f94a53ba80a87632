// Package parser implements a recursive-descent, precedence-climbing
// parser for CEL expressions, producing an ast.Node tree. Grounded on the
// teacher's parser/parser.go (two-token lookahead via CurrToken/NextToken,
// an advance() that shifts the lookahead window) but narrowed from
// go-mix's statement grammar down to CEL's single-expression grammar: no
// statements, no declarations, no assignment — every CEL program is one
// expression.
//
// The parser never collects multiple errors; unlike the teacher's
// Parser.Errors slice, the first syntax error aborts parsing immediately,
// per spec.md §4.4 and §7.
package parser

import (
	"strconv"

	"github.com/akashmaji946/go-cel/ast"
	"github.com/akashmaji946/go-cel/diagnostics"
	"github.com/akashmaji946/go-cel/lexer"
	"github.com/akashmaji946/go-cel/value"
)

// Parser holds the two-token lookahead window over a Lexer.
type Parser struct {
	lx   *lexer.Lexer
	src  string
	curr lexer.Token
	next lexer.Token
}

func newParser(src string) (*Parser, error) {
	p := &Parser{lx: lexer.New(src), src: src}
	var err error
	if p.curr, err = p.lx.Next(); err != nil {
		return nil, err
	}
	if p.next, err = p.lx.Next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.curr = p.next
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

// Parse parses src into an AST. It returns a *diagnostics.Error of Kind
// Syntax on any malformed input.
func Parse(src string) (ast.Node, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	node, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.curr.Kind != lexer.EOF {
		return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "unexpected token %q", p.curr.Lexeme)
	}
	return node, nil
}

func (p *Parser) unexpectedEOF(openOffset int, want string) error {
	return diagnostics.NewSyntax(openOffset, p.src, "unexpected end of input, expected %s", want)
}

// parseTernary: cond ? then : else, right-associative, lowest precedence.
func (p *Parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.curr.Is(lexer.Punctuator, "?") {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if !p.curr.Is(lexer.Punctuator, ":") {
		return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ':' in ternary expression")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryOp{Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

func (p *Parser) parseOr() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"||"}, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"&&"}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"==", "!="}, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"<", "<=", ">", ">="}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	return p.parseLeftAssocBinary([]string{"*", "/", "%"}, p.parseUnary)
}

// parseLeftAssocBinary folds a chain of same-precedence left-associative
// binary operators into a left-leaning BinaryOp tree; next parses the
// next-higher-precedence level.
func (p *Parser) parseLeftAssocBinary(ops []string, next func() (ast.Node, error)) (ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, matched := p.matchOperator(ops)
		if !matched {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) matchOperator(ops []string) (string, bool) {
	if p.curr.Kind != lexer.Operator {
		return "", false
	}
	for _, op := range ops {
		if p.curr.Lexeme == op {
			return op, true
		}
	}
	return "", false
}

// parseUnary: ! and - are right-associative prefix operators that nest
// (!!a, --a). A '-' directly before a numeric literal still produces
// UnaryOp("-", Literal(n)) rather than folding the sign into the literal
// at parse time — the evaluator folds it trivially, per spec.md §4.4.
func (p *Parser) parseUnary() (ast.Node, error) {
	if p.curr.Kind == lexer.Operator && (p.curr.Lexeme == "!" || p.curr.Lexeme == "-") {
		op := p.curr.Lexeme
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix applies member access, index access, and call chains
// repeatedly to a primary expression: a().b[c](d).e is parsed left to
// right as each postfix operator is encountered.
func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.curr.Is(lexer.Punctuator, "."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.curr.Kind != lexer.Identifier {
				return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected field name after '.'")
			}
			field := p.curr.Lexeme
			if err := p.advance(); err != nil {
				return nil, err
			}
			node = &ast.MemberAccess{Object: node, Field: field}

		case p.curr.Is(lexer.Punctuator, "["):
			openOffset := p.curr.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			index, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if p.curr.Kind == lexer.EOF {
				return nil, p.unexpectedEOF(openOffset, "']'")
			}
			if !p.curr.Is(lexer.Punctuator, "]") {
				return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ']'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			node = &ast.IndexAccess{Object: node, Index: index}

		case p.curr.Is(lexer.Punctuator, "("):
			openOffset := p.curr.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			args, err := p.parseExprList(openOffset, ")")
			if err != nil {
				return nil, err
			}
			node = &ast.FunctionCall{Callee: node, Args: args}

		default:
			return node, nil
		}
	}
}

// parseExprList parses a comma-separated list of expressions up to and
// including the closing punctuator (")" or "]"), rejecting trailing
// commas and reporting unterminated input at the opening token's offset.
func (p *Parser) parseExprList(openOffset int, close string) ([]ast.Node, error) {
	var elems []ast.Node
	if p.curr.Is(lexer.Punctuator, close) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return elems, nil
	}
	for {
		if p.curr.Kind == lexer.EOF {
			return nil, p.unexpectedEOF(openOffset, "'"+close+"'")
		}
		elem, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		if p.curr.Is(lexer.Punctuator, ",") {
			commaOffset := p.curr.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.curr.Is(lexer.Punctuator, close) {
				return nil, diagnostics.NewSyntax(commaOffset, p.src, "trailing comma not allowed")
			}
			continue
		}
		if p.curr.Kind == lexer.EOF {
			return nil, p.unexpectedEOF(openOffset, "'"+close+"'")
		}
		if !p.curr.Is(lexer.Punctuator, close) {
			return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ',' or '%s'", close)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return elems, nil
	}
}

// parseMapEntries parses a comma-separated "key: value" list up to and
// including the closing '}', with the same trailing-comma and
// unterminated-input rules as parseExprList.
func (p *Parser) parseMapEntries(openOffset int) ([]ast.MapEntry, error) {
	var entries []ast.MapEntry
	if p.curr.Is(lexer.Punctuator, "}") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return entries, nil
	}
	for {
		if p.curr.Kind == lexer.EOF {
			return nil, p.unexpectedEOF(openOffset, "'}'")
		}
		key, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if !p.curr.Is(lexer.Punctuator, ":") {
			return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ':' in map literal")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: val})

		if p.curr.Is(lexer.Punctuator, ",") {
			commaOffset := p.curr.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.curr.Is(lexer.Punctuator, "}") {
				return nil, diagnostics.NewSyntax(commaOffset, p.src, "trailing comma not allowed")
			}
			continue
		}
		if p.curr.Kind == lexer.EOF {
			return nil, p.unexpectedEOF(openOffset, "'}'")
		}
		if !p.curr.Is(lexer.Punctuator, "}") {
			return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ',' or '}'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return entries, nil
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.curr
	switch tok.Kind {
	case lexer.Integer:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, diagnostics.NewSyntax(tok.Offset, p.src, "invalid integer literal %q", tok.Lexeme)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Int(n), TypeTag: "int"}, nil

	case lexer.Float:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, diagnostics.NewSyntax(tok.Offset, p.src, "invalid float literal %q", tok.Lexeme)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Double(f), TypeTag: "double"}, nil

	case lexer.String:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.String(tok.Lexeme), TypeTag: "string"}, nil

	case lexer.Boolean:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Bool(tok.Lexeme == "true"), TypeTag: "bool"}, nil

	case lexer.Null:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value.Null(), TypeTag: "null"}, nil

	case lexer.Identifier:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: tok.Lexeme}, nil

	case lexer.Punctuator:
		switch tok.Lexeme {
		case "(":
			openOffset := tok.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if p.curr.Kind == lexer.EOF {
				return nil, p.unexpectedEOF(openOffset, "')'")
			}
			if !p.curr.Is(lexer.Punctuator, ")") {
				return nil, diagnostics.NewSyntax(p.curr.Offset, p.src, "expected ')'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return inner, nil

		case "[":
			openOffset := tok.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			elems, err := p.parseExprList(openOffset, "]")
			if err != nil {
				return nil, err
			}
			return &ast.ListExpr{Elements: elems}, nil

		case "{":
			openOffset := tok.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			entries, err := p.parseMapEntries(openOffset)
			if err != nil {
				return nil, err
			}
			return &ast.MapExpr{Entries: entries}, nil
		}
	}

	if tok.Kind == lexer.EOF {
		return nil, diagnostics.NewSyntax(tok.Offset, p.src, "unexpected end of input")
	}
	return nil, diagnostics.NewSyntax(tok.Offset, p.src, "unexpected token %q", tok.Lexeme)
}
