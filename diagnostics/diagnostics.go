// Package diagnostics defines the error taxonomy shared by the lexer,
// parser, and evaluator: a closed set of four kinds, each rendering to a
// human-readable message, with syntax errors additionally carrying a
// source offset and a caret pointer into the original expression text.
package diagnostics

import (
	"fmt"
	"strings"
)

// Kind identifies which of the four CEL error categories a diagnostic
// belongs to. Callers distinguish kinds by inspecting this field rather
// than parsing the message string.
type Kind int

const (
	// Syntax marks a failure to parse the source text into a well-formed
	// AST. Syntax diagnostics carry a source offset and the original
	// expression for caret rendering.
	Syntax Kind = iota
	// Type marks a value of the wrong type reaching an operator or
	// built-in that cannot accept it.
	Type
	// Undefined marks a reference to an identifier, field, or map key
	// that does not resolve.
	Undefined
	// Other covers every evaluation failure that is neither a type
	// mismatch nor an undefined reference: division by zero, index out
	// of range, duplicate map keys, regex compile failure, and bad
	// coercion targets.
	Other
)

// String renders the kind's name, used in error messages and tests.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Type:
		return "Type"
	case Undefined:
		return "Undefined"
	case Other:
		return "Evaluation"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced by every component in this
// module. It implements the standard error interface; callers that need
// to branch on the failure category should type-assert to *Error and
// inspect Kind.
type Error struct {
	Kind Kind
	// Message is the human-readable description of the failure.
	// Message strings are informative only and must not be parsed by
	// callers — branch on Kind instead.
	Message string

	// Offset and Expression are populated only for Kind == Syntax. Offset
	// is the zero-based byte offset of the offending character; Expression
	// is the full source text the offset is relative to.
	Offset     int
	Expression string
	hasOffset  bool
}

// Error implements the error interface. Syntax errors render as three
// lines: the message, the original expression, and a caret line pointing
// at Offset. Every other kind renders as a single line.
func (e *Error) Error() string {
	if e.Kind == Syntax && e.hasOffset {
		return fmt.Sprintf("%s\n%s\n%s^", e.Message, e.Expression, strings.Repeat(" ", e.Offset))
	}
	return e.Message
}

// NewSyntax builds a Syntax diagnostic pointing at offset within
// expression. The message is formatted with fmt.Sprintf(format, args...).
func NewSyntax(offset int, expression string, format string, args ...any) *Error {
	return &Error{
		Kind:       Syntax,
		Message:    fmt.Sprintf(format, args...),
		Offset:     offset,
		Expression: expression,
		hasOffset:  true,
	}
}

// NewType builds a Type diagnostic.
func NewType(format string, args ...any) *Error {
	return &Error{Kind: Type, Message: fmt.Sprintf(format, args...)}
}

// NewUndefined builds an Undefined diagnostic.
func NewUndefined(format string, args ...any) *Error {
	return &Error{Kind: Undefined, Message: fmt.Sprintf(format, args...)}
}

// NewOther builds an Evaluation-other diagnostic (division by zero, index
// out of range, duplicate map key, regex compile failure, bad coercion
// target, recursion depth exceeded).
func NewOther(format string, args ...any) *Error {
	return &Error{Kind: Other, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a *Error of the given kind. It is the
// idiomatic way for a caller to branch on diagnostic category.
func Is(err error, kind Kind) bool {
	de, ok := err.(*Error)
	return ok && de.Kind == kind
}
