package lexer

import (
	"strings"

	"github.com/akashmaji946/go-cel/diagnostics"
)

// Lexer scans CEL source text byte by byte and emits Tokens. It mirrors
// the teacher's Lexer struct (Src/Current/Position/SrcLength fields,
// Advance/Peek helpers) but tracks a single byte Offset instead of
// Line/Column, since spec.md's diagnostics are offset-based, not
// line/column-based.
type Lexer struct {
	src     string
	pos     int
	current byte
	length  int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	lx := &Lexer{src: src, length: len(src)}
	if lx.length > 0 {
		lx.current = src[0]
	}
	return lx
}

func (lx *Lexer) peek() byte {
	if lx.pos+1 >= lx.length {
		return 0
	}
	return lx.src[lx.pos+1]
}

func (lx *Lexer) advance() {
	lx.pos++
	if lx.pos >= lx.length {
		lx.current = 0
		lx.pos = lx.length
		return
	}
	lx.current = lx.src[lx.pos]
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case lx.current == ' ' || lx.current == '\t' || lx.current == '\r' || lx.current == '\n':
			lx.advance()
		case lx.current == '/' && lx.peek() == '/':
			for lx.current != '\n' && lx.current != 0 {
				lx.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// Next scans and returns the next token. It returns a *diagnostics.Error
// (Kind Syntax) for any byte that does not begin a valid token, an
// unterminated string, an embedded newline in a string, or an unknown
// escape sequence.
func (lx *Lexer) Next() (Token, error) {
	lx.skipWhitespaceAndComments()

	offset := lx.pos

	switch c := lx.current; {
	case c == 0:
		return Token{Kind: EOF, Lexeme: "", Offset: offset}, nil

	case c == '"' || c == '\'':
		return lx.readString(c, offset)

	case isDigit(c):
		return lx.readNumber(offset)

	case isAlpha(c):
		return lx.readIdentifier(offset)

	default:
		return lx.readOperator(offset)
	}
}

func (lx *Lexer) readOperator(offset int) (Token, error) {
	two := func(second byte, lexeme string, kind Kind) (Token, bool) {
		if lx.peek() == second {
			lx.advance()
			lx.advance()
			return Token{Kind: kind, Lexeme: lexeme, Offset: offset}, true
		}
		return Token{}, false
	}

	switch lx.current {
	case '&':
		if tok, ok := two('&', "&&", Operator); ok {
			return tok, nil
		}
	case '|':
		if tok, ok := two('|', "||", Operator); ok {
			return tok, nil
		}
	case '=':
		if tok, ok := two('=', "==", Operator); ok {
			return tok, nil
		}
	case '!':
		if tok, ok := two('=', "!=", Operator); ok {
			return tok, nil
		}
		lx.advance()
		return Token{Kind: Operator, Lexeme: "!", Offset: offset}, nil
	case '<':
		if tok, ok := two('=', "<=", Operator); ok {
			return tok, nil
		}
		lx.advance()
		return Token{Kind: Operator, Lexeme: "<", Offset: offset}, nil
	case '>':
		if tok, ok := two('=', ">=", Operator); ok {
			return tok, nil
		}
		lx.advance()
		return Token{Kind: Operator, Lexeme: ">", Offset: offset}, nil
	case '+', '-', '*', '/', '%':
		lexeme := string(lx.current)
		lx.advance()
		return Token{Kind: Operator, Lexeme: lexeme, Offset: offset}, nil
	case '?', ':', '.', ',', '(', ')', '[', ']', '{', '}':
		lexeme := string(lx.current)
		lx.advance()
		return Token{Kind: Punctuator, Lexeme: lexeme, Offset: offset}, nil
	}

	return Token{}, diagnostics.NewSyntax(offset, lx.src, "unexpected character %q", rune(lx.current))
}

func (lx *Lexer) readIdentifier(offset int) (Token, error) {
	start := lx.pos
	for isAlnum(lx.current) {
		lx.advance()
	}
	lexeme := lx.src[start:lx.pos]
	switch lexeme {
	case "true", "false":
		return Token{Kind: Boolean, Lexeme: lexeme, Offset: offset}, nil
	case "null":
		return Token{Kind: Null, Lexeme: lexeme, Offset: offset}, nil
	default:
		return Token{Kind: Identifier, Lexeme: lexeme, Offset: offset}, nil
	}
}

func (lx *Lexer) readNumber(offset int) (Token, error) {
	start := lx.pos
	for isDigit(lx.current) {
		lx.advance()
	}

	isFloat := false
	if lx.current == '.' && isDigit(lx.peek()) {
		isFloat = true
		lx.advance()
		for isDigit(lx.current) {
			lx.advance()
		}
	}

	if lx.current == 'e' || lx.current == 'E' {
		save := lx.pos
		savedCurrent := lx.current
		lx.advance()
		if lx.current == '+' || lx.current == '-' {
			lx.advance()
		}
		if isDigit(lx.current) {
			isFloat = true
			for isDigit(lx.current) {
				lx.advance()
			}
		} else {
			// Not a valid exponent; rewind.
			lx.pos = save
			lx.current = savedCurrent
		}
	}

	lexeme := lx.src[start:lx.pos]
	if isFloat {
		return Token{Kind: Float, Lexeme: lexeme, Offset: offset}, nil
	}
	return Token{Kind: Integer, Lexeme: lexeme, Offset: offset}, nil
}

func (lx *Lexer) readString(quote byte, offset int) (Token, error) {
	lx.advance() // consume opening quote

	var b strings.Builder
	for {
		switch lx.current {
		case 0:
			return Token{}, diagnostics.NewSyntax(offset, lx.src, "unterminated string literal")
		case '\n':
			return Token{}, diagnostics.NewSyntax(lx.pos, lx.src, "newline in string literal")
		case quote:
			lx.advance()
			return Token{Kind: String, Lexeme: b.String(), Offset: offset}, nil
		case '\\':
			escOffset := lx.pos
			lx.advance()
			decoded, ok := decodeEscape(lx.current)
			if !ok {
				return Token{}, diagnostics.NewSyntax(escOffset, lx.src, "unknown escape sequence \\%c", lx.current)
			}
			b.WriteByte(decoded)
			lx.advance()
		default:
			b.WriteByte(lx.current)
			lx.advance()
		}
	}
}

func decodeEscape(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	default:
		return 0, false
	}
}
