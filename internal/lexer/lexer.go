package lexer

import (
	"strconv"
	"unicode"

	"github.com/yot-lang/yotc/internal/diag"
)

// LexError records an unrecognized character and where it appeared.
type LexError struct {
	Rune rune
	Span Span
}

func (e LexError) Error() string {
	return "illegal character " + strconv.Quote(string(e.Rune)) + " at offset " + strconv.Itoa(e.Span.Start)
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     diag.CodeLexIllegalRune,
		Message:  "illegal character " + strconv.Quote(string(e.Rune)),
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer turns source text into a lazy token stream. Tokens are produced
// one at a time through NextToken; re-lexing requires a fresh Lexer.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexError
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // becomes 1 after the first read()
	}
	l.read()
	return l
}

// SetFilename attributes all emitted spans to the provided filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next rune, tracking line/column.
func (l *Lexer) read() {
	l.pos++
	prev := l.pos - 1

	if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// peek returns the next rune without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) spanFrom(startLine, startColumn, startPos int) Span {
	return Span{
		Filename: l.filename,
		Line:     startLine,
		Column:   startColumn,
		Start:    startPos,
		End:      l.pos,
	}
}

func (l *Lexer) makeToken(typ TokenType, startLine, startColumn, startPos int, literal string) Token {
	return Token{
		Type:    typ,
		Literal: literal,
		Span:    l.spanFrom(startLine, startColumn, startPos),
	}
}

// single emits a one-rune token.
func (l *Lexer) single(typ TokenType) Token {
	line, col, pos := l.line, l.column, l.pos
	lit := string(l.ch)
	l.read()
	return l.makeToken(typ, line, col, pos, lit)
}

// double emits a two-rune token, consuming both runes.
func (l *Lexer) double(typ TokenType) Token {
	line, col, pos := l.line, l.column, l.pos
	lit := string(l.ch) + string(l.peek())
	l.read()
	l.read()
	return l.makeToken(typ, line, col, pos, lit)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment consumes a // comment up to (not including) the newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.read()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// illegal records a LexError for the current rune and emits an ILLEGAL token.
func (l *Lexer) illegal() Token {
	tok := l.single(ILLEGAL)
	l.Errors = append(l.Errors, LexError{
		Rune: []rune(tok.Literal)[0],
		Span: tok.Span,
	})
	return tok
}

// NextToken returns the next token from the input. Multi-rune tokens are
// matched greedily: `==` before `=`, `<=` before `<`, `@!` before `@`,
// `->` before `-`.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		switch l.ch {
		case 0:
			line, col := l.line, l.column
			if col == 0 {
				col = 1
			}
			return l.makeToken(EOF, line, col, l.pos, "")

		case '=':
			if l.peek() == '=' {
				return l.double(EQ)
			}
			return l.single(ASSIGN)

		case '+':
			return l.single(PLUS)

		case '-':
			if l.peek() == '>' {
				return l.double(ARROW)
			}
			return l.single(MINUS)

		case '*':
			return l.single(ASTERISK)

		case '/':
			if l.peek() == '/' {
				l.skipLineComment()
				continue
			}
			return l.single(SLASH)

		case '!':
			if l.peek() == '=' {
				return l.double(NOT_EQ)
			}
			// A bare `!` is only meaningful inside `@!` or `!=`.
			return l.illegal()

		case '<':
			if l.peek() == '=' {
				return l.double(LE)
			}
			return l.single(LT)

		case '>':
			if l.peek() == '=' {
				return l.double(GE)
			}
			return l.single(GT)

		case '@':
			if l.peek() == '!' {
				return l.double(ATBANG)
			}
			return l.single(AT)

		case ';':
			return l.single(SEMICOLON)
		case ',':
			return l.single(COMMA)
		case '(':
			return l.single(LPAREN)
		case ')':
			return l.single(RPAREN)
		case '{':
			return l.single(LBRACE)
		case '}':
			return l.single(RBRACE)
		case '[':
			return l.single(LBRACKET)
		case ']':
			return l.single(RBRACKET)

		default:
			if isLetter(l.ch) {
				line, col, pos := l.line, l.column, l.pos
				lit := l.readIdentifier()
				return l.makeToken(IDENT, line, col, pos, lit)
			}
			if isDigit(l.ch) {
				line, col, pos := l.line, l.column, l.pos
				lit := l.readNumber()
				return l.makeToken(INT, line, col, pos, lit)
			}
			return l.illegal()
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
