package lexer

import "fmt"

// TokenType represents the type of a token.
type TokenType string

// Span represents the source location of a token.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset of the first rune
	End      int    // exclusive end offset
}

func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid reports whether the span carries real location information.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // exact text from source
	Span    Span
}

// Token type constants. yot has no keywords: every bare word is an
// identifier, and declarations are introduced by sigils instead.
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT TokenType = "IDENT" // sum, x, _tmp, ...
	INT   TokenType = "INT"   // decimal integer literal

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	GT     TokenType = ">"
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Sigils
	AT     TokenType = "@"  // declaration
	ATBANG TokenType = "@!" // extern declaration
	ARROW  TokenType = "->" // return
)
