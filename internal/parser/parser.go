package parser

import (
	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Option configures a Parser.
type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the
// provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Binding powers, lowest to highest. Assignment is right-associative;
// everything else is left-associative.
const (
	precedenceLowest = iota
	precedenceAssign
	precedenceEquality
	precedenceComparison
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedenceCall
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   precedenceAssign,
	lexer.EQ:       precedenceEquality,
	lexer.NOT_EQ:   precedenceEquality,
	lexer.LT:       precedenceComparison,
	lexer.LE:       precedenceComparison,
	lexer.GT:       precedenceComparison,
	lexer.GE:       precedenceComparison,
	lexer.PLUS:     precedenceSum,
	lexer.MINUS:    precedenceSum,
	lexer.ASTERISK: precedenceProduct,
	lexer.SLASH:    precedenceProduct,
	lexer.LPAREN:   precedenceCall,
}

// Parser implements a Pratt-style recursive descent parser for yot.
// curTok always reflects the token currently under examination and
// peekTok mirrors the next token pulled from the lexer; the pair forms
// the parser's sole lookahead window and is only mutated via nextToken.
// The grammar has no recovery points, so the first recorded error aborts
// the parse (fail-fast).
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []error

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.New(input),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	p.registerInfix(lexer.ASSIGN, p.parseAssignExpr)
	p.registerInfix(lexer.PLUS, p.parseInfixExpr)
	p.registerInfix(lexer.MINUS, p.parseInfixExpr)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpr)
	p.registerInfix(lexer.SLASH, p.parseInfixExpr)
	p.registerInfix(lexer.EQ, p.parseInfixExpr)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(lexer.LT, p.parseInfixExpr)
	p.registerInfix(lexer.LE, p.parseInfixExpr)
	p.registerInfix(lexer.GT, p.parseInfixExpr)
	p.registerInfix(lexer.GE, p.parseInfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(typ lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[typ] = fn
}

func (p *Parser) registerInfix(typ lexer.TokenType, fn infixParseFn) {
	p.infixFns[typ] = fn
}

// nextToken advances the lookahead window. An ILLEGAL token surfaces the
// lexer's recorded error immediately.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()

	if p.peekTok.Type == lexer.ILLEGAL && len(p.lx.Errors) > 0 {
		p.record(p.lx.Errors[len(p.lx.Errors)-1])
	}
}

func (p *Parser) curIs(typ lexer.TokenType) bool {
	return p.curTok.Type == typ
}

func (p *Parser) peekIs(typ lexer.TokenType) bool {
	return p.peekTok.Type == typ
}

// expectPeek advances when the next token matches, and records an error
// otherwise.
func (p *Parser) expectPeek(typ lexer.TokenType) bool {
	if p.peekIs(typ) {
		p.nextToken()
		return true
	}
	p.reportExpected("`"+string(typ)+"`", p.peekTok)
	return false
}

func (p *Parser) peekPrecedence() int {
	return precedences[p.peekTok.Type]
}

// Errors returns all recorded errors, in order.
func (p *Parser) Errors() []error {
	return p.errors
}

// ParseProgram parses a full compilation unit. The returned error, if
// any, is the first one encountered; the AST is nil in that case.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.curTok.Span

	var functions []*ast.FunctionDecl
	for !p.curIs(lexer.EOF) && !p.failed() {
		fn := p.parseFunctionDecl()
		if fn == nil {
			break
		}
		functions = append(functions, fn)
		p.nextToken()
	}

	if p.failed() {
		return nil, p.errors[0]
	}

	span := start
	span.End = p.curTok.Span.End
	return ast.NewProgram(functions, span), nil
}
