package ast

import "github.com/yot-lang/yotc/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program represents a parsed compilation unit: an ordered sequence of
// function declarations. Order matters for diagnostics only; forward
// references between functions are legal.
type Program struct {
	Functions []*FunctionDecl
	span      lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(functions []*FunctionDecl, span lexer.Span) *Program {
	return &Program{Functions: functions, span: span}
}

// FunctionDecl represents a function declaration. Extern functions carry
// no body; defined functions always carry exactly one body block. The
// `-> expr;` shorthand is desugared by the parser into a block holding a
// single return statement, so both forms are observably equivalent.
type FunctionDecl struct {
	Name   *Ident
	Params []*Ident
	Extern bool
	Body   *Block
	span   lexer.Span
}

// Span returns the declaration span.
func (d *FunctionDecl) Span() lexer.Span { return d.span }

// NewFunctionDecl constructs a function declaration node.
func NewFunctionDecl(name *Ident, params []*Ident, extern bool, body *Block, span lexer.Span) *FunctionDecl {
	return &FunctionDecl{
		Name:   name,
		Params: params,
		Extern: extern,
		Body:   body,
		span:   span,
	}
}

// Arity returns the number of declared parameters.
func (d *FunctionDecl) Arity() int { return len(d.Params) }

// Block represents an ordered sequence of statements in braces.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

func (*Block) stmtNode() {}

// VarDeclStmt represents `@name;` or `@name = expr;`. A declaration
// without an initializer allocates storage whose contents are
// unspecified.
type VarDeclStmt struct {
	Name  *Ident
	Value Expr // nil when no initializer is present
	span  lexer.Span
}

// Span returns the statement span.
func (s *VarDeclStmt) Span() lexer.Span { return s.span }

// NewVarDeclStmt constructs a variable declaration statement.
func NewVarDeclStmt(name *Ident, value Expr, span lexer.Span) *VarDeclStmt {
	return &VarDeclStmt{Name: name, Value: value, span: span}
}

func (*VarDeclStmt) stmtNode() {}

// ReturnStmt represents `-> expr;`.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt represents an expression evaluated for effect: `expr;`.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

func (*ExprStmt) stmtNode() {}

// NoOpStmt represents a bare `;`.
type NoOpStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *NoOpStmt) Span() lexer.Span { return s.span }

// NewNoOpStmt constructs a no-op statement.
func NewNoOpStmt(span lexer.Span) *NoOpStmt {
	return &NoOpStmt{span: span}
}

func (*NoOpStmt) stmtNode() {}

// Ident represents an identifier reference or binding name.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (e *Ident) Span() lexer.Span { return e.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (*Ident) exprNode() {}

// IntLit represents a 32-bit signed integer literal.
type IntLit struct {
	Value int32
	span  lexer.Span
}

// Span returns the literal span.
func (e *IntLit) Span() lexer.Span { return e.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(value int32, span lexer.Span) *IntLit {
	return &IntLit{Value: value, span: span}
}

func (*IntLit) exprNode() {}

// UnaryExpr represents a prefix operator applied to an operand.
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op lexer.TokenType, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr represents a binary operator with two operands. Assignment
// is modeled as a binary expression whose left side must resolve to an
// identifier; that constraint is enforced during code generation.
type BinaryExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

func (*BinaryExpr) exprNode() {}

// CallExpr represents a call to a named function.
type CallExpr struct {
	Name *Ident
	Args []Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(name *Ident, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Name: name, Args: args, span: span}
}

func (*CallExpr) exprNode() {}
