package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yot-lang/yotc/internal/ast"
	"github.com/yot-lang/yotc/internal/diag"
	"github.com/yot-lang/yotc/internal/lexer"
)

func parseOne(t *testing.T, input string) *ast.FunctionDecl {
	t.Helper()
	prog, err := New(input).ParseProgram()
	require.NoError(t, err)
	require.Len(t, prog.Functions, 1)
	return prog.Functions[0]
}

func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	_, err := New(input).ParseProgram()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	return pe
}

func TestParseShorthandFunction(t *testing.T) {
	fn := parseOne(t, `@sum[a,b]->a+b;`)

	assert.Equal(t, "sum", fn.Name.Name)
	assert.False(t, fn.Extern)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)

	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)

	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.PLUS, bin.Op)
}

func TestParseShorthandEquivalentToBlock(t *testing.T) {
	short := parseOne(t, `@f[a]->a;`)
	full := parseOne(t, `@f[a]{->a;}`)

	require.Len(t, short.Body.Stmts, 1)
	require.Len(t, full.Body.Stmts, 1)
	assert.IsType(t, &ast.ReturnStmt{}, short.Body.Stmts[0])
	assert.IsType(t, &ast.ReturnStmt{}, full.Body.Stmts[0])
}

func TestParseExternFunction(t *testing.T) {
	fn := parseOne(t, `@!put_char[c];`)

	assert.True(t, fn.Extern)
	assert.Equal(t, "put_char", fn.Name.Name)
	assert.Equal(t, 1, fn.Arity())
	assert.Nil(t, fn.Body)
}

func TestParseBlockStatements(t *testing.T) {
	fn := parseOne(t, `
@main[] {
    @x = 1;      // initialized
    @y;          // unspecified contents
    y = x + 2;
    x;
    ;
    -> y;
}`)

	stmts := fn.Body.Stmts
	require.Len(t, stmts, 6)
	assert.IsType(t, &ast.VarDeclStmt{}, stmts[0])
	assert.IsType(t, &ast.VarDeclStmt{}, stmts[1])
	assert.IsType(t, &ast.ExprStmt{}, stmts[2])
	assert.IsType(t, &ast.ExprStmt{}, stmts[3])
	assert.IsType(t, &ast.NoOpStmt{}, stmts[4])
	assert.IsType(t, &ast.ReturnStmt{}, stmts[5])

	decl := stmts[0].(*ast.VarDeclStmt)
	assert.Equal(t, "x", decl.Name.Name)
	require.NotNil(t, decl.Value)

	bare := stmts[1].(*ast.VarDeclStmt)
	assert.Nil(t, bare.Value)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`@f[]->2+3*4;`, "Binary +\n  IntLit 2\n  Binary *\n    IntLit 3\n    IntLit 4\n"},
		{`@f[]->2*3+4;`, "Binary +\n  Binary *\n    IntLit 2\n    IntLit 3\n  IntLit 4\n"},
		{`@f[]->(2+3)*4;`, "Binary *\n  Binary +\n    IntLit 2\n    IntLit 3\n  IntLit 4\n"},
		{`@f[]->1<2==3<4;`, "Binary ==\n  Binary <\n    IntLit 1\n    IntLit 2\n  Binary <\n    IntLit 3\n    IntLit 4\n"},
		{`@f[]->1+2<3;`, "Binary <\n  Binary +\n    IntLit 1\n    IntLit 2\n  IntLit 3\n"},
		{`@f[]->-(5 - -2);`, "Unary -\n  Binary -\n    IntLit 5\n    Unary -\n      IntLit 2\n"},
		{`@f[]->1-2-3;`, "Binary -\n  Binary -\n    IntLit 1\n    IntLit 2\n  IntLit 3\n"},
		{`@f[a]->-a*2;`, "Binary *\n  Unary -\n    Ident a\n  IntLit 2\n"},
	}

	for _, tt := range tests {
		fn := parseOne(t, tt.input)
		ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
		assert.Equalf(t, tt.want, ast.Sprint(ret.Value), "input %s", tt.input)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	fn := parseOne(t, `@f[a,b]{a = b = 3;}`)

	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	outer := stmt.Expr.(*ast.BinaryExpr)
	require.Equal(t, lexer.ASSIGN, outer.Op)
	assert.Equal(t, "a", outer.Left.(*ast.Ident).Name)

	inner := outer.Right.(*ast.BinaryExpr)
	require.Equal(t, lexer.ASSIGN, inner.Op)
	assert.Equal(t, "b", inner.Left.(*ast.Ident).Name)
}

func TestParseCallExpr(t *testing.T) {
	fn := parseOne(t, `@f[]->sum(1, 2+3, g());`)

	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	call := ret.Value.(*ast.CallExpr)
	assert.Equal(t, "sum", call.Name.Name)
	require.Len(t, call.Args, 3)
	assert.IsType(t, &ast.IntLit{}, call.Args[0])
	assert.IsType(t, &ast.BinaryExpr{}, call.Args[1])

	nested := call.Args[2].(*ast.CallExpr)
	assert.Equal(t, "g", nested.Name.Name)
	assert.Empty(t, nested.Args)
}

func TestParseMultipleFunctions(t *testing.T) {
	prog, err := New(`
@!print_num[n];
@double[x]->x*2;
@main[]{->double(21);}
`).ParseProgram()
	require.NoError(t, err)
	require.Len(t, prog.Functions, 3)
	assert.True(t, prog.Functions[0].Extern)
	assert.Equal(t, "double", prog.Functions[1].Name.Name)
	assert.Equal(t, "main", prog.Functions[2].Name.Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     diag.Code
		contains string
	}{
		{"extern with block", `@!f[]{->1;}`, diag.CodeExternWithBody, "must not have a body"},
		{"extern with shorthand", `@!f[]->1;`, diag.CodeExternWithBody, "must not have a body"},
		{"missing body", `@f[];`, diag.CodeMissingBody, "must have a block or `->` body"},
		{"top level statement", `->1;`, diag.CodeParseUnexpectedToken, "only top-level functions"},
		{"unmatched bracket", `@f[a b]->a;`, diag.CodeParseUnexpectedToken, "expected `,` or `]`"},
		{"unmatched brace", `@f[]{->1;`, diag.CodeParseUnexpectedToken, "expected `}`"},
		{"unmatched paren", `@f[]->(1+2;`, diag.CodeParseUnexpectedToken, "expected `)`"},
		{"missing semicolon", `@f[]->1`, diag.CodeParseUnexpectedToken, "expected `;`"},
		{"missing expression", `@f[]->;`, diag.CodeParseUnexpectedToken, "expected an expression"},
		{"duplicate param", `@f[a,a]->a;`, diag.CodeParseDuplicateParam, "duplicate parameter `a`"},
		{"int overflow", `@f[]->2147483648;`, diag.CodeParseIntOutOfRange, "does not fit in 32 bits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.input)
			assert.Equal(t, tt.code, pe.Code)
			assert.Contains(t, pe.Message, tt.contains)
		})
	}
}

func TestParseDiscardParamsAllowed(t *testing.T) {
	fn := parseOne(t, `@f[_,_,x]->x;`)
	assert.Equal(t, 3, fn.Arity())
}

func TestParseSurfacesLexError(t *testing.T) {
	_, err := New(`@f[]->1 $ 2;`).ParseProgram()
	require.Error(t, err)

	var le lexer.LexError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, '$', le.Rune)
}

func TestParseErrorSpan(t *testing.T) {
	_, err := New("@f[] {\n    -> 1\n}", WithFilename("prog.yot")).ParseProgram()
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "prog.yot", pe.Span.Filename)
	assert.Equal(t, 3, pe.Span.Line)

	d := pe.ToDiagnostic()
	assert.Equal(t, diag.StageParser, d.Stage)
	assert.Equal(t, "prog.yot", d.Span.Filename)
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := New("").ParseProgram()
	require.NoError(t, err)
	assert.Empty(t, prog.Functions)
}
