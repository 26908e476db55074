package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yot-lang/yotc/internal/lexer"
)

func TestSprint(t *testing.T) {
	var s lexer.Span

	body := NewBlock([]Stmt{
		NewVarDeclStmt(NewIdent("x", s), NewIntLit(1, s), s),
		NewReturnStmt(
			NewBinaryExpr(lexer.PLUS,
				NewIdent("x", s),
				NewUnaryExpr(lexer.MINUS, NewIntLit(2, s), s),
				s),
			s),
	}, s)
	prog := NewProgram([]*FunctionDecl{
		NewFunctionDecl(NewIdent("f", s), []*Ident{NewIdent("a", s)}, false, body, s),
		NewFunctionDecl(NewIdent("put", s), []*Ident{NewIdent("c", s)}, true, nil, s),
	}, s)

	want := `Program
  Function f[a]
    Block
      VarDecl x
        IntLit 1
      Return
        Binary +
          Ident x
          Unary -
            IntLit 2
  ExternFunction put[c]
`
	require.Equal(t, want, Sprint(prog))
}
