package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree to w. It backs the CLI's
// --print-ast flag and is handy in tests; it is not a formatter.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.node(node, 0)
}

// Sprint returns the indented dump of the tree as a string.
func Sprint(node Node) string {
	var b strings.Builder
	Fprint(&b, node)
	return b.String()
}

type printer struct {
	w io.Writer
}

func (p *printer) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) node(node Node, depth int) {
	switch n := node.(type) {
	case *Program:
		p.line(depth, "Program")
		for _, fn := range n.Functions {
			p.node(fn, depth+1)
		}

	case *FunctionDecl:
		kind := "Function"
		if n.Extern {
			kind = "ExternFunction"
		}
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			params[i] = param.Name
		}
		p.line(depth, "%s %s[%s]", kind, n.Name.Name, strings.Join(params, ", "))
		if n.Body != nil {
			p.node(n.Body, depth+1)
		}

	case *Block:
		p.line(depth, "Block")
		for _, stmt := range n.Stmts {
			p.node(stmt, depth+1)
		}

	case *VarDeclStmt:
		p.line(depth, "VarDecl %s", n.Name.Name)
		if n.Value != nil {
			p.node(n.Value, depth+1)
		}

	case *ReturnStmt:
		p.line(depth, "Return")
		p.node(n.Value, depth+1)

	case *ExprStmt:
		p.line(depth, "ExprStmt")
		p.node(n.Expr, depth+1)

	case *NoOpStmt:
		p.line(depth, "NoOp")

	case *Ident:
		p.line(depth, "Ident %s", n.Name)

	case *IntLit:
		p.line(depth, "IntLit %d", n.Value)

	case *UnaryExpr:
		p.line(depth, "Unary %s", n.Op)
		p.node(n.Operand, depth+1)

	case *BinaryExpr:
		p.line(depth, "Binary %s", n.Op)
		p.node(n.Left, depth+1)
		p.node(n.Right, depth+1)

	case *CallExpr:
		p.line(depth, "Call %s", n.Name.Name)
		for _, arg := range n.Args {
			p.node(arg, depth+1)
		}

	default:
		p.line(depth, "%T", n)
	}
}
