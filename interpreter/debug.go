package interpreter

import (
	"tree_script/ast"
	"tree_script/value"
)

// ExprPrinter renders an expression tree as a parenthesized prefix form,
// like (== 1 (group (+ 2 3))). Used for parser debugging and tests.
type ExprPrinter struct{}

func (p ExprPrinter) Print(e ast.Expr) string {
	return e.Accept(p).(string)
}

func (p ExprPrinter) VisitAssignExpr(e ast.Assign) any {
	return parens("=", e.Target.Name.Lexeme, p.Print(e.Expr))
}

func (p ExprPrinter) VisitLogicalExpr(e ast.Logical) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitBinaryExpr(e ast.Binary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitUnaryExpr(e ast.Unary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Right))
}

func (p ExprPrinter) VisitCallExpr(e ast.Call) any {
	// Put initial content before args
	args := []string{"()", p.Print(e.Callee) + ":"}

	for _, arg := range e.Arguments {
		args = append(args, p.Print(arg))
	}

	return parens(args...)
}

func (p ExprPrinter) VisitGetExpr(e ast.Get) any {
	return parens("get", p.Print(e.Object), e.Name.Lexeme)
}

func (p ExprPrinter) VisitSetExpr(e ast.Set) any {
	return parens("set", p.Print(e.Object), e.Name.Lexeme, p.Print(e.Value))
}

func (p ExprPrinter) VisitSuperExpr(e ast.Super) any {
	return "super." + e.Method.Lexeme
}

func (p ExprPrinter) VisitSelfExpr(e ast.Self) any {
	return "self"
}

func (p ExprPrinter) VisitGroupingExpr(e ast.Grouping) any {
	return parens("group", p.Print(e.Expr))
}

func (p ExprPrinter) VisitLiteralExpr(e ast.Literal) any {
	return value.AsString(e.Value)
}

func (p ExprPrinter) VisitVariableExpr(e ast.Variable) any {
	return e.Name.Lexeme
}

func parens(frags ...string) string {
	ret := "("

	for i, frag := range frags {
		ret += frag

		if i != len(frags)-1 {
			ret += " "
		} else {
			ret += ")"
		}
	}

	return ret
}
