package interpreter

import (
	"testing"
	"tree_script/ast"
	"tree_script/parser"
)

func printExpr(t *testing.T, source string) string {
	t.Helper()

	p := parser.MakeParser(source)
	stmts, errs := p.Parse()
	if errs != nil {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}

	expr_stmt, ok := stmts[0].(ast.Expression)
	if !ok {
		t.Fatalf("want an expression statement, got %T", stmts[0])
	}
	return ExprPrinter{}.Print(expr_stmt.Expression)
}

func TestExprPrinter(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2;", "(+ 1 2)"},
		{"1 == (2 + 3);", "(== 1 (group (+ 2 3)))"},
		{"-x * 3;", "(* (- x) 3)"},
		{"!true;", "(! true)"},
		{"a = 1 or 2;", "(= a (or 1 2))"},
		{"f(1, 2);", "(() f: 1 2)"},
		{"obj.field;", "(get obj field)"},
		{"obj.field = 1;", "(set obj field 1)"},
		{`"str" + null;`, "(+ str null)"},
	}

	for _, c := range cases {
		if got := printExpr(t, c.source); got != c.want {
			t.Errorf("source %q: want %q, got %q", c.source, c.want, got)
		}
	}
}
