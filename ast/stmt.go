package ast

import (
	"tree_script/token"
)

type Stmt interface {
	Accept(StmtVisitor)
}

type StmtVisitor interface {
	VisitBlockStmt(s Block)
	VisitExpressionStmt(s Expression)
	VisitPrintStmt(s Print)
	VisitBreakStmt(s Break)
	VisitContinueStmt(s Continue)
	VisitReturnStmt(s Return)
	VisitIfStmt(s If)
	VisitWhileStmt(s While)
	VisitLetStmt(s Let)
	VisitFunctionStmt(s *Function)
	VisitClassStmt(s Class)
}

type Block struct {
	Statements []Stmt
}

type Expression struct {
	Expression Expr
}

type Print struct {
	Expression Expr
}

type Break struct {
	Keyword token.Token
}

type Continue struct {
	Keyword token.Token
}

type Return struct {
	Keyword token.Token
	Value   Expr // Can be nil, a bare return yields null.
}

type If struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // Can be nil
}

type While struct {
	Condition Expr
	Body      Stmt
	// A 'for' loop is lowered at parse time into:
	//     { initializer; while(condition, update_expr) body_stmt }
	// The increment lives in 'Update' rather than at the end of the body so
	// that a 'continue' statement still runs it at the end of the iteration.
	// Nil for a plain 'while'.
	Update Expr
}

type Let struct {
	Name        token.Token
	Initializer Expr
}

type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

type Class struct {
	Name       token.Token
	Superclass *Variable // Can be nil
	// Method declarations are shared by pointer with the function values
	// created from them at evaluation time.
	Methods map[string]*Function
}

// Implement the Stmt interface for each statement type we have.
func (s Block) Accept(v StmtVisitor)      { v.VisitBlockStmt(s) }
func (s Expression) Accept(v StmtVisitor) { v.VisitExpressionStmt(s) }
func (s Print) Accept(v StmtVisitor)      { v.VisitPrintStmt(s) }
func (s Break) Accept(v StmtVisitor)      { v.VisitBreakStmt(s) }
func (s Continue) Accept(v StmtVisitor)   { v.VisitContinueStmt(s) }
func (s Return) Accept(v StmtVisitor)     { v.VisitReturnStmt(s) }
func (s If) Accept(v StmtVisitor)         { v.VisitIfStmt(s) }
func (s While) Accept(v StmtVisitor)      { v.VisitWhileStmt(s) }
func (s Let) Accept(v StmtVisitor)        { v.VisitLetStmt(s) }
func (s *Function) Accept(v StmtVisitor)  { v.VisitFunctionStmt(s) }
func (s Class) Accept(v StmtVisitor)      { v.VisitClassStmt(s) }

// Makes a block from a list of statements, nil statements are skipped.
func MakeBlock(statements ...Stmt) Block {
	stmts := make([]Stmt, 0, len(statements))
	for _, s := range statements {
		if s != nil {
			stmts = append(stmts, s)
		}
	}

	return Block{Statements: stmts}
}
