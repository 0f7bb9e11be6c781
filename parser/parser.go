package parser

import (
	"fmt"
	"tree_script/ast"
	"tree_script/diag"
	"tree_script/token"
)

const MAX_CALL_PARAMS = 255

type Parser struct {
	// Scanning information
	scn      Scanner
	previous token.Token
	current  token.Token

	// Current class type
	currentClass classKind
	// Current function type
	currentFunction functionKind
	// Current loop kind
	currentLoop loopKind

	// Errors collected while parsing, in source order.
	errs []*diag.Error
	// True while every error so far happened at the end of input, which
	// means the source is a well-formed prefix of a longer program.
	incomplete bool
}

type SyntaxError struct{}

func MakeParser(source string) Parser {
	return Parser{
		scn:      MakeScanner(source),
		previous: token.Token{},
		current:  token.Token{},
		// Parsing state info
		currentClass:    kindNoClass,
		currentFunction: kindNoFunction,
		currentLoop:     kindNoLoop,
	}
}

// Parse returns the program statements, or nil along with the collected
// diagnostics if any lex or parse error was found. A program that failed
// to parse is never partially evaluated.
func (p *Parser) Parse() ([]ast.Stmt, []*diag.Error) {
	// Prime the parser: take in first token.
	p.advance()

	stmts := make([]ast.Stmt, 0)
	for !p.check(token.END_OF_FILE) {
		func() {
			// Synchronize tokens if malformed syntax is detected.
			defer func() {
				if v := recover(); v != nil {
					if _, ok := v.(SyntaxError); !ok {
						panic(v)
					}
					p.synchronize()
				}
			}()

			stmts = append(stmts, p.declaration())
		}()
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return stmts, nil
}

// Reports whether the only reason parsing failed is that the input ended
// too early. Used by the REPL to ask for a continuation line.
func (p *Parser) IsIncomplete() bool {
	return len(p.errs) > 0 && p.incomplete
}

// Statement parsing methods
// --------------------------------------------------------
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FN):
		return p.function(kindFunction)
	case p.match(token.LET):
		return p.letDeclaration()

	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	// Check and set if superclass exists.
	superclass := (*ast.Variable)(nil)
	if p.match(token.LESS) {
		sname := p.consume(token.IDENTIFIER, "Expect superclass name.")

		if sname.Lexeme == name.Lexeme {
			p.error("A class cannot inherit from itself.")
			// Continue after the error as the syntax is well formed.
		} else {
			superclass = &ast.Variable{Name: sname}
		}
	}

	// Track if inside a class.
	old_class := p.currentClass
	p.currentClass = kindClass
	if superclass != nil {
		p.currentClass = kindSubclass
	}
	defer func() { p.currentClass = old_class }()

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	ret := ast.Class{
		Name:       name,
		Superclass: superclass,
		Methods:    map[string]*ast.Function{},
	}

	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		// Class constructor is named 'init'.
		kind := kindMethod
		if p.current.Lexeme == "init" {
			kind = kindInitializer
		}

		// If multiple methods have the same name then the last one is taken.
		method := p.function(kind)
		ret.Methods[method.Name.Lexeme] = method
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	return ret
}

// For functions, methods and initializers.
func (p *Parser) function(kind functionKind) *ast.Function {
	// Track if inside a function. A loop around the declaration does not
	// extend into the function body.
	old_func, old_loop := p.currentFunction, p.currentLoop
	p.currentFunction, p.currentLoop = kind, kindNoLoop
	defer func() { p.currentFunction, p.currentLoop = old_func, old_loop }()

	kind_str := kind.String()
	name := p.consume(token.IDENTIFIER, "Expect "+kind_str+" name.")

	// Parse parameters: '(' parameters? ')'
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind_str+" name.")
	params := make([]token.Token, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= MAX_CALL_PARAMS {
				p.error_at(p.current, fmt.Sprintf(
					"Can't have more than %v parameters.", MAX_CALL_PARAMS,
				))
			}
			// Continue even after the error as the syntax is well formed.

			param := p.consume(token.IDENTIFIER, "Expect parameter name.")
			params = append(params, param)

			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind_str+" body.")
	body := p.bareBlock()

	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) letDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect a variable name.")

	// A declaration with no initializer binds the name to null.
	init_value := ast.Expr(ast.Literal{Value: nil})

	if p.match(token.EQUAL) {
		init_value = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return ast.Let{Name: name, Initializer: init_value}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()

	case p.match(token.BREAK):
		return p.breakStatement()
	case p.match(token.CONTINUE):
		return p.continueStatement()
	case p.match(token.RETURN):
		return p.returnStatement()

	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()

	case p.match(token.LEFT_BRACE):
		return ast.MakeBlock(p.bareBlock()...)

	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")

	return ast.Print{Expression: expr}
}

func (p *Parser) breakStatement() ast.Stmt {
	kw := p.previous
	if p.currentLoop == kindNoLoop {
		p.error("Cannot use 'break' outside of a loop.")
	}
	p.consume(token.SEMICOLON, "Expect ';' after 'break'.")

	return ast.Break{Keyword: kw}
}

func (p *Parser) continueStatement() ast.Stmt {
	kw := p.previous
	if p.currentLoop == kindNoLoop {
		p.error("Cannot use 'continue' outside of a loop.")
	}
	p.consume(token.SEMICOLON, "Expect ';' after 'continue'.")

	return ast.Continue{Keyword: kw}
}

func (p *Parser) returnStatement() ast.Stmt {
	kw := p.previous
	value := ast.Expr(nil) // A return with no expression returns null.

	// Returning from outside any function is rejected here, before any
	// evaluation can happen.
	if p.currentFunction == kindNoFunction {
		p.error("Cannot return from top-level code.")
		// Continue after the error as the syntax is well formed.
	}

	if !p.check(token.SEMICOLON) {
		if p.currentFunction == kindInitializer {
			p.error("Cannot return a value from an initializer.")
		}

		value = p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after return value.")
	} else {
		p.consume(token.SEMICOLON, "Expect ';' after return.")
	}

	return ast.Return{Keyword: kw, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	then_branch := p.statement()
	else_branch := ast.Stmt(nil)
	if p.match(token.ELSE) {
		else_branch = p.statement()
	}

	return ast.If{
		Condition:  condition,
		ThenBranch: then_branch,
		ElseBranch: else_branch,
	}
}

func (p *Parser) whileStatement() ast.Stmt {
	// Track if inside a loop.
	old_loop := p.currentLoop
	p.currentLoop = kindWhileLoop
	defer func() { p.currentLoop = old_loop }()

	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	body := p.statement()

	return ast.While{Condition: condition, Body: body, Update: nil}
}

func (p *Parser) forStatement() ast.Stmt {
	// Track if inside a loop.
	old_loop := p.currentLoop
	p.currentLoop = kindForLoop
	defer func() { p.currentLoop = old_loop }()

	// A 'for' loop is lowered into an equivalent 'while':
	//     { initializer; while(condition, update_expr) body_stmt }
	// The update expression is kept in its own slot so it still runs when a
	// 'continue' skips the rest of the body.
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	init := ast.Stmt(nil)
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.LET):
		init = p.letDeclaration()
	default:
		init = p.expressionStatement()
	}

	cond := ast.Expr(ast.Literal{Value: true})
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	update := ast.Expr(nil)
	if !p.check(token.RIGHT_PAREN) {
		update = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for-clauses.")

	body := p.statement()

	while_loop := ast.While{
		Condition: cond,
		Update:    update,
		Body:      body,
	}
	return ast.MakeBlock(init, while_loop)
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")

	return ast.Expression{Expression: expr}
}

// Expression parsing methods
// --------------------------------------------------------
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	// Since the '=' can be any number of tokens ahead,
	// parse the LHS first and then check for equal sign and verify that the
	// assignment target is valid.
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous
		value := p.assignment()

		switch target := expr.(type) {
		case ast.Variable:
			return ast.Assign{Target: target, Expr: value}
		case ast.Get:
			// If Get(like: expr.name) then transform it into Set.
			// Where the name is the property to be set.
			return ast.Set{
				Object: target.Object,
				Name:   target.Name,
				Value:  value,
			}
		default:
			p.error_at(equals, "Invalid assignment target.")
			// Continue after the error as the syntax is well formed.
		}
	}

	return expr
}

// Generic helper function for parsing left-associative binary expressions.
func doLeftBinaryExpr[E ast.Binary | ast.Logical](
	p *Parser, next_rule func() ast.Expr, matches ...token.TokenKind) ast.Expr {
	left := next_rule()

	for p.match_any(matches...) {
		op := p.previous
		right := next_rule()

		left = ast.Expr(E{Operator: op, Left: left, Right: right})
	}

	return left
}

func (p *Parser) logicOr() ast.Expr {
	return doLeftBinaryExpr[ast.Logical](p, p.logicAnd, token.OR)
}

func (p *Parser) logicAnd() ast.Expr {
	return doLeftBinaryExpr[ast.Logical](p, p.equality, token.AND)
}

func (p *Parser) equality() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.comparison,
		token.EQUAL_EQUAL, token.BANG_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.term,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.factor,
		token.PLUS, token.MINUS)
}

func (p *Parser) factor() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.unary,
		token.STAR, token.SLASH)
}

func (p *Parser) unary() ast.Expr {
	if p.match_any(token.BANG, token.MINUS) {
		op := p.previous
		right := p.unary()
		return ast.Unary{Operator: op, Right: right}
	}

	return p.call()
}

func (p *Parser) call() ast.Expr {
	// This parses function calls and get(property access),
	// both are left-associative.
	expr := p.primary()

	for {
		if p.match(token.DOT) {
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = ast.Get{Object: expr, Name: name}
		} else if p.match(token.LEFT_PAREN) {
			expr = p.finish_call(expr)
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.Literal{Value: false}
	case p.match(token.TRUE):
		return ast.Literal{Value: true}
	case p.match(token.NULL):
		return ast.Literal{Value: nil}

	case p.match(token.SELF):
		return p.self()

	case p.match(token.SUPER):
		return p.super()

	case p.match_any(token.NUMBER, token.STRING):
		return ast.Literal{Value: p.previous.Literal}

	case p.match(token.IDENTIFIER):
		return ast.Variable{Name: p.previous}

	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return ast.Grouping{Expr: expr}

	}

	p.error_at(p.current, "Expect expression.")
	panic(SyntaxError{})
}

func (p *Parser) self() ast.Expr {
	if p.currentClass == kindNoClass {
		p.error("Cannot use 'self' outside of a class.")
		// Continue after the error as the syntax is well formed.
	}

	// At evaluation time 'self' resolves like any ordinary variable, since
	// method binding puts it in a scope enclosing the method's body.
	return ast.Self{Keyword: p.previous}
}

func (p *Parser) super() ast.Expr {
	switch p.currentClass {
	case kindNoClass:
		p.error("Cannot use 'super' outside of a class.")
	case kindClass:
		p.error("Cannot use 'super' in a class with no superclass.")
	}
	// Continue after the error as the syntax is well formed.

	keyword := p.previous
	p.consume(token.DOT, "Expect '.' after 'super'.")

	// Any usage of 'super' must access a method of the superclass.
	method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
	return ast.Super{Keyword: keyword, Method: method}
}

// Parsing helpers
// --------------------------------------------------------
// Parses: declaration* '}'.
func (p *Parser) bareBlock() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)

	for !p.check(token.RIGHT_BRACE) && !p.check(token.END_OF_FILE) {
		stmts = append(stmts, p.declaration())
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")

	return stmts
}

// Parses call arguments: (expr (',' expr)*)? ')'
func (p *Parser) finish_call(callee ast.Expr) ast.Call {
	args := make([]ast.Expr, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= MAX_CALL_PARAMS {
				p.error_at(p.current, fmt.Sprintf(
					"Can't have more than %v arguments.", MAX_CALL_PARAMS,
				))
			}
			// Continue after the error as the syntax is well formed.

			args = append(args, p.expression())

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

// Error reporting and recovery methods
// --------------------------------------------------------
func (p *Parser) error(format string, args ...any) {
	p.error_at(p.previous, format, args...)
}

func (p *Parser) error_at(tok token.Token, message string, args ...any) {
	at_end := tok.Kind == token.END_OF_FILE
	if len(p.errs) == 0 {
		p.incomplete = at_end
	} else if !at_end {
		p.incomplete = false
	}

	at := "'" + tok.Lexeme + "'"
	if at_end {
		at = "end"
	}

	p.errs = append(p.errs, diag.Errorf(
		diag.ParseError, tok.Line, "Error at %v: "+message,
		append([]any{at}, args...)...,
	))
}

// Synchronize the token stream after seeing malformed syntax to prevent
// cascading errors and parse as much correct syntax as possible.
func (p *Parser) synchronize() {
	// Discard token on which the error happened and continue to do so until
	// we find a token which might be the beginning of a new statement.
	p.advance()

	for p.current.Kind != token.END_OF_FILE {
		// If a statement or block has ended then we might see a new statement.
		switch p.previous.Kind {
		case token.SEMICOLON, token.RIGHT_BRACE:
			return
		}

		// If we see a token which is beginning of a statement.
		switch p.current.Kind {
		case token.LEFT_BRACE, token.CLASS, token.FN, token.LET,
			token.FOR, token.IF, token.WHILE,
			token.RETURN, token.PRINT, token.BREAK, token.CONTINUE:
			return

		default:
			p.advance()
		}
	}
}

// Parser token matching and processing methods
// --------------------------------------------------------
func (p *Parser) consume(kind token.TokenKind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}

	p.error_at(p.current, message)
	panic(SyntaxError{})
}

func (p *Parser) match_any(kinds ...token.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) match(kind token.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.current.Kind == kind
}

func (p *Parser) advance() token.Token {
	p.previous = p.current
	p.current = p.scn.NextToken()

	// Malformed lexemes surface as INVALID tokens carrying a structured
	// error. Record each once and resume at the next good token.
	for p.current.Kind == token.INVALID {
		p.errs = append(p.errs, p.scn.TakeError())
		p.incomplete = false
		p.current = p.scn.NextToken()
	}

	return p.previous
}
