package interpreter

import (
	"fmt"
	"io"
	"tree_script/ast"
	"tree_script/diag"
	"tree_script/object"
	"tree_script/token"
	"tree_script/util"
	"tree_script/value"
)

// Call depth of the interpreted program after which a StackOverflow error
// is raised. Keeps runaway recursion in scripts from crashing the host.
const MAX_CALL_DEPTH = 1000

type Interpreter struct {
	// Global scope, root of every environment chain.
	globals *object.Environment
	// Environment of the scope currently being executed.
	env *object.Environment
	// Functions we are currently inside, for the error call trace.
	calledFunctions []string
	// Destination of 'print' output.
	out io.Writer
}

func MakeInterpreter(out io.Writer) Interpreter {
	globals := object.NewEnvironment(nil)
	globals.Declare("clock", object.MakeClock())

	return Interpreter{
		globals: globals,
		env:     globals,
		// The top-level implicit function is named '<script>'.
		calledFunctions: []string{"<script>"},
		out:             out,
	}
}

// Interpret evaluates the statements in order against the global scope and
// returns the structured runtime error that aborted evaluation, or nil.
// Globals persist across calls, so a REPL shell can keep feeding entries to
// the same interpreter whatever the previous entry did.
func (i *Interpreter) Interpret(statements []ast.Stmt) (runtime_err *diag.Error) {
	defer func() {
		switch err := recover().(type) {
		case nil:
		case *diag.Error:
			runtime_err = err
		default:
			panic(err)
		}
	}()

	// Discard state left over if the previous run aborted mid-call.
	i.env = i.globals
	i.calledFunctions = i.calledFunctions[:1]

	for _, stmt := range statements {
		i.execute(stmt)
	}

	return nil
}

// Statement evaluators
// --------------------------------------------------------
func (i *Interpreter) VisitBlockStmt(s ast.Block) {
	i.executeBlock(s.Statements, object.NewEnvironment(i.env))
}

func (i *Interpreter) VisitExpressionStmt(s ast.Expression) {
	i.evaluate(s.Expression)
}

func (i *Interpreter) VisitPrintStmt(s ast.Print) {
	fmt.Fprintf(i.out, "%v\n", value.AsString(i.evaluate(s.Expression)))
}

func (i *Interpreter) VisitBreakStmt(s ast.Break) {
	panic(controlBreak{})
}

func (i *Interpreter) VisitContinueStmt(s ast.Continue) {
	panic(controlContinue{})
}

func (i *Interpreter) VisitReturnStmt(s ast.Return) {
	val := any(nil)
	if s.Value != nil {
		val = i.evaluate(s.Value)
	}

	panic(controlReturn{Value: val})
}

func (i *Interpreter) VisitIfStmt(s ast.If) {
	if value.Truthiness(i.evaluate(s.Condition)) {
		i.execute(s.ThenBranch)
	} else if s.ElseBranch != nil {
		i.execute(s.ElseBranch)
	}
}

func (i *Interpreter) VisitWhileStmt(s ast.While) {
	// Handle break.
	defer func() {
		switch r := recover().(type) {
		case nil:
		case controlBreak:
		default:
			panic(r)
		}
	}()

	for value.Truthiness(i.evaluate(s.Condition)) {
		func() {
			// Handle 'continue' and run the update clause of a lowered
			// 'for' at the end of each iteration.
			defer func() {
				switch r := recover().(type) {
				case nil:
				case controlContinue:
				default:
					panic(r)
				}

				if s.Update != nil {
					i.evaluate(s.Update)
				}
			}()

			i.execute(s.Body)
		}()
	}
}

func (i *Interpreter) VisitLetStmt(s ast.Let) {
	val := i.evaluate(s.Initializer)
	i.env.Declare(s.Name.Lexeme, val)
}

func (i *Interpreter) VisitFunctionStmt(s *ast.Function) {
	fun := object.NewFunction(s, i.env, false)
	i.env.Declare(s.Name.Lexeme, fun)
}

func (i *Interpreter) VisitClassStmt(s ast.Class) {
	superclass := (*object.Class)(nil)
	if s.Superclass != nil {
		switch sc := i.evaluate(*s.Superclass).(type) {
		case *object.Class:
			superclass = sc
		default:
			panic(i.makeError(diag.TypeError, s.Superclass.Name,
				"Superclass must be a class."))
		}
	}

	// The class is declared before its methods are built so they can refer
	// to it by name through their captured environment.
	i.env.Declare(s.Name.Lexeme, nil)

	// Method closures capture an extra scope holding 'super', shared by all
	// of the class's methods. 'self' is bound per call, 'super' per class.
	method_env := i.env
	if superclass != nil {
		method_env = object.NewEnvironment(i.env)
		method_env.Declare("super", superclass)
	}

	methods := map[string]*object.Function{}
	for name, decl := range s.Methods {
		methods[name] = object.NewFunction(decl, method_env, name == "init")
	}

	i.env.Declare(s.Name.Lexeme, object.NewClass(s.Name.Lexeme, methods, superclass))
}

// Expression evaluators
// --------------------------------------------------------
func (i *Interpreter) VisitAssignExpr(e ast.Assign) any {
	// Assignment is an expression, its value is the assigned value.
	val := i.evaluate(e.Expr)

	if !i.env.Assign(e.Target.Name.Lexeme, val) {
		panic(i.makeError(diag.UndefinedVariable, e.Target.Name,
			"Undefined variable '%v'.", e.Target.Name.Lexeme))
	}

	return val
}

func (i *Interpreter) VisitLogicalExpr(e ast.Logical) any {
	left := i.evaluate(e.Left)

	// Short-circuit: the right operand is evaluated only when the left one
	// does not already determine the result. The value of the deciding
	// operand itself is returned, not a boolean.
	switch e.Operator.Kind {
	case token.OR:
		if value.Truthiness(left) {
			return left
		}

	case token.AND:
		if !value.Truthiness(left) {
			return left
		}

	default:
		panic("Invalid operator in logical expression.")
	}

	return i.evaluate(e.Right)
}

// Checks if both are of the type given.
func hasType[T any](a, b any) bool {
	_, e := a.(T)
	_, f := b.(T)
	return e && f
}

func (i *Interpreter) VisitBinaryExpr(e ast.Binary) any {
	left := i.evaluate(e.Left)
	right := i.evaluate(e.Right)

	check_nums := func() {
		if hasType[float64](left, right) {
			return
		}
		panic(i.makeError(diag.TypeError, e.Operator,
			"Operands must be numbers."))
	}

	switch e.Operator.Kind {
	case token.PLUS:
		if hasType[float64](left, right) || hasType[string](left, right) {
			return value.Add(left, right)
		}
		panic(i.makeError(diag.TypeError, e.Operator,
			"Operands must be two numbers or two strings."))

	case token.MINUS:
		check_nums()
		return value.Sub(left, right)
	case token.STAR:
		check_nums()
		return value.Mul(left, right)
	case token.SLASH:
		check_nums()
		if right.(float64) == 0 {
			panic(i.makeError(diag.DivisionByZero, e.Operator,
				"Division by zero."))
		}
		return value.Div(left, right)

	case token.GREATER:
		check_nums()
		return value.GreaterThan(left, right)
	case token.GREATER_EQUAL:
		check_nums()
		return value.GreaterThan(left, right) || value.EqualTo(left, right)

	case token.LESS:
		check_nums()
		return value.LessThan(left, right)
	case token.LESS_EQUAL:
		check_nums()
		return value.LessThan(left, right) || value.EqualTo(left, right)

	case token.EQUAL_EQUAL:
		return value.EqualTo(left, right)
	case token.BANG_EQUAL:
		return !value.EqualTo(left, right)

	default:
		panic("Invalid operator token in binary expression.")
	}
}

func (i *Interpreter) VisitUnaryExpr(e ast.Unary) any {
	right := i.evaluate(e.Right)

	switch e.Operator.Kind {
	case token.BANG:
		return !value.Truthiness(right)

	case token.MINUS:
		if _, ok := right.(float64); !ok {
			panic(i.makeError(diag.TypeError, e.Operator,
				"Operand must be a number."))
		}
		return value.Neg(right)

	default:
		panic("Invalid operator token in unary expression.")
	}
}

func (i *Interpreter) VisitCallExpr(e ast.Call) any {
	callee := i.evaluate(e.Callee)

	args := make([]any, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		args = append(args, i.evaluate(arg))
	}

	switch fun := callee.(type) {
	case *object.Function:
		i.checkArity(fun.Arity(), len(args), e.Paren)
		return i.callFunction(fun, args, e.Paren)

	case *object.NativeFunction:
		i.checkArity(fun.Arity(), len(args), e.Paren)
		return fun.Function(args...)

	case *object.Class:
		// Invoking a class constructs an instance. The 'init' method (if
		// any, possibly inherited) runs with the arguments forwarded, and
		// the call evaluates to the instance no matter what.
		i.checkArity(fun.Arity(), len(args), e.Paren)

		instance := object.NewInstance(fun)
		if init := fun.FindMethod("init"); init != nil {
			i.callFunction(init.Bind(instance), args, e.Paren)
		}
		return instance

	default:
		panic(i.makeError(diag.TypeError, e.Paren,
			"Can only call functions and classes."))
	}
}

func (i *Interpreter) VisitGetExpr(e ast.Get) any {
	instance, ok := i.evaluate(e.Object).(*object.Instance)
	if !ok {
		panic(i.makeError(diag.TypeError, e.Name,
			"Only instances have properties."))
	}

	if val, ok := instance.Get(e.Name.Lexeme); ok {
		return val
	}

	panic(i.makeError(diag.UndefinedProperty, e.Name,
		"Undefined property '%v'.", e.Name.Lexeme))
}

func (i *Interpreter) VisitSetExpr(e ast.Set) any {
	instance, ok := i.evaluate(e.Object).(*object.Instance)
	if !ok {
		panic(i.makeError(diag.TypeError, e.Name,
			"Only instances have fields."))
	}

	val := i.evaluate(e.Value)
	instance.Set(e.Name.Lexeme, val)
	return val
}

func (i *Interpreter) VisitSuperExpr(e ast.Super) any {
	// 'super' resolves like an ordinary variable: class evaluation wedges
	// it into a scope enclosing every method, and method binding wedges
	// 'self' into a scope between that and the method's own.
	superclass := i.lookupName(e.Keyword).(*object.Class)
	self_val, _ := i.env.Get("self")
	instance := self_val.(*object.Instance)

	// Method lookup starts at the superclass's table, regardless of any
	// override in the current class.
	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		panic(i.makeError(diag.UndefinedProperty, e.Method,
			"Undefined property '%v'.", e.Method.Lexeme))
	}

	return method.Bind(instance)
}

func (i *Interpreter) VisitSelfExpr(e ast.Self) any {
	return i.lookupName(e.Keyword)
}

func (i *Interpreter) VisitGroupingExpr(e ast.Grouping) any {
	return i.evaluate(e.Expr)
}

func (i *Interpreter) VisitLiteralExpr(e ast.Literal) any {
	return e.Value
}

func (i *Interpreter) VisitVariableExpr(e ast.Variable) any {
	return i.lookupName(e.Name)
}

// Call handling
// --------------------------------------------------------
func (i *Interpreter) checkArity(arity, num_args int, paren token.Token) {
	if arity != num_args {
		panic(i.makeError(
			diag.ArityError, paren,
			"Expected %v arguments but got %v arguments.", arity, num_args,
		))
	}
}

func (i *Interpreter) callFunction(
	fun *object.Function, args []any, paren token.Token) (ret_val any) {
	if len(i.calledFunctions) > MAX_CALL_DEPTH {
		panic(i.makeError(diag.StackOverflow, paren, "Stack overflow."))
	}

	// Extract the return value and pop off the called function name.
	// A runtime error propagating through picks up a trace frame naming
	// the call site on its way out.
	defer func() {
		util.Pop(&i.calledFunctions)

		switch r := recover().(type) {
		case nil:
		case controlReturn:
			ret_val = r.Value
		case *diag.Error:
			r.Trace = append(r.Trace,
				traceFrame(paren.Line, *util.Last(i.calledFunctions)))
			panic(r)
		default:
			panic(r)
		}

		// A constructor call evaluates to the instance no matter how the
		// body completed.
		if fun.IsInit {
			ret_val, _ = fun.Enclosing.Get("self")
		}
	}()

	// Push the function name for trace generation.
	i.calledFunctions = append(i.calledFunctions, fun.Declaration.Name.Lexeme)

	// A call gets a fresh child of the function's captured environment,
	// holding the parameters.
	fun_env := object.NewEnvironment(fun.Enclosing)
	for n, param := range fun.Declaration.Params {
		fun_env.Declare(param.Lexeme, args[n])
	}

	i.executeBlock(fun.Declaration.Body, fun_env)
	return nil
}

// Error reporting methods
// --------------------------------------------------------
func (i *Interpreter) makeError(
	kind diag.Kind, tok token.Token, format string, args ...any) *diag.Error {
	err := diag.Errorf(kind, tok.Line, format, args...)
	err.Trace = []string{traceFrame(tok.Line, *util.Last(i.calledFunctions))}
	return err
}

func traceFrame(line int, fun_name string) string {
	return fmt.Sprintf("[line %v] in %v", line, fun_name)
}

// Utility methods
// --------------------------------------------------------
func (i *Interpreter) execute(s ast.Stmt) {
	s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) any {
	return e.Accept(i)
}

func (i *Interpreter) executeBlock(statements []ast.Stmt, env *object.Environment) {
	// Use the supplied environment to execute code and later restore the
	// old one, even when a control signal or error is propagating outward.
	old_env := i.env
	i.env = env
	defer func() {
		i.env = old_env
	}()

	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) lookupName(name token.Token) any {
	if val, ok := i.env.Get(name.Lexeme); ok {
		return val
	}

	panic(i.makeError(diag.UndefinedVariable, name,
		"Undefined variable '%v'.", name.Lexeme))
}
