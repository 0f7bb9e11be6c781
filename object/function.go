package object

import (
	"fmt"
	"tree_script/ast"
)

type Function struct {
	Declaration *ast.Function
	// The environment captured at declaration time, this is what makes the
	// function a closure. Calling the function later creates a fresh child
	// of this environment.
	Enclosing *Environment
	IsInit    bool // Is class constructor?
}

func NewFunction(decl *ast.Function, enclosing *Environment, is_init bool) *Function {
	return &Function{
		Declaration: decl,
		Enclosing:   enclosing,
		IsInit:      is_init,
	}
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %v>", f.Declaration.Name.Lexeme)
}

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Creates a new function bound to the instance.
// The instance goes into a fresh scope wedged between the function's body
// scope and its captured environment, so that 'self' resolves to the
// receiver of this particular access. The binding is per-access, never
// stored on the method itself.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Enclosing)
	env.Declare("self", instance)

	return &Function{Declaration: f.Declaration, Enclosing: env, IsInit: f.IsInit}
}
