package object

// A chain of lexically nested scopes mapping names to values.
// Environments are shared by reference: a closure keeps the environment of
// its declaration site alive after the declaring scope has exited.
type Environment struct {
	enclosing *Environment
	values    map[string]any
}

const initialEnvSize int = 4

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any, initialEnvSize),
		enclosing: enclosing,
	}
}

// Declare introduces or rebinds a name in this scope only, shadowing any
// binding of the same name in an enclosing scope.
func (e *Environment) Declare(name string, value any) {
	e.values[name] = value
}

// Assign mutates the nearest existing binding, walking outward through the
// enclosing chain. Returns false if the name is bound nowhere in the chain,
// assignment never creates a binding.
func (e *Environment) Assign(name string, value any) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}

	return false
}

// Get resolves a name by walking outward, first match wins.
func (e *Environment) Get(name string) (any, bool) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name]; ok {
			return value, true
		}
	}

	return nil, false
}
