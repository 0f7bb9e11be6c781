package object

import "fmt"

type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class // Can be nil
}

func NewClass(name string, methods map[string]*Function, superclass *Class) *Class {
	return &Class{
		Name:       name,
		Methods:    methods,
		Superclass: superclass,
	}
}

func (c *Class) String() string {
	return fmt.Sprintf("<class %v>", c.Name)
}

// Calling a class runs its 'init' method (possibly inherited) with the
// arguments forwarded, so the class's arity is its initializer's.
func (c *Class) Arity() int {
	if method := c.FindMethod("init"); method != nil {
		return method.Arity()
	} else {
		return 0
	}
}

// Looks up a method in this class first, then up the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if fun, ok := c.Methods[name]; ok {
		return fun
	} else if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	} else {
		return nil
	}
}
