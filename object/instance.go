package object

import (
	"fmt"
)

// Instances are shared-mutable: every reference aliases the same fields,
// a field written through one reference is visible through all others.
type Instance struct {
	Fields map[string]any
	Class  *Class
}

func NewInstance(class *Class) *Instance {
	return &Instance{Fields: map[string]any{}, Class: class}
}

func (i *Instance) String() string {
	return fmt.Sprintf("%v instance", i.Class.Name)
}

// Get resolves a property: instance fields take precedence over methods.
// A method is bound to the instance freshly on every access.
func (i *Instance) Get(name string) (any, bool) {
	if value, ok := i.Fields[name]; ok {
		return value, true
	} else if method := i.Class.FindMethod(name); method != nil {
		return method.Bind(i), true
	} else {
		return nil, false
	}
}

// Set always writes an instance field, never a method.
func (i *Instance) Set(name string, value any) {
	i.Fields[name] = value
}
