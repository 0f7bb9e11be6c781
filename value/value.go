package value

import (
	"fmt"
	"strconv"
)

// All TreeScript values are stored in 'any' typed variables as following:
// Null, Boolean, Number and String are represented using go's nil and
// primitive types bool, float64 and string respectively.
// Functions, classes and instances live in tree_script/object and are
// stored as pointers, so '==' on them is object identity.

// Error type marker.
// Type checks are performed before calling any of the operations below,
// this is only thrown on a bug in the evaluator itself.
type TypeError struct{}

// Logical operations
// --------------------------------------------------------

// Only null and false are falsy, every other value (including 0 and the
// empty string) is truthy. This is the single truthiness rule used by
// '!', 'and', 'or', 'if' and 'while'.
func Truthiness(s any) bool {
	switch v := s.(type) {
	case nil:
		return false
	case bool:
		return v

	default:
		return true
	}
}

// Two values are equal only if their kinds and stored values are equal,
// mismatched kinds compare unequal instead of failing.
// Objects are stored as pointers so two of them are equal only when they
// refer to the same underlying object.
func EqualTo(s, t any) bool {
	switch u := s.(type) {
	case nil:
		return t == nil
	case bool:
		v, ok := t.(bool)
		return ok && u == v
	case float64:
		v, ok := t.(float64)
		return ok && u == v
	case string:
		v, ok := t.(string)
		return ok && u == v

	default:
		return s == t
	}
}

func LessThan(s, t any) bool {
	if u, e := s.(float64); e {
		if v, f := t.(float64); f {
			return u < v
		}
	}

	panic(TypeError{})
}

func GreaterThan(s, t any) bool {
	if u, e := s.(float64); e {
		if v, f := t.(float64); f {
			return u > v
		}
	}

	panic(TypeError{})
}

// Mathematical operations
// --------------------------------------------------------
func Neg(s any) any {
	switch u := s.(type) {
	case float64:
		return -u
	}

	panic(TypeError{})
}

func Add(s, t any) any {
	switch u := s.(type) {
	case float64:
		switch v := t.(type) {
		case float64:
			return u + v
		}

	case string:
		switch v := t.(type) {
		case string:
			return u + v
		}
	}

	panic(TypeError{})
}

func Sub(s, t any) any {
	switch u := s.(type) {
	case float64:
		switch v := t.(type) {
		case float64:
			return u - v
		}
	}

	panic(TypeError{})
}

func Mul(s, t any) any {
	switch u := s.(type) {
	case float64:
		switch v := t.(type) {
		case float64:
			return u * v
		}
	}

	panic(TypeError{})
}

// Division by zero is checked by the evaluator before this is reached.
func Div(s, t any) any {
	switch u := s.(type) {
	case float64:
		switch v := t.(type) {
		case float64:
			return u / v
		}
	}

	panic(TypeError{})
}

// Textual forms as printed by the 'print' statement:
// numbers use the shortest decimal form ('3', '31.4'), strings are raw,
// objects provide their own String method.
func AsString(s any) string {
	switch v := s.(type) {
	case nil:
		return "null"

	case bool:
		if v {
			return "true"
		} else {
			return "false"
		}

	case string:
		return v

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case fmt.Stringer:
		return v.String()
	}

	panic(TypeError{})
}
