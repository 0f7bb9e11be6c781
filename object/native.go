package object

import (
	"fmt"
	"time"
)

// A function implemented in the host language. Arguments are type checked
// by the native itself, arity by the evaluator like any other call.
type NativeFunction struct {
	NumParams int
	Function  func(args ...any) any
	Name      string
}

func (n *NativeFunction) Arity() int {
	return n.NumParams
}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %v>", n.Name)
}

// Seconds since the Unix epoch, the one built-in useful for benchmarking
// interpreted programs.
func MakeClock() *NativeFunction {
	return &NativeFunction{
		Name:      "clock",
		NumParams: 0,
		Function: func(args ...any) any {
			return float64(time.Now().UnixNano()) / 1e9
		},
	}
}
