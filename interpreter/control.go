package interpreter

// Control-flow signals thrown as panics by the statement evaluators and
// recovered by the enclosing loop or function call. They never escape
// Interpret since the parser rejects misplaced break/continue/return.

type controlBreak struct{}

type controlContinue struct{}

type controlReturn struct {
	Value any
}
