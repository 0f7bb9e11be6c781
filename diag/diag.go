package diag

import "fmt"

// Kind classifies every error the core can produce. Lex and parse errors
// are detected before evaluation; the rest are runtime errors.
type Kind uint8

const (
	LexError Kind = iota
	ParseError
	TypeError
	UndefinedVariable
	UndefinedProperty
	ArityError
	DivisionByZero
	StackOverflow
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case TypeError:
		return "TypeError"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedProperty:
		return "UndefinedProperty"
	case ArityError:
		return "ArityError"
	case DivisionByZero:
		return "DivisionByZero"
	case StackOverflow:
		return "StackOverflow"
	default:
		panic("Unknown diag.Kind.")
	}
}

// Error is the structured diagnostic the core hands back to its caller.
// The core never writes it to a stream itself; formatting and continuation
// policy belong to the CLI shell.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	// Call trace of the interpreted program, innermost frame first.
	// Empty for lex and parse errors.
	Trace []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %v] %v: %v", e.Line, e.Kind, e.Message)
}

func Errorf(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
