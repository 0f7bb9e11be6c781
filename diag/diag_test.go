package diag

import "testing"

func TestErrorFormat(t *testing.T) {
	err := Errorf(TypeError, 7, "Operand must be a %v.", "number")

	want := "[line 7] TypeError: Operand must be a number."
	if got := err.Error(); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		LexError:          "LexError",
		ParseError:        "ParseError",
		TypeError:         "TypeError",
		UndefinedVariable: "UndefinedVariable",
		UndefinedProperty: "UndefinedProperty",
		ArityError:        "ArityError",
		DivisionByZero:    "DivisionByZero",
		StackOverflow:     "StackOverflow",
	}

	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}
}
