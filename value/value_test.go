package value

import "testing"

func TestTruthiness(t *testing.T) {
	falsy := []any{nil, false}
	for _, v := range falsy {
		if Truthiness(v) {
			t.Errorf("%#v must be falsy", v)
		}
	}

	// Everything else is truthy, including zero and the empty string.
	truthy := []any{true, 0.0, 1.0, "", "x"}
	for _, v := range truthy {
		if !Truthiness(v) {
			t.Errorf("%#v must be truthy", v)
		}
	}
}

func TestEqualToSameKind(t *testing.T) {
	cases := []struct {
		s, t any
		want bool
	}{
		{nil, nil, true},
		{true, true, true},
		{true, false, false},
		{2.0, 2.0, true},
		{2.0, 3.0, false},
		{"a", "a", true},
		{"a", "b", false},
	}

	for _, c := range cases {
		if got := EqualTo(c.s, c.t); got != c.want {
			t.Errorf("EqualTo(%#v, %#v): want %v, got %v", c.s, c.t, c.want, got)
		}
	}
}

func TestEqualToMismatchedKindsIsFalse(t *testing.T) {
	// Never an error, just unequal.
	pairs := [][2]any{
		{1.0, "1"},
		{0.0, false},
		{nil, false},
		{"", nil},
		{"true", true},
	}

	for _, p := range pairs {
		if EqualTo(p[0], p[1]) || EqualTo(p[1], p[0]) {
			t.Errorf("EqualTo(%#v, %#v) must be false", p[0], p[1])
		}
	}
}

func TestNumberOperations(t *testing.T) {
	if got := Add(1.0, 2.0); got != 3.0 {
		t.Errorf("1 + 2: got %v", got)
	}
	if got := Sub(5.0, 2.0); got != 3.0 {
		t.Errorf("5 - 2: got %v", got)
	}
	if got := Mul(4.0, 2.5); got != 10.0 {
		t.Errorf("4 * 2.5: got %v", got)
	}
	if got := Div(9.0, 2.0); got != 4.5 {
		t.Errorf("9 / 2: got %v", got)
	}
	if got := Neg(3.0); got != -3.0 {
		t.Errorf("-3: got %v", got)
	}
	if !LessThan(1.0, 2.0) || LessThan(2.0, 1.0) {
		t.Errorf("LessThan misordered")
	}
	if !GreaterThan(2.0, 1.0) || GreaterThan(1.0, 2.0) {
		t.Errorf("GreaterThan misordered")
	}
}

func TestStringConcatenation(t *testing.T) {
	if got := Add("foo", "bar"); got != "foobar" {
		t.Errorf("want 'foobar', got %v", got)
	}
}

func TestAsString(t *testing.T) {
	cases := []struct {
		val  any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{"raw text", "raw text"},
		{3.0, "3"},
		{31.4, "31.4"},
		{-0.5, "-0.5"},
		{100.0, "100"},
	}

	for _, c := range cases {
		if got := AsString(c.val); got != c.want {
			t.Errorf("AsString(%#v): want %q, got %q", c.val, c.want, got)
		}
	}
}
