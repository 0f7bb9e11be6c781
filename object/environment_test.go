package object

import "testing"

func TestEnvironmentDeclareAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Declare("a", 1.0)

	if v, ok := env.Get("a"); !ok || v != 1.0 {
		t.Errorf("want 1, got %v (ok=%v)", v, ok)
	}
	if _, ok := env.Get("missing"); ok {
		t.Errorf("lookup of an undeclared name must fail")
	}
}

func TestEnvironmentDeclareRebinds(t *testing.T) {
	env := NewEnvironment(nil)
	env.Declare("a", 1.0)
	env.Declare("a", 2.0)

	if v, _ := env.Get("a"); v != 2.0 {
		t.Errorf("want rebound value 2, got %v", v)
	}
}

func TestEnvironmentLookupWalksOutward(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Declare("a", "outer")
	outer.Declare("b", "outer")

	inner := NewEnvironment(outer)
	inner.Declare("a", "inner")

	// First match wins, walking from the innermost scope.
	if v, _ := inner.Get("a"); v != "inner" {
		t.Errorf("shadowed lookup: want 'inner', got %v", v)
	}
	if v, _ := inner.Get("b"); v != "outer" {
		t.Errorf("outer lookup: want 'outer', got %v", v)
	}
}

func TestEnvironmentAssignMutatesNearestSlot(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Declare("a", "old")
	inner := NewEnvironment(outer)

	if !inner.Assign("a", "new") {
		t.Fatalf("assignment to an enclosing binding must succeed")
	}
	if v, _ := outer.Get("a"); v != "new" {
		t.Errorf("want mutated outer slot, got %v", v)
	}
	if _, ok := inner.Get("a"); !ok {
		t.Errorf("inner chain must still see the binding")
	}
}

func TestEnvironmentAssignNeverCreates(t *testing.T) {
	outer := NewEnvironment(nil)
	inner := NewEnvironment(outer)

	if inner.Assign("ghost", 1.0) {
		t.Fatalf("assignment must not create a binding anywhere in the chain")
	}
	if _, ok := outer.Get("ghost"); ok {
		t.Errorf("failed assignment must leave no binding behind")
	}
}

func TestEnvironmentSharedEnclosing(t *testing.T) {
	// Two child scopes share one enclosing scope, as two closures
	// capturing the same declaration site do.
	shared := NewEnvironment(nil)
	shared.Declare("count", 0.0)

	a := NewEnvironment(shared)
	b := NewEnvironment(shared)

	a.Assign("count", 1.0)
	if v, _ := b.Get("count"); v != 1.0 {
		t.Errorf("mutation through one chain must be visible through the other, got %v", v)
	}
}
