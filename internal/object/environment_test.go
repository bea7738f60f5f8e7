package object

import (
	"sort"
	"testing"
)

func TestEnvironmentGetSet(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &Integer{Value: 5})

	got, ok := env.Get("x")
	if !ok {
		t.Fatalf("Get(%q) missed", "x")
	}
	if got.(*Integer).Value != 5 {
		t.Errorf("Get(%q) = %s, want 5", "x", got.Inspect())
	}

	if _, ok := env.Get("y"); ok {
		t.Errorf("Get(%q) hit, want miss", "y")
	}
}

func TestEnvironmentRebindOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &Integer{Value: 1})
	env.Set("x", &Integer{Value: 2})

	got, _ := env.Get("x")
	if got.(*Integer).Value != 2 {
		t.Errorf("rebinding did not overwrite, got %s", got.Inspect())
	}
}

func TestEnclosedEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &Integer{Value: 1})
	outer.Set("y", &Integer{Value: 10})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("x", &Integer{Value: 2})

	got, _ := inner.Get("x")
	if got.(*Integer).Value != 2 {
		t.Errorf("inner x = %s, want shadowing value 2", got.Inspect())
	}
	got, _ = inner.Get("y")
	if got.(*Integer).Value != 10 {
		t.Errorf("inner y = %s, want outer value 10", got.Inspect())
	}

	// Writing in the inner scope must not leak outward.
	got, _ = outer.Get("x")
	if got.(*Integer).Value != 1 {
		t.Errorf("outer x = %s, inner Set leaked outward", got.Inspect())
	}
}

func TestEnvironmentNames(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("alpha", &Null{})
	inner := NewEnclosedEnvironment(outer)
	inner.Set("beta", &Null{})

	names := inner.Names()
	sort.Strings(names)
	want := []string{"alpha", "beta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
