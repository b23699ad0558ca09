package object

import "testing"

func TestListIsSharedByReference(t *testing.T) {
	l := NewList([]Value{Number(1), Number(2)})
	alias := l
	alias.Append(Number(3))
	if l.Len() != 3 {
		t.Fatalf("l.Len() = %d, want 3 (append through alias should be visible)", l.Len())
	}
}

func TestListSetOutOfRange(t *testing.T) {
	l := NewList([]Value{Number(1)})
	if l.Set(5, Number(2)) {
		t.Fatal("Set at an out-of-range index should report false")
	}
}

func TestConstantUnwrap(t *testing.T) {
	c := &Constant{Inner: Number(42)}
	if Unwrap(c) != Number(42) {
		t.Fatalf("Unwrap(c) = %v, want 42", Unwrap(c))
	}
	if !c.Truthy() {
		t.Fatal("Constant wrapping a truthy value should itself be truthy")
	}
}

func TestEqualAcrossKinds(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal numbers", Number(1), Number(1), true},
		{"unequal numbers", Number(1), Number(2), false},
		{"equal strings", String("a"), String("a"), true},
		{"mismatched kinds", Number(1), String("1"), false},
		{"null equals null", Null{}, Null{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualListIsIdentityBased(t *testing.T) {
	a := NewList([]Value{Number(1)})
	b := NewList([]Value{Number(1)})
	if Equal(a, b) {
		t.Fatal("two distinct lists with equal contents should not be == (identity semantics)")
	}
	if !Equal(a, a) {
		t.Fatal("a list should equal itself")
	}
}

func TestEnvironmentShadowingAndChaining(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", Number(1))
	inner := NewEnvironment(outer)
	inner.Define("x", Number(2))

	v, ok := inner.Get("x")
	if !ok || v != Number(2) {
		t.Fatalf("inner.Get(x) = %v, %v, want 2, true", v, ok)
	}
	v, ok = outer.Get("x")
	if !ok || v != Number(1) {
		t.Fatalf("outer.Get(x) = %v, %v, want 1, true", v, ok)
	}
}

func TestEnvironmentAssignWalksToDeclaringFrame(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", Number(1))
	inner := NewEnvironment(outer)

	if !inner.Assign("x", Number(99)) {
		t.Fatal("Assign should find x in the outer frame")
	}
	v, _ := outer.Get("x")
	if v != Number(99) {
		t.Fatalf("outer.x = %v, want 99", v)
	}
}

func TestEnvironmentAssignUndeclaredFails(t *testing.T) {
	env := NewEnvironment(nil)
	if env.Assign("missing", Number(1)) {
		t.Fatal("Assign to an undeclared name should fail")
	}
}
