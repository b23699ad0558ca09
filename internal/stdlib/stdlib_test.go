package stdlib

import (
	"testing"

	"github.com/lugli-lang/lugli/internal/object"
)

type fakeInterp struct{}

func (fakeInterp) Call(callee object.Value, args object.ArgumentValues) (object.Value, error) {
	return callee.(*object.NativeFunction).Callback(fakeInterp{}, args)
}

func TestArity(t *testing.T) {
	args := object.ArgumentValues{{Value: object.Number(1)}, {Value: object.Number(2)}}
	if err := Arity("f", 2, args, false); err != nil {
		t.Fatalf("Arity(2, exact) = %v, want nil", err)
	}
	if err := Arity("f", 3, args, false); err == nil {
		t.Fatal("Arity(3, exact) on 2 args should fail")
	}
	if err := Arity("f", 1, args, true); err != nil {
		t.Fatalf("Arity(1, allowMore) on 2 args = %v, want nil", err)
	}
}

func TestStringMethods(t *testing.T) {
	upper, _ := LookupStringMethod("upper")
	v, err := upper(nil, object.String("hello"), nil)
	if err != nil || v != object.String("HELLO") {
		t.Fatalf("upper(\"hello\") = %v, %v", v, err)
	}

	contains, _ := LookupStringMethod("contains")
	v, err = contains(nil, object.String("hello world"), object.ArgumentValues{{Value: object.String("world")}})
	if err != nil || v != object.Bool(true) {
		t.Fatalf("contains = %v, %v", v, err)
	}

	split, _ := LookupStringMethod("split")
	v, err = split(nil, object.String("a,b,c"), object.ArgumentValues{{Value: object.String(",")}})
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	list := v.(*object.List)
	if list.Len() != 3 {
		t.Fatalf("split produced %d parts, want 3", list.Len())
	}
}

func TestNumberMethods(t *testing.T) {
	round, _ := LookupNumberMethod("round")
	v, _ := round(nil, object.Number(3.6), nil)
	if v != object.Number(4) {
		t.Fatalf("round(3.6) = %v, want 4", v)
	}

	sqrt, _ := LookupNumberMethod("sqrt")
	v, _ = sqrt(nil, object.Number(16), nil)
	if v != object.Number(4) {
		t.Fatalf("sqrt(16) = %v, want 4", v)
	}
}

func TestListMethodsPushJoin(t *testing.T) {
	l := object.NewList([]object.Value{object.Number(1), object.Number(2)})

	push, _ := LookupListMethod("push")
	if _, err := push(nil, l, object.ArgumentValues{{Value: object.Number(3)}}); err != nil {
		t.Fatalf("push error: %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("after push, len = %d, want 3", l.Len())
	}

	join, _ := LookupListMethod("join")
	v, err := join(nil, l, object.ArgumentValues{{Value: object.String("-")}})
	if err != nil || v != object.String("1-2-3") {
		t.Fatalf("join = %v, %v", v, err)
	}
}

func TestListMapUsesInterpreterCallback(t *testing.T) {
	doubled := &object.NativeFunction{Name: "doubled", Callback: func(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
		v, _ := args.At(0)
		n := v.(object.Number)
		return n * 2, nil
	}}
	l := object.NewList([]object.Value{object.Number(1), object.Number(2), object.Number(3)})

	mapFn, _ := LookupListMethod("map")
	result, err := mapFn(fakeInterp{}, l, object.ArgumentValues{{Value: doubled}})
	if err != nil {
		t.Fatalf("map error: %v", err)
	}
	out := result.(*object.List)
	want := []float64{2, 4, 6}
	for i, w := range want {
		v, _ := out.Get(i)
		if v != object.Number(w) {
			t.Fatalf("out[%d] = %v, want %v", i, v, w)
		}
	}
}

func TestArityExactZeroArgs(t *testing.T) {
	var noArgs object.ArgumentValues
	if err := Arity("f", 0, noArgs, false); err != nil {
		t.Fatalf("Arity(0, exact) on no args = %v, want nil", err)
	}
}
