package eval

import (
	"strings"
	"testing"

	"github.com/lugli-lang/lugli/internal/lexer"
	"github.com/lugli-lang/lugli/internal/object"
	"github.com/lugli-lang/lugli/internal/parser"
)

func run(t *testing.T, src string) *Interpreter {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	interp := New()
	if err := interp.Run(prog); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return interp
}

func runExpectError(t *testing.T, src string) error {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	interp := New()
	if err := interp.Run(prog); err != nil {
		return err
	}
	t.Fatal("expected the program to fail, but it ran to completion")
	return nil
}

func getVar(t *testing.T, interp *Interpreter, name string) object.Value {
	t.Helper()
	v, ok := interp.Env.Get(name)
	if !ok {
		t.Fatalf("variable %q was not defined", name)
	}
	return object.Unwrap(v)
}

func TestArithmetic(t *testing.T) {
	interp := run(t, "create x = (2 + 3) * 4 - 10 / 2")
	if getVar(t, interp, "x") != object.Number(15) {
		t.Fatalf("x = %v, want 15", getVar(t, interp, "x"))
	}
}

func TestStringConcatenation(t *testing.T) {
	interp := run(t, `create x = "foo" + "bar"`)
	if getVar(t, interp, "x") != object.String("foobar") {
		t.Fatalf("x = %v, want foobar", getVar(t, interp, "x"))
	}
}

func TestIfElifElse(t *testing.T) {
	interp := run(t, `
create x = -5
create result = ""
if (x > 0) {
    result = "positive"
} elif (x < 0) {
    result = "negative"
} else {
    result = "zero"
}`)
	if getVar(t, interp, "result") != object.String("negative") {
		t.Fatalf("result = %v, want negative", getVar(t, interp, "result"))
	}
}

func TestWhileWithBreakAndContinue(t *testing.T) {
	interp := run(t, `
create i = 0
create sum = 0
while (i < 10) {
    i = i + 1
    if (i == 5) {
        continue
    }
    if (i > 8) {
        break
    }
    sum = sum + i
}`)
	// i reaches 9 (loop breaks when i > 8, i.e. i == 9), sum accumulates
	// 1+2+3+4+6+7+8 (5 skipped by continue).
	if getVar(t, interp, "i") != object.Number(9) {
		t.Fatalf("i = %v, want 9", getVar(t, interp, "i"))
	}
	if getVar(t, interp, "sum") != object.Number(31) {
		t.Fatalf("sum = %v, want 31", getVar(t, interp, "sum"))
	}
}

func TestForOverList(t *testing.T) {
	interp := run(t, `
create total = 0
for v in [1, 2, 3, 4] {
    total = total + v
}`)
	if getVar(t, interp, "total") != object.Number(10) {
		t.Fatalf("total = %v, want 10", getVar(t, interp, "total"))
	}
}

func TestForWithIndex(t *testing.T) {
	interp := run(t, `
create indices = []
for (i, v) in ["a", "b", "c"] {
    indices[] = i
}`)
	list := getVar(t, interp, "indices").(*object.List)
	want := []float64{0, 1, 2}
	if list.Len() != len(want) {
		t.Fatalf("got %d indices, want %d", list.Len(), len(want))
	}
	for i, w := range want {
		v, _ := list.Get(i)
		if v != object.Number(w) {
			t.Fatalf("indices[%d] = %v, want %v", i, v, w)
		}
	}
}

func TestFunctionDefaultsNamedAndPositionalArgs(t *testing.T) {
	interp := run(t, `
fn greet(name, greeting = "Hello") {
    return greeting + ", " + name
}
create a = greet("Ada")
create b = greet("Grace", greeting = "Hi")
create c = greet(greeting = "Yo", name = "Linus")`)
	if getVar(t, interp, "a") != object.String("Hello, Ada") {
		t.Fatalf("a = %v", getVar(t, interp, "a"))
	}
	if getVar(t, interp, "b") != object.String("Hi, Grace") {
		t.Fatalf("b = %v", getVar(t, interp, "b"))
	}
	if getVar(t, interp, "c") != object.String("Yo, Linus") {
		t.Fatalf("c = %v", getVar(t, interp, "c"))
	}
}

func TestFunctionTooFewArgumentsErrors(t *testing.T) {
	err := runExpectError(t, `
fn add(a, b) {
    return a + b
}
create x = add(1)`)
	if err == nil {
		t.Fatal("expected a too-few-arguments error")
	}
}

func TestStructInstanceFieldsAndMethods(t *testing.T) {
	interp := run(t, `
struct Point {
    x = 0
    y = 0
    fn length_squared(this) {
        return this.x * this.x + this.y * this.y
    }
}
create p = Point { x: 3, y: 4 }
create result = p.length_squared()`)
	if getVar(t, interp, "result") != object.Number(25) {
		t.Fatalf("result = %v, want 25", getVar(t, interp, "result"))
	}
}

func TestStructInstancesAreIndependent(t *testing.T) {
	interp := run(t, `
struct Counter {
    count = 0
}
create a = Counter {}
create b = Counter {}
a.count = 5`)
	a := getVar(t, interp, "a").(*object.StructInstance)
	b := getVar(t, interp, "b").(*object.StructInstance)
	av, _ := a.Env.Get("count")
	bv, _ := b.Env.Get("count")
	if av != object.Number(5) {
		t.Fatalf("a.count = %v, want 5", av)
	}
	if bv != object.Number(0) {
		t.Fatalf("b.count = %v, want 0 (instances must not alias each other)", bv)
	}
}

func TestStaticMethodAssignmentSugar(t *testing.T) {
	interp := run(t, `
struct Person {
    name = ""
    email = ""
}
Person.new = fn(name, email) {
    return Person { name, email }
}
create p = Person.new("Ada", "ada@example.com")`)
	p := getVar(t, interp, "p").(*object.StructInstance)
	name, _ := p.Env.Get("name")
	if name != object.String("Ada") {
		t.Fatalf("p.name = %v, want Ada", name)
	}
}

func TestConstantReassignmentFails(t *testing.T) {
	err := runExpectError(t, `
const x = 1
x = 2`)
	if err == nil {
		t.Fatal("expected an error assigning to a constant")
	}
}

func TestUndefinedVariableSuggestsClosestName(t *testing.T) {
	err := runExpectError(t, `
create counter = 1
create x = counte`)
	if err == nil {
		t.Fatal("expected an undefined-variable error")
	}
	if got := err.Error(); !strings.Contains(got, `did you mean "counter"`) {
		t.Fatalf("error = %q, want a suggestion of \"counter\"", got)
	}
}

func TestListAppendAndOverwrite(t *testing.T) {
	interp := run(t, `
create items = [1, 2, 3]
items[] = 4
items[0] = 99`)
	list := getVar(t, interp, "items").(*object.List)
	if list.Len() != 4 {
		t.Fatalf("got %d items, want 4", list.Len())
	}
	first, _ := list.Get(0)
	if first != object.Number(99) {
		t.Fatalf("items[0] = %v, want 99", first)
	}
	last, _ := list.Get(3)
	if last != object.Number(4) {
		t.Fatalf("items[3] = %v, want 4", last)
	}
}

func TestClosureCapturesEnclosingScope(t *testing.T) {
	interp := run(t, `
create makeAdder = fn(n) {
    return fn(x) { return x + n }
}
create addFive = makeAdder(5)
create result = addFive(10)`)
	if getVar(t, interp, "result") != object.Number(15) {
		t.Fatalf("result = %v, want 15", getVar(t, interp, "result"))
	}
}

func TestInAndNotInOperators(t *testing.T) {
	interp := run(t, `
create xs = [1, 2, 3]
create hasTwo = 2 in xs
create hasFive = 5 not in xs`)
	if getVar(t, interp, "hasTwo") != object.Bool(true) {
		t.Fatalf("hasTwo = %v, want true", getVar(t, interp, "hasTwo"))
	}
	if getVar(t, interp, "hasFive") != object.Bool(true) {
		t.Fatalf("hasFive = %v, want true", getVar(t, interp, "hasFive"))
	}
}
