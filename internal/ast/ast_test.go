package ast

import "testing"

func TestOpString(t *testing.T) {
	if Add.String() != "+" {
		t.Fatalf("Add.String() = %q, want +", Add.String())
	}
	if NotIn.String() != "not in" {
		t.Fatalf("NotIn.String() = %q, want %q", NotIn.String(), "not in")
	}
	if Op(999).String() != "?" {
		t.Fatalf("unknown Op.String() = %q, want ?", Op(999).String())
	}
}

func TestInfixString(t *testing.T) {
	expr := &Infix{Left: &Number{Value: 1}, Op: Add, Right: &Number{Value: 2}}
	if got, want := expr.String(), "(1 + 2)"; got != want {
		t.Fatalf("Infix.String() = %q, want %q", got, want)
	}
}

func TestCallString(t *testing.T) {
	expr := &Call{
		Callee: &Identifier{Name: "greet"},
		Args: []Argument{
			{Expr: &String{Value: "Ada"}},
			{Name: "loud", Expr: &Bool{Value: true}},
		},
	}
	got := expr.String()
	want := `greet("Ada", loud = true)`
	if got != want {
		t.Fatalf("Call.String() = %q, want %q", got, want)
	}
}

func TestStructLiteralFieldOrderPreserved(t *testing.T) {
	expr := &Struct{
		Definition: &Identifier{Name: "Point"},
		FieldOrder: []string{"y", "x"},
		FieldInits: map[string]Expression{
			"x": &Number{Value: 1},
			"y": &Number{Value: 2},
		},
	}
	got := expr.String()
	want := "Point { y: 2, x: 1 }"
	if got != want {
		t.Fatalf("Struct.String() = %q, want %q (field order must follow source, not map iteration)", got, want)
	}
}

func TestParameterHasInitial(t *testing.T) {
	p := Parameter{Name: "greeting"}
	if p.HasInitial() {
		t.Fatal("bare parameter reports HasInitial() = true")
	}
	p.Initial = &String{Value: "hi"}
	if !p.HasInitial() {
		t.Fatal("parameter with Initial set reports HasInitial() = false")
	}
}

func TestArgumentIsNamed(t *testing.T) {
	a := Argument{Expr: &Number{Value: 1}}
	if a.IsNamed() {
		t.Fatal("positional argument reports IsNamed() = true")
	}
	a.Name = "count"
	if !a.IsNamed() {
		t.Fatal("named argument reports IsNamed() = false")
	}
}

func TestProgramStringJoinsStatements(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&CreateDecl{Name: "x", Initial: &Number{Value: 1}},
		&Return{Value: &Identifier{Name: "x"}},
	}}
	got := prog.String()
	if want := "create x = 1\nreturn x\n"; got != want {
		t.Fatalf("Program.String() = %q, want %q", got, want)
	}
}
