package parser

import (
	"testing"

	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

func TestParseCreateAndConst(t *testing.T) {
	prog := parseSrc(t, "create x = 1\nconst y = 2")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*ast.CreateDecl); !ok {
		t.Fatalf("statement 0 is %T, want *ast.CreateDecl", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.ConstDecl); !ok {
		t.Fatalf("statement 1 is %T, want *ast.ConstDecl", prog.Statements[1])
	}
}

func TestParseInfixPrecedence(t *testing.T) {
	prog := parseSrc(t, "1 + 2 * 3")
	expr := prog.Statements[0].(*ast.ExprStmt).Expr
	infix, ok := expr.(*ast.Infix)
	if !ok {
		t.Fatalf("got %T, want *ast.Infix", expr)
	}
	if infix.Op != ast.Add {
		t.Fatalf("op = %s, want +", infix.Op)
	}
	right, ok := infix.Right.(*ast.Infix)
	if !ok || right.Op != ast.Multiply {
		t.Fatalf("right = %#v, want a multiply", infix.Right)
	}
}

func TestParseFunctionCallWithNamedArguments(t *testing.T) {
	prog := parseSrc(t, "greet(name = \"Ada\", loud = true)")
	call := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.Call)
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	if call.Args[0].Name != "name" || !call.Args[0].IsNamed() {
		t.Fatalf("arg 0 = %+v", call.Args[0])
	}
	if call.Args[1].Name != "loud" {
		t.Fatalf("arg 1 = %+v", call.Args[1])
	}
}

func TestParseForWithIndexForm(t *testing.T) {
	prog := parseSrc(t, "for (i, v) in items { print(v) }")
	f := prog.Statements[0].(*ast.For)
	if f.Index != "i" || f.Value != "v" {
		t.Fatalf("got Index=%q Value=%q", f.Index, f.Value)
	}
}

func TestParseForWithoutIndexForm(t *testing.T) {
	prog := parseSrc(t, "for v in items { print(v) }")
	f := prog.Statements[0].(*ast.For)
	if f.Index != "" || f.Value != "v" {
		t.Fatalf("got Index=%q Value=%q", f.Index, f.Value)
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := parseSrc(t, `
if (x > 0) {
    create y = 1
} elif (x < 0) {
    create y = -1
} else {
    create y = 0
}`)
	ifStmt := prog.Statements[0].(*ast.If)
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("got %d elifs, want 1", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseStructDeclKeepsMethodsAsClosureFields(t *testing.T) {
	prog := parseSrc(t, `
struct Point {
    x = 0
    y = 0
    fn translate(this, dx, dy) {
        return this
    }
}`)
	decl := prog.Statements[0].(*ast.StructDecl)
	if len(decl.Fields) != 3 {
		t.Fatalf("got %d fields, want 3 (x, y, translate)", len(decl.Fields))
	}
	var methodField *ast.Parameter
	for i := range decl.Fields {
		if decl.Fields[i].Name == "translate" {
			methodField = &decl.Fields[i]
		}
	}
	if methodField == nil {
		t.Fatal("translate field not found")
	}
	if _, ok := methodField.Initial.(*ast.Closure); !ok {
		t.Fatalf("translate.Initial = %T, want *ast.Closure", methodField.Initial)
	}
}

func TestParseStaticMethodAssignmentSugar(t *testing.T) {
	prog := parseSrc(t, `Person.new = fn(name, email) { return Person { name, email } }`)
	assign := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.SetProperty)
	if assign.Field != "new" {
		t.Fatalf("field = %q, want \"new\"", assign.Field)
	}
	if _, ok := assign.Value.(*ast.Closure); !ok {
		t.Fatalf("value = %T, want *ast.Closure", assign.Value)
	}
}

func TestParseStructLiteralShorthandFields(t *testing.T) {
	prog := parseSrc(t, `Person { name, email }`)
	lit := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.Struct)
	if len(lit.FieldOrder) != 2 {
		t.Fatalf("got %d fields, want 2", len(lit.FieldOrder))
	}
	ident, ok := lit.FieldInits["name"].(*ast.Identifier)
	if !ok || ident.Name != "name" {
		t.Fatalf("shorthand field name = %#v", lit.FieldInits["name"])
	}
}

func TestParseIndexAppendForm(t *testing.T) {
	prog := parseSrc(t, `items[] = 1`)
	assign := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.Assign)
	idx, ok := assign.Target.(*ast.Index)
	if !ok || idx.Idx != nil {
		t.Fatalf("target = %#v, want an append-position Index", assign.Target)
	}
}

func TestParseCompoundAssignmentDesugarsIncrement(t *testing.T) {
	prog := parseSrc(t, `x++`)
	m := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.MathAssign)
	if m.Op != ast.Add {
		t.Fatalf("op = %s, want +", m.Op)
	}
	num, ok := m.Value.(*ast.Number)
	if !ok || num.Value != 1 {
		t.Fatalf("value = %#v, want 1", m.Value)
	}
}

func TestParseMethodCallChaining(t *testing.T) {
	prog := parseSrc(t, `list.map(fn(x) { return x * 2 }).join(",")`)
	outer := prog.Statements[0].(*ast.ExprStmt).Expr.(*ast.MethodCall)
	if outer.Field != "join" {
		t.Fatalf("outer field = %q, want join", outer.Field)
	}
	inner, ok := outer.Target.(*ast.MethodCall)
	if !ok || inner.Field != "map" {
		t.Fatalf("inner = %#v, want a map MethodCall", outer.Target)
	}
}
