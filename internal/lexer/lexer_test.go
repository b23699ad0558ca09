package lexer

import (
	"testing"

	"github.com/lugli-lang/lugli/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	toks := New([]byte(src)).Scan()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("Scan(%q) = %v, want %v", src, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Scan(%q)[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"compound assign", "x += 1", []token.Kind{token.IDENTIFIER, token.PLUS_ASSIGN, token.NUMBER, token.EOF}},
		{"increment", "x++", []token.Kind{token.IDENTIFIER, token.INCREMENT, token.EOF}},
		{"pow vs multiply", "x ** 2 * 3", []token.Kind{token.IDENTIFIER, token.POW, token.NUMBER, token.ASTERISK, token.NUMBER, token.EOF}},
		{"comparisons", "a <= b >= c", []token.Kind{token.IDENTIFIER, token.LESS_THAN_OR_EQUALS, token.IDENTIFIER, token.GREATER_THAN_OR_EQUALS, token.IDENTIFIER, token.EOF}},
		{"not in", "x not in y", []token.Kind{token.IDENTIFIER, token.NOT_IN, token.IDENTIFIER, token.EOF}},
		{"not alone", "not x", []token.Kind{token.IDENTIFIER, token.IDENTIFIER, token.EOF}},
		{"struct literal", "Point { x: 1 }", []token.Kind{token.IDENTIFIER, token.LEFT_BRACE, token.IDENTIFIER, token.COLON, token.NUMBER, token.RIGHT_BRACE, token.EOF}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertKinds(t, c.src, c.want)
		})
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks := New([]byte(`"hello world"`)).Scan()
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != token.STRING || toks[0].Literal != "hello world" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestScanUnterminatedStringRecordsError(t *testing.T) {
	lx := New([]byte(`"unterminated`))
	lx.Scan()
	if len(lx.Errors()) == 0 {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestScanNumberLiteral(t *testing.T) {
	toks := New([]byte("3.14 42")).Scan()
	if toks[0].Kind != token.NUMBER || toks[0].Literal != "3.14" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Kind != token.NUMBER || toks[1].Literal != "42" {
		t.Fatalf("got %+v", toks[1])
	}
}

func TestScanKeywords(t *testing.T) {
	toks := New([]byte("fn struct create const if elif else for while loop return break continue and or true false null")).Scan()
	want := []token.Kind{
		token.FN, token.STRUCT, token.CREATE, token.CONST, token.IF, token.ELIF, token.ELSE,
		token.FOR, token.WHILE, token.LOOP, token.RETURN, token.BREAK, token.CONTINUE,
		token.AND, token.OR, token.TRUE, token.FALSE, token.NULL, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestScanLineComment(t *testing.T) {
	toks := New([]byte("1 -- this is a comment\n2")).Scan()
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (2 numbers + EOF)", len(toks))
	}
	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("got %+v %+v", toks[0], toks[1])
	}
}

func TestScanTracksLineNumbers(t *testing.T) {
	toks := New([]byte("1\n2\n3")).Scan()
	for i, want := range []int{1, 2, 3} {
		if toks[i].Line != want {
			t.Fatalf("token %d on line %d, want %d", i, toks[i].Line, want)
		}
	}
}
