package token

import "testing"

func TestKindStringKnownAndUnknown(t *testing.T) {
	if FN.String() != "FN" {
		t.Fatalf("FN.String() = %q, want FN", FN.String())
	}
	if got := Kind(9999).String(); got == "" {
		t.Fatalf("unknown Kind.String() returned empty")
	}
}

func TestKeywordsTableRoundTrips(t *testing.T) {
	for word, kind := range Keywords {
		if kind.String() == "" {
			t.Fatalf("keyword %q maps to a Kind with no name", word)
		}
	}
	if _, ok := Keywords["not"]; ok {
		t.Fatal(`"not" must not be a single-token keyword; it is folded with a following "in" by the lexer`)
	}
}
