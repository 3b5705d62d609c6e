package lang

import "testing"

func TestParseAtoms(t *testing.T) {
	forms, err := Parse(`42 -3.5 "hi" :kw sym true false nil`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := []Kind{KindNumber, KindNumber, KindString, KindKeyword, KindSymbol, KindBoolean, KindBoolean, KindNil}
	if len(forms) != len(want) {
		t.Fatalf("got %d forms, want %d: %v", len(forms), len(want), forms)
	}

	for i, k := range want {
		if forms[i].Kind != k {
			t.Errorf("forms[%d].Kind = %s, want %s", i, forms[i].Kind, k)
		}
	}
}

func TestParseNestedCollections(t *testing.T) {
	forms, err := Parse(`(+ 1 [2 3] {:a 1})`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(forms) != 1 || forms[0].Kind != KindList {
		t.Fatalf("got %v, want a single List form", forms)
	}

	items := forms[0].Items()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %v", len(items), items)
	}

	if items[1].Kind != KindVector {
		t.Errorf("items[1].Kind = %s, want Vector", items[1].Kind)
	}

	if items[2].Kind != KindMap {
		t.Errorf("items[2].Kind = %s, want Map", items[2].Kind)
	}
}

func TestParseMapOddLength(t *testing.T) {
	if _, err := Parse(`{:a 1 :b}`); err == nil {
		t.Errorf("Parse(odd map) = nil error, want an error")
	}
}

func TestParseUnterminatedList(t *testing.T) {
	if _, err := Parse(`(+ 1 2`); err == nil {
		t.Errorf("Parse(unterminated list) = nil error, want an error")
	}
}

func TestParseUnexpectedCloseParen(t *testing.T) {
	if _, err := Parse(`)`); err == nil {
		t.Errorf("Parse(stray close paren) = nil error, want an error")
	}
}

func TestParseReaderMacros(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"'x", "quote"},
		{"`x", "quasiquote"},
		{"~x", "unquote"},
		{"~@x", "unquote-splicing"},
	}

	for _, c := range cases {
		forms, err := Parse(c.src)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c.src, err)
		}

		if len(forms) != 1 || forms[0].Kind != KindList {
			t.Fatalf("Parse(%q) = %v, want a single wrapping List", c.src, forms)
		}

		head := forms[0].Items()[0]
		if head.Kind != KindSymbol || head.Str() != c.want {
			t.Errorf("Parse(%q) head = %v, want symbol %q", c.src, head, c.want)
		}
	}
}

func TestParseQuasiquoteSplicingRoundTrip(t *testing.T) {
	forms, err := Parse("`(a ~@xs b)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	// (quasiquote (a (unquote-splicing xs) b))
	qq := forms[0]
	inner := qq.Items()[1]

	if inner.Kind != KindList {
		t.Fatalf("inner = %v, want List", inner)
	}

	items := inner.Items()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %v", len(items), items)
	}

	splice := items[1]
	if splice.Kind != KindList || splice.Items()[0].Str() != "unquote-splicing" {
		t.Errorf("items[1] = %v, want (unquote-splicing xs)", splice)
	}
}
