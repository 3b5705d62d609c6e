package lang

import "testing"

func TestEqualNumeric(t *testing.T) {
	if !Equal(NewNumber(1), NewNumber(1.0)) {
		t.Errorf("Equal(1, 1.0) = false, want true")
	}

	if Equal(NewNumber(1), NewNumber(2)) {
		t.Errorf("Equal(1, 2) = true, want false")
	}
}

func TestEqualMapOrderIndependent(t *testing.T) {
	a := NewMap(MapEntry{Key: NewKeyword(":a"), Val: NewNumber(1)}, MapEntry{Key: NewKeyword(":b"), Val: NewNumber(2)})
	b := NewMap(MapEntry{Key: NewKeyword(":b"), Val: NewNumber(2)}, MapEntry{Key: NewKeyword(":a"), Val: NewNumber(1)})

	if !Equal(a, b) {
		t.Errorf("Equal(a, b) = false, want true for order-independent maps")
	}

	c := NewMap(MapEntry{Key: NewKeyword(":a"), Val: NewNumber(1)})
	if Equal(a, c) {
		t.Errorf("Equal(a, c) = true, want false for maps of different size")
	}
}

func TestEqualCrossKind(t *testing.T) {
	if Equal(NewNumber(1), NewString("1")) {
		t.Errorf("Equal(number, string) = true, want false")
	}
}

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{False, false},
		{True, true},
		{NewNumber(0), true},
		{NewString(""), true},
		{NewVector(), true},
		{NewMap(), true},
	}

	for _, c := range cases {
		if got := c.v.IsTruthy(); got != c.want {
			t.Errorf("IsTruthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestValueImmutableCollections(t *testing.T) {
	items := []Value{NewNumber(1), NewNumber(2)}
	v := NewVector(items...)

	items[0] = NewNumber(99)

	if v.Items()[0].Number() != 1 {
		t.Errorf("mutating the input slice changed the Vector's contents")
	}
}

func TestArityHelpers(t *testing.T) {
	a := Arity{Params: []string{"a", "b"}, HasRest: true, RestParam: "rest"}

	if !a.Variadic() {
		t.Errorf("Variadic() = false, want true")
	}

	if a.Fixed() != 2 {
		t.Errorf("Fixed() = %d, want 2", a.Fixed())
	}
}
