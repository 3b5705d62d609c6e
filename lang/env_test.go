package lang

import "testing"

func TestEnvLookupWalksOuter(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", NewNumber(1))

	child := NewEnv(root)

	v, err := child.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup(x) error: %v", err)
	}

	if v.Number() != 1 {
		t.Errorf("Lookup(x) = %v, want 1", v)
	}
}

func TestEnvLookupMissing(t *testing.T) {
	env := NewEnv(nil)

	if _, err := env.Lookup("missing"); err == nil {
		t.Errorf("Lookup(missing) = nil error, want an error")
	}
}

func TestEnvDefineShadows(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", NewNumber(1))

	child := NewEnv(root)
	child.Define("x", NewNumber(2))

	v, _ := child.Lookup("x")
	if v.Number() != 2 {
		t.Errorf("shadowed Lookup(x) = %v, want 2", v)
	}

	rv, _ := root.Lookup("x")
	if rv.Number() != 1 {
		t.Errorf("root Lookup(x) = %v, want 1 (shadowing must not mutate outer)", rv)
	}
}

func TestExtendLengthMismatch(t *testing.T) {
	_, err := Extend([]string{"a", "b"}, []Value{NewNumber(1)}, nil)
	if err == nil {
		t.Errorf("Extend with mismatched lengths = nil error, want an error")
	}
}

func TestNamespaceEnv(t *testing.T) {
	core := NewNamespaceEnv("clojure.core", nil)
	user := NewNamespaceEnv("user", core)
	lexical := NewEnv(user)

	if NamespaceEnv(lexical) != user {
		t.Errorf("NamespaceEnv(lexical) did not return the user namespace-root env")
	}

	if RootEnv(lexical) != core {
		t.Errorf("RootEnv(lexical) did not return the core root env")
	}
}

func TestAliasResolution(t *testing.T) {
	core := NewNamespaceEnv("clojure.core", nil)
	m := NewNamespaceEnv("m", core)
	m.Define("pi", NewNumber(3.14))

	u := NewNamespaceEnv("u", core)
	u.AddAlias("m", m)

	target, ok := u.ResolveAlias("m")
	if !ok {
		t.Fatalf("ResolveAlias(m) not found")
	}

	v, err := target.Lookup("pi")
	if err != nil || v.Number() != 3.14 {
		t.Errorf("alias lookup of pi = %v, %v, want 3.14, nil", v, err)
	}
}

func TestAliasIsLive(t *testing.T) {
	core := NewNamespaceEnv("clojure.core", nil)
	m := NewNamespaceEnv("m", core)

	u := NewNamespaceEnv("u", core)
	u.AddAlias("m", m)

	// define pi on m *after* the alias was installed
	m.Define("pi", NewNumber(3.14))

	target, _ := u.ResolveAlias("m")

	v, err := target.Lookup("pi")
	if err != nil || v.Number() != 3.14 {
		t.Errorf("live alias did not see late-added binding: %v, %v", v, err)
	}
}
