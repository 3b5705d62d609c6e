package lang

import "testing"

// newTestEnv builds a user-namespace env with the core natives installed and
// the standard macro library (stdlib.clj) loaded, mirroring what Session
// wires up, without pulling in the session/require/file-loading machinery
// this package-level test has no need of.
func newTestEnv(t *testing.T) *Env {
	t.Helper()

	core := NewNamespaceEnv("clojure.core", nil)
	InstallCore(core, nil)

	user := NewNamespaceEnv("user", core)

	forms, err := Parse(stdlibSource)
	if err != nil {
		t.Fatalf("parsing stdlib source: %v", err)
	}

	for _, f := range forms {
		if _, err := Eval(f, user); err != nil {
			t.Fatalf("loading stdlib: evaluating %s: %v", PrintString(f), err)
		}
	}

	return user
}

func evalSrc(t *testing.T, env *Env, src string) Value {
	t.Helper()

	forms, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}

	result, err := evalBody(forms, env)
	if err != nil {
		t.Fatalf("evaluating %q: %v", src, err)
	}

	return result
}

// TestSeedFibonacci encodes spec.md §8's iterative Fibonacci scenario:
// loop/recur computing fib(10) == 55.
func TestSeedFibonacci(t *testing.T) {
	env := newTestEnv(t)

	src := `(loop [i 0 a 0 b 1] (if (= i 10) a (recur (inc i) b (+ a b))))`

	got := evalSrc(t, env, src)
	if got.Number() != 55 {
		t.Errorf("fib(10) = %v, want 55", got)
	}
}

// TestSeedFactorial encodes spec.md §8's defn+loop/recur factorial scenario:
// factorial(10) == 3628800.
func TestSeedFactorial(t *testing.T) {
	env := newTestEnv(t)

	src := `
		(defn factorial [n]
		  (loop [i n acc 1]
		    (if (= i 0)
		      acc
		      (recur (dec i) (* acc i)))))
		(factorial 10)
	`

	got := evalSrc(t, env, src)
	if got.Number() != 3628800 {
		t.Errorf("factorial(10) = %v, want 3628800", got)
	}
}

// TestSeedClosureCapture encodes spec.md §8's make-adder scenario: a
// returned closure must keep seeing the value captured at its creation.
func TestSeedClosureCapture(t *testing.T) {
	env := newTestEnv(t)

	src := `
		(defn make-adder [n]
		  (fn [x] (+ x n)))
		(def add5 (make-adder 5))
		(add5 3)
	`

	got := evalSrc(t, env, src)
	if got.Number() != 8 {
		t.Errorf("(add5 3) = %v, want 8", got)
	}
}

// TestSeedQuasiquoteSplicing encodes spec.md §8's quasiquote-splicing
// scenario: `(a ~@[1 2 3] b) == (a 1 2 3 b).
func TestSeedQuasiquoteSplicing(t *testing.T) {
	env := newTestEnv(t)

	src := "`(a ~@[1 2 3] b)"

	got := evalSrc(t, env, src)

	want := NewList(NewSymbol("a"), NewNumber(1), NewNumber(2), NewNumber(3), NewSymbol("b"))
	if !Equal(got, want) {
		t.Errorf("quasiquote splicing = %s, want %s", PrintString(got), PrintString(want))
	}
}

// TestSeedMultiArityDispatch encodes spec.md §8's multi-arity dispatch
// scenario: a function with 0-, 1-, and variadic-arity clauses.
func TestSeedMultiArityDispatch(t *testing.T) {
	env := newTestEnv(t)

	src := `
		(def f (fn
		  ([] 0)
		  ([x] (+ x 7))
		  ([x y & more] (+ x y (count more)))))
		[(f) (f 0) (f 1 2 3 4)]
	`

	got := evalSrc(t, env, src)
	items := got.Items()

	if items[0].Number() != 0 {
		t.Errorf("(f) = %v, want 0", items[0])
	}

	if items[1].Number() != 7 {
		t.Errorf("(f 0) = %v, want 7", items[1])
	}

	if items[2].Number() != 5 {
		t.Errorf("(f 1 2 3 4) = %v, want 5", items[2])
	}
}

// TestSeedNamespaceAliasRequire encodes spec.md §8's namespace alias
// scenario directly against Env, without the session/file-loader layer:
// an aliased namespace's binding resolves as alias/name.
func TestSeedNamespaceAliasRequire(t *testing.T) {
	core := NewNamespaceEnv("clojure.core", nil)
	InstallCore(core, nil)

	m := NewNamespaceEnv("math.constants", core)
	m.Define("pi", NewNumber(3.14))

	user := NewNamespaceEnv("user", core)
	user.AddAlias("m", m)

	got, err := Eval(NewSymbol("m/pi"), user)
	if err != nil {
		t.Fatalf("Eval(m/pi) error: %v", err)
	}

	if got.Number() != 3.14 {
		t.Errorf("m/pi = %v, want 3.14", got)
	}
}

// --- boundary behaviors ---

func TestEmptyCollectionOps(t *testing.T) {
	env := newTestEnv(t)

	if got := evalSrc(t, env, "(count [])"); got.Number() != 0 {
		t.Errorf("(count []) = %v, want 0", got)
	}

	if got := evalSrc(t, env, "(first [])"); got.Kind != KindNil {
		t.Errorf("(first []) = %v, want nil", got)
	}

	if got := evalSrc(t, env, "(rest [])"); got.Kind != KindVector || len(got.Items()) != 0 {
		t.Errorf("(rest []) = %v, want an empty vector", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	env := newTestEnv(t)

	forms, err := Parse("(/ 1 0)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if _, err := evalBody(forms, env); err == nil {
		t.Errorf("(/ 1 0) = nil error, want an error")
	}
}

func TestCallingNonCallable(t *testing.T) {
	env := newTestEnv(t)

	forms, err := Parse("(1 2 3)")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if _, err := evalBody(forms, env); err == nil {
		t.Errorf("(1 2 3) = nil error, want an error")
	}
}

func TestRecurWrongArgCount(t *testing.T) {
	env := newTestEnv(t)

	forms, err := Parse("(loop [i 0] (recur i i))")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if _, err := evalBody(forms, env); err == nil {
		t.Errorf("recur with wrong arg count = nil error, want an error")
	}
}

func TestRecurOutsideLoopOrFnEscapes(t *testing.T) {
	env := newTestEnv(t)

	forms, err := Parse("(if true (recur 1))")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	_, err = evalBody(forms, env)
	if err == nil {
		t.Fatalf("recur outside loop/fn = nil error, want an error")
	}
}

func TestLexicalClosureCaptureAtCallTime(t *testing.T) {
	env := newTestEnv(t)

	src := `
		(def n 1)
		(defn get-n [] n)
		(def captured (get-n))
		(def _ (def n 2))
		[captured (get-n)]
	`

	got := evalSrc(t, env, src)
	items := got.Items()

	if items[0].Number() != 1 {
		t.Errorf("captured = %v, want 1", items[0])
	}

	if items[1].Number() != 2 {
		t.Errorf("(get-n) after redef = %v, want 2 (lexical lookup at call time)", items[1])
	}
}
