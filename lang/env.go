package lang

// Env is a lexical scope: a set of bindings plus a link to an outer scope.
// Every top-level form of a namespace shares one namespace-root Env
// (Namespace set, Aliases non-nil); ordinary let/fn/loop scopes are plain
// child Envs with Namespace unset.
//
// Env is a plain Go pointer type. Namespace-root envs are referenced by
// every closure captured while they were alive, including cyclically (a
// function defined at the top level of a namespace captures that
// namespace's own env) — Go's garbage collector handles these cycles, so
// no arena or reference-counting scheme is required (spec.md §3/§9).
type Env struct {
	bindings map[string]Value
	outer    *Env

	// namespace is set only on a namespace-root env.
	namespace string
	isNSRoot  bool

	// aliases maps alias symbol name -> target namespace-root env. Only
	// set on namespace-root envs. Aliases are live: they reference the
	// target env directly, so bindings added to the target later are
	// visible through the alias.
	aliases map[string]*Env
}

// NewEnv creates an empty child environment of outer. outer may be nil
// for a root environment.
func NewEnv(outer *Env) *Env {
	return &Env{
		bindings: make(map[string]Value),
		outer:    outer,
	}
}

// NewNamespaceEnv creates a namespace-root environment named name, with
// outer as its parent (clojure.core for user namespaces, nil only for
// clojure.core itself).
func NewNamespaceEnv(name string, outer *Env) *Env {
	env := NewEnv(outer)
	env.namespace = name
	env.isNSRoot = true
	env.aliases = make(map[string]*Env)

	return env
}

// Define installs a binding directly in env, shadowing any outer binding
// of the same name.
func (env *Env) Define(name string, v Value) {
	env.bindings[name] = v
}

// Lookup walks env.outer until name is found, returning an
// EvaluationError if the chain is exhausted.
func (env *Env) Lookup(name string) (Value, error) {
	for e := env; e != nil; e = e.outer {
		if v, ok := e.bindings[name]; ok {
			return v, nil
		}
	}

	return Nil, evalError("Symbol %s not found", name)
}

// Extend creates a child env of outer with each (names[i], values[i])
// bound. len(names) must equal len(values).
func Extend(names []string, values []Value, outer *Env) (*Env, error) {
	if len(names) != len(values) {
		return nil, evalError(
			"Arguments length mismatch: expected %d, got %d",
			len(names), len(values),
		)
	}

	env := NewEnv(outer)

	for i, name := range names {
		env.Define(name, values[i])
	}

	return env, nil
}

// RootEnv walks outer to the topmost env (clojure.core).
func RootEnv(env *Env) *Env {
	e := env
	for e.outer != nil {
		e = e.outer
	}

	return e
}

// NamespaceEnv walks outer to the nearest env with Namespace set, used by
// def to target the enclosing namespace rather than the current lexical
// scope.
func NamespaceEnv(env *Env) *Env {
	for e := env; e != nil; e = e.outer {
		if e.isNSRoot {
			return e
		}
	}

	// Every well-formed env chain bottoms out at a namespace root
	// (clojure.core at minimum); this is reachable only if a caller
	// constructed an Env without NewNamespaceEnv as its ultimate root.
	return env
}

// Namespace returns the namespace name if env is a namespace-root env, or
// "" otherwise.
func (env *Env) Namespace() string {
	return env.namespace
}

// IsNamespaceRoot reports whether env is a namespace-root env.
func (env *Env) IsNamespaceRoot() bool {
	return env.isNSRoot
}

// Outer returns env's parent scope, or nil for a root.
func (env *Env) Outer() *Env {
	return env.outer
}

// AddAlias installs an alias -> target mapping on a namespace-root env.
// The alias is live: later additions to target are visible through it.
func (env *Env) AddAlias(alias string, target *Env) {
	ns := NamespaceEnv(env)
	if ns.aliases == nil {
		ns.aliases = make(map[string]*Env)
	}

	ns.aliases[alias] = target
}

// ResolveAlias looks up alias in the nearest namespace env's alias table.
func (env *Env) ResolveAlias(alias string) (*Env, bool) {
	ns := NamespaceEnv(env)
	target, ok := ns.aliases[alias]

	return target, ok
}

// LocalNames returns the names bound directly in env (not in any outer
// scope), for introspection (REPL completion, `ns` listing).
func (env *Env) LocalNames() []string {
	names := make([]string, 0, len(env.bindings))
	for name := range env.bindings {
		names = append(names, name)
	}

	return names
}

// GetLocal looks up name only in env itself, without walking outer.
func (env *Env) GetLocal(name string) (Value, bool) {
	v, ok := env.bindings[name]

	return v, ok
}
