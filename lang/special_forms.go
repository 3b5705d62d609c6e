package lang

// specialFormFunc implements one special form's call semantics, given the
// form's unevaluated argument forms and the env it was called in.
type specialFormFunc func(args []Value, env *Env) (Value, error)

// specialForms is the fixed table of spec.md §4.5.3's reserved symbols.
// Special forms are dispatched before macro expansion and cannot be
// shadowed or redefined (glossary: "Special form").
var specialForms = map[string]specialFormFunc{
	"quote":     sfQuote,
	"quasiquote": sfQuasiquote,
	"def":       sfDef,
	"ns":        sfNS,
	"if":        sfIf,
	"do":        sfDo,
	"let":       sfLet,
	"fn":        sfFn,
	"defmacro":  sfDefmacro,
	"loop":      sfLoop,
	"recur":     sfRecur,
}

// IsSpecialForm reports whether name is reserved as a special form.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]

	return ok
}

// SpecialForms returns the names of every reserved special form, for
// introspection (REPL completion).
func SpecialForms() []string {
	names := make([]string, 0, len(specialForms))
	for name := range specialForms {
		names = append(names, name)
	}

	return names
}

func sfQuote(args []Value, _ *Env) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("quote expects exactly 1 argument, got %d", len(args))
	}

	return args[0], nil
}

func sfQuasiquote(args []Value, env *Env) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("quasiquote expects exactly 1 argument, got %d", len(args))
	}

	return evalQuasiquote(args[0], env)
}

// sfDef implements `(def name expr)`: evaluate expr, define name in the
// enclosing namespace env (not the current lexical scope).
func sfDef(args []Value, env *Env) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("def expects exactly 2 arguments (name, expr), got %d", len(args))
	}

	nameForm := args[0]
	if nameForm.Kind != KindSymbol {
		return Nil, evalError("def name must be a symbol, got %s", nameForm.Kind).WithForm(nameForm)
	}

	val, err := Eval(args[1], env)
	if err != nil {
		return Nil, err
	}

	NamespaceEnv(env).Define(nameForm.Str(), val)

	return Nil, nil
}

// sfNS implements `(ns name ...)`. The session layer processes any
// `:require` clauses against the target namespace env before evaluation
// reaches this point (spec.md §4.7); evaluating the form itself is a
// no-op that returns Nil.
func sfNS(args []Value, _ *Env) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("ns expects at least a namespace name")
	}

	if args[0].Kind != KindSymbol {
		return Nil, evalError("ns name must be a symbol, got %s", args[0].Kind).WithForm(args[0])
	}

	return Nil, nil
}

func sfIf(args []Value, env *Env) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Nil, evalError("if expects 2 or 3 arguments, got %d", len(args))
	}

	cond, err := Eval(args[0], env)
	if err != nil {
		return Nil, err
	}

	if cond.IsTruthy() {
		return Eval(args[1], env)
	}

	if len(args) == 3 {
		return Eval(args[2], env)
	}

	return Nil, nil
}

func sfDo(args []Value, env *Env) (Value, error) {
	return evalBody(args, env)
}

// sfLet implements `(let [b1 v1 b2 v2 ...] body...)`: bindings vector must
// have even length and Symbol names; each v_i is evaluated in the env
// accumulated from all prior bindings.
func sfLet(args []Value, env *Env) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("let requires a bindings vector")
	}

	bindings := args[0]
	if bindings.Kind != KindVector {
		return Nil, evalError("let bindings must be a vector, got %s", bindings.Kind).WithForm(bindings)
	}

	scope, err := evalSequentialBindings(bindings.Items(), env)
	if err != nil {
		return Nil, err
	}

	return evalBody(args[1:], scope)
}

// evalSequentialBindings implements the shared let/loop binding rule: pairs
// must be even in count, each name a Symbol, each value evaluated in the
// env built up from all prior pairs.
func evalSequentialBindings(pairs []Value, outer *Env) (*Env, error) {
	if len(pairs)%2 != 0 {
		return nil, evalError("bindings vector must have an even number of forms, got %d", len(pairs))
	}

	scope := NewEnv(outer)

	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i]
		if name.Kind != KindSymbol {
			return nil, evalError("binding name must be a symbol, got %s", name.Kind).WithForm(name)
		}

		val, err := Eval(pairs[i+1], scope)
		if err != nil {
			return nil, err
		}

		scope.Define(name.Str(), val)
	}

	return scope, nil
}

// bindingNames extracts just the names from an evaluated bindings vector,
// for loop's recur-target remembering.
func bindingNames(pairs []Value) ([]string, error) {
	if len(pairs)%2 != 0 {
		return nil, evalError("bindings vector must have an even number of forms, got %d", len(pairs))
	}

	names := make([]string, 0, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		if pairs[i].Kind != KindSymbol {
			return nil, evalError("binding name must be a symbol, got %s", pairs[i].Kind).WithForm(pairs[i])
		}

		names = append(names, pairs[i].Str())
	}

	return names, nil
}

func sfFn(args []Value, env *Env) (Value, error) {
	arities, err := parseArities(args)
	if err != nil {
		return Nil, err
	}

	return NewFunction(&Function{Arities: arities, Env: env}), nil
}

// sfDefmacro implements `(defmacro name ...)`: parse arities like fn, wrap
// as a Macro, and define it in the root env (clojure.core), so macros are
// visible from every namespace exactly like other core bindings.
func sfDefmacro(args []Value, env *Env) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("defmacro requires a name")
	}

	nameForm := args[0]
	if nameForm.Kind != KindSymbol {
		return Nil, evalError("defmacro name must be a symbol, got %s", nameForm.Kind).WithForm(nameForm)
	}

	arities, err := parseArities(args[1:])
	if err != nil {
		return Nil, err
	}

	fn := &Function{Name: nameForm.Str(), Arities: arities, Env: env}

	RootEnv(env).Define(nameForm.Str(), NewMacro(fn))

	return Nil, nil
}

// sfLoop implements `(loop [b1 v1 ...] body...)` per spec.md §4.5.7:
// evaluate initial bindings sequentially, then iterate extending the
// *outer* env with names -> current args until the body returns normally.
func sfLoop(args []Value, env *Env) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("loop requires a bindings vector")
	}

	bindings := args[0]
	if bindings.Kind != KindVector {
		return Nil, evalError("loop bindings must be a vector, got %s", bindings.Kind).WithForm(bindings)
	}

	scope, err := evalSequentialBindings(bindings.Items(), env)
	if err != nil {
		return Nil, err
	}

	names, err := bindingNames(bindings.Items())
	if err != nil {
		return Nil, err
	}

	current := make([]Value, len(names))

	for i, name := range names {
		v, _ := scope.GetLocal(name)
		current[i] = v
	}

	body := args[1:]

	for {
		iter := NewEnv(env)

		for i, name := range names {
			iter.Define(name, current[i])
		}

		result, err := evalBody(body, iter)
		if err == nil {
			return result, nil
		}

		recur, ok := asRecur(err)
		if !ok {
			return Nil, err
		}

		if len(recur.args) != len(names) {
			return Nil, evalError(
				"recur expects %d argument(s) to loop, got %d", len(names), len(recur.args),
			)
		}

		current = recur.args
	}
}

func sfRecur(args []Value, env *Env) (Value, error) {
	evaled, err := evalEach(args, env)
	if err != nil {
		return Nil, err
	}

	return Nil, &recurSignal{args: evaled}
}

// parseArities implements spec.md §4.5.6: the tail is either a single
// [params...] vector followed by a body, or one or more ([params...]
// body...) arity clauses.
func parseArities(tail []Value) ([]Arity, error) {
	if len(tail) == 0 {
		return nil, evalError("fn/defmacro requires at least one arity")
	}

	if tail[0].Kind == KindVector {
		arity, err := parseArityClause(tail[0], tail[1:])
		if err != nil {
			return nil, err
		}

		return []Arity{arity}, nil
	}

	arities := make([]Arity, 0, len(tail))

	for _, clause := range tail {
		if clause.Kind != KindList {
			return nil, evalError("multi-arity fn/defmacro clause must be a list, got %s", clause.Kind).WithForm(clause)
		}

		items := clause.Items()
		if len(items) == 0 || items[0].Kind != KindVector {
			return nil, evalError("arity clause must begin with a parameter vector")
		}

		arity, err := parseArityClause(items[0], items[1:])
		if err != nil {
			return nil, err
		}

		arities = append(arities, arity)
	}

	if err := checkVariadicUniqueness(arities); err != nil {
		return nil, err
	}

	return arities, nil
}

// parseArityClause validates one parameter vector and builds its Arity.
func parseArityClause(params Value, body []Value) (Arity, error) {
	items := params.Items()

	ampCount := 0
	ampIndex := -1

	for i, p := range items {
		if p.Kind != KindSymbol {
			return Arity{}, evalError("parameter must be a symbol, got %s", p.Kind).WithForm(p)
		}

		if p.Str() == "&" {
			ampCount++
			ampIndex = i
		}
	}

	if ampCount > 1 {
		return Arity{}, evalError("parameter vector may contain at most one '&'")
	}

	if ampCount == 0 {
		names := make([]string, len(items))
		for i, p := range items {
			names[i] = p.Str()
		}

		return Arity{Params: names, Body: body}, nil
	}

	if ampIndex != len(items)-2 {
		return Arity{}, evalError("'&' must be second-to-last in the parameter vector, followed by the rest parameter")
	}

	fixed := items[:ampIndex]
	names := make([]string, len(fixed))

	for i, p := range fixed {
		names[i] = p.Str()
	}

	return Arity{
		Params:    names,
		HasRest:   true,
		RestParam: items[ampIndex+1].Str(),
		Body:      body,
	}, nil
}

func checkVariadicUniqueness(arities []Arity) error {
	variadicCount := 0

	seen := map[int]bool{}

	for _, a := range arities {
		if a.HasRest {
			variadicCount++
		} else if seen[a.Fixed()] {
			return evalError("fixed arities must have pairwise distinct parameter counts")
		} else {
			seen[a.Fixed()] = true
		}
	}

	if variadicCount > 1 {
		return evalError("at most one arity may be variadic")
	}

	return nil
}
