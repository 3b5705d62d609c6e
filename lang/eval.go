package lang

import (
	"strconv"
	"strings"
)

// Eval evaluates a single form in env and returns its value, per spec.md
// §4.5.1/§4.5.2. This is the one recursive entry point the rest of the
// package (special forms, builtins, the session layer) calls back into.
func Eval(form Value, env *Env) (Value, error) {
	switch form.Kind {
	case KindNumber, KindString, KindBoolean, KindNil, KindKeyword,
		KindFunction, KindNativeFunction, KindMacro:
		return form, nil
	case KindSymbol:
		return evalSymbol(form, env)
	case KindVector:
		return evalVector(form, env)
	case KindMap:
		return evalMap(form, env)
	case KindList:
		return evalList(form, env)
	default:
		return Nil, evalError("cannot evaluate value of kind %s", form.Kind).WithForm(form)
	}
}

// evalSymbol resolves a Symbol, handling `alias/name` qualified references
// (spec.md §4.5.1).
func evalSymbol(form Value, env *Env) (Value, error) {
	name := form.Str()

	if alias, rest, ok := splitQualifiedName(name); ok {
		target, found := env.ResolveAlias(alias)
		if !found {
			return Nil, evalError("No such namespace alias: %s", alias).WithForm(form)
		}

		v, err := target.Lookup(rest)
		if err != nil {
			return Nil, err
		}

		return v, nil
	}

	v, err := env.Lookup(name)
	if err != nil {
		return Nil, err
	}

	return v, nil
}

// splitQualifiedName splits "alias/name" into its two non-empty parts. A
// leading/trailing '/' (or a name with no '/') does not qualify.
func splitQualifiedName(name string) (alias, rest string, ok bool) {
	i := strings.IndexByte(name, '/')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}

	return name[:i], name[i+1:], true
}

func evalVector(form Value, env *Env) (Value, error) {
	items, err := evalEach(form.Items(), env)
	if err != nil {
		return Nil, err
	}

	return NewVector(items...), nil
}

func evalMap(form Value, env *Env) (Value, error) {
	entries := form.Entries()
	out := make([]MapEntry, 0, len(entries))

	for _, e := range entries {
		k, err := Eval(e.Key, env)
		if err != nil {
			return Nil, err
		}

		v, err := Eval(e.Val, env)
		if err != nil {
			return Nil, err
		}

		out = append(out, MapEntry{Key: k, Val: v})
	}

	return NewMap(out...), nil
}

func evalEach(forms []Value, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(forms))

	for _, f := range forms {
		v, err := Eval(f, env)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// evalList implements spec.md §4.5.2: special forms dispatch first, then
// macro expand-then-eval, then function application, then keyword-as-
// lookup, then the appropriate error.
func evalList(form Value, env *Env) (Value, error) {
	items := form.Items()
	if len(items) == 0 {
		return Nil, evalError("cannot evaluate an empty list").WithForm(form)
	}

	head := items[0]
	args := items[1:]

	if head.Kind == KindSymbol {
		if fn, ok := specialForms[head.Str()]; ok {
			return fn(args, env)
		}
	}

	headVal, err := Eval(head, env)
	if err != nil {
		return Nil, err
	}

	switch headVal.Kind {
	case KindMacro:
		expanded, err := expandMacroCall(headVal, args)
		if err != nil {
			return Nil, err
		}

		return Eval(expanded, env)
	case KindFunction, KindNativeFunction:
		evaledArgs, err := evalEach(args, env)
		if err != nil {
			return Nil, err
		}

		return Apply(headVal, evaledArgs)
	case KindKeyword:
		return evalKeywordLookup(headVal, args, env)
	default:
		if head.Kind == KindSymbol {
			return Nil, evalError("%s is not a function", head.Str()).WithForm(form)
		}

		return Nil, evalError("first element must be a function or special form").WithForm(form)
	}
}

// evalKeywordLookup implements spec.md §4.5.2 step 4: a Keyword head acts
// as a lookup function over its first argument.
func evalKeywordLookup(kw Value, args []Value, env *Env) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("keyword lookup requires at least 1 argument").WithValue(kw)
	}

	target, err := Eval(args[0], env)
	if err != nil {
		return Nil, err
	}

	var def Value = Nil

	if len(args) >= 2 {
		def, err = Eval(args[1], env)
		if err != nil {
			return Nil, err
		}
	}

	if target.Kind != KindMap {
		return def, nil
	}

	if v, ok := mapGet(target.Entries(), kw); ok {
		return v, nil
	}

	return def, nil
}

// Apply calls a callable Value (Function, NativeFunction, or — for the
// higher-order builtins and the host-interop bridge — a Keyword used as a
// lookup function) with already-evaluated args (spec.md §4.5.4).
func Apply(fn Value, args []Value) (Value, error) {
	switch fn.Kind {
	case KindNativeFunction:
		return fn.Native().Fn(args)
	case KindFunction:
		return applyFunction(fn.Func(), args)
	case KindKeyword:
		return applyKeyword(fn, args)
	default:
		return Nil, evalError("%s is not a callable function", fn.Kind).WithValue(fn)
	}
}

func applyKeyword(kw Value, args []Value) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("keyword lookup requires at least 1 argument").WithValue(kw)
	}

	target := args[0]

	def := Nil
	if len(args) >= 2 {
		def = args[1]
	}

	if target.Kind != KindMap {
		return def, nil
	}

	if v, ok := mapGet(target.Entries(), kw); ok {
		return v, nil
	}

	return def, nil
}

// applyFunction runs the call-apply loop of spec.md §4.5.4: resolve an
// arity, bind parameters, evaluate the body, and trampoline on a
// recurSignal by re-resolving the arity for the new argument count.
func applyFunction(fn *Function, args []Value) (Value, error) {
	current := args

	for {
		arity, err := resolveArity(fn, len(current))
		if err != nil {
			return Nil, err
		}

		local, err := bindParams(arity.Params, arity.HasRest, arity.RestParam, current, fn.Env)
		if err != nil {
			return Nil, err
		}

		result, err := evalBody(arity.Body, local)
		if err == nil {
			return result, nil
		}

		recur, ok := asRecur(err)
		if !ok {
			return Nil, err
		}

		current = recur.args
	}
}

// evalBody evaluates forms as an implicit `do`: in order, returning the
// last result, or Nil for an empty body.
func evalBody(forms []Value, env *Env) (Value, error) {
	result := Nil

	for _, f := range forms {
		v, err := Eval(f, env)
		if err != nil {
			return Nil, err
		}

		result = v
	}

	return result, nil
}

// resolveArity implements spec.md §4.5.8: prefer an exact fixed-arity
// match, else the sole variadic arity if n is at least its fixed count,
// else error listing all available arities.
func resolveArity(fn *Function, n int) (Arity, error) {
	var variadic *Arity

	for i := range fn.Arities {
		a := &fn.Arities[i]

		if !a.HasRest && a.Fixed() == n {
			return *a, nil
		}

		if a.HasRest {
			variadic = a
		}
	}

	if variadic != nil && n >= variadic.Fixed() {
		return *variadic, nil
	}

	return Arity{}, evalError(
		"No matching arity for %d arguments. Available arities: %s",
		n, describeArities(fn.Arities),
	).WithValue(NewFunction(fn))
}

func describeArities(arities []Arity) string {
	parts := make([]string, 0, len(arities))

	for _, a := range arities {
		if a.HasRest {
			parts = append(parts, strconv.Itoa(a.Fixed())+"+")
		} else {
			parts = append(parts, strconv.Itoa(a.Fixed()))
		}
	}

	return strings.Join(parts, ", ")
}

// bindParams implements spec.md §4.5.9.
func bindParams(params []string, hasRest bool, restParam string, args []Value, outer *Env) (*Env, error) {
	if !hasRest {
		if len(args) != len(params) {
			return nil, evalError(
				"Arguments length mismatch: expected %d, got %d", len(params), len(args),
			)
		}

		return Extend(params, args, outer)
	}

	if len(args) < len(params) {
		return nil, evalError(
			"Arguments length mismatch: expected at least %d, got %d", len(params), len(args),
		)
	}

	env := NewEnv(outer)

	for i, p := range params {
		env.Define(p, args[i])
	}

	rest := args[len(params):]
	if len(rest) == 0 {
		env.Define(restParam, Nil)
	} else {
		env.Define(restParam, NewList(rest...))
	}

	return env, nil
}
