package lang

// expandMacroCall binds macro to the unevaluated argForms (spec.md
// §4.5.2 step 2) and evaluates its body once, returning the resulting
// form unevaluated. Grounded on the teacher's hyphenPatcher ast.Visitor
// (patcher.go), generalized from a subtraction-chain rewrite to a single
// macro-call rewrite: both walk exactly one node and substitute its
// expansion without recursing into the result themselves — recursive
// expansion happens because the caller re-evaluates (or re-expands) what
// comes back.
func expandMacroCall(macro Value, argForms []Value) (Value, error) {
	fn := macro.Func()

	arity, err := resolveArity(fn, len(argForms))
	if err != nil {
		return Nil, err
	}

	local, err := bindParams(arity.Params, arity.HasRest, arity.RestParam, argForms, fn.Env)
	if err != nil {
		return Nil, err
	}

	result, err := evalBody(arity.Body, local)
	if err != nil {
		return Nil, escapedRecur(err)
	}

	return result, nil
}

// MacroExpand1 implements the `macroexpand-1` native (spec.md §4.6): if
// form is a list whose head symbol names a macro resolvable in env, expand
// it once; otherwise return form unchanged.
func MacroExpand1(form Value, env *Env) (Value, error) {
	if form.Kind != KindList {
		return form, nil
	}

	items := form.Items()
	if len(items) == 0 || items[0].Kind != KindSymbol {
		return form, nil
	}

	head, err := env.Lookup(items[0].Str())
	if err != nil {
		return form, nil
	}

	if head.Kind != KindMacro {
		return form, nil
	}

	return expandMacroCall(head, items[1:])
}

// MacroExpand implements the `macroexpand` native: repeatedly apply
// MacroExpand1 until a fixed point (structural equality against the
// previous iteration, spec.md §3 invariant 2).
func MacroExpand(form Value, env *Env) (Value, error) {
	current := form

	for {
		next, err := MacroExpand1(current, env)
		if err != nil {
			return Nil, err
		}

		if Equal(next, current) {
			return current, nil
		}

		current = next
	}
}
