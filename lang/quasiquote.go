package lang

// evalQuasiquote implements spec.md §4.5.5: form is walked structurally,
// `unquote` evaluates its operand in place, `unquote-splicing` evaluates
// its operand and splices the resulting List/Vector's elements into the
// enclosing List/Vector, and every other shape (including plain Symbol and
// Keyword) is returned unchanged except for recursing into nested
// List/Vector/Map structure.
func evalQuasiquote(form Value, env *Env) (Value, error) {
	if isUnquoteForm(form) {
		return Eval(form.Items()[1], env)
	}

	switch form.Kind {
	case KindList:
		items, err := quasiquoteSeq(form.Items(), env)
		if err != nil {
			return Nil, err
		}

		return NewList(items...), nil
	case KindVector:
		items, err := quasiquoteSeq(form.Items(), env)
		if err != nil {
			return Nil, err
		}

		return NewVector(items...), nil
	case KindMap:
		entries := make([]MapEntry, 0, len(form.Entries()))

		for _, e := range form.Entries() {
			k, err := evalQuasiquote(e.Key, env)
			if err != nil {
				return Nil, err
			}

			v, err := evalQuasiquote(e.Val, env)
			if err != nil {
				return Nil, err
			}

			entries = append(entries, MapEntry{Key: k, Val: v})
		}

		return NewMap(entries...), nil
	default:
		return form, nil
	}
}

// quasiquoteSeq walks the elements of a List/Vector quasiquote template,
// splicing unquote-splicing results and recursively quasiquoting
// everything else.
func quasiquoteSeq(items []Value, env *Env) ([]Value, error) {
	var out []Value

	for _, e := range items {
		if isUnquoteSplicingForm(e) {
			spliced, err := Eval(e.Items()[1], env)
			if err != nil {
				return nil, err
			}

			if spliced.Kind != KindList && spliced.Kind != KindVector {
				return nil, evalError("unquote-splicing expects a list or vector, got %s", spliced.Kind).WithValue(spliced)
			}

			out = append(out, spliced.Items()...)

			continue
		}

		v, err := evalQuasiquote(e, env)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func isUnquoteForm(form Value) bool {
	return isTaggedForm(form, "unquote")
}

func isUnquoteSplicingForm(form Value) bool {
	return isTaggedForm(form, "unquote-splicing")
}

// isTaggedForm reports whether form is a 2-element List whose head is the
// Symbol sym, the shape produced by the reader macros and by quasiquote's
// own recursive calls.
func isTaggedForm(form Value, sym string) bool {
	if form.Kind != KindList {
		return false
	}

	items := form.Items()
	if len(items) != 2 {
		return false
	}

	return items[0].Kind == KindSymbol && items[0].Str() == sym
}
