package lang

import "strings"

// InstallCore installs every native function of spec.md §4.6 onto env
// (the clojure.core namespace-root env). println is installed only when
// output is non-nil, matching spec.md §4.6: "Omitted entirely from the
// env when no sink is configured." require is installed separately by the
// session layer (session.go), since it needs access to the NamespaceRegistry.
func InstallCore(env *Env, output func(string)) {
	for name, fn := range coreNatives(env) {
		env.Define(name, NewNativeFunction(name, fn))
	}

	if output != nil {
		env.Define("println", NewNativeFunction("println", nativePrintln(output)))
	}
}

func coreNatives(env *Env) map[string]func(args []Value) (Value, error) {
	return map[string]func(args []Value) (Value, error){
		"+": nativeAdd,
		"-": nativeSub,
		"*": nativeMul,
		"/": nativeDiv,

		"<":  nativeCompare("<", func(a, b float64) bool { return a < b }),
		"<=": nativeCompare("<=", func(a, b float64) bool { return a <= b }),
		">":  nativeCompare(">", func(a, b float64) bool { return a > b }),
		">=": nativeCompare(">=", func(a, b float64) bool { return a >= b }),
		"=":  nativeEquals,

		"nil?":    typePredicate(func(v Value) bool { return v.Kind == KindNil }),
		"true?":   typePredicate(func(v Value) bool { return v.Kind == KindBoolean && v.Bool() }),
		"false?":  typePredicate(func(v Value) bool { return v.Kind == KindBoolean && !v.Bool() }),
		"truthy?": typePredicate(func(v Value) bool { return v.IsTruthy() }),
		"falsy?":  typePredicate(func(v Value) bool { return !v.IsTruthy() }),
		"not":     nativeNot,
		"number?":  typePredicate(func(v Value) bool { return v.Kind == KindNumber }),
		"string?":  typePredicate(func(v Value) bool { return v.Kind == KindString }),
		"boolean?": typePredicate(func(v Value) bool { return v.Kind == KindBoolean }),
		"keyword?": typePredicate(func(v Value) bool { return v.Kind == KindKeyword }),
		"symbol?":  typePredicate(func(v Value) bool { return v.Kind == KindSymbol }),
		"vector?":  typePredicate(func(v Value) bool { return v.Kind == KindVector }),
		"list?":    typePredicate(func(v Value) bool { return v.Kind == KindList }),
		"map?":     typePredicate(func(v Value) bool { return v.Kind == KindMap }),
		"fn?":      typePredicate(func(v Value) bool { return v.IsCallable() || v.Kind == KindMacro }),
		"coll?": typePredicate(func(v Value) bool {
			return v.Kind == KindList || v.Kind == KindVector || v.Kind == KindMap
		}),

		"count":   nativeCount,
		"first":   nativeFirst,
		"rest":    nativeRest,
		"cons":    nativeCons,
		"conj":    nativeConj,
		"assoc":   nativeAssoc,
		"dissoc":  nativeDissoc,
		"get":     nativeGet,
		"seq":     nativeSeq,
		"nth":     nativeNth,
		"take":    nativeTake,
		"drop":    nativeDrop,
		"concat":  nativeConcat,
		"into":    nativeInto,
		"zipmap":  nativeZipmap,
		"keys":    nativeKeys,
		"vals":    nativeVals,

		"str": nativeStr,

		"map":    nativeMap,
		"filter": nativeFilter,
		"reduce": nativeReduce,
		"apply":  nativeApply,

		"eval":           nativeEval(env),
		"type":           nativeType,
		"macroexpand-1":  nativeMacroexpand1(env),
		"macroexpand":    nativeMacroexpand(env),

		"inc":    nativeInc,
		"dec":    nativeDec,
		"min":    nativeMin,
		"max":    nativeMax,
		"repeat": nativeRepeat,
	}
}

func wrongType(op string, v Value) error {
	return evalError("%s expects all arguments to be numbers", op).WithValue(v)
}

func requireNumbers(op string, args []Value) ([]float64, error) {
	nums := make([]float64, len(args))

	for i, a := range args {
		if a.Kind != KindNumber {
			return nil, wrongType(op, a)
		}

		nums[i] = a.Number()
	}

	return nums, nil
}

func nativeAdd(args []Value) (Value, error) {
	nums, err := requireNumbers("+", args)
	if err != nil {
		return Nil, err
	}

	sum := 0.0
	for _, n := range nums {
		sum += n
	}

	return NewNumber(sum), nil
}

func nativeSub(args []Value) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("- requires at least 1 argument")
	}

	nums, err := requireNumbers("-", args)
	if err != nil {
		return Nil, err
	}

	if len(nums) == 1 {
		return NewNumber(-nums[0]), nil
	}

	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}

	return NewNumber(result), nil
}

func nativeMul(args []Value) (Value, error) {
	nums, err := requireNumbers("*", args)
	if err != nil {
		return Nil, err
	}

	result := 1.0
	for _, n := range nums {
		result *= n
	}

	return NewNumber(result), nil
}

func nativeDiv(args []Value) (Value, error) {
	if len(args) == 0 {
		return Nil, evalError("/ requires at least 1 argument")
	}

	nums, err := requireNumbers("/", args)
	if err != nil {
		return Nil, err
	}

	if len(nums) == 1 {
		if nums[0] == 0 {
			return Nil, evalError("/ division by zero")
		}

		return NewNumber(1 / nums[0]), nil
	}

	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return Nil, evalError("/ division by zero")
		}

		result /= n
	}

	return NewNumber(result), nil
}

func nativeCompare(op string, rel func(a, b float64) bool) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) < 2 {
			return Nil, evalError("%s requires at least 2 arguments", op)
		}

		nums, err := requireNumbers(op, args)
		if err != nil {
			return Nil, err
		}

		for i := 0; i+1 < len(nums); i++ {
			if !rel(nums[i], nums[i+1]) {
				return False, nil
			}
		}

		return True, nil
	}
}

func nativeEquals(args []Value) (Value, error) {
	if len(args) < 2 {
		return Nil, evalError("= requires at least 2 arguments")
	}

	for i := 0; i+1 < len(args); i++ {
		if !Equal(args[i], args[i+1]) {
			return False, nil
		}
	}

	return True, nil
}

func typePredicate(pred func(Value) bool) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, evalError("predicate expects exactly 1 argument, got %d", len(args))
		}

		return NewBoolean(pred(args[0])), nil
	}
}

func nativeNot(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("not expects exactly 1 argument, got %d", len(args))
	}

	return NewBoolean(!args[0].IsTruthy()), nil
}

func nativeCount(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("count expects exactly 1 argument, got %d", len(args))
	}

	v := args[0]

	switch v.Kind {
	case KindList, KindVector:
		return NewNumber(float64(len(v.Items()))), nil
	case KindMap:
		return NewNumber(float64(len(v.Entries()))), nil
	default:
		return Nil, evalError("count expects a list, vector, or map, got %s", v.Kind).WithValue(v)
	}
}

func nativeFirst(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("first expects exactly 1 argument, got %d", len(args))
	}

	v := args[0]

	switch v.Kind {
	case KindList, KindVector:
		items := v.Items()
		if len(items) == 0 {
			return Nil, nil
		}

		return items[0], nil
	case KindMap:
		entries := v.Entries()
		if len(entries) == 0 {
			return Nil, nil
		}

		return NewVector(entries[0].Key, entries[0].Val), nil
	default:
		return Nil, evalError("first expects a list, vector, or map, got %s", v.Kind).WithValue(v)
	}
}

func nativeRest(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("rest expects exactly 1 argument, got %d", len(args))
	}

	v := args[0]

	switch v.Kind {
	case KindList, KindVector:
		items := v.Items()
		if len(items) <= 1 {
			return v.withItems(nil), nil
		}

		return v.withItems(cloneValues(items[1:])), nil
	case KindMap:
		entries := v.Entries()
		if len(entries) <= 1 {
			return v.withEntries(nil), nil
		}

		return v.withEntries(cloneEntries(entries[1:])), nil
	default:
		return Nil, evalError("rest expects a list, vector, or map, got %s", v.Kind).WithValue(v)
	}
}

func nativeCons(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("cons expects exactly 2 arguments, got %d", len(args))
	}

	x, coll := args[0], args[1]

	switch coll.Kind {
	case KindList:
		return NewList(append([]Value{x}, coll.Items()...)...), nil
	case KindVector:
		return NewVector(append([]Value{x}, coll.Items()...)...), nil
	default:
		return Nil, evalError("cons expects a list or vector, got %s", coll.Kind).WithValue(coll)
	}
}

func nativeConj(args []Value) (Value, error) {
	if len(args) < 1 {
		return Nil, evalError("conj expects at least 1 argument")
	}

	coll := args[0]
	rest := args[1:]

	switch coll.Kind {
	case KindVector:
		return NewVector(append(cloneValues(coll.Items()), rest...)...), nil
	case KindList:
		items := cloneValues(coll.Items())
		for _, x := range rest {
			items = append([]Value{x}, items...)
		}

		return NewList(items...), nil
	case KindMap:
		entries := cloneEntries(coll.Entries())

		for _, pair := range rest {
			if pair.Kind != KindVector || len(pair.Items()) != 2 {
				return Nil, evalError("conj on a map requires [k v] pair arguments").WithValue(pair)
			}

			entries = mapAssoc(entries, pair.Items()[0], pair.Items()[1])
		}

		return coll.withEntries(entries), nil
	default:
		return Nil, evalError("conj expects a list, vector, or map, got %s", coll.Kind).WithValue(coll)
	}
}

func nativeAssoc(args []Value) (Value, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return Nil, evalError("assoc expects a collection and an even number of key/value arguments")
	}

	coll := args[0]
	pairs := args[1:]

	switch coll.Kind {
	case KindMap:
		entries := cloneEntries(coll.Entries())

		for i := 0; i < len(pairs); i += 2 {
			entries = mapAssoc(entries, pairs[i], pairs[i+1])
		}

		return coll.withEntries(entries), nil
	case KindVector:
		items := cloneValues(coll.Items())

		for i := 0; i < len(pairs); i += 2 {
			key := pairs[i]
			if key.Kind != KindNumber {
				return Nil, evalError("assoc on a vector requires numeric keys, got %s", key.Kind).WithValue(key)
			}

			idx := int(key.Number())
			if idx < 0 || idx > len(items) {
				return Nil, evalError("assoc index %d is out of bounds for vector of length %d", idx, len(items))
			}

			if idx == len(items) {
				items = append(items, pairs[i+1])
			} else {
				items[idx] = pairs[i+1]
			}
		}

		return coll.withItems(items), nil
	default:
		return Nil, evalError("assoc is not supported for %s", coll.Kind).WithValue(coll)
	}
}

func nativeDissoc(args []Value) (Value, error) {
	if len(args) < 1 {
		return Nil, evalError("dissoc expects at least 1 argument")
	}

	coll := args[0]
	keys := args[1:]

	switch coll.Kind {
	case KindMap:
		entries := cloneEntries(coll.Entries())

		for _, k := range keys {
			entries = mapDissoc(entries, k)
		}

		return coll.withEntries(entries), nil
	case KindVector:
		items := cloneValues(coll.Items())

		for _, k := range keys {
			if k.Kind != KindNumber {
				return Nil, evalError("dissoc on a vector requires numeric keys, got %s", k.Kind).WithValue(k)
			}

			idx := int(k.Number())
			if idx < 0 || idx >= len(items) {
				return Nil, evalError("dissoc index %d is out of bounds for vector of length %d", idx, len(items))
			}

			items = append(items[:idx], items[idx+1:]...)
		}

		return coll.withItems(items), nil
	default:
		return Nil, evalError("dissoc is not supported for %s", coll.Kind).WithValue(coll)
	}
}

func nativeGet(args []Value) (Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return Nil, evalError("get expects 2 or 3 arguments, got %d", len(args))
	}

	target, key := args[0], args[1]

	def := Nil
	if len(args) == 3 {
		def = args[2]
	}

	switch target.Kind {
	case KindMap:
		if v, ok := mapGet(target.Entries(), key); ok {
			return v, nil
		}

		return def, nil
	case KindVector:
		if key.Kind != KindNumber {
			return def, nil
		}

		idx := int(key.Number())
		items := target.Items()

		if idx < 0 || idx >= len(items) {
			return def, nil
		}

		return items[idx], nil
	default:
		return def, nil
	}
}

func nativeSeq(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("seq expects exactly 1 argument, got %d", len(args))
	}

	v := args[0]

	switch v.Kind {
	case KindNil:
		return Nil, nil
	case KindList, KindVector:
		if len(v.Items()) == 0 {
			return Nil, nil
		}

		return NewList(v.Items()...), nil
	case KindMap:
		entries := v.Entries()
		if len(entries) == 0 {
			return Nil, nil
		}

		pairs := make([]Value, len(entries))
		for i, e := range entries {
			pairs[i] = NewVector(e.Key, e.Val)
		}

		return NewList(pairs...), nil
	default:
		return Nil, evalError("seq expects a list, vector, or map, got %s", v.Kind).WithValue(v)
	}
}

func nativeNth(args []Value) (Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return Nil, evalError("nth expects 2 or 3 arguments, got %d", len(args))
	}

	coll, idxVal := args[0], args[1]

	if coll.Kind != KindList && coll.Kind != KindVector {
		return Nil, evalError("nth expects a list or vector, got %s", coll.Kind).WithValue(coll)
	}

	if idxVal.Kind != KindNumber {
		return Nil, evalError("nth index must be a number, got %s", idxVal.Kind).WithValue(idxVal)
	}

	items := coll.Items()
	idx := int(idxVal.Number())

	if idx < 0 || idx >= len(items) {
		if len(args) == 3 {
			return args[2], nil
		}

		return Nil, evalError("nth index %d is out of bounds for collection of length %d", idx, len(items))
	}

	return items[idx], nil
}

func nativeTake(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("take expects exactly 2 arguments, got %d", len(args))
	}

	n, coll := args[0], args[1]

	if n.Kind != KindNumber {
		return Nil, evalError("take count must be a number, got %s", n.Kind).WithValue(n)
	}

	if coll.Kind != KindList && coll.Kind != KindVector {
		return Nil, evalError("take expects a list or vector, got %s", coll.Kind).WithValue(coll)
	}

	items := coll.Items()
	count := int(n.Number())

	if count < 0 {
		count = 0
	}

	if count > len(items) {
		count = len(items)
	}

	return NewList(items[:count]...), nil
}

func nativeDrop(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("drop expects exactly 2 arguments, got %d", len(args))
	}

	n, coll := args[0], args[1]

	if n.Kind != KindNumber {
		return Nil, evalError("drop count must be a number, got %s", n.Kind).WithValue(n)
	}

	if coll.Kind != KindList && coll.Kind != KindVector {
		return Nil, evalError("drop expects a list or vector, got %s", coll.Kind).WithValue(coll)
	}

	items := coll.Items()
	count := int(n.Number())

	if count < 0 {
		count = 0
	}

	if count > len(items) {
		count = len(items)
	}

	return NewList(items[count:]...), nil
}

// flattenForConcat converts one concat argument into a flat []Value,
// flattening Map entries to [k v] 2-Vectors.
func flattenForConcat(v Value) ([]Value, error) {
	switch v.Kind {
	case KindList, KindVector:
		return v.Items(), nil
	case KindMap:
		entries := v.Entries()
		out := make([]Value, len(entries))

		for i, e := range entries {
			out[i] = NewVector(e.Key, e.Val)
		}

		return out, nil
	default:
		return nil, evalError("concat expects lists, vectors, or maps, got %s", v.Kind).WithValue(v)
	}
}

func nativeConcat(args []Value) (Value, error) {
	var out []Value

	for _, a := range args {
		items, err := flattenForConcat(a)
		if err != nil {
			return Nil, err
		}

		out = append(out, items...)
	}

	return NewList(out...), nil
}

func nativeInto(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("into expects exactly 2 arguments, got %d", len(args))
	}

	to, from := args[0], args[1]

	items, err := flattenForConcat(from)
	if err != nil {
		return Nil, err
	}

	switch to.Kind {
	case KindVector:
		return NewVector(append(cloneValues(to.Items()), items...)...), nil
	case KindList:
		result := cloneValues(to.Items())
		for _, x := range items {
			result = append([]Value{x}, result...)
		}

		return NewList(result...), nil
	case KindMap:
		entries := cloneEntries(to.Entries())

		for _, pair := range items {
			if pair.Kind != KindVector || len(pair.Items()) != 2 {
				return Nil, evalError("into a map requires [k v] pair elements").WithValue(pair)
			}

			entries = mapAssoc(entries, pair.Items()[0], pair.Items()[1])
		}

		return to.withEntries(entries), nil
	default:
		return Nil, evalError("into expects a list, vector, or map destination, got %s", to.Kind).WithValue(to)
	}
}

func nativeZipmap(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("zipmap expects exactly 2 arguments, got %d", len(args))
	}

	ks, vs := args[0], args[1]

	if ks.Kind != KindList && ks.Kind != KindVector {
		return Nil, evalError("zipmap expects a list or vector of keys, got %s", ks.Kind).WithValue(ks)
	}

	if vs.Kind != KindList && vs.Kind != KindVector {
		return Nil, evalError("zipmap expects a list or vector of values, got %s", vs.Kind).WithValue(vs)
	}

	kItems, vItems := ks.Items(), vs.Items()

	n := len(kItems)
	if len(vItems) < n {
		n = len(vItems)
	}

	entries := make([]MapEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = MapEntry{Key: kItems[i], Val: vItems[i]}
	}

	return NewMap(entries...), nil
}

func nativeKeys(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindMap {
		return Nil, evalError("keys expects exactly 1 map argument")
	}

	entries := args[0].Entries()
	out := make([]Value, len(entries))

	for i, e := range entries {
		out[i] = e.Key
	}

	return NewVector(out...), nil
}

func nativeVals(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindMap {
		return Nil, evalError("vals expects exactly 1 map argument")
	}

	entries := args[0].Entries()
	out := make([]Value, len(entries))

	for i, e := range entries {
		out[i] = e.Val
	}

	return NewVector(out...), nil
}

func nativeStr(args []Value) (Value, error) {
	var sb strings.Builder

	for _, a := range args {
		sb.WriteString(ValueToString(a))
	}

	return NewString(sb.String()), nil
}

func nativePrintln(output func(string)) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		parts := make([]string, len(args))

		for i, a := range args {
			parts[i] = ValueToString(a)
		}

		output(strings.Join(parts, " "))

		return Nil, nil
	}
}

// seqForHigherOrder returns a coll's elements (Map as [k v] 2-Vectors) and
// a constructor that rebuilds the same "shape" from a new element slice,
// per map/filter's shared "Vector input -> Vector output, else List"
// policy (spec.md §4.6).
func seqForHigherOrder(coll Value) ([]Value, func([]Value) Value, error) {
	switch coll.Kind {
	case KindVector:
		return coll.Items(), func(items []Value) Value { return NewVector(items...) }, nil
	case KindList:
		return coll.Items(), func(items []Value) Value { return NewList(items...) }, nil
	case KindMap:
		entries := coll.Entries()
		pairs := make([]Value, len(entries))

		for i, e := range entries {
			pairs[i] = NewVector(e.Key, e.Val)
		}

		return pairs, func(items []Value) Value { return NewList(items...) }, nil
	default:
		return nil, nil, evalError("expects a list, vector, or map, got %s", coll.Kind).WithValue(coll)
	}
}

func nativeMap(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("map expects exactly 2 arguments, got %d", len(args))
	}

	f, coll := args[0], args[1]

	items, build, err := seqForHigherOrder(coll)
	if err != nil {
		return Nil, err
	}

	out := make([]Value, len(items))

	for i, item := range items {
		v, err := Apply(f, []Value{item})
		if err != nil {
			return Nil, err
		}

		out[i] = v
	}

	return build(out), nil
}

func nativeFilter(args []Value) (Value, error) {
	if len(args) != 2 {
		return Nil, evalError("filter expects exactly 2 arguments, got %d", len(args))
	}

	f, coll := args[0], args[1]

	items, build, err := seqForHigherOrder(coll)
	if err != nil {
		return Nil, err
	}

	var out []Value

	for _, item := range items {
		v, err := Apply(f, []Value{item})
		if err != nil {
			return Nil, err
		}

		if v.IsTruthy() {
			out = append(out, item)
		}
	}

	return build(out), nil
}

func nativeReduce(args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Nil, evalError("reduce expects 2 or 3 arguments, got %d", len(args))
	}

	f := args[0]

	var coll Value

	var acc Value

	haveInit := len(args) == 3

	if haveInit {
		acc = args[1]
		coll = args[2]
	} else {
		coll = args[1]
	}

	items, _, err := seqForHigherOrder(coll)
	if err != nil {
		return Nil, err
	}

	if !haveInit {
		if len(items) == 0 {
			return Nil, evalError("reduce of empty collection with no initial value")
		}

		acc = items[0]
		items = items[1:]
	}

	for _, item := range items {
		acc, err = Apply(f, []Value{acc, item})
		if err != nil {
			return Nil, err
		}
	}

	return acc, nil
}

func nativeApply(args []Value) (Value, error) {
	if len(args) < 2 {
		return Nil, evalError("apply expects at least 2 arguments, got %d", len(args))
	}

	f := args[0]
	fixed := args[1 : len(args)-1]
	lastColl := args[len(args)-1]

	items, _, err := seqForHigherOrder(lastColl)
	if err != nil {
		return Nil, err
	}

	callArgs := append(append([]Value{}, fixed...), items...)

	return Apply(f, callArgs)
}

func nativeEval(env *Env) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, evalError("eval expects exactly 1 argument, got %d", len(args))
		}

		return Eval(args[0], RootEnv(env))
	}
}

func nativeType(args []Value) (Value, error) {
	if len(args) != 1 {
		return Nil, evalError("type expects exactly 1 argument, got %d", len(args))
	}

	v := args[0]

	switch v.Kind {
	case KindFunction, KindNativeFunction:
		return NewKeyword(":function"), nil
	default:
		return NewKeyword(":" + v.Kind.String()), nil
	}
}

func nativeMacroexpand1(env *Env) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, evalError("macroexpand-1 expects exactly 1 argument, got %d", len(args))
		}

		return MacroExpand1(args[0], env)
	}
}

func nativeMacroexpand(env *Env) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, evalError("macroexpand expects exactly 1 argument, got %d", len(args))
		}

		return MacroExpand(args[0], env)
	}
}

func nativeInc(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindNumber {
		return Nil, evalError("inc expects exactly 1 number argument")
	}

	return NewNumber(args[0].Number() + 1), nil
}

func nativeDec(args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindNumber {
		return Nil, evalError("dec expects exactly 1 number argument")
	}

	return NewNumber(args[0].Number() - 1), nil
}

func nativeMin(args []Value) (Value, error) {
	nums, err := requireNumbers("min", args)
	if err != nil {
		return Nil, err
	}

	if len(nums) == 0 {
		return Nil, evalError("min requires at least 1 argument")
	}

	best := nums[0]
	for _, n := range nums[1:] {
		if n < best {
			best = n
		}
	}

	return NewNumber(best), nil
}

func nativeMax(args []Value) (Value, error) {
	nums, err := requireNumbers("max", args)
	if err != nil {
		return Nil, err
	}

	if len(nums) == 0 {
		return Nil, evalError("max requires at least 1 argument")
	}

	best := nums[0]
	for _, n := range nums[1:] {
		if n > best {
			best = n
		}
	}

	return NewNumber(best), nil
}

func nativeRepeat(args []Value) (Value, error) {
	if len(args) != 2 || args[0].Kind != KindNumber {
		return Nil, evalError("repeat expects a numeric count and a value")
	}

	n := int(args[0].Number())
	if n < 0 {
		n = 0
	}

	out := make([]Value, n)
	for i := range out {
		out[i] = args[1]
	}

	return NewList(out...), nil
}
