package lang

import "strings"

// ToGo converts v into native Go data, per spec.md §9 and SPEC_FULL.md
// §4.11, grounded on the teacher's marshal.go Value<->host-map bridge
// (generalized here from "CLI flag values" to the full Value union).
//
//   Nil            -> nil
//   Boolean        -> bool
//   Number         -> float64
//   String         -> string
//   Keyword        -> string, leading ':' stripped
//   Symbol         -> string
//   List / Vector  -> []any
//   Map            -> map[string]any (keys must be Keyword/String/Symbol/Number)
//   Function/Native -> func(...any) (any, error)
//   Macro          -> always ConversionError
func ToGo(v Value) (any, error) {
	switch v.Kind {
	case KindNil:
		return nil, nil
	case KindBoolean:
		return v.Bool(), nil
	case KindNumber:
		return v.Number(), nil
	case KindString:
		return v.Str(), nil
	case KindKeyword:
		return strings.TrimPrefix(v.Str(), ":"), nil
	case KindSymbol:
		return v.Str(), nil
	case KindList, KindVector:
		out := make([]any, len(v.Items()))

		for i, item := range v.Items() {
			x, err := ToGo(item)
			if err != nil {
				return nil, err
			}

			out[i] = x
		}

		return out, nil
	case KindMap:
		out := make(map[string]any, len(v.Entries()))

		for _, e := range v.Entries() {
			key, err := scalarMapKey(e.Key)
			if err != nil {
				return nil, err
			}

			val, err := ToGo(e.Val)
			if err != nil {
				return nil, err
			}

			out[key] = val
		}

		return out, nil
	case KindFunction, KindNativeFunction:
		fn := v

		return func(args ...any) (any, error) {
			vArgs := make([]Value, len(args))

			for i, a := range args {
				vv, err := FromGo(a)
				if err != nil {
					return nil, err
				}

				vArgs[i] = vv
			}

			result, err := Apply(fn, vArgs)
			if err != nil {
				return nil, err
			}

			return ToGo(result)
		}, nil
	case KindMacro:
		return nil, conversionError("macros cannot cross the host boundary").WithValue(v)
	default:
		return nil, conversionError("cannot convert value of kind %s to a Go value", v.Kind).WithValue(v)
	}
}

// scalarMapKey converts a Map key to the string key of a host
// map[string]any. Only Keyword, String, Symbol, and Number keys round-trip;
// anything else (List/Vector/Map keys) raises ConversionError, per
// spec.md §9's explicit carve-out.
func scalarMapKey(key Value) (string, error) {
	switch key.Kind {
	case KindKeyword:
		return strings.TrimPrefix(key.Str(), ":"), nil
	case KindString, KindSymbol:
		return key.Str(), nil
	case KindNumber:
		return PrintString(key), nil
	default:
		return "", conversionError(
			"map key of kind %s cannot round-trip through a string-keyed host record", key.Kind,
		).WithValue(key)
	}
}

// FromGo is the inverse of ToGo: it converts native Go data produced by
// ToGo (plus the map[string]any/[]any/[]string literals host callers
// commonly construct by hand) into a Value.
func FromGo(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Nil, nil
	case bool:
		return NewBoolean(t), nil
	case float64:
		return NewNumber(t), nil
	case float32:
		return NewNumber(float64(t)), nil
	case int:
		return NewNumber(float64(t)), nil
	case int64:
		return NewNumber(float64(t)), nil
	case string:
		return NewString(t), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = NewString(s)
		}

		return NewVector(items...), nil
	case []any:
		items := make([]Value, len(t))

		for i, e := range t {
			v, err := FromGo(e)
			if err != nil {
				return Nil, err
			}

			items[i] = v
		}

		return NewVector(items...), nil
	case map[string]any:
		entries := make([]MapEntry, 0, len(t))

		for k, v := range t {
			val, err := FromGo(v)
			if err != nil {
				return Nil, err
			}

			entries = append(entries, MapEntry{Key: NewKeyword(":" + k), Val: val})
		}

		return NewMap(entries...), nil
	case func(...any) (any, error):
		return NewNativeFunction("host", func(args []Value) (Value, error) {
			goArgs := make([]any, len(args))
			for i, a := range args {
				x, err := ToGo(a)
				if err != nil {
					return Nil, err
				}
				goArgs[i] = x
			}
			result, err := t(goArgs...)
			if err != nil {
				return Nil, err
			}
			return FromGo(result)
		}), nil
	default:
		return Nil, conversionError("cannot convert Go value of type %T to a language Value", x)
	}
}
