package evaluator

import "strings"

// stringMethod resolves a method name against the primitive string value,
// returning a host FunctionValue bound to s via closure (strings have no
// shared prototype object in this value model, so methods are materialized
// per access instead of looked up on a String.prototype).
func stringMethod(s StringValue, name string) Value {
	str := string(s)
	host := func(fn func(args []Value) (Value, Value)) *FunctionValue {
		return &FunctionValue{Name: name, Kind: KindHost, Host: func(_ Value, args []Value) (Value, Value) {
			return fn(args)
		}}
	}
	switch name {
	case "charAt":
		return host(func(args []Value) (Value, Value) {
			i := argIndex(args, 0)
			runes := []rune(str)
			if i < 0 || i >= len(runes) {
				return StringValue(""), nil
			}
			return StringValue(string(runes[i])), nil
		})
	case "indexOf":
		return host(func(args []Value) (Value, Value) {
			if len(args) == 0 {
				return NumberValue(-1), nil
			}
			return NumberValue(float64(strings.Index(str, toStringValue(args[0])))), nil
		})
	case "includes":
		return host(func(args []Value) (Value, Value) {
			if len(args) == 0 {
				return BooleanValue(false), nil
			}
			return BooleanValue(strings.Contains(str, toStringValue(args[0]))), nil
		})
	case "slice":
		return host(func(args []Value) (Value, Value) {
			runes := []rune(str)
			start, end := sliceBounds(args, len(runes))
			if start >= end {
				return StringValue(""), nil
			}
			return StringValue(string(runes[start:end])), nil
		})
	case "split":
		return host(func(args []Value) (Value, Value) {
			if len(args) == 0 {
				return NewArray(StringValue(str)), nil
			}
			sep := toStringValue(args[0])
			var parts []string
			if sep == "" {
				for _, r := range str {
					parts = append(parts, string(r))
				}
			} else {
				parts = strings.Split(str, sep)
			}
			out := make([]Value, len(parts))
			for i, p := range parts {
				out[i] = StringValue(p)
			}
			return &ArrayValue{Elements: out}, nil
		})
	case "toUpperCase":
		return host(func(args []Value) (Value, Value) { return StringValue(strings.ToUpper(str)), nil })
	case "toLowerCase":
		return host(func(args []Value) (Value, Value) { return StringValue(strings.ToLower(str)), nil })
	case "trim":
		return host(func(args []Value) (Value, Value) { return StringValue(strings.TrimSpace(str)), nil })
	case "repeat":
		return host(func(args []Value) (Value, Value) {
			n := argIndex(args, 0)
			if n < 0 {
				return nil, newError("RangeError", "invalid count value")
			}
			return StringValue(strings.Repeat(str, n)), nil
		})
	case "replace":
		return host(func(args []Value) (Value, Value) {
			if len(args) < 2 {
				return StringValue(str), nil
			}
			return StringValue(strings.Replace(str, toStringValue(args[0]), toStringValue(args[1]), 1)), nil
		})
	case "startsWith":
		return host(func(args []Value) (Value, Value) {
			if len(args) == 0 {
				return BooleanValue(false), nil
			}
			return BooleanValue(strings.HasPrefix(str, toStringValue(args[0]))), nil
		})
	case "endsWith":
		return host(func(args []Value) (Value, Value) {
			if len(args) == 0 {
				return BooleanValue(false), nil
			}
			return BooleanValue(strings.HasSuffix(str, toStringValue(args[0]))), nil
		})
	case "concat":
		return host(func(args []Value) (Value, Value) {
			out := str
			for _, a := range args {
				out += toStringValue(a)
			}
			return StringValue(out), nil
		})
	default:
		return Undefined
	}
}

func argIndex(args []Value, i int) int {
	if i >= len(args) {
		return 0
	}
	return int(toNumber(args[i]))
}
