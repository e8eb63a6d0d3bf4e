package evaluator

import "strings"

// installArrayMethods populates arrayProto with the host-implemented
// array methods as ordinary non-enumerable data properties, so method
// lookup and for-in enumeration both go through the descriptor model.
func installArrayMethods(e *Evaluator, proto *ObjectValue) {
	def := func(name string, fn func(this Value, args []Value) (Value, Value)) {
		proto.DefineOwn(name, &PropertyDescriptor{
			Value:        &FunctionValue{Name: name, Kind: KindHost, Host: fn},
			Writable:     true,
			Configurable: true,
		})
	}

	def("push", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		arr.Elements = append(arr.Elements, args...)
		return NumberValue(float64(len(arr.Elements))), nil
	})
	def("pop", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(arr.Elements) == 0 {
			return Undefined, nil
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	})
	def("shift", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(arr.Elements) == 0 {
			return Undefined, nil
		}
		first := arr.Elements[0]
		arr.Elements = arr.Elements[1:]
		return first, nil
	})
	def("unshift", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		arr.Elements = append(append([]Value{}, args...), arr.Elements...)
		return NumberValue(float64(len(arr.Elements))), nil
	})
	def("join", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		sep := ","
		if len(args) > 0 {
			sep = toStringValue(args[0])
		}
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			if IsNull(el) || IsUndefined(el) {
				parts[i] = ""
				continue
			}
			parts[i] = toStringValue(el)
		}
		return StringValue(strings.Join(parts, sep)), nil
	})
	def("slice", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		start, end := sliceBounds(args, len(arr.Elements))
		if start >= end {
			return NewArray(), nil
		}
		out := append([]Value{}, arr.Elements[start:end]...)
		return &ArrayValue{Elements: out}, nil
	})
	def("concat", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		out := append([]Value{}, arr.Elements...)
		for _, a := range args {
			if other, ok := a.(*ArrayValue); ok {
				out = append(out, other.Elements...)
			} else {
				out = append(out, a)
			}
		}
		return &ArrayValue{Elements: out}, nil
	})
	def("reverse", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		for i, j := 0, len(arr.Elements)-1; i < j; i, j = i+1, j-1 {
			arr.Elements[i], arr.Elements[j] = arr.Elements[j], arr.Elements[i]
		}
		return arr, nil
	})
	def("indexOf", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return NumberValue(-1), nil
		}
		for i, el := range arr.Elements {
			if strictEquals(el, args[0]) {
				return NumberValue(float64(i)), nil
			}
		}
		return NumberValue(-1), nil
	})
	def("includes", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return BooleanValue(false), nil
		}
		for _, el := range arr.Elements {
			if strictEquals(el, args[0]) {
				return BooleanValue(true), nil
			}
		}
		return BooleanValue(false), nil
	})

	callCb := func(cb Value, args []Value) (Value, Value) {
		fn, ok := cb.(*FunctionValue)
		if !ok {
			return nil, newError("TypeError", "callback is not a function")
		}
		return e.callValue(fn, Undefined, args)
	}

	def("forEach", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return Undefined, nil
		}
		for i, el := range arr.Elements {
			if _, thrown := callCb(args[0], []Value{el, NumberValue(float64(i)), arr}); thrown != nil {
				return nil, thrown
			}
		}
		return Undefined, nil
	})
	def("map", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return NewArray(), nil
		}
		out := make([]Value, len(arr.Elements))
		for i, el := range arr.Elements {
			v, thrown := callCb(args[0], []Value{el, NumberValue(float64(i)), arr})
			if thrown != nil {
				return nil, thrown
			}
			out[i] = v
		}
		return &ArrayValue{Elements: out}, nil
	})
	def("filter", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return NewArray(), nil
		}
		var out []Value
		for i, el := range arr.Elements {
			v, thrown := callCb(args[0], []Value{el, NumberValue(float64(i)), arr})
			if thrown != nil {
				return nil, thrown
			}
			if toBoolean(v) {
				out = append(out, el)
			}
		}
		return &ArrayValue{Elements: out}, nil
	})
	def("find", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return Undefined, nil
		}
		for i, el := range arr.Elements {
			v, thrown := callCb(args[0], []Value{el, NumberValue(float64(i)), arr})
			if thrown != nil {
				return nil, thrown
			}
			if toBoolean(v) {
				return el, nil
			}
		}
		return Undefined, nil
	})
	def("reduce", func(this Value, args []Value) (Value, Value) {
		arr := this.(*ArrayValue)
		if len(args) == 0 {
			return nil, newError("TypeError", "reduce requires a callback")
		}
		i := 0
		var acc Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(arr.Elements) == 0 {
				return nil, newError("TypeError", "reduce of empty array with no initial value")
			}
			acc = arr.Elements[0]
			i = 1
		}
		for ; i < len(arr.Elements); i++ {
			v, thrown := callCb(args[0], []Value{acc, arr.Elements[i], NumberValue(float64(i)), arr})
			if thrown != nil {
				return nil, thrown
			}
			acc = v
		}
		return acc, nil
	})
}

func sliceBounds(args []Value, length int) (int, int) {
	start, end := 0, length
	if len(args) > 0 {
		start = normalizeIndex(int(toNumber(args[0])), length)
	}
	if len(args) > 1 && !IsUndefined(args[1]) {
		end = normalizeIndex(int(toNumber(args[1])), length)
	}
	return start, end
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
