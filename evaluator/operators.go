package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// toNumber coerces v to the Number type per the operator tables.
func toNumber(v Value) float64 {
	switch n := v.(type) {
	case NumberValue:
		return float64(n)
	case BooleanValue:
		if n {
			return 1
		}
		return 0
	case StringValue:
		s := strings.TrimSpace(string(n))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case *ArrayValue:
		if len(n.Elements) == 0 {
			return 0
		}
		if len(n.Elements) == 1 {
			return toNumber(n.Elements[0])
		}
		return math.NaN()
	default:
		if IsNull(v) {
			return 0
		}
		return math.NaN()
	}
}

// toStringValue coerces v to its string representation for `+`, template
// interpolation, property keys, and the host builtins.
func toStringValue(v Value) string {
	if IsUndefined(v) {
		return "undefined"
	}
	if IsNull(v) {
		return "null"
	}
	return v.String()
}

// toBoolean applies the truthiness rules used by `if`/`while`/`&&`/`||`/`!`.
func toBoolean(v Value) bool {
	switch n := v.(type) {
	case BooleanValue:
		return bool(n)
	case NumberValue:
		f := float64(n)
		return f != 0 && !math.IsNaN(f)
	case StringValue:
		return len(n) > 0
	default:
		if IsUndefined(v) || IsNull(v) {
			return false
		}
		return true
	}
}

func typeOf(v Value) string {
	switch v.(type) {
	case *FunctionValue, *ClassValue:
		return "function"
	default:
		return v.Type()
	}
}

// strictEquals implements `===`: same type and same value, with object
// identity for arrays/objects/functions.
func strictEquals(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && float64(av) == float64(bv)
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case BooleanValue:
		bv, ok := b.(BooleanValue)
		return ok && av == bv
	default:
		if IsNull(a) {
			return IsNull(b)
		}
		if IsUndefined(a) {
			return IsUndefined(b)
		}
		return a == b
	}
}

// looseEquals implements `==`, coercing across number/string/boolean before
// falling back to identity for objects.
func looseEquals(a, b Value) bool {
	if strictEquals(a, b) {
		return true
	}
	if (IsNull(a) || IsUndefined(a)) && (IsNull(b) || IsUndefined(b)) {
		return true
	}
	if IsNull(a) || IsUndefined(a) || IsNull(b) || IsUndefined(b) {
		return false
	}
	_, aNum := a.(NumberValue)
	_, bNum := b.(NumberValue)
	_, aStr := a.(StringValue)
	_, bStr := b.(StringValue)
	_, aBool := a.(BooleanValue)
	_, bBool := b.(BooleanValue)
	if aNum && bStr || aStr && bNum || aBool || bBool {
		return toNumber(a) == toNumber(b)
	}
	return false
}

// applyBinary evaluates a binary operator over already-evaluated operands;
// `&&`, `||`, and the comma operator short-circuit in expressions.go before
// ever calling this.
func applyBinary(op string, left, right Value) (Value, Completion) {
	switch op {
	case "+":
		if _, ok := left.(StringValue); ok {
			return StringValue(toStringValue(left) + toStringValue(right)), Completion{}
		}
		if _, ok := right.(StringValue); ok {
			return StringValue(toStringValue(left) + toStringValue(right)), Completion{}
		}
		return NumberValue(toNumber(left) + toNumber(right)), Completion{}
	case "-":
		return NumberValue(toNumber(left) - toNumber(right)), Completion{}
	case "*":
		return NumberValue(toNumber(left) * toNumber(right)), Completion{}
	case "/":
		return NumberValue(toNumber(left) / toNumber(right)), Completion{}
	case "%":
		return NumberValue(math.Mod(toNumber(left), toNumber(right))), Completion{}
	case "**":
		return NumberValue(math.Pow(toNumber(left), toNumber(right))), Completion{}
	case "==":
		return BooleanValue(looseEquals(left, right)), Completion{}
	case "!=":
		return BooleanValue(!looseEquals(left, right)), Completion{}
	case "===":
		return BooleanValue(strictEquals(left, right)), Completion{}
	case "!==":
		return BooleanValue(!strictEquals(left, right)), Completion{}
	case "<":
		return compare(left, right, func(a, b float64) bool { return a < b }, func(a, b string) bool { return a < b }), Completion{}
	case ">":
		return compare(left, right, func(a, b float64) bool { return a > b }, func(a, b string) bool { return a > b }), Completion{}
	case "<=":
		return compare(left, right, func(a, b float64) bool { return a <= b }, func(a, b string) bool { return a <= b }), Completion{}
	case ">=":
		return compare(left, right, func(a, b float64) bool { return a >= b }, func(a, b string) bool { return a >= b }), Completion{}
	case "in":
		obj, ok := right.(*ObjectValue)
		if !ok {
			return nil, typeError("cannot use 'in' operator on non-object")
		}
		desc, _ := obj.Lookup(toStringValue(left))
		return BooleanValue(desc != nil), Completion{}
	default:
		return nil, typeError("unsupported operator %q", op)
	}
}

func compare(left, right Value, numCmp func(a, b float64) bool, strCmp func(a, b string) bool) Value {
	ls, lok := left.(StringValue)
	rs, rok := right.(StringValue)
	if lok && rok {
		return BooleanValue(strCmp(string(ls), string(rs)))
	}
	ln, rn := toNumber(left), toNumber(right)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return BooleanValue(false)
	}
	return BooleanValue(numCmp(ln, rn))
}

// applyUnary evaluates `!`, unary `-`/`+`, and `typeof`.
func applyUnary(op string, v Value) Value {
	switch op {
	case "!":
		return BooleanValue(!toBoolean(v))
	case "-":
		return NumberValue(-toNumber(v))
	case "+":
		return NumberValue(toNumber(v))
	case "typeof":
		return StringValue(typeOf(v))
	default:
		return Undefined
	}
}
