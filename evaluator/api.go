package evaluator

// This file exposes the small set of evaluator internals that host-provided
// ambient builtins (the Math/JSON namespace objects, see the ambient
// package) need in order to read and coerce values without reaching into
// unexported helpers meant for the node evaluator's own use.

// ToNumber coerces v using the same operator-table rule applied to `+ - *`
// and friends.
func ToNumber(v Value) float64 { return toNumber(v) }

// ToStringValue coerces v to its string representation (used by string
// concatenation and template interpolation).
func ToStringValue(v Value) string { return toStringValue(v) }

// ToBoolean applies the truthiness rule used by `if`/`while`/`&&`/`||`.
func ToBoolean(v Value) bool { return toBoolean(v) }

// NewError builds a thrown error object of the given name (TypeError,
// RangeError, SyntaxError, ...), the same shape every built-in fault uses,
// so a host function can raise one a user `catch` clause can inspect.
func NewError(name, format string, args ...interface{}) *ObjectValue {
	return newError(name, format, args...)
}
