package evaluator

import "fmt"

// newError builds a thrown error object carrying name and message as own
// properties, the shape every built-in fault (reference, type, syntax) is
// reported in so user code can catch it like any other thrown value.
func newError(name, format string, args ...interface{}) *ObjectValue {
	o := NewObject(nil)
	o.ErrorName = name
	o.DefineOwn("name", &PropertyDescriptor{Value: StringValue(name), Enumerable: true, Writable: true, Configurable: true})
	o.DefineOwn("message", &PropertyDescriptor{Value: StringValue(fmt.Sprintf(format, args...)), Enumerable: true, Writable: true, Configurable: true})
	return o
}

func referenceError(format string, args ...interface{}) Completion {
	return throwValue(newError("ReferenceError", format, args...))
}

func typeError(format string, args ...interface{}) Completion {
	return throwValue(newError("TypeError", format, args...))
}

// unsupportedConstruct reports a node the parser accepts but that this
// evaluator declines to run (destructuring assignment targets, node kinds
// it has no case for), distinct from a TypeError raised by running user code.
func unsupportedConstruct(what string) Completion {
	return throwValue(newError("SyntaxError", "unsupported construct: %s", what))
}

// unsupported applies the SkipUnsupported knob: skipped constructs
// evaluate to undefined, otherwise the fault propagates like any other
// thrown error.
func (e *Evaluator) unsupported(what string) (Value, Completion) {
	if e.SkipUnsupported {
		return Undefined, normal(nil)
	}
	return nil, unsupportedConstruct(what)
}
