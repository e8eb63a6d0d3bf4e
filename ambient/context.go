// Package ambient builds the host-provided binding record the driver
// passes into the evaluator: namespace objects a
// running script can reach at the top level even though nothing in its own
// lexical scope declared them.
package ambient

import "github.com/evalscript/evalscript/evaluator"

// NewContext returns the default ambient record: Math, JSON, and console
// namespaces plus a bare print function, the host standard-library
// objects typical ambient content includes.
func NewContext() *evaluator.ObjectValue {
	ctx := evaluator.NewObject(nil)
	ctx.DefineOwn("Math", dataProp(newMath()))
	ctx.DefineOwn("JSON", dataProp(newJSON()))
	console := newConsole()
	ctx.DefineOwn("console", dataProp(console))
	ctx.DefineOwn("print", dataProp(console.Get("log", nil)))
	return ctx
}

func dataProp(v evaluator.Value) *evaluator.PropertyDescriptor {
	return &evaluator.PropertyDescriptor{Value: v, Enumerable: true, Writable: true, Configurable: true}
}

func hostFn(name string, fn func(args []evaluator.Value) (evaluator.Value, evaluator.Value)) *evaluator.FunctionValue {
	return &evaluator.FunctionValue{
		Name: name,
		Kind: evaluator.KindHost,
		Host: func(_ evaluator.Value, args []evaluator.Value) (evaluator.Value, evaluator.Value) {
			return fn(args)
		},
	}
}
