package ambient

import (
	"math"
	"math/rand"

	"github.com/evalscript/evalscript/evaluator"
)

// newMath builds the ambient Math namespace object: one host function per
// builtin, registered into a single flat object.
func newMath() *evaluator.ObjectValue {
	m := evaluator.NewObject(nil)

	def := func(name string, fn func(args []evaluator.Value) (evaluator.Value, evaluator.Value)) {
		m.DefineOwn(name, dataProp(hostFn("Math."+name, fn)))
	}
	arg := func(args []evaluator.Value, i int) float64 {
		if i >= len(args) {
			return math.NaN()
		}
		return evaluator.ToNumber(args[i])
	}
	unary := func(name string, f func(float64) float64) {
		def(name, func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
			return evaluator.NumberValue(f(arg(args, 0))), nil
		})
	}

	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })

	def("pow", func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		return evaluator.NumberValue(math.Pow(arg(args, 0), arg(args, 1))), nil
	})
	def("atan2", func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		return evaluator.NumberValue(math.Atan2(arg(args, 0), arg(args, 1))), nil
	})
	def("max", func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		if len(args) == 0 {
			return evaluator.NumberValue(math.Inf(-1)), nil
		}
		best := evaluator.ToNumber(args[0])
		for _, a := range args[1:] {
			if n := evaluator.ToNumber(a); n > best || math.IsNaN(n) {
				best = n
			}
		}
		return evaluator.NumberValue(best), nil
	})
	def("min", func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		if len(args) == 0 {
			return evaluator.NumberValue(math.Inf(1)), nil
		}
		best := evaluator.ToNumber(args[0])
		for _, a := range args[1:] {
			if n := evaluator.ToNumber(a); n < best || math.IsNaN(n) {
				best = n
			}
		}
		return evaluator.NumberValue(best), nil
	})
	def("random", func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		return evaluator.NumberValue(rand.Float64()), nil
	})

	m.DefineOwn("PI", dataProp(evaluator.NumberValue(math.Pi)))
	m.DefineOwn("E", dataProp(evaluator.NumberValue(math.E)))
	m.DefineOwn("SQRT2", dataProp(evaluator.NumberValue(math.Sqrt2)))

	return m
}
