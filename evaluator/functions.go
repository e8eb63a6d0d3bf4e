package evaluator

import "github.com/evalscript/evalscript/ast"

// makeFunctionValue builds a Callable from a function/arrow literal node
// (capture the defining environment and, for arrows, the
// active context record).
func (e *Evaluator) makeFunctionValue(lit *ast.FunctionLiteral, closure *Environment) *FunctionValue {
	kind := KindFunction
	var lex *ContextRecord
	if lit.Arrow {
		kind = KindArrow
		lex = e.currentContext()
	}
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	fn := &FunctionValue{
		Name:           name,
		Kind:           kind,
		Params:         lit.Params,
		Body:           lit.Body,
		ExprBody:       lit.ExprBody,
		Closure:        closure,
		LexicalContext: lex,
	}
	if !lit.Arrow {
		fn.Prototype = NewObject(e.objectProto)
		fn.Prototype.DefineOwn("constructor", &PropertyDescriptor{Value: fn, Writable: true, Configurable: true})
	}
	return fn
}

// callValue adapts callFunction to the (Value, Value) shape ObjectValue's
// Get/Set callbacks expect: (result, thrown). Either thrown is nil, or the
// call threw and result is meaningless.
func (e *Evaluator) callValue(fn *FunctionValue, this Value, args []Value) (Value, Value) {
	c := e.callFunction(fn, this, args)
	if c.Kind == Throw {
		return Undefined, c.Value
	}
	return c.Value, nil
}

// callFunction invokes fn with the given receiver and arguments (push
// 1-5: fresh environment, parameter binding, receiver/context push, body
// execution, completion unwrapping).
func (e *Evaluator) callFunction(fn *FunctionValue, this Value, args []Value) Completion {
	if fn.Host != nil {
		v, thrown := fn.Host(this, args)
		if thrown != nil {
			return throwValue(thrown)
		}
		return normal(v)
	}

	env := NewChild(fn.Closure)
	if c := e.bindParams(fn.Params, args, env); c.isAbrupt() {
		return c
	}

	if fn.Kind == KindArrow {
		e.pushContext(fn.LexicalContext)
	} else {
		e.pushContext(&ContextRecord{This: this, Ambient: e.currentContext().Ambient})
	}
	defer e.popContext()

	if fn.ExprBody != nil {
		v, c := e.evalExpression(fn.ExprBody, env)
		if c.isAbrupt() {
			return c
		}
		return normal(v)
	}

	if fn.Body == nil {
		return normal(Undefined)
	}

	e.hoistBlock(fn.Body.Statements, env)
	c := e.evalStatements(fn.Body.Statements, env)
	switch c.Kind {
	case Return:
		return normal(c.Value)
	case Throw:
		return c
	default:
		return normal(Undefined)
	}
}

// bindParams installs each parameter's cell in env: defaults for missing
// trailing arguments, the rest parameter collecting whatever remains.
func (e *Evaluator) bindParams(params []*ast.Param, args []Value, env *Environment) Completion {
	for i, p := range params {
		v := resolvedVariable(p.Name)
		if p.Rest {
			rest := []Value{}
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			env.Declare(v, NewArray(rest...))
			continue
		}
		var arg Value = Undefined
		if i < len(args) {
			arg = args[i]
		}
		if IsUndefined(arg) && p.Default != nil {
			val, c := e.evalExpression(p.Default, env)
			if c.isAbrupt() {
				return c
			}
			arg = val
		}
		env.Declare(v, arg)
	}
	return normal(Undefined)
}
