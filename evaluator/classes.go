package evaluator

import "github.com/evalscript/evalscript/ast"

// instanceField is a class field declared without `static`: its initializer
// runs against the freshly allocated instance before the constructor body,
// in declaration order, base class first.
type instanceField struct {
	Name string
	Init ast.Expression
	Env  *Environment
}

// evalClassLiteral builds a ClassValue from a class declaration or
// expression: resolve the parent, partition members into
// statics/prototype/constructor, wire the prototype chain.
func (e *Evaluator) evalClassLiteral(lit *ast.ClassLiteral, env *Environment) (Value, Completion) {
	var parent *ClassValue
	if lit.Parent != nil {
		pv, c := e.evalExpression(lit.Parent, env)
		if c.isAbrupt() {
			return nil, c
		}
		cv, ok := pv.(*ClassValue)
		if !ok {
			return nil, typeError("class extends value is not a constructor")
		}
		parent = cv
	}

	protoParent := e.objectProto
	if parent != nil {
		protoParent = parent.Prototype
	}
	proto := NewObject(protoParent)

	statics := NewObject(nil)
	if parent != nil {
		statics.Proto = parent.Statics
	}

	cls := &ClassValue{Prototype: proto, Statics: statics, Parent: parent}
	if lit.Name != nil {
		cls.Name = lit.Name.Name
	}
	proto.Class = cls

	for _, m := range lit.Members {
		key, c := e.classMemberKey(m, env)
		if c.isAbrupt() {
			return nil, c
		}

		if m.IsField {
			if m.Static {
				var v Value = Undefined
				if m.FieldInit != nil {
					e.pushContext(&ContextRecord{This: statics, Ambient: e.currentContext().Ambient})
					val, c2 := e.evalExpression(m.FieldInit, env)
					e.popContext()
					if c2.isAbrupt() {
						return nil, c2
					}
					v = val
				}
				statics.DefineOwn(key, &PropertyDescriptor{Value: v, Enumerable: true, Writable: true, Configurable: true})
			} else {
				cls.InstanceFields = append(cls.InstanceFields, instanceField{Name: key, Init: m.FieldInit, Env: env})
			}
			continue
		}

		fn := e.makeFunctionValue(m.Function, env)
		fn.Kind = KindMethod
		target := proto
		if m.Static {
			target = statics
		}
		fn.Home = target

		switch {
		case !m.Static && key == "constructor" && m.Kind == ast.PropertyMethod:
			fn.Kind = KindConstructor
			cls.Constructor = fn
		case m.Kind == ast.PropertyGetter:
			d, _ := target.OwnProperty(key)
			if d == nil {
				d = &PropertyDescriptor{Enumerable: false, Configurable: true}
				target.DefineOwn(key, d)
			}
			d.Get = fn
		case m.Kind == ast.PropertySetter:
			d, _ := target.OwnProperty(key)
			if d == nil {
				d = &PropertyDescriptor{Enumerable: false, Configurable: true}
				target.DefineOwn(key, d)
			}
			d.Set = fn
		default:
			target.DefineOwn(key, &PropertyDescriptor{Value: fn, Enumerable: false, Writable: true, Configurable: true})
		}
	}

	return cls, normal(nil)
}

func (e *Evaluator) classMemberKey(m *ast.ClassMember, env *Environment) (string, Completion) {
	if m.Computed {
		v, c := e.evalExpression(m.KeyExpr, env)
		if c.isAbrupt() {
			return "", c
		}
		return toStringValue(v), normal(nil)
	}
	return m.Key.Name, normal(nil)
}

// evalNewExpression instantiates an interpreter class, an interpreter
// function used as a constructor, or a host callable's native construction
// semantics.
func (e *Evaluator) evalNewExpression(n *ast.NewExpression, env *Environment) (Value, Completion) {
	calleeVal, c := e.evalExpression(n.Callee, env)
	if c.isAbrupt() {
		return nil, c
	}
	args, c := e.evalArguments(n.Arguments, env)
	if c.isAbrupt() {
		return nil, c
	}

	switch callee := calleeVal.(type) {
	case *ClassValue:
		instance := NewObject(callee.Prototype)
		instance.Class = callee
		if fc := e.initInstanceFields(callee, instance); fc.isAbrupt() {
			return nil, fc
		}
		if rc := e.runConstructor(callee, instance, args); rc.Kind == Throw {
			return nil, rc
		}
		return instance, normal(nil)
	case *FunctionValue:
		if callee.Host != nil {
			v, thrown := callee.Host(Undefined, args)
			if thrown != nil {
				return nil, throwValue(thrown)
			}
			return v, normal(nil)
		}
		proto := callee.Prototype
		if proto == nil {
			proto = e.objectProto
		}
		instance := NewObject(proto)
		result := e.callFunction(callee, instance, args)
		if result.Kind == Throw {
			return nil, result
		}
		if obj, ok := result.Value.(*ObjectValue); ok {
			return obj, normal(nil)
		}
		return instance, normal(nil)
	default:
		return nil, typeError("value is not a constructor")
	}
}

// initInstanceFields runs field initializers base-class first so a
// subclass's own field initializers can observe inherited fields.
func (e *Evaluator) initInstanceFields(cls *ClassValue, instance *ObjectValue) Completion {
	var chain []*ClassValue
	for c := cls; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].InstanceFields {
			var v Value = Undefined
			if f.Init != nil {
				e.pushContext(&ContextRecord{This: instance, Ambient: e.currentContext().Ambient})
				val, fc := e.evalExpression(f.Init, f.Env)
				e.popContext()
				if fc.isAbrupt() {
					return fc
				}
				v = val
			}
			instance.DefineOwn(f.Name, &PropertyDescriptor{Value: v, Enumerable: true, Writable: true, Configurable: true})
		}
	}
	return normal(Undefined)
}

// runConstructor invokes cls's own constructor, or walks up to the nearest
// ancestor that has one, forwarding arguments unchanged.
func (e *Evaluator) runConstructor(cls *ClassValue, instance *ObjectValue, args []Value) Completion {
	if cls.Constructor != nil {
		c := e.callFunction(cls.Constructor, instance, args)
		if c.Kind == Throw {
			return c
		}
		return normal(Undefined)
	}
	if cls.Parent != nil {
		return e.runConstructor(cls.Parent, instance, args)
	}
	return normal(Undefined)
}
