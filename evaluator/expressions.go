package evaluator

import (
	"fmt"

	"github.com/evalscript/evalscript/ast"
)

func (e *Evaluator) evalExpression(expr ast.Expression, env *Environment) (Value, Completion) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return NumberValue(n.Value), normal(nil)
	case *ast.StringLiteral:
		return StringValue(n.Value), normal(nil)
	case *ast.BooleanLiteral:
		return BooleanValue(n.Value), normal(nil)
	case *ast.NullLiteral:
		return Null, normal(nil)
	case *ast.UndefinedLiteral:
		return Undefined, normal(nil)
	case *ast.ThisExpression:
		return e.currentContext().This, normal(nil)
	case *ast.RegexLiteral:
		re, err := compileRegex(n.Pattern, n.Flags)
		if err != nil {
			return nil, typeError("invalid regular expression: %s", err.Error())
		}
		return re, normal(nil)
	case *ast.TemplateLiteral:
		return e.evalTemplateLiteral(n, env)
	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n, env)
	case *ast.FunctionLiteral:
		return e.makeFunctionValue(n, env), normal(nil)
	case *ast.ClassLiteral:
		return e.evalClassLiteral(n, env)
	case *ast.MemberExpression:
		return e.evalMemberRead(n, env)
	case *ast.CallExpression:
		return e.evalCallExpression(n, env)
	case *ast.NewExpression:
		return e.evalNewExpression(n, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(n, env)
	case *ast.UpdateExpression:
		return e.evalUpdateExpression(n, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(n, env)
	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(n, env)
	case *ast.ConditionalExpression:
		return e.evalConditionalExpression(n, env)
	case *ast.SequenceExpression:
		var last Value = Undefined
		for _, sub := range n.Expressions {
			v, c := e.evalExpression(sub, env)
			if c.isAbrupt() {
				return nil, c
			}
			last = v
		}
		return last, normal(nil)
	case *ast.SpreadElement:
		return e.evalExpression(n.Argument, env)
	default:
		return e.unsupported(fmt.Sprintf("%T expression", expr))
	}
}

func (e *Evaluator) evalTemplateLiteral(n *ast.TemplateLiteral, env *Environment) (Value, Completion) {
	out := n.Quasis[0]
	for i, expr := range n.Expressions {
		v, c := e.evalExpression(expr, env)
		if c.isAbrupt() {
			return nil, c
		}
		out += toStringValue(v)
		out += n.Quasis[i+1]
	}
	return StringValue(out), normal(nil)
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *Environment) (Value, Completion) {
	if v, ok := env.Get(resolvedVariable(n)); ok {
		return v, normal(nil)
	}
	ambient := e.currentContext().Ambient
	if ambient != nil {
		if d, _ := ambient.Lookup(n.Name); d != nil {
			return ambient.Get(n.Name, e.callValue), normal(nil)
		}
	}
	return nil, referenceError("%s is not defined", n.Name)
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *Environment) (Value, Completion) {
	arr := &ArrayValue{}
	for _, el := range n.Elements {
		if el == nil {
			arr.Elements = append(arr.Elements, Null)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			v, c := e.evalExpression(spread.Argument, env)
			if c.isAbrupt() {
				return nil, c
			}
			items, c2 := e.iterableValues(v)
			if c2.isAbrupt() {
				return nil, c2
			}
			arr.Elements = append(arr.Elements, items...)
			continue
		}
		v, c := e.evalExpression(el, env)
		if c.isAbrupt() {
			return nil, c
		}
		arr.Elements = append(arr.Elements, v)
	}
	return arr, normal(nil)
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral, env *Environment) (Value, Completion) {
	obj := NewObject(e.objectProto)
	for _, p := range n.Properties {
		if p.Kind == ast.PropertySpread {
			v, c := e.evalExpression(p.Value, env)
			if c.isAbrupt() {
				return nil, c
			}
			if src, ok := v.(*ObjectValue); ok {
				for _, k := range src.OwnEnumerableKeys() {
					obj.Set(k, src.Get(k, e.callValue), e.callValue)
				}
			}
			continue
		}
		key, c := e.propertyKey(p, env)
		if c.isAbrupt() {
			return nil, c
		}
		switch p.Kind {
		case ast.PropertyGetter:
			fn := e.makeFunctionValue(p.Value.(*ast.FunctionLiteral), env)
			fn.Kind = KindMethod
			d, _ := obj.OwnProperty(key)
			if d == nil {
				d = &PropertyDescriptor{Enumerable: true, Configurable: true}
				obj.DefineOwn(key, d)
			}
			d.Get = fn
		case ast.PropertySetter:
			fn := e.makeFunctionValue(p.Value.(*ast.FunctionLiteral), env)
			fn.Kind = KindMethod
			d, _ := obj.OwnProperty(key)
			if d == nil {
				d = &PropertyDescriptor{Enumerable: true, Configurable: true}
				obj.DefineOwn(key, d)
			}
			d.Set = fn
		case ast.PropertyMethod:
			fn := e.makeFunctionValue(p.Value.(*ast.FunctionLiteral), env)
			fn.Kind = KindMethod
			fn.Home = obj
			obj.DefineOwn(key, &PropertyDescriptor{Value: fn, Enumerable: true, Writable: true, Configurable: true})
		default:
			v, c := e.evalExpression(p.Value, env)
			if c.isAbrupt() {
				return nil, c
			}
			obj.DefineOwn(key, &PropertyDescriptor{Value: v, Enumerable: true, Writable: true, Configurable: true})
		}
	}
	return obj, normal(nil)
}

func (e *Evaluator) propertyKey(p *ast.Property, env *Environment) (string, Completion) {
	if p.Computed {
		v, c := e.evalExpression(p.Key, env)
		if c.isAbrupt() {
			return "", c
		}
		return toStringValue(v), normal(nil)
	}
	if id, ok := p.Key.(*ast.Identifier); ok {
		return id.Name, normal(nil)
	}
	v, c := e.evalExpression(p.Key, env)
	if c.isAbrupt() {
		return "", c
	}
	return toStringValue(v), normal(nil)
}

func (e *Evaluator) evalMemberRead(n *ast.MemberExpression, env *Environment) (Value, Completion) {
	obj, c := e.evalExpression(n.Object, env)
	if c.isAbrupt() {
		return nil, c
	}
	key, c := e.memberKey(n, env)
	if c.isAbrupt() {
		return nil, c
	}
	return e.getMember(obj, key)
}

func (e *Evaluator) memberKey(n *ast.MemberExpression, env *Environment) (string, Completion) {
	if n.Computed {
		v, c := e.evalExpression(n.Property, env)
		if c.isAbrupt() {
			return "", c
		}
		return toStringValue(v), normal(nil)
	}
	return n.Property.(*ast.Identifier).Name, normal(nil)
}

// getMember reads a property off any value, including the host-exposed
// pseudo-properties (array.length, string.length, class statics/prototype
// chain).
func (e *Evaluator) getMember(obj Value, key string) (Value, Completion) {
	switch v := obj.(type) {
	case *ArrayValue:
		if key == "length" {
			return NumberValue(float64(len(v.Elements))), normal(nil)
		}
		if idx, ok := arrayIndex(key); ok {
			if idx >= 0 && idx < len(v.Elements) {
				return v.Elements[idx], normal(nil)
			}
			return Undefined, normal(nil)
		}
		if d, _ := e.arrayProto.Lookup(key); d != nil {
			return e.arrayProto.Get(key, e.callValue), normal(nil)
		}
		return Undefined, normal(nil)
	case StringValue:
		if key == "length" {
			return NumberValue(float64(len([]rune(string(v))))), normal(nil)
		}
		if idx, ok := arrayIndex(key); ok {
			runes := []rune(string(v))
			if idx >= 0 && idx < len(runes) {
				return StringValue(string(runes[idx])), normal(nil)
			}
			return Undefined, normal(nil)
		}
		return stringMethod(v, key), normal(nil)
	case *ObjectValue:
		return v.Get(key, e.callValue), normal(nil)
	case *ClassValue:
		if key == "prototype" {
			return v.Prototype, normal(nil)
		}
		if key == "name" {
			return StringValue(v.Name), normal(nil)
		}
		if v.Statics != nil {
			return v.Statics.Get(key, e.callValue), normal(nil)
		}
		return Undefined, normal(nil)
	case *FunctionValue:
		if key == "name" {
			return StringValue(v.Name), normal(nil)
		}
		if key == "prototype" {
			if v.Prototype == nil {
				return Undefined, normal(nil)
			}
			return v.Prototype, normal(nil)
		}
		return Undefined, normal(nil)
	case *RegExpValue:
		switch key {
		case "source":
			return StringValue(v.Pattern), normal(nil)
		case "flags":
			return StringValue(v.Flags), normal(nil)
		}
		return Undefined, normal(nil)
	default:
		if IsNull(obj) || IsUndefined(obj) {
			return nil, typeError("cannot read properties of %s (reading '%s')", toStringValue(obj), key)
		}
		return Undefined, normal(nil)
	}
}

func arrayIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	n := 0
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func (e *Evaluator) evalCallExpression(n *ast.CallExpression, env *Environment) (Value, Completion) {
	var this Value = Undefined
	var callee Value
	var c Completion

	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		objVal, c2 := e.evalExpression(member.Object, env)
		if c2.isAbrupt() {
			return nil, c2
		}
		this = objVal
		key, c3 := e.memberKey(member, env)
		if c3.isAbrupt() {
			return nil, c3
		}
		callee, c = e.getMember(objVal, key)
	} else {
		callee, c = e.evalExpression(n.Callee, env)
	}
	if c.isAbrupt() {
		return nil, c
	}

	args, c := e.evalArguments(n.Arguments, env)
	if c.isAbrupt() {
		return nil, c
	}

	fn, ok := callee.(*FunctionValue)
	if !ok {
		return nil, typeError("value is not a function")
	}
	result := e.callFunction(fn, this, args)
	if result.Kind == Throw {
		return nil, result
	}
	return result.Value, normal(nil)
}

func (e *Evaluator) evalArguments(argNodes []ast.Expression, env *Environment) ([]Value, Completion) {
	var args []Value
	for _, a := range argNodes {
		if spread, ok := a.(*ast.SpreadElement); ok {
			v, c := e.evalExpression(spread.Argument, env)
			if c.isAbrupt() {
				return nil, c
			}
			items, c2 := e.iterableValues(v)
			if c2.isAbrupt() {
				return nil, c2
			}
			args = append(args, items...)
			continue
		}
		v, c := e.evalExpression(a, env)
		if c.isAbrupt() {
			return nil, c
		}
		args = append(args, v)
	}
	return args, normal(nil)
}

func (e *Evaluator) evalPrefixExpression(n *ast.PrefixExpression, env *Environment) (Value, Completion) {
	// typeof on a bare identifier never raises a reference error: an
	// undeclared name yields "undefined" instead.
	if n.Operator == "typeof" {
		if id, ok := n.Right.(*ast.Identifier); ok {
			v, c := e.evalIdentifier(id, env)
			if c.isAbrupt() {
				return StringValue("undefined"), normal(nil)
			}
			return StringValue(typeOf(v)), normal(nil)
		}
	}
	right, c := e.evalExpression(n.Right, env)
	if c.isAbrupt() {
		return nil, c
	}
	return applyUnary(n.Operator, right), normal(nil)
}

func (e *Evaluator) evalUpdateExpression(n *ast.UpdateExpression, env *Environment) (Value, Completion) {
	old, c := e.evalExpression(n.Argument, env)
	if c.isAbrupt() {
		return nil, c
	}
	oldNum := toNumber(old)
	var newNum float64
	if n.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if _, c := e.evalAssignmentTarget(n.Argument, NumberValue(newNum), env); c.isAbrupt() {
		return nil, c
	}
	if n.Prefix {
		return NumberValue(newNum), normal(nil)
	}
	return NumberValue(oldNum), normal(nil)
}

func (e *Evaluator) evalInfixExpression(n *ast.InfixExpression, env *Environment) (Value, Completion) {
	left, c := e.evalExpression(n.Left, env)
	if c.isAbrupt() {
		return nil, c
	}
	if n.Operator == "&&" {
		if !toBoolean(left) {
			return left, normal(nil)
		}
		return e.evalExpression(n.Right, env)
	}
	if n.Operator == "||" {
		if toBoolean(left) {
			return left, normal(nil)
		}
		return e.evalExpression(n.Right, env)
	}
	right, c := e.evalExpression(n.Right, env)
	if c.isAbrupt() {
		return nil, c
	}
	v, tc := applyBinary(n.Operator, left, right)
	if tc.isAbrupt() {
		return nil, tc
	}
	return v, normal(nil)
}

func (e *Evaluator) evalConditionalExpression(n *ast.ConditionalExpression, env *Environment) (Value, Completion) {
	test, c := e.evalExpression(n.Test, env)
	if c.isAbrupt() {
		return nil, c
	}
	if toBoolean(test) {
		return e.evalExpression(n.Consequent, env)
	}
	return e.evalExpression(n.Alternate, env)
}

func (e *Evaluator) evalAssignmentExpression(n *ast.AssignmentExpression, env *Environment) (Value, Completion) {
	if n.Operator == "=" {
		v, c := e.evalExpression(n.Value, env)
		if c.isAbrupt() {
			return nil, c
		}
		return e.evalAssignmentTarget(n.Target, v, env)
	}
	old, c := e.evalExpression(n.Target, env)
	if c.isAbrupt() {
		return nil, c
	}
	rhs, c := e.evalExpression(n.Value, env)
	if c.isAbrupt() {
		return nil, c
	}
	op := n.Operator[:len(n.Operator)-1] // strip trailing '='
	v, tc := applyBinary(op, old, rhs)
	if tc.isAbrupt() {
		return nil, tc
	}
	return e.evalAssignmentTarget(n.Target, v, env)
}

// evalAssignmentTarget writes value into an identifier or member-expression
// target and returns the written value.
func (e *Evaluator) evalAssignmentTarget(target ast.Expression, value Value, env *Environment) (Value, Completion) {
	switch t := target.(type) {
	case *ast.Identifier:
		variable := resolvedVariable(t)
		if env.Assign(variable, value) {
			return value, normal(nil)
		}
		if e.currentContext().Ambient != nil {
			e.currentContext().Ambient.Set(t.Name, value, e.callValue)
			return value, normal(nil)
		}
		return nil, referenceError("%s is not defined", t.Name)
	case *ast.MemberExpression:
		objVal, c := e.evalExpression(t.Object, env)
		if c.isAbrupt() {
			return nil, c
		}
		key, c := e.memberKey(t, env)
		if c.isAbrupt() {
			return nil, c
		}
		switch obj := objVal.(type) {
		case *ObjectValue:
			obj.Set(key, value, e.callValue)
		case *ArrayValue:
			if key == "length" {
				n := int(toNumber(value))
				if n < len(obj.Elements) {
					obj.Elements = obj.Elements[:n]
				}
				for len(obj.Elements) < n {
					obj.Elements = append(obj.Elements, Undefined)
				}
			} else if idx, ok := arrayIndex(key); ok {
				for len(obj.Elements) <= idx {
					obj.Elements = append(obj.Elements, Undefined)
				}
				obj.Elements[idx] = value
			}
		default:
			return nil, typeError("cannot set properties of %s", toStringValue(objVal))
		}
		return value, normal(nil)
	case *ast.ArrayLiteral, *ast.ObjectLiteral:
		return e.unsupported("destructuring assignment target")
	default:
		return nil, referenceError("invalid assignment target")
	}
}
