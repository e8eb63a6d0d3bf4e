package evaluator

import (
	"fmt"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/token"
)

func (e *Evaluator) evalStatement(stmt ast.Statement, env *Environment) Completion {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		v, c := e.evalExpression(n.Expression, env)
		if c.isAbrupt() {
			return c
		}
		return normal(v)
	case *ast.DeclarationStatement:
		return e.evalDeclaration(n, env)
	case *ast.FunctionDeclaration:
		// already installed during hoisting
		return normal(Undefined)
	case *ast.ClassDeclaration:
		v, c := e.evalClassLiteral(n.Class, env)
		if c.isAbrupt() {
			return c
		}
		env.Declare(resolvedVariable(n.Class.Name), v)
		return normal(Undefined)
	case *ast.BlockStatement:
		child := NewChild(env)
		e.hoistBlock(n.Statements, child)
		return e.evalStatements(n.Statements, child)
	case *ast.IfStatement:
		test, c := e.evalExpression(n.Test, env)
		if c.isAbrupt() {
			return c
		}
		if toBoolean(test) {
			return e.evalStatement(n.Consequent, env)
		}
		if n.Alternate != nil {
			return e.evalStatement(n.Alternate, env)
		}
		return normal(Undefined)
	case *ast.WhileStatement:
		return e.evalWhile(n, env)
	case *ast.DoWhileStatement:
		return e.evalDoWhile(n, env)
	case *ast.ForStatement:
		return e.evalFor(n, env)
	case *ast.ForInStatement:
		return e.evalForIn(n, env)
	case *ast.ReturnStatement:
		if n.Argument == nil {
			return Completion{Kind: Return, Value: Undefined}
		}
		v, c := e.evalExpression(n.Argument, env)
		if c.isAbrupt() {
			return c
		}
		return Completion{Kind: Return, Value: v}
	case *ast.BreakStatement:
		return Completion{Kind: Break}
	case *ast.ContinueStatement:
		return Completion{Kind: Continue}
	case *ast.ThrowStatement:
		v, c := e.evalExpression(n.Argument, env)
		if c.isAbrupt() {
			return c
		}
		return throwValue(v)
	case *ast.TryStatement:
		return e.evalTry(n, env)
	case *ast.DebuggerStatement, *ast.EmptyStatement:
		return normal(Undefined)
	default:
		_, c := e.unsupported(fmt.Sprintf("%T statement", stmt))
		if c.isAbrupt() {
			return c
		}
		return normal(Undefined)
	}
}

func (e *Evaluator) evalDeclaration(n *ast.DeclarationStatement, env *Environment) Completion {
	for _, d := range n.Declarators {
		var v Value = Undefined
		if d.Init != nil {
			val, c := e.evalExpression(d.Init, env)
			if c.isAbrupt() {
				return c
			}
			v = val
		}
		variable := resolvedVariable(d.Name)
		if n.Kind == token.VAR {
			if d.Init != nil {
				env.Assign(variable, v)
			}
			continue
		}
		env.Declare(variable, v)
	}
	return normal(Undefined)
}

func (e *Evaluator) evalWhile(n *ast.WhileStatement, env *Environment) Completion {
	for {
		test, c := e.evalExpression(n.Test, env)
		if c.isAbrupt() {
			return c
		}
		if !toBoolean(test) {
			return normal(Undefined)
		}
		bc := e.evalStatement(n.Body, env)
		switch bc.Kind {
		case Break:
			return normal(Undefined)
		case Continue:
			continue
		case Return, Throw:
			return bc
		}
	}
}

func (e *Evaluator) evalDoWhile(n *ast.DoWhileStatement, env *Environment) Completion {
	for {
		bc := e.evalStatement(n.Body, env)
		switch bc.Kind {
		case Break:
			return normal(Undefined)
		case Return, Throw:
			return bc
		}
		test, c := e.evalExpression(n.Test, env)
		if c.isAbrupt() {
			return c
		}
		if !toBoolean(test) {
			return normal(Undefined)
		}
	}
}

func (e *Evaluator) evalFor(n *ast.ForStatement, env *Environment) Completion {
	loopEnv := NewChild(env)
	if n.Init != nil {
		switch init := n.Init.(type) {
		case *ast.DeclarationStatement:
			if c := e.evalDeclaration(init, loopEnv); c.isAbrupt() {
				return c
			}
		case ast.Expression:
			if _, c := e.evalExpression(init, loopEnv); c.isAbrupt() {
				return c
			}
		}
	}
	for {
		if n.Test != nil {
			test, c := e.evalExpression(n.Test, loopEnv)
			if c.isAbrupt() {
				return c
			}
			if !toBoolean(test) {
				return normal(Undefined)
			}
		}
		bc := e.evalStatement(n.Body, loopEnv)
		switch bc.Kind {
		case Break:
			return normal(Undefined)
		case Return, Throw:
			return bc
		}
		if n.Update != nil {
			if _, c := e.evalExpression(n.Update, loopEnv); c.isAbrupt() {
				return c
			}
		}
	}
}

func (e *Evaluator) evalForIn(n *ast.ForInStatement, env *Environment) Completion {
	right, c := e.evalExpression(n.Right, env)
	if c.isAbrupt() {
		return c
	}

	assign := func(iterEnv *Environment, v Value) Completion {
		switch left := n.Left.(type) {
		case *ast.DeclarationStatement:
			iterEnv.Declare(resolvedVariable(left.Declarators[0].Name), v)
		case ast.Expression:
			if _, c := e.evalAssignmentTarget(left, v, iterEnv); c.isAbrupt() {
				return c
			}
		}
		return normal(Undefined)
	}

	runBody := func(v Value) Completion {
		iterEnv := NewChild(env)
		if c := assign(iterEnv, v); c.isAbrupt() {
			return c
		}
		return e.evalStatement(n.Body, iterEnv)
	}

	if n.Of {
		items, c := e.iterableValues(right)
		if c.isAbrupt() {
			return c
		}
		for _, item := range items {
			bc := runBody(item)
			switch bc.Kind {
			case Break:
				return normal(Undefined)
			case Return, Throw:
				return bc
			}
		}
		return normal(Undefined)
	}

	var keys []string
	switch r := right.(type) {
	case *ObjectValue:
		keys = r.OwnEnumerableKeys()
	case *ArrayValue:
		for i := range r.Elements {
			keys = append(keys, NumberValue(float64(i)).String())
		}
	case StringValue:
		for i := range []rune(string(r)) {
			keys = append(keys, NumberValue(float64(i)).String())
		}
	}
	for _, k := range keys {
		bc := runBody(StringValue(k))
		switch bc.Kind {
		case Break:
			return normal(Undefined)
		case Return, Throw:
			return bc
		}
	}
	return normal(Undefined)
}

// iterableValues produces the sequence for-of walks: array elements, or a
// string's characters.
func (e *Evaluator) iterableValues(v Value) ([]Value, Completion) {
	switch iv := v.(type) {
	case *ArrayValue:
		return iv.Elements, normal(Undefined)
	case StringValue:
		runes := []rune(string(iv))
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = StringValue(string(r))
		}
		return out, normal(Undefined)
	default:
		return nil, typeError("value is not iterable")
	}
}

func (e *Evaluator) evalTry(n *ast.TryStatement, env *Environment) Completion {
	result := e.evalStatement(n.Block, env)
	if result.Kind == Throw {
		if n.CatchBody != nil {
			catchEnv := NewChild(env)
			if n.CatchParam != nil {
				catchEnv.Declare(resolvedVariable(n.CatchParam), result.Value)
			}
			e.hoistBlock(n.CatchBody.Statements, catchEnv)
			result = e.evalStatements(n.CatchBody.Statements, catchEnv)
		}
	}
	if n.FinallyBody != nil {
		finallyChild := NewChild(env)
		e.hoistBlock(n.FinallyBody.Statements, finallyChild)
		fc := e.evalStatements(n.FinallyBody.Statements, finallyChild)
		// An abrupt completion from `finally` overrides whatever the try/catch
		// produced; a normal finally never changes it.
		if fc.isAbrupt() {
			return fc
		}
	}
	return result
}
