package scope

import (
	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/token"
)

// lexScope is one lexical scope during resolution. Block-scoped bindings
// (let/const/class/function-declaration names) live directly on the scope
// they're declared in; var bindings always install on varScope, the
// nearest enclosing function (or program) scope, matching the hoisting
// rule in the binding-store design.
type lexScope struct {
	parent     *lexScope
	vars       map[string]*Variable
	varScope   *lexScope
	isVarScope bool
}

func newFunctionScope(parent *lexScope) *lexScope {
	s := &lexScope{parent: parent, vars: map[string]*Variable{}, isVarScope: true}
	s.varScope = s
	return s
}

func newBlockScope(parent *lexScope) *lexScope {
	s := &lexScope{parent: parent, vars: map[string]*Variable{}}
	s.varScope = parent.varScope
	return s
}

func (s *lexScope) declare(name string, kind Kind) *Variable {
	target := s
	if kind == Var {
		target = s.varScope
	}
	if kind == Var {
		if existing, ok := target.vars[name]; ok {
			return existing
		}
	}
	v := New(name, kind)
	target.vars[name] = v
	return v
}

func (s *lexScope) lookup(name string) *Variable {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v
		}
	}
	return nil
}

// Resolve walks prog, assigning a *Variable to every Identifier.Resolved
// field for names that bind to a declared variable. Identifiers that never
// resolve (globals supplied only by the ambient host context) are left
// with Resolved == nil; the evaluator falls back to ambient lookup by name
// for those.
func Resolve(prog *ast.Program) {
	root := newFunctionScope(nil)
	r := &resolver{}
	r.hoistBlock(prog.Statements, root)
	for _, s := range prog.Statements {
		r.resolveStatement(s, root)
	}
}

type resolver struct{}

// hoistBlock performs the hoist passes for one block: function
// declarations first (bound in this block), then var names collected
// recursively from nested non-function statements (bound at varScope),
// then the block's own lexical names (let/const/class) so that function
// bodies evaluated later can reference declarations that appear after
// them in source order.
func (r *resolver) hoistBlock(stmts []ast.Statement, s *lexScope) {
	for _, st := range stmts {
		if fd, ok := st.(*ast.FunctionDeclaration); ok && fd.Function.Name != nil {
			v := s.declare(fd.Function.Name.Name, FunctionName)
			fd.Function.Name.Resolved = v
		}
	}
	for _, st := range stmts {
		r.hoistVars(st, s)
	}
	for _, st := range stmts {
		switch n := st.(type) {
		case *ast.DeclarationStatement:
			if n.Kind != token.VAR {
				for _, d := range n.Declarators {
					v := s.declare(d.Name.Name, declKind(n.Kind))
					d.Name.Resolved = v
				}
			}
		case *ast.ClassDeclaration:
			if n.Class.Name != nil {
				v := s.declare(n.Class.Name.Name, Let)
				n.Class.Name.Resolved = v
			}
		}
	}
}

// hoistVars recursively collects `var` names reachable without crossing a
// function boundary and pre-declares them on the enclosing var scope.
func (r *resolver) hoistVars(st ast.Statement, s *lexScope) {
	switch n := st.(type) {
	case *ast.DeclarationStatement:
		if n.Kind == token.VAR {
			for _, d := range n.Declarators {
				v := s.varScope.declare(d.Name.Name, Var)
				d.Name.Resolved = v
			}
		}
	case *ast.BlockStatement:
		for _, sub := range n.Statements {
			r.hoistVars(sub, s)
		}
	case *ast.IfStatement:
		r.hoistVars(n.Consequent, s)
		if n.Alternate != nil {
			r.hoistVars(n.Alternate, s)
		}
	case *ast.WhileStatement:
		r.hoistVars(n.Body, s)
	case *ast.DoWhileStatement:
		r.hoistVars(n.Body, s)
	case *ast.ForStatement:
		if decl, ok := n.Init.(*ast.DeclarationStatement); ok && decl.Kind == token.VAR {
			for _, d := range decl.Declarators {
				v := s.varScope.declare(d.Name.Name, Var)
				d.Name.Resolved = v
			}
		}
		r.hoistVars(n.Body, s)
	case *ast.ForInStatement:
		if n.VarKind == token.VAR {
			if decl, ok := n.Left.(*ast.DeclarationStatement); ok {
				for _, d := range decl.Declarators {
					v := s.varScope.declare(d.Name.Name, Var)
					d.Name.Resolved = v
				}
			}
		}
		r.hoistVars(n.Body, s)
	case *ast.TryStatement:
		for _, sub := range n.Block.Statements {
			r.hoistVars(sub, s)
		}
		if n.CatchBody != nil {
			for _, sub := range n.CatchBody.Statements {
				r.hoistVars(sub, s)
			}
		}
		if n.FinallyBody != nil {
			for _, sub := range n.FinallyBody.Statements {
				r.hoistVars(sub, s)
			}
		}
	}
}

func (r *resolver) resolveStatement(st ast.Statement, s *lexScope) {
	switch n := st.(type) {
	case *ast.DeclarationStatement:
		// Declarator names were already bound during hoistBlock; only the
		// initializers still need resolving here.
		for _, d := range n.Declarators {
			if d.Init != nil {
				r.resolveExpr(d.Init, s)
			}
		}
	case *ast.FunctionDeclaration:
		r.resolveFunction(n.Function, s)
	case *ast.ClassDeclaration:
		r.resolveClass(n.Class, s)
	case *ast.ExpressionStatement:
		if n.Expression != nil {
			r.resolveExpr(n.Expression, s)
		}
	case *ast.BlockStatement:
		block := newBlockScope(s)
		r.hoistBlock(n.Statements, block)
		for _, sub := range n.Statements {
			r.resolveStatement(sub, block)
		}
	case *ast.IfStatement:
		r.resolveExpr(n.Test, s)
		r.resolveStatement(n.Consequent, s)
		if n.Alternate != nil {
			r.resolveStatement(n.Alternate, s)
		}
	case *ast.WhileStatement:
		r.resolveExpr(n.Test, s)
		r.resolveStatement(n.Body, s)
	case *ast.DoWhileStatement:
		r.resolveStatement(n.Body, s)
		r.resolveExpr(n.Test, s)
	case *ast.ForStatement:
		loopScope := newBlockScope(s)
		if n.Init != nil {
			switch init := n.Init.(type) {
			case *ast.DeclarationStatement:
				for _, d := range init.Declarators {
					if d.Init != nil {
						r.resolveExpr(d.Init, loopScope)
					}
					if init.Kind != token.VAR {
						v := loopScope.declare(d.Name.Name, declKind(init.Kind))
						d.Name.Resolved = v
					}
				}
			case ast.Expression:
				r.resolveExpr(init, loopScope)
			}
		}
		if n.Test != nil {
			r.resolveExpr(n.Test, loopScope)
		}
		if n.Update != nil {
			r.resolveExpr(n.Update, loopScope)
		}
		r.resolveStatement(n.Body, loopScope)
	case *ast.ForInStatement:
		loopScope := newBlockScope(s)
		r.resolveExpr(n.Right, s)
		switch left := n.Left.(type) {
		case *ast.DeclarationStatement:
			d := left.Declarators[0]
			if left.Kind != token.VAR {
				v := loopScope.declare(d.Name.Name, declKind(left.Kind))
				d.Name.Resolved = v
			} else {
				d.Name.Resolved = loopScope.varScope.declare(d.Name.Name, Var)
			}
		case ast.Expression:
			r.resolveExpr(left, loopScope)
		}
		r.resolveStatement(n.Body, loopScope)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			r.resolveExpr(n.Argument, s)
		}
	case *ast.ThrowStatement:
		r.resolveExpr(n.Argument, s)
	case *ast.TryStatement:
		r.resolveStatement(n.Block, s)
		if n.CatchBody != nil {
			catchScope := newBlockScope(s)
			if n.CatchParam != nil {
				v := catchScope.declare(n.CatchParam.Name, Let)
				n.CatchParam.Resolved = v
			}
			r.hoistBlock(n.CatchBody.Statements, catchScope)
			for _, sub := range n.CatchBody.Statements {
				r.resolveStatement(sub, catchScope)
			}
		}
		if n.FinallyBody != nil {
			r.resolveStatement(n.FinallyBody, s)
		}
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.DebuggerStatement, *ast.EmptyStatement:
		// no bindings, no children
	}
}

func declKind(t token.Type) Kind {
	if t == token.CONST {
		return Const
	}
	return Let
}

func (r *resolver) resolveFunction(f *ast.FunctionLiteral, s *lexScope) {
	fnScope := newFunctionScope(s)
	for _, p := range f.Params {
		v := fnScope.declare(p.Name.Name, Param)
		p.Name.Resolved = v
		if p.Default != nil {
			r.resolveExpr(p.Default, fnScope)
		}
	}
	if f.ExprBody != nil {
		r.resolveExpr(f.ExprBody, fnScope)
		return
	}
	if f.Body != nil {
		r.hoistBlock(f.Body.Statements, fnScope)
		for _, st := range f.Body.Statements {
			r.resolveStatement(st, fnScope)
		}
	}
}

func (r *resolver) resolveClass(c *ast.ClassLiteral, s *lexScope) {
	if c.Parent != nil {
		r.resolveExpr(c.Parent, s)
	}
	for _, m := range c.Members {
		if m.Computed {
			r.resolveExpr(m.KeyExpr, s)
		}
		if m.IsField {
			if m.FieldInit != nil {
				r.resolveExpr(m.FieldInit, s)
			}
			continue
		}
		r.resolveFunction(m.Function, s)
	}
}

func (r *resolver) resolveExpr(e ast.Expression, s *lexScope) {
	switch n := e.(type) {
	case *ast.Identifier:
		if v := s.lookup(n.Name); v != nil {
			n.Resolved = v
		}
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.UndefinedLiteral, *ast.ThisExpression, *ast.RegexLiteral:
		// leaves, nothing to resolve
	case *ast.TemplateLiteral:
		for _, ex := range n.Expressions {
			r.resolveExpr(ex, s)
		}
	case *ast.SpreadElement:
		r.resolveExpr(n.Argument, s)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			if el != nil {
				r.resolveExpr(el, s)
			}
		}
	case *ast.ObjectLiteral:
		for _, p := range n.Properties {
			if p.Kind == ast.PropertySpread {
				r.resolveExpr(p.Value, s)
				continue
			}
			if p.Computed {
				r.resolveExpr(p.Key, s)
			}
			if p.Kind == ast.PropertyMethod || p.Kind == ast.PropertyGetter || p.Kind == ast.PropertySetter {
				r.resolveFunction(p.Value.(*ast.FunctionLiteral), s)
			} else {
				r.resolveExpr(p.Value, s)
			}
		}
	case *ast.FunctionLiteral:
		r.resolveFunction(n, s)
	case *ast.ClassLiteral:
		r.resolveClass(n, s)
	case *ast.MemberExpression:
		r.resolveExpr(n.Object, s)
		if n.Computed {
			r.resolveExpr(n.Property, s)
		}
	case *ast.CallExpression:
		r.resolveExpr(n.Callee, s)
		for _, a := range n.Arguments {
			r.resolveExpr(a, s)
		}
	case *ast.NewExpression:
		r.resolveExpr(n.Callee, s)
		for _, a := range n.Arguments {
			r.resolveExpr(a, s)
		}
	case *ast.PrefixExpression:
		r.resolveExpr(n.Right, s)
	case *ast.UpdateExpression:
		r.resolveExpr(n.Argument, s)
	case *ast.InfixExpression:
		r.resolveExpr(n.Left, s)
		r.resolveExpr(n.Right, s)
	case *ast.AssignmentExpression:
		r.resolveExpr(n.Target, s)
		r.resolveExpr(n.Value, s)
	case *ast.ConditionalExpression:
		r.resolveExpr(n.Test, s)
		r.resolveExpr(n.Consequent, s)
		r.resolveExpr(n.Alternate, s)
	case *ast.SequenceExpression:
		for _, ex := range n.Expressions {
			r.resolveExpr(ex, s)
		}
	}
}
