package parser

import "github.com/evalscript/evalscript/ast"
import "github.com/evalscript/evalscript/token"

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseDeclarationStatement()
	case token.FUNCTION:
		fn := p.parseFunctionLiteralCommon(true)
		return &ast.FunctionDeclaration{Token: fn.Token, Function: fn}
	case token.CLASS:
		cls := p.parseClassLiteralCommon(true)
		return &ast.ClassDeclaration{Token: cls.Token, Class: cls}
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		tok := p.curToken
		p.skipSemicolon()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.curToken
		p.skipSemicolon()
		return &ast.ContinueStatement{Token: tok}
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return &ast.EmptyStatement{Token: p.curToken}
	case token.DEBUGGER:
		tok := p.curToken
		p.skipSemicolon()
		return &ast.DebuggerStatement{Token: tok}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpressionWithComma()
	p.skipSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curToken
	block := &ast.BlockStatement{Token: tok}
	p.nextToken()
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseDeclarationStatement() ast.Statement {
	tok := p.curToken
	kind := p.curToken.Type
	var declarators []*ast.Declarator
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
		var init ast.Expression
		if p.peekToken.Type == token.ASSIGN {
			p.nextToken()
			p.nextToken()
			init = p.parseExpression(LOWEST)
		}
		declarators = append(declarators, &ast.Declarator{Name: name, Init: init})
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		break
	}
	p.skipSemicolon()
	return &ast.DeclarationStatement{Token: tok, Kind: kind, Declarators: declarators}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	consequent := p.parseStatement()
	var alt ast.Statement
	if p.peekToken.Type == token.ELSE {
		p.nextToken()
		p.nextToken()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Test: test, Consequent: consequent, Alternate: alt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	body := p.parseStatement()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.skipSemicolon()
	return &ast.DoWhileStatement{Token: tok, Body: body, Test: test}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()

	var initNode ast.Node

	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		declTok := p.curToken
		kind := p.curToken.Type
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}

		if p.peekToken.Type == token.IN || p.peekToken.Type == token.OF {
			isOf := p.peekToken.Type == token.OF
			p.nextToken()
			p.nextToken()
			right := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			p.nextToken()
			body := p.parseStatement()
			declStmt := &ast.DeclarationStatement{Token: declTok, Kind: kind, Declarators: []*ast.Declarator{{Name: name}}}
			return &ast.ForInStatement{Token: tok, Left: declStmt, Right: right, Body: body, Of: isOf, VarKind: kind}
		}

		var initExpr ast.Expression
		if p.peekToken.Type == token.ASSIGN {
			p.nextToken()
			p.nextToken()
			initExpr = p.parseExpression(LOWEST)
		}
		declarators := []*ast.Declarator{{Name: name, Init: initExpr}}
		for p.peekToken.Type == token.COMMA {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			n2 := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
			var i2 ast.Expression
			if p.peekToken.Type == token.ASSIGN {
				p.nextToken()
				p.nextToken()
				i2 = p.parseExpression(LOWEST)
			}
			declarators = append(declarators, &ast.Declarator{Name: n2, Init: i2})
		}
		initNode = &ast.DeclarationStatement{Token: declTok, Kind: kind, Declarators: declarators}

	case token.SEMICOLON:
		// empty init, curToken already sits on the semicolon

	default:
		expr := p.parseExpressionWithComma()
		if p.peekToken.Type == token.IN || p.peekToken.Type == token.OF {
			isOf := p.peekToken.Type == token.OF
			p.nextToken()
			p.nextToken()
			right := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			p.nextToken()
			body := p.parseStatement()
			return &ast.ForInStatement{Token: tok, Left: expr, Right: right, Body: body, Of: isOf}
		}
		initNode = expr
	}

	if p.curToken.Type != token.SEMICOLON {
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}

	var test ast.Expression
	if p.peekToken.Type != token.SEMICOLON {
		p.nextToken()
		test = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	var update ast.Expression
	if p.peekToken.Type != token.RPAREN {
		p.nextToken()
		update = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	return &ast.ForStatement{Token: tok, Init: initNode, Test: test, Update: update, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	var arg ast.Expression
	if p.peekToken.Type != token.SEMICOLON && p.peekToken.Type != token.RBRACE && p.peekToken.Type != token.EOF {
		p.nextToken()
		arg = p.parseExpressionWithComma()
	}
	p.skipSemicolon()
	return &ast.ReturnStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	arg := p.parseExpressionWithComma()
	p.skipSemicolon()
	return &ast.ThrowStatement{Token: tok, Argument: arg}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()

	var catchParam *ast.Identifier
	var catchBody *ast.BlockStatement
	var finallyBody *ast.BlockStatement

	if p.peekToken.Type == token.CATCH {
		p.nextToken()
		if p.peekToken.Type == token.LPAREN {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			catchParam = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		catchBody = p.parseBlockStatement()
	}

	if p.peekToken.Type == token.FINALLY {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		finallyBody = p.parseBlockStatement()
	}

	return &ast.TryStatement{Token: tok, Block: block, CatchParam: catchParam, CatchBody: catchBody, FinallyBody: finallyBody}
}

// ---- functions and classes ----

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		param := &ast.Param{}
		if p.curToken.Type == token.ELLIPSIS {
			param.Rest = true
			p.nextToken()
		}
		param.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
		if p.peekToken.Type == token.ASSIGN {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(ASSIGNMENT)
		}
		params = append(params, param)
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionLiteralCommon(requireName bool) *ast.FunctionLiteral {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if requireName {
		if !p.expectPeek(token.IDENT) {
			return fn
		}
		fn.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	} else if p.peekToken.Type == token.IDENT {
		p.nextToken()
		fn.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseClassLiteralCommon(requireName bool) *ast.ClassLiteral {
	cls := &ast.ClassLiteral{Token: p.curToken}
	if requireName {
		if !p.expectPeek(token.IDENT) {
			return cls
		}
		cls.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	} else if p.peekToken.Type == token.IDENT {
		p.nextToken()
		cls.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}
	if p.peekToken.Type == token.EXTENDS {
		p.nextToken()
		p.nextToken()
		cls.Parent = p.parseExpression(CALL - 1)
	}
	if !p.expectPeek(token.LBRACE) {
		return cls
	}
	p.nextToken()
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if p.curToken.Type == token.SEMICOLON {
			p.nextToken()
			continue
		}
		if member := p.parseClassMember(); member != nil {
			cls.Members = append(cls.Members, member)
		}
		p.nextToken()
	}
	return cls
}

func (p *Parser) parseClassMember() *ast.ClassMember {
	tok := p.curToken
	member := &ast.ClassMember{Token: tok}

	if p.curToken.Type == token.STATIC && p.peekToken.Type != token.LPAREN && p.peekToken.Type != token.ASSIGN {
		member.Static = true
		p.nextToken()
	}

	kind := ast.PropertyMethod
	if (p.curToken.Type == token.GET || p.curToken.Type == token.SET) &&
		p.peekToken.Type != token.LPAREN && p.peekToken.Type != token.ASSIGN &&
		p.peekToken.Type != token.SEMICOLON {
		if p.curToken.Type == token.GET {
			kind = ast.PropertyGetter
		} else {
			kind = ast.PropertySetter
		}
		p.nextToken()
	}

	if p.curToken.Type == token.LBRACKET {
		member.Computed = true
		p.nextToken()
		member.KeyExpr = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return member
		}
	} else {
		member.Key = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	}

	if p.peekToken.Type == token.LPAREN {
		p.nextToken()
		fn := &ast.FunctionLiteral{Token: member.Token}
		fn.Params = p.parseParamList()
		if !p.expectPeek(token.LBRACE) {
			return member
		}
		fn.Body = p.parseBlockStatement()
		member.Function = fn
		member.Kind = kind
		return member
	}

	member.IsField = true
	if p.peekToken.Type == token.ASSIGN {
		p.nextToken()
		p.nextToken()
		member.FieldInit = p.parseExpression(ASSIGNMENT)
	}
	p.skipSemicolon()
	return member
}
