package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/token"
)

func (p *Parser) parseIdentifierOrArrow() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	if p.peekToken.Type == token.ARROW {
		tok := p.curToken
		p.nextToken()
		return p.finishArrow([]*ast.Param{{Name: ident}}, tok)
	}
	return ident
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("invalid number literal %q", p.curToken.Literal)
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.curToken
	raw := tok.Literal
	var quasis []string
	var exprs []ast.Expression
	var sb strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			quasis = append(quasis, sb.String())
			sb.Reset()
			depth := 1
			j := i + 2
			start := j
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto found
					}
				}
				j++
			}
		found:
			exprSrc := raw[start:j]
			subParser := New(lexer.New(exprSrc))
			exprs = append(exprs, subParser.parseExpressionWithComma())
			p.errors = append(p.errors, subParser.errors...)
			i = j + 1
			continue
		}
		sb.WriteByte(raw[i])
		i++
	}
	quasis = append(quasis, sb.String())
	return &ast.TemplateLiteral{Token: tok, Quasis: quasis, Expressions: exprs}
}

func (p *Parser) parseRegexLiteral() ast.Expression {
	parts := strings.SplitN(p.curToken.Literal, "\x00", 2)
	pattern := parts[0]
	flags := ""
	if len(parts) > 1 {
		flags = parts[1]
	}
	return &ast.RegexLiteral{Token: p.curToken, Pattern: pattern, Flags: flags}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression { return &ast.NullLiteral{Token: p.curToken} }

func (p *Parser) parseUndefinedLiteral() ast.Expression {
	return &ast.UndefinedLiteral{Token: p.curToken}
}

func (p *Parser) parseInfinityLiteral() ast.Expression {
	return &ast.NumberLiteral{Token: p.curToken, Value: math.Inf(1)}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseSpreadElement() ast.Expression {
	tok := p.curToken
	p.nextToken()
	arg := p.parseExpression(ASSIGNMENT)
	return &ast.SpreadElement{Token: tok, Argument: arg}
}

// finishArrow assumes p.curToken == ARROW and builds the arrow function
// literal from already-parsed params.
func (p *Parser) finishArrow(params []*ast.Param, tok token.Token) ast.Expression {
	fn := &ast.FunctionLiteral{Token: tok, Params: params, Arrow: true}
	if p.peekToken.Type == token.LBRACE {
		p.nextToken()
		fn.Body = p.parseBlockStatement()
		return fn
	}
	p.nextToken()
	fn.ExprBody = p.parseExpression(ASSIGNMENT)
	return fn
}

func exprToParam(e ast.Expression) *ast.Param {
	switch v := e.(type) {
	case *ast.Identifier:
		return &ast.Param{Name: v}
	case *ast.AssignmentExpression:
		if id, ok := v.Target.(*ast.Identifier); ok {
			return &ast.Param{Name: id, Default: v.Value}
		}
	case *ast.SpreadElement:
		if id, ok := v.Argument.(*ast.Identifier); ok {
			return &ast.Param{Name: id, Rest: true}
		}
	}
	return &ast.Param{Name: &ast.Identifier{}}
}

func (p *Parser) parseParenOrArrow() ast.Expression {
	tok := p.curToken
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		if p.peekToken.Type != token.ARROW {
			p.errorf("unexpected empty parentheses")
			return nil
		}
		p.nextToken()
		return p.finishArrow(nil, tok)
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	items := []ast.Expression{first}
	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		items = append(items, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if p.peekToken.Type == token.ARROW {
		p.nextToken()
		params := make([]*ast.Param, len(items))
		for i, it := range items {
			params[i] = exprToParam(it)
		}
		return p.finishArrow(params, tok)
	}
	if len(items) == 1 {
		return items[0]
	}
	return &ast.SequenceExpression{Token: tok, Expressions: items}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	arr := &ast.ArrayLiteral{Token: tok}
	if p.peekToken.Type == token.RBRACKET {
		p.nextToken()
		return arr
	}
	p.nextToken()
	for {
		if p.curToken.Type == token.COMMA {
			arr.Elements = append(arr.Elements, nil)
			p.nextToken()
			continue
		}
		if p.curToken.Type == token.RBRACKET {
			break
		}
		arr.Elements = append(arr.Elements, p.parseExpression(ASSIGNMENT))
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if p.curToken.Type != token.RBRACKET {
		if !p.expectPeek(token.RBRACKET) {
			return arr
		}
	}
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.curToken
	obj := &ast.ObjectLiteral{Token: tok}
	if p.peekToken.Type == token.RBRACE {
		p.nextToken()
		return obj
	}
	p.nextToken()
	for {
		if p.curToken.Type == token.RBRACE {
			break
		}
		if prop := p.parseObjectProperty(); prop != nil {
			obj.Properties = append(obj.Properties, prop)
		}
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return obj
	}
	return obj
}

func (p *Parser) parseObjectProperty() *ast.Property {
	tok := p.curToken

	if p.curToken.Type == token.ELLIPSIS {
		p.nextToken()
		val := p.parseExpression(ASSIGNMENT)
		return &ast.Property{Token: tok, Kind: ast.PropertySpread, Value: val}
	}

	var accessor token.Type
	if (p.curToken.Type == token.GET || p.curToken.Type == token.SET) &&
		p.peekToken.Type != token.COLON && p.peekToken.Type != token.COMMA &&
		p.peekToken.Type != token.RBRACE && p.peekToken.Type != token.LPAREN {
		accessor = p.curToken.Type
		p.nextToken()
	}

	prop := &ast.Property{Token: tok}
	var keyTok token.Token
	if p.curToken.Type == token.LBRACKET {
		prop.Computed = true
		p.nextToken()
		prop.Key = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return prop
		}
	} else {
		keyTok = p.curToken
		prop.Key = &ast.Identifier{Token: keyTok, Name: keyTok.Literal}
	}

	switch {
	case accessor == token.GET || accessor == token.SET:
		if accessor == token.GET {
			prop.Kind = ast.PropertyGetter
		} else {
			prop.Kind = ast.PropertySetter
		}
		if !p.expectPeek(token.LPAREN) {
			return prop
		}
		fn := &ast.FunctionLiteral{Token: tok}
		fn.Params = p.parseParamList()
		if !p.expectPeek(token.LBRACE) {
			return prop
		}
		fn.Body = p.parseBlockStatement()
		prop.Value = fn
	case p.peekToken.Type == token.LPAREN:
		prop.Kind = ast.PropertyMethod
		p.nextToken()
		fn := &ast.FunctionLiteral{Token: tok}
		fn.Params = p.parseParamList()
		if !p.expectPeek(token.LBRACE) {
			return prop
		}
		fn.Body = p.parseBlockStatement()
		prop.Value = fn
	case p.peekToken.Type == token.COLON:
		p.nextToken()
		p.nextToken()
		prop.Kind = ast.PropertyData
		prop.Value = p.parseExpression(ASSIGNMENT)
	default:
		prop.Kind = ast.PropertyData
		prop.Shorthand = true
		prop.Value = prop.Key
	}
	return prop
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	return p.parseFunctionLiteralCommon(false)
}

func (p *Parser) parseClassExpression() ast.Expression {
	return p.parseClassLiteralCommon(false)
}

func (p *Parser) parseArgumentList() []ast.Expression {
	var args []ast.Expression
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return args
	}
	p.nextToken()
	for {
		args = append(args, p.parseExpression(ASSIGNMENT))
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.RPAREN)
	return args
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %s in new-expression", p.curToken.Type)
		return nil
	}
	callee := prefix()
	for {
		switch p.peekToken.Type {
		case token.DOT:
			p.nextToken()
			callee = p.parseMemberExpression(callee)
		case token.LBRACKET:
			p.nextToken()
			callee = p.parseComputedMemberExpression(callee)
		default:
			goto doneCallee
		}
	}
doneCallee:
	var args []ast.Expression
	if p.peekToken.Type == token.LPAREN {
		p.nextToken()
		args = p.parseArgumentList()
	}
	return &ast.NewExpression{Token: tok, Callee: callee, Arguments: args}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseArgumentList()
	return &ast.CallExpression{Token: tok, Callee: callee, Arguments: args}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	prop := &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	return &ast.MemberExpression{Token: tok, Object: left, Property: prop, Computed: false}
}

func (p *Parser) parseComputedMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	prop := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return left
	}
	return &ast.MemberExpression{Token: tok, Object: left, Property: prop, Computed: true}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	right := p.parseExpression(UNARY)
	return &ast.PrefixExpression{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return &ast.UpdateExpression{Token: tok, Operator: op, Argument: arg, Prefix: true}
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	tok := p.curToken
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Argument: left, Prefix: false}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseInfixExpressionRightAssoc(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	right := p.parseExpression(EXPONENT - 1)
	return &ast.InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	consequent := p.parseExpression(ASSIGNMENT)
	if !p.expectPeek(token.COLON) {
		return test
	}
	p.nextToken()
	alternate := p.parseExpression(ASSIGNMENT)
	return &ast.ConditionalExpression{Token: tok, Test: test, Consequent: consequent, Alternate: alternate}
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT - 1)
	return &ast.AssignmentExpression{Token: tok, Operator: op, Target: left, Value: value}
}
