// Package parser implements a Pratt (precedence-climbing) recursive-descent
// parser that turns a token stream into an *ast.Program.
package parser

import (
	"fmt"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = += -= ...
	CONDITIONAL // ?:
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALITY    // == != === !==
	RELATIONAL  // < > <= >= in
	ADDITIVE    // + -
	MULTIPLICATIVE
	EXPONENT // ** (right assoc)
	UNARY    // ! - + typeof prefix ++ --
	POSTFIX  // postfix ++ --
	CALL     // foo(...) foo.bar foo[bar] new foo()
)

var precedences = map[token.Type]int{
	token.ASSIGN:           ASSIGNMENT,
	token.PLUS_ASSIGN:      ASSIGNMENT,
	token.MINUS_ASSIGN:     ASSIGNMENT,
	token.STAR_ASSIGN:      ASSIGNMENT,
	token.SLASH_ASSIGN:     ASSIGNMENT,
	token.PERCENT_ASSIGN:   ASSIGNMENT,
	token.STAR_STAR_ASSIGN: ASSIGNMENT,
	token.QUESTION:         CONDITIONAL,
	token.OR_OR:            LOGICAL_OR,
	token.AND_AND:          LOGICAL_AND,
	token.EQ:               EQUALITY,
	token.NEQ:              EQUALITY,
	token.EQ_EQ:            EQUALITY,
	token.NEQ_EQ:           EQUALITY,
	token.LT:               RELATIONAL,
	token.GT:               RELATIONAL,
	token.LTE:              RELATIONAL,
	token.GTE:              RELATIONAL,
	token.IN:               RELATIONAL,
	token.PLUS:             ADDITIVE,
	token.MINUS:            ADDITIVE,
	token.STAR:             MULTIPLICATIVE,
	token.SLASH:            MULTIPLICATIVE,
	token.PERCENT:          MULTIPLICATIVE,
	token.STAR_STAR:        EXPONENT,
	token.PLUS_PLUS:        POSTFIX,
	token.MINUS_MINUS:      POSTFIX,
	token.LPAREN:           CALL,
	token.DOT:              CALL,
	token.LBRACKET:         CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a single-use recursive-descent parser over one token stream.
type Parser struct {
	l      *lexer.Lexer
	errors []error

	curToken  token.Token
	peekToken token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.peekToken = l.NextToken(token.ILLEGAL)
	p.nextToken()

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:      p.parseIdentifierOrArrow,
		token.NUMBER:     p.parseNumberLiteral,
		token.STRING:     p.parseStringLiteral,
		token.TEMPLATE_STRING: p.parseTemplateLiteral,
		token.REGEX:      p.parseRegexLiteral,
		token.TRUE:       p.parseBoolLiteral,
		token.FALSE:      p.parseBoolLiteral,
		token.NULL:       p.parseNullLiteral,
		token.UNDEFINED:  p.parseUndefinedLiteral,
		token.INFINITY:   p.parseInfinityLiteral,
		token.THIS:       p.parseThisExpression,
		token.LPAREN:     p.parseParenOrArrow,
		token.LBRACKET:   p.parseArrayLiteral,
		token.LBRACE:     p.parseObjectLiteral,
		token.FUNCTION:   p.parseFunctionExpression,
		token.CLASS:      p.parseClassExpression,
		token.NEW:        p.parseNewExpression,
		token.BANG:       p.parsePrefixExpression,
		token.MINUS:      p.parsePrefixExpression,
		token.PLUS:       p.parsePrefixExpression,
		token.TYPEOF:     p.parsePrefixExpression,
		token.PLUS_PLUS:  p.parsePrefixUpdate,
		token.MINUS_MINUS: p.parsePrefixUpdate,
		token.ELLIPSIS:   p.parseSpreadElement,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:      p.parseInfixExpression,
		token.MINUS:     p.parseInfixExpression,
		token.STAR:      p.parseInfixExpression,
		token.SLASH:     p.parseInfixExpression,
		token.PERCENT:   p.parseInfixExpression,
		token.STAR_STAR: p.parseInfixExpressionRightAssoc,
		token.EQ:        p.parseInfixExpression,
		token.NEQ:       p.parseInfixExpression,
		token.EQ_EQ:     p.parseInfixExpression,
		token.NEQ_EQ:    p.parseInfixExpression,
		token.LT:        p.parseInfixExpression,
		token.GT:        p.parseInfixExpression,
		token.LTE:       p.parseInfixExpression,
		token.GTE:       p.parseInfixExpression,
		token.IN:        p.parseInfixExpression,
		token.AND_AND:   p.parseInfixExpression,
		token.OR_OR:     p.parseInfixExpression,
		token.QUESTION:  p.parseConditionalExpression,
		token.ASSIGN:    p.parseAssignmentExpression,
		token.PLUS_ASSIGN: p.parseAssignmentExpression,
		token.MINUS_ASSIGN: p.parseAssignmentExpression,
		token.STAR_ASSIGN:  p.parseAssignmentExpression,
		token.SLASH_ASSIGN: p.parseAssignmentExpression,
		token.PERCENT_ASSIGN: p.parseAssignmentExpression,
		token.STAR_STAR_ASSIGN: p.parseAssignmentExpression,
		token.LPAREN:    p.parseCallExpression,
		token.DOT:       p.parseMemberExpression,
		token.LBRACKET:  p.parseComputedMemberExpression,
		token.PLUS_PLUS: p.parsePostfixUpdate,
		token.MINUS_MINUS: p.parsePostfixUpdate,
	}

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken(p.curToken.Type)
}

// Errors returns every parse error accumulated while parsing. A non-empty
// result means the returned *ast.Program is not trustworthy.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf("parse error at %d:%d: %s",
		p.curToken.Pos.Line, p.curToken.Pos.Column, fmt.Sprintf(format, args...)))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

// ParseProgram parses the whole token stream into a Program. Check
// p.Errors() afterward.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.curToken.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) skipSemicolon() {
	if p.peekToken.Type == token.SEMICOLON {
		p.nextToken()
	}
}

// parseExpression parses a single (non-comma) expression at or above
// precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for p.peekToken.Type != token.SEMICOLON && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// parseExpressionWithComma parses an expression that may use the comma
// operator, producing a SequenceExpression when more than one is present.
func (p *Parser) parseExpressionWithComma() ast.Expression {
	tok := p.curToken
	first := p.parseExpression(LOWEST)
	if p.peekToken.Type != token.COMMA {
		return first
	}
	exprs := []ast.Expression{first}
	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		exprs = append(exprs, p.parseExpression(LOWEST))
	}
	return &ast.SequenceExpression{Token: tok, Expressions: exprs}
}
