package parser

import (
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/types"
)

// + - = < & all share one precedence level, above which sit * and /.
var (
	expressionOperators = []types.TokenKind{types.PLUS, types.MINUS, types.EQUAL, types.LESS_THAN, types.LOGICAL_AND}
	termOperators       = []types.TokenKind{types.MUL, types.DIV}
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.PeekIs(expressionOperators...) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Left: node, Operator: op, Right: right}
	}
	return node, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.PeekIs(termOperators...) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{Left: node, Operator: op, Right: right}
	}
	return node, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.cur

	switch tok.Kind {
	case types.INTEGER:
		return &ast.Numeric{Token: tok, Value: tok.Int}, p.advance()
	case types.STRING:
		return &ast.StringLit{Token: tok, Value: tok.Literal}, p.advance()
	case types.BOOL:
		return &ast.BooleanLit{Token: tok, Value: tok.Bool}, p.advance()
	case types.PARENLEFT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.LexExpecting(types.PARENRIGHT); err != nil {
			return nil, err
		}
		return inner, nil
	case types.PLUS, types.MINUS, types.LOGICAL_NOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: tok, Operand: operand}, nil
	case types.IDENTIFIER:
		return p.parseVariable()
	}

	return nil, p.unexpected(
		types.INTEGER, types.STRING, types.PARENLEFT,
		types.PLUS, types.MINUS, types.LOGICAL_NOT, types.IDENTIFIER,
	)
}
