package parser

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/lexer"
	"github.com/pontaoski/minipl/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "parser")

// Parser is a recursive descent parser with one token of lookahead.
type Parser struct {
	l      *lexer.Lexer
	cur    types.Token
	primed bool

	done    bool
	program *ast.StatementList
	err     error
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

func (p *Parser) advance() error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	for _, kind := range k {
		if p.cur.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) unexpected(expected ...types.TokenKind) error {
	return errors.Fatal(errors.ParseError{
		Expected: expected,
		Got:      p.cur.Kind,
		Location: p.cur.Location,
	})
}

// LexExpecting consumes the current token if it is one of k.
func (p *Parser) LexExpecting(k ...types.TokenKind) (types.Token, error) {
	if !p.PeekIs(k...) {
		return types.Token{}, p.unexpected(k...)
	}
	tok := p.cur
	return tok, p.advance()
}

// Parse consumes the whole token stream and returns the program. The result
// is cached, so checker and interpreter can share one parser.
func (p *Parser) Parse() (*ast.StatementList, error) {
	if p.done {
		return p.program, p.err
	}
	p.done = true
	p.program, p.err = p.parseProgram()
	if p.err != nil {
		p.program = nil
	}
	return p.program, p.err
}

func (p *Parser) parseProgram() (*ast.StatementList, error) {
	if !p.primed {
		p.primed = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	list, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	if !p.PeekIs(types.EOF) {
		return nil, p.unexpected(types.EOF)
	}
	plog.Debugf("parsed %d top-level statements", len(list.Statements))
	return list, nil
}

func (p *Parser) parseStatementList() (*ast.StatementList, error) {
	list := &ast.StatementList{}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	list.Statements = append(list.Statements, stmt)

	for p.PeekIs(types.SEMICOLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, stmt)
	}

	if p.PeekIs(types.IDENTIFIER) {
		return nil, p.unexpected(types.SEMICOLON)
	}
	return list, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case types.IDENTIFIER:
		return p.parseAssignment()
	case types.VAR:
		return p.parseDeclaration()
	case types.PRINT:
		return p.parsePrint()
	case types.READ:
		return p.parseRead()
	case types.ASSERT:
		return p.parseAssert()
	case types.FOR:
		return p.parseFor()
	}
	return &ast.NoOp{}, nil
}

func (p *Parser) parseVariable() (*ast.Variable, error) {
	tok, err := p.LexExpecting(types.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Token: tok, Name: tok.Literal}, nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	tok, err := p.LexExpecting(types.ASSIGN)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: tok, Target: target, Value: value}, nil
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	tok, err := p.LexExpecting(types.VAR)
	if err != nil {
		return nil, err
	}
	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.COLON); err != nil {
		return nil, err
	}
	kind, err := p.parseType()
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDeclaration{Token: tok, Variable: variable, Type: kind}
	if !p.PeekIs(types.ASSIGN) {
		return decl, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if decl.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseType() (*ast.Type, error) {
	tok, err := p.LexExpecting(types.INT_TYPE, types.STRING_TYPE, types.BOOL_TYPE)
	if err != nil {
		return nil, err
	}
	return &ast.Type{Token: tok, Name: tok.Literal}, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	tok, err := p.LexExpecting(types.PRINT)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Token: tok, Value: value}, nil
}

func (p *Parser) parseRead() (ast.Statement, error) {
	tok, err := p.LexExpecting(types.READ)
	if err != nil {
		return nil, err
	}
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	return &ast.Read{Token: tok, Target: target}, nil
}

func (p *Parser) parseAssert() (ast.Statement, error) {
	tok, err := p.LexExpecting(types.ASSERT)
	if err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.PARENLEFT); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.PARENRIGHT); err != nil {
		return nil, err
	}
	return &ast.Assert{Token: tok, Value: value}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok, err := p.LexExpecting(types.FOR)
	if err != nil {
		return nil, err
	}
	node := &ast.For{Token: tok}

	if node.Control, err = p.parseVariable(); err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.IN); err != nil {
		return nil, err
	}
	if node.Start, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.RANGE); err != nil {
		return nil, err
	}
	if node.End, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.DO); err != nil {
		return nil, err
	}
	if node.Body, err = p.parseStatementList(); err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.END); err != nil {
		return nil, err
	}
	if _, err := p.LexExpecting(types.FOR); err != nil {
		return nil, err
	}
	return node, nil
}
