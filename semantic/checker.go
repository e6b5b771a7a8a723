// Package semantic validates a parsed MiniPL program before it runs.
//
// The checker walks the tree once, folding constants through its own symbol
// table, and collects every diagnostic it finds instead of stopping at the
// first one. A program may only be interpreted when Errors is empty.
package semantic

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/parser"
	"github.com/pontaoski/minipl/symbols"
	"github.com/pontaoski/minipl/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "semantic")

type Checker struct {
	parser  *parser.Parser
	table   *symbols.Table
	program *ast.StatementList
	errors  []error
}

func NewChecker(p *parser.Parser) *Checker {
	return &Checker{
		parser: p,
		table:  symbols.NewTable(),
	}
}

// Analyze parses the program and checks it. The returned error is a fatal
// lexical or parse error; semantic problems are collected in Errors.
func (c *Checker) Analyze() error {
	program, err := c.parser.Parse()
	if err != nil {
		return err
	}
	c.program = program
	c.statementList(program)
	plog.Debugf("semantic check finished with %d diagnostics", len(c.errors))
	return nil
}

func (c *Checker) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the diagnostics in the order they were found.
func (c *Checker) Errors() []error {
	return c.errors
}

func (c *Checker) Table() *symbols.Table {
	return c.table
}

func (c *Checker) Program() *ast.StatementList {
	return c.program
}

func (c *Checker) Parser() *parser.Parser {
	return c.parser
}

func (c *Checker) fail(at types.Position, msg string) {
	err := errors.SemanticError{Location: at, Message: msg}
	plog.Debugf("%s", err)
	c.errors = append(c.errors, err)
}

func (c *Checker) unsupported(at types.Position, typeName string) {
	err := errors.UnsupportedOperation{Location: at, Type: typeName}
	plog.Debugf("%s", err)
	c.errors = append(c.errors, err)
}

func (c *Checker) statementList(list *ast.StatementList) {
	for _, stmt := range list.Statements {
		c.statement(stmt)
	}
}

func (c *Checker) statement(s ast.Statement) {
	switch v := s.(type) {
	case *ast.Assign:
		c.assign(v)
	case *ast.VariableDeclaration:
		c.declaration(v)
	case *ast.Print:
		value := c.expression(v.Value)
		if value != nil && symbols.TypeOf(value) == symbols.TypeBool {
			c.fail(ast.Pos(v.Value), "Unsupported type for print")
		}
	case *ast.Read:
		c.variable(v.Target)
	case *ast.Assert:
		if _, ok := c.expression(v.Value).(symbols.Bool); !ok {
			c.fail(v.Token.Location, "Assert requires an expression that evaluates to boolean")
		}
	case *ast.For:
		c.loop(v)
	case *ast.NoOp:
	default:
		panic("unhandled statement")
	}
}

func (c *Checker) assign(v *ast.Assign) {
	target := c.variable(v.Target)
	value := c.expression(v.Value)
	if target == nil {
		return
	}

	sym, _ := c.table.Lookup(v.Target.Name)
	if !symbols.Compatible(value, sym.Type) {
		c.fail(ast.Pos(v.Value), "Type mismatch")
	}
}

func (c *Checker) declaration(v *ast.VariableDeclaration) {
	name, typeName := v.Variable.Name, v.Type.Name
	if _, ok := c.table.Lookup(name); ok {
		c.fail(v.Variable.Token.Location, "Variable "+name+" already declared")
		return
	}

	if v.Value == nil {
		c.table.Define(name, typeName, symbols.Zero(typeName))
		return
	}

	value := c.expression(v.Value)
	if !symbols.Compatible(value, typeName) {
		c.fail(ast.Pos(v.Value), "Type mismatch")
		value = nil
	}
	// Defined even when the initializer failed, so later uses of the name
	// do not cascade into "Variable not declared".
	c.table.Define(name, typeName, value)
}

func (c *Checker) loop(v *ast.For) {
	if _, ok := c.variable(v.Control).(symbols.Int); !ok {
		c.fail(v.Control.Token.Location, "Invalid variable type for for loop, integer required")
	}
	if _, ok := c.expression(v.Start).(symbols.Int); !ok {
		c.fail(ast.Pos(v.Start), "Invalid type for expression in for loop, integer required")
	}
	if _, ok := c.expression(v.End).(symbols.Int); !ok {
		c.fail(ast.Pos(v.End), "Invalid type for expression in for loop, integer required")
	}

	c.statementList(v.Body)

	for _, stmt := range v.Body.Statements {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok {
			c.fail(decl.Token.Location, "Variable declaration inside for loop")
		}
	}

	for _, assign := range assignmentsWithin(v) {
		if assign.Target.Name == v.Control.Name {
			c.fail(assign.Target.Token.Location, "Trying to assign loop control variable inside a loop")
		}
	}
}

// assignmentsWithin collects the assignments in the body of loop and of every
// loop nested in it, breadth first.
func assignmentsWithin(loop *ast.For) []*ast.Assign {
	var ret []*ast.Assign
	queue := []*ast.For{loop}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, stmt := range current.Body.Statements {
			switch v := stmt.(type) {
			case *ast.Assign:
				ret = append(ret, v)
			case *ast.For:
				queue = append(queue, v)
			}
		}
	}
	return ret
}

func (c *Checker) variable(v *ast.Variable) symbols.Value {
	sym, ok := c.table.Lookup(v.Name)
	if !ok {
		c.fail(v.Token.Location, "Variable not declared")
		return nil
	}
	return sym.Value
}
