// Package interpreter executes MiniPL programs by walking their syntax tree.
package interpreter

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/parser"
	"github.com/pontaoski/minipl/semantic"
	"github.com/pontaoski/minipl/symbols"
	"github.com/pontaoski/minipl/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "interpreter")

const assertionFailed = "Assertion failed\n"

type Interpreter struct {
	parser  *parser.Parser
	program *ast.StatementList
	table   *symbols.Table

	in  *bufio.Reader
	out io.Writer
}

type Option func(*Interpreter)

// WithInput sets the line source for read statements. Defaults to stdin.
// A *bufio.Reader is used as is, so consecutive runs can share one buffer.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		if br, ok := r.(*bufio.Reader); ok {
			i.in = br
			return
		}
		i.in = bufio.NewReader(r)
	}
}

// WithOutput sets where print and failed assertions write. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

func newInterpreter(opts []Option) *Interpreter {
	i := &Interpreter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// New interprets whatever p parses, without a prior semantic check. Problems
// the checker would have reported surface as runtime errors instead.
func New(p *parser.Parser, opts ...Option) *Interpreter {
	i := newInterpreter(opts)
	i.parser = p
	i.table = symbols.NewTable()
	return i
}

// FromChecker reuses the tree and symbol table of a finished check. Callers
// must only run it when c.HasErrors() is false.
func FromChecker(c *semantic.Checker, opts ...Option) *Interpreter {
	i := newInterpreter(opts)
	i.parser = c.Parser()
	i.program = c.Program()
	i.table = c.Table()
	return i
}

func (i *Interpreter) Table() *symbols.Table {
	return i.table
}

// Interpret parses if needed and runs the program. Output written before a
// runtime error stays written.
func (i *Interpreter) Interpret() error {
	if i.program == nil {
		program, err := i.parser.Parse()
		if err != nil {
			return err
		}
		i.program = program
	}
	return i.statementList(i.program)
}

func (i *Interpreter) fail(at types.Position, msg string) error {
	return errors.Fatal(errors.RuntimeError{Location: at, Message: msg})
}

func (i *Interpreter) write(s string) error {
	if _, err := io.WriteString(i.out, s); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

func (i *Interpreter) statementList(list *ast.StatementList) error {
	for _, stmt := range list.Statements {
		if err := i.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) statement(s ast.Statement) error {
	switch v := s.(type) {
	case *ast.Assign:
		value, err := i.expression(v.Value)
		if err != nil {
			return err
		}
		sym, ok := i.table.Lookup(v.Target.Name)
		if !ok {
			return i.fail(v.Target.Token.Location, "Variable not declared")
		}
		i.table.Define(v.Target.Name, sym.Type, value)
	case *ast.VariableDeclaration:
		value := symbols.Zero(v.Type.Name)
		if v.Value != nil {
			var err error
			if value, err = i.expression(v.Value); err != nil {
				return err
			}
		}
		i.table.Define(v.Variable.Name, v.Type.Name, value)
	case *ast.Print:
		value, err := i.expression(v.Value)
		if err != nil {
			return err
		}
		return i.write(value.String())
	case *ast.Read:
		return i.read(v)
	case *ast.Assert:
		value, err := i.expression(v.Value)
		if err != nil {
			return err
		}
		ok, isBool := value.(symbols.Bool)
		if !isBool {
			return i.fail(v.Token.Location, "Assert requires an expression that evaluates to boolean")
		}
		if !ok {
			return i.write(assertionFailed)
		}
	case *ast.For:
		return i.loop(v)
	case *ast.NoOp:
	default:
		panic("unhandled statement")
	}
	return nil
}

func (i *Interpreter) bound(e ast.Expression) (int64, error) {
	value, err := i.expression(e)
	if err != nil {
		return 0, err
	}
	n, ok := value.(symbols.Int)
	if !ok {
		return 0, i.fail(ast.Pos(e), "Invalid type for expression in for loop, integer required")
	}
	return int64(n), nil
}

// loop evaluates both bounds once, then redefines the control variable on
// every iteration. The variable keeps its last value after the loop.
func (i *Interpreter) loop(v *ast.For) error {
	start, err := i.bound(v.Start)
	if err != nil {
		return err
	}
	end, err := i.bound(v.End)
	if err != nil {
		return err
	}

	plog.Debugf("%s: for %s in %d..%d", v.Token.Location, v.Control.Name, start, end)
	for n := start; n <= end; n++ {
		i.table.Define(v.Control.Name, symbols.TypeInt, symbols.Int(n))
		if err := i.statementList(v.Body); err != nil {
			return err
		}
	}
	return nil
}

// read takes the first whitespace-delimited word of the next input line.
func (i *Interpreter) read(v *ast.Read) error {
	sym, ok := i.table.Lookup(v.Target.Name)
	if !ok {
		return i.fail(v.Target.Token.Location, "Variable not declared")
	}

	line, err := i.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return tracerr.Wrap(err)
	}
	word := ""
	if fields := strings.Fields(line); len(fields) > 0 {
		word = fields[0]
	}

	if sym.Type != symbols.TypeInt {
		i.table.Define(v.Target.Name, sym.Type, symbols.Str(word))
		return nil
	}

	n, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return i.fail(v.Target.Token.Location, "Integer overflow")
		}
		return i.fail(v.Target.Token.Location, "Tried to assign non-integer value to integer")
	}
	i.table.Define(v.Target.Name, sym.Type, symbols.Int(n))
	return nil
}
