package main

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/codegen"
	"github.com/pontaoski/minipl/interpreter"
	"github.com/pontaoski/minipl/lexer"
	"github.com/pontaoski/minipl/parser"
	"github.com/pontaoski/minipl/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

// errFailed makes the app exit with status 1 after the failure has already
// been reported.
var errFailed = cli.Exit("", 1)

type driver struct {
	cfg config
	// in is shared by every run so buffered input is never lost between
	// programs.
	in  *bufio.Reader
	out io.Writer

	// output is where ir writes; empty means out.
	output string
}

// report prints a fatal error on a line of its own, optionally with the
// stack trace it was wrapped with.
func (d *driver) report(err error) {
	if d.cfg.Trace {
		if d.cfg.Color {
			tracerr.PrintSourceColor(err)
		} else {
			tracerr.PrintSource(err)
		}
	}
	fmt.Fprintf(d.out, "\n%s\n", err)
}

func (d *driver) diagnostics(errs []error) error {
	for _, err := range errs {
		fmt.Fprintln(d.out, err)
	}
	if len(errs) > 0 {
		return errFailed
	}
	return nil
}

func readSource(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func (d *driver) run(src, filename string) error {
	errs, err := interpreter.Run(src, filename, interpreter.WithInput(d.in), interpreter.WithOutput(d.out))
	if err != nil {
		d.report(err)
		return errFailed
	}
	return d.diagnostics(errs)
}

func (d *driver) check(src, filename string) error {
	c, err := interpreter.Check(src, filename)
	if err != nil {
		d.report(err)
		return errFailed
	}
	return d.diagnostics(c.Errors())
}

func (d *driver) tokens(src, filename string) error {
	l := lexer.FromString(src, filename)
	for {
		tok, err := l.Next()
		if err != nil {
			d.report(err)
			return errFailed
		}
		fmt.Fprintf(d.out, "%s\t%s\t%s\n", tok.Location, tok.Kind, tok.Source())
		if tok.Kind == types.EOF {
			return nil
		}
	}
}

func (d *driver) parse(src, filename string) (*ast.StatementList, error) {
	prog, err := parser.NewParser(lexer.FromString(src, filename)).Parse()
	if err != nil {
		d.report(err)
		return nil, errFailed
	}
	return prog, nil
}

func (d *driver) ast(src, filename string) error {
	prog, err := d.parse(src, filename)
	if err != nil {
		return err
	}
	repr.New(d.out).Println(prog)
	return nil
}

func (d *driver) format(src, filename string) error {
	prog, err := d.parse(src, filename)
	if err != nil {
		return err
	}
	fmt.Fprint(d.out, ast.Format(prog))
	return nil
}

func (d *driver) ir(src, filename string) error {
	c, err := interpreter.Check(src, filename)
	if err != nil {
		d.report(err)
		return errFailed
	}
	if err := d.diagnostics(c.Errors()); err != nil {
		return err
	}

	m, err := codegen.FromChecker(c)
	if err != nil {
		d.report(err)
		return errFailed
	}
	w := d.out
	if d.output != "" {
		f, err := os.Create(d.output)
		if err != nil {
			return tracerr.Wrap(err)
		}
		defer f.Close()
		w = f
	}
	_, err = io.WriteString(w, m.String())
	return tracerr.Wrap(err)
}
