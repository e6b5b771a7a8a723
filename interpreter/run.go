package interpreter

import (
	"strings"

	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/lexer"
	"github.com/pontaoski/minipl/parser"
	"github.com/pontaoski/minipl/semantic"
)

// Check lexes, parses and checks src. A non-nil error is fatal; otherwise the
// checker holds the (possibly empty) list of diagnostics.
func Check(src, filename string) (*semantic.Checker, error) {
	if src == "" {
		return nil, errors.EmptySource
	}
	checker := semantic.NewChecker(parser.NewParser(lexer.NewLexer(strings.NewReader(src), filename)))
	if err := checker.Analyze(); err != nil {
		return nil, err
	}
	return checker, nil
}

// Run checks src and, only if the check found nothing, executes it. It returns
// the semantic diagnostics that prevented execution, or the fatal error that
// stopped compilation or execution.
func Run(src, filename string, opts ...Option) ([]error, error) {
	checker, err := Check(src, filename)
	if err != nil {
		return nil, err
	}
	if checker.HasErrors() {
		return checker.Errors(), nil
	}
	plog.Debugf("running %s", filename)
	return nil, FromChecker(checker, opts...).Interpret()
}
