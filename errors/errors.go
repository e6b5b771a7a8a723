package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pontaoski/minipl/types"
	"github.com/ztrue/tracerr"
)

// EmptySource is returned by loaders before lexing a zero-length program.
var EmptySource = stderrors.New("ERROR: The program source file is empty")

// Diagnostic is implemented by every positioned MiniPL error.
type Diagnostic interface {
	error
	Position() types.Position
}

func render(tag string, p types.Position, msg string) string {
	if tag != "" {
		tag += " "
	}
	return fmt.Sprintf("%sERROR [Line %d, Column %d] %s", tag, p.Line, p.Column, msg)
}

type LexicalError struct {
	Location types.Position
	Message  string
}

func (e LexicalError) Error() string {
	return render("LEXICAL", e.Location, e.Message)
}

func (e LexicalError) Position() types.Position { return e.Location }

type ParseError struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Position
}

func (e ParseError) Error() string {
	msg := "Invalid token sequence"
	switch len(e.Expected) {
	case 0:
		msg = fmt.Sprintf("%s: unexpected %s", msg, e.Got)
	case 1:
		msg = fmt.Sprintf("%s: got %s, expected %s", msg, e.Got, e.Expected[0])
	default:
		msg = fmt.Sprintf("%s: got %s, expected one of %s", msg, e.Got, e.Expected)
	}
	return render("PARSE", e.Location, msg)
}

func (e ParseError) Position() types.Position { return e.Location }

// SemanticError is the generic checker diagnostic.
type SemanticError struct {
	Location types.Position
	Message  string
}

func (e SemanticError) Error() string {
	return render("", e.Location, e.Message)
}

func (e SemanticError) Position() types.Position { return e.Location }

// UnsupportedOperation reports an operator applied to operands of a type
// that does not define it.
type UnsupportedOperation struct {
	Location types.Position
	Type     string
}

func (e UnsupportedOperation) Error() string {
	return render("", e.Location, "Unsupported operation for type "+e.Type)
}

func (e UnsupportedOperation) Position() types.Position { return e.Location }

type RuntimeError struct {
	Location types.Position
	Message  string
}

func (e RuntimeError) Error() string {
	return render("RUNTIME", e.Location, e.Message)
}

func (e RuntimeError) Position() types.Position { return e.Location }

// Fatal wraps a diagnostic with a stack trace for the trace printer.
func Fatal(d Diagnostic) error {
	return tracerr.Wrap(d)
}

// AsDiagnostic strips any trace wrapping and returns the underlying
// diagnostic, if err is one.
func AsDiagnostic(err error) (Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var d Diagnostic
	if stderrors.As(tracerr.Unwrap(err), &d) {
		return d, true
	}
	return nil, false
}
