package lexer

import (
	"bufio"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "lexer")

const eof = rune(-1)

// Lexer turns MiniPL source into tokens, one at a time. It never backs up:
// every decision is made with at most one rune of lookahead.
type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	done   bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 1, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// FromString is a convenience for lexing in-memory source.
func FromString(src, filename string) *Lexer {
	return NewLexer(strings.NewReader(src), filename)
}

func (l *Lexer) peek() (rune, error) {
	byt, err := l.reader.Peek(utf8.UTFMax)
	if err != nil && err != io.EOF {
		return eof, tracerr.Wrap(err)
	}
	if len(byt) == 0 {
		return eof, nil
	}
	r, _ := utf8.DecodeRune(byt)
	return r, nil
}

func (l *Lexer) next() (rune, error) {
	r, _, err := l.reader.ReadRune()
	if err == io.EOF {
		return eof, nil
	}
	if err != nil {
		return eof, tracerr.Wrap(err)
	}

	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r, nil
}

func (l *Lexer) fail(at types.Position, msg string) error {
	return errors.Fatal(errors.LexicalError{Location: at, Message: msg})
}

func (l *Lexer) kinded(k types.TokenKind, at types.Position) types.Token {
	return types.Token{Kind: k, Location: at}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexInteger(from types.Position) (types.Token, error) {
	var value int64
	overflow := false
	for {
		r, err := l.peek()
		if err != nil {
			return types.Token{}, err
		}
		if !isDigit(r) {
			break
		}
		if _, err := l.next(); err != nil {
			return types.Token{}, err
		}
		if !overflow {
			value = value*10 + int64(r-'0')
			overflow = value > math.MaxInt32
		}
	}
	if overflow {
		return types.Token{}, l.fail(from, "Integer overflow")
	}

	tok := l.kinded(types.INTEGER, from)
	tok.Int = int32(value)
	return tok, nil
}

func (l *Lexer) lexIdent(from types.Position) (types.Token, error) {
	var lit strings.Builder
	for {
		r, err := l.peek()
		if err != nil {
			return types.Token{}, err
		}
		if r == eof || !otherChar(r) {
			break
		}
		if _, err := l.next(); err != nil {
			return types.Token{}, err
		}
		lit.WriteRune(r)
	}

	word := lit.String()
	if kind, ok := types.Keywords[word]; ok {
		tok := l.kinded(kind, from)
		tok.Literal = word
		return tok, nil
	}
	tok := l.kinded(types.IDENTIFIER, from)
	tok.Literal = word
	return tok, nil
}

var escapes = map[rune]rune{
	'"':  '"',
	'n':  '\n',
	'\\': '\\',
	't':  '\t',
	'r':  '\r',
	'v':  '\v',
}

// lexString is called with the opening quote already consumed.
func (l *Lexer) lexString(from types.Position) (types.Token, error) {
	var lit strings.Builder
	for {
		at := l.pos
		r, err := l.next()
		if err != nil {
			return types.Token{}, err
		}

		switch r {
		case eof:
			return types.Token{}, l.fail(at, "Unclosed string")
		case '"':
			tok := l.kinded(types.STRING, from)
			tok.Literal = lit.String()
			return tok, nil
		case '\\':
			esc, err := l.next()
			if err != nil {
				return types.Token{}, err
			}
			if esc == eof {
				return types.Token{}, l.fail(at, "Unclosed string")
			}
			replacement, ok := escapes[esc]
			if !ok {
				return types.Token{}, l.fail(at, "Invalid character in string after escape character")
			}
			lit.WriteRune(replacement)
		case '\n', '\r':
		default:
			lit.WriteRune(r)
		}
	}
}

// skipLineComment is called with the leading "//" consumed.
func (l *Lexer) skipLineComment() error {
	for {
		r, err := l.next()
		if err != nil {
			return err
		}
		if r == '\n' || r == eof {
			return nil
		}
	}
}

// skipBlockComment is called with the leading "/*" consumed. Comments nest.
func (l *Lexer) skipBlockComment() error {
	depth := 1
	for depth > 0 {
		r, err := l.next()
		if err != nil {
			return err
		}
		if r == eof {
			return l.fail(l.pos, "Unclosed comment")
		}

		following, err := l.peek()
		if err != nil {
			return err
		}
		switch {
		case r == '*' && following == '/':
			depth--
		case r == '/' && following == '*':
			depth++
		default:
			continue
		}
		if _, err := l.next(); err != nil {
			return err
		}
	}
	return nil
}

var single = map[rune]types.TokenKind{
	'+': types.PLUS,
	'-': types.MINUS,
	'=': types.EQUAL,
	'<': types.LESS_THAN,
	'&': types.LOGICAL_AND,
	'!': types.LOGICAL_NOT,
	'(': types.PARENLEFT,
	')': types.PARENRIGHT,
	';': types.SEMICOLON,
}

// Next returns the next token, or an EOF token once input is exhausted.
// Every error it returns is fatal for the whole compilation.
func (l *Lexer) Next() (types.Token, error) {
	tok, err := l.lex()
	if err == nil {
		plog.Tracef("%s %s %q", tok.Location, tok.Kind, tok.Source())
	}
	return tok, err
}

func (l *Lexer) lex() (types.Token, error) {
	for {
		from := l.pos
		if l.done {
			return l.kinded(types.EOF, from), nil
		}

		r, err := l.peek()
		if err != nil {
			return types.Token{}, err
		}

		switch {
		case r == eof:
			l.done = true
			return l.kinded(types.EOF, from), nil
		case unicode.IsSpace(r):
			if _, err := l.next(); err != nil {
				return types.Token{}, err
			}
			continue
		case isDigit(r):
			return l.lexInteger(from)
		case firstChar(r):
			return l.lexIdent(from)
		}

		if _, err := l.next(); err != nil {
			return types.Token{}, err
		}
		following, err := l.peek()
		if err != nil {
			return types.Token{}, err
		}

		switch r {
		case '/':
			switch following {
			case '/':
				l.next()
				if err := l.skipLineComment(); err != nil {
					return types.Token{}, err
				}
				continue
			case '*':
				l.next()
				if err := l.skipBlockComment(); err != nil {
					return types.Token{}, err
				}
				continue
			}
			return l.kinded(types.DIV, from), nil
		case '*':
			if following == '/' {
				return types.Token{}, l.fail(from, "Unexpected multiline comment end")
			}
			return l.kinded(types.MUL, from), nil
		case '"':
			return l.lexString(from)
		case ':':
			if following == '=' {
				l.next()
				return l.kinded(types.ASSIGN, from), nil
			}
			// A lone colon must be followed by whitespace; "x:int" is rejected.
			if following == eof || unicode.IsSpace(following) {
				return l.kinded(types.COLON, from), nil
			}
		case '.':
			if following == '.' {
				l.next()
				return l.kinded(types.RANGE, from), nil
			}
		default:
			if kind, ok := single[r]; ok {
				return l.kinded(kind, from), nil
			}
		}

		return types.Token{}, l.fail(from, "Invalid character for token")
	}
}

// Tokenize lexes the remaining input. The returned slice ends with EOF.
func (l *Lexer) Tokenize() ([]types.Token, error) {
	var ret []types.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return ret, err
		}
		ret = append(ret, tok)
		if tok.Kind == types.EOF {
			return ret, nil
		}
	}
}
