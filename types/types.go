package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type TokenKind int

const (
	EOF TokenKind = iota

	INTEGER
	STRING
	BOOL

	IDENTIFIER

	VAR
	INT_TYPE
	STRING_TYPE
	BOOL_TYPE
	PRINT
	READ
	ASSERT
	FOR
	IN
	DO
	END

	PLUS
	MINUS
	MUL
	DIV
	EQUAL
	LESS_THAN
	LOGICAL_AND
	LOGICAL_NOT
	ASSIGN
	PARENLEFT
	PARENRIGHT
	SEMICOLON
	COLON
	RANGE
)

var kindNames = map[TokenKind]string{
	EOF:         "EOF",
	INTEGER:     "INTEGER",
	STRING:      "STRING",
	BOOL:        "BOOL",
	IDENTIFIER:  "IDENTIFIER",
	VAR:         "VAR",
	INT_TYPE:    "INT_TYPE",
	STRING_TYPE: "STRING_TYPE",
	BOOL_TYPE:   "BOOL_TYPE",
	PRINT:       "PRINT",
	READ:        "READ",
	ASSERT:      "ASSERT",
	FOR:         "FOR",
	IN:          "IN",
	DO:          "DO",
	END:         "END",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	MUL:         "MUL",
	DIV:         "DIV",
	EQUAL:       "EQUAL",
	LESS_THAN:   "LESS_THAN",
	LOGICAL_AND: "LOGICAL_AND",
	LOGICAL_NOT: "LOGICAL_NOT",
	ASSIGN:      "ASSIGN",
	PARENLEFT:   "PARENLEFT",
	PARENRIGHT:  "PARENRIGHT",
	SEMICOLON:   "SEMICOLON",
	COLON:       "COLON",
	RANGE:       "RANGE",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps every reserved word to its token kind.
var Keywords = map[string]TokenKind{
	"var":    VAR,
	"int":    INT_TYPE,
	"string": STRING_TYPE,
	"bool":   BOOL_TYPE,
	"print":  PRINT,
	"read":   READ,
	"assert": ASSERT,
	"for":    FOR,
	"in":     IN,
	"do":     DO,
	"end":    END,
}

// Punctuation is the source spelling of every operator and punctuation kind.
var Punctuation = map[TokenKind]string{
	PLUS:        "+",
	MINUS:       "-",
	MUL:         "*",
	DIV:         "/",
	EQUAL:       "=",
	LESS_THAN:   "<",
	LOGICAL_AND: "&",
	LOGICAL_NOT: "!",
	ASSIGN:      ":=",
	PARENLEFT:   "(",
	PARENRIGHT:  ")",
	SEMICOLON:   ";",
	COLON:       ":",
	RANGE:       "..",
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Token is immutable once the lexer hands it out. Literal holds the text of
// identifiers and strings, Int the value of integer literals.
type Token struct {
	Kind     TokenKind
	Location Position
	Literal  string
	Int      int32
	Bool     bool
}
