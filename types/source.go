package types

import (
	"strconv"
	"strings"
)

var escapes = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	"\v", `\v`,
)

// Quote renders s as a MiniPL string literal.
func Quote(s string) string {
	return `"` + escapes.Replace(s) + `"`
}

// Source returns text that lexes back to a token of the same kind.
func (t Token) Source() string {
	switch t.Kind {
	case INTEGER:
		return strconv.FormatInt(int64(t.Int), 10)
	case STRING:
		return Quote(t.Literal)
	case IDENTIFIER:
		return t.Literal
	case BOOL:
		return strconv.FormatBool(t.Bool)
	case EOF:
		return ""
	}
	for word, kind := range Keywords {
		if kind == t.Kind {
			return word
		}
	}
	return Punctuation[t.Kind]
}

// Render joins a token stream back into source text. Tokens are separated by
// a single space, which also satisfies the colon rule of the lexer.
func Render(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == EOF {
			break
		}
		parts = append(parts, tok.Source())
	}
	return strings.Join(parts, " ")
}
