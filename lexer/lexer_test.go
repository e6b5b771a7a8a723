package lexer

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/pontaoski/minipl/types"
)

func kinds(t *testing.T, src string) []types.TokenKind {
	t.Helper()
	toks, err := FromString(src, "test").Tokenize()
	if err != nil {
		t.Fatalf("lexing %q: %s", src, err)
	}
	var ret []types.TokenKind
	for _, tok := range toks {
		ret = append(ret, tok.Kind)
	}
	return ret
}

func lexErr(t *testing.T, src string) string {
	t.Helper()
	_, err := FromString(src, "test").Tokenize()
	if err == nil {
		t.Fatalf("lexing %q: expected an error", src)
	}
	return err.Error()
}

func TestLexer(t *testing.T) {
	got := kinds(t, `var x : int := (1 + 2) * 3;
for i in 0..x do print i; end for;
assert(!(x = 3) & x < 10);
read s; print "hi" / 2 - 1`)

	want := []types.TokenKind{
		types.VAR, types.IDENTIFIER, types.COLON, types.INT_TYPE, types.ASSIGN,
		types.PARENLEFT, types.INTEGER, types.PLUS, types.INTEGER, types.PARENRIGHT,
		types.MUL, types.INTEGER, types.SEMICOLON,
		types.FOR, types.IDENTIFIER, types.IN, types.INTEGER, types.RANGE, types.IDENTIFIER,
		types.DO, types.PRINT, types.IDENTIFIER, types.SEMICOLON, types.END, types.FOR, types.SEMICOLON,
		types.ASSERT, types.PARENLEFT, types.LOGICAL_NOT, types.PARENLEFT, types.IDENTIFIER,
		types.EQUAL, types.INTEGER, types.PARENRIGHT, types.LOGICAL_AND, types.IDENTIFIER,
		types.LESS_THAN, types.INTEGER, types.PARENRIGHT, types.SEMICOLON,
		types.READ, types.IDENTIFIER, types.SEMICOLON, types.PRINT, types.STRING, types.DIV,
		types.INTEGER, types.MINUS, types.INTEGER, types.EOF,
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestPayloadsAndPositions(t *testing.T) {
	toks, err := FromString("var abc_1 : string;\n  x := 42", "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	if toks[1].Literal != "abc_1" {
		t.Errorf("identifier literal = %q", toks[1].Literal)
	}
	if toks[3].Kind != types.STRING_TYPE {
		t.Errorf("type keyword kind = %s", toks[3].Kind)
	}

	x := toks[5]
	if x.Location.Line != 2 || x.Location.Column != 3 {
		t.Errorf("x at %d:%d, want 2:3", x.Location.Line, x.Location.Column)
	}
	num := toks[7]
	if num.Int != 42 || num.Location.Line != 2 || num.Location.Column != 8 {
		t.Errorf("42 lexed as %d at %d:%d", num.Int, num.Location.Line, num.Location.Column)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := FromString("x", "test")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && tok.Kind != types.EOF {
			t.Errorf("call %d returned %s", i, tok.Kind)
		}
	}
}

func TestComments(t *testing.T) {
	got := kinds(t, `print 1; // trailing
/* block /* nested */ still comment */ print 2 /**/`)
	want := []types.TokenKind{
		types.PRINT, types.INTEGER, types.SEMICOLON, types.PRINT, types.INTEGER, types.EOF,
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestCommentLinesAreCounted(t *testing.T) {
	toks, err := FromString("/* a\nb\n*/ // c\nx", "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Location.Line != 4 || toks[0].Location.Column != 1 {
		t.Errorf("x at %s", toks[0].Location)
	}
}

func TestStrings(t *testing.T) {
	toks, err := FromString(`"a\"b\n\\\t\r\v" "line
break"`, "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Literal != "a\"b\n\\\t\r\v" {
		t.Errorf("escapes: %q", toks[0].Literal)
	}
	if toks[1].Literal != "linebreak" {
		t.Errorf("embedded newline should be dropped: %q", toks[1].Literal)
	}

	toks, err = FromString("\"a\rb\" \"c\r\nd\"", "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Literal != "ab" || toks[1].Literal != "cd" {
		t.Errorf("raw carriage returns should be dropped: %q %q", toks[0].Literal, toks[1].Literal)
	}
}

func TestColonNeedsWhitespace(t *testing.T) {
	if diff := deep.Equal(kinds(t, "x : int"), []types.TokenKind{
		types.IDENTIFIER, types.COLON, types.INT_TYPE, types.EOF,
	}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(kinds(t, "x :\tint"), []types.TokenKind{
		types.IDENTIFIER, types.COLON, types.INT_TYPE, types.EOF,
	}); diff != nil {
		t.Error(diff)
	}

	msg := lexErr(t, "var x :int;")
	if msg != "LEXICAL ERROR [Line 1, Column 7] Invalid character for token" {
		t.Errorf("got %q", msg)
	}
}

func TestLexicalErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x := 99999999999;", "LEXICAL ERROR [Line 1, Column 6] Integer overflow"},
		{"print 1 */", "LEXICAL ERROR [Line 1, Column 9] Unexpected multiline comment end"},
		{"/* /* */", "LEXICAL ERROR [Line 1, Column 9] Unclosed comment"},
		{`print "abc`, "LEXICAL ERROR [Line 1, Column 11] Unclosed string"},
		{`print "\q"`, "LEXICAL ERROR [Line 1, Column 8] Invalid character in string after escape character"},
		{"x := 1 # 2", "LEXICAL ERROR [Line 1, Column 8] Invalid character for token"},
		{"for i in 1.2", "LEXICAL ERROR [Line 1, Column 11] Invalid character for token"},
	}
	for _, c := range cases {
		if got := lexErr(t, c.src); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestMaxInt(t *testing.T) {
	toks, err := FromString("2147483647", "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Int != 2147483647 {
		t.Errorf("got %d", toks[0].Int)
	}
	lexErr(t, "2147483648")
}

func TestRoundTrip(t *testing.T) {
	programs := []string{
		`var nTimes : int := 0;
print "How many times?";
read nTimes;
var x : int;
for x in 0..nTimes-1 do
	print x;
	print " : Hello, World!\n";
end for;
assert (x = nTimes);`,
		`var s : string := "quote \" and \\ back"; var b : bool := !(1 < 2) & 3 = 3;`,
	}
	for _, src := range programs {
		first, err := FromString(src, "a").Tokenize()
		if err != nil {
			t.Fatal(err)
		}
		rendered := types.Render(first)
		second, err := FromString(rendered, "b").Tokenize()
		if err != nil {
			t.Fatalf("re-lexing %q: %s", rendered, err)
		}
		if len(first) != len(second) {
			t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Kind != second[i].Kind || first[i].Source() != second[i].Source() {
				t.Errorf("token %d: %s %q vs %s %q", i, first[i].Kind, first[i].Source(), second[i].Kind, second[i].Source())
			}
		}
		if strings.Contains(rendered, "\n") {
			t.Errorf("rendered source should be single line: %q", rendered)
		}
	}
}
