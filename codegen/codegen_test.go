package codegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/lexer"
	"github.com/pontaoski/minipl/parser"
	"github.com/pontaoski/minipl/semantic"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	c := semantic.NewChecker(parser.NewParser(lexer.FromString(src, "test")))
	if err := c.Analyze(); err != nil {
		t.Fatal(err)
	}
	m, err := FromChecker(c)
	if err != nil {
		t.Fatal(err)
	}
	return m.String()
}

func TestGenerate(t *testing.T) {
	out := generate(t, `var nTimes : int := 0;
print "How many times?";
read nTimes;
var x : int;
for x in 0..nTimes-1 do
	print x;
	print " : Hello, World!\n";
end for;
assert (x = nTimes);`)

	for _, want := range []string{
		"define i32 @main()",
		"@printf(",
		"@scanf(",
		"@minipl.fail(",
		"@var.nTimes = global i32 0",
		"@var.x = global i32 0",
		"Assertion failed",
		"Hello, World!",
		"phi i64",
		"icmp sle i64",
		"Tried to assign non-integer value to integer",
		"ret i32 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestDivisionIsGuarded(t *testing.T) {
	out := generate(t, `var x : int := 7; print x / 2;`)
	for _, want := range []string{
		"sdiv i32",
		"RUNTIME ERROR [Line 1, Column 27] Attempted to divide by zero",
		"RUNTIME ERROR [Line 1, Column 27] Integer overflow",
		"unreachable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestStringsAndBools(t *testing.T) {
	out := generate(t, `var s : string; var b : bool := "a" < s; s := s + "x"; assert(b = !b); assert(s = "x");`)
	for _, want := range []string{
		"@var.s = global i8*",
		"@var.b = global i1 false",
		"@strlen(",
		"@malloc(",
		"@strcat(",
		"@strcmp(",
		"xor i1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestStringConstantsAreShared(t *testing.T) {
	out := generate(t, `print "same"; print "same";`)
	if n := strings.Count(out, `c"same\00"`); n != 1 {
		t.Errorf("%d copies of the constant", n)
	}
}

func TestStringConstantsAreDistinct(t *testing.T) {
	out := generate(t, `print "one"; print "two"; print "one";`)
	names := map[string]string{}
	for _, lit := range []string{"one", "two"} {
		m := regexp.MustCompile(`(@str\.\d+) = constant \[4 x i8\] c"`+lit+`\\00"`).FindAllStringSubmatch(out, -1)
		if len(m) != 1 {
			t.Fatalf("%q: %d definitions in\n%s", lit, len(m), out)
		}
		names[lit] = m[0][1]
	}
	if names["one"] == names["two"] {
		t.Errorf("both literals named %s", names["one"])
	}
}

func TestRefusesFailedCheck(t *testing.T) {
	c := semantic.NewChecker(parser.NewParser(lexer.FromString(`print y;`, "test")))
	if err := c.Analyze(); err != nil {
		t.Fatal(err)
	}
	if _, err := FromChecker(c); err == nil {
		t.Error("generated code for a program with semantic errors")
	}
}

func TestUncheckedErrors(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{`print y;`, "ERROR [Line 1, Column 7] Variable not declared"},
		{`var x : int; x := "a";`, "ERROR [Line 1, Column 19] Type mismatch"},
		{`print 1 + "a";`, "ERROR [Line 1, Column 9] Type mismatch"},
		{`print -"a";`, "ERROR [Line 1, Column 7] Unsupported operation for type string"},
	}
	for _, tt := range tests {
		prog, err := parser.NewParser(lexer.FromString(tt.src, "test")).Parse()
		if err != nil {
			t.Fatal(err)
		}
		_, err = Generate(prog)
		d, ok := errors.AsDiagnostic(err)
		if !ok {
			t.Errorf("%q: got %v", tt.src, err)
			continue
		}
		if d.Error() != tt.want {
			t.Errorf("%q: got %q, want %q", tt.src, d.Error(), tt.want)
		}
	}
}
