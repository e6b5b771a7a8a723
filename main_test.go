package main

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coreos/pkg/capnslog"
	"github.com/go-test/deep"
	"github.com/ztrue/tracerr"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "minipl")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(tempDir(t), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(cfg, defaultConfig()); diff != nil {
		t.Error(diff)
	}
	level, err := cfg.logLevel()
	if err != nil || level != capnslog.WARNING {
		t.Errorf("level %v, %v", level, err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(tempDir(t), defaultConfigFile)
	want := config{Prompt: "> ", History: "hist", LogLevel: "DEBUG", Trace: true}
	if err := writeConfig(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestConfigPartialFile(t *testing.T) {
	path := filepath.Join(tempDir(t), defaultConfigFile)
	if err := ioutil.WriteFile(path, []byte("trace: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Trace || cfg.Prompt != defaultConfig().Prompt {
		t.Errorf("got %+v", cfg)
	}
}

func TestConfigErrors(t *testing.T) {
	path := filepath.Join(tempDir(t), defaultConfigFile)
	if err := ioutil.WriteFile(path, []byte("trace: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed file accepted")
	}
	if _, err := (config{LogLevel: "LOUD"}).logLevel(); err == nil {
		t.Error("unknown level accepted")
	}
}

func newTestDriver(input string) (*driver, *bytes.Buffer) {
	var out bytes.Buffer
	return &driver{cfg: defaultConfig(), in: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func TestDriverRun(t *testing.T) {
	tests := []struct {
		src, input, out string
		failed          bool
	}{
		{
			src: `var x : int; read x; print x * x;`, input: "7\n",
			out: "49",
		},
		{
			src:    `var x : int; var x : int; print y;`,
			out:    "ERROR [Line 1, Column 18] Variable x already declared\nERROR [Line 1, Column 33] Variable not declared\n",
			failed: true,
		},
		{
			src:    `print "a"; print 1/0;`,
			out:    "a\nRUNTIME ERROR [Line 1, Column 19] Attempted to divide by zero\n",
			failed: true,
		},
		{
			src:    `print @;`,
			out:    "\nLEXICAL ERROR [Line 1, Column 7] Invalid character for token\n",
			failed: true,
		},
		{
			src:    "",
			out:    "\nERROR: The program source file is empty\n",
			failed: true,
		},
	}

	for _, tt := range tests {
		d, out := newTestDriver(tt.input)
		err := d.run(tt.src, "test")
		if (err != nil) != tt.failed {
			t.Errorf("%q: error %v", tt.src, err)
		}
		if out.String() != tt.out {
			t.Errorf("%q: output %q, want %q", tt.src, out.String(), tt.out)
		}
	}
}

func TestDriverRunSharesInput(t *testing.T) {
	d, out := newTestDriver("1\n2\n")
	for i := 0; i < 2; i++ {
		if err := d.run(`var x : int; read x; print x;`, "test"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if out.String() != "12" {
		t.Errorf("output %q", out.String())
	}
}

func TestDriverLoad(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "prog.mpl")
	if err := ioutil.WriteFile(path, []byte(`print "a";`), 0644); err != nil {
		t.Fatal(err)
	}

	d, out := newTestDriver("")
	if src, ok := d.load(path); !ok || src != `print "a";` {
		t.Errorf("got %q, %v", src, ok)
	}
	if out.Len() != 0 {
		t.Errorf("output %q", out.String())
	}

	d, out = newTestDriver("")
	if _, ok := d.load(filepath.Join(dir, "missing.mpl")); ok {
		t.Error("missing file loaded")
	}
	if out.String() != "File doesn't exist\n" {
		t.Errorf("output %q", out.String())
	}

	d, out = newTestDriver("")
	if _, ok := d.load(dir); ok {
		t.Error("directory loaded")
	}
	if strings.Contains(out.String(), "File doesn't exist") || !strings.Contains(out.String(), dir) {
		t.Errorf("output %q", out.String())
	}
}

func TestDriverCheckDoesNotRun(t *testing.T) {
	d, out := newTestDriver("")
	if err := d.check(`print "x";`, "test"); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("output %q", out.String())
	}
	if err := d.check(`assert(1);`, "test"); err != errFailed {
		t.Errorf("got %v", err)
	}
}

func TestDriverTokens(t *testing.T) {
	d, out := newTestDriver("")
	if err := d.tokens(`print "a\n";`, "f"); err != nil {
		t.Fatal(err)
	}
	want := "f:1:1\tPRINT\tprint\nf:1:7\tSTRING\t\"a\\n\"\nf:1:12\tSEMICOLON\t;\nf:1:13\tEOF\t\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestDriverFormat(t *testing.T) {
	d, out := newTestDriver("")
	if err := d.format(`var i : int; for i in 1..2 do print i*2; end for`, "test"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "print (i * 2);") {
		t.Errorf("got %q", out.String())
	}
}

func TestDriverIR(t *testing.T) {
	path := filepath.Join(tempDir(t), "out.ll")
	d, out := newTestDriver("")
	d.output = path
	if err := d.ir(`print 1 + 2;`, "test"); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("IR went to output: %q", out.String())
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Errorf("got %s", data)
	}

	d, out = newTestDriver("")
	if err := d.ir(`print z;`, "test"); err != errFailed {
		t.Errorf("got %v", err)
	}
	if !strings.HasPrefix(out.String(), "ERROR [Line 1, Column 7] Variable not declared") {
		t.Errorf("got %q", out.String())
	}
}

func TestReadSource(t *testing.T) {
	if _, err := readSource(filepath.Join(tempDir(t), "nope")); !os.IsNotExist(tracerr.Unwrap(err)) {
		t.Errorf("got %v", err)
	}
}
