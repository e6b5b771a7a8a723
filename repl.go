package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"
)

// repl asks for a program file, runs it and asks again until the input ends.
func (d *driver) repl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if d.cfg.History != "" {
		if f, err := os.Open(d.cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(d.cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		name, err := ln.Prompt(d.cfg.Prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(d.out)
			return nil
		}
		if err != nil {
			return tracerr.Wrap(err)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ln.AppendHistory(name)

		src, ok := d.load(name)
		if !ok {
			continue
		}
		// Failures are already reported; the loop goes on regardless.
		_ = d.run(src, name)
		fmt.Fprintln(d.out)
	}
}

// load reads a program named at the prompt. A missing file gets the short
// notice, anything else is reported in full.
func (d *driver) load(name string) (string, bool) {
	src, err := readSource(name)
	if err == nil {
		return src, true
	}
	plog.Debugf("%v", err)
	if os.IsNotExist(tracerr.Unwrap(err)) {
		fmt.Fprintln(d.out, "File doesn't exist")
	} else {
		d.report(err)
	}
	return "", false
}
