package main

import (
	"bufio"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "main")

func fileAction(fn func(d *driver, src, filename string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("no source file provided", 1)
		}
		src, err := readSource(path)
		if err != nil {
			return err
		}
		return fn(newDriver(c), src, path)
	}
}

func newDriver(c *cli.Context) *driver {
	cfg := c.App.Metadata["config"].(config)
	if c.IsSet("trace") {
		cfg.Trace = c.Bool("trace")
	}
	return &driver{cfg: cfg, in: bufio.NewReader(os.Stdin), out: os.Stdout, output: c.String("output")}
}

func setup(c *cli.Context) error {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, false))

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	level, err := cfg.logLevel()
	if err != nil {
		return err
	}
	capnslog.SetGlobalLogLevel(level)
	plog.Debugf("configuration: %+v", cfg)

	c.App.Metadata["config"] = cfg
	return nil
}

func main() {
	app := &cli.App{
		Name:     "minipl",
		Usage:    "MiniPL interpreter",
		Metadata: map[string]interface{}{},
		Before:   setup,
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if coder, ok := err.(cli.ExitCoder); ok {
				if msg := coder.Error(); msg != "" {
					plog.Error(msg)
				}
				os.Exit(coder.ExitCode())
			}
			plog.Fatalf("%v", err)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: defaultConfigFile,
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces for fatal errors",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return fileAction((*driver).run)(c)
			}
			return newDriver(c).repl()
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "check and run a program",
				Action: fileAction((*driver).run),
			},
			{
				Name:   "check",
				Usage:  "report the diagnostics of a program without running it",
				Action: fileAction((*driver).check),
			},
			{
				Name:   "tokens",
				Usage:  "dump the token stream of a program",
				Action: fileAction((*driver).tokens),
			},
			{
				Name:   "ast",
				Usage:  "dump the syntax tree of a program",
				Action: fileAction((*driver).ast),
			},
			{
				Name:   "fmt",
				Usage:  "print a program in canonical layout",
				Action: fileAction((*driver).format),
			},
			{
				Name:  "ir",
				Usage: "emit LLVM IR for a program",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "write the IR to this file instead of stdout",
					},
				},
				Action: fileAction((*driver).ir),
			},
			{
				Name:  "repl",
				Usage: "prompt for program files and run them",
				Action: func(c *cli.Context) error {
					return newDriver(c).repl()
				},
			},
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Action: func(c *cli.Context) error {
					return writeConfig(c.String("config"), defaultConfig())
				},
			},
		},
	}
	app.Run(os.Args)
}
