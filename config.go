package main

import (
	"io/ioutil"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "minipl.yaml"

type config struct {
	Prompt   string `yaml:"prompt"`
	History  string `yaml:"history,omitempty"`
	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`
	Color    bool   `yaml:"color"`
}

func defaultConfig() config {
	return config{
		Prompt:   "Enter the filename where the code is: ",
		LogLevel: "WARNING",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Errorf("error reading %s: %s", path, err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := ioutil.WriteFile(path, out, 0644); err != nil {
		return tracerr.Errorf("error creating %s: %s", path, err)
	}
	return nil
}

func (c config) logLevel() (capnslog.LogLevel, error) {
	level, err := capnslog.ParseLevel(c.LogLevel)
	if err != nil {
		return capnslog.WARNING, tracerr.Wrap(err)
	}
	return level, nil
}
