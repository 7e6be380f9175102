// Package config loads the optional configuration file of the eventlog
// command. Every key may be overridden by a command line flag.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the structure of the configuration file. Unknown keys are
// rejected so typos do not go unnoticed.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Jobs        int    `yaml:"jobs"`
	ShowUnknown bool   `yaml:"show_unknown"`
	Grep        Grep   `yaml:"grep"`
}

// Grep holds the defaults of the grep command.
type Grep struct {
	Pattern string `yaml:"pattern"`
	Invert  bool   `yaml:"invert"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:    "warn",
		Jobs:        1,
		ShowUnknown: true,
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %v: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration over the defaults and validates it.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value can be used.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1; got %d", c.Jobs)
	}
	if _, err := c.Grep.Regexp(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// Regexp compiles the pattern, returning nil if none is set.
func (g Grep) Regexp() (*regexp.Regexp, error) {
	if g.Pattern == "" {
		return nil, nil
	}
	return regexp.Compile(g.Pattern)
}
