package config

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/arthur-debert/httpgraph/pkg/errors"
)

// Config is the effective httpgraph configuration.
type Config struct {
	Output   Output   `koanf:"output" toml:"output"`
	Log      Log      `koanf:"log" toml:"log"`
	Registry Registry `koanf:"registry" toml:"registry"`
}

// Output controls how trees are written.
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Color  string `koanf:"color" toml:"color"`
	File   string `koanf:"file" toml:"file"`
}

// Log controls diagnostics.
type Log struct {
	Verbosity int    `koanf:"verbosity" toml:"verbosity"`
	File      string `koanf:"file" toml:"file"`
}

// Registry controls wrapper registration.
type Registry struct {
	Strict bool `koanf:"strict" toml:"strict"`
}

var (
	formats = []string{"auto", "term", "text", "json", "yaml", "xml"}
	colors  = []string{"auto", "always", "never"}
)

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var err error
	if !oneOf(c.Output.Format, formats) {
		err = multierr.Append(err, errors.Newf(errors.ErrConfigValid,
			"output.format %q must be one of %s", c.Output.Format, strings.Join(formats, ", ")))
	}
	if !oneOf(c.Output.Color, colors) {
		err = multierr.Append(err, errors.Newf(errors.ErrConfigValid,
			"output.color %q must be one of %s", c.Output.Color, strings.Join(colors, ", ")))
	}
	if c.Output.File == "" {
		err = multierr.Append(err, errors.New(errors.ErrConfigValid, `output.file cannot be empty, use "-" for standard output`))
	}
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 3 {
		err = multierr.Append(err, errors.Newf(errors.ErrConfigValid,
			"log.verbosity %d must be between 0 and 3", c.Log.Verbosity))
	}
	return err
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
