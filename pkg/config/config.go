package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
)

// Config is the effective configuration of a run
type Config struct {
	Lock        bool               `koanf:"lock"`
	Params      placeholder.Params `koanf:"params"`
	Source      Source             `koanf:"source"`
	Staging     Staging            `koanf:"staging"`
	Permissions Permissions        `koanf:"permissions"`
	Watch       Watch              `koanf:"watch"`
	Output      Output             `koanf:"output"`
}

// Source locates the canonical template tree
type Source struct {
	Root   string   `koanf:"root"`
	Ignore []string `koanf:"ignore"`
}

// Staging locates the staging tree
type Staging struct {
	Root string `koanf:"root"`
}

// Permissions are applied to everything spec-coding creates
type Permissions struct {
	File      os.FileMode `koanf:"file"`
	Directory os.FileMode `koanf:"directory"`
}

// Watch configures the watch command
type Watch struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Output configures terminal rendering
type Output struct {
	Color string `koanf:"color"`
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IgnoreRules returns the ignore patterns in matcher form
func (c *Config) IgnoreRules() rules.Ignore {
	return rules.Ignore(c.Source.Ignore)
}

// Validate checks values no layer may break
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.IgnoreRules().Validate(); err != nil {
		return err
	}
	if c.Staging.Root == "" {
		return errors.New(errors.ErrConfigValid, "staging.root is empty")
	}
	if c.Permissions.File == 0 || c.Permissions.Directory == 0 {
		return errors.New(errors.ErrConfigValid, "permissions must be non-zero")
	}
	if c.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "watch.debounce must not be negative")
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigValid, "output.color must be auto, always or never, got %q", c.Output.Color)
	}
	return nil
}

// tomlView is the serialized shape of Config. Modes and durations are
// rendered as the strings the loader accepts.
type tomlView struct {
	Lock        bool               `toml:"lock"`
	Params      placeholder.Params `toml:"params"`
	Source      tomlSource         `toml:"source"`
	Staging     tomlStaging        `toml:"staging"`
	Permissions tomlPermissions    `toml:"permissions"`
	Watch       tomlWatch          `toml:"watch"`
	Output      tomlOutput         `toml:"output"`
}

type tomlSource struct {
	Root   string   `toml:"root"`
	Ignore []string `toml:"ignore"`
}

type tomlStaging struct {
	Root string `toml:"root"`
}

type tomlPermissions struct {
	File      string `toml:"file"`
	Directory string `toml:"directory"`
}

type tomlWatch struct {
	Debounce string `toml:"debounce"`
}

type tomlOutput struct {
	Color string `toml:"color"`
}

// ToTOML renders the effective configuration. The output loads back to an
// equal Config.
func (c *Config) ToTOML() (string, error) {
	v := tomlView{
		Lock:        c.Lock,
		Params:      c.Params,
		Source:      tomlSource{Root: c.Source.Root, Ignore: c.Source.Ignore},
		Staging:     tomlStaging{Root: c.Staging.Root},
		Permissions: tomlPermissions{File: formatMode(c.Permissions.File), Directory: formatMode(c.Permissions.Directory)},
		Watch:       tomlWatch{Debounce: c.Watch.Debounce.String()},
		Output:      tomlOutput{Color: c.Output.Color},
	}

	data, err := toml.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}
