// Package config loads the condgen CLI configuration.
//
// Values are layered, from lowest to highest precedence: built-in
// defaults, the condgen.yaml config file, CONDGEN_* environment variables
// and explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/condgen/compiler/gen"
	"github.com/syssam/condgen/dialect"
)

// Defaults.
const (
	DefaultFile      = "condgen.yaml"
	DefaultTarget    = "query"
	DefaultFormat    = FormatGo
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	EnvPrefix        = "CONDGEN_"
)

// Output formats of the generate command.
const (
	FormatGo      = "go"
	FormatJSON    = gen.FormatJSON
	FormatMsgpack = gen.FormatMsgpack
)

// Config is the CLI configuration.
type Config struct {
	// Schemas are schema files or directories.
	Schemas         []string `koanf:"schemas"`
	Target          string   `koanf:"target"`
	Package         string   `koanf:"package"`
	Dialect         string   `koanf:"dialect"`
	OrderHelpers    bool     `koanf:"order_helpers"`
	Workers         int      `koanf:"workers"`
	ContinueOnError bool     `koanf:"continue_on_error"`
	Header          string   `koanf:"header"`
	// Format is "go", "json" or "msgpack".
	Format    string `koanf:"format"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"schema": "schemas",
}

// Load reads the configuration. An explicit path must exist; otherwise
// condgen.yaml in the working directory is read if present. Only flags
// that were set on the command line override the other layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"target":        DefaultTarget,
		"dialect":       dialect.MySQL,
		"order_helpers": true,
		"format":        DefaultFormat,
		"header":        gen.DefaultHeader,
		"log_level":     DefaultLogLevel,
		"log_format":    DefaultLogFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	used := path
	if used == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			used = DefaultFile
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = used
	return &cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if !dialect.Valid(c.Dialect) {
		errs = append(errs, gen.NewConfigError("dialect", c.Dialect, "unsupported dialect"))
	}
	if !slices.Contains([]string{FormatGo, FormatJSON, FormatMsgpack}, c.Format) {
		errs = append(errs, gen.NewConfigError("format", c.Format, "must be go, json or msgpack"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, gen.NewConfigError("log_level", c.LogLevel, err.Error()))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, gen.NewConfigError("log_format", c.LogFormat, "must be text or json"))
	}
	if c.Workers < 0 {
		errs = append(errs, gen.NewConfigError("workers", c.Workers, "must not be negative"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Options returns the generator options of the configuration.
func (c *Config) Options(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithDialect(c.Dialect),
		gen.WithOrderHelpers(c.OrderHelpers),
		gen.WithContinueOnError(c.ContinueOnError),
	}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if logger != nil {
		opts = append(opts, gen.WithLogger(logger))
	}
	return opts
}

// RegisterFlags defines the configuration flags on fs. Their defaults are
// zero values; defaults are applied by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSliceP("schema", "s", nil, "schema files or directories")
	fs.StringP("target", "o", "", "output directory of generated files (default "+DefaultTarget+")")
	fs.String("package", "", "import path of the generated package")
	fs.String("dialect", "", "SQL dialect: mysql, postgres or sqlite (default mysql)")
	fs.Bool("order-helpers", true, "generate ordering helpers")
	fs.Int("workers", 0, "schemas generated in parallel (default GOMAXPROCS)")
	fs.Bool("continue-on-error", false, "generate the remaining schemas after a failure")
	fs.String("header", "", "header comment of generated files")
	fs.StringP("format", "f", "", "output format: go, json or msgpack (default go)")
	fs.String("log-level", "", "log level: debug, info, warn or error (default info)")
	fs.String("log-format", "", "log format: text or json (default text)")
}
