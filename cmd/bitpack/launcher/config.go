// This file maps the CLI context and config file to the Config struct.

package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-bitpack/enc/crc"
	"github.com/rony4d/go-bitpack/headers"
)

// Config aggregates everything the commands need.
type Config struct {
	Logging LoggingConfig
	Codec   CodecConfig
	// Formats maps names to format strings so --format can refer to them.
	Formats map[string]string
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type CodecConfig struct {
	Algorithm   string
	ByteSwapped bool
	DumpMode    string
	DumpWidth   int
	Header      string
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
			SentryDSN: d.Logging.SentryDSN,
		},
		Codec: CodecConfig{
			Algorithm:   d.Codec.Algorithm,
			ByteSwapped: d.Codec.ByteSwapped,
			DumpMode:    d.Codec.DumpMode,
			DumpWidth:   d.Codec.DumpWidth,
			Header:      d.Codec.Header,
		},
		Formats: map[string]string{},
	}
}

// MakeAllConfigs merges defaults, the optional config file and global CLI
// overrides into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	if cfg.Formats == nil {
		cfg.Formats = map[string]string{}
	}
	return err
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}
}

// applyCommandOverrides folds the flags of a single command into the codec
// settings. Flags a command does not declare are never set.
func applyCommandOverrides(ctx *cli.Context, cfg *CodecConfig) {
	if ctx.IsSet("alg") {
		cfg.Algorithm = ctx.String("alg")
	}
	if ctx.IsSet("swap") {
		cfg.ByteSwapped = ctx.Bool("swap")
	}
	if ctx.IsSet("mode") {
		cfg.DumpMode = ctx.String("mode")
	}
	if ctx.IsSet("width") {
		cfg.DumpWidth = ctx.Int("width")
	}
	if ctx.IsSet("header") {
		cfg.Header = ctx.String("header")
	}
}

func (cfg *Config) validate() error {
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (valid: text, json)", cfg.Logging.Format)
	}
	if cfg.Logging.Verbosity < 0 || cfg.Logging.Verbosity > 5 {
		return fmt.Errorf("invalid log verbosity %d (valid: 0..5)", cfg.Logging.Verbosity)
	}
	return cfg.Codec.validate()
}

func (cfg *CodecConfig) validate() error {
	if _, err := crc.ParseAlgorithm(cfg.Algorithm); err != nil {
		return err
	}
	switch cfg.DumpMode {
	case "hex", "bin", "bits":
	default:
		return fmt.Errorf("invalid dump mode %q (valid: hex, bin, bits)", cfg.DumpMode)
	}
	if cfg.DumpWidth < 1 || cfg.DumpWidth > 64 {
		return fmt.Errorf("invalid dump width %d (valid: 1..64)", cfg.DumpWidth)
	}
	if _, err := headers.ByName(cfg.Header); err != nil {
		return err
	}
	return nil
}

// lookupFormat resolves a --format value against the named formats.
func (cfg *Config) lookupFormat(name string) string {
	if src, ok := cfg.Formats[strings.TrimSpace(name)]; ok {
		return src
	}
	return name
}

// dumpConfig renders cfg as TOML.
func dumpConfig(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}
