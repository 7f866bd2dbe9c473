package config

import (
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"

	"github.com/tparks5/ntpsec/pkg/exception"
	"github.com/tparks5/ntpsec/pkg/ntpfp"
)

const (
	DefaultFractionDigits  = 6
	DefaultApplicationName = "fptoa"
)

// InputFormat selects how textual values are read.
type InputFormat string

const (
	InputAuto    InputFormat = "auto"
	InputHex     InputFormat = "hex"
	InputDecimal InputFormat = "decimal"
)

// Parser returns the parse function for f.
func (f InputFormat) Parser() (func(string) (ntpfp.Short, error), error) {
	switch InputFormat(strings.ToLower(string(f))) {
	case "", InputAuto:
		return ntpfp.Parse, nil
	case InputHex:
		return ntpfp.ParseHex, nil
	case InputDecimal:
		return ntpfp.ParseDecimal, nil
	default:
		return nil, errors.Wrapf(exception.ErrUnknownInputFormat, "input: %q", string(f))
	}
}

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Format    FormatConfig    `json:"format"`
	Input     InputFormat     `json:"input"`
	Profiling ProfilingConfig `json:"profiling"`
}

// FormatConfig holds the default rendering options. Nil fields keep the
// built-in defaults.
type FormatConfig struct {
	FractionDigits *int  `json:"fractionDigits"`
	Msec           *bool `json:"msec"`
	Negative       *bool `json:"negative"`
}

// ProfilingConfig describes the continuous profiler connection.
type ProfilingConfig struct {
	Enabled         bool              `json:"enabled"`
	ServerAddress   string            `json:"serverAddress"`
	ApplicationName string            `json:"applicationName"`
	Tags            map[string]string `json:"tags"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Defaults  ntpfp.Request
	Input     InputFormat
	Parse     func(string) (ntpfp.Short, error)
	Profiling ProfilingConfig
}

// Default returns the configuration used when no file is given.
func Default() Loaded {
	loaded, err := resolve(FileConfig{})
	if err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return loaded
}

// Load reads a JSON config file. An empty path yields Default.
func Load(path string) (Loaded, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "read config %s", path)
	}

	loaded, err := Decode(data)
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "load config %s", path)
	}

	return loaded, nil
}

// Decode parses and resolves a JSON config document.
func Decode(data []byte) (Loaded, error) {
	var cfg FileConfig
	if err := sonic.ConfigStd.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "unmarshal config")
	}

	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	defaults := ntpfp.Request{FractionDigits: DefaultFractionDigits}
	if cfg.Format.FractionDigits != nil {
		defaults.FractionDigits = *cfg.Format.FractionDigits
	}
	if cfg.Format.Msec != nil {
		defaults.Msec = *cfg.Format.Msec
	}
	if cfg.Format.Negative != nil {
		defaults.Negative = *cfg.Format.Negative
	}

	input := InputFormat(strings.ToLower(string(cfg.Input)))
	if input == "" {
		input = InputAuto
	}
	parse, err := input.Parser()
	if err != nil {
		return Loaded{}, err
	}

	profiling := cfg.Profiling
	if profiling.ApplicationName == "" {
		profiling.ApplicationName = DefaultApplicationName
	}

	loaded := Loaded{
		Defaults:  defaults,
		Input:     input,
		Parse:     parse,
		Profiling: profiling,
	}
	if err := loaded.Validate(); err != nil {
		return Loaded{}, err
	}

	return loaded, nil
}

// Validate checks l after overrides have been applied.
func (l Loaded) Validate() error {
	if l.Profiling.Enabled && strings.TrimSpace(l.Profiling.ServerAddress) == "" {
		return exception.ErrMissingProfileAddr
	}

	return nil
}
