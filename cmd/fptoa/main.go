package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/tparks5/ntpsec/internal/batch"
	"github.com/tparks5/ntpsec/internal/config"
	"github.com/tparks5/ntpsec/pkg/exception"
	"github.com/tparks5/ntpsec/pkg/ntpfp"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("fptoa: %+v", err)
		os.Exit(1)
	}
}

// cliFlags holds the flags that are not config overrides.
type cliFlags struct {
	config string
	stream bool
}

func newFlagSet(name string) (*flag.FlagSet, *cliFlags) {
	var cf cliFlags
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cf.config, "config", "", "JSON config file (optional)")
	fs.BoolVar(&cf.stream, "stream", false, "answer JSON-lines requests from stdin")
	fs.Int("digits", config.DefaultFractionDigits, "fraction digits, at most 6")
	fs.Bool("msec", false, "show the first three fraction digits as milliseconds")
	fs.Bool("neg", false, "prefix every result with '-'")
	fs.String("input", "", "input format: auto, hex or decimal")
	fs.String("profile", "", "pyroscope server address; enables profiling")
	fs.Usage = func() {
		_, _ = io.WriteString(fs.Output(), "usage: fptoa [flags] [--] value...\n"+
			"values are 0x-prefixed 16.16 bit patterns or decimals; a leading '-' sets the sign\n")
		fs.PrintDefaults()
	}
	return fs, &cf
}

// applyFlags overrides cfg with the flags set on fs and checks the result.
func applyFlags(cfg config.Loaded, fs *flag.FlagSet) (config.Loaded, error) {
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "digits":
			cfg.Defaults.FractionDigits = v.(int)
		case "msec":
			cfg.Defaults.Msec = v.(bool)
		case "neg":
			cfg.Defaults.Negative = v.(bool)
		case "input":
			cfg.Input = config.InputFormat(strings.TrimSpace(v.(string)))
		case "profile":
			cfg.Profiling.Enabled = true
			cfg.Profiling.ServerAddress = strings.TrimSpace(v.(string))
		}
	})

	var err error
	if cfg.Parse, err = cfg.Input.Parser(); err != nil {
		return config.Loaded{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Loaded{}, errors.Wrap(err, "apply flags")
	}

	return cfg, nil
}

func run() error {
	fs, cf := newFlagSet(os.Args[0])
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(strings.TrimSpace(cf.config))
	if err != nil {
		return err
	}
	if cfg, err = applyFlags(cfg, fs); err != nil {
		return err
	}

	if cfg.Profiling.Enabled {
		stopProfiling, err := startProfiling(cfg.Profiling)
		if err != nil {
			return err
		}
		defer stopProfiling()
	}

	if cf.stream {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := batch.New(batch.Option{Defaults: cfg.Defaults, Parse: cfg.Parse})
		stats, err := p.Run(ctx, os.Stdin, os.Stdout)
		logs.Infof("batch done. lines: %d, formatted: %d, failed: %d", stats.Lines, stats.Formatted, stats.Failed)
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		return errors.Wrap(exception.ErrInvalidArgument, "no values; pass values or use -stream")
	}

	return formatArgs(os.Stdout, fs.Args(), cfg)
}

// formatArgs writes one formatted line per argument.
func formatArgs(w io.Writer, args []string, cfg config.Loaded) error {
	out := bufio.NewWriter(w)
	buf := make([]byte, 0, ntpfp.MaxLen+1)
	for _, arg := range args {
		r, err := resolveArg(arg, cfg)
		if err != nil {
			return err
		}

		buf = r.AppendTo(buf[:0])
		buf = append(buf, '\n')
		if _, err := out.Write(buf); err != nil {
			return errors.Wrap(err, "write result")
		}
	}

	return out.Flush()
}

// resolveArg reads a positional value. A leading '-' sets the sign, the
// magnitude is read with the configured parser.
func resolveArg(arg string, cfg config.Loaded) (ntpfp.Request, error) {
	r := cfg.Defaults
	text := strings.TrimSpace(arg)
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		r.Negative = true
		text = rest
	}

	v, err := cfg.Parse(text)
	if err != nil {
		return ntpfp.Request{}, errors.Wrapf(err, "value %q", arg)
	}

	r.Value = v
	return r, nil
}
