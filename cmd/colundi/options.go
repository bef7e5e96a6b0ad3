package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/generators"
	"github.com/colundi/colundi/render"
	"go.uber.org/zap/zapcore"
)

// envPrefix is prepended to the upper-cased flag name to form its environment variable.
const envPrefix = "COLUNDI_"

type options struct {
	sampleRate  int
	duration    int
	amplitude   float64
	waveform    generators.Kind
	frequencies string
	output      string
	format      string
	precision   int
	workers     int
	analyze     bool
	logLevel    zapcore.Level
}

// env reads flag defaults from the environment.
type env func(key string) string

// defaults resolves flag defaults from env. The first variable that is set but does not parse
// is kept in err.
type defaults struct {
	getenv env
	err    error
}

func (d *defaults) lookup(name string) (key, value string) {
	key = envPrefix + strings.ToUpper(name)
	return key, strings.TrimSpace(strings.Trim(d.getenv(key), `"`))
}

func (d *defaults) fail(key, value string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("invalid value %q for %s: %v", value, key, err)
	}
}

func (d *defaults) or(name, def string) string {
	if _, v := d.lookup(name); v != "" {
		return v
	}
	return def
}

func (d *defaults) intOr(name string, def int) int {
	key, v := d.lookup(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.fail(key, v, err)
		return def
	}
	return n
}

func (d *defaults) floatOr(name string, def float64) float64 {
	key, v := d.lookup(name)
	if v == "" {
		return def
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		d.fail(key, v, err)
		return def
	}
	return x
}

func (d *defaults) boolOr(name string, def bool) bool {
	key, v := d.lookup(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		d.fail(key, v, err)
		return def
	}
	return b
}

// valueOr sets dst from the environment when the variable is present.
func (d *defaults) valueOr(name string, dst flag.Value) {
	key, v := d.lookup(name)
	if v == "" {
		return
	}
	if err := dst.Set(v); err != nil {
		d.fail(key, v, err)
	}
}

func parseOptions(args []string, lookup env, output io.Writer) (options, error) {
	def := colundi.DefaultConfig()
	opts := options{waveform: generators.SineWave, logLevel: zapcore.InfoLevel}
	fromEnv := &defaults{getenv: lookup}

	fs := flag.NewFlagSet("colundi", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: colundi [flags]\n\nGenerates one audio file per frequency listed in the frequency file.\n"+
			"Every flag can also be set through %s<FLAG> environment variables.\n\n", envPrefix)
		fs.PrintDefaults()
	}

	fs.IntVar(&opts.sampleRate, "sample_rate", fromEnv.intOr("sample_rate", int(def.SampleRate)), "Sample rate of the waveform")
	fs.IntVar(&opts.duration, "duration", fromEnv.intOr("duration", int(def.Duration)), "Duration of the waveform in seconds")
	fs.Float64Var(&opts.amplitude, "amplitude", fromEnv.floatOr("amplitude", def.Amplitude), "Amplitude of the waveform")

	fromEnv.valueOr("waveform", &opts.waveform)
	fs.Var(&opts.waveform, "waveform", "Waveform shape: sine, triangle, square or sawtooth")

	fs.StringVar(&opts.frequencies, "frequencies", fromEnv.or("frequencies", "colundi_hertz.txt"), "File with one frequency in Hz per line")
	fs.StringVar(&opts.output, "output", fromEnv.or("output", ""), "Output folder (default colundi_waveforms_<waveform>)")
	fs.StringVar(&opts.format, "format", fromEnv.or("format", "wav"), "Output format: "+strings.Join(render.EncoderNames, ", "))
	fs.IntVar(&opts.precision, "precision", fromEnv.intOr("precision", render.DefaultPrecision), "Bytes per sample: 1, 2 or 3")
	fs.IntVar(&opts.workers, "workers", fromEnv.intOr("workers", runtime.GOMAXPROCS(0)), "Number of files generated concurrently")
	fs.BoolVar(&opts.analyze, "analyze", fromEnv.boolOr("analyze", false), "Log a spectral check of every file")

	fromEnv.valueOr("log_level", &opts.logLevel)
	fs.Var(&opts.logLevel, "log_level", "Log level: debug, info, warn or error")

	if fromEnv.err != nil {
		return options{}, fromEnv.err
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func (o options) config() colundi.SynthesisConfig {
	return colundi.SynthesisConfig{
		SampleRate: colundi.SampleRate(o.sampleRate),
		Duration:   float64(o.duration),
		Amplitude:  o.amplitude,
	}
}
