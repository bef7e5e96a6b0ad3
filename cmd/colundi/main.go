// Command colundi writes one period-aligned waveform file per frequency of a list.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func newLogger(level zapcore.Level, w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

func run(args []string, getenv env, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, getenv, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "colundi: %v\n", err)
		return 2
	}

	logger := newLogger(opts.logLevel, stderr)
	defer logger.Sync()

	enc, err := render.EncoderFor(opts.format)
	if err != nil {
		logger.Error("invalid output format", zap.Error(err))
		return 1
	}

	freqs, err := colundi.LoadFrequencyFile(opts.frequencies)
	if err != nil {
		logger.Error("failed to load frequencies", zap.String("path", opts.frequencies), zap.Error(err))
		return 1
	}

	folder := opts.output
	if folder == "" {
		folder = render.FolderName(opts.waveform)
	}
	fmt.Fprintf(stdout, "Generating %s waveforms for %d frequencies\n", opts.waveform, len(freqs))

	job := render.Job{
		Config:    opts.config(),
		Kind:      opts.waveform,
		Encoder:   enc,
		Precision: opts.precision,
		OutputDir: folder,
		Workers:   opts.workers,
		Analyze:   opts.analyze,
		Logger:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := job.Run(ctx, freqs)
	if err != nil {
		logger.Error("failed to generate waveforms", zap.Error(err))
		return 1
	}
	fmt.Fprintf(stdout, "Waveforms generated, outputs are in %s\n", sum.Folder)
	return 0
}
