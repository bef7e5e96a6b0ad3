// Package render turns a frequency list into one audio file per frequency.
package render

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/analysis"
	"github.com/colundi/colundi/generators"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultPrecision is 16-bit PCM.
const DefaultPrecision = 2

// analysisWindow caps the FFT size used when Job.Analyze is set.
const analysisWindow = 1 << 16

// FolderName returns the default output folder for a waveform.
func FolderName(kind generators.Kind) string {
	return "colundi_waveforms_" + kind.String()
}

// FileName returns the file name of the buffer generated for f.
func FileName(f colundi.Frequency, ext string) string {
	return "colundi_" + f.String() + "." + ext
}

// Job is one batch run. The zero values of the optional fields select the defaults.
type Job struct {
	Config colundi.SynthesisConfig
	Kind   generators.Kind

	// Encoder defaults to WAVE.
	Encoder Encoder

	// Precision is the sample size in bytes, DefaultPrecision when zero.
	Precision int

	// OutputDir defaults to FolderName(Kind) in the working directory.
	OutputDir string

	// Workers bounds the number of buffers generated at once, GOMAXPROCS when zero.
	Workers int

	// Analyze logs a spectral check of every buffer.
	Analyze bool

	Logger *zap.Logger
}

// Summary describes the files a Job wrote.
type Summary struct {
	Folder string

	// Files holds the path of every file written, in input order.
	Files []string
}

type task struct {
	freq colundi.Frequency
	plan generators.Plan
	path string
}

// Run generates and writes one file per frequency. Every frequency is checked before the
// output folder is created, and the first failure cancels the rest of the batch.
func (j Job) Run(ctx context.Context, freqs []colundi.Frequency) (Summary, error) {
	log := j.Logger
	if log == nil {
		log = zap.NewNop()
	}
	enc := j.Encoder
	if enc == nil {
		enc, _ = EncoderFor("wav")
	}
	precision := j.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision < 1 || precision > 3 {
		return Summary{}, errors.Wrapf(colundi.ErrInvalidParameter, "precision %d bytes, 1, 2 or 3 is supported", precision)
	}
	workers := j.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	folder := j.OutputDir
	if folder == "" {
		folder = FolderName(j.Kind)
	}

	if err := j.Config.Validate(); err != nil {
		return Summary{}, err
	}
	if j.Config.Amplitude > 1 {
		log.Warn("amplitude above 1 will clip", zap.Float64("amplitude", j.Config.Amplitude))
	}

	tasks, err := j.plan(log, folder, enc.Ext(), freqs)
	if err != nil {
		return Summary{}, err
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Summary{}, errors.Wrapf(colundi.ErrResource, "create output folder: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, t := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return j.render(log, enc, precision, t)
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	files := make([]string, len(tasks))
	for i, t := range tasks {
		files[i] = t.path
	}
	log.Info("batch complete",
		zap.String("folder", folder),
		zap.Int("files", len(files)),
		zap.Stringer("waveform", j.Kind),
	)
	return Summary{Folder: folder, Files: files}, nil
}

// plan checks every frequency and assigns output paths. A frequency whose file name repeats
// an earlier one is skipped.
func (j Job) plan(log *zap.Logger, folder, ext string, freqs []colundi.Frequency) ([]task, error) {
	var (
		tasks = make([]task, 0, len(freqs))
		seen  = make(map[string]bool, len(freqs))
	)
	nyquist := float64(j.Config.SampleRate) / 2
	for _, f := range freqs {
		plan, err := generators.NewPlan(j.Config, f.Hz)
		if err != nil {
			return nil, errors.WithMessagef(err, "frequency %s", f)
		}
		name := FileName(f, ext)
		if seen[name] {
			log.Warn("duplicate frequency skipped", zap.Stringer("frequency", f))
			continue
		}
		seen[name] = true
		if f.Hz >= nyquist {
			log.Warn("frequency at or above Nyquist will alias",
				zap.Stringer("frequency", f),
				zap.Float64("nyquist", nyquist),
			)
		}
		tasks = append(tasks, task{freq: f, plan: plan, path: filepath.Join(folder, name)})
	}
	return tasks, nil
}

func (j Job) render(log *zap.Logger, enc Encoder, precision int, t task) error {
	b, err := generators.Build(j.Config, t.freq.Hz, j.Kind)
	if err != nil {
		return errors.WithMessagef(err, "frequency %s", t.freq)
	}
	if err := writeFile(t.path, enc, b, precision); err != nil {
		return err
	}
	log.Debug("wrote waveform",
		zap.String("file", t.path),
		zap.Stringer("frequency", t.freq),
		zap.Float64("periods", t.plan.Periods),
		zap.Int("samples", b.Len()),
		zap.Duration("duration", b.Duration()),
	)
	if j.Analyze {
		r := analysis.Analyze(b, analysisWindow)
		fields := []zap.Field{
			zap.String("file", t.path),
			zap.Float64("dominant_hz", r.DominantFrequency),
			zap.Float64("resolution_hz", r.Resolution),
			zap.Float64("peak", r.Peak),
			zap.Float64("energy", r.TotalEnergy),
			zap.Float64("snr_db", r.SNR),
		}
		if math.Abs(r.DominantFrequency-t.freq.Hz) > r.Resolution {
			log.Warn("dominant frequency differs from the requested one", fields...)
		} else {
			log.Info("analysis", fields...)
		}
	}
	return nil
}

// writeFile encodes b to path. A partially written file is removed.
func writeFile(path string, enc Encoder, b *colundi.SampleBuffer, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(colundi.ErrResource, "create %s: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(colundi.ErrResource, "close %s: %v", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := enc.Encode(f, b.Streamer(), b.Format(precision)); err != nil {
		return errors.Wrapf(colundi.ErrResource, "write %s: %v", path, err)
	}
	return nil
}
