package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colundi/colundi/generators"
	"go.uber.org/zap/zapcore"
)

func noEnv(string) string { return "" }

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(nil, noEnv, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.sampleRate != 96000 || opts.duration != 1 || opts.amplitude != 0.5 || opts.waveform != generators.SineWave {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.frequencies != "colundi_hertz.txt" || opts.format != "wav" || opts.precision != 2 || opts.logLevel != zapcore.InfoLevel {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	cfg := opts.config()
	if cfg.SampleRate != 96000 || cfg.Duration != 1 || cfg.Amplitude != 0.5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseOptionsFlags(t *testing.T) {
	args := []string{"--sample_rate", "44100", "--duration=3", "--amplitude", "0.25", "--waveform", "sawtooth", "--log_level", "debug"}
	opts, err := parseOptions(args, noEnv, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.sampleRate != 44100 || opts.duration != 3 || opts.amplitude != 0.25 || opts.waveform != generators.SawtoothWave {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.logLevel != zapcore.DebugLevel {
		t.Fatalf("log level %v, want debug", opts.logLevel)
	}
}

func TestParseOptionsEnv(t *testing.T) {
	vars := map[string]string{
		"COLUNDI_SAMPLE_RATE": "48000",
		"COLUNDI_WAVEFORM":    "Square",
		"COLUNDI_FORMAT":      "flac",
		"COLUNDI_DURATION":    "3",
		"COLUNDI_LOG_LEVEL":   "warn",
	}
	getenv := func(k string) string { return vars[k] }

	opts, err := parseOptions([]string{"--sample_rate", "22050"}, getenv, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if opts.sampleRate != 22050 {
		t.Fatalf("an explicit flag should win over the environment, got %d", opts.sampleRate)
	}
	if opts.waveform != generators.SquareWave || opts.format != "flac" {
		t.Fatalf("environment defaults not applied: %+v", opts)
	}
	if opts.duration != 3 || opts.logLevel != zapcore.WarnLevel {
		t.Fatalf("environment defaults not applied: %+v", opts)
	}
}

func TestParseOptionsInvalidEnv(t *testing.T) {
	for key, value := range map[string]string{
		"COLUNDI_WAVEFORM":    "sqaure",
		"COLUNDI_SAMPLE_RATE": "44.1k",
		"COLUNDI_AMPLITUDE":   "loud",
		"COLUNDI_ANALYZE":     "maybe",
		"COLUNDI_LOG_LEVEL":   "verbose",
	} {
		getenv := func(k string) string {
			if k == key {
				return value
			}
			return ""
		}
		_, err := parseOptions(nil, getenv, &bytes.Buffer{})
		if err == nil {
			t.Errorf("%s=%s should fail", key, value)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should name %s", err, key)
		}
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--waveform", "noise"},
		{"--sample_rate", "fast"},
		{"extra"},
	} {
		if _, err := parseOptions(args, noEnv, &bytes.Buffer{}); err == nil {
			t.Errorf("parseOptions(%v) should fail", args)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "colundi_hertz.txt")
	if err := os.WriteFile(list, []byte("440\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--sample_rate", "8000", "--waveform", "triangle", "--frequencies", list, "--output", out}, noEnv, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Generating triangle waveforms for 2 frequencies") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "outputs are in "+out) {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	for _, name := range []string{"colundi_440.wav", "colundi_3.wav"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing output: %v", err)
		}
	}
}

func TestRunMalformedList(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "colundi_hertz.txt")
	if err := os.WriteFile(list, []byte("440\nA4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--frequencies", list, "--output", out}, noEnv, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "malformed input") {
		t.Fatalf("diagnostic should describe the failure: %s", stderr.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no output folder should be created: %v", err)
	}
}

func TestRunUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--waveform", "noise"}, noEnv, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	badWaveform := func(k string) string {
		if k == "COLUNDI_WAVEFORM" {
			return "sqaure"
		}
		return ""
	}
	if code := run(nil, badWaveform, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d for an invalid COLUNDI_WAVEFORM, want 2", code)
	}
	if code := run([]string{"-h"}, noEnv, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d for -h, want 0", code)
	}
}
