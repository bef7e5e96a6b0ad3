package flac_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/flac"
	"github.com/colundi/colundi/generators"
)

func TestEncodeDecode(t *testing.T) {
	cfg := colundi.SynthesisConfig{SampleRate: 48000, Duration: 1, Amplitude: 0.5}
	for _, precision := range []int{2, 3} {
		b, err := generators.Build(cfg, 1000.5, generators.SineWave)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		path := filepath.Join(t.TempDir(), "out.flac")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := flac.Encode(f, b.Streamer(), b.Format(precision)); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("closing the output after Encode: %v", err)
		}

		rc, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		s, format, err := flac.Decode(rc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if format.SampleRate != 48000 || format.NumChannels != 1 || format.Precision != precision {
			t.Fatalf("decoded format %+v", format)
		}
		got := colundi.Collect(s)
		if s.Err() != nil {
			t.Fatalf("streaming: %v", s.Err())
		}
		if len(got) != b.Len() {
			t.Fatalf("decoded %d samples, want %d", len(got), b.Len())
		}
		for i, v := range got {
			if want := colundi.Dequantize(precision, colundi.Quantize(precision, b.At(i))); v != want {
				t.Fatalf("precision %d: sample %d decoded as %v, want %v", precision, i, v, want)
			}
		}
		if math.Abs(got[0]) != 0 {
			t.Fatalf("first sample %v, want 0", got[0])
		}
		s.Close()
	}
}

func TestEncodeRejectsFormat(t *testing.T) {
	b := colundi.NewSampleBuffer(8000, []float64{0})
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.flac"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := b.Format(2)
	format.NumChannels = 3
	if err := flac.Encode(f, b.Streamer(), format); err == nil {
		t.Fatal("Encode with 3 channels should fail")
	}
}

// stereo streams two buffers as the left and right channels.
type stereo struct {
	left, right []float64
	pos         int
}

func (s *stereo) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.left) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.left) {
		samples[n] = [2]float64{s.left[s.pos], s.right[s.pos]}
		n++
		s.pos++
	}
	return n, true
}

func (s *stereo) Err() error {
	return nil
}

func TestEncodeDecodeStereo(t *testing.T) {
	cfg := colundi.SynthesisConfig{SampleRate: 8000, Duration: 1, Amplitude: 0.5}
	left, err := generators.Build(cfg, 250, generators.SineWave)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	right, err := generators.Build(cfg, 250, generators.SawtoothWave)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	format := colundi.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

	path := filepath.Join(t.TempDir(), "stereo.flac")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := flac.Encode(f, &stereo{left: left.Samples(), right: right.Samples()}, format); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rc, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, got, err := flac.Decode(rc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	defer s.Close()
	if got != format {
		t.Fatalf("decoded format %+v, want %+v", got, format)
	}

	var (
		buf = make([][2]float64, 1000)
		i   int
	)
	for {
		n, ok := s.Stream(buf)
		if !ok {
			break
		}
		for _, sample := range buf[:n] {
			wantL := colundi.Dequantize(2, colundi.Quantize(2, left.At(i)))
			wantR := colundi.Dequantize(2, colundi.Quantize(2, right.At(i)))
			if sample[0] != wantL || sample[1] != wantR {
				t.Fatalf("sample %d decoded as %v, want [%v %v]", i, sample, wantL, wantR)
			}
			i++
		}
	}
	if s.Err() != nil {
		t.Fatalf("streaming: %v", s.Err())
	}
	if i != left.Len() {
		t.Fatalf("decoded %d samples, want %d", i, left.Len())
	}
}
