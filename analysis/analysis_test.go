package analysis_test

import (
	"math"
	"testing"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/analysis"
	"github.com/colundi/colundi/generators"
)

func TestDominantFrequency(t *testing.T) {
	cfg := colundi.SynthesisConfig{SampleRate: 8000, Duration: 1, Amplitude: 0.5}
	for _, k := range generators.Kinds {
		for _, f := range []float64{50, 440, 1000} {
			b, err := generators.Build(cfg, f, k)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			r := analysis.Analyze(b, 0)
			if r.Window != b.Len() {
				t.Fatalf("analyzed %d samples, want %d", r.Window, b.Len())
			}
			if math.Abs(r.DominantFrequency-f) > r.Resolution {
				t.Errorf("%v at %v Hz: dominant frequency %v (resolution %v)", k, f, r.DominantFrequency, r.Resolution)
			}
			if r.Peak > 0.5+1e-12 {
				t.Errorf("%v at %v Hz: peak %v exceeds the amplitude", k, f, r.Peak)
			}
		}
	}
}

func TestSineEnergyAndSNR(t *testing.T) {
	cfg := colundi.SynthesisConfig{SampleRate: 8000, Duration: 1, Amplitude: 0.5}
	b, err := generators.Build(cfg, 440, generators.SineWave)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := analysis.Analyze(b, 0)
	// mean square of A·sin over whole periods is A²/2
	if want := 0.125 * float64(b.Len()); math.Abs(r.TotalEnergy-want) > 1e-6*want {
		t.Errorf("total energy %v, want %v", r.TotalEnergy, want)
	}
	if r.SNR < 60 {
		t.Errorf("a pure period-aligned sine should have a very high SNR, got %v dB", r.SNR)
	}
}

func TestAnalyzeWindow(t *testing.T) {
	cfg := colundi.SynthesisConfig{SampleRate: 8000, Duration: 1, Amplitude: 0.5}
	b, err := generators.Build(cfg, 500, generators.SquareWave)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := analysis.Analyze(b, 1600)
	if r.Window != 1600 || r.Resolution != 5 {
		t.Fatalf("window %d, resolution %v, want 1600, 5", r.Window, r.Resolution)
	}
	if r.DominantFrequency != 500 {
		t.Fatalf("dominant frequency %v, want 500", r.DominantFrequency)
	}
	if r.Peak != 0.5 {
		t.Fatalf("square peak %v, want exactly 0.5", r.Peak)
	}
}
