package colundi

import (
	"fmt"
	"time"
)

// SampleBuffer is an immutable block of mono samples at a fixed sample rate.
//
// Use the Streamer method to feed it to an encoder.
type SampleBuffer struct {
	samples []float64
	rate    SampleRate
}

// NewSampleBuffer takes ownership of samples. The caller must not modify the slice afterwards.
func NewSampleBuffer(rate SampleRate, samples []float64) *SampleBuffer {
	return &SampleBuffer{samples: samples, rate: rate}
}

// SampleRate returns the sample rate of the buffer.
func (b *SampleBuffer) SampleRate() SampleRate {
	return b.rate
}

// Len returns the number of samples.
func (b *SampleBuffer) Len() int {
	return len(b.samples)
}

// At returns the i-th sample.
func (b *SampleBuffer) At(i int) float64 {
	return b.samples[i]
}

// Samples returns a copy of the samples.
func (b *SampleBuffer) Samples() []float64 {
	out := make([]float64, len(b.samples))
	copy(out, b.samples)
	return out
}

// Duration returns the playing time of the buffer.
func (b *SampleBuffer) Duration() time.Duration {
	return b.rate.D(len(b.samples))
}

// Format returns the mono Format of the buffer for the given precision in bytes.
func (b *SampleBuffer) Format(precision int) Format {
	return Format{
		SampleRate:  b.rate,
		NumChannels: 1,
		Precision:   precision,
	}
}

// Streamer returns a StreamSeeker which streams the buffer from the beginning. Every call
// returns an independent streamer.
func (b *SampleBuffer) Streamer() StreamSeeker {
	return &bufferStreamer{b: b}
}

type bufferStreamer struct {
	b   *SampleBuffer
	pos int
}

func (bs *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if bs.pos >= len(bs.b.samples) {
		return 0, false
	}
	for i := range samples {
		if bs.pos >= len(bs.b.samples) {
			break
		}
		x := bs.b.samples[bs.pos]
		samples[i] = [2]float64{x, x}
		bs.pos++
		n++
	}
	return n, true
}

func (bs *bufferStreamer) Err() error {
	return nil
}

func (bs *bufferStreamer) Len() int {
	return len(bs.b.samples)
}

func (bs *bufferStreamer) Position() int {
	return bs.pos
}

func (bs *bufferStreamer) Seek(p int) error {
	if p < 0 || len(bs.b.samples) < p {
		return fmt.Errorf("buffer: seek position %v out of range [%v, %v]", p, 0, len(bs.b.samples))
	}
	bs.pos = p
	return nil
}
