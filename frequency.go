package colundi

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Frequency is a frequency in Hz together with the text it was read from, so that file names
// derived from it match the input list.
type Frequency struct {
	Hz   float64
	Text string
}

// NewFrequency returns a Frequency whose text is the shortest representation of hz.
func NewFrequency(hz float64) Frequency {
	return Frequency{Hz: hz, Text: strconv.FormatFloat(hz, 'g', -1, 64)}
}

// String returns the literal text of the frequency.
func (f Frequency) String() string {
	if f.Text == "" {
		return strconv.FormatFloat(f.Hz, 'g', -1, 64)
	}
	return f.Text
}

// ParseFrequency parses a single decimal frequency. Surrounding whitespace is ignored.
func ParseFrequency(s string) (Frequency, error) {
	text := strings.TrimSpace(s)
	hz, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Frequency{}, errors.Wrapf(ErrMalformedInput, "%q is not a number", text)
	}
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return Frequency{}, errors.Wrapf(ErrInvalidParameter, "frequency %s must be a positive finite number", text)
	}
	return Frequency{Hz: hz, Text: text}, nil
}

// LoadFrequencies reads one frequency per line from r. Blank lines and lines starting with '#'
// are skipped. The whole input is parsed before returning, so a single bad line fails the list.
func LoadFrequencies(r io.Reader) ([]Frequency, error) {
	var (
		freqs []Frequency
		sc    = bufio.NewScanner(r)
		line  int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f, err := ParseFrequency(text)
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", line)
		}
		freqs = append(freqs, f)
	}
	if err := sc.Err(); errors.Is(err, bufio.ErrTooLong) {
		return nil, errors.Wrapf(ErrMalformedInput, "line %d: %v", line+1, err)
	} else if err != nil {
		return nil, errors.Wrapf(ErrResource, "reading frequencies: %v", err)
	}
	if len(freqs) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "no frequencies")
	}
	return freqs, nil
}

// LoadFrequencyFile opens path and reads it with LoadFrequencies.
func LoadFrequencyFile(path string) ([]Frequency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrResource, "open %s: %v", path, err)
	}
	defer f.Close()
	freqs, err := LoadFrequencies(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return freqs, nil
}
