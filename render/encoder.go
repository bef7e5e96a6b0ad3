package render

import (
	"io"
	"strings"

	"github.com/colundi/colundi"
	"github.com/colundi/colundi/flac"
	"github.com/colundi/colundi/pcm"
	"github.com/colundi/colundi/wav"
	"github.com/pkg/errors"
)

// Encoder writes a stream to a file of one audio format.
type Encoder interface {
	// Ext is the file name extension without the dot.
	Ext() string
	Encode(w io.WriteSeeker, s colundi.Streamer, format colundi.Format) error
}

type encoderFunc struct {
	ext string
	fn  func(w io.WriteSeeker, s colundi.Streamer, format colundi.Format) error
}

func (e encoderFunc) Ext() string { return e.ext }

func (e encoderFunc) Encode(w io.WriteSeeker, s colundi.Streamer, format colundi.Format) error {
	return e.fn(w, s, format)
}

var encoders = map[string]Encoder{
	"wav": encoderFunc{"wav", wav.Encode},
	"pcm": encoderFunc{"pcm", func(w io.WriteSeeker, s colundi.Streamer, format colundi.Format) error {
		return pcm.Encode(w, s, format)
	}},
	"flac": encoderFunc{"flac", func(w io.WriteSeeker, s colundi.Streamer, format colundi.Format) error {
		return flac.Encode(w, s, format)
	}},
}

// EncoderNames lists the formats EncoderFor accepts.
var EncoderNames = []string{"wav", "pcm", "flac"}

// EncoderFor returns the Encoder of the named format.
func EncoderFor(name string) (Encoder, error) {
	e, ok := encoders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(colundi.ErrInvalidParameter, "unknown output format %q (want one of %s)",
			name, strings.Join(EncoderNames, ", "))
	}
	return e, nil
}
