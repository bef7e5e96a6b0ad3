// Package pcm reads and writes headerless little-endian signed PCM.
package pcm

import (
	"bufio"
	"io"

	"github.com/colundi/colundi"
	"github.com/pkg/errors"
)

// Encode writes all audio streamed from s to w as raw signed PCM of the given format.
func Encode(w io.Writer, s colundi.Streamer, format colundi.Format) error {
	if format.NumChannels <= 0 || format.Precision <= 0 || format.Precision > 3 {
		return errors.Errorf("pcm: unsupported format %d channels × %d bytes", format.NumChannels, format.Precision)
	}
	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		var offset int
		for _, sample := range samples[:n] {
			offset += format.EncodeSigned(buffer[offset:], sample)
		}
		if _, err := bw.Write(buffer[:offset]); err != nil {
			return errors.Wrap(err, "pcm")
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "pcm")
	}
	return errors.Wrap(bw.Flush(), "pcm")
}
