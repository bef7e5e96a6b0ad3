package pcm

import (
	"io"

	"github.com/colundi/colundi"
)

// Decode takes a Reader containing audio data in raw PCM format and returns a Streamer,
// which streams that audio.
func Decode(r io.Reader, format colundi.Format) colundi.Streamer {
	return &stream{
		r:   r,
		f:   format,
		buf: make([]byte, 512*format.Width()),
	}
}

type stream struct {
	r   io.Reader
	f   colundi.Format
	buf []byte
	len int
	pos int
	err error
}

func (s *stream) Err() error { return s.err }

func (s *stream) Stream(samples [][2]float64) (n int, ok bool) {
	width := s.f.Width()
	// refill when less than one whole frame is buffered
	if size := s.len - s.pos; size < width {
		// keep the partial frame at the start
		if size != 0 {
			copy(s.buf, s.buf[s.pos:s.len])
		}
		s.len = size
		s.pos = 0
		nbytes, err := s.r.Read(s.buf[s.len:])
		s.len += nbytes
		if err != nil && err != io.EOF {
			s.err = err
			return 0, false
		}
		if s.len < width {
			return 0, false
		}
	}
	for n < len(samples) && s.len-s.pos >= width {
		samples[n], _ = s.f.DecodeSigned(s.buf[s.pos:])
		n++
		s.pos += width
	}
	return n, true
}
