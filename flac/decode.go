// Package flac encodes and decodes FLAC audio.
package flac

import (
	"io"

	"github.com/colundi/colundi"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
)

// Decode takes a ReadCloser containing audio data in FLAC format and returns a StreamSeekCloser,
// which streams that audio. Seeking is not supported.
//
// Do not close the supplied ReadCloser, instead, use the Close method of the returned
// StreamSeekCloser when you want to release the resources.
func Decode(rc io.ReadCloser) (s colundi.StreamSeekCloser, format colundi.Format, err error) {
	d := decoder{rc: rc}
	defer func() { // always close rc if an error occurred
		if err != nil {
			d.rc.Close()
		}
	}()
	d.stream, err = flac.New(rc)
	if err != nil {
		return nil, colundi.Format{}, errors.Wrap(err, "flac")
	}
	bps := d.stream.Info.BitsPerSample
	if bps != 8 && bps != 16 && bps != 24 {
		return nil, colundi.Format{}, errors.Errorf("flac: unsupported number of bits per sample %d", bps)
	}
	format = colundi.Format{
		SampleRate:  colundi.SampleRate(d.stream.Info.SampleRate),
		NumChannels: int(d.stream.Info.NChannels),
		Precision:   int(bps / 8),
	}
	d.precision = format.Precision
	return &d, format, nil
}

type decoder struct {
	rc        io.ReadCloser
	stream    *flac.Stream
	precision int
	buf       [][2]float64
	pos       int
	done      bool
	err       error
}

func (d *decoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil || (d.done && len(d.buf) == 0) {
		return 0, false
	}
	for n < len(samples) {
		if len(d.buf) == 0 {
			if d.done {
				break
			}
			if err := d.refill(); err != nil {
				if err == io.EOF {
					d.done = true
				} else {
					d.err = errors.Wrap(err, "flac")
				}
				break
			}
			continue
		}
		c := copy(samples[n:], d.buf)
		d.buf = d.buf[c:]
		n += c
	}
	d.pos += n
	return n, n > 0
}

// refill decodes the next frame into the decode buffer.
func (d *decoder) refill() error {
	fr, err := d.stream.ParseNext()
	if err != nil {
		return err
	}
	n := len(fr.Subframes[0].Samples)
	buf := make([][2]float64, n)
	left, right := fr.Subframes[0], fr.Subframes[0]
	if len(fr.Subframes) > 1 {
		right = fr.Subframes[1]
	}
	for i := range buf {
		buf[i][0] = colundi.Dequantize(d.precision, int64(left.Samples[i]))
		buf[i][1] = colundi.Dequantize(d.precision, int64(right.Samples[i]))
	}
	d.buf = buf
	return nil
}

func (d *decoder) Err() error {
	return d.err
}

func (d *decoder) Len() int {
	return int(d.stream.Info.NSamples)
}

func (d *decoder) Position() int {
	return d.pos
}

func (d *decoder) Seek(p int) error {
	return errors.New("flac: seek: not supported")
}

func (d *decoder) Close() error {
	err := d.rc.Close()
	if err != nil {
		return errors.Wrap(err, "flac")
	}
	return nil
}
