package flac

import (
	"io"

	"github.com/colundi/colundi"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
	"github.com/pkg/errors"
)

// BlockSize is the number of samples per channel in every FLAC frame but the last.
const BlockSize = 4096

// Encode writes all audio streamed from s to w in FLAC format using verbatim subframes.
//
// Format precision must be 1, 2 or 3 bytes and NumChannels 1 or 2. When w is an io.Seeker the
// STREAMINFO block is updated with the sample count and MD5 sum once s is drained. w is not
// closed.
func Encode(w io.Writer, s colundi.Streamer, format colundi.Format) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "flac")
		}
	}()

	var channels frame.Channels
	switch format.NumChannels {
	case 1:
		channels = frame.ChannelsMono
	case 2:
		channels = frame.ChannelsLR
	default:
		return errors.Errorf("unsupported number of channels %d, 1 or 2 is supported", format.NumChannels)
	}
	if format.Precision < 1 || format.Precision > 3 {
		return errors.New("unsupported precision, 1, 2 or 3 is supported")
	}
	if format.SampleRate <= 0 {
		return errors.Errorf("invalid sample rate %d", format.SampleRate)
	}

	bps := uint8(format.Precision * 8)
	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  BlockSize,
		SampleRate:    uint32(format.SampleRate),
		NChannels:     uint8(format.NumChannels),
		BitsPerSample: bps,
	}
	enc, err := flac.NewEncoder(keepOpen(w), info)
	if err != nil {
		return err
	}

	var (
		samples   = make([][2]float64, BlockSize)
		subframes = make([]*frame.Subframe, format.NumChannels)
	)
	for c := range subframes {
		subframes[c] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   make([]int32, BlockSize),
		}
	}
	for {
		n, ok := fill(s, samples)
		if n > 0 {
			for c, sub := range subframes {
				sub.NSamples = n
				sub.Samples = sub.Samples[:n]
				for i, sample := range samples[:n] {
					x := sample[c]
					if format.NumChannels == 1 {
						x = (sample[0] + sample[1]) / 2
					}
					sub.Samples[i] = int32(colundi.Quantize(format.Precision, x))
				}
			}
			fr := &frame.Frame{
				Header: frame.Header{
					HasFixedBlockSize: false,
					BlockSize:         uint16(n),
					SampleRate:        uint32(format.SampleRate),
					Channels:          channels,
					BitsPerSample:     bps,
				},
				Subframes: subframes,
			}
			if err := enc.WriteFrame(fr); err != nil {
				enc.Close()
				return err
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// fill streams from s until samples is full or s is drained. ok is false once s is drained.
func fill(s colundi.Streamer, samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := s.Stream(samples[n:])
		n += sn
		if !sok {
			return n, false
		}
	}
	return n, true
}

// keepOpen hides any Close method of w so that closing the encoder leaves w open.
func keepOpen(w io.Writer) io.Writer {
	if ws, ok := w.(io.WriteSeeker); ok {
		return struct{ io.WriteSeeker }{ws}
	}
	return struct{ io.Writer }{w}
}
