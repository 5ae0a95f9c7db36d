// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Source is a generated audio source satisfying audio.Source. Wave gives
// the value of every sample; Frames is the length per channel.
type Source struct {
	Rate   int
	Chans  int
	Frames int
	Wave   func(frame, channel int) float32
	// MaxRead caps the frames returned per ReadSamples call, 0 for none.
	MaxRead int
	// Err replaces io.EOF once all frames were read.
	Err error

	pos    int
	closed int
}

// NewSource returns a Source of frames samples per channel.
func NewSource(sampleRate, channels, frames int, wave func(frame, channel int) float32) *Source {
	return &Source{Rate: sampleRate, Chans: channels, Frames: frames, Wave: wave}
}

// NewSilentSource returns a Source of zeros.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource returns a full scale sine of freq Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(sampleRate)))
	})
}

// NewConstantSource returns a Source holding value everywhere.
func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (s *Source) SampleRate() int { return s.Rate }
func (s *Source) Channels() int   { return s.Chans }
func (s *Source) BufSize() int    { return 4096 }

// Close counts its calls; see Closed.
func (s *Source) Close() error {
	s.closed++
	return nil
}

// Closed returns how often Close was called.
func (s *Source) Closed() int { return s.closed }

// Rewind starts the source over.
func (s *Source) Rewind() { s.pos = 0 }

// ReadSamples fills dst with whole frames. The final chunk comes with the
// end error (io.EOF or Err).
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.Frames {
		return 0, s.end()
	}

	n := min(len(dst)/s.Chans, s.Frames-s.pos)
	if s.MaxRead > 0 {
		n = min(n, s.MaxRead)
	}

	for f := range n {
		for ch := range s.Chans {
			dst[f*s.Chans+ch] = s.Wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.Frames {
		return n * s.Chans, s.end()
	}
	return n * s.Chans, nil
}

func (s *Source) end() error {
	if s.Err != nil {
		return s.Err
	}
	return io.EOF
}
