// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Concat plays sources back to back. A read that reaches the end of one
// source continues into the next, so trimmed tracks join without a gap.
// All sources must share the sample rate and channel count.
type Concat struct {
	srcs       []Source
	cur        int
	sampleRate int
	channels   int
}

// NewConcat returns a Source reading srcs in order. It takes ownership of
// srcs: Close closes all of them.
func NewConcat(srcs ...Source) (*Concat, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSources
	}

	rate, ch := srcs[0].SampleRate(), srcs[0].Channels()
	for i, s := range srcs[1:] {
		if s.SampleRate() != rate || s.Channels() != ch {
			return nil, fmt.Errorf("%w: source %d is %d Hz/%d ch, want %d Hz/%d ch",
				ErrFormatMismatch, i+1, s.SampleRate(), s.Channels(), rate, ch)
		}
	}

	return &Concat{
		srcs:       srcs,
		sampleRate: rate,
		channels:   ch,
	}, nil
}

func (c *Concat) SampleRate() int { return c.sampleRate }
func (c *Concat) Channels() int   { return c.channels }

func (c *Concat) BufSize() int {
	size := 0
	for _, s := range c.srcs {
		size = max(size, s.BufSize())
	}
	return size
}

// Current returns the index of the source being read, len(sources) once
// all are exhausted.
func (c *Concat) Current() int { return c.cur }

func (c *Concat) ReadSamples(dst []float32) (int, error) {
	total := 0
	for total < len(dst) && c.cur < len(c.srcs) {
		n, err := c.srcs[c.cur].ReadSamples(dst[total:])
		total += n

		if errors.Is(err, io.EOF) {
			c.cur++
			continue
		}
		if err != nil {
			return total, fmt.Errorf("audio: source %d: %w", c.cur, err)
		}
		if n == 0 {
			break
		}
	}

	if total == 0 && len(dst) > 0 && c.cur >= len(c.srcs) {
		return 0, io.EOF
	}

	return total, nil
}

func (c *Concat) Close() error {
	var errs []error
	for _, s := range c.srcs {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
