// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/mpeg"
	"github.com/ik5/mp3gapless/utils"
	"github.com/ik5/mp3gapless/vbrtag"
)

// decoderLatency is the decoder delay of the reference encoder family (528
// samples) plus one rounding sample. It is added to the encoder delay to
// find the first sample of the original audio.
const decoderLatency = 528 + 1

// DefaultEncoderDelay is assumed when a stream carries no encoder delay.
const DefaultEncoderDelay = 576

type state int

const (
	stateReady state = iota
	stateDecoding
	stateClosed
)

// Stream is an open MPEG audio stream.
//
// Decode and Seek give frame-level access; ReadSamples gives the gapless
// view as an audio.Source. Do not mix the two on one Stream. A Stream is
// not safe for concurrent use.
type Stream struct {
	dec   FrameDecoder
	state state

	header mpeg.Header
	tag    *vbrtag.TagData

	sampleRate int
	channels   int
	frameSize  int

	skipStart int
	skipEnd   int
	total     int // decoded samples per channel before trimming
	estimated bool

	frameNum int
	consumed int // samples per channel pulled from the decoder

	pcm [2][]int16

	// gapless read state
	pending []float32
	head    int
	toSkip  int
	eof     bool
}

func newStream(dec FrameDecoder, h mpeg.Header, tag *vbrtag.TagData, total int, estimated bool, defaultDelay int) *Stream {
	s := &Stream{
		dec:        dec,
		header:     h,
		tag:        tag,
		sampleRate: h.SampleRate(),
		channels:   h.Channels(),
		frameSize:  h.SamplesPerFrame(),
		total:      total,
		estimated:  estimated,
		pcm: [2][]int16{
			make([]int16, MaxSamplesPerFrame),
			make([]int16, MaxSamplesPerFrame),
		},
	}

	s.skipStart, s.skipEnd = gaplessTrim(tag, defaultDelay)
	s.toSkip = s.skipStart

	return s
}

// gaplessTrim returns the number of samples per channel to drop at the
// start and at the end of the decoded stream.
func gaplessTrim(tag *vbrtag.TagData, defaultDelay int) (start, end int) {
	if defaultDelay <= 0 {
		defaultDelay = DefaultEncoderDelay
	}

	start = defaultDelay + decoderLatency
	if tag == nil {
		return start, 0
	}

	if d, ok := tag.EncDelay.Get(); ok && d > 0 {
		start = d + decoderLatency
	}
	if p, ok := tag.EncPadding.Get(); ok && p > 0 {
		end = max(p-decoderLatency, 0)
	}

	return start, end
}

// Decode decodes the next frame into dst starting at offset, converting
// samples to float32 in [-1, 1) and interleaving stereo as L, R, L, R.
//
// A negative offset drops that many leading interleaved samples of the
// frame, rounded up to whole sample frames: with stereo and an odd offset
// the first kept frame lands at dst[1] and dst[0] is left untouched.
// Samples that do not fit in dst are dropped. Decode returns the
// number of interleaved samples the frame decoded to, which counts dropped
// samples too, and io.EOF once the stream is exhausted.
func (s *Stream) Decode(dst []float32, offset int) (int, error) {
	if s.state == stateClosed {
		return 0, ErrClosed
	}

	n, err := s.dec.DecodeFrame(&s.pcm)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("mp3: decode frame %d: %w", s.frameNum, err)
	}

	s.state = stateDecoding
	s.frameNum++
	s.consumed += n

	interleave(dst, offset, &s.pcm, n, s.channels)

	return n * s.channels, nil
}

// interleave writes n samples per channel of pcm into dst at offset.
func interleave(dst []float32, offset int, pcm *[2][]int16, n, channels int) {
	// First frame index whose samples land at a non-negative position.
	start := 0
	if offset < 0 {
		start = (-offset + channels - 1) / channels
	}

	for i := start; i < n; i++ {
		at := i*channels + offset
		if at+channels > len(dst) {
			return
		}

		dst[at] = utils.Int16ToFloat32(pcm[0][i])
		if channels == 2 {
			dst[at+1] = utils.Int16ToFloat32(pcm[1][i])
		}
	}
}

// Seek skips frames forward without decoding them to PCM and returns the
// number of interleaved samples skipped.
func (s *Stream) Seek(frames int) (int, error) {
	if s.state == stateClosed {
		return 0, ErrClosed
	}

	s.pending = s.pending[:0]
	s.head = 0

	skipped := 0
	for range frames {
		n, err := s.dec.SkipFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return skipped * s.channels, io.EOF
			}
			return skipped * s.channels, fmt.Errorf("mp3: skip frame %d: %w", s.frameNum, err)
		}

		s.state = stateDecoding
		s.frameNum++
		s.consumed += n
		s.toSkip = max(s.toSkip-n, 0)
		skipped += n
	}

	return skipped * s.channels, nil
}

// ReadSamples implements audio.Source. It returns the stream with the
// encoder delay and padding removed.
func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if s.state == stateClosed {
		return 0, ErrClosed
	}

	if s.head > 0 {
		s.pending = s.pending[:copy(s.pending, s.pending[s.head:])]
		s.head = 0
	}

	holdback := s.skipEnd * s.channels
	for !s.eof && len(s.pending) < len(dst)+holdback {
		err := s.fill()
		if errors.Is(err, io.EOF) {
			s.eof = true
			s.pending = s.pending[:max(len(s.pending)-holdback, 0)]
			break
		}
		if err != nil {
			return 0, err
		}
	}

	avail := len(s.pending)
	if !s.eof {
		avail -= holdback
	}
	avail = max(avail, 0)

	n := copy(dst, s.pending[:avail])
	s.head = n

	if n == 0 && s.eof && len(dst) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

// fill decodes one frame onto pending, dropping what remains of the
// leading trim.
func (s *Stream) fill() error {
	start := len(s.pending)
	room := MaxSamplesPerFrame * s.channels

	if cap(s.pending)-start < room {
		grown := make([]float32, start, 2*cap(s.pending)+room)
		copy(grown, s.pending)
		s.pending = grown
	}

	skip := min(s.toSkip, MaxSamplesPerFrame)
	n, err := s.Decode(s.pending[start:start+room], -skip*s.channels)
	if err != nil {
		return err
	}

	decoded := n / s.channels
	skipped := min(skip, decoded)
	s.toSkip -= skipped
	s.pending = s.pending[:start+(decoded-skipped)*s.channels]

	return nil
}

// Close releases the frame decoder. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.state == stateClosed {
		return nil
	}

	s.state = stateClosed
	s.pending = nil

	return s.dec.Close()
}

// SampleRate returns the sample rate in Hz.
func (s *Stream) SampleRate() int { return s.sampleRate }

// Channels returns 1 or 2.
func (s *Stream) Channels() int { return s.channels }

// BufSize returns the number of interleaved samples in one frame.
func (s *Stream) BufSize() int { return s.frameSize * s.channels }

// FrameSize returns the number of samples per channel in one frame.
func (s *Stream) FrameSize() int { return s.frameSize }

// SkipStart returns the number of leading samples per channel removed by
// ReadSamples.
func (s *Stream) SkipStart() int { return s.skipStart }

// SkipEnd returns the number of trailing samples per channel removed by
// ReadSamples.
func (s *Stream) SkipEnd() int { return s.skipEnd }

// Length returns the number of samples per channel ReadSamples yields.
// Without a tag frame count it is estimated from the first frame and the
// stream size; see Estimated.
func (s *Stream) Length() int {
	return max(s.total-s.skipStart-s.skipEnd, 0)
}

// Estimated reports whether Length is an estimate.
func (s *Stream) Estimated() bool { return s.estimated }

// Tag returns the parsed Xing/Info tag, or nil.
func (s *Stream) Tag() *vbrtag.TagData { return s.tag }

// Header returns the header of the first audio frame, after any tag frame.
func (s *Stream) Header() mpeg.Header { return s.header }

// FrameNum returns the number of audio frames decoded or skipped so far.
func (s *Stream) FrameNum() int { return s.frameNum }

// Consumed returns the number of samples per channel decoded or skipped
// so far, before trimming.
func (s *Stream) Consumed() int { return s.consumed }
