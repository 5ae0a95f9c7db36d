// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/mpeg"
)

// MaxSamplesPerFrame is the largest number of samples per channel an MPEG
// audio frame decodes to.
const MaxSamplesPerFrame = 1152

// FrameDecoder decodes an MPEG audio stream one frame at a time.
//
// DecodeFrame fills pcm[0] (and pcm[1] for stereo) with the next frame's
// samples and returns the number of samples per channel. Both slices hold
// at least MaxSamplesPerFrame samples. It returns io.EOF when the stream is
// exhausted.
//
// SkipFrame advances one frame without converting it and returns the
// number of samples per channel skipped.
type FrameDecoder interface {
	DecodeFrame(pcm *[2][]int16) (int, error)
	SkipFrame() (int, error)
	Close() error
}

// Backend selects the frame decoder implementation.
type Backend int

const (
	// BackendGoMP3 uses github.com/hajimehoshi/go-mp3 (pure Go).
	BackendGoMP3 Backend = iota
	// BackendMiniMP3 uses github.com/tosone/minimp3 and needs cgo.
	BackendMiniMP3
)

func (b Backend) String() string {
	switch b {
	case BackendGoMP3:
		return "go-mp3"
	case BackendMiniMP3:
		return "minimp3"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// open starts a frame decoder on r, which must be positioned at the start
// of the stream. samplesPerFrame is taken from the first frame header.
func (b Backend) open(r io.Reader, samplesPerFrame int) (FrameDecoder, error) {
	switch b {
	case BackendGoMP3:
		d, err := newGoMP3Frames(r, samplesPerFrame)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendMiniMP3:
		d, err := newMiniMP3Frames(r, samplesPerFrame)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, int(b))
	}
}

// countFrames returns the number of MPEG audio frames in data, ID3 tags
// excluded.
func countFrames(data []byte) (int, error) {
	sc := mpeg.NewScanner(bytes.NewReader(data))

	n := 0
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}

// alignFrames pads pcm, 16-bit interleaved samples decoded in one pass, at
// the front with silence up to frames*samplesPerFrame samples per channel.
// A one-pass decoder emits nothing for leading frames it cannot decode,
// such as frames whose bit reservoir lies before the stream start; without
// the padding every later frame boundary would shift.
func alignFrames(pcm []byte, frames, samplesPerFrame, channels int) []byte {
	want := frames * samplesPerFrame * channels * 2
	if len(pcm) >= want {
		return pcm
	}

	out := make([]byte, want)
	copy(out[want-len(pcm):], pcm)
	return out
}
