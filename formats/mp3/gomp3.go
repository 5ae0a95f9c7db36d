// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
}

// goMP3Frames cuts the PCM byte stream of go-mp3 into frames. go-mp3
// always produces 16-bit little-endian stereo, mono streams included.
type goMP3Frames struct {
	dec mp3Reader
	buf []byte
}

func newGoMP3Frames(r io.Reader, samplesPerFrame int) (*goMP3Frames, error) {
	// Hide io.Seeker so go-mp3 does not pre-scan the whole stream.
	dec, err := gomp3.NewDecoder(struct{ io.Reader }{r})
	if err != nil {
		return nil, fmt.Errorf("mp3: go-mp3: %w", err)
	}

	return newGoMP3FramesFrom(dec, samplesPerFrame), nil
}

func newGoMP3FramesFrom(dec mp3Reader, samplesPerFrame int) *goMP3Frames {
	return &goMP3Frames{
		dec: dec,
		buf: make([]byte, samplesPerFrame*4),
	}
}

func (g *goMP3Frames) read() (int, error) {
	n, err := io.ReadFull(g.dec, g.buf)
	samples := n / 4

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if samples == 0 {
			return 0, io.EOF
		}
		// Short last frame.
		return samples, nil
	default:
		return 0, err
	}
}

func (g *goMP3Frames) DecodeFrame(pcm *[2][]int16) (int, error) {
	samples, err := g.read()
	if err != nil {
		return 0, err
	}

	for i := range samples {
		pcm[0][i] = int16(binary.LittleEndian.Uint16(g.buf[4*i:]))
		pcm[1][i] = int16(binary.LittleEndian.Uint16(g.buf[4*i+2:]))
	}

	return samples, nil
}

func (g *goMP3Frames) SkipFrame() (int, error) {
	return g.read()
}

func (g *goMP3Frames) Close() error { return nil }
