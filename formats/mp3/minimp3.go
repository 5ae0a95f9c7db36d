// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tosone/minimp3"
)

// miniMP3Frames serves frames from a stream decoded in one pass by
// minimp3. minimp3 does not report frame boundaries, so the PCM is split
// into frames of the first header's size after padding the front for
// frames minimp3 dropped. A drop in the middle of the stream still shifts
// the boundaries before it.
type miniMP3Frames struct {
	pcm       []byte
	pos       int
	channels  int
	frameSize int
}

func newMiniMP3Frames(r io.Reader, samplesPerFrame int) (*miniMP3Frames, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: read stream: %w", err)
	}

	dec, pcm, err := minimp3.DecodeFull(data)
	if err != nil {
		return nil, fmt.Errorf("mp3: minimp3: %w", err)
	}
	channels := dec.Channels
	dec.Close()

	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	frames, err := countFrames(data)
	if err != nil {
		return nil, fmt.Errorf("mp3: count frames: %w", err)
	}
	pcm = alignFrames(pcm, frames, samplesPerFrame, channels)

	return &miniMP3Frames{
		pcm:       pcm,
		channels:  channels,
		frameSize: samplesPerFrame,
	}, nil
}

func (m *miniMP3Frames) next() int {
	stride := m.channels * 2
	return min(len(m.pcm)-m.pos, m.frameSize*stride) / stride
}

func (m *miniMP3Frames) DecodeFrame(pcm *[2][]int16) (int, error) {
	samples := m.next()
	if samples == 0 {
		return 0, io.EOF
	}

	stride := m.channels * 2
	for i := range samples {
		at := m.pos + i*stride
		pcm[0][i] = int16(binary.LittleEndian.Uint16(m.pcm[at:]))
		if m.channels == 2 {
			pcm[1][i] = int16(binary.LittleEndian.Uint16(m.pcm[at+2:]))
		} else {
			pcm[1][i] = pcm[0][i]
		}
	}
	m.pos += samples * stride

	return samples, nil
}

func (m *miniMP3Frames) SkipFrame() (int, error) {
	samples := m.next()
	if samples == 0 {
		return 0, io.EOF
	}

	m.pos += samples * m.channels * 2
	return samples, nil
}

func (m *miniMP3Frames) Close() error {
	m.pcm = nil
	return nil
}
