// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/audio"
	"github.com/ik5/mp3gapless/mpeg"
	"github.com/ik5/mp3gapless/vbrtag"
)

// Decoder opens MPEG audio streams. The zero value uses the go-mp3 backend
// and the default encoder delay.
type Decoder struct {
	// DefaultEncoderDelay is the delay assumed when the stream has no
	// LAME tag. Zero selects DefaultEncoderDelay.
	DefaultEncoderDelay int
	// Backend selects the frame decoder.
	Backend Backend
}

// Open reads the framing of rs, parses the tag of the first frame when
// there is one and starts the frame decoder. A missing tag is not an error.
func (d Decoder) Open(rs io.ReadSeeker) (*Stream, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("mp3: seek end: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("mp3: rewind: %w", err)
	}

	sc := mpeg.NewScanner(rs)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mp3: find first frame: %w", err)
		}
		return nil, ErrNoAudioFrame
	}

	h := sc.Header()
	first := sc.Offset()
	tag, hasTag := vbrtag.Parse(sc.Frame())

	// The tag frame has a fixed bitrate; describe the stream by the first
	// audio frame after it.
	audioFrames := true
	if hasTag {
		if sc.Scan() {
			h, first = sc.Header(), sc.Offset()
		} else if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mp3: find first audio frame: %w", err)
		} else {
			audioFrames = false
		}
	}

	total, estimated := 0, false
	if frames, ok := tagFrames(tag, hasTag); ok {
		total = frames * h.SamplesPerFrame()
	} else if n := h.FrameLength(); n > 0 && audioFrames {
		total = int((size-first)/int64(n)) * h.SamplesPerFrame()
		estimated = true
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("mp3: rewind: %w", err)
	}

	dec, err := d.Backend.open(rs, h.SamplesPerFrame())
	if err != nil {
		return nil, err
	}

	if hasTag {
		// The tag frame decodes to silence that is not part of the audio.
		if _, err := dec.SkipFrame(); err != nil {
			dec.Close()
			return nil, fmt.Errorf("mp3: skip tag frame: %w", err)
		}
	} else {
		tag = nil
	}

	return newStream(dec, h, tag, total, estimated, d.DefaultEncoderDelay), nil
}

func tagFrames(tag *vbrtag.TagData, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	return tag.Frames.Get()
}

// Decode implements audio.Decoder. The returned source applies gapless
// trimming. Readers that cannot seek are read into memory first.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("mp3: read stream: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	s, err := d.Open(rs)
	if err != nil {
		return nil, err
	}
	return s, nil
}
