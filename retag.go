// SPDX-License-Identifier: EPL-2.0

package mp3gapless

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/formats/mp3"
	"github.com/ik5/mp3gapless/mpeg"
	"github.com/ik5/mp3gapless/vbrtag"
)

const id3v1Size = 128

// RetagOptions override the values Retag carries over from an existing
// tag. Absent fields keep the old tag's value, or the default when the
// stream has no tag.
type RetagOptions struct {
	EncoderDelay   vbrtag.Optional // default mp3.DefaultEncoderDelay
	EncoderPadding vbrtag.Optional // default 0
	// Version is the short encoder version; empty keeps the old one.
	Version string
}

// Retag copies the MPEG stream in src to dst with a freshly built
// Xing/LAME tag frame in front of the audio. An existing tag frame is
// replaced; leading ID3v2 and trailing ID3v1 tags are kept. dst should
// be empty. It returns the tag as read back from dst.
func Retag(dst io.ReadWriteSeeker, src io.Reader, opts RetagOptions) (*vbrtag.TagData, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	sc := mpeg.NewScanner(bytes.NewReader(data))

	var (
		frames [][]byte
		first  mpeg.Header
		old    *vbrtag.TagData
	)
	for sc.Scan() {
		if len(frames) == 0 {
			if tag, ok := vbrtag.Parse(sc.Frame()); ok && old == nil {
				old = tag
				continue
			}
			first = sc.Header()
		}
		frames = append(frames, bytes.Clone(sc.Frame()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, ErrNoAudioFrames
	}

	tg, err := vbrtag.NewTagger(retagSettings(first, frames, old, opts))
	if err != nil {
		return nil, fmt.Errorf("build tag: %w", err)
	}
	if !tg.Enabled() {
		return nil, fmt.Errorf("%w: %s", ErrTagDoesNotFit, first)
	}

	// ID3v2, then the placeholder, then audio, then ID3v1.
	out := bytes.NewBuffer(make([]byte, 0, len(data)+tg.FrameSize()))
	if len(data) >= mpeg.ID3v2HeaderSize {
		out.Write(data[:min(mpeg.ID3v2Size(data), len(data))])
	}
	out.Write(tg.DummyFrame())
	for _, f := range frames {
		h, _ := mpeg.ParseHeader(f)
		tg.SeekInfo().AddFrame(h.Bitrate(), f)
		out.Write(f)
	}
	if n := len(data); n >= id3v1Size && bytes.HasPrefix(data[n-id3v1Size:], []byte("TAG")) {
		out.Write(data[n-id3v1Size:])
	}

	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind output: %w", err)
	}
	if _, err := out.WriteTo(dst); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	if err := tg.PatchStream(dst); err != nil {
		return nil, fmt.Errorf("patch tag frame: %w", err)
	}

	tag, ok, err := vbrtag.ReadTag(dst)
	if err != nil {
		return nil, fmt.Errorf("read back tag: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("read back tag: %w", vbrtag.ErrNoFrames)
	}

	return tag, nil
}

// retagSettings derives encoder settings from the audio frames and the
// tag being replaced.
func retagSettings(h mpeg.Header, frames [][]byte, old *vbrtag.TagData, opts RetagOptions) vbrtag.EncoderSettings {
	s := vbrtag.EncoderSettings{
		OutSampleRate:   h.SampleRate(),
		InSampleRate:    h.SampleRate(),
		Mode:            h.Mode,
		ModeExtension:   h.ModeExtension,
		ErrorProtection: h.Protected,
		Private:         h.Private,
		Copyright:       h.Copyright,
		Original:        h.Original,
		Emphasis:        h.Emphasis,
		ATHType:         4,
		LowpassFreq:     -1,
		HighpassFreq:    -1,
		Version:         opts.Version,
	}

	minKbps, maxKbps := h.Bitrate(), h.Bitrate()
	for _, f := range frames[1:] {
		if fh, err := mpeg.ParseHeader(f); err == nil {
			minKbps = min(minKbps, fh.Bitrate())
			maxKbps = max(maxKbps, fh.Bitrate())
		}
	}
	if minKbps == maxKbps {
		s.Bitrate = minKbps
	} else {
		s.VBR = vbrtag.VBRMTRH
		s.VBRMinBitrate = minKbps
	}

	delay, padding := vbrtag.Optional{}, vbrtag.Optional{}
	if old != nil {
		delay, padding = old.EncDelay, old.EncPadding
		if l := old.Lame; l != nil {
			s.LowpassFreq = l.LowpassHz
			s.ATHType = l.ATHType
			s.NoiseShaping = l.NoiseShaping
			s.Preset = l.Preset
			if s.Version == "" {
				s.Version = l.Version
			}
		}
	}
	if opts.EncoderDelay.Valid() {
		delay = opts.EncoderDelay
	}
	if opts.EncoderPadding.Valid() {
		padding = opts.EncoderPadding
	}
	s.EncoderDelay = delay.Or(mp3.DefaultEncoderDelay)
	s.EncoderPadding = padding.Or(0)

	return s
}
