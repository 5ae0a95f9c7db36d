// SPDX-License-Identifier: EPL-2.0

package vbrtag

import (
	"fmt"

	"github.com/ik5/mp3gapless/mpeg"
)

// WriteFrameHeader writes the 4-byte header of the frame hosting the tag
// into dst. Mode, sample rate and flag bits come from s; the bitrate is the
// reference bitrate of the hosting frame so that players unaware of the tag
// decode it as a valid, silent frame.
func WriteFrameHeader(dst []byte, s EncoderSettings) error {
	v, rateIdx, ok := s.mpegVersion()
	if !ok {
		return fmt.Errorf("%w: %d Hz", ErrUnsupportedSampleRate, s.OutSampleRate)
	}

	h := mpeg.Header{
		Version:         v,
		Layer:           mpeg.LayerIII,
		Protected:       s.ErrorProtection,
		BitrateIndex:    max(mpeg.BitrateIndex(v, s.Bitrate), 0),
		SampleRateIndex: rateIdx,
		Private:         s.Private,
		Mode:            s.Mode,
		ModeExtension:   s.ModeExtension,
		Copyright:       s.Copyright,
		Original:        s.Original,
		Emphasis:        s.Emphasis,
	}
	if err := h.Encode(dst); err != nil {
		return err
	}

	bitrateIdx := 0
	if !s.FreeFormat {
		kbps := s.hostingBitrate(v)
		bitrateIdx = mpeg.BitrateIndex(v, kbps)
		if bitrateIdx < 0 {
			return fmt.Errorf("%w: %d kbps for %s", ErrUnsupportedBitrate, kbps, v)
		}
	}

	patchHostingHeader(dst, v, bitrateIdx)

	return nil
}

// patchHostingHeader forces the sync byte, the version/layer bits and the
// bitrate index of an encoded header. Protection, sample rate and private
// bits are kept; padding is cleared.
func patchHostingHeader(b []byte, v mpeg.Version, bitrateIdx int) {
	b[0] = 0xFF

	if v == mpeg.Version1 {
		b[1] = b[1]&0xF1 | 0x0A
	} else {
		b[1] = b[1]&0xF1 | 0x02
	}

	b[2] = byte(bitrateIdx<<4) | b[2]&0x0D
}
