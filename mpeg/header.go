// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"fmt"

	"github.com/ik5/mp3gapless/internal/bitio"
)

// HeaderSize is the length of an MPEG audio frame header in bytes.
const HeaderSize = 4

// Version is the two-bit MPEG audio version ID as stored in the header.
type Version uint8

const (
	Version2_5      Version = 0
	VersionReserved Version = 1
	Version2        Version = 2
	Version1        Version = 3
)

func (v Version) String() string {
	switch v {
	case Version2_5:
		return "MPEG-2.5"
	case Version2:
		return "MPEG-2"
	case Version1:
		return "MPEG-1"
	default:
		return "reserved"
	}
}

// LSF reports whether the version uses the low sampling frequency
// extension (MPEG-2 and MPEG-2.5).
func (v Version) LSF() bool { return v != Version1 }

// Layer is the two-bit layer description as stored in the header.
type Layer uint8

const (
	LayerReserved Layer = 0
	LayerIII      Layer = 1
	LayerII       Layer = 2
	LayerI        Layer = 3
)

func (l Layer) String() string {
	switch l {
	case LayerIII:
		return "Layer III"
	case LayerII:
		return "Layer II"
	case LayerI:
		return "Layer I"
	default:
		return "reserved"
	}
}

// Mode is the channel mode.
type Mode uint8

const (
	Stereo      Mode = 0
	JointStereo Mode = 1
	DualChannel Mode = 2
	Mono        Mode = 3
)

func (m Mode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	default:
		return "mono"
	}
}

// Header is a decoded MPEG audio frame header.
type Header struct {
	Version         Version
	Layer           Layer
	Protected       bool // a 16-bit CRC follows the header
	BitrateIndex    int
	SampleRateIndex int
	Padding         bool
	Private         bool
	Mode            Mode
	ModeExtension   int
	Copyright       bool
	Original        bool
	Emphasis        int
}

// ParseHeader decodes the first four bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}

	r := bitio.NewReader(b, 0)
	if r.ReadBits(11) != 0x7FF {
		return Header{}, ErrNoSync
	}

	h := Header{
		Version:         Version(r.ReadBits(2)),
		Layer:           Layer(r.ReadBits(2)),
		Protected:       !r.ReadBool(),
		BitrateIndex:    int(r.ReadBits(4)),
		SampleRateIndex: int(r.ReadBits(2)),
		Padding:         r.ReadBool(),
		Private:         r.ReadBool(),
		Mode:            Mode(r.ReadBits(2)),
		ModeExtension:   int(r.ReadBits(2)),
		Copyright:       r.ReadBool(),
		Original:        r.ReadBool(),
		Emphasis:        int(r.ReadBits(2)),
	}

	if err := h.Valid(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Valid checks the fields that make a header undecodable. A bitrate index
// of 0 (free format) is accepted.
func (h Header) Valid() error {
	switch {
	case h.Version == VersionReserved:
		return ErrReservedVersion
	case h.Layer == LayerReserved:
		return ErrReservedLayer
	case h.BitrateIndex < 0 || h.BitrateIndex > 14:
		return fmt.Errorf("%w: index %d", ErrBadBitrate, h.BitrateIndex)
	case h.SampleRateIndex < 0 || h.SampleRateIndex > 2:
		return fmt.Errorf("%w: index %d", ErrBadSampleRate, h.SampleRateIndex)
	}

	return nil
}

// Encode writes the header into the first four bytes of dst.
func (h Header) Encode(dst []byte) error {
	if len(dst) < HeaderSize {
		return ErrShortHeader
	}

	w := bitio.NewWriter(dst, 0)
	w.WriteBits(0x7FF, 11)
	w.WriteBits(uint32(h.Version), 2)
	w.WriteBits(uint32(h.Layer), 2)
	w.WriteBool(!h.Protected)
	w.WriteBits(uint32(h.BitrateIndex), 4)
	w.WriteBits(uint32(h.SampleRateIndex), 2)
	w.WriteBool(h.Padding)
	w.WriteBool(h.Private)
	w.WriteBits(uint32(h.Mode), 2)
	w.WriteBits(uint32(h.ModeExtension), 2)
	w.WriteBool(h.Copyright)
	w.WriteBool(h.Original)
	w.WriteBits(uint32(h.Emphasis), 2)

	return nil
}

// Bitrate returns the bitrate in kbps, or 0 for free format.
func (h Header) Bitrate() int {
	return BitrateKbps(h.Version, h.Layer, h.BitrateIndex)
}

// SampleRate returns the sampling frequency in Hz.
func (h Header) SampleRate() int {
	return SampleRate(h.Version, h.SampleRateIndex)
}

// Channels returns 1 for mono and 2 otherwise.
func (h Header) Channels() int {
	if h.Mode == Mono {
		return 1
	}
	return 2
}

// SamplesPerFrame returns the number of PCM samples per channel a frame
// decodes to.
func (h Header) SamplesPerFrame() int {
	switch h.Layer {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	default:
		if h.Version.LSF() {
			return 576
		}
		return 1152
	}
}

// FrameLength returns the full frame length in bytes, including the header
// and padding. It is 0 for free-format frames.
func (h Header) FrameLength() int {
	kbps := h.Bitrate()
	rate := h.SampleRate()
	if kbps == 0 || rate == 0 {
		return 0
	}

	pad := 0
	if h.Padding {
		pad = 1
	}

	switch {
	case h.Layer == LayerI:
		return (12000*kbps/rate + pad) * 4
	case h.Layer == LayerIII && h.Version.LSF():
		return 72000*kbps/rate + pad
	default:
		return 144000*kbps/rate + pad
	}
}

// SideInfoSize returns the Layer III side information size in bytes.
func (h Header) SideInfoSize() int {
	return SideInfoSize(h.Version, h.Mode)
}

// SideInfoSize returns the Layer III side information size for a version
// and channel mode.
func SideInfoSize(v Version, m Mode) int {
	switch {
	case !v.LSF() && m == Mono:
		return 17
	case !v.LSF():
		return 32
	case m == Mono:
		return 9
	default:
		return 17
	}
}

// DataOffset returns the offset of the first byte past the header, the
// optional CRC and the side information.
func (h Header) DataOffset() int {
	off := HeaderSize + h.SideInfoSize()
	if h.Protected {
		off += 2
	}
	return off
}

func (h Header) String() string {
	return fmt.Sprintf("%s %s, %d kbps, %d Hz, %s", h.Version, h.Layer, h.Bitrate(), h.SampleRate(), h.Mode)
}
