// SPDX-License-Identifier: EPL-2.0

package vbrtag

import "github.com/ik5/mp3gapless/mpeg"

// DefaultEncoderVersion is written when EncoderSettings.Version is empty.
const DefaultEncoderVersion = "LAME3.100"

// VBRMode is the encoder's rate control mode.
type VBRMode int

const (
	VBROff VBRMode = iota
	VBRMT
	VBRRH
	VBRABR
	VBRMTRH
)

// vbrMethodCodes maps VBRMode to the method nibble stored in the LAME tag.
var vbrMethodCodes = [...]int{1, 5, 3, 2, 4, 0, 3}

func (m VBRMode) methodCode() int {
	if m < 0 || int(m) >= len(vbrMethodCodes) {
		return 0
	}
	return vbrMethodCodes[m]
}

// ShortBlockMode selects how the encoder uses short blocks.
type ShortBlockMode int

const (
	ShortBlocksAllowed ShortBlockMode = iota
	ShortBlocksCoupled
	ShortBlocksDispensed
	ShortBlocksForced
)

// EncoderSettings carries the encoder state recorded in the tag frame.
// Zero values are valid for every optional setting.
type EncoderSettings struct {
	OutSampleRate   int // Hz of the encoded stream
	InSampleRate    int // Hz of the source material
	Mode            mpeg.Mode
	ModeExtension   int
	ForceMS         bool
	ErrorProtection bool
	Private         bool
	Copyright       bool
	Original        bool
	Emphasis        int
	FreeFormat      bool

	VBR            VBRMode
	Bitrate        int // kbps, used when VBR is VBROff
	VBRMinBitrate  int
	VBRMeanBitrate int
	VBRQuality     int // 0 best, 9 worst
	Quality        int // algorithm quality, 0 best, 9 worst

	LowpassFreq      int // Hz, -1 when disabled
	HighpassFreq     int // Hz, -1 when disabled
	ATHType          int
	NoATH            bool
	ATHOnly          bool
	ExpNSPsyTune     int
	ShortBlocks      ShortBlockMode
	ScaleLeft        float64
	ScaleRight       float64
	DisableReservoir bool
	NoiseShaping     int
	Preset           int

	RadioGain      Optional // tenths of a dB
	AudiophileGain Optional // tenths of a dB
	PeakSample     Optional // 16-bit scale peak, when measured

	EncoderDelay   int
	EncoderPadding int
	NoGapTotal     Optional
	NoGapCurrent   int

	// Version is the 9-byte short encoder version, e.g. "LAME3.100".
	Version string
}

func (s EncoderSettings) mpegVersion() (mpeg.Version, int, bool) {
	return mpeg.VersionFor(s.OutSampleRate)
}

// hostingBitrate is the bitrate of the frame carrying the tag.
func (s EncoderSettings) hostingBitrate(v mpeg.Version) int {
	if s.VBR == VBROff {
		return s.Bitrate
	}

	switch {
	case v == mpeg.Version1:
		return 128
	case s.OutSampleRate < 16000:
		return 32
	default:
		return 64
	}
}

func (s EncoderSettings) abrBitrate() int {
	switch s.VBR {
	case VBRABR:
		return s.VBRMeanBitrate
	case VBROff:
		return s.Bitrate
	default:
		return s.VBRMinBitrate
	}
}

func (s EncoderSettings) stereoModeCode() int {
	switch s.Mode {
	case mpeg.Mono:
		return 0
	case mpeg.Stereo:
		return 1
	case mpeg.DualChannel:
		return 2
	case mpeg.JointStereo:
		if s.ForceMS {
			return 4
		}
		return 3
	default:
		return 7
	}
}

func (s EncoderSettings) sourceRateCode() int {
	switch {
	case s.InSampleRate <= 32000:
		return 0
	case s.InSampleRate == 48000:
		return 2
	case s.InSampleRate > 48000:
		return 3
	default:
		return 1
	}
}

// nonOptimal reports whether the settings override the encoder's
// recommended behaviour.
func (s EncoderSettings) nonOptimal() bool {
	return s.ShortBlocks == ShortBlocksForced ||
		s.ShortBlocks == ShortBlocksDispensed ||
		(s.LowpassFreq == -1 && s.HighpassFreq == -1) ||
		s.ScaleLeft != s.ScaleRight ||
		(s.DisableReservoir && s.Bitrate < 320) ||
		s.NoATH ||
		s.ATHOnly ||
		s.ATHType == 0 ||
		s.InSampleRate <= 32000
}

func (s EncoderSettings) shortVersion() [9]byte {
	var v [9]byte
	name := s.Version
	if name == "" {
		name = DefaultEncoderVersion
	}
	copy(v[:], name)
	return v
}
