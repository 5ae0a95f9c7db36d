// SPDX-License-Identifier: EPL-2.0

package vbrtag

import (
	"math"

	"github.com/ik5/mp3gapless/internal/bitio"
	"github.com/ik5/mp3gapless/internal/crc16"
)

// LameExtensionSize is the size of the LAME block following the VBR scale
// field, including both CRC fields.
const LameExtensionSize = 36

// maxGainAdjustment is the largest replay gain magnitude that fits the
// 9-bit field.
const maxGainAdjustment = 0x1FE

// Replay gain name codes.
const (
	GainRadio      = 1
	GainAudiophile = 2
)

// Replay gain originator written by the encoder: determined automatically.
const gainOriginatorAuto = 3

// ReplayGain is one packed replay gain field of the LAME tag.
type ReplayGain struct {
	Name       int // GainRadio, GainAudiophile or 0 when unset
	Originator int
	Adjustment int // tenths of a dB
}

func newReplayGain(name int, gain Optional) ReplayGain {
	v, ok := gain.Get()
	if !ok {
		return ReplayGain{}
	}

	v = max(min(v, maxGainAdjustment), -maxGainAdjustment)

	return ReplayGain{Name: name, Originator: gainOriginatorAuto, Adjustment: v}
}

// Set reports whether the field carries a gain.
func (g ReplayGain) Set() bool { return g.Name != 0 }

// DB returns the adjustment in decibels.
func (g ReplayGain) DB() float64 { return float64(g.Adjustment) / 10 }

func (g ReplayGain) encode() uint16 {
	if !g.Set() {
		return 0
	}

	v := uint16(g.Name&0x7)<<13 | uint16(g.Originator&0x7)<<10
	if g.Adjustment < 0 {
		v |= 0x200
		v |= uint16(-g.Adjustment) & 0x1FF
	} else {
		v |= uint16(g.Adjustment) & 0x1FF
	}

	return v
}

func decodeReplayGain(v uint16) ReplayGain {
	g := ReplayGain{
		Name:       int(v>>13) & 0x7,
		Originator: int(v>>10) & 0x7,
		Adjustment: int(v & 0x1FF),
	}
	if v&0x200 != 0 {
		g.Adjustment = -g.Adjustment
	}
	return g
}

// LameInfo is the decoded LAME extension block.
type LameInfo struct {
	Quality        int // the VBR scale field as written by LAME
	Version        string
	Revision       int
	VBRMethod      int
	LowpassHz      int
	PeakRaw        uint32
	RadioGain      ReplayGain
	AudiophileGain ReplayGain
	ATHType        int
	NSPsyTune      bool
	SafeJoint      bool
	NoGapMore      bool
	NoGapPrevious  bool
	Bitrate        int // kbps; 255 means 255 or more
	EncDelay       int
	EncPadding     int
	NoiseShaping   int
	StereoMode     int
	NonOptimal     bool
	SourceRate     int // 0: <=32 kHz, 1: 44.1 kHz, 2: 48 kHz, 3: >48 kHz
	Preset         int
	MusicLength    uint32
	MusicCRC       uint16
	TagCRC         uint16
	// CRCValid reports whether TagCRC matches the frame bytes it covers.
	CRCValid bool
}

// Peak returns the peak amplitude, 1.0 being full scale.
func (l *LameInfo) Peak() float64 {
	return float64(l.PeakRaw) / (1 << 23)
}

// putLameExtension writes the LAME block at off, then the CRC-16 of
// everything in buf before the CRC field, seeded with crc (the CRC of
// buf[:off]). It returns the number of bytes written.
func putLameExtension(buf []byte, off int, s EncoderSettings, si *SeekInfo, musicLength int, crc uint16) int {
	quality := max(100-10*s.VBRQuality-s.Quality, 0)

	lowpass := 0
	if s.LowpassFreq > 0 {
		lowpass = min(int(float64(s.LowpassFreq)/100.0+0.5), 255)
	}

	var peak uint32
	if p, ok := s.PeakSample.Get(); ok {
		peak = uint32(math.Abs(math.Trunc(float64(p)/32767.0*(1<<23) + 0.5)))
	}

	noGapMore, noGapPrevious := false, false
	if total, ok := s.NoGapTotal.Get(); ok {
		noGapPrevious = s.NoGapCurrent > 0
		noGapMore = s.NoGapCurrent < total-1
	}

	abr := s.abrBitrate()
	if abr >= 255 {
		abr = 0xFF
	}

	version := s.shortVersion()

	w := bitio.NewWriter(buf, off)
	w.WriteUint32(uint32(quality))
	_, _ = w.Write(version[:])
	w.WriteBits(0, 4) // revision
	w.WriteBits(uint32(s.VBR.methodCode()), 4)
	_ = w.WriteByte(byte(lowpass))
	w.WriteUint32(peak)
	w.WriteUint16(newReplayGain(GainRadio, s.RadioGain).encode())
	w.WriteUint16(newReplayGain(GainAudiophile, s.AudiophileGain).encode())

	w.WriteBool(noGapPrevious)
	w.WriteBool(noGapMore)
	w.WriteBool(s.ExpNSPsyTune&2 != 0) // safe joint
	w.WriteBool(s.ExpNSPsyTune&1 != 0)
	w.WriteBits(uint32(s.ATHType), 4)

	_ = w.WriteByte(byte(abr))
	w.WriteBits(uint32(s.EncoderDelay), 12)
	w.WriteBits(uint32(s.EncoderPadding), 12)

	w.WriteBits(uint32(s.sourceRateCode()), 2)
	w.WriteBool(s.nonOptimal())
	w.WriteBits(uint32(s.stereoModeCode()), 3)
	w.WriteBits(uint32(s.NoiseShaping), 2)

	_ = w.WriteByte(0) // reserved
	w.WriteUint16(uint16(s.Preset))
	w.WriteUint32(uint32(musicLength))
	w.WriteUint16(si.MusicCRC)

	crc = crc16.Checksum(crc, buf[off:w.Offset()])
	w.WriteUint16(crc)

	return w.Offset() - off
}

// parseLameExtension decodes the LAME block starting at the VBR scale
// field. frame must start at the frame header since the tag CRC covers it.
func parseLameExtension(frame []byte, off int) *LameInfo {
	if off+LameExtensionSize+4 > len(frame) {
		return nil
	}

	r := bitio.NewReader(frame, off)
	l := &LameInfo{Quality: int(r.ReadUint32())}

	version := make([]byte, 9)
	r.ReadBytes(version)
	if !printable(version) {
		return nil
	}
	l.Version = string(trimNUL(version))

	l.Revision = int(r.ReadBits(4))
	l.VBRMethod = int(r.ReadBits(4))
	l.LowpassHz = int(r.ReadUint8()) * 100
	l.PeakRaw = r.ReadUint32()
	l.RadioGain = decodeReplayGain(r.ReadUint16())
	l.AudiophileGain = decodeReplayGain(r.ReadUint16())

	l.NoGapPrevious = r.ReadBool()
	l.NoGapMore = r.ReadBool()
	l.SafeJoint = r.ReadBool()
	l.NSPsyTune = r.ReadBool()
	l.ATHType = int(r.ReadBits(4))

	l.Bitrate = int(r.ReadUint8())
	l.EncDelay = int(r.ReadBits(12))
	l.EncPadding = int(r.ReadBits(12))

	l.SourceRate = int(r.ReadBits(2))
	l.NonOptimal = r.ReadBool()
	l.StereoMode = int(r.ReadBits(3))
	l.NoiseShaping = int(r.ReadBits(2))

	r.Skip(1)
	l.Preset = int(r.ReadUint16())
	l.MusicLength = r.ReadUint32()
	l.MusicCRC = r.ReadUint16()

	covered := r.Offset()
	l.TagCRC = r.ReadUint16()
	if r.Overrun() {
		return nil
	}

	l.CRCValid = crc16.Checksum(0, frame[:covered]) == l.TagCRC

	return l
}

// printable accepts the short version string: printable ASCII, optionally
// NUL padded, starting with a non-NUL byte.
func printable(b []byte) bool {
	if len(b) == 0 || b[0] == 0 {
		return false
	}

	padding := false
	for _, c := range b {
		switch {
		case c == 0:
			padding = true
		case padding || c < 0x20 || c > 0x7E:
			return false
		}
	}
	return true
}

func trimNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
