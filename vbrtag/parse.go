// SPDX-License-Identifier: EPL-2.0

package vbrtag

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/internal/bitio"
	"github.com/ik5/mp3gapless/mpeg"
)

// Xing header flags.
const (
	FlagFrames   = 0x0001
	FlagBytes    = 0x0002
	FlagTOC      = 0x0004
	FlagVBRScale = 0x0008
)

// maxDelay bounds plausible encoder delay and padding values. Old Xing
// headers without a LAME block hold unrelated bytes at that position.
const maxDelay = 3000

// delayOffset is the distance from the end of the Xing fields to the
// delay/padding triplet of the LAME block.
const delayOffset = 21

// TagData is a parsed Xing/Info tag. Parse returns a new value on every
// call.
type TagData struct {
	Magic    string // "Xing" or "Info"
	Flags    uint32
	Frames   Optional
	Bytes    Optional
	TOC      *[NumTOCEntries]byte
	VBRScale Optional

	SampleRate int
	// HeaderSize is the nominal size of the frame carrying the tag.
	HeaderSize int
	// HID is the version bit of the frame header: 1 for MPEG-1.
	HID int

	EncDelay   Optional
	EncPadding Optional

	// TagOffset is the offset of the magic inside the frame.
	TagOffset int
	// Lame is the LAME extension, nil when the frame has none.
	Lame *LameInfo
}

// VBR reports whether the tag marks a variable bitrate stream.
func (t *TagData) VBR() bool { return t.Magic == string(magicXing[:]) }

// Parse looks for a Xing or Info tag in the frame starting at b[0]. It
// returns false when the frame carries no tag, which is the normal case for
// audio frames, or when b is too short to hold the fields its flags
// announce.
func Parse(b []byte) (*TagData, bool) {
	if len(b) < mpeg.HeaderSize {
		return nil, false
	}

	hid := int(b[1]>>3) & 1
	rateIdx := int(b[2]>>2) & 3
	mode := mpeg.Mode(b[3]>>6) & 3
	bitrateIdx := int(b[2]>>4) & 0xF

	version := mpeg.Version2
	if hid == 1 {
		version = mpeg.Version1
	}
	kbps := mpeg.BitrateKbps(version, mpeg.LayerIII, bitrateIdx)

	rateRow := version
	if b[1]>>4 == 0xE {
		rateRow = mpeg.Version2_5
	}
	rate := mpeg.SampleRate(rateRow, rateIdx)

	off := mpeg.HeaderSize + mpeg.SideInfoSize(version, mode)
	if off+4 > len(b) {
		return nil, false
	}

	magic := [4]byte(b[off : off+4])
	if magic != magicXing && magic != magicInfo {
		return nil, false
	}
	if rate == 0 {
		return nil, false
	}

	t := &TagData{
		Magic:      string(magic[:]),
		SampleRate: rate,
		HeaderSize: (hid + 1) * 72000 * kbps / rate,
		HID:        hid,
		TagOffset:  off,
	}

	r := bitio.NewReader(b, off+4)
	t.Flags = r.ReadUint32()

	if t.Flags&FlagFrames != 0 {
		t.Frames = Some(int(r.ReadUint32()))
	}
	if t.Flags&FlagBytes != 0 {
		t.Bytes = Some(int(r.ReadUint32()))
	}
	if t.Flags&FlagTOC != 0 {
		t.TOC = new([NumTOCEntries]byte)
		r.ReadBytes(t.TOC[:])
	}

	scaleOff := r.Offset()
	if t.Flags&FlagVBRScale != 0 {
		t.VBRScale = Some(int(r.ReadUint32()))
	}

	if r.Overrun() {
		return nil, false
	}

	r.Skip(delayOffset)
	delay := int(r.ReadBits(12))
	padding := int(r.ReadBits(12))
	if !r.Overrun() {
		if delay <= maxDelay {
			t.EncDelay = Some(delay)
		}
		if padding <= maxDelay {
			t.EncPadding = Some(padding)
		}
	}

	if t.VBRScale.Valid() {
		t.Lame = parseLameExtension(b, scaleOff)
	}

	return t, true
}

// ReadTag parses the tag of the first frame of rs, skipping a leading
// ID3v2 tag. It returns false without error when the stream has no tag.
func ReadTag(rs io.ReadSeeker) (*TagData, bool, error) {
	skip, err := id3v2Skip(rs)
	if err != nil {
		return nil, false, err
	}

	if _, err := rs.Seek(skip, io.SeekStart); err != nil {
		return nil, false, fmt.Errorf("vbrtag: seek first frame: %w", err)
	}

	buf := make([]byte, MaxFrameSize)
	n, err := io.ReadFull(rs, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("vbrtag: read first frame: %w", err)
	}

	tag, ok := Parse(buf[:n])
	return tag, ok, nil
}
