// SPDX-License-Identifier: EPL-2.0

package vbrtag

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/mp3gapless/internal/bitio"
	"github.com/ik5/mp3gapless/internal/crc16"
	"github.com/ik5/mp3gapless/mpeg"
)

// MaxFrameSize is the largest frame that can host a tag: a 640 kbps
// free-format frame at 32 kHz.
const MaxFrameSize = 2880

// xingHeaderSize covers magic, flags, frame count, byte count, TOC and VBR
// scale.
const xingHeaderSize = 4 + 4 + 4 + 4 + NumTOCEntries + 4

// lameHeaderSize is the room a tag needs past the side information.
const lameHeaderSize = xingHeaderSize + LameExtensionSize

var (
	magicXing = [4]byte{'X', 'i', 'n', 'g'}
	magicInfo = [4]byte{'I', 'n', 'f', 'o'}
)

// Tagger writes the tag frame of one encoded stream. Create it before the
// first audio frame, write DummyFrame to reserve the space, feed every
// audio frame to SeekInfo().AddFrame and finish with PatchStream or
// AssembleFrame.
type Tagger struct {
	settings    EncoderSettings
	seek        *SeekInfo
	dummy       []byte
	sideInfoLen int
	enabled     bool
}

// NewTagger validates s and sizes the hosting frame. A tag that does not
// fit its frame is disabled, which is not an error: Enabled reports it and
// AssembleFrame then writes nothing.
func NewTagger(s EncoderSettings) (*Tagger, error) {
	v, _, ok := s.mpegVersion()
	if !ok {
		return nil, fmt.Errorf("%w: %d Hz", ErrUnsupportedSampleRate, s.OutSampleRate)
	}

	hid := 0
	if v == mpeg.Version1 {
		hid = 1
	}

	kbps := s.hostingBitrate(v)
	frameSize := (hid + 1) * 72000 * kbps / s.OutSampleRate

	sideInfoLen := mpeg.HeaderSize + mpeg.SideInfoSize(v, s.Mode)
	if s.ErrorProtection {
		sideInfoLen += 2
	}

	t := &Tagger{
		settings:    s,
		seek:        NewSeekInfo(DefaultSeekTableSize),
		sideInfoLen: sideInfoLen,
		enabled:     frameSize >= sideInfoLen+lameHeaderSize && frameSize <= MaxFrameSize,
	}
	t.seek.TotalFrameSize = frameSize

	if !t.enabled {
		return t, nil
	}

	t.dummy = make([]byte, frameSize)
	if err := WriteFrameHeader(t.dummy, s); err != nil {
		return nil, err
	}

	return t, nil
}

// Enabled reports whether the tag fits its hosting frame.
func (t *Tagger) Enabled() bool { return t.enabled }

// FrameSize returns the size of the hosting frame in bytes.
func (t *Tagger) FrameSize() int { return t.seek.TotalFrameSize }

// SeekInfo returns the sampler fed with the stream's audio frames.
func (t *Tagger) SeekInfo() *SeekInfo { return t.seek }

// DummyFrame returns a copy of the placeholder frame to write ahead of the
// audio: a valid header followed by zeros. It is nil when the tag is
// disabled.
func (t *Tagger) DummyFrame() []byte {
	if !t.enabled {
		return nil
	}
	return append([]byte(nil), t.dummy...)
}

// AssembleFrame builds the final tag frame into dst and returns its size.
//
// It returns 0 when the tag is disabled or no frame was sampled. When dst
// is shorter than the frame it returns the required size with
// ErrBufferTooSmall and leaves dst untouched.
func (t *Tagger) AssembleFrame(dst []byte) (int, error) {
	if !t.enabled || t.seek.Pos() <= 0 {
		return 0, nil
	}

	n := t.seek.TotalFrameSize
	if len(dst) < n {
		return n, ErrBufferTooSmall
	}

	frame := dst[:n]
	copy(frame, t.dummy)

	var toc [NumTOCEntries]byte
	if t.settings.FreeFormat {
		linearTOC(&toc)
	} else {
		t.seek.BuildTOC(&toc)
	}

	// Xing data lives in the ancillary area, so with protection on it
	// starts over the last two bytes of the side information.
	idx := t.sideInfoLen
	if t.settings.ErrorProtection {
		idx -= 2
	}

	magic := magicXing
	if t.settings.VBR == VBROff {
		magic = magicInfo
	}

	streamSize := t.seek.BytesWritten + n

	w := bitio.NewWriter(frame, idx)
	_, _ = w.Write(magic[:])
	w.WriteUint32(FlagFrames | FlagBytes | FlagTOC | FlagVBRScale)
	w.WriteUint32(uint32(t.seek.NumFrames))
	w.WriteUint32(uint32(streamSize))
	_, _ = w.Write(toc[:])
	idx = w.Offset()

	if t.settings.ErrorProtection {
		if h, err := mpeg.ParseHeader(frame); err == nil {
			mpeg.PutProtectionCRC(frame, h)
		}
	}

	crc := crc16.Checksum(0, frame[:idx])
	putLameExtension(frame, idx, t.settings, t.seek, streamSize, crc)

	return n, nil
}

// PatchStream overwrites the placeholder frame at the start of a finished
// stream with the final tag frame. A leading ID3v2 tag is skipped.
func (t *Tagger) PatchStream(rws io.ReadWriteSeeker) error {
	if t.seek.Pos() <= 0 {
		return ErrNoFrames
	}

	end, err := rws.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("vbrtag: seek end: %w", err)
	}
	if end == 0 {
		return ErrEmptyStream
	}

	skip, err := id3v2Skip(rws)
	if err != nil {
		return err
	}

	buf := make([]byte, MaxFrameSize)
	n, err := t.AssembleFrame(buf)
	if err != nil || n == 0 {
		return err
	}

	if _, err := rws.Seek(skip, io.SeekStart); err != nil {
		return fmt.Errorf("vbrtag: seek tag frame: %w", err)
	}
	if _, err := rws.Write(buf[:n]); err != nil {
		return fmt.Errorf("vbrtag: write tag frame: %w", err)
	}

	return nil
}

// id3v2Skip rewinds rs and returns the size of a leading ID3v2 tag.
func id3v2Skip(rs io.ReadSeeker) (int64, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("vbrtag: rewind: %w", err)
	}

	var hdr [mpeg.ID3v2HeaderSize]byte
	n, err := io.ReadFull(rs, hdr[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("vbrtag: read id3v2 header: %w", err)
	}

	return int64(mpeg.ID3v2Size(hdr[:n])), nil
}
