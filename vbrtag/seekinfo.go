// SPDX-License-Identifier: EPL-2.0

package vbrtag

import (
	"math"

	"github.com/ik5/mp3gapless/internal/crc16"
)

const (
	// NumTOCEntries is the number of seek points in a Xing TOC.
	NumTOCEntries = 100
	// DefaultSeekTableSize is the number of buckets kept by NewSeekInfo
	// when no size is given.
	DefaultSeekTableSize = 400
)

// SeekInfo accumulates per-frame bitrates into a bounded table used to
// build the Xing TOC.
//
// Each bucket holds the cumulative bitrate sum after `want` more frames.
// When the table fills up every second bucket is dropped and `want`
// doubles, so memory stays fixed however long the stream is.
//
// A SeekInfo must be fed frames in stream order from a single goroutine.
type SeekInfo struct {
	bag  []int64
	pos  int
	want int
	seen int
	sum  int64

	// NumFrames counts every frame passed to AddSample.
	NumFrames int
	// BytesWritten counts the audio bytes passed to AddFrame.
	BytesWritten int
	// TotalFrameSize is the size of the frame hosting the tag.
	TotalFrameSize int
	// MusicCRC is the running CRC-16 of the audio bytes passed to AddFrame.
	MusicCRC uint16
}

// NewSeekInfo returns a SeekInfo with size buckets. Sizes below 2 select
// DefaultSeekTableSize.
func NewSeekInfo(size int) *SeekInfo {
	if size < 2 {
		size = DefaultSeekTableSize
	}

	return &SeekInfo{
		bag:  make([]int64, size),
		want: 1,
	}
}

// AddSample records the bitrate (kbps) of one frame.
func (s *SeekInfo) AddSample(kbps int) {
	s.NumFrames++
	s.sum += int64(kbps)
	s.seen++

	if s.seen < s.want {
		return
	}

	if s.pos < len(s.bag) {
		s.bag[s.pos] = s.sum
		s.pos++
		s.seen = 0
	}

	if s.pos == len(s.bag) {
		for i := 1; i < len(s.bag); i += 2 {
			s.bag[i/2] = s.bag[i]
		}
		s.want *= 2
		s.pos /= 2
	}
}

// AddFrame records a written audio frame: its bitrate feeds the seek table
// and its bytes feed the byte count and the music CRC.
func (s *SeekInfo) AddFrame(kbps int, frame []byte) {
	s.AddSample(kbps)
	s.BytesWritten += len(frame)
	s.MusicCRC = crc16.Checksum(s.MusicCRC, frame)
}

// BuildTOC fills entries 1-99 of toc. Entry i is the byte position of i% of
// the duration, scaled to 256. It leaves toc untouched when no bucket has
// been filled.
func (s *SeekInfo) BuildTOC(toc *[NumTOCEntries]byte) {
	if s.pos <= 0 || s.sum <= 0 {
		return
	}

	for i := 1; i < NumTOCEntries; i++ {
		idx := min(i*s.pos/NumTOCEntries, s.pos-1)

		point := int(math.Round(256 * float64(s.bag[idx]) / float64(s.sum)))
		toc[i] = byte(min(point, 255))
	}
}

// Reset clears all accumulated state but keeps the table capacity.
func (s *SeekInfo) Reset() {
	clear(s.bag)
	s.pos = 0
	s.want = 1
	s.seen = 0
	s.sum = 0
	s.NumFrames = 0
	s.BytesWritten = 0
	s.MusicCRC = 0
}

// Pos returns the number of filled buckets.
func (s *SeekInfo) Pos() int { return s.pos }

// Size returns the bucket capacity.
func (s *SeekInfo) Size() int { return len(s.bag) }

// Want returns the number of frames per bucket.
func (s *SeekInfo) Want() int { return s.want }

// Sum returns the total of all recorded bitrates.
func (s *SeekInfo) Sum() int64 { return s.sum }

func linearTOC(toc *[NumTOCEntries]byte) {
	for i := 1; i < NumTOCEntries; i++ {
		toc[i] = byte(255 * i / NumTOCEntries)
	}
}
