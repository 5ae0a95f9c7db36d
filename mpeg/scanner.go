// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	id3v1Size      = 128
	scannerBufSize = 8192
	maxResyncBytes = 1 << 20
)

var id3v1Magic = []byte("TAG")

// Scanner walks the frames of an MPEG audio stream. ID3v2 and ID3v1 tags
// and garbage between frames are skipped.
//
//	s := mpeg.NewScanner(f)
//	for s.Scan() {
//	    frame := s.Frame()
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    // handle
//	}
type Scanner struct {
	r      *bufio.Reader
	frame  []byte
	header Header
	offset int64 // stream offset of the current frame
	pos    int64 // stream offset of the next unread byte
	err    error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, scannerBufSize)}
}

// Scan advances to the next frame. It returns false at the end of the
// stream or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	skipped := 0
	for {
		head, err := s.r.Peek(HeaderSize)
		if err != nil {
			s.setErr(err)
			return false
		}

		if bytes.HasPrefix(head, id3v2Magic) {
			if tag, _ := s.r.Peek(ID3v2HeaderSize); len(tag) == ID3v2HeaderSize {
				if n := ID3v2Size(tag); n > 0 {
					if !s.discard(n) {
						return false
					}
					continue
				}
			}
		}

		if bytes.HasPrefix(head, id3v1Magic) {
			if !s.discard(id3v1Size) {
				return false
			}
			continue
		}

		h, err := ParseHeader(head)
		if err == nil {
			if n := h.FrameLength(); n > 0 {
				frame, err := s.r.Peek(n)
				if err == nil {
					s.frame = append(s.frame[:0], frame...)
					s.header = h
					s.offset = s.pos
					s.discard(n)

					return true
				}

				if !errors.Is(err, io.EOF) {
					s.setErr(err)
					return false
				}
				// A truncated last frame; keep looking for a valid one.
			}
		}

		skipped++
		if skipped > maxResyncBytes {
			s.err = fmt.Errorf("mpeg: no frame sync within %d bytes at offset %d", maxResyncBytes, s.pos)
			return false
		}

		if !s.discard(1) {
			return false
		}
	}
}

func (s *Scanner) discard(n int) bool {
	d, err := s.r.Discard(n)
	s.pos += int64(d)
	if err != nil {
		s.setErr(err)
		return false
	}
	return true
}

func (s *Scanner) setErr(err error) {
	if errors.Is(err, io.EOF) {
		s.err = io.EOF
		return
	}
	s.err = fmt.Errorf("mpeg: %w", err)
}

// Frame returns the bytes of the current frame. The slice is reused by the
// next call to Scan.
func (s *Scanner) Frame() []byte { return s.frame }

// Header returns the header of the current frame.
func (s *Scanner) Header() Header { return s.header }

// Offset returns the stream offset of the current frame.
func (s *Scanner) Offset() int64 { return s.offset }

// Err returns the first non-EOF error encountered by Scan.
func (s *Scanner) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}
