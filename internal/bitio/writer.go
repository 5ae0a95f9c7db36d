// SPDX-License-Identifier: EPL-2.0

// Package bitio reads and writes MSB-first bit fields in fixed byte buffers.
//
// Both Writer and Reader work on a caller-owned slice and never grow it.
// Operations that would run past the end set a sticky overrun flag instead
// of panicking; callers check it once after a sequence of fields.
package bitio

// Writer writes big-endian bit fields into a byte slice.
type Writer struct {
	buf     []byte
	bit     int // absolute bit position
	overrun bool
}

// NewWriter returns a Writer positioned at byte offset off of buf.
func NewWriter(buf []byte, off int) *Writer {
	return &Writer{buf: buf, bit: off * 8}
}

// WriteBits writes the low n bits of v, most significant first.
// n must be 0-32. Bits already in the buffer are overwritten.
func (w *Writer) WriteBits(v uint32, n uint) {
	if w.bit+int(n) > len(w.buf)*8 {
		w.overrun = true
		return
	}

	for i := int(n) - 1; i >= 0; i-- {
		byteIdx := w.bit >> 3
		shift := 7 - uint(w.bit&7)
		if v>>uint(i)&1 != 0 {
			w.buf[byteIdx] |= 1 << shift
		} else {
			w.buf[byteIdx] &^= 1 << shift
		}
		w.bit++
	}
}

// WriteBool writes a single bit.
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteBits(1, 1)
		return
	}
	w.WriteBits(0, 1)
}

// WriteByte writes 8 bits. It always returns nil; overruns are reported by
// Overrun.
func (w *Writer) WriteByte(b byte) error {
	w.WriteBits(uint32(b), 8)
	return nil
}

// WriteUint16 writes a big-endian 16-bit value.
func (w *Writer) WriteUint16(v uint16) { w.WriteBits(uint32(v), 16) }

// WriteUint32 writes a big-endian 32-bit value.
func (w *Writer) WriteUint32(v uint32) { w.WriteBits(v, 32) }

// Write copies p at the current position. The position must be byte aligned.
func (w *Writer) Write(p []byte) (int, error) {
	if w.bit&7 != 0 || w.bit/8+len(p) > len(w.buf) {
		w.overrun = true
		return 0, nil
	}

	n := copy(w.buf[w.bit/8:], p)
	w.bit += n * 8

	return n, nil
}

// Offset returns the current byte offset, rounded down.
func (w *Writer) Offset() int { return w.bit >> 3 }

// Overrun reports whether any write ran past the end of the buffer.
func (w *Writer) Overrun() bool { return w.overrun }
