// SPDX-License-Identifier: EPL-2.0

package bitio

// Reader reads big-endian bit fields from a byte slice.
type Reader struct {
	buf     []byte
	bit     int
	overrun bool
}

// NewReader returns a Reader positioned at byte offset off of buf.
func NewReader(buf []byte, off int) *Reader {
	return &Reader{buf: buf, bit: off * 8}
}

// ReadBits returns the next n bits (0-32). Reading past the end returns 0
// and sets the overrun flag.
func (r *Reader) ReadBits(n uint) uint32 {
	if r.bit+int(n) > len(r.buf)*8 {
		r.overrun = true
		return 0
	}

	var v uint32
	for range n {
		b := r.buf[r.bit>>3] >> (7 - uint(r.bit&7)) & 1
		v = v<<1 | uint32(b)
		r.bit++
	}

	return v
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() bool { return r.ReadBits(1) == 1 }

// ReadUint8 reads 8 bits.
func (r *Reader) ReadUint8() uint8 { return uint8(r.ReadBits(8)) }

// ReadUint16 reads a big-endian 16-bit value.
func (r *Reader) ReadUint16() uint16 { return uint16(r.ReadBits(16)) }

// ReadUint32 reads a big-endian 32-bit value.
func (r *Reader) ReadUint32() uint32 { return r.ReadBits(32) }

// ReadBytes copies the next len(p) bytes into p. The position must be byte
// aligned.
func (r *Reader) ReadBytes(p []byte) {
	if r.bit&7 != 0 || r.bit/8+len(p) > len(r.buf) {
		r.overrun = true
		return
	}

	r.bit += copy(p, r.buf[r.bit/8:]) * 8
}

// Skip advances n bytes.
func (r *Reader) Skip(n int) {
	if r.bit+n*8 > len(r.buf)*8 {
		r.overrun = true
		return
	}
	r.bit += n * 8
}

// Offset returns the current byte offset, rounded down.
func (r *Reader) Offset() int { return r.bit >> 3 }

// Overrun reports whether any read ran past the end of the buffer.
func (r *Reader) Overrun() bool { return r.overrun }
