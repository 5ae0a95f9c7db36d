// SPDX-License-Identifier: EPL-2.0

package mpeg

const protectionPoly = 0x8005

func protectionUpdate(value byte, crc uint16) uint16 {
	v := uint16(value) << 8
	for range 8 {
		if (crc^v)&0x8000 != 0 {
			crc = crc<<1 ^ protectionPoly
		} else {
			crc <<= 1
		}
		v <<= 1
	}
	return crc
}

// ProtectionCRC computes the ISO 11172-3 error check word of a Layer III
// frame: header bytes 2 and 3 followed by the side information. frame must
// hold at least h.DataOffset() bytes.
func ProtectionCRC(frame []byte, h Header) uint16 {
	crc := uint16(0xFFFF)
	crc = protectionUpdate(frame[2], crc)
	crc = protectionUpdate(frame[3], crc)

	for i := HeaderSize + 2; i < h.DataOffset(); i++ {
		crc = protectionUpdate(frame[i], crc)
	}

	return crc
}

// PutProtectionCRC stores the error check word in bytes 4 and 5 of frame.
// It does nothing for unprotected headers.
func PutProtectionCRC(frame []byte, h Header) {
	if !h.Protected || len(frame) < h.DataOffset() {
		return
	}

	crc := ProtectionCRC(frame, h)
	frame[4] = byte(crc >> 8)
	frame[5] = byte(crc)
}
