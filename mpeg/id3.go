// SPDX-License-Identifier: EPL-2.0

package mpeg

import "bytes"

// ID3v2HeaderSize is the number of leading bytes ID3v2Size needs.
const ID3v2HeaderSize = 10

var id3v2Magic = []byte("ID3")

// ID3v2Size returns the number of bytes occupied by an ID3v2 tag that starts
// at header[0], including its 10-byte header and optional footer. It returns
// 0 when header does not start with an ID3v2 tag.
func ID3v2Size(header []byte) int {
	if len(header) < ID3v2HeaderSize || !bytes.HasPrefix(header, id3v2Magic) {
		return 0
	}

	size := ID3v2HeaderSize + synchsafe(header[6:10])
	if header[5]&0x10 != 0 {
		size += ID3v2HeaderSize // footer present
	}

	return size
}

func synchsafe(b []byte) int {
	return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
}
