// SPDX-License-Identifier: EPL-2.0

// Package mpeg models MPEG audio frame headers.
//
// It provides the header bit layout, the bitrate and sample-rate tables,
// frame length and Layer III side-information size calculations, a frame
// Scanner that skips ID3 tags and garbage, ID3v2 tag sizing and the
// ISO 11172-3 error-protection CRC.
//
// # Frame Headers
//
//	h, err := mpeg.ParseHeader(buf[:4])
//	if err != nil {
//	    // not a frame
//	}
//	fmt.Println(h.SampleRate(), h.Channels(), h.FrameLength())
//
// # Skipping ID3v2
//
// ID3v2Size only needs the first 10 bytes of a stream:
//
//	head := make([]byte, mpeg.ID3v2HeaderSize)
//	io.ReadFull(r, head)
//	firstFrame := mpeg.ID3v2Size(head)
package mpeg
