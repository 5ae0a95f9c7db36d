// SPDX-License-Identifier: EPL-2.0

// Package vbrtag reads and writes the Xing/Info tag and its LAME extension,
// the metadata frame at the start of an MPEG audio stream.
//
// The tag carries the frame and byte totals of the stream, a 100-entry
// seek table (TOC), the encoder settings and the encoder delay and padding
// needed for gapless playback.
//
// # Reading
//
//	tag, ok := vbrtag.Parse(firstFrame)
//	if ok {
//	    delay := tag.EncDelay.Or(576)
//	}
//
// Parse never fails: a frame without a tag is reported with ok == false.
// Fields that the tag omits, or that hold implausible values, are absent
// Optionals rather than sentinel integers.
//
// # Writing
//
// A Tagger reserves the hosting frame before encoding starts and patches
// it once the stream is complete:
//
//	t, err := vbrtag.NewTagger(settings)
//	out.Write(t.DummyFrame())
//	for each encoded frame {
//	    t.SeekInfo().AddFrame(kbps, frame)
//	    out.Write(frame)
//	}
//	err = t.PatchStream(out)
//
// # Seek Table
//
// SeekInfo keeps a fixed number of cumulative bitrate buckets. When the
// table fills up, every second bucket is dropped and the number of frames
// per bucket doubles, so memory use does not grow with the stream length.
package vbrtag
