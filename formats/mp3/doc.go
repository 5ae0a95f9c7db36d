// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides gapless MPEG audio decoding.
//
// Frames are decoded by a pluggable backend: github.com/hajimehoshi/go-mp3
// (the default, pure Go) or github.com/tosone/minimp3 (cgo). On top of the
// backend a Stream reads the Xing/LAME tag of the first frame and removes
// the encoder delay and padding, so consecutive tracks play back without
// gaps.
//
// # Decoding MP3 Files
//
// Decoder implements audio.Decoder:
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Open returns the concrete *Stream, which also exposes the tag, the trim
// amounts and frame-level access:
//
//	s, err := mp3.Decoder{}.Open(file)
//	fmt.Println(s.SkipStart(), s.SkipEnd(), s.Length())
//
// # Gapless Trimming
//
// An encoder prepends EncDelay samples and appends EncPadding samples to
// fill whole frames. The decoder itself adds 529 samples of latency, so
// ReadSamples drops the first EncDelay+529 and the last EncPadding-529
// samples per channel. Without a LAME tag the delay falls back to
// Decoder.DefaultEncoderDelay (576) and nothing is trimmed from the end.
//
// # Frame Access
//
// Stream.Decode converts one frame to interleaved float32, writing from a
// signed offset into the destination: samples that land before the start
// of dst are dropped. Stream.Seek skips whole frames without converting
// them. These untrimmed calls and ReadSamples must not be mixed on the same
// Stream.
//
// # Output Format
//
// Stream output:
//   - Sample format: float32, sample/32768
//   - Channels: as coded in the stream (1 or 2)
//   - Sample rate: from the first frame header
//
// The go-mp3 backend always produces stereo, so mono streams are reduced
// back to their left channel.
package mp3
