// SPDX-License-Identifier: EPL-2.0

// Package mp3gapless decodes MPEG audio without the silence encoders add
// at the start and end of every track.
//
// An MP3 encoder delays the signal by a few hundred samples and pads the
// last frame to a whole frame. The LAME encoder records both amounts in
// the Xing/Info tag it writes in place of the first audio frame. The
// decoder in formats/mp3 reads that tag and trims exactly those samples,
// so an album split into tracks plays back without clicks or gaps.
//
// # Packages
//
//   - mpeg: frame header parsing, frame scanning and protection CRC
//   - vbrtag: Xing/LAME tag writing (Tagger), parsing (Parse) and the
//     seek table (SeekInfo)
//   - formats/mp3: the gapless decoder (Decoder, Stream)
//   - formats/wav: 16-bit PCM WAV reading and writing
//   - audio: the Source interface, MonoMixer and Concat
//
// # Quick Start
//
//	reg := mp3gapless.NewRegistry(mp3.Decoder{})
//	src, err := mp3gapless.OpenFile(reg, "track.mp3")
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Inspect reports the tag, trim amounts and ID3 metadata of a file without
// decoding it:
//
//	f, _ := os.Open("track.mp3")
//	info, err := mp3gapless.Inspect(f, mp3.Decoder{})
//	fmt.Println(info.SkipStart, info.SkipEnd, info.Duration())
//
// # Command Line
//
// cmd/mp3gapless wraps these as the info, decode and retag commands.
package mp3gapless
