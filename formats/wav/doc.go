// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files on top of
// github.com/go-audio/wav.
//
// # Decoding WAV Files
//
// Decoder implements audio.Decoder:
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples are returned as float32, sample/32768, the same scale the mp3
// decoder uses.
//
// # Writing WAV Files
//
// Writer encodes interleaved float32 or int16 samples. Header sizes are
// fixed up on Close, so the destination must be an io.WriteSeeker:
//
//	out, _ := os.Create("output.wav")
//	w, _ := wav.NewWriter(out, 44100, 2)
//	w.WriteFloat32(samples)
//	w.Close()
//
// WriteSource drains any audio.Source into a file and WriteWAV16 writes a
// mono int16 buffer in one call.
//
// # Error Handling
//
// Decode wraps ErrNotWavFile, ErrOnlyPCM16bitSupported or ErrNoPCMData;
// test with errors.Is.
package wav
