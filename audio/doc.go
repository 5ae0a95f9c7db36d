// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream primitives shared by the decoders.
//
// This package contains:
//   - Source interface for audio input
//   - Decoder interface and a format Registry
//   - MonoMixer for channel mixing
//   - Concat for gapless playback of consecutive tracks
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All decoders and processors implement this interface, allowing them to be
// chained together.
//
// # Gapless Playback
//
// Concat reads its sources back to back. With trimmed mp3 streams the join
// is sample accurate:
//
//	a, _ := mp3.Decoder{}.Decode(track1)
//	b, _ := mp3.Decoder{}.Decode(track2)
//	album, err := audio.NewConcat(a, b)
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//
// # Format Registry
//
// The registry maps case-insensitive format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	source, err := registry.Decode("wav", file)
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
