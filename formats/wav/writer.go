// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/mp3gapless/audio"
	"github.com/ik5/mp3gapless/utils"
)

// Writer encodes interleaved samples as a 16-bit PCM WAV file. The header
// sizes are patched on Close, so the destination must be seekable.
type Writer struct {
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	frames int
	closed bool
}

// NewWriter starts a WAV file on w.
func NewWriter(w io.WriteSeeker, sampleRate, channels int) (*Writer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &Writer{
		enc: gowav.NewEncoder(w, sampleRate, 16, channels, wavFormatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// SetMetadata attaches an INFO list chunk, written on Close.
func (w *Writer) SetMetadata(m *gowav.Metadata) { w.enc.Metadata = m }

// Frames returns the number of sample frames written so far.
func (w *Writer) Frames() int { return w.frames }

// WriteInt16 appends interleaved 16-bit samples. len(samples) should be a
// multiple of the channel count; a trailing partial frame is dropped.
func (w *Writer) WriteInt16(samples []int16) error {
	if w.closed {
		return ErrWriterClosed
	}

	w.grow(len(samples))
	for i, v := range samples {
		w.buf.Data[i] = int(v)
	}

	return w.flush()
}

// WriteFloat32 appends interleaved float32 samples in [-1, 1).
func (w *Writer) WriteFloat32(samples []float32) error {
	if w.closed {
		return ErrWriterClosed
	}

	w.grow(len(samples))
	for i, v := range samples {
		w.buf.Data[i] = int(utils.Float32ToInt16(v))
	}

	return w.flush()
}

func (w *Writer) grow(n int) {
	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]
}

func (w *Writer) flush() error {
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}
	w.frames += w.buf.NumFrames()

	return nil
}

// Close patches the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// The encoder only emits a header once data has been written.
	if w.frames == 0 {
		w.buf.Data = w.buf.Data[:0]
		if err := w.enc.Write(w.buf); err != nil {
			return fmt.Errorf("wav: write header: %w", err)
		}
	}

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: close: %w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	ww, err := NewWriter(w, sampleRate, 1)
	if err != nil {
		return err
	}

	if err := ww.WriteInt16(samples); err != nil {
		return err
	}

	return ww.Close()
}

// WriteSource drains src into a WAV file and returns the number of sample
// frames written.
func WriteSource(w io.WriteSeeker, src audio.Source) (int, error) {
	ww, err := NewWriter(w, src.SampleRate(), src.Channels())
	if err != nil {
		return 0, err
	}

	size := max(src.BufSize(), 4096)
	size -= size % src.Channels()
	buf := make([]float32, size)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if werr := ww.WriteFloat32(buf[:n]); werr != nil {
				return ww.Frames(), werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ww.Frames(), fmt.Errorf("wav: read source: %w", err)
		}
	}

	return ww.Frames(), ww.Close()
}
