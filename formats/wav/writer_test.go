package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/mp3gapless/internal/audiotest"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	samples := []int16{100, -100, 200, -200}
	if err := WriteWAV16(f, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := f.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("file size = %d, want %d", len(data), 44+len(samples)*2)
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(data[4:]), uint32(len(data) - 8)},
		{"format", uint32(binary.LittleEndian.Uint16(data[20:])), 1},
		{"channels", uint32(binary.LittleEndian.Uint16(data[22:])), 1},
		{"sample rate", binary.LittleEndian.Uint32(data[24:]), 8000},
		{"byte rate", binary.LittleEndian.Uint32(data[28:]), 16000},
		{"block align", uint32(binary.LittleEndian.Uint16(data[32:])), 2},
		{"bits", uint32(binary.LittleEndian.Uint16(data[34:])), 16},
		{"data size", binary.LittleEndian.Uint32(data[40:]), 8},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[36:40], []byte("data")) {
		t.Errorf("chunk ids = %q, %q", data[:4], data[36:40])
	}
	if got := int16(binary.LittleEndian.Uint16(data[46:])); got != -100 {
		t.Errorf("second sample = %d, want -100", got)
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	if err := WriteWAV16(f, 8000, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	if len(f.Bytes()) != 44 {
		t.Errorf("file size = %d, want 44", len(f.Bytes()))
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []float32{0, 0.5, -0.5, 0.25, -1, 32767.0 / 32768}

	f := audiotest.NewFile(nil)
	w, err := NewWriter(f, 44100, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFloat32(in[:2]); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFloat32(in[2:]); err != nil {
		t.Fatal(err)
	}
	if w.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", w.Frames())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(f.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	out := make([]float32, 16)
	n, err := src.ReadSamples(out)
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if n != len(in) {
		t.Fatalf("read %d samples, want %d", n, len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestWriter_Metadata(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	w, err := NewWriter(f, 8000, 1)
	if err != nil {
		t.Fatal(err)
	}
	w.SetMetadata(&gowav.Metadata{Title: "Gapless", Software: "mp3gapless"})
	if err := w.WriteInt16([]int16{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(f.Bytes(), []byte("Gapless")) {
		t.Error("INFO chunk missing title")
	}
}

func TestWriter_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewWriter(audiotest.NewFile(nil), 8000, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("NewWriter(0 channels) error = %v, want ErrInvalidChannels", err)
	}

	w, err := NewWriter(audiotest.NewFile(nil), 8000, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.WriteInt16([]int16{1}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("WriteInt16() after Close error = %v, want ErrWriterClosed", err)
	}
}

func TestWriteSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(22050, 2, 5000, 440)

	f := audiotest.NewFile(nil)
	frames, err := WriteSource(f, src)
	if err != nil {
		t.Fatalf("WriteSource() error = %v", err)
	}
	if frames != 5000 {
		t.Errorf("WriteSource() = %d frames, want 5000", frames)
	}

	if got := binary.LittleEndian.Uint32(f.Bytes()[40:]); got != 5000*2*2 {
		t.Errorf("data size = %d, want %d", got, 5000*2*2)
	}
}
