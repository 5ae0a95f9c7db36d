package audio

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/mp3gapless/internal/audiotest"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

var errDecode = errors.New("decode failed")

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errDecode
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}

	registry.Register("wav", wavDecoder)
	registry.Register("MP3", mp3Decoder)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"Mp3", mp3Decoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Get(%q) returned wrong decoder", tt.format)
			}
		})
	}

	if got := registry.Formats(); !slices.Equal(got, []string{"mp3", "wav"}) {
		t.Errorf("Formats() = %v, want [mp3 wav]", got)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", &mockDecoder{name: "first"})
	registry.Register("wav", decoder2)

	if got, _ := registry.Get("wav"); got != decoder2 {
		t.Error("Registry.Get() did not return the overwritten decoder")
	}
}

func TestRegistry_Decode(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})
	registry.Register("bad", &failingDecoder{})

	src, err := registry.Decode("wav", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Decode(wav) error = %v", err)
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	if _, err := registry.Decode("ogg", bytes.NewReader(nil)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode(ogg) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := registry.Decode("bad", bytes.NewReader(nil)); !errors.Is(err, errDecode) {
		t.Errorf("Decode(bad) error = %v, want %v", err, errDecode)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() { registry.Register("format", decoder) })
		wg.Go(func() { _, _ = registry.Get("format") })
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}
