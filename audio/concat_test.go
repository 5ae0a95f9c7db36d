package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/mp3gapless/internal/audiotest"
)

// ramp returns a stereo source whose frame i holds (start+i, -(start+i))/1000.
func ramp(start, frames int) Source {
	return audiotest.NewSource(44100, 2, frames, func(sample, channel int) float32 {
		v := float32(start+sample) / 1000
		if channel == 1 {
			return -v
		}
		return v
	})
}

func TestConcat_JoinsWithoutGap(t *testing.T) {
	t.Parallel()

	for _, size := range []int{2, 6, 14, 1000} {
		c, err := NewConcat(ramp(0, 5), ramp(5, 3), ramp(8, 4))
		if err != nil {
			t.Fatalf("NewConcat() error = %v", err)
		}

		var got []float32
		buf := make([]float32, size)
		for range 1000 {
			n, err := c.ReadSamples(buf)
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
		}

		if len(got) != 12*2 {
			t.Fatalf("size %d: read %d samples, want 24", size, len(got))
		}
		for i := range 12 {
			want := float32(i) / 1000
			if got[2*i] != want || got[2*i+1] != -want {
				t.Errorf("size %d: frame %d = (%v, %v), want (%v, %v)", size, i, got[2*i], got[2*i+1], want, -want)
			}
		}
		if c.Current() != 3 {
			t.Errorf("Current() = %d, want 3", c.Current())
		}
	}
}

func TestNewConcat_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewConcat(); !errors.Is(err, ErrNoSources) {
		t.Errorf("NewConcat() error = %v, want ErrNoSources", err)
	}

	_, err := NewConcat(ramp(0, 1), audiotest.NewSilentSource(48000, 2, 1))
	if !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("NewConcat(mixed rates) error = %v, want ErrFormatMismatch", err)
	}

	_, err = NewConcat(ramp(0, 1), audiotest.NewSilentSource(44100, 1, 1))
	if !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("NewConcat(mixed channels) error = %v, want ErrFormatMismatch", err)
	}
}

func TestConcat_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := &audiotest.Source{Rate: 44100, Chans: 2, Err: boom}
	c, err := NewConcat(ramp(0, 1), failing)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 10)
	n, err := c.ReadSamples(buf)
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}
}

func TestConcat_ShortReads(t *testing.T) {
	t.Parallel()

	first := audiotest.NewConstantSource(44100, 1, 10, 0.5)
	first.MaxRead = 3
	c, err := NewConcat(first, audiotest.NewConstantSource(44100, 1, 4, -0.5))
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 100)
	n, err := c.ReadSamples(buf)
	if err != nil || n != 14 {
		t.Fatalf("ReadSamples() = %d, %v; want 14, nil", n, err)
	}
	if buf[9] != 0.5 || buf[10] != -0.5 {
		t.Errorf("join = (%v, %v), want (0.5, -0.5)", buf[9], buf[10])
	}

	if n, err := c.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestConcat_CloseClosesAll(t *testing.T) {
	t.Parallel()

	a := audiotest.NewSilentSource(8000, 1, 1)
	b := audiotest.NewSilentSource(8000, 1, 1)
	c, err := NewConcat(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if a.Closed() != 1 || b.Closed() != 1 {
		t.Errorf("Closed() = %d, %d; want 1, 1", a.Closed(), b.Closed())
	}
}
