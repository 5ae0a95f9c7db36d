package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/mp3gapless/mpeg"
	"github.com/ik5/mp3gapless/vbrtag"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	samples []int16 // interleaved stereo PCM
	offset  int
	chunk   int // max bytes per Read, 0 for unlimited
	err     error
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	bytesToRead := min(len(buf), (len(m.samples)-m.offset)*2)
	if m.chunk > 0 {
		bytesToRead = min(bytesToRead, m.chunk)
	}
	samplesToRead := bytesToRead / 2

	for i := range samplesToRead {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(m.samples[m.offset+i]))
	}

	m.offset += samplesToRead

	return samplesToRead * 2, nil
}

func newPCM() *[2][]int16 {
	return &[2][]int16{make([]int16, MaxSamplesPerFrame), make([]int16, MaxSamplesPerFrame)}
}

func TestGoMP3Frames_DecodeFrame(t *testing.T) {
	t.Parallel()

	// 2.5 frames of 4 samples
	var samples []int16
	for i := range 10 {
		samples = append(samples, int16(i), int16(-i))
	}

	g := newGoMP3FramesFrom(&mockMP3Reader{samples: samples, chunk: 6}, 4)
	pcm := newPCM()

	for frame, want := range []int{4, 4, 2} {
		n, err := g.DecodeFrame(pcm)
		if err != nil {
			t.Fatalf("frame %d: DecodeFrame() error = %v", frame, err)
		}
		if n != want {
			t.Fatalf("frame %d: DecodeFrame() = %d, want %d", frame, n, want)
		}

		for i := range n {
			v := int16(frame*4 + i)
			if pcm[0][i] != v || pcm[1][i] != -v {
				t.Errorf("frame %d sample %d = (%d, %d), want (%d, %d)", frame, i, pcm[0][i], pcm[1][i], v, -v)
			}
		}
	}

	if _, err := g.DecodeFrame(pcm); err != io.EOF {
		t.Errorf("DecodeFrame() at end error = %v, want io.EOF", err)
	}
}

func TestGoMP3Frames_SkipFrame(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*6)
	samples[8], samples[9] = 7, -7

	g := newGoMP3FramesFrom(&mockMP3Reader{samples: samples}, 4)

	n, err := g.SkipFrame()
	if err != nil || n != 4 {
		t.Fatalf("SkipFrame() = %d, %v; want 4, nil", n, err)
	}

	pcm := newPCM()
	n, err = g.DecodeFrame(pcm)
	if err != nil || n != 2 {
		t.Fatalf("DecodeFrame() = %d, %v; want 2, nil", n, err)
	}
	if pcm[0][0] != 7 || pcm[1][0] != -7 {
		t.Errorf("first sample after skip = (%d, %d), want (7, -7)", pcm[0][0], pcm[1][0])
	}
}

func TestGoMP3Frames_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	g := newGoMP3FramesFrom(&mockMP3Reader{err: boom}, 1152)

	if _, err := g.DecodeFrame(newPCM()); !errors.Is(err, boom) {
		t.Errorf("DecodeFrame() error = %v, want %v", err, boom)
	}
	if _, err := g.SkipFrame(); !errors.Is(err, boom) {
		t.Errorf("SkipFrame() error = %v, want %v", err, boom)
	}
	if err := g.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("This is not MP3 data")))

	if !errors.Is(err, ErrNoAudioFrame) {
		t.Errorf("Decode() error = %v, want ErrNoAudioFrame", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte{}))

	if !errors.Is(err, ErrNoAudioFrame) {
		t.Errorf("Decode() error = %v, want ErrNoAudioFrame", err)
	}
}

func TestDecoder_UnknownBackend(t *testing.T) {
	t.Parallel()

	stream := silentFrames(t, 2)

	_, err := Decoder{Backend: Backend(42)}.Open(bytes.NewReader(stream))
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open() error = %v, want ErrUnknownBackend", err)
	}
}

func TestBackend_String(t *testing.T) {
	t.Parallel()

	tests := map[Backend]string{
		BackendGoMP3:   "go-mp3",
		BackendMiniMP3: "minimp3",
		Backend(7):     "Backend(7)",
	}

	for b, want := range tests {
		if got := b.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

// silentFrames returns n MPEG-1 128 kbps joint stereo frames with an all
// zero body. They decode to 1152 samples of silence each.
func silentFrames(t *testing.T, n int) []byte {
	t.Helper()

	var out []byte
	for range n {
		frame := make([]byte, stereoHeader.FrameLength())
		if err := stereoHeader.Encode(frame); err != nil {
			t.Fatal(err)
		}
		out = append(out, frame...)
	}
	return out
}

// taggedStream prepends a LAME tag frame describing n silent frames.
func taggedStream(t *testing.T, n int) []byte {
	t.Helper()

	tg, err := vbrtag.NewTagger(vbrtag.EncoderSettings{
		OutSampleRate:  44100,
		InSampleRate:   44100,
		Mode:           mpeg.JointStereo,
		VBR:            vbrtag.VBRMTRH,
		ATHType:        4,
		EncoderDelay:   576,
		EncoderPadding: 1152,
	})
	if err != nil {
		t.Fatal(err)
	}

	audio := silentFrames(t, n)
	for off := 0; off < len(audio); off += stereoHeader.FrameLength() {
		tg.SeekInfo().AddFrame(stereoHeader.Bitrate(), audio[off:off+stereoHeader.FrameLength()])
	}

	tagFrame := make([]byte, tg.FrameSize())
	if _, err := tg.AssembleFrame(tagFrame); err != nil {
		t.Fatal(err)
	}

	return append(tagFrame, audio...)
}

func TestDecoder_OpenTagged(t *testing.T) {
	t.Parallel()

	s, err := Decoder{}.Open(bytes.NewReader(taggedStream(t, 5)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if s.Tag() == nil || s.Tag().Magic != "Xing" {
		t.Fatalf("Tag() = %+v, want Xing tag", s.Tag())
	}
	if s.SkipStart() != 1105 || s.SkipEnd() != 623 {
		t.Errorf("SkipStart(), SkipEnd() = %d, %d; want 1105, 623", s.SkipStart(), s.SkipEnd())
	}
	if s.Length() != 5*1152-1105-623 || s.Estimated() {
		t.Errorf("Length() = %d (estimated %v), want %d", s.Length(), s.Estimated(), 5*1152-1105-623)
	}
	if s.SampleRate() != 44100 || s.Channels() != 2 {
		t.Errorf("format = %d Hz, %d ch; want 44100 Hz, 2 ch", s.SampleRate(), s.Channels())
	}

	got := readAll(t, s, 1000)
	if len(got) != s.Length()*2 {
		t.Errorf("read %d samples, want %d", len(got), s.Length()*2)
	}
	for i, v := range got {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestDecoder_DecodeUntagged(t *testing.T) {
	t.Parallel()

	// A plain io.Reader is read into memory first.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(silentFrames(t, 3))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	s := src.(*Stream)
	if s.Tag() != nil {
		t.Errorf("Tag() = %+v, want nil", s.Tag())
	}
	if !s.Estimated() || s.Length() != 3*1152-1105 {
		t.Errorf("Length() = %d (estimated %v), want %d estimated", s.Length(), s.Estimated(), 3*1152-1105)
	}

	if got := readAll(t, s, 4096); len(got) != (3*1152-1105)*2 {
		t.Errorf("read %d samples, want %d", len(got), (3*1152-1105)*2)
	}
}

// xingNoCount returns a tag frame whose Xing header announces no fields,
// followed by n zero-body frames of h.
func xingNoCount(t *testing.T, h mpeg.Header, n int) []byte {
	t.Helper()

	tagFrame := make([]byte, stereoHeader.FrameLength())
	if err := stereoHeader.Encode(tagFrame); err != nil {
		t.Fatal(err)
	}
	copy(tagFrame[mpeg.HeaderSize+mpeg.SideInfoSize(stereoHeader.Version, stereoHeader.Mode):], "Xing")

	out := tagFrame
	for range n {
		frame := make([]byte, h.FrameLength())
		if err := h.Encode(frame); err != nil {
			t.Fatal(err)
		}
		out = append(out, frame...)
	}
	return out
}

func TestDecoder_OpenTagWithoutFrameCount(t *testing.T) {
	t.Parallel()

	h320 := stereoHeader
	h320.BitrateIndex = 14

	s, err := Decoder{}.Open(bytes.NewReader(xingNoCount(t, h320, 10)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if s.Tag() == nil || s.Tag().Frames.Valid() {
		t.Fatalf("Tag() = %+v, want tag without frame count", s.Tag())
	}
	if got := s.Header().Bitrate(); got != 320 {
		t.Errorf("Header().Bitrate() = %d, want 320 from the first audio frame", got)
	}
	if want := 10*1152 - 1105; s.Length() != want || !s.Estimated() {
		t.Errorf("Length() = %d (estimated %v), want %d estimated", s.Length(), s.Estimated(), want)
	}

	if got := readAll(t, s, 4096); len(got) != (10*1152-1105)*2 {
		t.Errorf("read %d samples, want %d", len(got), (10*1152-1105)*2)
	}
}

func TestDecoder_OpenTagOnly(t *testing.T) {
	t.Parallel()

	s, err := Decoder{}.Open(bytes.NewReader(xingNoCount(t, stereoHeader, 0)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if s.Length() != 0 {
		t.Errorf("Length() = %d, want 0", s.Length())
	}
}
