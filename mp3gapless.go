// SPDX-License-Identifier: EPL-2.0

package mp3gapless

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/ik5/mp3gapless/audio"
	"github.com/ik5/mp3gapless/formats/mp3"
	"github.com/ik5/mp3gapless/formats/wav"
	"github.com/ik5/mp3gapless/mpeg"
	"github.com/ik5/mp3gapless/vbrtag"
)

// NewRegistry returns a registry holding every decoder of this module,
// keyed by file extension. dec configures the mp3 decoder.
func NewRegistry(dec mp3.Decoder) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("mp3", dec)
	reg.Register("mp2", dec)
	reg.Register("wav", wav.Decoder{})

	return reg
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (s fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// OpenFile decodes path with the decoder registered for its extension.
// Closing the returned source also closes the file.
func OpenFile(reg *audio.Registry, path string) (audio.Source, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	src, err := reg.Decode(format, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return fileSource{Source: src, f: f}, nil
}

// Info describes an MPEG audio stream.
type Info struct {
	Header    mpeg.Header
	Tag       *vbrtag.TagData // nil without a Xing/Info frame
	SkipStart int
	SkipEnd   int
	Length    int // samples per channel after trimming
	Estimated bool
	// Metadata holds the ID3 tags, nil when there are none.
	Metadata tag.Metadata
	// AudioSum is a SHA-1 of the audio data, invariant to ID3 tags.
	AudioSum string
}

// Duration returns the trimmed play time.
func (i *Info) Duration() time.Duration {
	rate := i.Header.SampleRate()
	if rate == 0 {
		return 0
	}
	return time.Duration(i.Length) * time.Second / time.Duration(rate)
}

// Inspect opens rs with dec and collects the stream properties without
// decoding any audio.
func Inspect(rs io.ReadSeeker, dec mp3.Decoder) (*Info, error) {
	md, err := ReadMetadata(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	sum, err := tag.Sum(rs)
	if err != nil {
		return nil, fmt.Errorf("audio checksum: %w", err)
	}

	s, err := dec.Open(rs)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return &Info{
		Header:    s.Header(),
		Tag:       s.Tag(),
		SkipStart: s.SkipStart(),
		SkipEnd:   s.SkipEnd(),
		Length:    s.Length(),
		Estimated: s.Estimated(),
		Metadata:  md,
		AudioSum:  sum,
	}, nil
}

// ReadMetadata reads the ID3 tags of rs. It returns nil, nil when the
// stream carries none.
func ReadMetadata(rs io.ReadSeeker) (tag.Metadata, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	md, err := tag.ReadFrom(rs)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	return md, nil
}
