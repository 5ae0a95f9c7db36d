package vbrtag

import (
	"errors"
	"testing"

	"github.com/ik5/mp3gapless/mpeg"
)

func TestWriteFrameHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    EncoderSettings
		want [4]byte
	}{
		{
			"mpeg1 vbr joint",
			EncoderSettings{OutSampleRate: 44100, Mode: mpeg.JointStereo, VBR: VBRMTRH},
			[4]byte{0xFF, 0xFB, 0x90, 0x40},
		},
		{
			"mpeg1 vbr protected original",
			EncoderSettings{OutSampleRate: 44100, Mode: mpeg.JointStereo, VBR: VBRMTRH, ErrorProtection: true, Original: true},
			[4]byte{0xFF, 0xFA, 0x90, 0x44},
		},
		{
			"mpeg1 cbr 192 private",
			EncoderSettings{OutSampleRate: 48000, Mode: mpeg.Stereo, Bitrate: 192, Private: true},
			[4]byte{0xFF, 0xFB, 0xB5, 0x00},
		},
		{
			"mpeg2 vbr mono",
			EncoderSettings{OutSampleRate: 22050, Mode: mpeg.Mono, VBR: VBRABR},
			[4]byte{0xFF, 0xF3, 0x80, 0xC0},
		},
		{
			"mpeg2.5 vbr",
			EncoderSettings{OutSampleRate: 8000, Mode: mpeg.Mono, VBR: VBRMTRH},
			[4]byte{0xFF, 0xE3, 0x48, 0xC0},
		},
		{
			"free format",
			EncoderSettings{OutSampleRate: 44100, Mode: mpeg.Stereo, Bitrate: 640, FreeFormat: true},
			[4]byte{0xFF, 0xFB, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got [4]byte
			if err := WriteFrameHeader(got[:], tt.s); err != nil {
				t.Fatalf("WriteFrameHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("WriteFrameHeader() = % X, want % X", got, tt.want)
			}

			if _, err := mpeg.ParseHeader(got[:]); err != nil {
				t.Errorf("hosting header does not parse: %v", err)
			}
		})
	}
}

func TestWriteFrameHeader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    EncoderSettings
		want error
	}{
		{"sample rate", EncoderSettings{OutSampleRate: 96000, VBR: VBRMTRH}, ErrUnsupportedSampleRate},
		{"bitrate", EncoderSettings{OutSampleRate: 44100, Bitrate: 33}, ErrUnsupportedBitrate},
		{"mpeg2 bitrate", EncoderSettings{OutSampleRate: 22050, Bitrate: 320}, ErrUnsupportedBitrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := WriteFrameHeader(make([]byte, 4), tt.s)
			if !errors.Is(err, tt.want) {
				t.Errorf("WriteFrameHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteFrameHeader_ShortBuffer(t *testing.T) {
	t.Parallel()

	err := WriteFrameHeader(make([]byte, 3), EncoderSettings{OutSampleRate: 44100, VBR: VBRMTRH})
	if !errors.Is(err, mpeg.ErrShortHeader) {
		t.Errorf("WriteFrameHeader() error = %v, want mpeg.ErrShortHeader", err)
	}
}
