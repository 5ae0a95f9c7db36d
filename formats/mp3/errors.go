// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrClosed is returned by a Stream after Close.
	ErrClosed = errors.New("mp3: stream is closed")
	// ErrNoAudioFrame means no MPEG audio frame was found in the input.
	ErrNoAudioFrame = errors.New("mp3: no audio frame found")
	// ErrBackendUnavailable means the selected backend was not compiled in.
	ErrBackendUnavailable = errors.New("mp3: backend not available in this build")
	// ErrUnsupportedChannels means the backend reported a channel count
	// other than 1 or 2.
	ErrUnsupportedChannels = errors.New("mp3: unsupported channel count")
	ErrUnknownBackend      = errors.New("mp3: unknown backend")
)
