// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("wav: not a WAV file")
	ErrOnlyPCM16bitSupported = errors.New("wav: only PCM 16-bit supported")
	ErrNoPCMData             = errors.New("wav: no data chunk")
	// ErrInvalidChannels is returned by NewWriter for a channel count
	// below 1.
	ErrInvalidChannels = errors.New("wav: invalid channel count")
	ErrWriterClosed    = errors.New("wav: writer is closed")
)
