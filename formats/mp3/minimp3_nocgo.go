// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package mp3

import "io"

type miniMP3Frames struct{ FrameDecoder }

func newMiniMP3Frames(io.Reader, int) (*miniMP3Frames, error) {
	return nil, ErrBackendUnavailable
}
