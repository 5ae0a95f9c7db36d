// SPDX-License-Identifier: EPL-2.0

package mpeg

import "errors"

var (
	ErrShortHeader     = errors.New("mpeg: header shorter than 4 bytes")
	ErrNoSync          = errors.New("mpeg: missing frame sync")
	ErrReservedVersion = errors.New("mpeg: reserved version")
	ErrReservedLayer   = errors.New("mpeg: reserved layer")
	ErrBadBitrate      = errors.New("mpeg: invalid bitrate")
	ErrBadSampleRate   = errors.New("mpeg: invalid sample rate")
)
