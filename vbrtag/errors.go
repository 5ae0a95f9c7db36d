// SPDX-License-Identifier: EPL-2.0

package vbrtag

import "errors"

var (
	// ErrBufferTooSmall is returned with the required size when a
	// destination cannot hold the tag frame. Nothing is written.
	ErrBufferTooSmall = errors.New("vbrtag: buffer too small for tag frame")
	// ErrNoFrames means no frame was sampled, so there is nothing to tag.
	ErrNoFrames = errors.New("vbrtag: no frames sampled")
	// ErrEmptyStream means the stream to patch has zero length.
	ErrEmptyStream = errors.New("vbrtag: stream is empty")

	ErrUnsupportedSampleRate = errors.New("vbrtag: unsupported output sample rate")
	ErrUnsupportedBitrate    = errors.New("vbrtag: bitrate has no index in this MPEG version")
)
