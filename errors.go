// SPDX-License-Identifier: EPL-2.0

package mp3gapless

import "errors"

var (
	// ErrNoAudioFrames means the input holds no MPEG audio frame to tag.
	ErrNoAudioFrames = errors.New("mp3gapless: no audio frames")
	// ErrTagDoesNotFit means the stream's bitrate and sample rate give a
	// frame too small or too large for the tag.
	ErrTagDoesNotFit = errors.New("mp3gapless: tag does not fit a frame of this stream")
)
