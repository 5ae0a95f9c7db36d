// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat  = errors.New("audio: no decoder registered for format")
	ErrNoSources      = errors.New("audio: no sources to concatenate")
	ErrFormatMismatch = errors.New("audio: sources differ in sample rate or channels")
)
