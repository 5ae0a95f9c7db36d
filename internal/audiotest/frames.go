// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// Frames is a scripted frame decoder. Each DecodeFrame or SkipFrame call
// consumes the next entry of Left (and Right for stereo). After the last
// frame it returns Err, or io.EOF when Err is nil.
type Frames struct {
	Left  [][]int16
	Right [][]int16
	Err   error

	pos    int
	closed int
}

// NewRampFrames returns count frames of size samples where the left channel
// holds the running sample index and the right channel its negation.
func NewRampFrames(count, size int) *Frames {
	f := &Frames{}
	for i := range count {
		l := make([]int16, size)
		r := make([]int16, size)
		for j := range size {
			l[j] = int16(i*size + j)
			r[j] = -l[j]
		}
		f.Left = append(f.Left, l)
		f.Right = append(f.Right, r)
	}
	return f
}

func (f *Frames) next() ([]int16, []int16, error) {
	if f.pos >= len(f.Left) {
		if f.Err != nil {
			return nil, nil, f.Err
		}
		return nil, nil, io.EOF
	}

	l := f.Left[f.pos]
	var r []int16
	if f.pos < len(f.Right) {
		r = f.Right[f.pos]
	}
	f.pos++

	return l, r, nil
}

func (f *Frames) DecodeFrame(pcm *[2][]int16) (int, error) {
	l, r, err := f.next()
	if err != nil {
		return 0, err
	}

	copy(pcm[0], l)
	copy(pcm[1], r)
	return len(l), nil
}

func (f *Frames) SkipFrame() (int, error) {
	l, _, err := f.next()
	if err != nil {
		return 0, err
	}
	return len(l), nil
}

func (f *Frames) Close() error {
	f.closed++
	return nil
}

// Closed returns the number of Close calls.
func (f *Frames) Closed() int { return f.closed }

// Pos returns the number of frames consumed.
func (f *Frames) Pos() int { return f.pos }
