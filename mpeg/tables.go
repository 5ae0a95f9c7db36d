// SPDX-License-Identifier: EPL-2.0

package mpeg

var bitrateV1 = [3][15]int{
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}, // Layer I
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384},    // Layer II
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320},     // Layer III
}

var bitrateV2 = [3][15]int{
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}, // Layer I
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},      // Layer II
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160},      // Layer III
}

var sampleRates = map[Version][3]int{
	Version1:   {44100, 48000, 32000},
	Version2:   {22050, 24000, 16000},
	Version2_5: {11025, 12000, 8000},
}

// BitrateKbps looks up a bitrate index. It returns 0 for free format and
// for invalid combinations.
func BitrateKbps(v Version, l Layer, index int) int {
	if index < 0 || index > 14 || l == LayerReserved || v == VersionReserved {
		return 0
	}

	row := 3 - int(l) // Layer I -> 0, Layer III -> 2
	if v == Version1 {
		return bitrateV1[row][index]
	}
	return bitrateV2[row][index]
}

// SampleRate looks up a sampling frequency index. It returns 0 for the
// reserved index.
func SampleRate(v Version, index int) int {
	rates, ok := sampleRates[v]
	if !ok || index < 0 || index > 2 {
		return 0
	}
	return rates[index]
}

// BitrateIndex returns the Layer III index for kbps in the given version,
// or -1 when the bitrate has no index.
func BitrateIndex(v Version, kbps int) int {
	for i := 1; i < 15; i++ {
		if BitrateKbps(v, LayerIII, i) == kbps {
			return i
		}
	}
	return -1
}

// VersionFor returns the MPEG version that carries the sample rate.
func VersionFor(sampleRate int) (Version, int, bool) {
	for _, v := range []Version{Version1, Version2, Version2_5} {
		for i, r := range sampleRates[v] {
			if r == sampleRate {
				return v, i, true
			}
		}
	}
	return VersionReserved, 0, false
}
