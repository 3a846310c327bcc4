/*
Copyright 2026 The Strata Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pixelencode

import "github.com/ashforge/strata/internal/image"

// AutoPick chooses the format for pixels: monochrome when every pixel is
// gray with alpha 0 or 255, then P8 when the caller already palettized
// (e.g. a bump map). Otherwise it goes by alpha shape: when the caller
// accepts lossy compression and both dimensions are at least 4, DXT1 for
// no or strictly binary alpha and DXT5 for graduated alpha (any value
// outside {0,255}); without DXT, 565 for no alpha, 1555 for binary alpha
// and 32-bit ARGB for graduated alpha. 4444 and DXT3 are never chosen.
func AutoPick(pixels []image.Pixel, w, h int, alreadyPalettized, allowLossy bool) Format {
	if isMonochrome(pixels) {
		return FormatMonochrome
	}
	if alreadyPalettized {
		return FormatP8
	}
	switch alphaShape(pixels) {
	case alphaNone:
		if allowLossy && w >= 4 && h >= 4 {
			return FormatDXT1
		}
		return Format16Bit565
	case alphaBinary:
		if allowLossy && w >= 4 && h >= 4 {
			return FormatDXT1
		}
		return Format16Bit1555
	default: // alphaGraduated
		if allowLossy && w >= 4 && h >= 4 {
			return FormatDXT5
		}
		// 4-4-4-4 would quantize alpha to 4 bits; when DXT5 compression
		// isn't available, keep full 8-bit-per-channel precision instead.
		return Format32Bit
	}
}

func isMonochrome(pixels []image.Pixel) bool {
	for _, p := range pixels {
		if p.B != p.G || p.G != p.R {
			return false
		}
		if p.A != 0 && p.A != 255 {
			return false
		}
	}
	return true
}

type alphaKind int

const (
	alphaNone alphaKind = iota
	alphaBinary
	alphaGraduated
)

// alphaShape classifies the alpha channel: all-255 (opaque), strictly
// binary (0 or 255 only), or graduated (anything else).
func alphaShape(pixels []image.Pixel) alphaKind {
	seenZero, seenFull, seenMid := false, false, false
	for _, p := range pixels {
		switch {
		case p.A == 255:
			seenFull = true
		case p.A == 0:
			seenZero = true
		default:
			seenMid = true
		}
		if seenMid {
			return alphaGraduated
		}
	}
	if seenZero {
		return alphaBinary
	}
	_ = seenFull
	return alphaNone
}
