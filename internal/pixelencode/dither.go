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

// bayer4 is a 4x4 ordered-dither threshold matrix, normalized to [0,1).
var bayer4 = [4][4]float64{
	{0 / 16.0, 8 / 16.0, 2 / 16.0, 10 / 16.0},
	{12 / 16.0, 4 / 16.0, 14 / 16.0, 6 / 16.0},
	{3 / 16.0, 11 / 16.0, 1 / 16.0, 9 / 16.0},
	{15 / 16.0, 7 / 16.0, 13 / 16.0, 5 / 16.0},
}

// applyDither adds an ordered-dither bias scaled to one output step of
// bitsPerChannel before a precision-reducing channel conversion, touching
// only the channels named by mode.
func applyDither(pixels []image.Pixel, w, h int, mode Dither, bitsPerChannel int) []image.Pixel {
	if mode == DitherNone {
		return pixels
	}
	step := 256.0 / float64(uint(1)<<uint(bitsPerChannel))
	out := make([]image.Pixel, len(pixels))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bias := (bayer4[y%4][x%4] - 0.5) * step
			p := pixels[y*w+x]
			if mode == DitherRGB || mode == DitherARGB {
				p.B = ditherChannel(p.B, bias)
				p.G = ditherChannel(p.G, bias)
				p.R = ditherChannel(p.R, bias)
			}
			if mode == DitherAlpha || mode == DitherARGB {
				p.A = ditherChannel(p.A, bias)
			}
			out[y*w+x] = p
		}
	}
	return out
}

func ditherChannel(c uint8, bias float64) uint8 {
	v := float64(c) + bias
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
