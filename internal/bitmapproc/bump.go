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

package bitmapproc

import (
	"math"

	"github.com/ashforge/strata/internal/image"
)

// NormalFromHeight interprets grayscale pixels as a height field and
// computes a tangent-space normal map via central-difference gradients,
// scaled by bumpHeight.
func NormalFromHeight(pixels []image.Pixel, w, h int, bumpHeight float64) []image.Pixel {
	height := func(x, y int) float64 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		p := pixels[y*w+x]
		// Grayscale from the pre-bias BGR average.
		return (float64(p.B) + float64(p.G) + float64(p.R)) / (3 * 255)
	}

	out := make([]image.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (height(x+1, y) - height(x-1, y)) * bumpHeight
			dy := (height(x, y+1) - height(x, y-1)) * bumpHeight

			nx, ny, nz := -dx, -dy, 1.0
			length := math.Sqrt(nx*nx + ny*ny + nz*nz)
			nx, ny, nz = nx/length, ny/length, nz/length

			out[y*w+x] = image.Pixel{
				B: toUnsignedByte(nz),
				G: toUnsignedByte(ny),
				R: toUnsignedByte(nx),
				A: 255,
			}
		}
	}
	return out
}

func toUnsignedByte(component float64) uint8 {
	return uint8(clampFloat((component+1)/2*255, 0, 255))
}

// BumpPaletteSize is the engine's P8 bump table size.
const BumpPaletteSize = 256

// bumpPalette is a synthetic 256-entry palette spanning the normal-map
// hemisphere, ordered so nearby indices are perceptually close (a cheap
// substitute for the real P8 bump table, which is engine data this
// toolchain doesn't ship).
var bumpPalette = buildBumpPalette()

func buildBumpPalette() []image.Pixel {
	p := make([]image.Pixel, BumpPaletteSize)
	for i := range p {
		t := float64(i) / float64(BumpPaletteSize-1)
		p[i] = image.Pixel{
			B: toUnsignedByte(math.Sqrt(math.Max(0, 1-2*t*2*t+2*t))), // z-ish component, monotonic
			G: uint8(t * 255),
			R: uint8((1 - t) * 255),
			A: 255,
		}
	}
	return p
}

// Palettize maps every pixel to its nearest entry in the bump palette,
// returning both the palettized pixels and the per-pixel palette index.
func Palettize(pixels []image.Pixel) ([]image.Pixel, []uint8) {
	out := make([]image.Pixel, len(pixels))
	indices := make([]uint8, len(pixels))
	for i, p := range pixels {
		best, bestDist := 0, math.MaxFloat64
		for idx, c := range bumpPalette {
			d := channelDist(p, c)
			if d < bestDist {
				bestDist = d
				best = idx
			}
		}
		out[i] = bumpPalette[best]
		indices[i] = uint8(best)
	}
	return out, indices
}

func channelDist(a, b image.Pixel) float64 {
	db := float64(a.B) - float64(b.B)
	dg := float64(a.G) - float64(b.G)
	dr := float64(a.R) - float64(b.R)
	return db*db + dg*dg + dr*dr
}
