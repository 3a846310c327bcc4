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

import (
	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/image"
)

// blockCodec encodes one 4x4 texel block to its compressed byte form.
type blockCodec func(block [16]image.Pixel) []byte

// encodeDXT tiles pixels into 4x4 blocks (edge blocks replicate the last
// row/column when w or h isn't a multiple of 4) and encodes each with
// codec, in row-major block order.
func encodeDXT(pixels []image.Pixel, w, h int, codec blockCodec) ([]byte, error) {
	if w < 4 || h < 4 {
		return nil, &builderrors.EncodeError{Asset: "bitmap", Reason: "DXT compression requires both dimensions >= 4"}
	}
	var out []byte
	for by := 0; by < h; by += 4 {
		for bx := 0; bx < w; bx += 4 {
			var block [16]image.Pixel
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					sx, sy := clampInt(bx+x, 0, w-1), clampInt(by+y, 0, h-1)
					block[y*4+x] = pixels[sy*w+sx]
				}
			}
			out = append(out, codec(block)...)
		}
	}
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// colorBlock finds the RGB bounding-box diagonal of block and returns the
// DXT1-style 8-byte color block: two 565 endpoints plus 2-bit-per-texel
// indices into the 4-color interpolated palette.
func colorBlock(block [16]image.Pixel, forceFourColor bool) []byte {
	var lo, hi image.Pixel
	lo = image.Pixel{B: 255, G: 255, R: 255}
	for _, p := range block {
		if p.R < lo.R {
			lo.R = p.R
		}
		if p.G < lo.G {
			lo.G = p.G
		}
		if p.B < lo.B {
			lo.B = p.B
		}
		if p.R > hi.R {
			hi.R = p.R
		}
		if p.G > hi.G {
			hi.G = p.G
		}
		if p.B > hi.B {
			hi.B = p.B
		}
	}

	c0, c1 := pack565(hi), pack565(lo)
	if forceFourColor && c0 <= c1 {
		if c1 == 0 {
			c0 = 1
		} else {
			c0 = c1 + 1
		}
	}
	n := 4
	if !forceFourColor {
		// c0 <= c1 selects 3-color mode, whose index 3 is transparent black.
		if c0 > c1 {
			c0, c1 = c1, c0
		}
		n = 3
	}

	pal := buildPalette(c0, c1)

	out := make([]byte, 8)
	out[0], out[1] = byte(c0), byte(c0>>8)
	out[2], out[3] = byte(c1), byte(c1>>8)

	var indices uint32
	for i, p := range block {
		idx := nearestPaletteIndex(p, pal[:n])
		if n == 3 && p.A < 128 {
			idx = 3
		}
		indices |= uint32(idx) << uint(i*2)
	}
	out[4] = byte(indices)
	out[5] = byte(indices >> 8)
	out[6] = byte(indices >> 16)
	out[7] = byte(indices >> 24)
	return out
}

func buildPalette(c0, c1 uint16) [4]image.Pixel {
	p0, p1 := unpack565(c0), unpack565(c1)
	var pal [4]image.Pixel
	pal[0], pal[1] = p0, p1
	lerp := func(a, b uint8, t float64) uint8 { return uint8(float64(a)*(1-t) + float64(b)*t) }
	if c0 > c1 {
		pal[2] = image.Pixel{R: lerp(p0.R, p1.R, 1.0/3), G: lerp(p0.G, p1.G, 1.0/3), B: lerp(p0.B, p1.B, 1.0/3)}
		pal[3] = image.Pixel{R: lerp(p0.R, p1.R, 2.0/3), G: lerp(p0.G, p1.G, 2.0/3), B: lerp(p0.B, p1.B, 2.0/3)}
	} else {
		pal[2] = image.Pixel{R: lerp(p0.R, p1.R, 0.5), G: lerp(p0.G, p1.G, 0.5), B: lerp(p0.B, p1.B, 0.5)}
		pal[3] = image.Pixel{} // transparent black in DXT1 3-color mode
	}
	return pal
}

func unpack565(c uint16) image.Pixel {
	r := uint8((c >> 11) & 0x1F)
	g := uint8((c >> 5) & 0x3F)
	b := uint8(c & 0x1F)
	return image.Pixel{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

func nearestPaletteIndex(p image.Pixel, pal []image.Pixel) int {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, c := range pal {
		dr, dg, db := int(p.R)-int(c.R), int(p.G)-int(c.G), int(p.B)-int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// dxt1 encodes an opaque-or-binary-alpha block: 8 bytes, 4-color mode when
// every texel is opaque.
func dxt1(block [16]image.Pixel) []byte {
	opaque := true
	for _, p := range block {
		if p.A < 255 {
			opaque = false
			break
		}
	}
	return colorBlock(block, opaque)
}

// dxt3 encodes explicit 4-bit-per-texel alpha (8 bytes) followed by a
// 4-color (alpha-ignoring) color block (8 bytes).
func dxt3(block [16]image.Pixel) []byte {
	out := make([]byte, 16)
	for i := 0; i < 16; i += 2 {
		lo := block[i].A >> 4
		hi := block[i+1].A >> 4
		out[i/2] = lo | hi<<4
	}
	copy(out[8:], colorBlock(block, true))
	return out
}

// dxt5 encodes interpolated 3-bit-per-texel alpha (8 bytes: two endpoints
// plus 48 bits of indices) followed by a 4-color color block (8 bytes).
func dxt5(block [16]image.Pixel) []byte {
	a0, a1 := block[0].A, block[0].A
	for _, p := range block {
		if p.A > a0 {
			a0 = p.A
		}
		if p.A < a1 {
			a1 = p.A
		}
	}

	palette := buildAlphaPalette(a0, a1)
	var indices uint64
	for i, p := range block {
		idx := nearestAlphaIndex(p.A, palette)
		indices |= uint64(idx) << uint(i*3)
	}

	out := make([]byte, 16)
	out[0], out[1] = a0, a1
	for i := 0; i < 6; i++ {
		out[2+i] = byte(indices >> uint(i*8))
	}
	copy(out[8:], colorBlock(block, true))
	return out
}

func buildAlphaPalette(a0, a1 uint8) [8]uint8 {
	var pal [8]uint8
	pal[0], pal[1] = a0, a1
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			pal[1+i] = uint8((int(a0)*(7-i) + int(a1)*i) / 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			pal[1+i] = uint8((int(a0)*(5-i) + int(a1)*i) / 5)
		}
		pal[6] = 0
		pal[7] = 255
	}
	return pal
}

func nearestAlphaIndex(a uint8, pal [8]uint8) int {
	best, bestDist := 0, 1<<30
	for i, c := range pal {
		d := int(a) - int(c)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
