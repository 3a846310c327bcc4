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

// Package bitmapproc generates mipmaps, applies sharpen/blur/fade/alpha
// bias, packs sprites into sheets, and derives bump/height maps from a
// scanned color plate.
package bitmapproc

import (
	goimage "image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/ashforge/strata/internal/image"
)

// Scale selects the mipmap downsample filter.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleNearest
	ScaleNearestAlpha
)

// downsample halves width and height (rounding down to at least 1), using
// the selected filter. "Nearest-alpha" chooses nearest for the alpha
// channel only and linear otherwise, preserving hard alpha edges.
func downsample(pixels []image.Pixel, w, h int, scale Scale) ([]image.Pixel, int, int) {
	nw, nh := w/2, h/2
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if scale == ScaleLinear {
		return linearDownsample(pixels, w, h, nw, nh), nw, nh
	}

	out := make([]image.Pixel, nw*nh)

	sample := func(sx, sy int) image.Pixel {
		sx = clampInt(sx, 0, w-1)
		sy = clampInt(sy, 0, h-1)
		return pixels[sy*w+sx]
	}

	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			sx, sy := x*2, y*2
			if scale == ScaleNearest {
				out[y*nw+x] = sample(sx, sy)
				continue
			}
			// ScaleNearestAlpha: nearest for alpha, linear for color.
			linear := averageFour(sample(sx, sy), sample(sx+1, sy), sample(sx, sy+1), sample(sx+1, sy+1))
			linear.A = sample(sx, sy).A
			out[y*nw+x] = linear
		}
	}
	return out, nw, nh
}

// linearDownsample uses golang.org/x/image/draw's bilinear scaler to
// halve an RGBA image, since it already implements a correctly weighted
// resampling filter.
func linearDownsample(pixels []image.Pixel, w, h, nw, nh int) []image.Pixel {
	src := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pixels[y*w+x]
			src.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	dst := goimage.NewRGBA(goimage.Rect(0, 0, nw, nh))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := make([]image.Pixel, nw*nh)
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			c := dst.RGBAAt(x, y)
			out[y*nw+x] = image.Pixel{B: c.B, G: c.G, R: c.R, A: c.A}
		}
	}
	return out
}

func averageFour(a, b, c, d image.Pixel) image.Pixel {
	avg := func(x1, x2, x3, x4 uint8) uint8 {
		return uint8((int(x1) + int(x2) + int(x3) + int(x4)) / 4)
	}
	return image.Pixel{
		B: avg(a.B, b.B, c.B, d.B),
		G: avg(a.G, b.G, c.G, d.G),
		R: avg(a.R, b.R, c.R, d.R),
		A: avg(a.A, b.A, c.A, d.A),
	}
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

// MipChain generates successive half-sized levels of base until 1x1 or
// maxCount is reached. A negative maxCount means unbounded: generate down
// to 1x1.
func MipChain(base []image.Pixel, w, h int, maxCount int, scale Scale) [][]image.Pixel {
	var levels [][]image.Pixel
	cur, cw, ch := base, w, h
	for (maxCount < 0 || len(levels) < maxCount) && (cw > 1 || ch > 1) {
		next, nw, nh := downsample(cur, cw, ch, scale)
		levels = append(levels, next)
		cur, cw, ch = next, nw, nh
	}
	return levels
}

// Fade blends a mip level toward neutral gray (0.5) by
// mipmap_fade * level/last_level, for detail-map usage.
func Fade(level []image.Pixel, amount float64) []image.Pixel {
	if amount <= 0 {
		return level
	}
	out := make([]image.Pixel, len(level))
	blend := func(c uint8) uint8 {
		v := float64(c)*(1-amount) + 127.5*amount
		return uint8(clampFloat(v, 0, 255))
	}
	for i, p := range level {
		out[i] = image.Pixel{B: blend(p.B), G: blend(p.G), R: blend(p.R), A: p.A}
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
