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

// Package colorplate interprets a decoded image as a structured "color
// plate": a rectangular pixel grid using marker colors to delimit
// sequences and bitmaps, with optional sprite and registration-point
// metadata.
package colorplate

import (
	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/image"
)

// BitmapType selects how a plate's sequences are interpreted.
type BitmapType int

const (
	Bitmap2D BitmapType = iota
	Bitmap3D
	BitmapCubemap
	BitmapInterface
	BitmapSprites
)

// Usage affects downstream processing (bump/detail handling lives in
// bitmapproc); Scan accepts it but does not consult it.
type Usage int

const (
	UsageDefault Usage = iota
	UsageHeightMap
	UsageDetailMap
)

// tolerance is the per-channel slack used to match marker colors against
// lossy source encodings.
const tolerance = 16

// Marker colors: a divider (solid cyan-like at pixel 0,0), a
// background (solid magenta-like in row 0 after the divider), and a
// dummy-space (solid blue-like). Sprite-type plates add a sprite
// background.
var (
	dividerColor          = image.Pixel{B: 255, G: 255, R: 0, A: 255}
	backgroundColor       = image.Pixel{B: 255, G: 0, R: 255, A: 255}
	dummySpaceColor       = image.Pixel{B: 255, G: 0, R: 0, A: 255}
	spriteBackgroundColor = image.Pixel{B: 0, G: 255, R: 0, A: 255}
)

func closeTo(p, marker image.Pixel) bool {
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(p.B, marker.B) <= tolerance &&
		diff(p.G, marker.G) <= tolerance &&
		diff(p.R, marker.R) <= tolerance &&
		diff(p.A, marker.A) <= tolerance
}

// Sprite is a sub-rectangle of a source plate bitmap plus a registration
// anchor, in the source plate's pixel coordinates.
type Sprite struct {
	BitmapIndex                  int
	Left, Top, Right, Bottom     int
	RegistrationX, RegistrationY int
}

// Bitmap is one scanned bitmap: format-neutral BGRA pixels plus dimension
// and registration metadata.
type Bitmap struct {
	Width, Height, Depth int
	Pixels               []image.Pixel // Width*Height*Depth, slice-major
	RegistrationX        int
	RegistrationY        int
	IsCubemap            bool
}

// Sequence is an ordered list of bitmap indices plus an optional sprite
// list.
type Sequence struct {
	BitmapIndices []int
	Sprites       []Sprite
}

// Plate is the scanned result: every bitmap discovered plus the sequences
// that group them.
type Plate struct {
	Bitmaps   []Bitmap
	Sequences []Sequence
}

// Scan interprets buf as a structured color plate per bitmapType and usage.
// filthySpriteBugFix selects the legacy (bounding-box-center) sprite
// registration-point calculation instead of the alpha-centroid one.
func Scan(buf *image.Buffer, bitmapType BitmapType, usage Usage, filthySpriteBugFix bool) (*Plate, error) {
	if buf.Width == 0 || buf.Height == 0 {
		return nil, &builderrors.EncodeError{Reason: "empty color plate"}
	}

	if !closeTo(buf.At(0, 0), dividerColor) {
		// Unstructured: the whole image is a single implicit sequence with
		// a single bitmap.
		bmp := Bitmap{Width: buf.Width, Height: buf.Height, Depth: 1, Pixels: append([]image.Pixel(nil), buf.Pixels...)}
		return &Plate{
			Bitmaps:   []Bitmap{bmp},
			Sequences: []Sequence{{BitmapIndices: []int{0}}},
		}, nil
	}

	strips := splitSequenceStrips(buf)

	plate := &Plate{}
	for _, strip := range strips {
		rects := splitBitmapRects(buf, strip)

		seq := Sequence{}
		startIdx := len(plate.Bitmaps)

		switch bitmapType {
		case Bitmap3D:
			var w, h int
			for i, r := range rects {
				rw, rh := r.right-r.left, r.bottom-r.top
				if i == 0 {
					w, h = rw, rh
				} else if rw != w || rh != h {
					return nil, &builderrors.EncodeError{Reason: "3D bitmap slices have inconsistent dimensions"}
				}
			}
			bmp := Bitmap{Width: w, Height: h, Depth: len(rects)}
			for _, r := range rects {
				bmp.Pixels = append(bmp.Pixels, extractTight(buf, r)...)
			}
			plate.Bitmaps = append(plate.Bitmaps, bmp)
			seq.BitmapIndices = []int{startIdx}

		case BitmapCubemap:
			if len(rects) != 6 {
				return nil, &builderrors.EncodeError{Reason: "cubemap sequence must contain exactly six bitmaps"}
			}
			var size int
			for i, r := range rects {
				w, h := r.right-r.left, r.bottom-r.top
				if w != h {
					return nil, &builderrors.EncodeError{Reason: "cubemap faces must be square"}
				}
				if i == 0 {
					size = w
				} else if w != size {
					return nil, &builderrors.EncodeError{Reason: "cubemap faces must share the same size"}
				}
			}
			// Face order is fixed: +x,-x,+y,-y,+z,-z.
			bmp := Bitmap{Width: size, Height: size, Depth: 6, IsCubemap: true}
			for _, r := range rects {
				bmp.Pixels = append(bmp.Pixels, extractTight(buf, r)...)
			}
			plate.Bitmaps = append(plate.Bitmaps, bmp)
			seq.BitmapIndices = []int{startIdx}

		case BitmapSprites:
			for _, r := range rects {
				idx := len(plate.Bitmaps)
				bmp, sprites := extractSpriteBitmap(buf, r, filthySpriteBugFix)
				plate.Bitmaps = append(plate.Bitmaps, bmp)
				seq.BitmapIndices = append(seq.BitmapIndices, idx)
				for _, s := range sprites {
					s.BitmapIndex = idx
					seq.Sprites = append(seq.Sprites, s)
				}
			}

		default: // 2D / interface
			for _, r := range rects {
				idx := len(plate.Bitmaps)
				plate.Bitmaps = append(plate.Bitmaps, Bitmap{
					Width:  r.right - r.left,
					Height: r.bottom - r.top,
					Depth:  1,
					Pixels: extractTight(buf, r),
				})
				seq.BitmapIndices = append(seq.BitmapIndices, idx)
			}
		}

		plate.Sequences = append(plate.Sequences, seq)
	}

	return plate, nil
}

type rect struct{ left, top, right, bottom int }

// splitSequenceStrips walks column 0: every row whose first pixel is a
// divider pixel separates sequences; returns the [top,bottom) row range of
// every non-empty sequence strip.
func splitSequenceStrips(buf *image.Buffer) []rect {
	var dividerRows []int
	for y := 0; y < buf.Height; y++ {
		if closeTo(buf.At(0, y), dividerColor) {
			dividerRows = append(dividerRows, y)
		}
	}
	dividerRows = append(dividerRows, buf.Height)

	var strips []rect
	for i := 0; i < len(dividerRows)-1; i++ {
		top := dividerRows[i] + 1
		bottom := dividerRows[i+1]
		if top < bottom {
			strips = append(strips, rect{left: 0, top: top, right: buf.Width, bottom: bottom})
		}
	}
	return strips
}

// splitBitmapRects walks the first row of a strip: each run of background
// pixels separates bitmaps; the bounding box of each non-background run is
// tight-cropped inward until a non-background pixel is met.
func splitBitmapRects(buf *image.Buffer, strip rect) []rect {
	row := strip.top
	var rects []rect
	x := strip.left
	for x < strip.right {
		if closeTo(buf.At(x, row), backgroundColor) || closeTo(buf.At(x, row), dummySpaceColor) {
			x++
			continue
		}
		start := x
		for x < strip.right && !closeTo(buf.At(x, row), backgroundColor) && !closeTo(buf.At(x, row), dummySpaceColor) {
			x++
		}
		rects = append(rects, tightCrop(buf, rect{left: start, top: strip.top, right: x, bottom: strip.bottom}))
	}
	return rects
}

// tightCrop scans rows/cols inward until a non-background pixel is met on
// every edge.
func tightCrop(buf *image.Buffer, r rect) rect {
	isBG := func(x, y int) bool {
		p := buf.At(x, y)
		return closeTo(p, backgroundColor) || closeTo(p, dummySpaceColor)
	}
	for r.top < r.bottom {
		rowEmpty := true
		for x := r.left; x < r.right; x++ {
			if !isBG(x, r.top) {
				rowEmpty = false
				break
			}
		}
		if !rowEmpty {
			break
		}
		r.top++
	}
	for r.bottom > r.top {
		rowEmpty := true
		for x := r.left; x < r.right; x++ {
			if !isBG(x, r.bottom-1) {
				rowEmpty = false
				break
			}
		}
		if !rowEmpty {
			break
		}
		r.bottom--
	}
	for r.left < r.right {
		colEmpty := true
		for y := r.top; y < r.bottom; y++ {
			if !isBG(r.left, y) {
				colEmpty = false
				break
			}
		}
		if !colEmpty {
			break
		}
		r.left++
	}
	for r.right > r.left {
		colEmpty := true
		for y := r.top; y < r.bottom; y++ {
			if !isBG(r.right-1, y) {
				colEmpty = false
				break
			}
		}
		if !colEmpty {
			break
		}
		r.right--
	}
	return r
}

func extractTight(buf *image.Buffer, r rect) []image.Pixel {
	w := r.right - r.left
	h := r.bottom - r.top
	out := make([]image.Pixel, 0, w*h)
	for y := r.top; y < r.bottom; y++ {
		for x := r.left; x < r.right; x++ {
			out = append(out, buf.At(x, y))
		}
	}
	return out
}

// extractSpriteBitmap finds sprite-background-delimited sprite rectangles
// within r and computes each sprite's registration point: the centroid of
// its alpha region in normal mode, or the center of its bounding box under
// the "filthy sprite bug fix".
func extractSpriteBitmap(buf *image.Buffer, r rect, filthySpriteBugFix bool) (Bitmap, []Sprite) {
	bmp := Bitmap{Width: r.right - r.left, Height: r.bottom - r.top, Depth: 1, Pixels: extractTight(buf, r)}

	isSpriteBG := func(x, y int) bool {
		return closeTo(buf.At(x, y), spriteBackgroundColor)
	}

	visited := make([]bool, bmp.Width*bmp.Height)
	var sprites []Sprite

	for y0 := 0; y0 < bmp.Height; y0++ {
		for x0 := 0; x0 < bmp.Width; x0++ {
			idx := y0*bmp.Width + x0
			if visited[idx] || isSpriteBG(r.left+x0, r.top+y0) {
				continue
			}
			// Flood-fill this connected non-background region's bbox.
			left, top, right, bottom := x0, y0, x0+1, y0+1
			stack := [][2]int{{x0, y0}}
			visited[idx] = true
			for len(stack) > 0 {
				cx, cy := stack[len(stack)-1][0], stack[len(stack)-1][1]
				stack = stack[:len(stack)-1]
				if cx < left {
					left = cx
				}
				if cx+1 > right {
					right = cx + 1
				}
				if cy < top {
					top = cy
				}
				if cy+1 > bottom {
					bottom = cy + 1
				}
				neighbors := [][2]int{{cx - 1, cy}, {cx + 1, cy}, {cx, cy - 1}, {cx, cy + 1}}
				for _, n := range neighbors {
					nx, ny := n[0], n[1]
					if nx < 0 || ny < 0 || nx >= bmp.Width || ny >= bmp.Height {
						continue
					}
					ni := ny*bmp.Width + nx
					if visited[ni] || isSpriteBG(r.left+nx, r.top+ny) {
						continue
					}
					visited[ni] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}

			regX, regY := left, top
			if filthySpriteBugFix {
				regX = (left + right) / 2
				regY = (top + bottom) / 2
			} else {
				// Centroid of the alpha region.
				var sumX, sumY, weight int
				for y := top; y < bottom; y++ {
					for x := left; x < right; x++ {
						a := int(bmp.Pixels[y*bmp.Width+x].A)
						sumX += x * a
						sumY += y * a
						weight += a
					}
				}
				if weight > 0 {
					regX = sumX / weight
					regY = sumY / weight
				} else {
					regX = (left + right) / 2
					regY = (top + bottom) / 2
				}
			}

			sprites = append(sprites, Sprite{
				Left: left, Top: top, Right: right, Bottom: bottom,
				RegistrationX: regX, RegistrationY: regY,
			})
		}
	}

	return bmp, sprites
}
