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
	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/image"
)

// Params bundles every bitmap-build-usage tunable.
type Params struct {
	Scale             Scale
	MipmapCount       int
	MipmapFade        float64
	Sharpen           float64
	Blur              float64
	AlphaBias         float64
	BumpHeight        float64
	BumpPalettize     bool
	SpriteBudget      int
	SpriteBudgetCount int
	SpriteSpacing     int
	ForceSquareSheets bool
}

// ProcessedBitmap is one source bitmap after filtering, with its full mip
// chain (level 0 is the base, post-filter).
type ProcessedBitmap struct {
	Width, Height, Depth int
	Levels               [][]image.Pixel
	PaletteIndices       [][]uint8 // non-nil only when BumpPalettize is set
}

// Result is a fully processed plate: every bitmap's mip chain, plus
// sprite sheets and placements when the plate's bitmaps came from a
// BitmapSprites scan.
type Result struct {
	Bitmaps      []ProcessedBitmap
	SpriteSheets []*image.Buffer
	// SpritePlacements is indexed the same way as the input plate's
	// Sequence.Sprites, flattened in scan order.
	SpritePlacements []Placement
}

// Process applies filtering, mip generation, and usage-specific encoding
// to every bitmap in plate, and — for sprite plates — repacks sprites
// into shared sheets.
func Process(plate *colorplate.Plate, usage colorplate.Usage, params Params) (*Result, error) {
	result := &Result{Bitmaps: make([]ProcessedBitmap, len(plate.Bitmaps))}

	for i, bmp := range plate.Bitmaps {
		base := bmp.Pixels
		if bmp.Depth <= 1 {
			base = Sharpen(base, bmp.Width, bmp.Height, params.Sharpen)
			base = Blur(base, bmp.Width, bmp.Height, params.Blur)
		}

		levels := [][]image.Pixel{base}
		if bmp.Depth <= 1 {
			levels = append(levels, MipChain(base, bmp.Width, bmp.Height, params.MipmapCount, params.Scale)...)
		}

		for lvl, pixels := range levels {
			pixels = AlphaBias(pixels, params.AlphaBias)
			if usage == colorplate.UsageDetailMap && params.MipmapFade > 0 && len(levels) > 1 {
				amount := params.MipmapFade * float64(lvl) / float64(len(levels)-1)
				pixels = Fade(pixels, amount)
			}
			levels[lvl] = pixels
		}

		pb := ProcessedBitmap{Width: bmp.Width, Height: bmp.Height, Depth: bmp.Depth}

		if usage == colorplate.UsageHeightMap {
			pb.Levels = make([][]image.Pixel, len(levels))
			if params.BumpPalettize {
				pb.PaletteIndices = make([][]uint8, len(levels))
			}
			lw, lh := bmp.Width, bmp.Height
			for lvl, pixels := range levels {
				normals := NormalFromHeight(pixels, lw, lh, params.BumpHeight)
				if params.BumpPalettize {
					palettized, indices := Palettize(normals)
					pb.Levels[lvl] = palettized
					pb.PaletteIndices[lvl] = indices
				} else {
					pb.Levels[lvl] = normals
				}
				lw, lh = lw/2, lh/2
				if lw < 1 {
					lw = 1
				}
				if lh < 1 {
					lh = 1
				}
			}
		} else {
			pb.Levels = levels
		}

		result.Bitmaps[i] = pb
	}

	var sources []SpriteSource
	for _, seq := range plate.Sequences {
		for _, s := range seq.Sprites {
			bmp := plate.Bitmaps[s.BitmapIndex]
			w, h := s.Right-s.Left, s.Bottom-s.Top
			pixels := make([]image.Pixel, 0, w*h)
			for y := s.Top; y < s.Bottom; y++ {
				for x := s.Left; x < s.Right; x++ {
					pixels = append(pixels, bmp.Pixels[y*bmp.Width+x])
				}
			}
			sources = append(sources, SpriteSource{Width: w, Height: h, Pixels: pixels})
		}
	}
	if len(sources) == 0 {
		return result, nil
	}

	sheets, placements, err := PackSprites(sources, params.SpriteBudget, params.SpriteBudgetCount, params.SpriteSpacing, params.ForceSquareSheets)
	if err != nil {
		return nil, err
	}
	result.SpriteSheets = sheets
	result.SpritePlacements = placements
	return result, nil
}
