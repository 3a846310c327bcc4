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

package bitmaptag

import (
	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/image"
	"github.com/ashforge/strata/internal/pixelencode"
	"github.com/ashforge/strata/internal/tagschema"
)

// encodeBitmap encodes one physical image (possibly several depth slices,
// for a 3D texture or cubemap face set) to enc's shared blob and reports
// where it landed. FormatAuto is resolved once from the first slice and
// held fixed across the rest so a multi-face bitmap never mixes formats.
func encodeBitmap(enc *pixelencode.Encoder, pixels []image.Pixel, w, h, depth int, format pixelencode.Format, paletteIndices []uint8, dither pixelencode.Dither, allowLossy bool) (offset, size int, resolved pixelencode.Format, err error) {
	sliceLen := w * h
	resolved = format
	if resolved == pixelencode.FormatAuto {
		resolved = pixelencode.AutoPick(pixels[:sliceLen], w, h, paletteIndices != nil, allowLossy)
	}
	for d := 0; d < depth; d++ {
		slice := pixels[d*sliceLen : (d+1)*sliceLen]
		var idx []uint8
		if paletteIndices != nil {
			idx = paletteIndices[d*sliceLen : (d+1)*sliceLen]
		}
		entry, err := enc.Encode(slice, w, h, resolved, idx, dither, allowLossy)
		if err != nil {
			return 0, 0, resolved, err
		}
		if d == 0 {
			offset = entry.Offset
		}
		size += entry.ByteSize
	}
	return offset, size, resolved, nil
}

// encodeMipChain encodes every level of pb back-to-back, so a bitmap
// entry's pixel_offset/pixel_size addresses the whole contiguous chain
// and mipmap_count records how many levels follow the base.
func encodeMipChain(enc *pixelencode.Encoder, pb bitmapproc.ProcessedBitmap, format pixelencode.Format, dither pixelencode.Dither, allowLossy bool) (offset, size int, resolved pixelencode.Format, err error) {
	w, h := pb.Width, pb.Height
	for lvl, pixels := range pb.Levels {
		var idx []uint8
		if pb.PaletteIndices != nil {
			idx = pb.PaletteIndices[lvl]
		}
		lvlOffset, lvlSize, lvlResolved, err := encodeBitmap(enc, pixels, w, h, pb.Depth, format, idx, dither, allowLossy)
		if err != nil {
			return 0, 0, resolved, err
		}
		if lvl == 0 {
			offset = lvlOffset
			resolved = lvlResolved
			format = lvlResolved // lock the format for the rest of this chain
		}
		size += lvlSize
		if pb.Depth <= 1 {
			w, h = w/2, h/2
			if w < 1 {
				w = 1
			}
			if h < 1 {
				h = 1
			}
		}
	}
	return offset, size, resolved, nil
}

func newBitmapEntry(width, height, depth int, btype colorplate.BitmapType, format pixelencode.Format, regX, regY, mipCount, pixelOffset, pixelSize int) tagschema.Instance {
	inst := tagschema.NewInstance(bitmapEntrySchema)
	hs := tagschema.Handles(inst)
	_ = hs[0].Set(0, "bitm")
	_ = hs[1].Set(0, int64(width))
	_ = hs[2].Set(0, int64(height))
	_ = hs[3].Set(0, int64(depth))
	_ = hs[4].Set(0, int64(btype))
	_ = hs[5].Set(0, int64(format))
	_ = hs[6].Set(0, int64(0))
	_ = hs[7].Set(0, int64(regX))
	_ = hs[8].Set(0, int64(regY))
	_ = hs[9].Set(0, int64(mipCount))
	_ = hs[10].Set(0, int64(pixelOffset))
	_ = hs[11].Set(0, int64(pixelSize))
	_ = hs[12].Set(0, int64(tagschema.NullTagID))
	_ = hs[13].Set(0, int64(0))
	_ = hs[14].Set(0, int64(0))
	_ = hs[15].Set(0, int64(0))
	return *inst
}

func newSequenceEntry(firstBitmap, bitmapCount int, sprites []tagschema.Instance) tagschema.Instance {
	inst := tagschema.NewInstance(sequenceSchema)
	hs := tagschema.Handles(inst)
	_ = hs[0].Set(0, int64(firstBitmap))
	_ = hs[1].Set(0, int64(bitmapCount))
	if sprites != nil {
		inst.Values[2] = sprites
	}
	return *inst
}

// newSpriteEntry normalizes a scanned sprite's placement within the sheet
// it was packed onto, expressing its edges and registration point as
// fractions of the sheet's dimensions, each in [0,1].
func newSpriteEntry(pl bitmapproc.Placement, spr colorplate.Sprite) tagschema.Instance {
	sw, sh := float64(pl.SheetWidth), float64(pl.SheetHeight)
	width := spr.Right - spr.Left
	height := spr.Bottom - spr.Top
	regLocalX := spr.RegistrationX - spr.Left
	regLocalY := spr.RegistrationY - spr.Top

	inst := tagschema.NewInstance(spriteSchema)
	hs := tagschema.Handles(inst)
	_ = hs[0].Set(0, int64(pl.Sheet))
	_ = hs[1].Set(0, float64(pl.X)/sw)
	_ = hs[2].Set(0, float64(pl.Y)/sh)
	_ = hs[3].Set(0, float64(pl.X+width)/sw)
	_ = hs[4].Set(0, float64(pl.Y+height)/sh)
	_ = hs[5].Set(0, float64(pl.X+regLocalX)/sw)
	_ = hs[6].Set(0, float64(pl.Y+regLocalY)/sh)
	return *inst
}
