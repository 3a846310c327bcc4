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
	"github.com/ashforge/strata/internal/archive"
	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/image"
	"github.com/ashforge/strata/internal/pixelencode"
	"github.com/ashforge/strata/internal/tagschema"
)

// BuildParams bundles every bitmap-build flag the schema needs beyond
// bitmapproc.Params itself.
type BuildParams struct {
	Type         colorplate.BitmapType
	Usage        colorplate.Usage
	Format       pixelencode.Format
	Dither       pixelencode.Dither
	AllowLossy   bool
	RegPointHack bool
	Proc         bitmapproc.Params
}

// Build scans plateImage as a color plate and drives it through the
// bitmap processor and pixel encoder, assembling a populated
// tagschema.Instance of Schema ready for tagfile.Write.
func Build(plateImage *image.Buffer, p BuildParams) (*tagschema.Instance, error) {
	return build(plateImage, p)
}

// Regenerate re-derives a bitmap tag's pixel blob from its own archived
// color plate: it inflates the stored plate, re-scans and reprocesses it
// with p's encoding flags, and reassembles the tag. The archived plate
// itself comes out unchanged, since deflating the same recovered bytes a
// second time is deterministic.
func Regenerate(inst *tagschema.Instance, p BuildParams) (*tagschema.Instance, error) {
	width := inst.Values[10].(int64)
	height := inst.Values[11].(int64)
	blob := inst.Values[14].([]byte)

	raw, err := archive.Inflate(blob, "regenerate")
	if err != nil {
		return nil, err
	}
	plateImage := image.FromBytes(int(width), int(height), raw)

	storedFlags := uint32(inst.Values[3].(int64))
	p.Type = colorplate.BitmapType(inst.Values[0].(int64))
	p.Usage = colorplate.Usage(inst.Values[1].(int64))
	p.RegPointHack = storedFlags&(1<<FlagRegPointHack) != 0

	return build(plateImage, p)
}

func build(plateImage *image.Buffer, p BuildParams) (*tagschema.Instance, error) {
	plate, err := colorplate.Scan(plateImage, p.Type, p.Usage, p.RegPointHack)
	if err != nil {
		return nil, err
	}
	result, err := bitmapproc.Process(plate, p.Usage, p.Proc)
	if err != nil {
		return nil, err
	}
	archived, err := archive.Deflate(plateImage.Bytes())
	if err != nil {
		return nil, err
	}

	enc := pixelencode.NewEncoder()
	var bitmapEntries []tagschema.Instance
	var sequenceEntries []tagschema.Instance

	if p.Type == colorplate.BitmapSprites {
		for _, sheet := range result.SpriteSheets {
			offset, size, resolved, err := encodeBitmap(enc, sheet.Pixels, sheet.Width, sheet.Height, 1, p.Format, nil, p.Dither, p.AllowLossy)
			if err != nil {
				return nil, err
			}
			bitmapEntries = append(bitmapEntries, newBitmapEntry(sheet.Width, sheet.Height, 1, p.Type, resolved, 0, 0, 0, offset, size))
		}

		placementIdx := 0
		for _, seq := range plate.Sequences {
			var sprites []tagschema.Instance
			minSheet, maxSheet := -1, -1
			for _, spr := range seq.Sprites {
				pl := result.SpritePlacements[placementIdx]
				placementIdx++
				if minSheet == -1 || pl.Sheet < minSheet {
					minSheet = pl.Sheet
				}
				if pl.Sheet > maxSheet {
					maxSheet = pl.Sheet
				}
				sprites = append(sprites, newSpriteEntry(pl, spr))
			}
			firstBitmap, bitmapCount := 0, 0
			if len(seq.Sprites) > 0 {
				firstBitmap, bitmapCount = minSheet, maxSheet-minSheet+1
			}
			sequenceEntries = append(sequenceEntries, newSequenceEntry(firstBitmap, bitmapCount, sprites))
		}
	} else {
		for _, pb := range result.Bitmaps {
			offset, size, resolved, err := encodeMipChain(enc, pb, p.Format, p.Dither, p.AllowLossy)
			if err != nil {
				return nil, err
			}
			bitmapEntries = append(bitmapEntries, newBitmapEntry(pb.Width, pb.Height, pb.Depth, p.Type, resolved, 0, 0, len(pb.Levels)-1, offset, size))
		}
		for _, seq := range plate.Sequences {
			sequenceEntries = append(sequenceEntries, newSequenceEntry(seq.BitmapIndices[0], len(seq.BitmapIndices), nil))
		}
	}

	flags := uint32(0)
	if p.RegPointHack {
		flags |= 1 << FlagRegPointHack
	}
	if p.Proc.BumpPalettize {
		flags |= 1 << FlagBumpPalettize
	}
	if p.Proc.ForceSquareSheets {
		flags |= 1 << FlagForceSquare
	}

	inst := tagschema.NewInstance(Schema)
	hs := tagschema.Handles(inst)
	_ = hs[0].Set(0, int64(p.Type))
	_ = hs[1].Set(0, int64(p.Usage))
	_ = hs[2].Set(0, int64(p.Format))
	_ = hs[3].Set(0, int64(flags))
	_ = hs[4].Set(0, p.Proc.MipmapFade)
	_ = hs[5].Set(0, p.Proc.Sharpen)
	_ = hs[6].Set(0, p.Proc.BumpHeight)
	_ = hs[7].Set(0, int64(p.Proc.SpriteBudget))
	_ = hs[8].Set(0, int64(p.Proc.SpriteBudgetCount))
	_ = hs[9].Set(0, int64(p.Proc.SpriteSpacing))
	_ = hs[10].Set(0, int64(plateImage.Width))
	_ = hs[11].Set(0, int64(plateImage.Height))
	inst.Values[12] = sequenceEntries
	inst.Values[13] = bitmapEntries
	inst.Values[14] = archived
	inst.Values[15] = enc.Blob()
	return inst, nil
}
