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

// Package bitmaptag defines the concrete bitmap tag class as a
// tagschema.Schema and drives the build pipeline — scan, process, encode,
// archive — that turns a scanned color plate into a populated
// tagschema.Instance ready for tagfile.Write.
package bitmaptag

import "github.com/ashforge/strata/internal/tagschema"

// TagClass is the four-character-code this package's schema compiles to.
const TagClass = "bitm"

// bitmapTypeDomain enumerates both the tag-level plate type and each
// per-bitmap-entry's own type field.
var bitmapTypeDomain = &tagschema.EnumDomain{Names: []string{
	"2d_textures", "3d_textures", "cube_maps", "interface_bitmaps", "sprites",
}}

// usageDomain enumerates the usage a plate was built for; it steers
// bitmapproc's per-usage encoding path (bump/detail handling) and is
// carried on the tag so Regenerate can reprocess the plate the same way.
var usageDomain = &tagschema.EnumDomain{Names: []string{
	"default", "height_map", "detail_map",
}}

// formatDomain mirrors pixelencode.Format's on-disk names, in enum order.
var formatDomain = &tagschema.EnumDomain{Names: []string{
	"auto", "monochrome", "p8", "32-bit", "16-bit-565", "16-bit-1555", "16-bit-4444", "dxt1", "dxt3", "dxt5",
}}

// flagBits names the tag-level flag word's bits.
const (
	FlagRegPointHack  = 0 // sprite registration points use the legacy bounding-box-center calculation
	FlagBumpPalettize = 1 // height-map usage palettizes its derived normal maps to P8
	FlagForceSquare   = 2 // sprite sheets are never trimmed to a non-square rectangle
)

// spriteSchema is one sprite sub-entry of a sequence: bitmap index, its
// four edges, and its registration point, all normalized to [0,1] of the
// sheet it landed on.
var spriteSchema = &tagschema.Schema{
	Name: "bitmap_sprite",
	Fields: []tagschema.FieldSchema{
		{Name: "bitmap_index", Kind: tagschema.KindIndex},
		{Name: "left", Kind: tagschema.KindFraction},
		{Name: "top", Kind: tagschema.KindFraction},
		{Name: "right", Kind: tagschema.KindFraction},
		{Name: "bottom", Kind: tagschema.KindFraction},
		{Name: "registration_point_x", Kind: tagschema.KindFraction},
		{Name: "registration_point_y", Kind: tagschema.KindFraction},
	},
}

// sequenceSchema groups a contiguous run of bitmap entries (the bitmaps of
// one plate strip, or the sprite sheets a sequence's sprites landed on)
// under one addressable sequence.
var sequenceSchema = &tagschema.Schema{
	Name: "bitmap_sequence",
	Fields: []tagschema.FieldSchema{
		{Name: "first_bitmap", Kind: tagschema.KindIndex},
		{Name: "bitmap_count", Kind: tagschema.KindInt16},
		{Name: "sprites", Kind: tagschema.KindReflexive, Element: spriteSchema},
	},
}

// bitmapEntrySchema is one physical bitmap (a 2D image with its whole mip
// chain, a cubemap with all six faces, a 3D texture with all its slices, or
// one sprite sheet) as it's addressed from the shared pixel blob.
// bitmap_tag_id, pointer, hardware_format, and base_address are runtime
// fields the engine populates at load time; the toolchain always writes
// them zeroed.
var bitmapEntrySchema = &tagschema.Schema{
	Name: "bitmap_data",
	Fields: []tagschema.FieldSchema{
		{Name: "bitmap_class", Kind: tagschema.KindString, StringLen: 5},
		{Name: "width", Kind: tagschema.KindUint16},
		{Name: "height", Kind: tagschema.KindUint16},
		{Name: "depth", Kind: tagschema.KindUint16},
		{Name: "type", Kind: tagschema.KindEnum, Domain: bitmapTypeDomain},
		{Name: "format", Kind: tagschema.KindEnum, Domain: formatDomain},
		{Name: "flags", Kind: tagschema.KindBitmask},
		{Name: "registration_point_x", Kind: tagschema.KindInt16},
		{Name: "registration_point_y", Kind: tagschema.KindInt16},
		{Name: "mipmap_count", Kind: tagschema.KindUint16},
		{Name: "pixel_offset", Kind: tagschema.KindUint32},
		{Name: "pixel_size", Kind: tagschema.KindUint32},
		{Name: "bitmap_tag_id", Kind: tagschema.KindUint32},
		{Name: "pointer", Kind: tagschema.KindUint32},
		{Name: "hardware_format", Kind: tagschema.KindUint32},
		{Name: "base_address", Kind: tagschema.KindUint32},
	},
}

// Schema is the bitmap tag's root structure: a reflexive of per-bitmap
// entries, a reflexive of sequences grouping them, and the archival
// color-plate data as a single data blob.
var Schema = &tagschema.Schema{
	Name: "bitmap",
	Fields: []tagschema.FieldSchema{
		{Name: "type", Kind: tagschema.KindEnum, Domain: bitmapTypeDomain},
		{Name: "usage", Kind: tagschema.KindEnum, Domain: usageDomain},
		{Name: "default_format", Kind: tagschema.KindEnum, Domain: formatDomain},
		{Name: "flags", Kind: tagschema.KindBitmask},
		{Name: "detail_fade_factor", Kind: tagschema.KindFraction},
		{Name: "sharpen_amount", Kind: tagschema.KindFraction},
		{Name: "bump_height", Kind: tagschema.KindFraction},
		{Name: "sprite_budget", Kind: tagschema.KindUint16},
		{Name: "sprite_budget_count", Kind: tagschema.KindUint16},
		{Name: "sprite_spacing", Kind: tagschema.KindUint16},
		// color_plate_width/height size the archived blob on inflate: the
		// blob itself carries only a byte count, not a rectangle.
		{Name: "color_plate_width", Kind: tagschema.KindUint16},
		{Name: "color_plate_height", Kind: tagschema.KindUint16},
		{Name: "sequences", Kind: tagschema.KindReflexive, Element: sequenceSchema},
		{Name: "bitmaps", Kind: tagschema.KindReflexive, Element: bitmapEntrySchema},
		{Name: "compressed_color_plate_data", Kind: tagschema.KindData},
		{Name: "processed_pixel_data", Kind: tagschema.KindData},
	},
}
