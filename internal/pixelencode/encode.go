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
	"encoding/binary"

	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/image"
)

// Entry describes where one bitmap's encoded bytes landed in the shared
// pixel blob.
type Entry struct {
	Offset      int
	ByteSize    int
	PixelFormat Format
}

// Encoder accumulates encoded bitmap bytes into one shared blob.
type Encoder struct {
	blob []byte
}

// NewEncoder returns an empty encoder ready to accept bitmaps in order.
func NewEncoder() *Encoder { return &Encoder{} }

// Blob returns the accumulated byte blob.
func (e *Encoder) Blob() []byte { return e.blob }

// Encode converts one mip level to format (resolving FormatAuto first),
// dithers if requested, appends the resulting bytes to the shared blob,
// and returns the placement entry.
func (e *Encoder) Encode(pixels []image.Pixel, w, h int, format Format, paletteIndices []uint8, dither Dither, allowLossy bool) (Entry, error) {
	if format == FormatAuto {
		format = AutoPick(pixels, w, h, paletteIndices != nil, allowLossy)
	}

	var out []byte
	var err error
	switch format {
	case FormatMonochrome:
		out = encodeMonochrome(pixels)
	case FormatP8:
		if paletteIndices == nil {
			return Entry{}, &builderrors.EncodeError{Asset: "bitmap", Reason: "P8 format requires palettized pixels"}
		}
		out = append([]byte(nil), paletteIndices...)
	case Format32Bit:
		out = encode32(pixels)
	case Format16Bit565:
		out = encode16(applyDither(pixels, w, h, dither, 6), pack565)
	case Format16Bit1555:
		out = encode16(applyDither(pixels, w, h, dither, 5), pack1555)
	case Format16Bit4444:
		out = encode16(applyDither(pixels, w, h, dither, 4), pack4444)
	case FormatDXT1:
		out, err = encodeDXT(pixels, w, h, dxt1)
	case FormatDXT3:
		out, err = encodeDXT(pixels, w, h, dxt3)
	case FormatDXT5:
		out, err = encodeDXT(pixels, w, h, dxt5)
	default:
		return Entry{}, &builderrors.EncodeError{Asset: "bitmap", Reason: "unsupported pixel format"}
	}
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Offset: len(e.blob), ByteSize: len(out), PixelFormat: format}
	e.blob = append(e.blob, out...)
	return entry, nil
}

func encodeMonochrome(pixels []image.Pixel) []byte {
	out := make([]byte, len(pixels))
	for i, p := range pixels {
		out[i] = p.R
	}
	return out
}

func encode32(pixels []image.Pixel) []byte {
	out := make([]byte, len(pixels)*4)
	for i, p := range pixels {
		out[i*4+0] = p.A
		out[i*4+1] = p.R
		out[i*4+2] = p.G
		out[i*4+3] = p.B
	}
	return out
}

func encode16(pixels []image.Pixel, pack func(image.Pixel) uint16) []byte {
	out := make([]byte, len(pixels)*2)
	for i, p := range pixels {
		binary.BigEndian.PutUint16(out[i*2:], pack(p))
	}
	return out
}

func pack565(p image.Pixel) uint16 {
	r := uint16(p.R) >> 3
	g := uint16(p.G) >> 2
	b := uint16(p.B) >> 3
	return r<<11 | g<<5 | b
}

func pack1555(p image.Pixel) uint16 {
	a := uint16(0)
	if p.A >= 128 {
		a = 1
	}
	r := uint16(p.R) >> 3
	g := uint16(p.G) >> 3
	b := uint16(p.B) >> 3
	return a<<15 | r<<10 | g<<5 | b
}

func pack4444(p image.Pixel) uint16 {
	a := uint16(p.A) >> 4
	r := uint16(p.R) >> 4
	g := uint16(p.G) >> 4
	b := uint16(p.B) >> 4
	return a<<12 | r<<8 | g<<4 | b
}
