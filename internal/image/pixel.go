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

// Package image decodes designer-authored source images (PNG/BMP via a
// standard image decoder, TGA via a hand-written decoder, TIFF via a
// separate TIFF decoder) into a canonical 32-bit BGRA pixel buffer.
package image

// Pixel is 32-bit BGRA, straight alpha, non-premultiplied: the canonical
// in-memory form for all image work.
type Pixel struct {
	B, G, R, A uint8
}

// SizeOfPixel is sizeof(Pixel) in bytes, used by the archival deflate
// prefix-size invariant.
const SizeOfPixel = 4

// Buffer is a tightly packed width*height grid of Pixels.
type Buffer struct {
	Width, Height int
	Pixels        []Pixel
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) Pixel {
	return b.Pixels[y*b.Width+x]
}

// Set assigns the pixel at (x, y).
func (b *Buffer) Set(x, y int, p Pixel) {
	b.Pixels[y*b.Width+x] = p
}

// Bytes returns the buffer's raw BGRA byte stream, in row-major order.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.Pixels)*SizeOfPixel)
	for i, p := range b.Pixels {
		o := i * SizeOfPixel
		out[o+0] = p.B
		out[o+1] = p.G
		out[o+2] = p.R
		out[o+3] = p.A
	}
	return out
}

// FromBytes reconstructs a Buffer from a raw BGRA byte stream produced by
// Bytes, for archival-plate round trips.
func FromBytes(width, height int, raw []byte) *Buffer {
	buf := &Buffer{Width: width, Height: height, Pixels: make([]Pixel, width*height)}
	for i := range buf.Pixels {
		o := i * SizeOfPixel
		buf.Pixels[i] = Pixel{B: raw[o+0], G: raw[o+1], R: raw[o+2], A: raw[o+3]}
	}
	return buf
}

// NewBuffer allocates a width*height Buffer of fully transparent black
// pixels.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pixels: make([]Pixel, width*height)}
}
