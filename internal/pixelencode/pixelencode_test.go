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

package pixelencode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/image"
	"github.com/ashforge/strata/internal/pixelencode"
)

func solid(n int, p image.Pixel) []image.Pixel {
	out := make([]image.Pixel, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestAutoPickMonochrome(t *testing.T) {
	px := solid(16, image.Pixel{R: 128, G: 128, B: 128, A: 255})
	require.Equal(t, pixelencode.FormatMonochrome, pixelencode.AutoPick(px, 4, 4, false, true))
}

func TestAutoPickPalettizedPrefersP8(t *testing.T) {
	px := solid(16, image.Pixel{R: 10, G: 200, B: 30, A: 255})
	require.Equal(t, pixelencode.FormatP8, pixelencode.AutoPick(px, 4, 4, true, true))
}

func TestAutoPickOpaqueColorPrefersDXT1WhenLossyAllowed(t *testing.T) {
	px := solid(16, image.Pixel{R: 10, G: 200, B: 30, A: 255})
	require.Equal(t, pixelencode.FormatDXT1, pixelencode.AutoPick(px, 4, 4, false, true))
}

func TestAutoPickOpaqueColorFallsBackWhenLossyDisallowed(t *testing.T) {
	px := solid(16, image.Pixel{R: 10, G: 200, B: 30, A: 255})
	require.Equal(t, pixelencode.Format16Bit565, pixelencode.AutoPick(px, 4, 4, false, false))
}

func TestAutoPickSmallBitmapNeverPicksDXT(t *testing.T) {
	px := solid(4, image.Pixel{R: 10, G: 200, B: 30, A: 255})
	require.Equal(t, pixelencode.Format16Bit565, pixelencode.AutoPick(px, 2, 2, false, true))
}

func TestAutoPickBinaryAlphaPicksDXT1Or1555(t *testing.T) {
	px := make([]image.Pixel, 16)
	for i := range px {
		a := uint8(255)
		if i%2 == 0 {
			a = 0
		}
		px[i] = image.Pixel{R: 10, G: 20, B: 30, A: a}
	}
	require.Equal(t, pixelencode.FormatDXT1, pixelencode.AutoPick(px, 4, 4, false, true))
	require.Equal(t, pixelencode.Format16Bit1555, pixelencode.AutoPick(px, 4, 4, false, false))
}

func TestAutoPickGraduatedAlphaPicksDXT5(t *testing.T) {
	px := make([]image.Pixel, 16)
	for i := range px {
		px[i] = image.Pixel{R: 10, G: 20, B: 30, A: uint8(i * 16)}
	}
	require.Equal(t, pixelencode.FormatDXT5, pixelencode.AutoPick(px, 4, 4, false, true))
	require.Equal(t, pixelencode.Format32Bit, pixelencode.AutoPick(px, 4, 4, false, false))
}

func TestAutoPickGraduatedAlphaTooSmallForDXTFallsBackTo32Bit(t *testing.T) {
	px := make([]image.Pixel, 4)
	for i := range px {
		px[i] = image.Pixel{R: 10, G: 20, B: 30, A: uint8(i * 16)}
	}
	require.Equal(t, pixelencode.Format32Bit, pixelencode.AutoPick(px, 2, 2, false, true))
}

func TestEncode32BitSizeAndOrder(t *testing.T) {
	enc := pixelencode.NewEncoder()
	px := []image.Pixel{{R: 1, G: 2, B: 3, A: 4}}
	entry, err := enc.Encode(px, 1, 1, pixelencode.Format32Bit, nil, pixelencode.DitherNone, false)
	require.NoError(t, err)
	require.Equal(t, 4, entry.ByteSize)
	require.Equal(t, pixelencode.Format32Bit, entry.PixelFormat)
	require.Equal(t, []byte{4, 1, 2, 3}, enc.Blob()) // A, R, G, B order
}

func TestEncodeAppendsToSharedBlob(t *testing.T) {
	enc := pixelencode.NewEncoder()
	px := solid(1, image.Pixel{R: 1, G: 1, B: 1, A: 255})

	first, err := enc.Encode(px, 1, 1, pixelencode.Format32Bit, nil, pixelencode.DitherNone, false)
	require.NoError(t, err)
	require.Equal(t, 0, first.Offset)

	second, err := enc.Encode(px, 1, 1, pixelencode.Format32Bit, nil, pixelencode.DitherNone, false)
	require.NoError(t, err)
	require.Equal(t, 4, second.Offset)
	require.Len(t, enc.Blob(), 8)
}

func TestEncodeP8WithoutPaletteFails(t *testing.T) {
	enc := pixelencode.NewEncoder()
	px := solid(4, image.Pixel{R: 1, G: 1, B: 1, A: 255})
	_, err := enc.Encode(px, 2, 2, pixelencode.FormatP8, nil, pixelencode.DitherNone, false)
	require.Error(t, err)
}

func TestEncodeDXTRejectsSmallDimensions(t *testing.T) {
	enc := pixelencode.NewEncoder()
	px := solid(4, image.Pixel{R: 1, G: 1, B: 1, A: 255})
	_, err := enc.Encode(px, 2, 2, pixelencode.FormatDXT1, nil, pixelencode.DitherNone, true)
	require.Error(t, err)
}

func TestEncodeDXT1BlockSize(t *testing.T) {
	enc := pixelencode.NewEncoder()
	px := solid(16, image.Pixel{R: 200, G: 50, B: 10, A: 255})
	entry, err := enc.Encode(px, 4, 4, pixelencode.FormatDXT1, nil, pixelencode.DitherNone, true)
	require.NoError(t, err)
	require.Equal(t, 8, entry.ByteSize) // one DXT1 block is 8 bytes
}

func TestFormatStringNames(t *testing.T) {
	require.Equal(t, "dxt1", pixelencode.FormatDXT1.String())
	require.Equal(t, "auto", pixelencode.FormatAuto.String())
}
