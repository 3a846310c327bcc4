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

package bitmapproc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/image"
)

func solidPixels(w, h int, p image.Pixel) []image.Pixel {
	out := make([]image.Pixel, w*h)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestMipChainHalvesUntil1x1(t *testing.T) {
	base := solidPixels(8, 8, image.Pixel{R: 10, G: 20, B: 30, A: 255})
	levels := bitmapproc.MipChain(base, 8, 8, 99, bitmapproc.ScaleNearest)

	// 8x8 -> 4x4 -> 2x2 -> 1x1: three levels below the base.
	require.Len(t, levels, 3)
	require.Len(t, levels[0], 16)
	require.Len(t, levels[1], 4)
	require.Len(t, levels[2], 1)
}

func TestMipChainRespectsMaxCount(t *testing.T) {
	base := solidPixels(8, 8, image.Pixel{R: 1, G: 1, B: 1, A: 255})
	levels := bitmapproc.MipChain(base, 8, 8, 1, bitmapproc.ScaleNearest)
	require.Len(t, levels, 1)
}

func TestMipChainNegativeMaxCountIsUnbounded(t *testing.T) {
	base := solidPixels(64, 64, image.Pixel{R: 1, G: 1, B: 1, A: 255})
	levels := bitmapproc.MipChain(base, 64, 64, -1, bitmapproc.ScaleNearest)

	// 64 -> 32 -> 16 -> 8 -> 4 -> 2 -> 1: six levels below the base.
	require.Len(t, levels, 6)
	require.Len(t, levels[len(levels)-1], 1)
}

func TestMipChainNearestPreservesSolidColor(t *testing.T) {
	p := image.Pixel{R: 7, G: 8, B: 9, A: 255}
	base := solidPixels(4, 4, p)
	levels := bitmapproc.MipChain(base, 4, 4, 1, bitmapproc.ScaleNearest)
	require.Equal(t, p, levels[0][0])
}

func TestFadeNoopAtZero(t *testing.T) {
	level := solidPixels(2, 2, image.Pixel{R: 100, G: 100, B: 100, A: 255})
	got := bitmapproc.Fade(level, 0)
	require.Equal(t, level, got)
}

func TestFadeBlendsTowardGray(t *testing.T) {
	level := solidPixels(1, 1, image.Pixel{R: 0, G: 0, B: 0, A: 255})
	got := bitmapproc.Fade(level, 1)
	require.InDelta(t, 127, got[0].R, 1)
	require.Equal(t, uint8(255), got[0].A) // alpha untouched
}
