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

func sprite(w, h int, p image.Pixel) bitmapproc.SpriteSource {
	px := make([]image.Pixel, w*h)
	for i := range px {
		px[i] = p
	}
	return bitmapproc.SpriteSource{Width: w, Height: h, Pixels: px}
}

func TestPackSpritesSingleSheet(t *testing.T) {
	sprites := []bitmapproc.SpriteSource{
		sprite(4, 4, image.Pixel{R: 1, A: 255}),
		sprite(4, 4, image.Pixel{R: 2, A: 255}),
	}
	sheets, placements, err := bitmapproc.PackSprites(sprites, 64, 0, 1, false)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Len(t, placements, 2)

	for _, p := range placements {
		require.Equal(t, 0, p.Sheet)
	}
}

func TestPackSpritesOverflowsToSecondSheet(t *testing.T) {
	sprites := []bitmapproc.SpriteSource{
		sprite(7, 7, image.Pixel{R: 1, A: 255}),
		sprite(7, 7, image.Pixel{R: 2, A: 255}),
	}
	// budget of 8 fits one 7x7 sprite plus its 1-pixel spacing and leaves
	// no room for a second on the same sheet, forcing an overflow.
	sheets, placements, err := bitmapproc.PackSprites(sprites, 8, 0, 1, false)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	require.NotEqual(t, placements[0].Sheet, placements[1].Sheet)
}

func TestPackSpritesRejectsOversizedSprite(t *testing.T) {
	sprites := []bitmapproc.SpriteSource{sprite(16, 16, image.Pixel{A: 255})}
	_, _, err := bitmapproc.PackSprites(sprites, 8, 0, 1, false)
	require.Error(t, err)
}

func TestPackSpritesEmptyInput(t *testing.T) {
	sheets, placements, err := bitmapproc.PackSprites(nil, 64, 0, 1, false)
	require.NoError(t, err)
	require.Nil(t, sheets)
	require.Nil(t, placements)
}

func TestPackSpritesPreservesPixels(t *testing.T) {
	target := image.Pixel{R: 42, G: 10, B: 5, A: 255}
	sprites := []bitmapproc.SpriteSource{sprite(2, 2, target)}
	sheets, placements, err := bitmapproc.PackSprites(sprites, 16, 0, 1, false)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	p := placements[0]
	got := sheets[0].At(p.X, p.Y)
	require.Equal(t, target, got)
}
