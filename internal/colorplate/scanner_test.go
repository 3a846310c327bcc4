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

package colorplate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/image"
)

var (
	divider    = image.Pixel{B: 255, G: 255, R: 0, A: 255}
	background = image.Pixel{B: 255, G: 0, R: 255, A: 255}
	content    = image.Pixel{R: 10, G: 20, B: 30, A: 255}
)

func TestScanUnstructuredPlateIsOneBitmap(t *testing.T) {
	buf := image.NewBuffer(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			buf.Set(x, y, image.Pixel{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	plate, err := colorplate.Scan(buf, colorplate.Bitmap2D, colorplate.UsageDefault, false)
	require.NoError(t, err)
	require.Len(t, plate.Bitmaps, 1)
	require.Len(t, plate.Sequences, 1)
	require.Equal(t, 4, plate.Bitmaps[0].Width)
	require.Equal(t, 4, plate.Bitmaps[0].Height)
}

func TestScanStructured2DSplitsTwoBitmaps(t *testing.T) {
	// Row 0: divider at (0,0), then background fill with a content gap.
	// Row 1..2: the two bitmap rectangles side by side, separated by
	// background.
	w, h := 7, 3
	buf := image.NewBuffer(w, h)
	for x := 0; x < w; x++ {
		buf.Set(x, 0, background)
	}
	buf.Set(0, 0, divider)
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, background)
		}
	}
	// First bitmap: columns 0-1.
	buf.Set(0, 1, content)
	buf.Set(1, 1, content)
	buf.Set(0, 2, content)
	buf.Set(1, 2, content)
	// Second bitmap: columns 4-5.
	buf.Set(4, 1, content)
	buf.Set(5, 1, content)
	buf.Set(4, 2, content)
	buf.Set(5, 2, content)

	plate, err := colorplate.Scan(buf, colorplate.Bitmap2D, colorplate.UsageDefault, false)
	require.NoError(t, err)
	require.Len(t, plate.Bitmaps, 2)
	require.Len(t, plate.Sequences, 1)
	require.Equal(t, []int{0, 1}, plate.Sequences[0].BitmapIndices)
	require.Equal(t, 2, plate.Bitmaps[0].Width)
	require.Equal(t, 2, plate.Bitmaps[0].Height)
}

func TestScanCubemapRequiresSixFaces(t *testing.T) {
	w, h := 9, 2
	buf := image.NewBuffer(w, h)
	for x := 0; x < w; x++ {
		buf.Set(x, 0, background)
	}
	buf.Set(0, 0, divider)
	for x := 0; x < w; x++ {
		buf.Set(x, 1, content)
	}

	_, err := colorplate.Scan(buf, colorplate.BitmapCubemap, colorplate.UsageDefault, false)
	require.Error(t, err)
}

func TestScanRejectsEmptyPlate(t *testing.T) {
	_, err := colorplate.Scan(image.NewBuffer(0, 0), colorplate.Bitmap2D, colorplate.UsageDefault, false)
	require.Error(t, err)
}
