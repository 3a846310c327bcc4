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

package bitmaptag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/bitmaptag"
	"github.com/ashforge/strata/internal/colorplate"
	"github.com/ashforge/strata/internal/image"
	"github.com/ashforge/strata/internal/pixelencode"
	"github.com/ashforge/strata/internal/tagschema"
)

func unstructuredPlate(w, h int) *image.Buffer {
	buf := image.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, image.Pixel{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return buf
}

func buildParams() bitmaptag.BuildParams {
	return bitmaptag.BuildParams{
		Type:       colorplate.Bitmap2D,
		Usage:      colorplate.UsageDefault,
		Format:     pixelencode.FormatAuto,
		Dither:     pixelencode.DitherNone,
		AllowLossy: true,
		Proc: bitmapproc.Params{
			Scale:        bitmapproc.ScaleNearest,
			MipmapCount:  2,
			SpriteBudget: 64,
		},
	}
}

func TestBuildProducesPopulatedInstance(t *testing.T) {
	plate := unstructuredPlate(8, 8)
	inst, err := bitmaptag.Build(plate, buildParams())
	require.NoError(t, err)

	handles := tagschema.Handles(inst)
	width, _ := handles[10].Get(0)
	height, _ := handles[11].Get(0)
	require.Equal(t, int64(8), width)
	require.Equal(t, int64(8), height)

	bitmapsHandle := handles[13]
	require.Equal(t, 1, bitmapsHandle.Count())

	pixelData := handles[15]
	require.Greater(t, pixelData.Count(), 0)
}

func TestRegenerateRecoversOriginalPlate(t *testing.T) {
	plate := unstructuredPlate(8, 8)
	inst, err := bitmaptag.Build(plate, buildParams())
	require.NoError(t, err)

	regenerated, err := bitmaptag.Regenerate(inst, buildParams())
	require.NoError(t, err)

	require.Equal(t, inst.Values[14], regenerated.Values[14])
}
