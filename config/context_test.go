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

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/config"
	"github.com/ashforge/strata/internal/bitmapproc"
	"github.com/ashforge/strata/internal/pixelencode"
)

func TestDefaultContext(t *testing.T) {
	ctx := config.Default()
	require.Equal(t, "data", ctx.DataRoot)
	require.Equal(t, "tags", ctx.TagsRoot)
	require.Equal(t, bitmapproc.ScaleLinear, ctx.Defaults.MipmapScaleValue())
	require.Equal(t, pixelencode.DitherNone, ctx.Defaults.DitherValue())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strata.yml")

	ctx := config.Default()
	ctx.Engine = "custom_edition"
	ctx.Defaults.MipmapScale = "nearest"
	ctx.Defaults.Dithering = "argb"

	require.NoError(t, ctx.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "custom_edition", loaded.Engine)
	require.Equal(t, bitmapproc.ScaleNearest, loaded.Defaults.MipmapScaleValue())
	require.Equal(t, pixelencode.DitherARGB, loaded.Defaults.DitherValue())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/strata.yml")
	require.Error(t, err)
}
