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

package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/workspace"
)

func TestToHostAndLogicalPath(t *testing.T) {
	require.Equal(t, `textures\wall`, workspace.ToLogicalPath("textures/wall"))
	require.Equal(t, "textures/wall", workspace.ToHostPath(`textures\wall`))
}

func TestBaseName(t *testing.T) {
	require.Equal(t, "wall.bitmap", workspace.BaseName(`textures\levels\wall.bitmap`, false))
	require.Equal(t, "wall", workspace.BaseName(`textures\levels\wall.bitmap`, true))
	require.Equal(t, "wall", workspace.BaseName("wall", true))
}

func TestRemoveTrailingSlashesStripsAll(t *testing.T) {
	require.Equal(t, "textures", workspace.RemoveTrailingSlashes(`textures///`))
	require.Equal(t, "textures", workspace.RemoveTrailingSlashes("textures"))
	require.Equal(t, "", workspace.RemoveTrailingSlashes("///"))
}

func TestSplitTagClassExtension(t *testing.T) {
	tagPath, class, ok := workspace.SplitTagClassExtension(`textures\wall.bitmap`)
	require.True(t, ok)
	require.Equal(t, `textures\wall`, tagPath)
	require.Equal(t, "bitmap", class)

	_, _, ok = workspace.SplitTagClassExtension("no_extension")
	require.False(t, ok)
}

func TestSplitTagPath(t *testing.T) {
	require.Equal(t, []string{"textures", "levels", "wall"}, workspace.SplitTagPath(`textures\levels\wall`))
	require.Equal(t, []string{"textures", ""}, workspace.SplitTagPath(`textures\`))
}

func TestHostToLogical(t *testing.T) {
	logical, ok := workspace.HostToLogical("/data/textures/wall.tif", []string{"/data"})
	require.True(t, ok)
	require.Equal(t, `textures\wall.tif`, logical)

	_, ok = workspace.HostToLogical("/other/wall.tif", []string{"/data"})
	require.False(t, ok)
}
