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

package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/cache"
	"github.com/ashforge/strata/internal/endian"
)

func buildHeader(t *testing.T, engineVersion uint32, storedCRC uint32) []byte {
	t.Helper()
	b := make([]byte, cache.HeaderSize+256)
	require.NoError(t, endian.WriteU32(b, 0, 0x68656164)) // "head"
	require.NoError(t, endian.WriteU32(b, 4, engineVersion))
	require.NoError(t, endian.WriteU32(b, 88, storedCRC))
	return b
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	b := make([]byte, cache.HeaderSize)
	_, err := cache.ReadHeader(b, "bad.map")
	require.Error(t, err)
}

func TestReadHeaderRejectsShortBuffer(t *testing.T) {
	_, err := cache.ReadHeader(make([]byte, 4), "short.map")
	require.Error(t, err)
}

func TestReadHeaderEngineFromVersion(t *testing.T) {
	b := buildHeader(t, 7, 0)
	h, err := cache.ReadHeader(b, "pc.map")
	require.NoError(t, err)
	require.Equal(t, cache.EnginePC, h.Engine)

	b = buildHeader(t, 5, 0)
	h, err = cache.ReadHeader(b, "xbox.map")
	require.NoError(t, err)
	require.Equal(t, cache.EngineXbox, h.Engine)
}

func TestVerifyDetectsCleanAndDirty(t *testing.T) {
	b := buildHeader(t, 7, 0)
	// lay out a tiny BSP, model, and tag region past the header.
	bsp := cache.Region{Offset: cache.HeaderSize, Size: 16}
	model := cache.Region{Offset: cache.HeaderSize + 16, Size: 16}
	tagData := cache.Region{Offset: cache.HeaderSize + 32, Size: 16}
	for i := cache.HeaderSize; i < cache.HeaderSize+48; i++ {
		b[i] = byte(i)
	}

	header, err := cache.ReadHeader(b, "t.map")
	require.NoError(t, err)

	computed, err := cache.ComputeCRC(header.Engine, b, []cache.BSPRegion{bsp}, model, tagData, "t.map")
	require.NoError(t, err)

	require.NoError(t, endian.WriteU32(b, 88, computed))
	header, err = cache.ReadHeader(b, "t.map")
	require.NoError(t, err)

	_, clean, err := cache.Verify(header, b, []cache.BSPRegion{bsp}, model, tagData, "t.map")
	require.NoError(t, err)
	require.True(t, clean)

	b[cache.HeaderSize]++ // corrupt a byte inside the BSP region
	_, clean, err = cache.Verify(header, b, []cache.BSPRegion{bsp}, model, tagData, "t.map")
	require.NoError(t, err)
	require.False(t, clean)
}

func TestVerifyAlwaysCleanForEnginesWithoutCRC(t *testing.T) {
	b := buildHeader(t, 5, 0) // xbox
	header, err := cache.ReadHeader(b, "xbox.map")
	require.NoError(t, err)

	_, clean, err := cache.Verify(header, b, nil, cache.Region{}, cache.Region{}, "xbox.map")
	require.NoError(t, err)
	require.True(t, clean)
}

func TestForgeMakesVerifyClean(t *testing.T) {
	b := buildHeader(t, 7, 0)
	bsp := cache.Region{Offset: cache.HeaderSize, Size: 16}
	model := cache.Region{Offset: cache.HeaderSize + 16, Size: 16}
	tagData := cache.Region{Offset: cache.HeaderSize + 32, Size: 16}
	for i := cache.HeaderSize; i < cache.HeaderSize+48; i++ {
		b[i] = byte(i * 3)
	}

	const desired = uint32(0xCAFEBABE)
	_, resultCRC, err := cache.Forge(b, []cache.BSPRegion{bsp}, model, tagData, 4, desired, "t.map")
	require.NoError(t, err)
	require.Equal(t, desired, resultCRC)

	require.NoError(t, endian.WriteU32(b, 88, desired))
	header, err := cache.ReadHeader(b, "t.map")
	require.NoError(t, err)

	_, clean, err := cache.Verify(header, b, []cache.BSPRegion{bsp}, model, tagData, "t.map")
	require.NoError(t, err)
	require.True(t, clean)
}

func TestReadSecondaryHeaderTooSmall(t *testing.T) {
	_, err := cache.ReadSecondaryHeader(make([]byte, 4), "t.map")
	require.Error(t, err)
}
