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

package archive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/archive"
)

func TestDeflateInflateRoundTrip(t *testing.T) {
	raw := make([]byte, 4*64) // 64 BGRA pixels
	for i := range raw {
		raw[i] = byte(i * 13)
	}

	blob, err := archive.Deflate(raw)
	require.NoError(t, err)

	got, err := archive.Inflate(blob, "plate.bitmap")
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestInflateRejectsShortBlob(t *testing.T) {
	_, err := archive.Inflate([]byte{1, 2}, "plate.bitmap")
	require.Error(t, err)
}

func TestInflateRejectsMisalignedSize(t *testing.T) {
	raw := make([]byte, 6) // not a multiple of sizeof(Pixel)
	blob, err := archive.Deflate(raw)
	require.NoError(t, err)
	_, err = archive.Inflate(blob, "plate.bitmap")
	require.Error(t, err)
}

func TestInflateRejectsSizeMismatch(t *testing.T) {
	blob, err := archive.Deflate(make([]byte, 8))
	require.NoError(t, err)
	blob[3] = 252 // corrupt the declared decompressed size, keeping it pixel-aligned
	_, err = archive.Inflate(blob, "plate.bitmap")
	require.Error(t, err)
}
