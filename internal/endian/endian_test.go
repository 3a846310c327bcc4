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

package endian_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/endian"
)

func TestU32RoundTrip(t *testing.T) {
	b := make([]byte, 8)
	require.NoError(t, endian.WriteU32(b, 2, 0xAABBCCDD))

	got, err := endian.ReadU32(b, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(0xAABBCCDD), got)

	// big-endian: high byte first.
	require.Equal(t, byte(0xAA), b[2])
	require.Equal(t, byte(0xDD), b[5])
}

func TestReadShortBuffer(t *testing.T) {
	b := make([]byte, 2)
	_, err := endian.ReadU32(b, 0)
	require.ErrorIs(t, err, endian.ErrShortBuffer)
}

func TestFixedStringRoundTrip(t *testing.T) {
	f := endian.FixedString{Len: 8}
	b := make([]byte, 8)

	require.NoError(t, f.Write(b, 0, "abc"))
	got, err := f.Read(b, 0)
	require.NoError(t, err)
	require.Equal(t, "abc", got)

	// remainder is NUL-padded, not garbage.
	require.Equal(t, byte(0), b[3])
}

func TestFixedStringTooLong(t *testing.T) {
	f := endian.FixedString{Len: 4}
	b := make([]byte, 4)
	err := f.Write(b, 0, "toolong")
	require.Error(t, err)
}

func TestBitfield(t *testing.T) {
	f := endian.Bitfield{Bit: 3}
	var word uint32

	word = f.Set(word, true)
	require.True(t, f.Get(word))
	require.Equal(t, uint32(1<<3), word)

	word = f.Set(word, false)
	require.False(t, f.Get(word))
	require.Equal(t, uint32(0), word)
}

func TestFloat32RoundTrip(t *testing.T) {
	b := make([]byte, 4)
	require.NoError(t, endian.WriteF32(b, 0, 3.5))
	got, err := endian.ReadF32(b, 0)
	require.NoError(t, err)
	require.Equal(t, float32(3.5), got)
}
