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

package crc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/crc"
)

func TestCRC32KnownVector(t *testing.T) {
	// "123456789" is the standard CRC32/IEEE check string.
	got := crc.CRC32(0, []byte("123456789"))
	require.Equal(t, uint32(0xCBF43926), got)
}

func TestCRC32Chaining(t *testing.T) {
	whole := crc.CRC32(0, []byte("123456789"))

	chained := crc.CRC32(0, []byte("1234"))
	chained = crc.CRC32(chained, []byte("56789"))

	require.Equal(t, whole, chained)
}

func TestForgeSlotProducesDesiredCRC(t *testing.T) {
	buffer := make([]byte, 64)
	for i := range buffer {
		buffer[i] = byte(i * 7)
	}

	const desired = uint32(0xDEADBEEF)
	forged, resultCRC, err := crc.ForgeSlot(buffer, 20, desired)
	require.NoError(t, err)
	require.Equal(t, desired, resultCRC)
	require.Equal(t, forged[:], buffer[20:24])
	require.Equal(t, desired, crc.CRC32(0, buffer))
}

func TestForgeSlotAtEndOfBuffer(t *testing.T) {
	buffer := make([]byte, 8)
	for i := range buffer {
		buffer[i] = byte(i)
	}

	_, resultCRC, err := crc.ForgeSlot(buffer, 4, 0x01020304)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), resultCRC)
}

func TestForgeSlotOutOfBounds(t *testing.T) {
	buffer := make([]byte, 8)

	_, _, err := crc.ForgeSlot(buffer, 6, 0)
	require.Error(t, err)

	_, _, err = crc.ForgeSlot(buffer, -1, 0)
	require.Error(t, err)
}
