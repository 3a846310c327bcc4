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

// Package crc implements the standard CRC32 used to checksum a built
// cache file and a CRC-forging primitive that rewrites a 4-byte slot so
// the buffer's CRC32 becomes a chosen value.
package crc

import "github.com/ashforge/strata/builderrors"

const polynomial = 0xEDB88320

var crcTable [256]uint32

// revTable inverts crcTable by its top byte: for reflected CRC32, x is
// recoverable from the high byte of crcTable[x] alone, which is what lets
// the spoof primitive run the checksum backward one byte at a time.
var revTable [256]byte

func init() {
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = (c >> 1) ^ polynomial
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
	for i, v := range crcTable {
		revTable[v>>24] = byte(i)
	}
}

// CRC32 computes the IEEE 802.3 CRC32 of data, seeded by the previous
// call's result (0 for the first call in a chain), allowing disjoint
// regions to be checksummed in sequence without concatenating them.
func CRC32(seed uint32, data []byte) uint32 {
	r := seed ^ 0xFFFFFFFF
	for _, b := range data {
		r = (r >> 8) ^ crcTable[byte(r)^b]
	}
	return r ^ 0xFFFFFFFF
}

// reverseByteUpdate inverts one forward CRC32 step: given the register
// value after processing byte b, it recovers the register value before.
// The forward step's top byte depends only on the table lookup, never on
// the shifted-in register bits, which is what makes this invertible.
func reverseByteUpdate(r uint32, b byte) uint32 {
	top := byte(r >> 24)
	x := revTable[top]
	low := (r ^ crcTable[x]) << 8
	return low | uint32(x^b)
}

// ForgeSlot overwrites the 4 bytes at buffer[offset:offset+4] so that
// CRC32(0, buffer) equals desiredCRC, and returns the forged bytes plus
// the resulting CRC.
//
// CRC32 is an affine map of the message bits, so the final checksum
// decomposes into: the checksum of the buffer with the slot zeroed, plus
// a term contributed purely by the slot's own bits, shifted by however
// many bytes follow it. The slot's contribution is solved for by running
// the checksum backward one byte at a time from the end of the buffer,
// then inverting the 4-byte forward chain from a zero register.
func ForgeSlot(buffer []byte, offset int, desiredCRC uint32) ([4]byte, uint32, error) {
	if offset < 0 || offset+4 > len(buffer) {
		return [4]byte{}, 0, &builderrors.OutOfBoundsError{Asset: "crc spoof slot", Offset: offset, Length: 4, Bound: len(buffer)}
	}

	var orig [4]byte
	copy(orig[:], buffer[offset:offset+4])
	for i := 0; i < 4; i++ {
		buffer[offset+i] = 0
	}
	crcZero := CRC32(0, buffer)
	copy(buffer[offset:offset+4], orig[:])

	suffixLen := len(buffer) - (offset + 4)
	target := desiredCRC ^ crcZero
	r := target
	for i := 0; i < suffixLen; i++ {
		r = reverseByteUpdate(r, 0)
	}

	// Invert the 4-byte forward chain from register 0: the backward pass
	// recovers each step's table index from the top byte alone, then a
	// forward pass over those indices reconstructs the actual bytes.
	var idx [4]byte
	cur := r
	for i := 3; i >= 0; i-- {
		top := byte(cur >> 24)
		xi := revTable[top]
		idx[i] = xi
		cur = (cur ^ crcTable[xi]) << 8
	}

	var forged [4]byte
	state := uint32(0)
	for i := 0; i < 4; i++ {
		forged[i] = idx[i] ^ byte(state)
		state = (state >> 8) ^ crcTable[idx[i]]
	}

	copy(buffer[offset:offset+4], forged[:])
	return forged, CRC32(0, buffer), nil
}
