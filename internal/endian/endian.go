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

// Package endian provides fixed-width scalar primitives with an explicit
// on-disk byte order, bit-packed flag words, and fixed-length strings.
//
// Every on-disk tag value is big-endian, matching Invader's
// src/hek/data_type.hpp; the host may run little-endian, so every boundary
// crossing goes through an explicit Read/Write pair rather than a cast.
package endian

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Order is always big-endian on disk: the engine this toolchain targets
// stores every scalar big-endian end to end.
var Order = binary.BigEndian

// ErrShortBuffer is returned when a Read call doesn't have enough bytes.
var ErrShortBuffer = errors.New("endian: short buffer")

// ReadU8 reads an unsigned 8-bit integer at offset.
func ReadU8(b []byte, off int) (uint8, error) {
	if off < 0 || off+1 > len(b) {
		return 0, ErrShortBuffer
	}
	return b[off], nil
}

// ReadU16 reads a big-endian unsigned 16-bit integer at offset.
func ReadU16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, ErrShortBuffer
	}
	return Order.Uint16(b[off:]), nil
}

// ReadU32 reads a big-endian unsigned 32-bit integer at offset.
func ReadU32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, ErrShortBuffer
	}
	return Order.Uint32(b[off:]), nil
}

// ReadI32 reads a big-endian signed 32-bit integer at offset.
func ReadI32(b []byte, off int) (int32, error) {
	v, err := ReadU32(b, off)
	return int32(v), err
}

// ReadI16 reads a big-endian signed 16-bit integer at offset.
func ReadI16(b []byte, off int) (int16, error) {
	v, err := ReadU16(b, off)
	return int16(v), err
}

// ReadF32 reads a big-endian IEEE-754 float at offset.
func ReadF32(b []byte, off int) (float32, error) {
	v, err := ReadU32(b, off)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteU8 writes an unsigned 8-bit integer at offset.
func WriteU8(b []byte, off int, v uint8) error {
	if off < 0 || off+1 > len(b) {
		return ErrShortBuffer
	}
	b[off] = v
	return nil
}

// WriteU16 writes a big-endian unsigned 16-bit integer at offset.
func WriteU16(b []byte, off int, v uint16) error {
	if off < 0 || off+2 > len(b) {
		return ErrShortBuffer
	}
	Order.PutUint16(b[off:], v)
	return nil
}

// WriteU32 writes a big-endian unsigned 32-bit integer at offset.
func WriteU32(b []byte, off int, v uint32) error {
	if off < 0 || off+4 > len(b) {
		return ErrShortBuffer
	}
	Order.PutUint32(b[off:], v)
	return nil
}

// WriteI32 writes a big-endian signed 32-bit integer at offset.
func WriteI32(b []byte, off int, v int32) error {
	return WriteU32(b, off, uint32(v))
}

// WriteI16 writes a big-endian signed 16-bit integer at offset.
func WriteI16(b []byte, off int, v int16) error {
	return WriteU16(b, off, uint16(v))
}

// WriteF32 writes a big-endian IEEE-754 float at offset.
func WriteF32(b []byte, off int, v float32) error {
	return WriteU32(b, off, math.Float32bits(v))
}

// FixedString is a fixed-length, null-padded (never null-mandatory) string.
type FixedString struct {
	Len int
}

// Read decodes a fixed-length string from b at off, stopping at the first
// NUL or at Len, whichever comes first.
func (f FixedString) Read(b []byte, off int) (string, error) {
	if off < 0 || off+f.Len > len(b) {
		return "", ErrShortBuffer
	}
	raw := b[off : off+f.Len]
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n]), nil
}

// Write encodes s into a Len-byte, NUL-padded field at off. A string of
// exactly Len bytes fills the field with no terminator; Write fails only if
// s is longer than Len.
func (f FixedString) Write(b []byte, off int, s string) error {
	if off < 0 || off+f.Len > len(b) {
		return ErrShortBuffer
	}
	if len(s) > f.Len {
		return errors.Errorf("endian: string %q exceeds fixed field of %d bytes", s, f.Len)
	}
	dst := b[off : off+f.Len]
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
	return nil
}

// Pad preserves reserved bytes bit-for-bit across a round trip: it is never
// interpreted, only carried.
type Pad struct {
	Len int
}

// Bitfield describes an explicit little-endian bit layout inside a host
// word loaded from a known on-disk byte order.
type Bitfield struct {
	Bit uint
}

// Get extracts the named bit from a host-order word.
func (f Bitfield) Get(word uint32) bool {
	return word&(1<<f.Bit) != 0
}

// Set returns word with the named bit forced to v.
func (f Bitfield) Set(word uint32, v bool) uint32 {
	if v {
		return word | (1 << f.Bit)
	}
	return word &^ (1 << f.Bit)
}
