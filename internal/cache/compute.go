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

package cache

import (
	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/crc"
)

// Region is a byte range within the cache file blob.
type Region struct {
	Offset, Size int
}

// BSPRegion is one structure-bsp's byte range, as listed by the scenario
// tag's structure_bsps reflexive: each entry carries a start and size.
type BSPRegion = Region

// slice returns buffer[r.Offset : r.Offset+r.Size], failing closed if the
// range escapes buffer.
func (r Region) slice(buffer []byte, assetPath string) ([]byte, error) {
	if r.Offset < 0 || r.Size < 0 || r.Offset+r.Size > len(buffer) {
		return nil, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: r.Offset, Length: r.Size, Bound: len(buffer)}
	}
	return buffer[r.Offset : r.Offset+r.Size], nil
}

// ComputeCRC checksums buffer over, in order, every BSP region, the
// model-data region, and the tag-data region. Xbox and Anniversary
// engines don't define this procedure and return 0 without error.
func ComputeCRC(engine Engine, buffer []byte, bsps []BSPRegion, modelData, tagData Region, assetPath string) (uint32, error) {
	if !engine.crcDefined() {
		return 0, nil
	}

	var sum uint32
	for _, bsp := range bsps {
		b, err := bsp.slice(buffer, assetPath)
		if err != nil {
			return 0, err
		}
		sum = crc.CRC32(sum, b)
	}
	b, err := modelData.slice(buffer, assetPath)
	if err != nil {
		return 0, err
	}
	sum = crc.CRC32(sum, b)

	b, err = tagData.slice(buffer, assetPath)
	if err != nil {
		return 0, err
	}
	sum = crc.CRC32(sum, b)

	return sum, nil
}

// Verify computes the cache's CRC and reports whether it matches the
// header-stored value (the "dirty" check). Engines without a defined CRC
// procedure are always reported clean.
func Verify(header Header, buffer []byte, bsps []BSPRegion, modelData, tagData Region, assetPath string) (computed uint32, clean bool, err error) {
	computed, err = ComputeCRC(header.Engine, buffer, bsps, modelData, tagData, assetPath)
	if err != nil {
		return 0, false, err
	}
	if !header.Engine.crcDefined() {
		return 0, true, nil
	}
	return computed, computed == header.StoredCRC, nil
}

// Forge rewrites the tag-data secondary header's random-number slot so
// the cache's composed CRC becomes desiredCRC, per the exact scheme
// Invader's map CRC spoofer uses: the forger operates over a virtual
// buffer formed by concatenating the BSP, model-data, and tag-data
// regions in CRC composition order, since the slot and the regions it
// lives among aren't necessarily contiguous in the real file.
func Forge(buffer []byte, bsps []BSPRegion, modelData, tagData Region, randomOffsetInTagData int, desiredCRC uint32, assetPath string) (newRandom, resultCRC uint32, err error) {
	var virtual []byte
	for _, bsp := range bsps {
		b, err := bsp.slice(buffer, assetPath)
		if err != nil {
			return 0, 0, err
		}
		virtual = append(virtual, b...)
	}
	m, err := modelData.slice(buffer, assetPath)
	if err != nil {
		return 0, 0, err
	}
	virtual = append(virtual, m...)

	tagDataStart := len(virtual)
	t, err := tagData.slice(buffer, assetPath)
	if err != nil {
		return 0, 0, err
	}
	virtual = append(virtual, t...)

	slotOffset := tagDataStart + randomOffsetInTagData
	forged, crcResult, err := crc.ForgeSlot(virtual, slotOffset, desiredCRC)
	if err != nil {
		return 0, 0, err
	}

	realOffset := tagData.Offset + randomOffsetInTagData
	copy(buffer[realOffset:realOffset+4], forged[:])

	var random uint32
	for _, b := range forged {
		random = random<<8 | uint32(b)
	}
	return random, crcResult, nil
}
