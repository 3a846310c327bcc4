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

// Package cache parses a built cache file header, exposes its BSP,
// model-data, and tag-data regions as byte ranges, and composes/forges
// the file's CRC32 over those regions.
package cache

import (
	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/endian"
)

// Engine identifies which cache-file variant a header describes. Xbox
// and Anniversary engines don't define the CRC procedure.
type Engine int

const (
	EngineUnknown Engine = iota
	EnginePC
	EngineCustomEdition
	EngineXbox
	EngineAnniversary
)

func (e Engine) crcDefined() bool {
	return e != EngineXbox && e != EngineAnniversary
}

// HeaderSize is the fixed outer header size.
const HeaderSize = 2048

const (
	offMagic            = 0
	offEngineVersion    = 4
	offDecompressedSize = 8
	offTagDataOffset    = 12
	offTagDataSize      = 16
	offScenarioName     = 20
	scenarioNameLen     = 32
	offBuildString      = 52
	buildStringLen      = 32
	offMapType          = 84
	offCRC32            = 88
	offFlags            = 92
)

// Header is the fixed 2048-byte cache file header.
type Header struct {
	Magic            uint32
	Engine           Engine
	DecompressedSize uint32
	TagDataOffset    uint32
	TagDataSize      uint32
	ScenarioName     string
	BuildString      string
	MapType          uint16
	StoredCRC        uint32
	Flags            uint32
}

const expectedMagic = 0x68656164 // "head"

// ReadHeader parses the fixed-size outer header from the start of a
// cache file blob.
func ReadHeader(b []byte, assetPath string) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &builderrors.FormatError{Asset: assetPath, Reason: "cache file shorter than its header"}
	}

	magic, err := endian.ReadU32(b, offMagic)
	if err != nil {
		return Header{}, err
	}
	if magic != expectedMagic {
		return Header{}, &builderrors.FormatError{Asset: assetPath, Reason: "bad cache file magic"}
	}

	rawEngine, _ := endian.ReadU32(b, offEngineVersion)
	decompressedSize, _ := endian.ReadU32(b, offDecompressedSize)
	tagDataOffset, _ := endian.ReadU32(b, offTagDataOffset)
	tagDataSize, _ := endian.ReadU32(b, offTagDataSize)
	mapType, _ := endian.ReadU16(b, offMapType)
	crc32Val, _ := endian.ReadU32(b, offCRC32)
	flags, _ := endian.ReadU32(b, offFlags)

	return Header{
		Magic:            magic,
		Engine:           engineFromVersion(rawEngine),
		DecompressedSize: decompressedSize,
		TagDataOffset:    tagDataOffset,
		TagDataSize:      tagDataSize,
		ScenarioName:     mustFixedString(b, offScenarioName, scenarioNameLen),
		BuildString:      mustFixedString(b, offBuildString, buildStringLen),
		MapType:          mapType,
		StoredCRC:        crc32Val,
		Flags:            flags,
	}, nil
}

func mustFixedString(b []byte, offset, length int) string {
	s, _ := endian.FixedString{Len: length}.Read(b, offset)
	return s
}

func engineFromVersion(raw uint32) Engine {
	switch raw {
	case 5:
		return EngineXbox
	case 6:
		return EngineAnniversary
	case 609:
		return EngineCustomEdition
	case 7:
		return EnginePC
	default:
		return EnginePC
	}
}

// SecondaryHeader sits at the start of the tag-data region.
type SecondaryHeader struct {
	ScenarioTagID   uint32
	RandomNumberOff int // byte offset of RandomNumber within tag-data, relative to region start
	RandomNumber    uint32
	TagDataRootPtr  uint32
}

const (
	secOffScenarioTagID = 0
	secOffRandomNumber  = 4
	secOffTagDataRoot   = 8
)

// ReadSecondaryHeader parses the tag-data region's secondary header.
func ReadSecondaryHeader(tagData []byte, assetPath string) (SecondaryHeader, error) {
	if len(tagData) < 12 {
		return SecondaryHeader{}, &builderrors.FormatError{Asset: assetPath, Reason: "tag-data region too small for its secondary header"}
	}
	scenarioID, _ := endian.ReadU32(tagData, secOffScenarioTagID)
	random, _ := endian.ReadU32(tagData, secOffRandomNumber)
	root, _ := endian.ReadU32(tagData, secOffTagDataRoot)
	return SecondaryHeader{
		ScenarioTagID:   scenarioID,
		RandomNumberOff: secOffRandomNumber,
		RandomNumber:    random,
		TagDataRootPtr:  root,
	}, nil
}
