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

package tagfile

import (
	"github.com/ashforge/strata/internal/endian"
	"github.com/ashforge/strata/builderrors"
)

// HeaderSize is the fixed size of a standalone tag file header: a 36-byte
// reserved area, 4-byte tag class, 4-byte engine version, 2-byte header
// version, 2-byte flag word, an 8-byte footer sentinel "blam", and 8 bytes
// of trailing padding to round out to 64.
const HeaderSize = 64

// footerSentinel is the tamper-detection marker word written at the end
// of the fixed header.
const footerSentinel = "blam"

// Header is the 64-byte standalone tag file header.
type Header struct {
	TagClass      string // four-CC
	Version       uint32
	HeaderVersion uint16
	Flags         uint16
}

// ReadHeader parses and validates a 64-byte tag file header.
func ReadHeader(b []byte, assetPath string) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: 0, Length: HeaderSize, Bound: len(b)}
	}

	const (
		offReserved      = 0
		reservedLen      = 36
		offTagClass      = offReserved + reservedLen
		offVersion       = offTagClass + 4
		offHeaderVersion = offVersion + 4
		offFlags         = offHeaderVersion + 2
		offFooter        = offFlags + 2
	)

	tagClass := string(b[offTagClass : offTagClass+4])

	version, err := endian.ReadU32(b, offVersion)
	if err != nil {
		return Header{}, err
	}
	headerVersion, err := endian.ReadU16(b, offHeaderVersion)
	if err != nil {
		return Header{}, err
	}
	flags, err := endian.ReadU16(b, offFlags)
	if err != nil {
		return Header{}, err
	}
	footer := string(b[offFooter : offFooter+4])
	if footer != footerSentinel {
		return Header{}, &builderrors.FormatError{Asset: assetPath, Reason: "missing 'blam' tamper-detection footer"}
	}

	return Header{TagClass: tagClass, Version: version, HeaderVersion: headerVersion, Flags: flags}, nil
}

// WriteHeader emits a 64-byte standalone tag file header.
func WriteHeader(h Header) []byte {
	b := make([]byte, HeaderSize)

	const (
		offReserved      = 0
		reservedLen      = 36
		offTagClass      = offReserved + reservedLen
		offVersion       = offTagClass + 4
		offHeaderVersion = offVersion + 4
		offFlags         = offHeaderVersion + 2
		offFooter        = offFlags + 2
	)

	copy(b[offTagClass:offTagClass+4], padFourCC(h.TagClass))
	_ = endian.WriteU32(b, offVersion, h.Version)
	_ = endian.WriteU16(b, offHeaderVersion, h.HeaderVersion)
	_ = endian.WriteU16(b, offFlags, h.Flags)
	copy(b[offFooter:offFooter+8], footerSentinel+footerSentinel)
	// The remaining bytes (offFooter+8 .. HeaderSize) stay zero padding.
	return b
}

func padFourCC(s string) []byte {
	out := []byte("    ")
	copy(out, s)
	return out[:4]
}
