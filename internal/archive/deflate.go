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

// Package archive deflates and inflates the raw BGRA color-plate bytes
// archived inside a bitmap tag for lossless regeneration.
package archive

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ashforge/strata/builderrors"
)

const sizeOfPixel = 4

// Deflate compresses raw at the maximum compression level and prepends a
// big-endian 32-bit decompressed-size header, producing the archival
// color-plate blob stored in the bitmap tag.
func Deflate(raw []byte) ([]byte, error) {
	var body bytes.Buffer
	w, err := flate.NewWriter(&body, flate.BestCompression)
	if err != nil {
		return nil, errors.Wrap(err, "archive: opening deflate writer")
	}
	if _, err := w.Write(raw); err != nil {
		return nil, errors.Wrap(err, "archive: writing deflate stream")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "archive: closing deflate stream")
	}

	out := make([]byte, 4+body.Len())
	binary.BigEndian.PutUint32(out, uint32(len(raw)))
	copy(out[4:], body.Bytes())
	return out, nil
}

// Inflate reads the size-prefixed archival blob back into raw BGRA bytes.
// The decompressed size must be a multiple of sizeof(Pixel).
func Inflate(blob []byte, assetPath string) ([]byte, error) {
	if len(blob) < 4 {
		return nil, &builderrors.FormatError{Asset: assetPath, Reason: "archival plate blob shorter than its size prefix"}
	}
	wantSize := binary.BigEndian.Uint32(blob[:4])
	if wantSize%sizeOfPixel != 0 {
		return nil, &builderrors.FormatError{Asset: assetPath, Reason: "archival plate decompressed size is not a multiple of sizeof(Pixel)"}
	}

	r := flate.NewReader(bytes.NewReader(blob[4:]))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "archive: inflating %s", assetPath)
	}
	if uint32(len(out)) != wantSize {
		return nil, &builderrors.FormatError{Asset: assetPath, Reason: "archival plate decompressed size mismatch"}
	}
	return out, nil
}
