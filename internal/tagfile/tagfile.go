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

// Package tagfile parses and emits standalone tag files: it resolves
// in-file pointers, validates versions and sizes, and produces/consumes an
// in-memory tagschema.Instance tree.
package tagfile

import (
	"github.com/ashforge/strata/builderrors"
	"github.com/ashforge/strata/internal/endian"
	"github.com/ashforge/strata/internal/tagschema"
)

// basePointer is the conventional virtual address of the first byte past
// the root structure, matching Invader's base-pointer-relative reflexive
// and data pointers (src/hek/data_type.hpp's get_structs).
const basePointer = uint32(0)

// File is a parsed standalone tag file.
type File struct {
	Header Header
	Root   *tagschema.Instance
}

// Read parses a standalone tag file. assetPath is used only for
// diagnostics. wantClass/wantVersion are validated against the header.
func Read(b []byte, schema *tagschema.Schema, assetPath, wantClass string, wantVersion uint32) (*File, error) {
	h, err := ReadHeader(b, assetPath)
	if err != nil {
		return nil, err
	}
	if wantClass != "" && h.TagClass != wantClass {
		return nil, &builderrors.FormatError{Asset: assetPath, Reason: "tag class mismatch: expected " + wantClass + ", got " + h.TagClass}
	}
	if wantVersion != 0 && h.Version != wantVersion {
		return nil, &builderrors.FormatError{Asset: assetPath, Reason: "unsupported engine version"}
	}

	body := b[HeaderSize:]
	rootSize := structSize(schema)
	if len(body) < rootSize {
		return nil, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: 0, Length: rootSize, Bound: len(body)}
	}
	// Pointers are relative to basePointer, the first byte past the root
	// structure, so the payload region starts after the root's own bytes.
	root, _, err := parseInstance(schema, body, 0, body[rootSize:], assetPath)
	if err != nil {
		return nil, err
	}
	return &File{Header: h, Root: root}, nil
}

// Write emits a standalone tag file: header, root structure, then
// reflexives and data blobs appended depth-first. Each reflexive, data and
// dependency-path pointer is written as the offset of its payload past the
// root structure (relative to basePointer), which is how Read resolves it;
// pointers are not zeroed. Dependencies are written with NullTagID as their
// tag id.
func Write(h Header, root *tagschema.Instance) []byte {
	var payload []byte
	rootBytes, payload := writeInstance(root, payload)

	out := make([]byte, 0, HeaderSize+len(rootBytes)+len(payload))
	out = append(out, WriteHeader(h)...)
	out = append(out, rootBytes...)
	out = append(out, payload...)
	return out
}

// parseInstance decodes one struct of the given schema from cur (the
// struct's own bytes) and recursively resolves any reflexive/data fields
// against payload (the full appended-data region, addressed by
// basePointer-relative pointers). It returns the parsed instance and the
// number of bytes of cur it consumed.
func parseInstance(schema *tagschema.Schema, cur []byte, curBase int, payload []byte, assetPath string) (*tagschema.Instance, int, error) {
	size := structSize(schema)
	if len(cur) < size {
		return nil, 0, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: curBase, Length: size, Bound: len(cur) + curBase}
	}

	inst := tagschema.NewInstance(schema)
	off := 0
	for i, f := range schema.Fields {
		w := fieldSize(f)
		slot := cur[off : off+w]

		switch f.Kind {
		case tagschema.KindInt8:
			v, err := endian.ReadU8(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(int8(v))
		case tagschema.KindUint8:
			v, err := endian.ReadU8(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(v)
		case tagschema.KindInt16, tagschema.KindIndex, tagschema.KindEnum:
			v, err := endian.ReadI16(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(v)
		case tagschema.KindUint16:
			v, err := endian.ReadU16(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(v)
		case tagschema.KindInt32, tagschema.KindBitmask:
			v, err := endian.ReadI32(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(v)
		case tagschema.KindUint32:
			v, err := endian.ReadU32(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = int64(v)
		case tagschema.KindFloat, tagschema.KindAngle, tagschema.KindFraction:
			v, err := endian.ReadF32(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = float64(v)
		case tagschema.KindString:
			s, err := (endian.FixedString{Len: f.StringLen}).Read(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = s
		case tagschema.KindDependency:
			dep, err := parseDependency(slot, payload, assetPath)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = dep
		case tagschema.KindReflexive:
			count, err := endian.ReadU32(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			ptr, err := endian.ReadU32(slot, 4)
			if err != nil {
				return nil, 0, err
			}
			elems, err := parseReflexive(f.Element, int(count), ptr, payload, assetPath)
			if err != nil {
				return nil, 0, err
			}
			inst.Values[i] = elems
		case tagschema.KindData, tagschema.KindTagDataOffset:
			sz, err := endian.ReadU32(slot, 0)
			if err != nil {
				return nil, 0, err
			}
			ptr, err := endian.ReadU32(slot, 4)
			if err != nil {
				return nil, 0, err
			}
			blob, err := resolvePointer(ptr, int(sz), payload, assetPath)
			if err != nil {
				return nil, 0, err
			}
			cp := make([]byte, len(blob))
			copy(cp, blob)
			inst.Values[i] = cp
		default:
			// Fixed-size numeric aggregates (points, vectors, matrices,
			// colors, planes, quaternions, bounds, rectangles) are carried
			// as raw bytes: editors/converters interpret them via the
			// child value kind, not this generic parser.
			cp := make([]byte, w)
			copy(cp, slot)
			inst.Values[i] = cp
		}
		off += w
	}
	return inst, off, nil
}

// resolvePointer validates and slices a base-pointer-relative reference,
// failing closed exactly as Invader's TagReflexive::get_structs does.
func resolvePointer(ptr uint32, size int, payload []byte, assetPath string) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if ptr < basePointer {
		return nil, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: int(ptr), Length: size, Bound: int(basePointer)}
	}
	offset := int(ptr - basePointer)
	if offset < 0 || offset+size > len(payload) {
		return nil, &builderrors.OutOfBoundsError{Asset: assetPath, Offset: offset, Length: size, Bound: len(payload)}
	}
	return payload[offset : offset+size], nil
}

func parseReflexive(elem *tagschema.Schema, count int, ptr uint32, payload []byte, assetPath string) ([]tagschema.Instance, error) {
	if count == 0 {
		return []tagschema.Instance{}, nil
	}
	elemSize := structSize(elem)
	region, err := resolvePointer(ptr, elemSize*count, payload, assetPath)
	if err != nil {
		return nil, err
	}
	out := make([]tagschema.Instance, count)
	off := 0
	for i := 0; i < count; i++ {
		sub, n, err := parseInstance(elem, region[off:], off, payload, assetPath)
		if err != nil {
			return nil, err
		}
		out[i] = *sub
		off += n
	}
	return out, nil
}

func parseDependency(slot, payload []byte, assetPath string) (tagschema.Dependency, error) {
	class := string(slot[0:4])
	pathPtr, err := endian.ReadU32(slot, 4)
	if err != nil {
		return tagschema.Dependency{}, err
	}
	pathSize, err := endian.ReadU32(slot, 8)
	if err != nil {
		return tagschema.Dependency{}, err
	}
	tagID, err := endian.ReadU32(slot, 12)
	if err != nil {
		return tagschema.Dependency{}, err
	}
	path := ""
	if pathSize > 0 {
		raw, err := resolvePointer(pathPtr, int(pathSize), payload, assetPath)
		if err != nil {
			return tagschema.Dependency{}, err
		}
		path = string(raw)
	}
	return tagschema.Dependency{Class: class, Path: path, TagID: tagID}, nil
}

// writeInstance emits inst's inline struct bytes, appending any
// reflexive/data payload (depth-first) to payload and returning both.
func writeInstance(inst *tagschema.Instance, payload []byte) ([]byte, []byte) {
	root := make([]byte, structSize(inst.Schema))
	off := 0
	for i, f := range inst.Schema.Fields {
		w := fieldSize(f)
		slot := root[off : off+w]
		switch f.Kind {
		case tagschema.KindInt8, tagschema.KindUint8:
			_ = endian.WriteU8(slot, 0, uint8(inst.Values[i].(int64)))
		case tagschema.KindInt16, tagschema.KindIndex, tagschema.KindEnum:
			_ = endian.WriteI16(slot, 0, int16(inst.Values[i].(int64)))
		case tagschema.KindUint16:
			_ = endian.WriteU16(slot, 0, uint16(inst.Values[i].(int64)))
		case tagschema.KindInt32, tagschema.KindBitmask:
			_ = endian.WriteI32(slot, 0, int32(inst.Values[i].(int64)))
		case tagschema.KindUint32:
			_ = endian.WriteU32(slot, 0, uint32(inst.Values[i].(int64)))
		case tagschema.KindFloat, tagschema.KindAngle, tagschema.KindFraction:
			_ = endian.WriteF32(slot, 0, float32(inst.Values[i].(float64)))
		case tagschema.KindString:
			_ = (endian.FixedString{Len: f.StringLen}).Write(slot, 0, inst.Values[i].(string))
		case tagschema.KindDependency:
			dep := inst.Values[i].(tagschema.Dependency)
			copy(slot[0:4], padFourCC(dep.Class))
			pathBytes := []byte(dep.Path)
			if len(pathBytes) > 0 {
				ptr := basePointer + uint32(len(payload))
				_ = endian.WriteU32(slot, 4, ptr)
				payload = append(payload, pathBytes...)
			}
			_ = endian.WriteU32(slot, 8, uint32(len(pathBytes)))
			_ = endian.WriteU32(slot, 12, tagschema.NullTagID) // write dependencies with the unresolved (null) tag id
		case tagschema.KindReflexive:
			elems := inst.Values[i].([]tagschema.Instance)
			_ = endian.WriteU32(slot, 0, uint32(len(elems)))
			if len(elems) > 0 {
				elemSize := structSize(f.Element)
				arrayStart := len(payload)
				ptr := basePointer + uint32(arrayStart)
				_ = endian.WriteU32(slot, 4, ptr)

				// Reserve the contiguous count*elemSize array up front so
				// nested reflexives/data within an element append *after*
				// the whole array, preserving depth-first write order.
				payload = append(payload, make([]byte, elemSize*len(elems))...)
				for j := range elems {
					elemBytes, newPayload := writeInstance(&elems[j], payload)
					payload = newPayload
					copy(payload[arrayStart+j*elemSize:arrayStart+(j+1)*elemSize], elemBytes)
				}
			} else {
				_ = endian.WriteU32(slot, 4, 0)
			}
			_ = endian.WriteU32(slot, 8, 0) // "unknown", always 0 when compiled
		case tagschema.KindData, tagschema.KindTagDataOffset:
			blob := inst.Values[i].([]byte)
			_ = endian.WriteU32(slot, 0, uint32(len(blob)))
			if len(blob) > 0 {
				ptr := basePointer + uint32(len(payload))
				_ = endian.WriteU32(slot, 4, ptr)
				payload = append(payload, blob...)
			} else {
				_ = endian.WriteU32(slot, 4, 0)
			}
		default:
			raw := inst.Values[i].([]byte)
			copy(slot, raw)
		}
		off += w
	}
	return root, payload
}
