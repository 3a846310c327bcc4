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

// Package tagschema is the reflective description of each tag structure:
// fields, types, bounds, enum/bitmask domains, variable arrays
// ("reflexives"), external references ("dependencies"), and raw data
// blocks. It is the sole path by which editors, comparators, converters,
// and dumpers access tag contents.
package tagschema

import "math"

// Kind enumerates the tag value sum type.
type Kind int

const (
	KindInt8 Kind = iota
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat
	KindAngle     // stored in radians, displayed in degrees
	KindFraction  // 0..1
	KindIndex     // 16-bit nullable
	KindEnum
	KindBitmask
	KindString    // fixed-length
	KindColorARGBFloat
	KindColorRGBFloat
	KindColorARGBInt
	KindColorRGBInt
	KindPoint2D
	KindPoint3D
	KindVector2D
	KindVector3D
	KindEuler2D
	KindEuler3D
	KindPlane2D
	KindPlane3D
	KindQuaternion
	KindMatrix3x3
	KindRectangle
	KindBounds
	KindDependency
	KindReflexive
	KindData
	KindTagDataOffset
)

// NullIndex is the sentinel for an absent 16-bit index.
const NullIndex = 0xFFFF

// NullTagID marks an unresolved dependency.
const NullTagID = 0xFFFFFFFF

// RadiansToDegrees is the angle value handle's display multiplier.
const RadiansToDegrees = 180 / math.Pi

// NumberFormat hints whether a value handle's Get/Set operate on floats or
// integers, independent of its Kind (e.g. Angle is a float stored in
// radians but rendered as degrees).
type NumberFormat int

const (
	NumberFloat NumberFormat = iota
	NumberInt
)

// EnumDomain names the legal values of an enum or bitmask field.
type EnumDomain struct {
	Names []string
}

// FieldSchema describes one named field of a Schema.
type FieldSchema struct {
	Name   string
	Kind   Kind
	Domain *EnumDomain // set for KindEnum / KindBitmask

	// StringLen is the fixed length for KindString fields.
	StringLen int

	// Element is the per-element schema for KindReflexive fields.
	Element *Schema

	// DependencyClass constrains the tag class a KindDependency field may
	// reference; empty means unconstrained.
	DependencyClass string
}

// Schema describes a tag class (or a reflexive element type) as an ordered
// sequence of named fields.
type Schema struct {
	Name   string
	Fields []FieldSchema
}

// NumberFormat returns the display hint for a field kind.
func (k Kind) NumberFormat() NumberFormat {
	switch k {
	case KindFloat, KindAngle, KindFraction,
		KindColorARGBFloat, KindColorRGBFloat,
		KindPoint2D, KindPoint3D, KindVector2D, KindVector3D,
		KindEuler2D, KindEuler3D, KindPlane2D, KindPlane3D,
		KindQuaternion, KindMatrix3x3, KindRectangle, KindBounds:
		return NumberFloat
	default:
		return NumberInt
	}
}

// DisplayMultiplier returns the value handle's display multiplier for the
// given kind: 180/π for angles, 1 for everything else.
func (k Kind) DisplayMultiplier() float64 {
	if k == KindAngle {
		return RadiansToDegrees
	}
	return 1
}
