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

import "github.com/ashforge/strata/internal/tagschema"

// fieldSize returns the inline, on-disk byte width of a field's slot.
// Reflexive and Data fields reserve a fixed-size reference record here;
// their variable-length payload is appended depth-first in the file's
// payload region.
func fieldSize(f tagschema.FieldSchema) int {
	switch f.Kind {
	case tagschema.KindInt8, tagschema.KindUint8:
		return 1
	case tagschema.KindInt16, tagschema.KindUint16, tagschema.KindIndex, tagschema.KindEnum:
		return 2
	case tagschema.KindInt32, tagschema.KindUint32, tagschema.KindFloat,
		tagschema.KindAngle, tagschema.KindFraction, tagschema.KindBitmask:
		return 4
	case tagschema.KindString:
		return f.StringLen
	case tagschema.KindColorARGBInt:
		return 4
	case tagschema.KindColorRGBInt:
		return 3
	case tagschema.KindColorARGBFloat:
		return 16
	case tagschema.KindColorRGBFloat:
		return 12
	case tagschema.KindPoint2D, tagschema.KindVector2D, tagschema.KindEuler2D:
		return 8
	case tagschema.KindPoint3D, tagschema.KindVector3D, tagschema.KindEuler3D:
		return 12
	case tagschema.KindPlane2D:
		return 12
	case tagschema.KindPlane3D:
		return 16
	case tagschema.KindQuaternion:
		return 16
	case tagschema.KindMatrix3x3:
		return 36
	case tagschema.KindRectangle:
		return 8
	case tagschema.KindBounds:
		return 8
	case tagschema.KindDependency:
		return 16 // FourCC(4) + path pointer(4) + path size(4) + tag id(4)
	case tagschema.KindReflexive:
		return 12 // count(4) + pointer(4) + unknown(4), per Invader's TagReflexive
	case tagschema.KindData, tagschema.KindTagDataOffset:
		return 8 // size(4) + pointer(4)
	default:
		return 0
	}
}

// structSize returns the total inline size of an instance of schema,
// excluding appended reflexive/data payloads.
func structSize(schema *tagschema.Schema) int {
	n := 0
	for _, f := range schema.Fields {
		n += fieldSize(f)
	}
	return n
}
