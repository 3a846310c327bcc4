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

package tagschema

import "github.com/pkg/errors"

// Instance is a parsed tag structure: a Schema plus the raw field values in
// declaration order. Reflexive fields hold a []Instance; Data fields hold
// []byte; Dependency fields hold a Dependency; String fields hold a string.
// NewInstance gives every other field a scalar Go value (float64 or int64)
// chosen per Kind.NumberFormat; tagfile.Read does the same for plain
// numbers but carries fixed-size aggregates (colors, points, vectors,
// planes, quaternions, matrices, rectangles, bounds) and tag-data offsets
// as raw []byte.
type Instance struct {
	Schema *Schema
	Values []interface{}
}

// Dependency is a typed cross-tag reference by engine-style path.
type Dependency struct {
	Class string
	Path  string
	TagID uint32 // NullTagID when unresolved
}

// NewInstance allocates an Instance with zero-valued fields for schema.
func NewInstance(schema *Schema) *Instance {
	inst := &Instance{Schema: schema, Values: make([]interface{}, len(schema.Fields))}
	for i, f := range schema.Fields {
		switch f.Kind {
		case KindReflexive:
			inst.Values[i] = []Instance{}
		case KindData:
			inst.Values[i] = []byte{}
		case KindDependency:
			inst.Values[i] = Dependency{TagID: NullTagID}
		case KindString:
			inst.Values[i] = ""
		default:
			if f.Kind.NumberFormat() == NumberFloat {
				inst.Values[i] = float64(0)
			} else {
				inst.Values[i] = int64(0)
			}
		}
	}
	return inst
}

// ValueHandle is the runtime's flattened view of one field: name, kind,
// count (for vector-like values), and Get/Set accessors. For containers it
// also exposes the child schema.
type ValueHandle struct {
	inst  *Instance
	index int
}

// Handles returns a flattened list of value handles for inst, one per
// declared field, in schema order.
func Handles(inst *Instance) []ValueHandle {
	hs := make([]ValueHandle, len(inst.Schema.Fields))
	for i := range inst.Schema.Fields {
		hs[i] = ValueHandle{inst: inst, index: i}
	}
	return hs
}

func (h ValueHandle) field() FieldSchema { return h.inst.Schema.Fields[h.index] }

// Name returns the field's schema name.
func (h ValueHandle) Name() string { return h.field().Name }

// Kind returns the field's value kind.
func (h ValueHandle) Kind() Kind { return h.field().Kind }

// NumberFormat reports whether Get/Set operate on floats or ints.
func (h ValueHandle) NumberFormat() NumberFormat { return h.field().Kind.NumberFormat() }

// DisplayMultiplier is 180/π for angle fields, 1 otherwise.
func (h ValueHandle) DisplayMultiplier() float64 { return h.field().Kind.DisplayMultiplier() }

// Count returns the number of addressable elements for vector-like values:
// reflexives report their element count, data blobs their byte length,
// everything else reports 1.
func (h ValueHandle) Count() int {
	switch v := h.inst.Values[h.index].(type) {
	case []Instance:
		return len(v)
	case []byte:
		return len(v)
	default:
		return 1
	}
}

// ChildSchema returns the element schema for a reflexive field, or nil.
func (h ValueHandle) ChildSchema() *Schema {
	return h.field().Element
}

// Domain returns the enum/bitmask name table for a field, or nil for any
// other kind.
func (h ValueHandle) Domain() *EnumDomain {
	return h.field().Domain
}

// Get returns the i-th addressable element of the field's value.
func (h ValueHandle) Get(i int) (interface{}, error) {
	switch v := h.inst.Values[h.index].(type) {
	case []Instance:
		if i < 0 || i >= len(v) {
			return nil, errors.Errorf("tagschema: index %d out of range for reflexive %q (count %d)", i, h.Name(), len(v))
		}
		return v[i], nil
	case []byte:
		if i < 0 || i >= len(v) {
			return nil, errors.Errorf("tagschema: index %d out of range for data %q (len %d)", i, h.Name(), len(v))
		}
		return v[i], nil
	default:
		if i != 0 {
			return nil, errors.Errorf("tagschema: scalar field %q has no index %d", h.Name(), i)
		}
		return v, nil
	}
}

// Set assigns the i-th addressable element of the field's value.
func (h ValueHandle) Set(i int, value interface{}) error {
	switch v := h.inst.Values[h.index].(type) {
	case []Instance:
		sub, ok := value.(Instance)
		if !ok {
			return errors.Errorf("tagschema: field %q expects an Instance element", h.Name())
		}
		if i < 0 || i >= len(v) {
			return errors.Errorf("tagschema: index %d out of range for reflexive %q (count %d)", i, h.Name(), len(v))
		}
		v[i] = sub
		return nil
	case []byte:
		b, ok := value.(byte)
		if !ok {
			return errors.Errorf("tagschema: field %q expects a byte element", h.Name())
		}
		if i < 0 || i >= len(v) {
			return errors.Errorf("tagschema: index %d out of range for data %q (len %d)", i, h.Name(), len(v))
		}
		v[i] = b
		return nil
	default:
		if i != 0 {
			return errors.Errorf("tagschema: scalar field %q has no index %d", h.Name(), i)
		}
		h.inst.Values[h.index] = value
		return nil
	}
}
