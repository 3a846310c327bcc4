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

package tagschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashforge/strata/internal/tagschema"
)

var windowEnum = &tagschema.EnumDomain{Names: []string{"none", "additive", "multiply"}}

var childSchema = &tagschema.Schema{
	Name: "point",
	Fields: []tagschema.FieldSchema{
		{Name: "x", Kind: tagschema.KindFloat},
		{Name: "y", Kind: tagschema.KindFloat},
	},
}

var rootSchema = &tagschema.Schema{
	Name: "widget",
	Fields: []tagschema.FieldSchema{
		{Name: "count", Kind: tagschema.KindInt16},
		{Name: "blend_mode", Kind: tagschema.KindEnum, Domain: windowEnum},
		{Name: "heading", Kind: tagschema.KindAngle},
		{Name: "points", Kind: tagschema.KindReflexive, Element: childSchema},
		{Name: "payload", Kind: tagschema.KindData},
		{Name: "reference", Kind: tagschema.KindDependency, DependencyClass: "bitm"},
	},
}

func TestNewInstanceZeroValues(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	handles := tagschema.Handles(inst)
	require.Len(t, handles, 6)

	countHandle := handles[0]
	require.Equal(t, "count", countHandle.Name())
	v, err := countHandle.Get(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)

	pointsHandle := handles[3]
	require.Equal(t, tagschema.KindReflexive, pointsHandle.Kind())
	require.Equal(t, 0, pointsHandle.Count())
	require.Same(t, childSchema, pointsHandle.ChildSchema())

	depHandle := handles[5]
	dv, err := depHandle.Get(0)
	require.NoError(t, err)
	dep := dv.(tagschema.Dependency)
	require.Equal(t, uint32(tagschema.NullTagID), dep.TagID)
}

func TestValueHandleSetGetScalar(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	h := tagschema.Handles(inst)[0]

	require.NoError(t, h.Set(0, int64(42)))
	v, err := h.Get(0)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestValueHandleEnumDomain(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	h := tagschema.Handles(inst)[1]

	require.Same(t, windowEnum, h.Domain())
	require.NoError(t, h.Set(0, int64(2)))
	v, err := h.Get(0)
	require.NoError(t, err)
	require.Equal(t, windowEnum.Names[2], windowEnum.Names[v.(int64)])
}

func TestValueHandleAngleDisplayMultiplier(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	h := tagschema.Handles(inst)[2]
	require.InDelta(t, tagschema.RadiansToDegrees, h.DisplayMultiplier(), 1e-9)
}

func TestValueHandleReflexiveAppendAndIndex(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	h := tagschema.Handles(inst)[3]

	child := tagschema.NewInstance(childSchema)
	inst.Values[3] = append(inst.Values[3].([]tagschema.Instance), *child)
	require.Equal(t, 1, h.Count())

	v, err := h.Get(0)
	require.NoError(t, err)
	_, ok := v.(tagschema.Instance)
	require.True(t, ok)

	_, err = h.Get(1)
	require.Error(t, err)
}

func TestValueHandleDataBlob(t *testing.T) {
	inst := tagschema.NewInstance(rootSchema)
	h := tagschema.Handles(inst)[4]

	inst.Values[4] = []byte{1, 2, 3}
	require.Equal(t, 3, h.Count())

	require.NoError(t, h.Set(1, byte(0xFF)))
	v, err := h.Get(1)
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), v)
}
