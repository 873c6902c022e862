// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routeblob

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pistonite/celer-sub000/internal/res"
)

// fakeLoader resolves resource paths straight out of an in-memory map,
// keyed by Path.Path, standing in for res.FileLoader in these tests.
type fakeLoader map[string][]byte

func (f fakeLoader) Load(_ context.Context, p res.Path) ([]byte, error) {
	data, ok := f[p.Path]
	if !ok {
		return nil, fmt.Errorf("no such resource: %s", p.Path)
	}
	return data, nil
}

func TestPackRouteObjectUseSplice(t *testing.T) {
	loader := fakeLoader{
		"sub.yaml": []byte("hello: world\n"),
	}
	root := map[string]interface{}{
		"a": map[string]interface{}{"use": "./sub.yaml"},
	}
	blob := PackRoute(context.Background(), loader, res.Path{Path: "route.yaml"}, root)
	require.False(t, blob.HasError())
	inner, ok := blob.Object["a"].Object["hello"]
	require.True(t, ok)
	assert.Equal(t, "world", inner.Prim)
}

func TestPackRouteArrayUseSpliceFlattens(t *testing.T) {
	loader := fakeLoader{
		"list.yaml": []byte("- 1\n- 2\n- 3\n"),
	}
	root := []interface{}{
		"a",
		map[string]interface{}{"use": "./list.yaml"},
		"b",
	}
	blob := PackRoute(context.Background(), loader, res.Path{Path: "route.yaml"}, root)
	require.False(t, blob.HasError())
	require.Len(t, blob.Array, 5)
	assert.Equal(t, "a", blob.Array[0].Prim)
	assert.Equal(t, 1, blob.Array[1].Prim)
	assert.Equal(t, 2, blob.Array[2].Prim)
	assert.Equal(t, 3, blob.Array[3].Prim)
	assert.Equal(t, "b", blob.Array[4].Prim)
}

func TestPackRouteRelativeUseResolvesAgainstCurrentFile(t *testing.T) {
	loader := fakeLoader{
		"dir/sub.yaml":  []byte("use: ./leaf.yaml\n"),
		"dir/leaf.yaml": []byte("value: 42\n"),
	}
	root := map[string]interface{}{"use": "./sub.yaml"}
	blob := PackRoute(context.Background(), loader, res.Path{Path: "dir/route.yaml"}, root)
	require.False(t, blob.HasError())
	v, ok := blob.Object["value"]
	require.True(t, ok)
	assert.Equal(t, 42, v.Prim)
}

func TestPackRouteInvalidUseValueIsErrAsData(t *testing.T) {
	root := map[string]interface{}{"use": 123}
	blob := PackRoute(context.Background(), fakeLoader{}, res.Path{Path: "route.yaml"}, root)
	require.True(t, blob.HasError())
	require.Len(t, blob.Errors(), 1)
	assert.Contains(t, blob.Errors()[0], "use value must be a string")
}

func TestPackRouteInvalidUseReferenceIsErrAsData(t *testing.T) {
	root := map[string]interface{}{"use": "not a valid use string/"}
	blob := PackRoute(context.Background(), fakeLoader{}, res.Path{Path: "route.yaml"}, root)
	require.True(t, blob.HasError())
	require.Len(t, blob.Errors(), 1)
	assert.Contains(t, blob.Errors()[0], "invalid use reference")
}

func TestPackRouteMissingResourceIsErrAsData(t *testing.T) {
	root := map[string]interface{}{"use": "./missing.yaml"}
	blob := PackRoute(context.Background(), fakeLoader{}, res.Path{Path: "route.yaml"}, root)
	require.True(t, blob.HasError())
	assert.Contains(t, blob.Errors()[0], "failed to load")
}

// TestPackRouteMaxUseDepthExceeded chains nine `use` hops through
// DefaultMaxUseDepth (8): the root document uses lvl1, lvl1 uses lvl2, ...,
// lvl8 uses lvl9. The ninth hop is rejected before lvl9 is ever loaded.
func TestPackRouteMaxUseDepthExceeded(t *testing.T) {
	loader := fakeLoader{}
	for i := 1; i <= 7; i++ {
		loader[fmt.Sprintf("lvl%d.yaml", i)] = []byte(fmt.Sprintf("use: ./lvl%d.yaml\n", i+1))
	}
	loader["lvl8.yaml"] = []byte("use: ./lvl9.yaml\n")

	root := map[string]interface{}{"use": "./lvl1.yaml"}
	blob := PackRoute(context.Background(), loader, res.Path{Path: "route.yaml"}, root)
	require.True(t, blob.HasError())
	require.Len(t, blob.Errors(), 1)
	assert.Contains(t, blob.Errors()[0], "max use depth exceeded")
}

func TestPackRouteWithinMaxUseDepthSucceeds(t *testing.T) {
	loader := fakeLoader{}
	for i := 1; i <= 6; i++ {
		loader[fmt.Sprintf("lvl%d.yaml", i)] = []byte(fmt.Sprintf("use: ./lvl%d.yaml\n", i+1))
	}
	loader["lvl7.yaml"] = []byte("leaf: true\n")

	root := map[string]interface{}{"use": "./lvl1.yaml"}
	blob := PackRoute(context.Background(), loader, res.Path{Path: "route.yaml"}, root)
	require.False(t, blob.HasError())
	v, ok := blob.Object["leaf"]
	require.True(t, ok)
	assert.Equal(t, true, v.Prim)
}

// buildNestedObject builds a chain of depth single-key maps, with leaf as
// the innermost primitive value, to exercise RefDepth (structural nesting
// within a single document, independent of UseDepth).
func buildNestedObject(depth int, leaf interface{}) interface{} {
	v := leaf
	for i := 0; i < depth; i++ {
		v = map[string]interface{}{"next": v}
	}
	return v
}

func TestPackRouteMaxRefDepthExceeded(t *testing.T) {
	nested := buildNestedObject(DefaultMaxRefDepth+4, "leaf")
	blob := PackRoute(context.Background(), fakeLoader{}, res.Path{Path: "route.yaml"}, nested)
	require.True(t, blob.HasError())
	found := false
	for _, msg := range blob.Errors() {
		if msg == "max reference depth exceeded while packing route" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPackRouteWithinMaxRefDepthSucceeds(t *testing.T) {
	nested := buildNestedObject(DefaultMaxRefDepth-4, "leaf")
	blob := PackRoute(context.Background(), fakeLoader{}, res.Path{Path: "route.yaml"}, nested)
	assert.False(t, blob.HasError())
}
