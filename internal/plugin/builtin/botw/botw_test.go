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

package botw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pistonite/celer-sub000/internal/comp"
)

func newProps(min, max [3]float64, order string) map[string]interface{} {
	return map[string]interface{}{
		"min":        []interface{}{min[0], min[1], min[2]},
		"max":        []interface{}{max[0], max[1], max[2]},
		"axis-order": order,
	}
}

func TestTagsLineInsideBox(t *testing.T) {
	p := New()
	diags := p.OnBeforeCompile(context.Background(), newProps([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, "xyz"))
	require.Empty(t, diags)

	coord := [3]float64{5, 5, 5}
	doc := &comp.CompDoc{
		KnownProperties: map[string]bool{},
		Route: []comp.CompSection{{Lines: []comp.CompLine{{MapCoord: &coord, Properties: map[string]interface{}{}}}}},
	}
	p.OnAfterCompile(context.Background(), nil, doc)
	assert.Equal(t, true, doc.Route[0].Lines[0].Properties[propTag])
}

func TestDoesNotTagLineOutsideBox(t *testing.T) {
	p := New()
	p.OnBeforeCompile(context.Background(), newProps([3]float64{0, 0, 0}, [3]float64{10, 10, 10}, "xyz"))

	coord := [3]float64{50, 5, 5}
	doc := &comp.CompDoc{
		KnownProperties: map[string]bool{},
		Route: []comp.CompSection{{Lines: []comp.CompLine{{MapCoord: &coord, Properties: map[string]interface{}{}}}}},
	}
	p.OnAfterCompile(context.Background(), nil, doc)
	_, tagged := doc.Route[0].Lines[0].Properties[propTag]
	assert.False(t, tagged)
}

func TestAxisOrderIsConfigurable(t *testing.T) {
	p := New()
	// box is narrow in its 3rd slot (max 1) but coord's z-game-coord is 5;
	// with axis-order "xzy" the box's 2nd slot compares against coord[2] (z)
	// and its 3rd slot against coord[1] (y), so the coord is inside.
	p.OnBeforeCompile(context.Background(), newProps([3]float64{0, 0, 0}, [3]float64{10, 10, 1}, "xzy"))

	coord := [3]float64{5, 0.5, 5}
	doc := &comp.CompDoc{
		KnownProperties: map[string]bool{},
		Route: []comp.CompSection{{Lines: []comp.CompLine{{MapCoord: &coord, Properties: map[string]interface{}{}}}}},
	}
	p.OnAfterCompile(context.Background(), nil, doc)
	assert.Equal(t, true, doc.Route[0].Lines[0].Properties[propTag])
}

func TestInvalidAxisOrderProducesDiagnostic(t *testing.T) {
	p := New()
	diags := p.OnBeforeCompile(context.Background(), newProps([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, "xxz"))
	require.NotEmpty(t, diags)
}

func TestDisabledWithoutBoxConfigured(t *testing.T) {
	p := New()
	p.OnBeforeCompile(context.Background(), map[string]interface{}{})
	coord := [3]float64{0, 0, 0}
	doc := &comp.CompDoc{
		KnownProperties: map[string]bool{},
		Route: []comp.CompSection{{Lines: []comp.CompLine{{MapCoord: &coord, Properties: map[string]interface{}{}}}}},
	}
	p.OnAfterCompile(context.Background(), nil, doc)
	_, tagged := doc.Route[0].Lines[0].Properties[propTag]
	assert.False(t, tagged)
}
