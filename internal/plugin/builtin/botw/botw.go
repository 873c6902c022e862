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

// Package botw implements the built-in `botw-ability` plugin: attaches a
// "castle interior" marker tag to lines whose movement coordinates fall
// inside a configured bounding box.
//
// The coordinate axis order a line's map_coord is compared against is left
// to the `axis-order` prop (defaulting to "xyz") rather than hard-coded,
// since the behavior this plugin is modeled on disagreed with itself
// between "xyz" and "xzy" across revisions. Callers that need to match a
// specific upstream ruleset should set axis-order explicitly.
package botw

import (
	"context"

	"github.com/Pistonite/celer-sub000/internal/comp"
)

const propTag = "castle-interior"

// bounds is an axis-aligned box in whatever order axis-order names.
type bounds struct {
	min [3]float64
	max [3]float64
}

// Plugin is the `builtin:botw-ability` definition.
type Plugin struct {
	axisOrder [3]int // indices into a line's map_coord, in (a,b,c) comparison order
	box       bounds
	enabled   bool
}

func New() *Plugin {
	return &Plugin{axisOrder: [3]int{0, 1, 2}}
}

func (p *Plugin) Uri() string         { return "builtin:botw-ability" }
func (p *Plugin) Description() string { return "tags lines inside a configured castle bounding box" }

func (p *Plugin) OnBeforeCompile(ctx context.Context, props map[string]interface{}) []comp.Diagnostic {
	var diags []comp.Diagnostic
	order, ok := props["axis-order"].(string)
	if !ok {
		order = "xyz"
	}
	axes, ok := parseAxisOrder(order)
	if !ok {
		diags = append(diags, comp.Diagnostic{Type: "error", Message: "axis-order must be a permutation of x, y, z"})
		return diags
	}
	p.axisOrder = axes

	min, minOk := coordFrom(props["min"])
	max, maxOk := coordFrom(props["max"])
	if minOk && maxOk {
		p.box = bounds{min: min, max: max}
		p.enabled = true
	}
	return diags
}

func (p *Plugin) OnAfterCompile(ctx context.Context, props map[string]interface{}, doc *comp.CompDoc) []comp.Diagnostic {
	if !p.enabled {
		return nil
	}
	doc.KnownProperties[propTag] = true
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			line := &doc.Route[si].Lines[li]
			if line.MapCoord == nil {
				continue
			}
			if p.isInCastle(*line.MapCoord) {
				if line.Properties == nil {
					line.Properties = map[string]interface{}{}
				}
				line.Properties[propTag] = true
			}
		}
	}
	return nil
}

// isInCastle compares coord against the configured box in axis-order
// order; this is the ambiguous comparison the plugin's upstream never
// pinned down between (x,y,z) and (x,z,y) framings, so the order is
// configurable rather than assumed.
func (p *Plugin) isInCastle(coord [3]float64) bool {
	for i, axis := range p.axisOrder {
		v := coord[axis]
		if v < p.box.min[i] || v > p.box.max[i] {
			return false
		}
	}
	return true
}

func parseAxisOrder(s string) ([3]int, bool) {
	var out [3]int
	if len(s) != 3 {
		return out, false
	}
	seen := map[rune]int{'x': 0, 'y': 1, 'z': 2}
	used := [3]bool{}
	for i, r := range s {
		idx, ok := seen[r]
		if !ok || used[idx] {
			return out, false
		}
		used[idx] = true
		out[i] = idx
	}
	return out, true
}

func coordFrom(raw interface{}) ([3]float64, bool) {
	var out [3]float64
	arr, ok := raw.([]interface{})
	if !ok || len(arr) != 3 {
		return out, false
	}
	for i, v := range arr {
		f, ok := toFloat(v)
		if !ok {
			return out, false
		}
		out[i] = f
	}
	return out, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
