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

package config

import "fmt"

// Axis identifies which signed source coordinate axis maps onto a
// destination axis.
type Axis struct {
	Source int // 0=x, 1=y, 2=z
	Negate bool
}

// CompiledCoordMap is one axis-list (either the 2d or 3d declaration)
// parsed into a fast-to-apply axis list.
type CompiledCoordMap struct {
	Axes []Axis
}

// CompiledCoordMaps holds both axis maps a project may declare. Either may
// be nil if the project never uses coordinates of that length.
type CompiledCoordMaps struct {
	TwoD   *CompiledCoordMap
	ThreeD *CompiledCoordMap
}

var axisIndex = map[string]int{"x": 0, "y": 1, "z": 2}

// compileAxisList parses an axis-name list like ["x", "y", "z"] or
// ["x", "-z"] into a CompiledCoordMap with exactly wantLen axes.
func compileAxisList(axes []string, wantLen int) (*CompiledCoordMap, error) {
	if len(axes) != wantLen {
		return nil, fmt.Errorf("coord-map expects %d axes, got %d", wantLen, len(axes))
	}
	out := make([]Axis, len(axes))
	for i, raw := range axes {
		negate := false
		name := raw
		if len(name) > 0 && name[0] == '-' {
			negate = true
			name = name[1:]
		}
		src, ok := axisIndex[name]
		if !ok {
			return nil, fmt.Errorf("invalid coord-map axis '%s'", raw)
		}
		out[i] = Axis{Source: src, Negate: negate}
	}
	return &CompiledCoordMap{Axes: out}, nil
}

// CompileCoordMaps compiles whichever of the 2d/3d axis lists the project
// declared. An empty axis list leaves the corresponding map nil (the
// project simply never uses coordinates of that length).
func CompileCoordMaps(cfg CoordMapConfig) (*CompiledCoordMaps, error) {
	out := &CompiledCoordMaps{}
	if len(cfg.TwoD) > 0 {
		m, err := compileAxisList(cfg.TwoD, 2)
		if err != nil {
			return nil, fmt.Errorf("coord-map.2d: %w", err)
		}
		out.TwoD = m
	}
	if len(cfg.ThreeD) > 0 {
		m, err := compileAxisList(cfg.ThreeD, 3)
		if err != nil {
			return nil, fmt.Errorf("coord-map.3d: %w", err)
		}
		out.ThreeD = m
	}
	return out, nil
}

// Apply maps a 3D in-game coordinate onto the destination coordinate
// space, returning as many values as the map has axes (2 or 3).
func (c *CompiledCoordMap) Apply(x, y, z float64) []float64 {
	source := [3]float64{x, y, z}
	out := make([]float64, len(c.Axes))
	for i, a := range c.Axes {
		v := source[a.Source]
		if a.Negate {
			v = -v
		}
		out[i] = v
	}
	return out
}
