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

package comp

import (
	"fmt"

	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const movementDiagSource = "movement"

// coordFromAxes scatters a coord-map-shaped input (one value per declared
// axis, e.g. 2 values for a 2D coord-map of "x|-z") into a full 3D
// game-space coordinate, defaulting unnamed axes to 0 and undoing each
// axis's declared negation.
func coordFromAxes(cm *config.CompiledCoordMap, values []float64) ([3]float64, error) {
	if len(values) != len(cm.Axes) {
		return [3]float64{}, fmt.Errorf("expected %d coordinate values, got %d", len(cm.Axes), len(values))
	}
	var out [3]float64
	for i, axis := range cm.Axes {
		v := values[i]
		if axis.Negate {
			v = -v
		}
		out[axis.Source] = v
	}
	return out, nil
}

// parseMovementCoord dispatches on the input length to the 2D or 3D
// coord-map, as the route document does not declare which map it means.
func parseMovementCoord(cfg *config.CompiledCoordMaps, values []float64) ([3]float64, error) {
	switch len(values) {
	case 2:
		if cfg.TwoD == nil {
			return [3]float64{}, fmt.Errorf("no 2D coord-map configured for a 2-element coordinate")
		}
		return coordFromAxes(cfg.TwoD, values)
	case 3:
		if cfg.ThreeD == nil {
			return [3]float64{}, fmt.Errorf("no 3D coord-map configured for a 3-element coordinate")
		}
		return coordFromAxes(cfg.ThreeD, values)
	default:
		return [3]float64{}, fmt.Errorf("coordinate must have 2 or 3 elements, got %d", len(values))
	}
}

// coordStack tracks, while walking a line's movements, which movement
// index currently "owns" the line's tail position (line.MapCoord). Push
// duplicates the top index; Pop drops it (never below the implicit
// below-bottom sentinel, matching the map-section builder's own
// never-empty invariant); To updates (or creates) the top entry.
type coordStack struct {
	stack []int // indices into the movement list
}

func (s *coordStack) to(movementIndex int) {
	if len(s.stack) == 0 {
		s.stack = append(s.stack, movementIndex)
		return
	}
	s.stack[len(s.stack)-1] = movementIndex
}

func (s *coordStack) push() {
	if len(s.stack) == 0 {
		return
	}
	s.stack = append(s.stack, s.stack[len(s.stack)-1])
}

func (s *coordStack) pop() {
	if len(s.stack) == 0 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// top returns the movement index that should set the line's tail
// position, or -1 if no To has been recorded.
func (s *coordStack) top() int {
	if len(s.stack) == 0 {
		return -1
	}
	return s.stack[len(s.stack)-1]
}

// applyMovements parses a line's `movements` array into Movement values,
// tracking the coord stack to determine which one (if any) sets the
// line's tail map_coord. Movements with exclude=true still produce a
// Movement (for the map-section builder) but are not tracked by the
// stack, per the line-tail-position open point.
func applyMovements(coordMaps *config.CompiledCoordMaps, arr []interface{}, line *CompLine) ([]Movement, *[3]float64) {
	out := make([]Movement, 0, len(arr))
	stack := &coordStack{}
	for _, raw := range arr {
		switch v := raw.(type) {
		case string:
			switch v {
			case "push":
				out = append(out, Movement{Kind: MovementPush})
				stack.push()
			case "pop":
				out = append(out, Movement{Kind: MovementPop})
				stack.pop()
			default:
				line.Diagnostics = append(line.Diagnostics, errorDiag(movementDiagSource, fmt.Sprintf("invalid movement string '%s'", v)))
			}
		case []interface{}:
			m, ok := parseToMovement(coordMaps, v, line)
			if !ok {
				continue
			}
			out = append(out, m)
			if !m.Exclude {
				stack.to(len(out) - 1)
			}
		case map[string]interface{}:
			to, ok := v["to"].([]interface{})
			if !ok {
				line.Diagnostics = append(line.Diagnostics, errorDiag(movementDiagSource, "movement object missing 'to'"))
				continue
			}
			m, ok := parseToMovement(coordMaps, to, line)
			if !ok {
				continue
			}
			if warp, ok := v["warp"]; ok {
				b, _ := util.CoerceBool(warp)
				m.Warp = b
			}
			if exclude, ok := v["exclude"]; ok {
				b, _ := util.CoerceBool(exclude)
				m.Exclude = b
			}
			if color, ok := v["color"]; ok {
				m.Color = util.Ref(util.CoerceString(color))
			}
			if icon, ok := v["icon"]; ok {
				m.Icon = util.Ref(util.CoerceString(icon))
			}
			out = append(out, m)
			if !m.Exclude {
				stack.to(len(out) - 1)
			}
		default:
			line.Diagnostics = append(line.Diagnostics, errorDiag(movementDiagSource, "invalid movement entry"))
		}
	}
	top := stack.top()
	if top < 0 {
		return out, nil
	}
	coord := out[top].Coord
	return out, &coord
}

func parseToMovement(coordMaps *config.CompiledCoordMaps, raw []interface{}, line *CompLine) (Movement, bool) {
	values := make([]float64, len(raw))
	for i, v := range raw {
		f, _ := util.CoerceFloat64(v)
		values[i] = f
	}
	coord, err := parseMovementCoord(coordMaps, values)
	if err != nil {
		line.Diagnostics = append(line.Diagnostics, errorDiag(movementDiagSource, err.Error()))
		return Movement{}, false
	}
	return Movement{Kind: MovementTo, Coord: coord}, true
}
