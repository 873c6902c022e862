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

package exec

import "github.com/Pistonite/celer-sub000/internal/comp"

// MapLine is one committed (or in-progress) polyline segment of a single
// color.
type MapLine struct {
	Color  string       `json:"color"`
	Points [][3]float64 `json:"points"`
}

// MapIconRef places an icon at a specific line within a section.
type MapIconRef struct {
	LineIndex int    `json:"line-index"`
	Icon      string `json:"icon"`
	Priority  int    `json:"priority"`
}

// MapMarkerRef places a marker at a specific line within a section.
type MapMarkerRef struct {
	LineIndex int        `json:"line-index"`
	Coord     [3]float64 `json:"coord"`
	Color     string     `json:"color"`
}

// MapSection is the built map geometry for one CompSection.
type MapSection struct {
	Lines   []MapLine      `json:"lines"`
	Icons   []MapIconRef   `json:"icons"`
	Markers []MapMarkerRef `json:"markers"`
}

// mapBuilder accumulates MapLines across a whole document: the stack
// invariant (>=1 element) and commit rules hold across section
// boundaries too, so a path drawn in one section continues visually into
// the next (buildSection leaves the top as a single point under the same
// color).
type mapBuilder struct {
	stack   []MapLine
	lines   []MapLine
	icons   []MapIconRef
	markers []MapMarkerRef
}

func newMapBuilder(initialColor string) *mapBuilder {
	return &mapBuilder{stack: []MapLine{{Color: initialColor}}}
}

func (b *mapBuilder) top() *MapLine {
	return &b.stack[len(b.stack)-1]
}

func (b *mapBuilder) moveTo(c [3]float64) {
	top := b.top()
	top.Points = append(top.Points, c)
}

func (b *mapBuilder) changeColor(c string) {
	top := b.top()
	if top.Color == c {
		return
	}
	if len(top.Points) >= 2 {
		b.commitTop()
	}
	last := b.lastPoint()
	b.stack[len(b.stack)-1] = MapLine{Color: c, Points: pointsOrEmpty(last)}
}

func (b *mapBuilder) warpTo(c [3]float64) {
	top := b.top()
	if len(top.Points) >= 2 {
		b.commitTop()
	}
	color := top.Color
	b.stack[len(b.stack)-1] = MapLine{Color: color, Points: [][3]float64{c}}
}

func (b *mapBuilder) push() {
	top := *b.top()
	dup := MapLine{Color: top.Color, Points: pointsOrEmpty(b.lastPoint())}
	b.stack = append(b.stack, dup)
}

func (b *mapBuilder) pop() {
	if len(b.stack) <= 1 {
		return
	}
	b.commitTop()
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *mapBuilder) commitTop() {
	top := *b.top()
	if len(top.Points) >= 2 {
		b.lines = append(b.lines, top)
	}
}

func (b *mapBuilder) lastPoint() *[3]float64 {
	top := b.top()
	if len(top.Points) == 0 {
		return nil
	}
	p := top.Points[len(top.Points)-1]
	return &p
}

func pointsOrEmpty(p *[3]float64) [][3]float64 {
	if p == nil {
		return nil
	}
	return [][3]float64{*p}
}

// buildSection commits the in-progress line, moves out lines/icons/
// markers as a MapSection, and leaves the stack's top as a single point
// under the same color so the next section's path continues visually.
func (b *mapBuilder) buildSection() MapSection {
	top := *b.top()
	b.commitTop()
	out := MapSection{Lines: b.lines, Icons: b.icons, Markers: b.markers}
	b.lines = nil
	b.icons = nil
	b.markers = nil
	b.stack[len(b.stack)-1] = MapLine{Color: top.Color, Points: pointsOrEmpty(b.lastPoint())}
	return out
}

// applyMovements feeds one line's movements and markers into the builder,
// attaching icon/marker references at lineIndex.
func (b *mapBuilder) applyMovements(lineIndex int, line comp.CompLine) {
	for _, m := range line.Movements {
		switch m.Kind {
		case comp.MovementPush:
			b.push()
		case comp.MovementPop:
			b.pop()
		default:
			if m.Color != nil {
				b.changeColor(*m.Color)
			}
			if m.Warp {
				b.warpTo(m.Coord)
			} else {
				b.moveTo(m.Coord)
			}
			if m.Icon != nil {
				b.icons = append(b.icons, MapIconRef{LineIndex: lineIndex, Icon: *m.Icon})
			}
		}
	}
	for _, mk := range line.Markers {
		color := b.top().Color
		if mk.Color != nil {
			color = *mk.Color
		}
		b.markers = append(b.markers, MapMarkerRef{LineIndex: lineIndex, Coord: mk.Coord, Color: color})
	}
	if line.MapIcon != nil && line.MapIcon.Map != "" {
		b.icons = append(b.icons, MapIconRef{LineIndex: lineIndex, Icon: line.MapIcon.Map, Priority: line.MapIcon.Priority})
	}
}
