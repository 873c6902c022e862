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

// Package comp implements the compile phase: turning a tree of
// SafeRouteBlob values into a CompDoc of CompSections and CompLines, with
// presets expanded, movements tracked, and diagnostics attached at the
// nearest enclosing entity.
package comp

import "github.com/Pistonite/celer-sub000/internal/lang/rich"

// Diagnostic is an errors-as-data record attached to the nearest enclosing
// line, section, or doc - never a hard pipeline failure on its own.
type Diagnostic struct {
	Message string
	Type    string // "error", "warning", or a plugin-defined string
	Source  string
}

func errorDiag(source, message string) Diagnostic {
	return Diagnostic{Message: message, Type: "error", Source: source}
}

func warningDiag(source, message string) Diagnostic {
	return Diagnostic{Message: message, Type: "warning", Source: source}
}

// NoteKind distinguishes the few DocNote variants a line can carry.
type NoteKind int

const (
	NoteText NoteKind = iota
	NoteImage
	NoteVideo
)

// DocNote is a single note attached to a line.
type DocNote struct {
	Kind    NoteKind
	Content []rich.Block // rich text for NoteText
	Link    string       // url for NoteImage/NoteVideo
}

// Icon is a doc/map icon reference with an optional map priority.
type Icon struct {
	Doc      string
	Map      string
	Priority int
}

// Marker is a point of interest attached to a line, with color defaulting
// to the line's current color when unset.
type Marker struct {
	Coord [3]float64
	Color *string
}

// MovementKind distinguishes the three movement shapes a line can carry.
type MovementKind int

const (
	MovementTo MovementKind = iota
	MovementPush
	MovementPop
)

// Movement is one step of a line's path: a coordinate (To), or a stack
// operation (Push/Pop) used to branch and rejoin paths within a line.
type Movement struct {
	Kind    MovementKind
	Coord   [3]float64
	Warp    bool
	Exclude bool
	Color   *string
	Icon    *string
}

// CompLine is one compiled line of a route document.
type CompLine struct {
	Text       []rich.Block
	Comment    []rich.Block
	SplitName  []rich.Block
	Counter    *rich.Block
	Notes      []DocNote
	DocIcon    *string
	MapIcon    *Icon
	Markers    []Marker
	Movements  []Movement
	Color      *string
	MapCoord   *[3]float64
	Properties map[string]interface{}
	Diagnostics []Diagnostic
	Banner     bool
}

// CompSection is a named group of compiled lines.
type CompSection struct {
	Name  string
	Lines []CompLine
}

// CompDoc is the compile phase's output: preface paragraphs, the section
// list, top-level diagnostics, and the set of property keys any plugin or
// handler recognized (for "unknown property" warnings elsewhere).
type CompDoc struct {
	Preface         [][]rich.Block
	Route           []CompSection
	Diagnostics     []Diagnostic
	KnownProperties map[string]bool
}
