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

// Package exec implements the execute phase: turning a CompDoc into the
// final ExecDoc wire format, building map sections from each line's
// movements along the way.
package exec

import (
	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
)

// RichBlock is the wire-format rendering of a rich.Block.
type RichBlock struct {
	Tag  string `json:"tag,omitempty"`
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

func fromRichBlocks(blocks []rich.Block) []RichBlock {
	out := make([]RichBlock, len(blocks))
	for i, b := range blocks {
		rb := RichBlock{Text: b.Text}
		if b.Tag != nil {
			rb.Tag = *b.Tag
		}
		if b.Link != nil {
			rb.Link = *b.Link
		}
		out[i] = rb
	}
	return out
}

// ExecLine is the wire-format rendering of one CompLine.
type ExecLine struct {
	Text        []RichBlock            `json:"text"`
	Comment     []RichBlock            `json:"comment,omitempty"`
	SplitName   []RichBlock            `json:"split-name,omitempty"`
	Counter     *RichBlock             `json:"counter,omitempty"`
	Notes       []ExecNote             `json:"notes,omitempty"`
	DocIcon     string                 `json:"doc-icon,omitempty"`
	MapIcon     string                 `json:"map-icon,omitempty"`
	Color       string                 `json:"color,omitempty"`
	MapCoord    *[3]float64            `json:"map-coord,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
	Diagnostics []ExecDiagnostic       `json:"diagnostics,omitempty"`
	Banner      bool                   `json:"banner,omitempty"`
}

// ExecNote is the wire-format rendering of a comp.DocNote.
type ExecNote struct {
	Type    string      `json:"type"`
	Content []RichBlock `json:"content,omitempty"`
	Link    string      `json:"link,omitempty"`
}

var noteKindNames = map[comp.NoteKind]string{
	comp.NoteText:  "text",
	comp.NoteImage: "image",
	comp.NoteVideo: "video",
}

func fromNotes(notes []comp.DocNote) []ExecNote {
	out := make([]ExecNote, len(notes))
	for i, n := range notes {
		out[i] = ExecNote{
			Type:    noteKindNames[n.Kind],
			Content: fromRichBlocks(n.Content),
			Link:    n.Link,
		}
	}
	return out
}

// ExecDiagnostic is the wire-format rendering of a comp.Diagnostic.
type ExecDiagnostic struct {
	Message string `json:"msg"`
	Type    string `json:"type"`
	Source  string `json:"source"`
}

// ExecSection is a named group of rendered lines plus the map sections
// its movements produced.
type ExecSection struct {
	Name  string       `json:"name"`
	Lines []ExecLine   `json:"lines"`
	Map   []MapSection `json:"map"`
}

// ExecTag is a custom rich-text tag's rendering hint, carried through to
// the renderer so it can style `.tag(...)` blocks it doesn't know natively.
type ExecTag struct {
	Color  string `json:"color,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// ExecDoc is the pipeline's final wire-format output.
type ExecDoc struct {
	Project     string             `json:"project"`
	Preface     [][]RichBlock      `json:"preface"`
	Route       []ExecSection      `json:"route"`
	Diagnostics []ExecDiagnostic   `json:"diagnostics"`
	Tags        map[string]ExecTag `json:"tags,omitempty"`
}

func fromConfigTags(tags map[string]config.Tag) map[string]ExecTag {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]ExecTag, len(tags))
	for name, t := range tags {
		out[name] = ExecTag{Color: t.Color, Bold: t.Bold, Italic: t.Italic}
	}
	return out
}

func fromDiagnostics(ds []comp.Diagnostic) []ExecDiagnostic {
	out := make([]ExecDiagnostic, len(ds))
	for i, d := range ds {
		out[i] = ExecDiagnostic{Message: d.Message, Type: d.Type, Source: d.Source}
	}
	return out
}
