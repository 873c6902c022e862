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

import (
	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/util"
)

// Execute builds the final ExecDoc from a compiled document, running the
// map-section builder over every section's movements in document order.
// tags carries the project's custom rich-text tag rendering hints through
// to the wire format unchanged.
func Execute(project string, doc comp.CompDoc, initialColor string, tags map[string]config.Tag) ExecDoc {
	out := ExecDoc{
		Project:     project,
		Diagnostics: fromDiagnostics(doc.Diagnostics),
		Tags:        fromConfigTags(tags),
	}
	for _, p := range doc.Preface {
		out.Preface = append(out.Preface, fromRichBlocks(p))
	}

	builder := newMapBuilder(initialColor)
	for _, section := range doc.Route {
		execSection := ExecSection{Name: section.Name}
		for i, line := range section.Lines {
			if line.Color != nil {
				builder.changeColor(*line.Color)
			}
			builder.applyMovements(i, line)
			execSection.Lines = append(execSection.Lines, fromCompLine(line))
		}
		execSection.Map = []MapSection{builder.buildSection()}
		out.Route = append(out.Route, execSection)
	}
	return out
}

func fromCompLine(line comp.CompLine) ExecLine {
	el := ExecLine{
		Text:        fromRichBlocks(line.Text),
		Comment:     fromRichBlocks(line.Comment),
		SplitName:   fromRichBlocks(line.SplitName),
		Notes:       fromNotes(line.Notes),
		Properties:  line.Properties,
		Diagnostics: fromDiagnostics(line.Diagnostics),
		Banner:      line.Banner,
		MapCoord:    line.MapCoord,
	}
	if line.Counter != nil {
		rb := RichBlock{Text: line.Counter.Text, Tag: util.DerefOr(line.Counter.Tag, "")}
		el.Counter = &rb
	}
	el.DocIcon = util.DerefOr(line.DocIcon, "")
	if line.MapIcon != nil {
		el.MapIcon = line.MapIcon.Map
	}
	el.Color = util.DerefOr(line.Color, "")
	return el
}
