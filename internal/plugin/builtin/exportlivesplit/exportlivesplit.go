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

// Package exportlivesplit implements the built-in `export-livesplit`
// plugin: renders a compiled document's split names into a LiveSplit
// `.lss` splits file.
package exportlivesplit

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
	"github.com/Pistonite/celer-sub000/internal/plugin"
)

const exportID = "livesplit"

// splitDoc is the data handed to lssTemplate.
type splitDoc struct {
	GameName string
	Splits   []string
}

const lssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Run version="1.7.0">
  <GameIcon />
  <GameName>{{ .GameName }}</GameName>
  <CategoryName>Any%</CategoryName>
  <Metadata>
    <Run id="" />
    <Platform usesEmulator="False"></Platform>
    <Region></Region>
    <Variables />
  </Metadata>
  <Offset>00:00:00</Offset>
  <AttemptCount>0</AttemptCount>
  <AttemptHistory />
  <Segments>
{{- range .Splits }}
    <Segment>
      <Name>{{ . }}</Name>
      <Icon />
      <SplitTimes>
        <SplitTime name="Personal Best" />
      </SplitTimes>
      <BestSegmentTime />
      <SegmentHistory />
    </Segment>
{{- end }}
  </Segments>
  <AutoSplitterSettings />
</Run>
`

// Plugin is the `builtin:export-livesplit` definition.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Uri() string         { return "builtin:export-livesplit" }
func (p *Plugin) Description() string { return "exports the route's split names as a LiveSplit .lss file" }

// OnPrepareExport advertises the single "livesplit" export format.
func (p *Plugin) OnPrepareExport(ctx context.Context, props map[string]interface{}) ([]plugin.ExportMetadata, error) {
	return []plugin.ExportMetadata{{ID: exportID, Name: "LiveSplit Splits (.lss)"}}, nil
}

// OnExportCompDoc renders doc's counter/split-name lines into a .lss file.
func (p *Plugin) OnExportCompDoc(ctx context.Context, props map[string]interface{}, id string, payload map[string]interface{}, doc *comp.CompDoc) (*plugin.ExpoDoc, error) {
	if id != exportID {
		return nil, fmt.Errorf("unsupported export id '%s'", id)
	}
	gameName := "Celer Route"
	if name, ok := props["game-name"].(string); ok && name != "" {
		gameName = name
	}

	data := splitDoc{GameName: gameName, Splits: collectSplits(doc)}

	tmpl, err := template.New("lss").Funcs(sprig.FuncMap()).Parse(lssTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lss template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("failed to render lss file: %w", err)
	}

	return &plugin.ExpoDoc{Filename: "route.lss", Content: buf.Bytes()}, nil
}

// collectSplits walks the route gathering one split name per line that has
// a SplitName or Counter, and using the section name for the first line in
// each section that has neither; later such lines add no split.
func collectSplits(doc *comp.CompDoc) []string {
	var splits []string
	for _, section := range doc.Route {
		usedSectionName := false
		for _, line := range section.Lines {
			switch {
			case len(line.SplitName) > 0:
				splits = append(splits, joinText(line.SplitName))
			case line.Counter != nil:
				splits = append(splits, line.Counter.Text)
			case !usedSectionName:
				splits = append(splits, section.Name)
				usedSectionName = true
			}
		}
	}
	return splits
}

func joinText(blocks []rich.Block) string {
	var sb []byte
	for _, b := range blocks {
		sb = append(sb, b.Text...)
	}
	return string(sb)
}
