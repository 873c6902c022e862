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
	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
	"github.com/Pistonite/celer-sub000/internal/routeblob"
)

var knownLineProperties = map[string]bool{
	"text": true, "comment": true, "split-name": true, "notes": true,
	"icon": true, "counter": true, "color": true, "movements": true,
	"markers": true, "presets": true, "banner": true,
}

// Compile compiles a whole document's top-level array: values before the
// first well-formed `{name: [lines]}` section are collected as preface
// paragraphs; once a real section appears, a malformed value instead
// becomes a synthetic "[compile error]" section.
func Compile(ctx *Ctx, coordMaps *config.CompiledCoordMaps, doc routeblob.Safe) CompDoc {
	out := CompDoc{KnownProperties: knownLineProperties}

	if doc.Kind() != routeblob.KindArray {
		out.Diagnostics = append(out.Diagnostics, errorDiag(sectionDiagSource, "route document must be an array"))
		return out
	}

	sawSection := false
	for _, item := range doc.Array() {
		if ctx.Budget != nil {
			if err := ctx.Budget.Tick(); err != nil {
				out.Diagnostics = append(out.Diagnostics, errorDiag(sectionDiagSource, "cancelled"))
				return out
			}
		}
		name, lines, ok := sectionShape(item)
		if ok {
			out.Route = append(out.Route, compileSection(ctx, coordMaps, name, lines))
			sawSection = true
			continue
		}
		if !sawSection {
			var para []rich.Block
			if item.Kind() == routeblob.KindObject && len(item.SortedKeys()) == 0 {
				para = rich.Parse("")
			} else {
				para = prefaceParagraph(item)
			}
			out.Preface = append(out.Preface, para)
			continue
		}
		out.Route = append(out.Route, errorSection("value cannot be a section"))
	}
	return out
}
