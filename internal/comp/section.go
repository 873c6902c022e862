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
	"github.com/Pistonite/celer-sub000/internal/util"
)

const sectionDiagSource = "section"

// sectionShape reports whether blob has the `{name: [lines...]}` shape a
// real section requires.
func sectionShape(blob routeblob.Safe) (string, routeblob.Safe, bool) {
	if blob.Kind() != routeblob.KindObject {
		return "", routeblob.Safe{}, false
	}
	keys := blob.SortedKeys()
	if len(keys) != 1 {
		return "", routeblob.Safe{}, false
	}
	lines, _ := blob.Get(keys[0])
	if lines.Kind() != routeblob.KindArray {
		return "", routeblob.Safe{}, false
	}
	return keys[0], lines, true
}

// compileSection compiles one `{name: [lines]}` blob into a CompSection.
func compileSection(ctx *Ctx, coordMaps *config.CompiledCoordMaps, name string, lines routeblob.Safe) CompSection {
	section := CompSection{Name: name}
	for _, lineBlob := range lines.Array() {
		if ctx.Budget != nil {
			_ = ctx.Budget.Tick()
		}
		section.Lines = append(section.Lines, CompileLine(ctx, coordMaps, lineBlob))
	}
	return section
}

// errorSection builds the synthetic "[compile error]" section used when a
// value that should be a section has an invalid shape.
func errorSection(message string) CompSection {
	line := CompLine{
		Text:        rich.Parse(message),
		Properties:  map[string]interface{}{},
		Diagnostics: []Diagnostic{errorDiag(sectionDiagSource, message)},
	}
	return CompSection{Name: "[compile error]", Lines: []CompLine{line}}
}

func prefaceParagraph(blob routeblob.Safe) []rich.Block {
	if blob.Kind() == routeblob.KindPrim {
		return rich.Parse(util.CoerceString(blob.Prim()))
	}
	return rich.Parse("")
}
