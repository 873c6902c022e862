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
	"sort"

	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
	"github.com/Pistonite/celer-sub000/internal/routeblob"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const lineDiagSource = "line"

// CompileLine compiles one line's SafeRouteBlob, mutating ctx.CurrentColor
// if the line sets `color`, and using coordMaps to interpret `movements`.
func CompileLine(ctx *Ctx, coordMaps *config.CompiledCoordMaps, blob routeblob.Safe) CompLine {
	line := CompLine{
		Properties: map[string]interface{}{},
	}

	primary, props, ok := desugarLine(blob, &line)
	if !ok {
		return line
	}

	merged := map[string]interface{}{}

	if presetsVal, hasPresets := props.Get("presets"); hasPresets {
		names := stringArrayOf(presetsVal)
		out, diags := expandPresetNames(ctx, names, 1)
		line.Diagnostics = append(line.Diagnostics, diags...)
		for k, v := range out {
			merged[k] = v
		}
	}

	if presetProps, diags, matched := tryPrimaryAsPreset(ctx, primary); matched {
		line.Diagnostics = append(line.Diagnostics, diags...)
		for k, v := range presetProps {
			merged[k] = v
		}
	}

	for _, key := range props.SortedKeys() {
		if key == "presets" {
			continue
		}
		v, _ := props.Get(key)
		merged[key] = safeToValue(v)
	}

	if _, hasText := merged["text"]; !hasText {
		merged["text"] = primary
	}

	applyProperties(ctx, coordMaps, &line, merged)
	return line
}

// desugarLine normalizes a line's raw shape into (primary text, properties
// map), appending diagnostics for malformed shapes and returning ok=false
// only when no best-effort line can be produced at all.
func desugarLine(blob routeblob.Safe, line *CompLine) (string, routeblob.Safe, bool) {
	switch blob.Kind() {
	case routeblob.KindArray:
		line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "a line cannot be an array"))
		return "", routeblob.Safe{}, false
	case routeblob.KindObject:
		keys := blob.SortedKeys()
		if len(keys) == 0 {
			line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "a line cannot be an empty object"))
			return "", routeblob.Safe{}, false
		}
		if len(keys) > 1 {
			line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, fmt.Sprintf("too many keys in object line: %v", keys)))
		}
		primary := keys[0]
		propsBlob, _ := blob.Get(primary)
		if propsBlob.Kind() != routeblob.KindObject {
			line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "line properties must be an object"))
			line.Text = rich.Parse(primary)
			return primary, routeblob.Safe{}, false
		}
		return primary, propsBlob, true
	default:
		primary := util.CoerceString(blob.Prim())
		return primary, routeblob.Safe{}, true
	}
}

func applyProperties(ctx *Ctx, coordMaps *config.CompiledCoordMaps, line *CompLine, props map[string]interface{}) {
	for _, key := range sortedStringKeys(props) {
		val := props[key]
		switch key {
		case "text":
			line.Text = rich.Parse(util.CoerceString(val))
		case "comment":
			line.Comment = rich.Parse(util.CoerceString(val))
		case "split-name":
			line.SplitName = rich.Parse(util.CoerceString(val))
		case "notes":
			line.Notes = applyNotes(val)
		case "icon":
			line.DocIcon, line.MapIcon = applyIcon(val)
		case "counter":
			blocks := rich.Parse(util.CoerceString(val))
			if len(blocks) > 1 {
				line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "too many tags in counter"))
			}
			if len(blocks) > 0 {
				line.Counter = &blocks[0]
			}
		case "color":
			c := util.CoerceString(val)
			line.Color = util.Ref(c)
			ctx.CurrentColor = c
		case "movements":
			arr, ok := val.([]interface{})
			if !ok {
				line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "invalid type for property 'movements'"))
				continue
			}
			line.Movements, line.MapCoord = applyMovements(coordMaps, arr, line)
		case "markers":
			arr, ok := val.([]interface{})
			if !ok {
				line.Diagnostics = append(line.Diagnostics, errorDiag(lineDiagSource, "invalid type for property 'markers'"))
				continue
			}
			line.Markers = applyMarkers(arr)
		case "banner":
			b, _ := util.CoerceBool(val)
			line.Banner = b
		default:
			line.Properties[key] = val
		}
	}
}

func applyNotes(val interface{}) []DocNote {
	var items []interface{}
	if arr, ok := val.([]interface{}); ok {
		items = arr
	} else {
		items = []interface{}{val}
	}
	out := make([]DocNote, 0, len(items))
	for _, it := range items {
		out = append(out, DocNote{Kind: NoteText, Content: rich.Parse(util.CoerceString(it))})
	}
	return out
}

func applyIcon(val interface{}) (*string, *Icon) {
	if m, ok := val.(map[string]interface{}); ok {
		icon := &Icon{}
		if d, ok := m["doc"]; ok {
			icon.Doc = util.CoerceString(d)
		}
		if mm, ok := m["map"]; ok {
			icon.Map = util.CoerceString(mm)
		}
		if p, ok := m["priority"]; ok {
			f, _ := util.CoerceFloat64(p)
			icon.Priority = int(f)
		}
		return util.Ref(icon.Doc), icon
	}
	s := util.CoerceString(val)
	return util.Ref(s), &Icon{Doc: s, Map: s}
}

func applyMarkers(arr []interface{}) []Marker {
	out := make([]Marker, 0, len(arr))
	for _, raw := range arr {
		switch v := raw.(type) {
		case []interface{}:
			coord, ok := coordFromInterfaceSlice(v)
			if !ok {
				continue
			}
			out = append(out, Marker{Coord: coord})
		case map[string]interface{}:
			at, ok := v["at"].([]interface{})
			if !ok {
				continue
			}
			coord, ok := coordFromInterfaceSlice(at)
			if !ok {
				continue
			}
			m := Marker{Coord: coord}
			if c, ok := v["color"]; ok {
				m.Color = util.Ref(util.CoerceString(c))
			}
			out = append(out, m)
		}
	}
	return out
}

func coordFromInterfaceSlice(v []interface{}) ([3]float64, bool) {
	if len(v) != 3 {
		return [3]float64{}, false
	}
	var out [3]float64
	for i, item := range v {
		f, _ := util.CoerceFloat64(item)
		out[i] = f
	}
	return out, true
}

func stringArrayOf(s routeblob.Safe) []string {
	if s.Kind() != routeblob.KindArray {
		return nil
	}
	var out []string
	for _, item := range s.Array() {
		if item.Kind() == routeblob.KindPrim {
			out = append(out, util.CoerceString(item.Prim()))
		}
	}
	return out
}

func safeToValue(s routeblob.Safe) interface{} {
	switch s.Kind() {
	case routeblob.KindPrim:
		return s.Prim()
	case routeblob.KindArray:
		out := make([]interface{}, 0)
		for _, item := range s.Array() {
			out = append(out, safeToValue(item))
		}
		return out
	case routeblob.KindObject:
		out := map[string]interface{}{}
		for _, k := range s.SortedKeys() {
			v, _ := s.Get(k)
			out[k] = safeToValue(v)
		}
		return out
	default:
		return nil
	}
}

func sortedStringKeys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
