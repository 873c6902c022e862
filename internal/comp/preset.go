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

	"github.com/Pistonite/celer-sub000/internal/lang/preset"
)

const presetDiagSource = "preset"

// expandPresetInst hydrates one parsed preset instance against ctx's preset
// table, recursing into its own `presets: [...]` declarations up to
// ctx.MaxPresetRefDepth. Properties from deeper (earlier-declared) presets
// are overridden by shallower (later) ones in the caller's merge.
func expandPresetInst(ctx *Ctx, inst *preset.Inst, depth int) (map[string]interface{}, []Diagnostic) {
	if depth > ctx.MaxPresetRefDepth {
		return nil, []Diagnostic{errorDiag(presetDiagSource, fmt.Sprintf("max preset depth exceeded expanding '%s'", inst.QualifiedName()))}
	}
	if len(inst.Subs) > ctx.MaxPresetNamespaceDepth {
		return nil, []Diagnostic{errorDiag(presetDiagSource, fmt.Sprintf("max preset namespace depth exceeded expanding '%s'", inst.QualifiedName()))}
	}
	p, ok := ctx.Presets[inst.QualifiedName()]
	if !ok {
		return nil, []Diagnostic{errorDiag(presetDiagSource, fmt.Sprintf("preset not found: '%s'", inst.QualifiedName()))}
	}
	props := p.Hydrate(inst.Args)

	var diags []Diagnostic
	out := map[string]interface{}{}
	if nested, hasNested := props["presets"]; hasNested {
		nestedNames, _ := nested.([]interface{})
		nestedOut, nestedDiags := expandPresetNames(ctx, toStringSlice(nestedNames), depth+1)
		diags = append(diags, nestedDiags...)
		for k, v := range nestedOut {
			out[k] = v
		}
	}
	for k, v := range props {
		if k == "presets" {
			continue
		}
		out[k] = v
	}
	return out, diags
}

// expandPresetNames parses and expands a `presets: [...]` list left to
// right, with later entries overriding earlier ones' properties.
func expandPresetNames(ctx *Ctx, names []string, depth int) (map[string]interface{}, []Diagnostic) {
	out := map[string]interface{}{}
	var diags []Diagnostic
	for _, name := range names {
		inst, err := preset.ParseInst(name)
		if err != nil {
			diags = append(diags, errorDiag(presetDiagSource, fmt.Sprintf("invalid preset string '%s': %v", name, err)))
			continue
		}
		props, instDiags := expandPresetInst(ctx, inst, depth)
		diags = append(diags, instDiags...)
		for k, v := range props {
			out[k] = v
		}
	}
	return out, diags
}

// tryPrimaryAsPreset attempts to parse primary as a preset instance and
// resolve it against ctx. Returns ok=false (no diagnostic) if primary does
// not parse as a preset instance at all - it is then plain text, not an
// error.
func tryPrimaryAsPreset(ctx *Ctx, primary string) (map[string]interface{}, []Diagnostic, bool) {
	inst, err := preset.ParseInst(primary)
	if err != nil {
		return nil, nil, false
	}
	if _, found := ctx.Presets[inst.QualifiedName()]; !found {
		return nil, nil, false
	}
	props, diags := expandPresetInst(ctx, inst, 1)
	return props, diags, true
}

func toStringSlice(in []interface{}) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
