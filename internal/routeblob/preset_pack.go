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

package routeblob

import (
	"fmt"
	"strings"

	"github.com/Pistonite/celer-sub000/internal/lang/preset"
)

const DefaultMaxPresetNamespaceDepth = 8

// PackPresets compiles a raw `presets:` config object into a flat
// namespace-qualified preset table. Each key starting with `_` introduces a
// sub-namespace (its value must itself be an object of the same shape,
// recursed with one more namespace level); every other key is a preset
// name whose value is compiled via preset.CompilePreset.
//
// The returned map is keyed by the fully `::`-joined namespace path (e.g.
// `outer::inner::name`), matching preset.Inst.QualifiedName for a
// reference that lists every namespace segment in order.
func PackPresets(raw map[string]interface{}) (map[string]*preset.Preset, error) {
	out := make(map[string]*preset.Preset)
	if err := packPresetsInternal(raw, nil, 0, out); err != nil {
		return nil, err
	}
	return out, nil
}

func packPresetsInternal(raw map[string]interface{}, namespace []string, depth int, out map[string]*preset.Preset) error {
	if depth > DefaultMaxPresetNamespaceDepth {
		return fmt.Errorf("max preset namespace depth exceeded at '%s'", strings.Join(namespace, "::"))
	}
	for key, value := range raw {
		if strings.HasPrefix(key, "_") {
			sub, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("invalid config property '%s': namespace must be an object", key)
			}
			if err := packPresetsInternal(sub, append(namespace, key[1:]), depth+1, out); err != nil {
				return err
			}
			continue
		}
		p, err := preset.CompilePreset(value)
		if err != nil {
			return fmt.Errorf("invalid preset '%s': %w", key, err)
		}
		qualified := append(append([]string{}, namespace...), key)
		out[strings.Join(qualified, "::")] = p
	}
	return nil
}
