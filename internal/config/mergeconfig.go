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

package config

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/Pistonite/celer-sub000/internal/res"
	"github.com/Pistonite/celer-sub000/internal/routeblob"
	"github.com/Pistonite/celer-sub000/internal/util"
)

// ResolveConfigFragments resolves every element of a project's `config:`
// list - inline objects pass through unchanged, `{use: ...}` objects are
// resolved and loaded exactly like a route document's `use` references -
// and returns the raw decoded fragments in declaration order.
func ResolveConfigFragments(ctx context.Context, loader res.Loader, projectPath res.Path, fragments []map[string]interface{}) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(fragments))
	for i, frag := range fragments {
		if raw, isUse := res.FromObjectValue(frag); isUse {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("config[%d]: use value must be a string", i)
			}
			parsed := res.ParseUse(s)
			if parsed.Valid == nil {
				return nil, fmt.Errorf("config[%d]: invalid use reference '%s'", i, s)
			}
			resolved, err := projectPath.Resolve(*parsed.Valid)
			if err != nil {
				return nil, fmt.Errorf("config[%d]: %w", i, err)
			}
			data, err := loader.Load(ctx, resolved)
			if err != nil {
				return nil, fmt.Errorf("config[%d]: failed to load '%s': %w", i, resolved.Path, err)
			}
			var decoded map[string]interface{}
			if err := yaml.Unmarshal(data, &decoded); err != nil {
				return nil, fmt.Errorf("config[%d]: failed to parse '%s': %w", i, resolved.Path, err)
			}
			out = append(out, decoded)
			continue
		}
		out = append(out, frag)
	}
	return out, nil
}

// MergeConfigs merges a list of decoded config fragments into one Config,
// in declaration order (later fragments win). Struct-shaped fields
// (icons/map/splits/plugins) are merged with mergo's override-by-default
// semantics; presets are merge-patched (RFC 7386) since a namespace
// sub-object in a later fragment should patch, not replace, an earlier
// one's siblings.
func MergeConfigs(fragments []map[string]interface{}) (*Config, error) {
	merged := make(map[string]interface{})
	var rawPresets map[string]interface{}
	for _, frag := range fragments {
		presetFragment, _ := frag["presets"].(map[string]interface{})
		rawPresets = util.PatchMap(rawPresets, presetFragment)

		fragWithoutPresets := make(map[string]interface{}, len(frag))
		for k, v := range frag {
			if k == "presets" {
				continue
			}
			fragWithoutPresets[k] = v
		}
		if err := mergo.Merge(&merged, fragWithoutPresets, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge config fragment: %w", err)
		}
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		TagName:          "yaml",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(merged); err != nil {
		return nil, fmt.Errorf("failed to decode merged config: %w", err)
	}

	presets, err := routeblob.PackPresets(rawPresets)
	if err != nil {
		return nil, fmt.Errorf("failed to compile presets: %w", err)
	}
	cfg.Presets = presets
	return cfg, nil
}
