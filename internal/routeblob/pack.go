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
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Pistonite/celer-sub000/internal/res"
)

const (
	DefaultMaxUseDepth = 8
	DefaultMaxRefDepth = 32
)

// Packer recursively resolves `use` references while packing a decoded
// YAML/JSON document tree into a Blob. It tracks two independent depth
// counters: UseDepth (how many nested resource loads deep we are) and
// RefDepth (how many structural levels deep within the current document),
// matching the pack phase's two distinct bound checks.
type Packer struct {
	Loader      res.Loader
	MaxUseDepth int
	MaxRefDepth int

	currentPath res.Path
	useDepth    int
}

// PackRoute packs value (the decoded contents of the document at path)
// into a Blob, resolving `use` references as encountered.
func PackRoute(ctx context.Context, loader res.Loader, path res.Path, value interface{}) Blob {
	p := &Packer{Loader: loader, MaxUseDepth: DefaultMaxUseDepth, MaxRefDepth: DefaultMaxRefDepth, currentPath: path}
	return p.packValue(ctx, value, 0)
}

func (p *Packer) packValue(ctx context.Context, value interface{}, refDepth int) Blob {
	if refDepth > p.MaxRefDepth {
		return Err("max reference depth exceeded while packing route")
	}
	switch v := value.(type) {
	case map[string]interface{}:
		if raw, isUse := singleUseKey(v); isUse {
			s, ok := raw.(string)
			if !ok {
				return Err("use value must be a string")
			}
			return p.resolveUse(ctx, s)
		}
		out := make(map[string]Blob, len(v))
		for k, sub := range v {
			out[k] = p.packValue(ctx, sub, refDepth+1)
		}
		return Object(out)
	case []interface{}:
		out := make([]Blob, 0, len(v))
		for _, elem := range v {
			if m, ok := elem.(map[string]interface{}); ok {
				if raw, isUse := singleUseKey(m); isUse {
					s, ok := raw.(string)
					if !ok {
						out = append(out, Err("use value must be a string"))
						continue
					}
					resolved := p.resolveUse(ctx, s)
					if resolved.Kind == KindArray {
						out = append(out, resolved.Array...)
					} else {
						out = append(out, resolved)
					}
					continue
				}
			}
			out = append(out, p.packValue(ctx, elem, refDepth+1))
		}
		return Array(out)
	default:
		return Prim(value)
	}
}

func singleUseKey(m map[string]interface{}) (interface{}, bool) {
	if len(m) != 1 {
		return nil, false
	}
	v, ok := m["use"]
	return v, ok
}

func (p *Packer) resolveUse(ctx context.Context, raw string) Blob {
	parsed := res.ParseUse(raw)
	if parsed.Valid == nil {
		return Err(fmt.Sprintf("invalid use reference: %s", raw))
	}
	if p.useDepth+1 > p.MaxUseDepth {
		return Err("max use depth exceeded")
	}
	resolvedPath, err := p.currentPath.Resolve(*parsed.Valid)
	if err != nil {
		return Err(err.Error())
	}
	data, err := p.Loader.Load(ctx, resolvedPath)
	if err != nil {
		return Err(fmt.Sprintf("failed to load '%s': %s", resolvedPath.Path, err))
	}
	var decoded interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return Err(fmt.Sprintf("failed to parse '%s': %s", resolvedPath.Path, err))
	}
	decoded = normalizeYAML(decoded)

	savedPath, savedUseDepth := p.currentPath, p.useDepth
	p.currentPath, p.useDepth = resolvedPath, p.useDepth+1
	result := p.packValue(ctx, decoded, 0)
	p.currentPath, p.useDepth = savedPath, savedUseDepth
	return result
}

// normalizeYAML recursively converts yaml.v3's map[string]interface{} decode
// result (which uses map[string]interface{} already for string-keyed maps
// via a generic interface{} target) into the same shape consistently; it
// also handles the case where yaml decodes a mapping with non-string keys,
// which cannot occur in a route document and is rejected upstream.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, sub := range t {
			out[k] = normalizeYAML(sub)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, sub := range t {
			out[i] = normalizeYAML(sub)
		}
		return out
	default:
		return v
	}
}
