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

package preset

import (
	"fmt"

	"github.com/Pistonite/celer-sub000/internal/lang/tempstr"
)

// BlobKind distinguishes the sum-type variants of a compiled preset value.
type BlobKind int

const (
	// NonTemplate is a frozen value with no `$(N)` substitution anywhere
	// beneath it - this is the common case, and compiling into it lets
	// hydration skip rebuilding most of the tree.
	NonTemplate BlobKind = iota
	Template
	Array
	Object
)

// Blob is a compiled preset value: a value-shaped tree of TempStr leaves,
// collapsed to NonTemplate wherever a container has no templated
// descendant.
type Blob struct {
	Kind BlobKind

	Frozen interface{}
	Str    tempstr.TempStr
	Items  []Blob
	Fields map[string]Blob
}

// Compile compiles a decoded YAML/JSON value into a Blob, parsing every
// string as a TempStr and collapsing any container whose descendants are
// all non-templated back into a single frozen NonTemplate value.
func Compile(value interface{}) Blob {
	switch v := value.(type) {
	case string:
		ts := tempstr.Parse(v)
		if ts.MaxVar() < 0 {
			return Blob{Kind: NonTemplate, Frozen: ts.Hydrate(nil)}
		}
		return Blob{Kind: Template, Str: ts}
	case []interface{}:
		items := make([]Blob, len(v))
		allFrozen := true
		for i, elem := range v {
			items[i] = Compile(elem)
			if items[i].Kind != NonTemplate {
				allFrozen = false
			}
		}
		if allFrozen {
			frozen := make([]interface{}, len(items))
			for i, it := range items {
				frozen[i] = it.Frozen
			}
			return Blob{Kind: NonTemplate, Frozen: frozen}
		}
		return Blob{Kind: Array, Items: items}
	case map[string]interface{}:
		fields := make(map[string]Blob, len(v))
		allFrozen := true
		for k, sub := range v {
			fields[k] = Compile(sub)
			if fields[k].Kind != NonTemplate {
				allFrozen = false
			}
		}
		if allFrozen {
			frozen := make(map[string]interface{}, len(fields))
			for k, b := range fields {
				frozen[k] = b.Frozen
			}
			return Blob{Kind: NonTemplate, Frozen: frozen}
		}
		return Blob{Kind: Object, Fields: fields}
	default:
		return Blob{Kind: NonTemplate, Frozen: v}
	}
}

// Hydrate substitutes every TempStr leaf with args and rebuilds the
// equivalent plain JSON-ish value.
func (b Blob) Hydrate(args []string) interface{} {
	switch b.Kind {
	case NonTemplate:
		return b.Frozen
	case Template:
		return b.Str.Hydrate(args)
	case Array:
		out := make([]interface{}, len(b.Items))
		for i, it := range b.Items {
			out[i] = it.Hydrate(args)
		}
		return out
	case Object:
		out := make(map[string]interface{}, len(b.Fields))
		for k, it := range b.Fields {
			out[k] = it.Hydrate(args)
		}
		return out
	default:
		return nil
	}
}

// MaxVar returns the highest variable index referenced anywhere in the
// Blob, or -1 if the Blob is entirely NonTemplate.
func (b Blob) MaxVar() int {
	switch b.Kind {
	case Template:
		return b.Str.MaxVar()
	case Array:
		max := -1
		for _, it := range b.Items {
			if v := it.MaxVar(); v > max {
				max = v
			}
		}
		return max
	case Object:
		max := -1
		for _, it := range b.Fields {
			if v := it.MaxVar(); v > max {
				max = v
			}
		}
		return max
	default:
		return -1
	}
}

// Preset is a compiled preset definition: a top-level object of property
// names to compiled Blob values.
type Preset struct {
	Properties map[string]Blob
}

// CompilePreset compiles a decoded preset definition. Presets must be objects at
// the top level - arrays or primitives are rejected.
func CompilePreset(value interface{}) (*Preset, error) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("preset definition must be an object")
	}
	props := make(map[string]Blob, len(m))
	for k, v := range m {
		props[k] = Compile(v)
	}
	return &Preset{Properties: props}, nil
}

// Hydrate substitutes args into every property and returns the resulting
// property map.
func (p *Preset) Hydrate(args []string) map[string]interface{} {
	out := make(map[string]interface{}, len(p.Properties))
	for k, b := range p.Properties {
		out[k] = b.Hydrate(args)
	}
	return out
}
