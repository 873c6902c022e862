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
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// projectSchema is a coarse top-level shape check for project.yaml, run
// before prep to turn obviously malformed documents into one readable
// error instead of a confusing decode failure deep in the pipeline.
const projectSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["entry-points"],
	"properties": {
		"entry-points": {
			"type": "object",
			"additionalProperties": { "type": "string" }
		},
		"config": {
			"type": "array",
			"items": { "type": "object" }
		}
	}
}`

var compiledProjectSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("project.json", bytes.NewReader([]byte(projectSchema))); err != nil {
		panic(fmt.Sprintf("invalid embedded project schema: %v", err))
	}
	s, err := compiler.Compile("project.json")
	if err != nil {
		panic(fmt.Sprintf("invalid embedded project schema: %v", err))
	}
	compiledProjectSchema = s
}

// ValidateProjectSchema checks raw project YAML bytes against the
// top-level project shape (entry-points required, config an array of
// objects), independent of the stricter KnownFields decode in LoadProject.
func ValidateProjectSchema(content []byte) error {
	var v interface{}
	if err := yaml.Unmarshal(content, &v); err != nil {
		return fmt.Errorf("failed to parse project file: %w", err)
	}
	normalized := normalizeForSchema(v)
	if err := compiledProjectSchema.Validate(normalized); err != nil {
		return fmt.Errorf("project file failed schema validation: %w", err)
	}
	return nil
}

// normalizeForSchema converts yaml.v3's decoded map[string]interface{} tree
// (already string-keyed, unlike the older yaml.v2 map[interface{}]interface{})
// recursively, since nested maps/slices still need their element types
// normalized for the jsonschema validator to walk them.
func normalizeForSchema(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeForSchema(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeForSchema(item)
		}
		return out
	default:
		return val
	}
}
