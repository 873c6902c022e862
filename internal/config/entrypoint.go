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
	"fmt"
	"strings"
)

// MaxEntryPointAliasDepth bounds how many alias hops ResolveEntryPoint
// will follow before giving up, to guard against alias cycles.
const MaxEntryPointAliasDepth = 16

// ResolveEntryPoint looks up name in the entry-points map, following
// aliases (an entry-point value that is itself a key in the same map)
// until a concrete path is reached, up to MaxEntryPointAliasDepth hops.
// A run of consecutive `/` in the final resolved path is collapsed to a
// single `/`, per the project's normalization rule for entry points.
func ResolveEntryPoint(entryPoints map[string]string, name string) (string, error) {
	seen := map[string]bool{}
	current := name
	for depth := 0; depth <= MaxEntryPointAliasDepth; depth++ {
		value, ok := entryPoints[current]
		if !ok {
			return "", fmt.Errorf("entry point '%s' is not defined", current)
		}
		if seen[current] {
			return "", fmt.Errorf("entry point alias cycle detected at '%s'", current)
		}
		seen[current] = true
		if _, isAlias := entryPoints[value]; isAlias && value != current {
			current = value
			continue
		}
		return collapseSlashes(value), nil
	}
	return "", fmt.Errorf("max entry point alias depth exceeded resolving '%s'", name)
}

func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
