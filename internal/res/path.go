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

// Package res implements resource path resolution: normalized local/remote
// paths, the `use` reference grammar, and loading resource bytes from the
// local filesystem or a remote GitHub repository.
package res

import (
	"path"
	"strings"
)

// Path is a normalized resource path: always relative (no leading slash),
// using forward slashes, with `.`/`..` segments already resolved.
//
// Remote is the owning GitHub "owner/repo[:ref]" triple; an empty Remote
// means the path is local to the current project.
type Path struct {
	Remote string
	Path   string
}

// IsLocal reports whether the path refers to a file local to the project.
func (p Path) IsLocal() bool {
	return p.Remote == ""
}

// JoinResolve joins relPath (a `/`-separated path that may contain `.` and
// `..` segments) onto the path's directory, resolving `..` by popping
// already-accumulated segments. Returns ok=false if:
//   - the join climbs above the root (pops past an empty accumulator), or
//   - the final resolved path is empty (refers to the root itself).
//
// The base path itself is NOT treated as a directory to descend into: the
// caller is expected to have already stripped the base down to its
// containing directory (see Path.Resolve), so relPath is joined onto an
// already-normalized accumulator.
func JoinResolve(base string, relPath string) (string, bool) {
	segs := splitNonEmpty(base)
	for _, part := range strings.Split(relPath, "/") {
		switch part {
		case "", ".":
			// no-op segment
		case "..":
			if len(segs) == 0 {
				return "", false
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, part)
		}
	}
	joined := strings.Join(segs, "/")
	if joined == "" {
		return "", false
	}
	return joined, true
}

func splitNonEmpty(p string) []string {
	if p == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}

// Dir returns the directory portion of a normalized path (everything
// before the final `/`-separated segment), or "" if the path has no
// directory component.
func Dir(p string) string {
	d := path.Dir(p)
	if d == "." {
		return ""
	}
	return d
}
