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

package res

import "strings"

// UseKind distinguishes the three forms a `use` string can take.
type UseKind int

const (
	UseRelative UseKind = iota
	UseAbsolute
	UseRemote
)

// ValidUse is a successfully parsed `use` reference.
type ValidUse struct {
	Kind UseKind
	// Path is the relative/absolute path for Relative/Absolute kinds.
	Path string
	// Owner/Repo/RemotePath/Reference are set for Kind == UseRemote.
	Owner      string
	Repo       string
	RemotePath string
	Reference  *string
}

// Use is the result of parsing a `use` string: either a ValidUse or the
// original invalid string, preserved for diagnostics.
type Use struct {
	Valid   *ValidUse
	Invalid string
}

// ParseUse parses a raw `use` value per the resource-reference grammar:
//
//	"/path"            -> Absolute (no trailing slash)
//	"./path", "../path" -> Relative (no trailing slash)
//	"owner/repo/path[:ref]" -> Remote, 3+ path segments, rest not trailing slash
//
// Anything else is Invalid.
func ParseUse(s string) Use {
	switch {
	case strings.HasPrefix(s, "/"):
		p := s[1:]
		if p == "" || strings.HasSuffix(p, "/") {
			return Use{Invalid: s}
		}
		return Use{Valid: &ValidUse{Kind: UseAbsolute, Path: p}}
	case strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../"):
		if strings.HasSuffix(s, "/") {
			return Use{Invalid: s}
		}
		return Use{Valid: &ValidUse{Kind: UseRelative, Path: s}}
	default:
		return parseRemoteUse(s)
	}
}

func parseRemoteUse(s string) Use {
	rest := s
	var reference *string
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		rest = s[:idx]
		ref := s[idx+1:]
		if ref != "" {
			reference = &ref
		}
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Use{Invalid: s}
	}
	if strings.HasSuffix(parts[2], "/") {
		return Use{Invalid: s}
	}
	return Use{Valid: &ValidUse{
		Kind:       UseRemote,
		Owner:      parts[0],
		Repo:       parts[1],
		RemotePath: parts[2],
		Reference:  reference,
	}}
}

// FromObjectValue checks whether m is a single-key object whose only key is
// "use", returning the value of that key if so.
func FromObjectValue(m map[string]interface{}) (interface{}, bool) {
	if len(m) != 1 {
		return nil, false
	}
	v, ok := m["use"]
	return v, ok
}

const defaultReference = "main"

// BaseURL returns the GitHub raw-content base URL for a remote ValidUse
// ("" for non-remote kinds).
func (u ValidUse) BaseURL() string {
	if u.Kind != UseRemote {
		return ""
	}
	ref := defaultReference
	if u.Reference != nil {
		ref = *u.Reference
	}
	return "https://raw.githubusercontent.com/" + u.Owner + "/" + u.Repo + "/" + ref
}

// RemotePathValue returns the path component to resolve for a remote
// ValidUse.
func (u ValidUse) RemotePathValue() string {
	return u.RemotePath
}
