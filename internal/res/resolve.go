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

import "fmt"

// ErrCannotResolve is returned when a use reference cannot be resolved
// relative to the current resource's location.
type ErrCannotResolve struct {
	From Path
	Use  ValidUse
}

func (e *ErrCannotResolve) Error() string {
	return fmt.Sprintf("cannot resolve use reference from '%s'", e.From.Path)
}

// Resolve computes the normalized Path a `use` reference points to, given
// the Path of the document that referenced it.
//
//   - Relative: joins onto the directory of the current document (so
//     "./x" means a sibling of the current file, and "../x" its parent's
//     sibling), within the current document's Remote scope.
//   - Absolute: resolves from the root of the current document's Remote
//     scope (local root if the current document is local).
//   - Remote: always resolves against the target's own owner/repo/ref,
//     ignoring the current document's location entirely.
func (from Path) Resolve(use ValidUse) (Path, error) {
	switch use.Kind {
	case UseRelative:
		dir := Dir(from.Path)
		resolved, ok := JoinResolve(dir, use.Path)
		if !ok {
			return Path{}, &ErrCannotResolve{From: from, Use: use}
		}
		return Path{Remote: from.Remote, Path: resolved}, nil
	case UseAbsolute:
		resolved, ok := JoinResolve("", use.Path)
		if !ok {
			return Path{}, &ErrCannotResolve{From: from, Use: use}
		}
		return Path{Remote: from.Remote, Path: resolved}, nil
	case UseRemote:
		remote := use.Owner + "/" + use.Repo
		if use.Reference != nil {
			remote += ":" + *use.Reference
		}
		resolved, ok := JoinResolve("", use.RemotePathValue())
		if !ok {
			return Path{}, &ErrCannotResolve{From: from, Use: use}
		}
		return Path{Remote: remote, Path: resolved}, nil
	default:
		return Path{}, &ErrCannotResolve{From: from, Use: use}
	}
}
