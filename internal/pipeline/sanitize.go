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

package pipeline

import (
	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/routeblob"
)

const packDiagSource = "pack"

// sanitize walks a packed Blob replacing every Err node with a nil
// primitive and surfacing its message as a top-level Diagnostic, so the
// compile phase can operate on a guaranteed-Err-free routeblob.Safe view
// per routeblob.Safe's contract.
func sanitize(b routeblob.Blob) (routeblob.Blob, []comp.Diagnostic) {
	var diags []comp.Diagnostic
	out := sanitizeBlob(b, &diags)
	return out, diags
}

func sanitizeBlob(b routeblob.Blob, diags *[]comp.Diagnostic) routeblob.Blob {
	switch b.Kind {
	case routeblob.KindErr:
		*diags = append(*diags, comp.Diagnostic{Type: "error", Source: packDiagSource, Message: b.Err})
		return routeblob.Prim(nil)
	case routeblob.KindArray:
		items := make([]routeblob.Blob, len(b.Array))
		for i, item := range b.Array {
			items[i] = sanitizeBlob(item, diags)
		}
		return routeblob.Array(items)
	case routeblob.KindObject:
		obj := make(map[string]routeblob.Blob, len(b.Object))
		for k, v := range b.Object {
			obj[k] = sanitizeBlob(v, diags)
		}
		return routeblob.Object(obj)
	default:
		return b
	}
}
