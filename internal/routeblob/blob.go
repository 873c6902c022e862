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

// Package routeblob implements RouteBlob: the packed-document sum type
// produced by resolving `use` references through a tree of route
// documents, with errors kept as data rather than aborting the pack phase.
package routeblob

import "sort"

// Kind distinguishes the sum-type variants of a Blob.
type Kind int

const (
	KindPrim Kind = iota
	KindArray
	KindObject
	KindErr
)

// Blob is the packed representation of a decoded YAML/JSON value after
// `use` resolution. Unlike a plain JSON value, a Blob may itself be an Err
// - a deferred diagnostic carried as data so the rest of the tree can keep
// packing around it.
type Blob struct {
	Kind Kind

	Prim   interface{}
	Array  []Blob
	Object map[string]Blob
	Err    string
}

func Prim(v interface{}) Blob       { return Blob{Kind: KindPrim, Prim: v} }
func Array(items []Blob) Blob       { return Blob{Kind: KindArray, Array: items} }
func Object(m map[string]Blob) Blob { return Blob{Kind: KindObject, Object: m} }
func Err(msg string) Blob           { return Blob{Kind: KindErr, Err: msg} }

// SortedKeys returns the keys of an Object blob in sorted order, for
// deterministic iteration.
func (b Blob) SortedKeys() []string {
	if b.Kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(b.Object))
	for k := range b.Object {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasError reports whether this blob, or any blob nested within it, is an
// Err node.
func (b Blob) HasError() bool {
	switch b.Kind {
	case KindErr:
		return true
	case KindArray:
		for _, item := range b.Array {
			if item.HasError() {
				return true
			}
		}
		return false
	case KindObject:
		for _, item := range b.Object {
			if item.HasError() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Errors collects every Err message nested within this blob, in a
// deterministic (sorted-key / array-order) traversal order.
func (b Blob) Errors() []string {
	var out []string
	b.collectErrors(&out)
	return out
}

func (b Blob) collectErrors(out *[]string) {
	switch b.Kind {
	case KindErr:
		*out = append(*out, b.Err)
	case KindArray:
		for _, item := range b.Array {
			item.collectErrors(out)
		}
	case KindObject:
		for _, k := range b.SortedKeys() {
			b.Object[k].collectErrors(out)
		}
	}
}

// Safe is a borrowed, guaranteed-Err-free view over a Blob, used at compile
// time once pack-phase errors have already been surfaced as diagnostics.
// Constructing one from a Blob that contains an Err node is a programmer
// error caught at prep-phase validation, not something Safe re-checks.
type Safe struct {
	inner *Blob
}

// NewSafe wraps b as a Safe view. The caller must have already verified
// b.HasError() == false.
func NewSafe(b *Blob) Safe {
	return Safe{inner: b}
}

// Kind returns KindPrim for the zero-value Safe (no blob wrapped), the
// same as an explicit Prim(nil) would.
func (s Safe) Kind() Kind {
	if s.inner == nil {
		return KindPrim
	}
	return s.inner.Kind
}

func (s Safe) Prim() interface{} {
	if s.inner == nil {
		return nil
	}
	return s.inner.Prim
}

func (s Safe) Array() []Safe {
	if s.inner == nil {
		return nil
	}
	out := make([]Safe, len(s.inner.Array))
	for i := range s.inner.Array {
		out[i] = Safe{inner: &s.inner.Array[i]}
	}
	return out
}

func (s Safe) Get(key string) (Safe, bool) {
	if s.inner == nil || s.inner.Kind != KindObject {
		return Safe{}, false
	}
	v, ok := s.inner.Object[key]
	if !ok {
		return Safe{}, false
	}
	return Safe{inner: &v}, true
}

func (s Safe) SortedKeys() []string {
	if s.inner == nil {
		return nil
	}
	return s.inner.SortedKeys()
}
