// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import "github.com/spf13/cast"

// CoerceString converts an arbitrary decoded YAML/JSON value into a string,
// the way property handlers need to stringify primitives that may have come
// in as a bool, number, or string.
func CoerceString(v any) string {
	return cast.ToString(v)
}

// CoerceFloat64 converts an arbitrary decoded value into a float64, returning
// ok=false if the value isn't numeric and can't be parsed as one.
func CoerceFloat64(v any) (float64, bool) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CoerceBool converts an arbitrary decoded value into a bool, returning
// ok=false if the value isn't a recognizable boolean.
func CoerceBool(v any) (bool, bool) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}
