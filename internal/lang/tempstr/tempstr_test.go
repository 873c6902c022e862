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

package tempstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	p := Parse("")
	assert.Empty(t, p.Parts)
	assert.Equal(t, "", p.Hydrate(nil))
}

func TestSingleLiteral(t *testing.T) {
	p := Parse("hello")
	assert.Equal(t, "hello", p.Hydrate(nil))
}

func TestSingleNumber(t *testing.T) {
	p := Parse("123")
	assert.Equal(t, "123", p.Hydrate(nil))
}

func TestSingleDollar(t *testing.T) {
	p := Parse("$")
	assert.Equal(t, "$", p.Hydrate(nil))
}

func TestSingleVariable(t *testing.T) {
	p := Parse("$(0)")
	assert.Equal(t, "a", p.Hydrate([]string{"a"}))
}

func TestOneVarWithOther(t *testing.T) {
	p := Parse("hello $(0) world")
	assert.Equal(t, "hello a world", p.Hydrate([]string{"a"}))
}

func TestDoubleDollar(t *testing.T) {
	p := Parse("$$")
	assert.Equal(t, "$", p.Hydrate(nil))
}

func TestTripleDollar(t *testing.T) {
	p := Parse("$$$")
	assert.Equal(t, "$$", p.Hydrate(nil))
}

func TestEscapeVariable(t *testing.T) {
	p := Parse("$$(0)")
	assert.Equal(t, "$(0)", p.Hydrate([]string{"a"}))
}

func TestNoNested(t *testing.T) {
	p := Parse("$($(0))")
	// the outer "$(" is not followed by digits (it's followed by another
	// '$'), so it falls back to a literal '$' and '(', and the inner
	// "$(0)" is parsed as a variable reference on its own.
	assert.Equal(t, "$(a)", p.Hydrate([]string{"a"}))
}

func TestVariableNotNumber(t *testing.T) {
	p := Parse("$(x)")
	assert.Equal(t, "$(x)", p.Hydrate(nil))
}

func TestMultipleVar(t *testing.T) {
	p := Parse("$(0)$(1)$(0)")
	assert.Equal(t, "ab a", p.Hydrate([]string{"a", "b"}))
}

func TestComplicated(t *testing.T) {
	p := Parse("a$(0)b$$(1)c$(2)$")
	assert.Equal(t, "aXb$(1)c$", p.Hydrate([]string{"X", "Y"}))
}

func TestMaxVar(t *testing.T) {
	assert.Equal(t, -1, Parse("hello").MaxVar())
	assert.Equal(t, 2, Parse("$(2)$(0)").MaxVar())
}

func TestRoundTripString(t *testing.T) {
	src := "a$(0)b$(12)c"
	assert.Equal(t, src, Parse(src).String())
}
