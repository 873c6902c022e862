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

package link

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
)

func TestOnAfterCompileRewritesLinkTag(t *testing.T) {
	p := New()
	blocks := rich.Parse("see .link(https://example.com) for details")
	doc := &comp.CompDoc{
		Route: []comp.CompSection{{Name: "s", Lines: []comp.CompLine{{Text: blocks}}}},
	}
	diags := p.OnAfterCompile(context.Background(), nil, doc)
	assert.Empty(t, diags)

	var found bool
	for _, b := range doc.Route[0].Lines[0].Text {
		if b.Link != nil {
			found = true
			assert.Equal(t, "https://example.com", *b.Link)
			assert.Nil(t, b.Tag)
		}
	}
	require.True(t, found)
}

func TestOnAfterCompileLeavesOtherTagsAlone(t *testing.T) {
	p := New()
	blocks := rich.Parse(".bold(hi)")
	doc := &comp.CompDoc{
		Route: []comp.CompSection{{Name: "s", Lines: []comp.CompLine{{Text: blocks}}}},
	}
	p.OnAfterCompile(context.Background(), nil, doc)
	require.Len(t, doc.Route[0].Lines[0].Text, 1)
	require.NotNil(t, doc.Route[0].Lines[0].Text[0].Tag)
	assert.Equal(t, "bold", *doc.Route[0].Lines[0].Text[0].Tag)
}
