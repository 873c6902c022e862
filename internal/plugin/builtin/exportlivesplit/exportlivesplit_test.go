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

package exportlivesplit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pistonite/celer-sub000/internal/comp"
	"github.com/Pistonite/celer-sub000/internal/lang/rich"
)

func TestOnPrepareExportAdvertisesLivesplit(t *testing.T) {
	p := New()
	meta, err := p.OnPrepareExport(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, meta, 1)
	assert.Equal(t, exportID, meta[0].ID)
}

func TestOnExportCompDocRendersSplits(t *testing.T) {
	p := New()
	doc := &comp.CompDoc{
		Route: []comp.CompSection{
			{Name: "Start", Lines: []comp.CompLine{
				{SplitName: rich.Parse("Leave House")},
			}},
			{Name: "Dungeon", Lines: []comp.CompLine{
				{},
			}},
		},
	}
	out, err := p.OnExportCompDoc(context.Background(), map[string]interface{}{"game-name": "Test Game"}, exportID, nil, doc)
	require.NoError(t, err)
	assert.Equal(t, "route.lss", out.Filename)
	content := string(out.Content)
	assert.True(t, strings.Contains(content, "Test Game"))
	assert.True(t, strings.Contains(content, "Leave House"))
	assert.True(t, strings.Contains(content, "Dungeon"))
}

func TestOnExportCompDocRejectsUnknownID(t *testing.T) {
	p := New()
	_, err := p.OnExportCompDoc(context.Background(), nil, "other", nil, &comp.CompDoc{})
	assert.Error(t, err)
}
