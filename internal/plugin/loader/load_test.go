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

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pistonite/celer-sub000/internal/config"
)

func TestLoadPluginsResolvesBuiltins(t *testing.T) {
	instances, err := LoadPlugins([]config.PluginConfig{
		{Use: "builtin:variables"},
		{Use: "builtin:link"},
	})
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "builtin:variables", instances[0].Definition.Uri())
	assert.Equal(t, "builtin:link", instances[1].Definition.Uri())
	assert.NotEmpty(t, instances[0].ID)
	assert.NotEqual(t, instances[0].ID, instances[1].ID)
}

func TestLoadPluginsResolvesScript(t *testing.T) {
	instances, err := LoadPlugins([]config.PluginConfig{
		{Use: "script:my-resource.js"},
	})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "script:my-resource.js", instances[0].Definition.Uri())
}

func TestLoadPluginsRejectsUnknownScheme(t *testing.T) {
	_, err := LoadPlugins([]config.PluginConfig{{Use: "ftp:nope"}})
	assert.Error(t, err)
}

func TestLoadPluginsRejectsUnknownBuiltin(t *testing.T) {
	_, err := LoadPlugins([]config.PluginConfig{{Use: "builtin:nonexistent"}})
	assert.Error(t, err)
}

func TestLoadPluginsDoesNotHardFailOnDuplicates(t *testing.T) {
	instances, err := LoadPlugins([]config.PluginConfig{
		{Use: "builtin:variables"},
		{Use: "builtin:variables"},
	})
	require.NoError(t, err)
	require.Len(t, instances, 2)
}
