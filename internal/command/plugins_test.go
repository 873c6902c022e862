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

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePluginsFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	project := `entry-points:
  main: /route.yaml
config:
  - plugins:
      - use: builtin:variables
        props:
          expose: true
      - use: builtin:link
`
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(project), 0o644))
	return path
}

func TestPluginsListTable(t *testing.T) {
	projectPath := writePluginsFixture(t)
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"plugins", "list", "--project", projectPath})
	require.NoError(t, err)
	assert.Contains(t, stdout, "builtin:variables")
	assert.Contains(t, stdout, "builtin:link")
	assert.Equal(t, "", stderr)
}

func TestPluginsListJSON(t *testing.T) {
	projectPath := writePluginsFixture(t)
	stdout, _, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"plugins", "list", "--project", projectPath, "--format", "json",
	})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"uri": "builtin:variables"`)
}
