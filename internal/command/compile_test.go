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

func writeCompileFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	project := `entry-points:
  main: /route.yaml
config:
  - map:
      initial-color: red
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(project), 0o644))
	route := `- Start:
  - Leave the house:
      movements:
        - [0, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "route.yaml"), []byte(route), 0o644))
	return filepath.Join(dir, "project.yaml")
}

func TestCompileCmdAllEntryPointsJSON(t *testing.T) {
	projectPath := writeCompileFixture(t)
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"compile", "--project", projectPath})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"main"`)
	assert.Contains(t, stdout, `"Start"`)
	assert.Equal(t, "", stderr)
}

func TestCompileCmdSingleEntryPointYAML(t *testing.T) {
	projectPath := writeCompileFixture(t)
	stdout, _, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"compile", "--project", projectPath, "--format", "yaml", "main",
	})
	require.NoError(t, err)
	assert.Contains(t, stdout, "main:")
	assert.Contains(t, stdout, "project: route.yaml")
}

func TestCompileCmdUnknownEntryPoint(t *testing.T) {
	projectPath := writeCompileFixture(t)
	_, _, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"compile", "--project", projectPath, "nope",
	})
	assert.Error(t, err)
}
