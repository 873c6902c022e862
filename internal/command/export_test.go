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

func writeExportCmdFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	project := `entry-points:
  main: /route.yaml
config:
  - plugins:
      - use: builtin:export-livesplit
`
	projectPath := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(projectPath, []byte(project), 0o644))
	route := `- Start:
  - Leave the house:
      split-name: House
      movements:
        - [0, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "route.yaml"), []byte(route), 0o644))
	return projectPath
}

func TestExportCmdWritesToStdout(t *testing.T) {
	projectPath := writeExportCmdFixture(t)
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"export", "main", "livesplit", "--project", projectPath,
		"--set", "game-name=Ignored", "--out", "-",
	})
	require.NoError(t, err)
	assert.Contains(t, stdout, "House")
	assert.Equal(t, "", stderr)
}

func TestExportCmdUnknownIDFails(t *testing.T) {
	projectPath := writeExportCmdFixture(t)
	_, _, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"export", "main", "nope", "--project", projectPath,
	})
	assert.Error(t, err)
}

func TestExportCmdInvalidSetFails(t *testing.T) {
	projectPath := writeExportCmdFixture(t)
	_, _, err := executeAndResetCommand(context.Background(), rootCmd, []string{
		"export", "main", "livesplit", "--project", projectPath, "--set", "noequals",
	})
	assert.Error(t, err)
}
