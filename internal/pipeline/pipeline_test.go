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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	projectPath := filepath.Join(dir, "project.yaml")
	project := `entry-points:
  main: /route.yaml
config:
  - map:
      initial-color: red
`
	require.NoError(t, os.WriteFile(projectPath, []byte(project), 0o644))
	route := `- Start:
  - Leave the house:
      movements:
        - [0, 0]
  - Head north:
      movements:
        - [0, 10]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "route.yaml"), []byte(route), 0o644))
	return projectPath
}

func TestRunCompilesSimpleProject(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeProject(t, dir)

	result, err := Run(context.Background(), Options{ProjectFile: projectPath}, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", result.EntryPoint)
	require.Len(t, result.Doc.Route, 1)
	assert.Equal(t, "Start", result.Doc.Route[0].Name)
	require.Len(t, result.Doc.Route[0].Lines, 2)
}

func TestRunAllCompilesEveryEntryPoint(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeProject(t, dir)

	results, err := RunAll(context.Background(), Options{ProjectFile: projectPath})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "main", results[0].EntryPoint)
}

func TestRunUnknownEntryPoint(t *testing.T) {
	dir := t.TempDir()
	projectPath := writeProject(t, dir)

	_, err := Run(context.Background(), Options{ProjectFile: projectPath}, "nope")
	assert.Error(t, err)
}

func TestRunCarriesCustomTagsThrough(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "project.yaml")
	project := `entry-points:
  main: /route.yaml
config:
  - tags:
      warn:
        color: yellow
        bold: true
`
	require.NoError(t, os.WriteFile(projectPath, []byte(project), 0o644))
	route := `- Start:
  - Leave the house:
      movements:
        - [0, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "route.yaml"), []byte(route), 0o644))

	result, err := Run(context.Background(), Options{ProjectFile: projectPath}, "main")
	require.NoError(t, err)
	require.Contains(t, result.Doc.Tags, "warn")
	assert.Equal(t, "yellow", result.Doc.Tags["warn"].Color)
	assert.True(t, result.Doc.Tags["warn"].Bold)
}
