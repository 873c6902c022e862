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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Pistonite/celer-sub000/internal/config"
	"github.com/Pistonite/celer-sub000/internal/plugin"
	"github.com/Pistonite/celer-sub000/internal/plugin/loader"
	"github.com/Pistonite/celer-sub000/internal/res"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const pluginsCmdFormatFlag = "format"
const pluginsCmdProjectFlag = "project"

var (
	pluginsGroup = &cobra.Command{
		Use:   "plugins",
		Short: "Subcommands related to the project's configured plugins",
	}
	pluginsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the plugins configured for a project",
		Long: `The list command merges the project's config fragments and prints each
configured plugin instance's uri and description, in declaration order.
`,
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			projectFile, err := cmd.Flags().GetString(pluginsCmdProjectFlag)
			if err != nil {
				return err
			}
			proj, err := config.LoadProject(projectFile)
			if err != nil {
				return err
			}
			ld := &res.FileLoader{Root: filepath.Dir(projectFile)}
			fragments, err := config.ResolveConfigFragments(cmd.Context(), ld, res.Path{}, proj.Config)
			if err != nil {
				return fmt.Errorf("failed to resolve config: %w", err)
			}
			cfg, err := config.MergeConfigs(fragments)
			if err != nil {
				return fmt.Errorf("failed to merge config: %w", err)
			}
			instances, err := loader.LoadPlugins(cfg.Plugins)
			if err != nil {
				return fmt.Errorf("failed to load plugins: %w", err)
			}
			return displayPluginsList(instances, cmd)
		},
	}
)

func displayPluginsList(instances []*plugin.Instance, cmd *cobra.Command) error {
	outputFormat := cmd.Flags().Lookup(pluginsCmdFormatFlag).Value.String()

	type pluginRow struct {
		ID             string `json:"id"`
		Uri            string `json:"uri"`
		Description    string `json:"description"`
		AllowDuplicate bool   `json:"allowDuplicate"`
	}
	rows := make([]pluginRow, len(instances))
	for i, inst := range instances {
		rows[i] = pluginRow{
			ID:             inst.ID,
			Uri:            inst.Definition.Uri(),
			Description:    inst.Definition.Description(),
			AllowDuplicate: inst.AllowDuplicate,
		}
	}

	var outputFormatter util.OutputFormatter
	switch outputFormat {
	case "json":
		outputFormatter = &util.JSONOutputFormatter[[]pluginRow]{Data: rows, Out: cmd.OutOrStdout()}
	default:
		tableRows := make([][]string, len(rows))
		for i, r := range rows {
			dup := "no"
			if r.AllowDuplicate {
				dup = "yes"
			}
			tableRows[i] = []string{r.ID, r.Uri, r.Description, dup}
		}
		outputFormatter = &util.TableOutputFormatter{
			Headers: []string{"ID", "URI", "Description", "Allow Duplicate"},
			Rows:    tableRows,
			Out:     cmd.OutOrStdout(),
		}
	}
	outputFormatter.Display()
	return nil
}

func init() {
	pluginsListCmd.Flags().StringP(pluginsCmdFormatFlag, "f", "table", "Format of the output: table (default) or json")
	pluginsGroup.PersistentFlags().StringP(pluginsCmdProjectFlag, "p", "project.yaml", "Path to the project file")
	pluginsGroup.AddCommand(pluginsListCmd)
	rootCmd.AddCommand(pluginsGroup)
}
