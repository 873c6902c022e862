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

	"github.com/spf13/cobra"

	"github.com/Pistonite/celer-sub000/internal/exec"
	"github.com/Pistonite/celer-sub000/internal/pipeline"
	"github.com/Pistonite/celer-sub000/internal/util"
)

const (
	compileCmdFormatFlag  = "format"
	compileCmdProjectFlag = "project"
)

var compileCmd = &cobra.Command{
	Use:   "compile [entry-point]",
	Short: "Compile a project's route documents into executed documents",
	Long: `The compile command runs prepare, pack, compile, and execute over a
project's entry points and prints the resulting executed document(s) as
json or yaml. By default every entry point declared in the project file is
compiled; pass an entry-point name to compile just one.
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		projectFile, err := cmd.Flags().GetString(compileCmdProjectFlag)
		if err != nil {
			return err
		}
		var entryPoint string
		if len(args) > 0 {
			entryPoint = args[0]
		}
		opts := pipeline.Options{ProjectFile: projectFile}

		var results []pipeline.Result
		if entryPoint != "" {
			result, err := pipeline.Run(cmd.Context(), opts, entryPoint)
			if err != nil {
				return fmt.Errorf("failed to compile entry point '%s': %w", entryPoint, err)
			}
			results = []pipeline.Result{*result}
		} else {
			results, err = pipeline.RunAll(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to compile project: %w", err)
			}
		}

		return displayCompileResults(results, cmd)
	},
}

func displayCompileResults(results []pipeline.Result, cmd *cobra.Command) error {
	outputFormat := cmd.Flags().Lookup(compileCmdFormatFlag).Value.String()

	docs := make(map[string]exec.ExecDoc, len(results))
	for _, r := range results {
		docs[r.EntryPoint] = r.Doc
	}

	var outputFormatter util.OutputFormatter
	switch outputFormat {
	case "yaml":
		outputFormatter = &util.YAMLOutputFormatter[map[string]exec.ExecDoc]{Data: docs, Out: cmd.OutOrStdout()}
	default:
		outputFormatter = &util.JSONOutputFormatter[map[string]exec.ExecDoc]{Data: docs, Out: cmd.OutOrStdout()}
	}
	outputFormatter.Display()
	return nil
}

func init() {
	compileCmd.Flags().StringP(compileCmdFormatFlag, "f", "json", "Format of the output: json or yaml")
	compileCmd.Flags().StringP(compileCmdProjectFlag, "p", "project.yaml", "Path to the project file")
	rootCmd.AddCommand(compileCmd)
}
