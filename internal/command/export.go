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
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Pistonite/celer-sub000/internal/pipeline"
)

const (
	exportCmdProjectFlag = "project"
	exportCmdPayloadFlag = "payload"
	exportCmdSetFlag     = "set"
	exportCmdOutFlag     = "out"
)

var exportCmd = &cobra.Command{
	Use:   "export <entry-point> <export-id>",
	Short: "Run a plugin's export hook against a compiled entry point",
	Long: `The export command compiles an entry point and dispatches on_export_comp_doc
on whichever loaded plugin instance advertised export-id via
on_prepare_export, writing the resulting artifact to a file (or stdout with
--out -). The payload passed to the hook starts from --payload (a raw json
object, default "{}") patched by zero or more --set key=value flags, each
applied as a dot-path set against the payload json before it is parsed.
`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		entryPoint, exportID := args[0], args[1]

		projectFile, err := cmd.Flags().GetString(exportCmdProjectFlag)
		if err != nil {
			return err
		}
		payloadJSON, err := cmd.Flags().GetString(exportCmdPayloadFlag)
		if err != nil {
			return err
		}
		sets, err := cmd.Flags().GetStringArray(exportCmdSetFlag)
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString(exportCmdOutFlag)
		if err != nil {
			return err
		}

		for _, kv := range sets {
			path, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set '%s': expected key=value", kv)
			}
			payloadJSON, err = sjson.Set(payloadJSON, path, value)
			if err != nil {
				return fmt.Errorf("failed to apply --set '%s': %w", kv, err)
			}
		}

		parsed := gjson.Parse(payloadJSON)
		if !parsed.IsObject() {
			return fmt.Errorf("--payload must be a json object, got: %s", payloadJSON)
		}
		payload, ok := parsed.Value().(map[string]interface{})
		if !ok {
			payload = map[string]interface{}{}
		}

		doc, err := pipeline.Export(cmd.Context(), pipeline.Options{ProjectFile: projectFile}, entryPoint, exportID, payload)
		if err != nil {
			return fmt.Errorf("failed to export '%s' for entry point '%s': %w", exportID, entryPoint, err)
		}

		if out == "-" {
			_, err := cmd.OutOrStdout().Write(doc.Content)
			return err
		}
		if out == "" {
			out = doc.Filename
		}
		return os.WriteFile(out, doc.Content, 0o644)
	},
}

func init() {
	exportCmd.Flags().StringP(exportCmdProjectFlag, "p", "project.yaml", "Path to the project file")
	exportCmd.Flags().String(exportCmdPayloadFlag, "{}", "Base json object passed to the plugin's export hook")
	exportCmd.Flags().StringArray(exportCmdSetFlag, nil, "key=value pairs patched into the payload json (dot-path, repeatable)")
	exportCmd.Flags().StringP(exportCmdOutFlag, "o", "", "Output file path ('-' for stdout; default: the artifact's own filename)")
	rootCmd.AddCommand(exportCmd)
}
