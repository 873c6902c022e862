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
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Pistonite/celer-sub000/internal/logging"
	"github.com/Pistonite/celer-sub000/internal/version"
)

var (
	verboseCount int
	quiet        bool

	rootCmd = &cobra.Command{
		Use:   "celerc",
		Short: "Celer route document compiler",
		Long: `Celer compiles a tree of route documents into a renderable executed document.
It resolves resources and presets, compiles route text and movements, and runs
a plugin pipeline over the result to produce map sections and exports.`,
		Version:           version.BuildVersionString(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError + 1
	case verboseCount >= 2:
		level = slog.LevelDebug
	case verboseCount == 1:
		level = slog.LevelInfo
	}
	var handler slog.Handler
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = &logging.ColorHandler{Writer: cmd.ErrOrStderr(), Level: level}
	} else {
		handler = &logging.SimpleHandler{Writer: cmd.ErrOrStderr(), Level: level}
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "increase log verbosity and detail by specifying this flag one or more times")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "mute any logging output")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
