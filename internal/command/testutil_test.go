package command

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"
)

// executeAndResetCommand runs cmd with args, capturing stdout/stderr, and
// resets cmd's output streams and args afterward so cobra's persistent
// flag/arg state doesn't leak between tests.
func executeAndResetCommand(ctx context.Context, cmd *cobra.Command, args []string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	cmd.SetArgs(nil)
	return stdout.String(), stderr.String(), err
}
