package command

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHelp(t *testing.T) {
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"--help"})
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Celer compiles a tree of route documents")
	assert.Contains(t, stdout, "Usage:\n  celerc [command]")
	assert.Contains(t, stdout, "-v, --verbose count   increase log verbosity and detail by specifying this flag one or more times")
	assert.Contains(t, stdout, "--quiet           mute any logging output")
	assert.Equal(t, "", stderr)
}

func TestRootVersion(t *testing.T) {
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"--version"})
	assert.NoError(t, err)
	pattern := regexp.MustCompile(`^celerc \S+ \(build: \S+, sha: \S+\)\n$`)
	assert.Truef(t, pattern.MatchString(stdout), "%s does not match: '%s'", pattern.String(), stdout)
	assert.Equal(t, "", stderr)
}

func TestRootCompletion(t *testing.T) {
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"completion", "bash"})
	assert.NoError(t, err)
	assert.Contains(t, stdout, "# bash completion V2 for celerc")
	assert.Equal(t, "", stderr)
}

func TestRootUnknown(t *testing.T) {
	stdout, stderr, err := executeAndResetCommand(context.Background(), rootCmd, []string{"unknown"})
	assert.EqualError(t, err, "unknown command \"unknown\" for \"celerc\"")
	assert.Equal(t, "", stdout)
	assert.Equal(t, "", stderr)
}
