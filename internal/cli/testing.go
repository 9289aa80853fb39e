package cli

import (
	"bytes"
	"strings"
	"testing"
)

// CLI runs the real entry point against in-memory buffers in tests.
// It manages a temp working directory and a hermetic environment (the
// global config lookup is pointed into the temp dir).
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"XDG_CONFIG_HOME": dir},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr,
// and the exit code. Args should not include "stringer" or "--cwd" -
// those are added automatically.
func (c *CLI) Run(args ...string) (string, string, int) {
	return c.RunWithInput("", args...)
}

// RunWithInput executes the CLI with the given stdin content.
func (c *CLI) RunWithInput(stdin string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"stringer", "--cwd", c.Dir}, args...)
	code := Run(strings.NewReader(stdin), &outBuf, &errBuf, fullArgs, c.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test on a non-zero exit.
// Returns stdout.
func (c *CLI) MustRun(args ...string) string {
	c.t.Helper()

	stdout, stderr, code := c.Run(args...)
	if code != 0 {
		c.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return stdout
}
