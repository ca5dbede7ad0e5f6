package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/chembal/internal/config"
)

// isolateConfig points HOME at an empty directory and clears CHEMBAL_*
// variables so a developer's own settings cannot leak into a test.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{config.EnvDB, config.EnvFormat, config.EnvSteps, config.EnvVerbose, config.EnvLimit} {
		t.Setenv(name, "")
	}
	return home
}

// executeCommand runs the CLI with args and returns stdout and stderr.
func executeCommand(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := newRootCommand(opts)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := Execute(cmd)
	return out.String(), errOut.String(), err
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
