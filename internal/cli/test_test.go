package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waterScenario = `name: water
description: "Hydrogen burns to water"
reactions:
  - equation: "H2 + O2 = H2O"
    expect:
      coefficients: [2, 1, 2]
  - equation: "H2 = O2"
    expect:
      error: singular
`

const wrongScenario = `name: wrong
description: "Expects the wrong coefficients"
reactions:
  - equation: "H2 + O2 = H2O"
    expect:
      coefficients: [1, 1, 1]
`

func TestTestCommand_Pass(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "water.yaml", waterScenario)

	out, _, err := executeCommand(t, nil, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ water\n")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_Fail(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "water.yaml", waterScenario)
	writeFile(t, dir, "wrong.yaml", wrongScenario)

	out, _, err := executeCommand(t, nil, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong\n")
	assert.Contains(t, out, "coefficients [2 1 2], expected [1 1 1]")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "water.yaml", waterScenario)
	writeFile(t, dir, "wrong.yaml", wrongScenario)

	out, _, err := executeCommand(t, nil, "test", dir, "--filter", "wat*")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_LoadError(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, t.TempDir(), "bad.yaml", "name: bad\nreactions: []\n")

	out, _, err := executeCommand(t, nil, "test", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ bad.yaml\n  failed to load scenario")
}

func TestTestCommand_Golden(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	scenarioPath := writeFile(t, dir, "water.yaml", waterScenario)
	goldenPath := filepath.Join(dir, "golden", "water.golden")

	out, _, err := executeCommand(t, nil, "test", scenarioPath, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ water (golden updated)")

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(golden))
	assert.Contains(t, string(golden), `"scenario_name":"water"`)

	// The directory walk skips golden/ and the fresh golden matches.
	out, _, err = executeCommand(t, nil, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"stale"}`), 0644))
	out, _, err = executeCommand(t, nil, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "outcomes do not match golden file")
}

func TestTestCommand_JSON(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "wrong.yaml", wrongScenario)

	out, _, err := executeCommand(t, nil, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Error  *CLIError  `json:"error"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.False(t, resp.Data.Scenarios[0].Pass)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTestCommand_NoScenarios(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeCommand(t, nil, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommand_MissingPath(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeCommand(t, nil, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "water.golden"), goldenFilePath(filepath.Join("scenarios", "water.yaml")))
}
