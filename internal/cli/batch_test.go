package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chembal/internal/store"
)

const passingReactions = `package reactions

reaction: rust: {
	equation: "Fe + O2 = Fe2O3"
	expect: [4, 3, 2]
}

reaction: water: equation: "H2 + O2 -> H2O"
`

func TestBatchCommand_AllPass(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, t.TempDir(), "reactions.cue", passingReactions)

	out, _, err := executeCommand(t, nil, "batch", path)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ rust: 4 Fe + 3 O2 → 2 Fe2O3\n")
	assert.Contains(t, out, "✓ water: 2 H2 + O2 → 2 H2O\n")
	assert.Contains(t, out, "Batch Summary: 2 passed, 0 failed, 2 total")
}

func TestBatchCommand_Directory(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "rust.cue", "package reactions\n\nreaction: rust: equation: \"Fe + O2 = Fe2O3\"\n")
	writeFile(t, dir, "water.cue", "package reactions\n\nreaction: water: equation: \"H2 + O2 = H2O\"\n")

	out, _, err := executeCommand(t, nil, "batch", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch Summary: 2 passed, 0 failed, 2 total")
}

func TestBatchCommand_Failures(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, t.TempDir(), "reactions.cue", `package reactions

reaction: water: {
	equation: "H2 + O2 = H2O"
	expect: [1, 1, 1]
}

reaction: impossible: equation: "H2 = O2"
`)

	out, _, err := executeCommand(t, nil, "batch", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ water: H2 + O2 = H2O\n  [E204] coefficients [2 1 2], expected [1 1 1]\n")
	assert.Contains(t, out, "✗ impossible: H2 = O2\n  [E202]")
	assert.Contains(t, out, "Batch Summary: 0 passed, 2 failed, 2 total")
}

func TestBatchCommand_JSONRecordsHistory(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "reactions.cue", passingReactions)
	dbPath := filepath.Join(dir, "history.db")

	out, _, err := executeCommand(t, &RootOptions{RunIDs: store.NewFixedGenerator("batch-run")},
		"batch", path, "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		RunID  string      `json:"run_id"`
		Data   BatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "batch-run", resp.RunID)
	assert.Equal(t, 2, resp.Data.Passed)
	require.Len(t, resp.Data.Reactions, 2)

	// Reactions come back sorted by name.
	assert.Equal(t, "rust", resp.Data.Reactions[0].Name)
	assert.Equal(t, "water", resp.Data.Reactions[1].Name)
	for _, r := range resp.Data.Reactions {
		assert.NotEmpty(t, r.RecordID, r.Name)
	}
}

func TestBatchCommand_CommandErrors(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing path", filepath.Join(dir, "nope.cue"), ErrCodeNotFound},
		{"not a cue file", writeFile(t, dir, "reactions.txt", "reaction: {}"), ErrCodeNoFiles},
		{"empty directory", t.TempDir(), ErrCodeNoFiles},
		{"no reactions", writeFile(t, dir, "empty.cue", "package reactions\n\nreaction: {}\n"), ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, nil, "batch", tt.path, "--format", "json")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestBatchCommand_ValidationErrors(t *testing.T) {
	isolateConfig(t)
	path := writeFile(t, t.TempDir(), "reactions.cue", `package reactions

reaction: short: {
	equation: "H2 + O2 = H2O"
	expect: [2, 1]
}

reaction: broken: equation: "H2 + O2 ="
`)

	out, _, err := executeCommand(t, nil, "batch", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Contains(t, out, "✗ Reaction set invalid")
	assert.Contains(t, out, "E103")
	assert.Contains(t, out, "E104")
}
