package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	out, err := run(t, "evaluate", "--age", "12", "--completed", "M_12M_001", "--json")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Contains(t, body, "result")
	assert.Contains(t, body, "recommendations")
}

func TestEvaluateRequiresAge(t *testing.T) {
	_, err := run(t, "evaluate")
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	out, err := run(t, "chat", "my", "10", "month", "old", "is", "not", "crawling")
	require.NoError(t, err)
	assert.Contains(t, out, "10-month-old")
}

func TestCatalogValidate(t *testing.T) {
	t.Run("embedded catalogs are valid", func(t *testing.T) {
		out, err := run(t, "catalog", "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "ok:")
	})

	t.Run("bad file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- milestone_id: X\n"), 0o600))
		_, err := run(t, "catalog", "validate", "--milestones", path)
		assert.Error(t, err)
	})
}

func TestDatasetCommands(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(manifest, []byte(
		"filename,child_age,milestone_id,label\n"+
			"a.mp4,8,M_9M_001,yes\n"+
			"b.mov,20,L_24M_003,no\n"), 0o600))

	t.Run("deidentify needs a salt", func(t *testing.T) {
		t.Setenv("VIDEO_HASH_SALT", "")
		_, err := run(t, "dataset", "deidentify", manifest, "--out", filepath.Join(dir, "out0"))
		assert.Error(t, err)
	})

	t.Run("dry run writes mapping and csv", func(t *testing.T) {
		t.Setenv("VIDEO_HASH_SALT", "test-salt")
		outDir := filepath.Join(dir, "out1")
		out, err := run(t, "dataset", "deidentify", manifest, "--out", outDir)
		require.NoError(t, err)
		assert.Contains(t, out, "dry-run: 2 rows")
		assert.FileExists(t, filepath.Join(outDir, mappingFile))
		assert.FileExists(t, filepath.Join(outDir, deidentifiedCSV))
	})

	t.Run("report", func(t *testing.T) {
		out, err := run(t, "dataset", "report", manifest)
		require.NoError(t, err)
		assert.Contains(t, out, "Total Videos: 2")
		assert.Contains(t, out, "M_9M_001")
	})
}
