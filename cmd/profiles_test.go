package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesCmd_ListsBuiltin(t *testing.T) {
	cfg = testConfig()

	var out bytes.Buffer
	profilesCmd.SetOut(&out)
	defer profilesCmd.SetOut(nil)

	require.NoError(t, profilesCmd.RunE(profilesCmd, nil))
	assert.Contains(t, out.String(), "qwen2.5-coder")
	assert.Contains(t, out.String(), `QWEN2\.5-CODER(.*?)`)
	assert.Contains(t, out.String(), `"Container found"`)
}

func TestProfilesCmd_WithFile(t *testing.T) {
	cfg = testConfig()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  llama:\n    pattern: 'LLAMA(.*?)END'\n"), 0o644))

	old := profilesFile
	profilesFile = path
	defer func() { profilesFile = old }()

	var out bytes.Buffer
	profilesCmd.SetOut(&out)
	defer profilesCmd.SetOut(nil)

	require.NoError(t, profilesCmd.RunE(profilesCmd, nil))
	assert.Contains(t, out.String(), "llama")
	assert.Contains(t, out.String(), "qwen2.5-coder")
}
