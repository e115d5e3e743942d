package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPromptNoProfile(t *testing.T) {
	p := SystemPrompt(nil)
	assert.Contains(t, p, `"issues"`)
	assert.Contains(t, p, "CRITICAL")
	assert.Contains(t, p, "Do not include any additional text outside of the JSON format.")
}

func TestSystemPromptWithProfile(t *testing.T) {
	profile := &Profile{
		Focus:        []string{"injection", "secrets"},
		Instructions: []string{"Flag any use of eval."},
	}

	p := SystemPrompt(profile)
	assert.Contains(t, p, "Focus areas: injection, secrets")
	assert.Contains(t, p, "- Flag any use of eval.")
	// The base contract must survive the profile extension.
	assert.Contains(t, p, `"issues"`)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "focus:\n  - crypto\ninstructions:\n  - Check key lengths.\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"crypto"}, p.Focus)
	assert.Equal(t, []string{"Check key lengths."}, p.Instructions)
}

func TestLoadProfileEmptyPath(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoadProfileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus: [unclosed"), 0o644))

	_, err := LoadProfile(path)
	assert.Error(t, err)
}
