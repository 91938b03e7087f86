package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	// Test when environment variable is not set
	os.Unsetenv("TRISHUL_TEST_ENV_VAR")
	value := GetEnv("TEST_ENV_VAR", "default")
	assert.Equal(t, "default", value)

	// Test when environment variable is set
	t.Setenv("TRISHUL_TEST_ENV_VAR", "test-value")
	assert.Equal(t, "test-value", GetEnv("TEST_ENV_VAR", "default"))
	assert.Equal(t, "test-value", GetEnv("test.env.var", "default"))
	assert.Equal(t, "test-value", GetEnv("TRISHUL_TEST_ENV_VAR", "default"))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		setEnv   bool
		defValue bool
		expected bool
	}{
		{"not set", "", false, true, true},
		{"not set", "", false, false, false},
		{"true", "true", true, false, true},
		{"yes", "yes", true, false, true},
		{"1", "1", true, false, true},
		{"false", "false", true, true, false},
		{"no", "no", true, true, false},
		{"0", "0", true, true, false},
		{"invalid", "invalid", true, true, true},
		{"invalid", "invalid", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv("TRISHUL_TEST_ENV_VAR", tt.envValue)
			} else {
				os.Unsetenv("TRISHUL_TEST_ENV_VAR")
			}

			value := GetEnvBool("TEST_ENV_VAR", tt.defValue)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env.local")
	second := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(first, []byte("TRISHUL_DOTENV_A=local\n"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("TRISHUL_DOTENV_A=shared\nTRISHUL_DOTENV_B=shared\n"), 0600))
	t.Cleanup(func() {
		os.Unsetenv("TRISHUL_DOTENV_A")
		os.Unsetenv("TRISHUL_DOTENV_B")
	})

	loaded, err := LoadDotEnv(nil, first, filepath.Join(dir, "missing.env"), second)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, loaded)

	assert.Equal(t, "local", os.Getenv("TRISHUL_DOTENV_A"))
	assert.Equal(t, "shared", os.Getenv("TRISHUL_DOTENV_B"))
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TRISHUL_DOTENV_C=file\n"), 0600))
	t.Setenv("TRISHUL_DOTENV_C", "process")

	_, err := LoadDotEnv(nil, file)
	require.NoError(t, err)
	assert.Equal(t, "process", os.Getenv("TRISHUL_DOTENV_C"))
}
