package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeInventory(t, sampleInventory)

	doc, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc.All)
	assert.Len(t, doc.All.Children, 2)
	assert.Equal(t, []string{"h2", "h1"}, doc.All.Children["web"].HostNames())
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name       string
		path       func(t *testing.T) string
		wantReason string
		wantPath   bool
	}{
		{
			name:       "empty path",
			path:       func(t *testing.T) string { return "" },
			wantReason: "inventory file path is required",
		},
		{
			name:       "missing file",
			path:       func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantReason: "inventory file not found",
			wantPath:   true,
		},
		{
			name:       "path is a directory",
			path:       func(t *testing.T) string { return t.TempDir() },
			wantReason: "failed to read inventory file",
			wantPath:   true,
		},
		{
			name:       "invalid yaml",
			path:       func(t *testing.T) string { return writeInventory(t, "all: [unclosed") },
			wantReason: "failed to parse inventory file",
			wantPath:   true,
		},
		{
			name:       "unsupported hosts shape",
			path:       func(t *testing.T) string { return writeInventory(t, "all:\n  children:\n    web:\n      hosts: web-01\n") },
			wantReason: "failed to parse inventory file",
			wantPath:   true,
		},
		{
			name:       "empty file",
			path:       func(t *testing.T) string { return writeInventory(t, "") },
			wantReason: "missing 'all' section",
			wantPath:   true,
		},
		{
			name:       "no children key",
			path:       func(t *testing.T) string { return writeInventory(t, "all:\n  hosts:\n    h1:\n") },
			wantReason: "missing 'all.children' section",
			wantPath:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)

			doc, err := Load(path)
			assert.Nil(t, doc)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantReason, cfgErr.Reason)
			if tt.wantPath {
				assert.Equal(t, path, cfgErr.Path)
				assert.Contains(t, err.Error(), path)
			}
		})
	}
}

func TestLoad_MissingFileUnwrapsToNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadIndex(t *testing.T) {
	path := writeInventory(t, sampleInventory)

	idx, err := LoadIndex(path)
	require.NoError(t, err)

	assert.Equal(t, path, idx.Source())
	assert.Equal(t, []string{"web", "db"}, idx.ListGroups())
	assert.Equal(t, []string{"h3:9100", "h2:9100", "h1:9100"}, idx.ListAllHosts(true))
}

func TestLoadIndex_MergeKeyInHostMapping(t *testing.T) {
	path := writeInventory(t, `
all:
  children:
    web:
      hosts:
        <<: {a: 1}
        b:
`)

	idx, err := LoadIndex(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, idx.ListHosts("web", false))
	assert.Equal(t, 2, idx.HostCount())
}

func TestLoadIndex_Failure(t *testing.T) {
	path := writeInventory(t, "other: {}\n")

	idx, err := LoadIndex(path)
	assert.Nil(t, idx)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
}

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{Path: "/etc/hosts.yaml", Reason: "inventory file not found", Err: os.ErrNotExist}
	assert.Equal(t, "inventory configuration error (/etc/hosts.yaml): inventory file not found: file does not exist", err.Error())

	bare := &ConfigurationError{Reason: "missing 'all' section"}
	assert.Equal(t, "inventory configuration error: missing 'all' section", bare.Error())
}

func TestLoadIndex_ExampleInventory(t *testing.T) {
	idx, err := LoadIndex(filepath.Join("..", "..", "configs", "hosts.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"web", "staging", "db", "cache"}, idx.ListGroups())
	assert.Equal(t, []string{"db-replica.example.com", "db-primary.example.com"}, idx.ListHosts("db", false))
	assert.Equal(t, []string{"redis-2.example.com:9100", "redis-1.example.com:9100"}, idx.ListHosts("cache", true))
	assert.Equal(t, []string{}, idx.ListHosts("staging", true))
	assert.Equal(t, 6, idx.HostCount())
}
