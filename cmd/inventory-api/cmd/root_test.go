package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("debug", "json", &buf)

	logger.Info().Str("path", "hosts.yaml").Msg("loading host inventory file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hosts.yaml", entry["path"])
	assert.Equal(t, "loading host inventory file", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetupLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("info", "console", &buf)

	logger.Info().Msg("inventory loaded")

	assert.Contains(t, buf.String(), "inventory loaded")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestSetupLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("warn", "json", &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = setupLogger("bogus", "json", &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.True(t, strings.HasPrefix(info, Version+"\n"))
	assert.Contains(t, info, "Git Commit: ")
	assert.Contains(t, info, "OS/Arch: ")
}
