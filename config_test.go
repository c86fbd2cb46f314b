package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, 4, config.Retries)
	assert.Equal(t, time.Second, config.RetryInterval.Std())
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeFile(t, "config.yaml", `
url: ws://example.test/feed
hello: '{"a":111}'
readTimeout: 2m
retries: 2
retryInterval: 250ms
cookie: NYT-S=abc
verbose: true
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://example.test/feed", config.URL)
	assert.Equal(t, `{"a":111}`, config.Hello)
	assert.Equal(t, 2*time.Minute, config.ReadTimeout.Std())
	assert.Equal(t, 2, config.Retries)
	assert.Equal(t, 250*time.Millisecond, config.RetryInterval.Std())
	assert.Equal(t, "NYT-S=abc", config.Cookie)
	assert.True(t, config.Verbose)

	// untouched fields keep their defaults
	assert.Equal(t, DefaultConfig().HandshakeTimeout, config.HandshakeTimeout)
	assert.Equal(t, DefaultConfig().Jobs, config.Jobs)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "readTimeout: soon\n"},
		{name: "bad yaml", content: "retries: [\n"},
		{name: "zero retries", content: "retries: 0\n"},
		{name: "zero jobs", content: "jobs: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "config.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
