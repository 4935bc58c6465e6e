package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
}

func TestParsePositionalAppPath(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"./myapp"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "./myapp", cfg.AppPath)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 0, cfg.Port)
}

func TestParseAppFlagWinsOverPositional(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-app", "./flagged", "./positional"}, out)
	require.NoError(t, err)
	assert.Equal(t, "./flagged", cfg.AppPath)
}

func TestParseShorthandFlag(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-a", "./short"}, out)
	require.NoError(t, err)
	assert.Equal(t, "./short", cfg.AppPath)
}

func TestParseInvalidLogFormat(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"-log-format", "xml", "./myapp"}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseInvalidLogLevel(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"-log-level", "verbose", "./myapp"}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParsePortAndHost(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-host", "0.0.0.0", "-port", "8080", "./myapp"}, out)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}
