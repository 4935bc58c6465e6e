package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/webstage/internal/app"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_StartupFailureSurfaces(t *testing.T) {
	t.Parallel()

	// An application directory with no deployment descriptor must fail
	// startup and surface the failure as an error, not hang serving.
	tempDir := t.TempDir()
	out := &bytes.Buffer{}

	err := run(out, []string{tempDir})

	require.Error(t, err)
	var failed *app.FailedError
	require.ErrorAs(t, err, &failed)
}
