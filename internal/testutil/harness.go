// Package testutil provides shared helpers for harness tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/webstage/internal/app"
	"github.com/vk/webstage/internal/registry"
	"github.com/vk/webstage/internal/webapp"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// DefaultDescriptor is a minimal well-formed deployment descriptor matching
// the compiled-in fixture modules.
const DefaultDescriptor = `
application "addressbook" {}

reference "peopleService" {
  link = "People"
}

reference "clock" {
  link = "Clock"
}
`

// WriteAppDir materializes a deployed-application directory from a map of
// relative file paths to contents and returns its root.
func WriteAppDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// HarnessResult holds the outcomes of a harness test run.
type HarnessResult struct {
	Harness *app.Harness
	URL     string
	Err     error
	Logs    *SafeBuffer
}

// StartHarness provides a standardized harness for integration tests: it
// writes the given files into a fresh application directory, registers the
// given routes, starts the harness on an ephemeral port, and arranges for
// graceful shutdown at test cleanup. Startup errors are returned in the
// result, not failed on, so tests can assert on them.
func StartHarness(t *testing.T, files map[string]string, routes map[string]webapp.HandlerFactory, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := WriteAppDir(t, files)
	cfg, err := app.NewConfig(app.Config{
		AppPath:   dir,
		LogLevel:  "debug",
		LogFormat: "text",
	})
	require.NoError(t, err)

	logs := &SafeBuffer{}
	harness := app.New(logs, cfg, modules...)
	for pattern, factory := range routes {
		harness.Handle(pattern, factory)
	}

	startErr := harness.Start(context.Background())
	if startErr == nil {
		t.Cleanup(func() { _ = harness.Stop(context.Background()) })
	}

	url, _ := harness.URL()
	return &HarnessResult{
		Harness: harness,
		URL:     url,
		Err:     startErr,
		Logs:    logs,
	}
}
