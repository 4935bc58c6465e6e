package resolution

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/webstage/internal/descriptor"
	"github.com/vk/webstage/internal/diag"
	"github.com/vk/webstage/internal/registry"
	"github.com/vk/webstage/internal/testutil"
	"github.com/vk/webstage/internal/webapp"
	"github.com/vk/webstage/modules/people"
)

// spyHandler records the component instance it was injected with.
type spyHandler struct {
	People *people.Service `component:"peopleService"`

	record func(*people.Service)
}

func (h *spyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.record(h.People)
	w.WriteHeader(http.StatusOK)
}

// Test for: a declared reference with a matching registry binding resolves
// to that binding's exact component instance, verified by identity.
func TestResolution_ReferenceResolvesToRegisteredInstance(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var mu sync.Mutex
	var seen []*people.Service
	record := func(s *people.Service) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	}

	result := testutil.StartHarness(t,
		map[string]string{descriptor.FileName: testutil.DefaultDescriptor},
		map[string]webapp.HandlerFactory{
			"/spy": func() http.Handler { return &spyHandler{record: record} },
		},
	)
	require.NoError(t, result.Err)

	registered, ok := result.Harness.Registry().Lookup(people.BindingName)
	require.True(t, ok)

	// --- Act ---
	resp, err := http.Get(result.URL + "/spy")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	// --- Assert ---
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.Same(t, registered.Instance, seen[0])
}

// Test for: a reference whose link target has no registry binding is
// skipped, startup still reaches Serving, and the skip is observable as a
// structured diagnostic event.
func TestResolution_UnresolvableReferenceIsLenientButReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	descriptorHCL := `
application "addressbook" {}

reference "ghostService" {
  link = "Ghost"
}
`
	result := testutil.StartHarness(t,
		map[string]string{descriptor.FileName: descriptorHCL},
		nil,
	)

	// --- Assert ---
	require.NoError(t, result.Err)

	events := result.Harness.Diagnostics()
	require.Len(t, events, 1)
	assert.Equal(t, diag.KindSkippedReference, events[0].Kind)
	assert.Equal(t, "ghostService", events[0].Name)
	assert.NotEmpty(t, events[0].ID)
}

// customComponent is a test-only fixture registered under a custom module.
type customComponent struct {
	Marker string
}

type customModule struct{}

func (customModule) Register(r *registry.Registry) {
	r.Bind("service/Custom", &customComponent{Marker: "wired"})
}

// Test for: a caller-supplied module replaces the compiled-in fixtures and
// its bindings resolve through qualified link targets.
func TestResolution_QualifiedLinkTargetUsesSimpleName(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	descriptorHCL := `
application "customapp" {}

reference "custom" {
  link = "com.example.backend.Custom"
}
`
	result := testutil.StartHarness(t,
		map[string]string{descriptor.FileName: descriptorHCL},
		nil,
		customModule{},
	)
	require.NoError(t, result.Err)

	// --- Act ---
	b, err := result.Harness.Naming().Resolve("custom")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "wired", b.Instance.(*customComponent).Marker)
	assert.Empty(t, result.Harness.Diagnostics())
}
