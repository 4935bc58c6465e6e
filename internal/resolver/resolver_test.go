package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/webstage/internal/descriptor"
	"github.com/vk/webstage/internal/diag"
	"github.com/vk/webstage/internal/naming"
	"github.com/vk/webstage/internal/registry"
)

type peopleComponent struct{}

func TestBindingNameFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "service/People", BindingNameFor("People"))
	assert.Equal(t, "service/People", BindingNameFor("backend.People"))
	assert.Equal(t, "service/People", BindingNameFor("backend/v2/People"))
	assert.Equal(t, "service/People", BindingNameFor("com.example.backend.People"))
}

func TestResolveAllBindsAliases(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	instance := &peopleComponent{}
	reg.Bind("service/People", instance)
	nc := naming.New(reg)
	require.NoError(t, nc.BindDirect("service/People", "service/People"))
	rec := diag.NewRecorder()

	decls := []*descriptor.Reference{
		{Name: "peopleService", Link: "People"},
	}
	require.NoError(t, ResolveAll(context.Background(), decls, reg, nc, rec))
	nc.Freeze()

	b, err := nc.Resolve("peopleService")
	require.NoError(t, err)
	assert.Same(t, instance, b.Instance)
	assert.Empty(t, rec.Snapshot())
}

func TestResolveAllSkipsUnresolvableWithDiagnostic(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.Bind("service/People", &peopleComponent{})
	nc := naming.New(reg)
	require.NoError(t, nc.BindDirect("service/People", "service/People"))
	rec := diag.NewRecorder()

	decls := []*descriptor.Reference{
		{Name: "peopleService", Link: "People"},
		{Name: "ghostService", Link: "Ghost"},
	}
	// The unresolvable declaration does not fail resolution.
	require.NoError(t, ResolveAll(context.Background(), decls, reg, nc, rec))
	nc.Freeze()

	// The resolvable one is bound.
	_, err := nc.Resolve("peopleService")
	require.NoError(t, err)

	// The skipped one is absent from the context but visible as an event.
	_, err = nc.Resolve("ghostService")
	assert.ErrorIs(t, err, naming.ErrNotBound)

	events := rec.ByKind(diag.KindSkippedReference)
	require.Len(t, events, 1)
	assert.Equal(t, "ghostService", events[0].Name)
	assert.Contains(t, events[0].Detail, "service/Ghost")
	assert.NotEmpty(t, events[0].ID)
}

func TestResolveAllDuplicateReferenceNameFails(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.Bind("service/People", &peopleComponent{})
	nc := naming.New(reg)
	rec := diag.NewRecorder()

	decls := []*descriptor.Reference{
		{Name: "peopleService", Link: "People"},
		{Name: "peopleService", Link: "People"},
	}
	err := ResolveAll(context.Background(), decls, reg, nc, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound")
}
