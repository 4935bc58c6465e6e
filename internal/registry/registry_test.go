package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	ID int
}

func TestBindAndLookup(t *testing.T) {
	t.Parallel()
	r := New()

	svc := &fakeService{ID: 7}
	b := r.Bind("service/Fake", svc)

	require.Equal(t, "service/Fake", b.Name)
	require.Equal(t, reflect.TypeOf(svc), b.ContractType)

	got, ok := r.Lookup("service/Fake")
	require.True(t, ok)
	// Identity, not value equality: the registry hands back the same instance.
	assert.Same(t, svc, got.Instance)
}

func TestLookupMissing(t *testing.T) {
	t.Parallel()
	r := New()

	_, ok := r.Lookup("service/Nope")
	assert.False(t, ok)
}

func TestBindDuplicatePanics(t *testing.T) {
	t.Parallel()
	r := New()
	r.Bind("service/Fake", &fakeService{})

	require.Panics(t, func() {
		r.Bind("service/Fake", &fakeService{})
	})
}

func TestBindNilPanics(t *testing.T) {
	t.Parallel()
	r := New()

	require.Panics(t, func() {
		r.Bind("service/Nil", nil)
	})
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()
	r := New()
	r.Bind("service/Zeta", &fakeService{})
	r.Bind("service/Alpha", &fakeService{})

	assert.Equal(t, []string{"service/Alpha", "service/Zeta"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

type registrar struct{}

func (registrar) Register(r *Registry) {
	r.Bind("service/FromModule", &fakeService{ID: 1})
}

func TestModuleRegistration(t *testing.T) {
	t.Parallel()
	r := New()

	var m Module = registrar{}
	m.Register(r)

	_, ok := r.Lookup("service/FromModule")
	assert.True(t, ok)
}
