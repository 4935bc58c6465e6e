package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Module is the interface that all fixture component modules must implement
// to be registered with the harness.
type Module interface {
	Register(r *Registry)
}

// Binding is a single registered component: an instance stored under a
// unique binding name, together with the contract type injection points are
// checked against. Bindings are created once at population time and never
// mutated afterward.
type Binding struct {
	Name         string
	Instance     any
	ContractType reflect.Type
}

// Registry holds all registered component bindings for a single harness
// instance. It is written during the population phase only; lookups during
// serving are read-only.
type Registry struct {
	bindings map[string]*Binding
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		bindings: make(map[string]*Binding),
	}
}

// Bind registers a component instance under the given binding name. The
// contract type is taken from the instance's dynamic type. Registering the
// same name twice is a programmer error and panics.
func (r *Registry) Bind(name string, instance any) *Binding {
	if _, exists := r.bindings[name]; exists {
		panic(fmt.Sprintf("component with binding name '%s' already registered", name))
	}
	if instance == nil {
		panic(fmt.Sprintf("component '%s' must not be nil", name))
	}
	b := &Binding{
		Name:         name,
		Instance:     instance,
		ContractType: reflect.TypeOf(instance),
	}
	slog.Debug("Registering component binding.", "name", name, "contract", b.ContractType.String())
	r.bindings[name] = b
	return b
}

// Lookup returns the binding registered under name, if any.
func (r *Registry) Lookup(name string) (*Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// Names returns all registered binding names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}
