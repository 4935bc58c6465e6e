// Package people provides the People fixture component: a deterministic,
// in-memory dataset of person records for end-to-end assertions.
package people

import (
	"fmt"
	"sort"

	"github.com/vk/webstage/internal/registry"
)

// BindingName is the registry binding name of the People component.
const BindingName = "service/People"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Person is a single fixture record.
type Person struct {
	ID    int
	Name  string
	Email string
}

// Service exposes the fixture dataset. The dataset is fixed at construction
// so every test run sees identical data.
type Service struct {
	byID map[int]Person
}

// NewService creates the service with its deterministic fixture data.
func NewService() *Service {
	records := []Person{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
		{ID: 2, Name: "Alan Turing", Email: "alan@example.com"},
		{ID: 3, Name: "Grace Hopper", Email: "grace@example.com"},
	}
	byID := make(map[int]Person, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}
	return &Service{byID: byID}
}

// List returns all persons ordered by ID.
func (s *Service) List() []Person {
	out := make([]Person, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the person with the given ID.
func (s *Service) Get(id int) (Person, error) {
	p, ok := s.byID[id]
	if !ok {
		return Person{}, fmt.Errorf("no person with id %d", id)
	}
	return p, nil
}

// Register registers the component with the harness registry.
func (m *Module) Register(r *registry.Registry) {
	r.Bind(BindingName, NewService())
}
