// Package clock provides the Clock fixture component: a frozen reference
// time, so pages that render timestamps are deterministic under test.
package clock

import (
	"time"

	"github.com/vk/webstage/internal/registry"
)

// BindingName is the registry binding name of the Clock component.
const BindingName = "service/Clock"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Service answers the current time with a fixed instant.
type Service struct {
	now time.Time
}

// NewService creates a clock frozen at a fixed UTC instant.
func NewService() *Service {
	return &Service{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the frozen instant.
func (s *Service) Now() time.Time {
	return s.now
}

// Register registers the component with the harness registry.
func (m *Module) Register(r *registry.Registry) {
	r.Bind(BindingName, NewService())
}
