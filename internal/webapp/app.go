package webapp

import (
	"fmt"
	"net/http"
)

// HandlerFactory creates a fresh, un-wired handler instance. The container
// owns passing the instance through the creation hook before use.
type HandlerFactory func() http.Handler

// App describes a deployed web application: its identity, the context path
// it is mounted under, an optional static content directory, and the routes
// of its dynamic handlers.
type App struct {
	Name        string
	ContextPath string
	StaticDir   string

	routes map[string]HandlerFactory
}

// NewApp creates an App mounted under contextPath ("" mounts at the root).
func NewApp(name, contextPath, staticDir string) *App {
	return &App{
		Name:        name,
		ContextPath: contextPath,
		StaticDir:   staticDir,
		routes:      make(map[string]HandlerFactory),
	}
}

// Handle registers a dynamic route relative to the app's context path.
// Registering the same pattern twice is a programmer error and panics.
func (a *App) Handle(pattern string, factory HandlerFactory) {
	if _, exists := a.routes[pattern]; exists {
		panic(fmt.Sprintf("route '%s' already registered for app '%s'", pattern, a.Name))
	}
	a.routes[pattern] = factory
}
