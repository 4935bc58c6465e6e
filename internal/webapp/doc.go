// Package webapp is the minimal serving container that puts a deployed web
// application on a local port.
//
// It serves the application's static files and instantiates a fresh dynamic
// handler per request through a registered factory. Every new handler
// instance is passed through the creation hook — the dependency injector —
// before it dispatches its first request; the container calls the hook
// inline on the request goroutine, which gives the hook-before-first-use
// ordering the injector's contract assumes.
package webapp
