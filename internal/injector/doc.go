// Package injector populates the component fields of freshly created
// request handlers before they serve their first request.
//
// A handler declares injection points as exported struct fields carrying a
// `component` tag whose value is a symbolic reference name. The injector is
// installed as the serving container's creation hook: for each new handler
// instance it resolves every point through the naming context and sets the
// field via reflection. An unresolvable point leaves the field at its zero
// value and records a diagnostic; it never fails the handler.
//
// The set of injection points is a property of the handler type, so it is
// discovered once per type and cached. Resolved component instances are
// never cached across handler instances.
package injector
