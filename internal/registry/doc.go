// Package registry provides the component registry backing the harness.
//
// The Registry stores business-logic component instances under unique
// binding names (e.g. "service/People"). It is populated once at harness
// startup by fixture modules with deterministic test data, and answers
// lookups from the reference resolver and the naming context for the rest
// of the process lifetime. Bindings are immutable after creation.
package registry
