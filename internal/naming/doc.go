// Package naming implements the shared naming context: a process-wide
// mapping from symbolic names to component bindings.
//
// # Concurrency Model
//
// The context is write-once-then-read-only. All binds happen during the
// single-threaded startup phase and are mutex-guarded for safety; Freeze
// marks the end of startup. After Freeze the entry table is immutable, so
// Resolve reads it without locking — the serving phase may resolve from
// many goroutines concurrently with no synchronization cost.
//
// # Aliasing
//
// An entry is either a direct binding (name -> registry binding name), an
// alias (name -> name of a direct entry), or an immediate value. Resolve
// follows at most one alias hop. Binding an alias whose target is itself an
// alias is rejected at bind time so misconfigured chains surface during
// startup, not under traffic.
package naming
