package naming

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/webstage/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Kind discriminates the entry variants in the naming context.
type Kind int

const (
	// KindDirect maps a name to a registry binding name.
	KindDirect Kind = iota
	// KindAlias redirects a name to the name of a direct entry.
	KindAlias
	// KindValue stores an immediate typed value (descriptor env entries).
	KindValue
)

// Entry is a single naming-context record.
type Entry struct {
	Name   string
	Kind   Kind
	Target string    // binding name for Direct, entry name for Alias
	Value  cty.Value // set for Value entries only
}

// ErrNotBound is returned by Resolve for a name with no entry.
var ErrNotBound = errors.New("name not bound")

// ErrFrozen is returned by any bind attempted after Freeze.
var ErrFrozen = errors.New("naming context is frozen")

// DanglingReferenceError reports an alias whose target has no live direct
// binding at resolve time.
type DanglingReferenceError struct {
	Name   string
	Target string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: alias '%s' points at '%s', which has no direct binding", e.Name, e.Target)
}

// Context is the shared naming context. A single writer populates it during
// startup; once frozen, any number of readers may resolve concurrently.
type Context struct {
	mu      sync.Mutex
	entries map[string]Entry
	frozen  atomic.Bool
	reg     *registry.Registry
}

// New creates a naming context backed by the given component registry.
func New(reg *registry.Registry) *Context {
	return &Context{
		entries: make(map[string]Entry),
		reg:     reg,
	}
}

// BindDirect publishes a direct entry mapping name to a registry binding name.
func (c *Context) BindDirect(name, bindingName string) error {
	return c.bind(Entry{Name: name, Kind: KindDirect, Target: bindingName})
}

// BindAlias publishes an alias entry redirecting name to target. The target
// does not have to be bound yet, but it must not already be bound as an
// alias: chains deeper than one hop are rejected here rather than detected
// at resolve time.
func (c *Context) BindAlias(name, target string) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[target]; ok && existing.Kind == KindAlias {
		return fmt.Errorf("alias '%s' -> '%s' would form a chain: '%s' is itself an alias", name, target, target)
	}
	return c.bindLocked(Entry{Name: name, Kind: KindAlias, Target: target})
}

// BindValue publishes an immediate typed value under name.
func (c *Context) BindValue(name string, value cty.Value) error {
	return c.bind(Entry{Name: name, Kind: KindValue, Value: value})
}

func (c *Context) bind(e Entry) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindLocked(e)
}

func (c *Context) bindLocked(e Entry) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	if _, exists := c.entries[e.Name]; exists {
		return fmt.Errorf("name '%s' already bound", e.Name)
	}
	c.entries[e.Name] = e
	return nil
}

// Freeze ends the startup phase. After Freeze the context is immutable and
// Resolve reads it without locking.
func (c *Context) Freeze() {
	// Take the bind mutex once so every prior bind happens-before the
	// frozen flag becomes visible to readers.
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (c *Context) Frozen() bool {
	return c.frozen.Load()
}

// Resolve looks up name and returns the component binding it denotes,
// following at most one alias hop. It returns ErrNotBound for unknown
// names, a *DanglingReferenceError for aliases with no live target, and an
// error for value entries (use ResolveValue for those).
func (c *Context) Resolve(name string) (*registry.Binding, error) {
	entry, ok := c.lookup(name)
	if !ok {
		return nil, fmt.Errorf("resolve '%s': %w", name, ErrNotBound)
	}

	if entry.Kind == KindAlias {
		target, ok := c.lookup(entry.Target)
		if !ok || target.Kind != KindDirect {
			return nil, &DanglingReferenceError{Name: name, Target: entry.Target}
		}
		entry = target
	}

	switch entry.Kind {
	case KindDirect:
		b, ok := c.reg.Lookup(entry.Target)
		if !ok {
			return nil, &DanglingReferenceError{Name: name, Target: entry.Target}
		}
		return b, nil
	case KindValue:
		return nil, fmt.Errorf("resolve '%s': entry holds a value, not a component binding", name)
	default:
		return nil, fmt.Errorf("resolve '%s': unknown entry kind %d", name, entry.Kind)
	}
}

// ResolveValue looks up a value entry published under name.
func (c *Context) ResolveValue(name string) (cty.Value, error) {
	entry, ok := c.lookup(name)
	if !ok {
		return cty.NilVal, fmt.Errorf("resolve '%s': %w", name, ErrNotBound)
	}
	if entry.Kind != KindValue {
		return cty.NilVal, fmt.Errorf("resolve '%s': entry is not a value", name)
	}
	return entry.Value, nil
}

// Names returns the names of all entries. Intended for logging and tests.
func (c *Context) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names
}

// lookup reads an entry, locking only while the context is still mutable.
func (c *Context) lookup(name string) (Entry, bool) {
	if !c.frozen.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	entry, ok := c.entries[name]
	return entry, ok
}
