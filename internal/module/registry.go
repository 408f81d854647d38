package module

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iamdavidjackson/prototype-base/internal/page"
)

// Attribute names the module to mount on an element.
const Attribute = "data-module"

// Factory builds a module around base.
type Factory func(base *Base) (Lifecycle, error)

// Registry maps module names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("module %q: %w", name, ErrDuplicateModule)
	}
	r.factories[name] = f
	return nil
}

// Require returns the factory for name, or an *OverrideError when none
// was registered.
func (r *Registry) Require(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		return nil, &OverrideError{Module: name, Method: "New"}
	}
	return f, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mounted is a module built by Mount.
type Mounted struct {
	Base   *Base
	Module Lifecycle
}

// Mount builds and initializes a module for every element of p's document
// carrying the data-module attribute, in document order. It stops at the
// first failure; modules mounted before it stay mounted.
func (r *Registry) Mount(ctx context.Context, p *page.Page) ([]Mounted, error) {
	doc := p.Document()
	if doc == nil {
		return nil, nil
	}
	elems, err := doc.QueryAll("[" + Attribute + "]")
	if err != nil {
		return nil, err
	}

	var out []Mounted
	for _, el := range elems {
		name, _ := el.Attr(Attribute)
		f, err := r.Require(name)
		if err != nil {
			return out, err
		}

		base, err := NewBase(p)
		if err != nil {
			return out, err
		}
		base.name = name
		base.element = el

		m, err := f(base)
		if err != nil {
			return out, errors.Join(fmt.Errorf("module %q: %w", name, err), base.Destroy(ctx))
		}
		if err := base.Init(ctx, m); err != nil {
			return out, errors.Join(fmt.Errorf("module %q: %w", name, err), base.Destroy(ctx))
		}
		out = append(out, Mounted{Base: base, Module: m})
	}
	return out, nil
}
