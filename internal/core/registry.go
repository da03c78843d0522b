package core

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds checked functions by name, so calls decoded from an untyped
// source can be dispatched to them. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Func
	opts  []Option
}

// NewRegistry creates an empty registry. opts apply to every function
// registered with it, before the function's own options.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		funcs: make(map[string]*Func),
		opts:  opts,
	}
}

// Call dispatches a checked call to the function registered under name.
func (r *Registry) Call(name string, args ...any) ([]any, error) {
	checked, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, name)
	}

	return checked.Call(args...)
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (*Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checked, ok := r.funcs[name]

	return checked, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Register wraps fn and stores it under name. The registry's options apply
// first; WithName(name) is implied unless opts override it.
func (r *Registry) Register(name string, fn any, opts ...Option) error {
	all := make([]Option, 0, len(r.opts)+len(opts)+1)
	all = append(all, WithName(name))
	all = append(all, r.opts...)
	all = append(all, opts...)

	checked, err := Wrap(fn, all...)
	if err != nil {
		return fmt.Errorf("registering %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFunc, name)
	}

	r.funcs[name] = checked

	return nil
}
