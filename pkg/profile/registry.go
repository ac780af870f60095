package profile

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound reports a lookup for an unregistered profile.
var ErrNotFound = errors.New("profile: not found")

// Registry stores profiles by name. It is safe for concurrent use; stored
// profiles are copied in and out so they stay immutable once registered.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register adds a profile by name. Duplicate names return an error.
func (r *Registry) Register(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile: name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("profile: %q already registered", p.Name)
	}
	r.profiles[p.Name] = p.Clone()
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(p Profile) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get retrieves a copy of the named profile.
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Clone(), nil
}

// MustGet panics if the profile is missing.
func (r *Registry) MustGet(name string) Profile {
	p, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return p
}

// List returns the sorted profile names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a profile is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.profiles[name]
	return ok
}

// Merge registers every profile of other, overriding profiles with the same
// name. It is used to layer user profiles over the embedded defaults.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, p := range other.profiles {
		r.profiles[name] = p.Clone()
	}
}
