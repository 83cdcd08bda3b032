package schema

import (
	"fmt"
	"slices"
	"sync"
)

// Registry keeps the known type descriptors, optionally across several
// versions per type. RegisterType installs a descriptor as the latest version
// of its type; versioned lookups resolve older wire payloads.
type Registry struct {
	types map[string]*typeEntry
	mu    sync.RWMutex
}

type typeEntry struct {
	versions map[string]*TypeSchema
	order    []string // registration order, last is latest
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*typeEntry)}
}

// RegisterType installs a descriptor under its own type name and version.
// Registering the same type name twice is an error; use RegisterVersion to
// add further versions.
func (r *Registry) RegisterType(s *TypeSchema) error {
	if s == nil {
		return fmt.Errorf("register: %w: nil schema", ErrInvalidSchema)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[s.Name()]; exists {
		return fmt.Errorf("register %s: %w", s.Name(), ErrTypeAlreadyRegistered)
	}
	r.types[s.Name()] = &typeEntry{
		versions: map[string]*TypeSchema{s.Version(): s},
		order:    []string{s.Version()},
	}
	return nil
}

// UnregisterType removes a type and all of its versions.
func (r *Registry) UnregisterType(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; !exists {
		return fmt.Errorf("unregister %s: %w", name, ErrTypeNotRegistered)
	}
	delete(r.types, name)
	return nil
}

// GetType returns the latest registered descriptor for a type name.
func (r *Registry) GetType(name string) (*TypeSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.types[name]
	if !exists {
		return nil, fmt.Errorf("get %s: %w", name, ErrTypeNotRegistered)
	}
	latest := entry.order[len(entry.order)-1]
	return entry.versions[latest], nil
}

// GetByID returns the latest descriptor whose hashed type name matches id.
func (r *Registry) GetByID(id uint64) (*TypeSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, entry := range r.types {
		if TypeID(name) == id {
			latest := entry.order[len(entry.order)-1]
			return entry.versions[latest], nil
		}
	}
	return nil, fmt.Errorf("get id %d: %w", id, ErrTypeNotRegistered)
}

// ListTypes returns all registered type names, sorted.
func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterVersion adds a further version of an already-registered type. The
// newly registered version becomes the latest.
func (r *Registry) RegisterVersion(name string, s *TypeSchema) error {
	if s == nil {
		return fmt.Errorf("register version: %w: nil schema", ErrInvalidSchema)
	}
	if s.Name() != name {
		return fmt.Errorf("register version: %w: schema is for %s, not %s",
			ErrInvalidSchema, s.Name(), name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.types[name]
	if !exists {
		return fmt.Errorf("register version %s: %w", name, ErrTypeNotRegistered)
	}
	if _, exists = entry.versions[s.Version()]; exists {
		return fmt.Errorf("register version %s/%s: %w",
			name, s.Version(), ErrVersionAlreadyRegistered)
	}
	entry.versions[s.Version()] = s
	entry.order = append(entry.order, s.Version())
	return nil
}

// GetVersion returns a specific registered version of a type.
func (r *Registry) GetVersion(name, version string) (*TypeSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.types[name]
	if !exists {
		return nil, fmt.Errorf("get %s/%s: %w", name, version, ErrTypeNotRegistered)
	}
	s, exists := entry.versions[version]
	if !exists {
		return nil, fmt.Errorf("get %s/%s: %w", name, version, ErrVersionNotRegistered)
	}
	return s, nil
}

// GetLatestVersion returns the most recently registered version of a type.
func (r *Registry) GetLatestVersion(name string) (string, *TypeSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.types[name]
	if !exists {
		return "", nil, fmt.Errorf("get latest %s: %w", name, ErrTypeNotRegistered)
	}
	latest := entry.order[len(entry.order)-1]
	return latest, entry.versions[latest], nil
}

// ListVersions returns the registered versions of a type in registration order.
func (r *Registry) ListVersions(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.types[name]
	if !exists {
		return nil, fmt.Errorf("list versions %s: %w", name, ErrTypeNotRegistered)
	}
	return slices.Clone(entry.order), nil
}
