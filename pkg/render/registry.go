package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores writers by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu      sync.RWMutex
	writers map[string]Writer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		writers: make(map[string]Writer),
	}
}

// NewDefaultRegistry returns a registry holding the built-in json, yaml,
// table and html writers.
func NewDefaultRegistry() (*Registry, error) {
	html, err := NewHTML()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, w := range []Writer{NewJSON(), NewYAML(), NewTable(), html} {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a writer by its Name(). Duplicate names return an error.
func (r *Registry) Register(writer Writer) error {
	if writer == nil {
		return fmt.Errorf("render: writer is required")
	}
	name := writer.Name()
	if name == "" {
		return fmt.Errorf("render: writer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.writers[name]; exists {
		return fmt.Errorf("render: writer %q already registered", name)
	}

	r.writers[name] = writer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(writer Writer) {
	if err := r.Register(writer); err != nil {
		panic(err)
	}
}

// Get retrieves a writer by name.
func (r *Registry) Get(name string) (Writer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	writer, ok := r.writers[name]
	if !ok {
		return nil, fmt.Errorf("render: writer %q not found", name)
	}
	return writer, nil
}

// List returns a sorted list of writer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.writers))
	for name := range r.writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a writer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.writers[name]
	return ok
}

// ForExtension finds the writer producing files with the given extension
// (".json", "yaml"). It backs format detection from output paths.
func (r *Registry) ForExtension(ext string) (Writer, bool) {
	if ext == "" {
		return nil, false
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == ".htm" {
		ext = ".html"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range sortedNames(r.writers) {
		if w := r.writers[name]; w.Extension() == ext {
			return w, true
		}
	}
	return nil, false
}

func sortedNames(writers map[string]Writer) []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
