package primitive

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/headless/internal/logger"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

// Factory pairs a type's descriptor with a constructor producing a live,
// attached instance.
type Factory struct {
	Descriptor Descriptor
	New        func() (Mounted, error)
}

// Registry holds the available primitive types. Unlike stores and logic
// instances, the registry is shared, so it is mutex-guarded.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	log       *logger.Logger
}

// NewRegistry returns an empty registry. The logger may be nil.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		log:       log,
	}
}

// Register adds a factory. The descriptor is validated and duplicate type
// names are rejected.
func (r *Registry) Register(f Factory) error {
	if f.New == nil {
		return headlesserrors.NewConfigurationError(f.Descriptor.Type, "factory requires a constructor", nil)
	}
	if err := f.Descriptor.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f.Descriptor.Type]; exists {
		return headlesserrors.NewConfigurationError(f.Descriptor.Type, "primitive type already registered", nil)
	}

	r.factories[f.Descriptor.Type] = f
	r.log.WithComponent(f.Descriptor.Type).Debug("primitive registered")
	return nil
}

// Get retrieves a factory by type name.
func (r *Registry) Get(typeName string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.factories[typeName]
	if !exists {
		return Factory{}, fmt.Errorf("primitive type not found: %s", typeName)
	}
	return f, nil
}

// List returns the registered descriptors sorted by type name.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.factories))
	for _, f := range r.factories {
		descriptors = append(descriptors, f.Descriptor)
	}
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Type < descriptors[j].Type })
	return descriptors
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
