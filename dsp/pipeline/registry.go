package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/module"
)

// Factory builds one module from its parameters.
type Factory func(p Params) (module.Module, error)

// Registry maps module type names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given module type.
func (r *Registry) Register(moduleType string, factory Factory) error {
	if moduleType == "" {
		return errors.New("pipeline: empty module type")
	}

	if factory == nil {
		return errors.New("pipeline: nil factory")
	}

	if _, exists := r.factories[moduleType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateModule, moduleType)
	}

	r.factories[moduleType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(moduleType string, factory Factory) {
	if err := r.Register(moduleType, factory); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the factory for the given module type, or nil.
func (r *Registry) Lookup(moduleType string) Factory {
	return r.factories[moduleType]
}

// Build creates a module from p using the factory registered for p.Type.
func (r *Registry) Build(p Params) (module.Module, error) {
	factory := r.Lookup(p.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, p.Type)
	}

	m, err := factory(p)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build %s: %w", p.Type, err)
	}

	return m, nil
}
