// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/runwith/runwith/pkg/runconfig"
)

var (
	// ErrNotFound is returned when no configuration has the requested name.
	ErrNotFound = errors.New("run configuration not found")
	// ErrDuplicateName is returned when adding a permanent configuration whose name is taken.
	ErrDuplicateName = errors.New("run configuration name already in use")
)

type (
	// Registry is the project-scoped run-configuration store.
	Registry interface {
		// All returns every configuration in declaration order.
		All() []runconfig.Configuration
		// Get returns the configuration with the given name.
		Get(name string) (runconfig.Configuration, error)
		// Add registers cfg. A temporary configuration replaces an existing
		// temporary entry of the same name.
		Add(cfg runconfig.Configuration) error
		// Select marks cfg as the selected configuration.
		Select(cfg runconfig.Configuration) error
		// Selected returns the selected configuration, or nil.
		Selected() runconfig.Configuration
		// FactoryFor resolves the factory for a type tag.
		FactoryFor(typ runconfig.TypeID) (runconfig.Factory, bool)
	}

	// Memory is an in-memory Registry. It is safe for concurrent use.
	Memory struct {
		mu        sync.RWMutex
		configs   []runconfig.Configuration
		selected  runconfig.Configuration
		factories map[runconfig.TypeID]runconfig.Factory
	}
)

// NewMemory creates a registry with the builtin factories and the given configurations.
func NewMemory(configs ...runconfig.Configuration) (*Memory, error) {
	m := &Memory{factories: make(map[runconfig.TypeID]runconfig.Factory)}
	for _, f := range runconfig.BuiltinFactories() {
		m.RegisterFactory(f)
	}
	for _, cfg := range configs {
		if err := m.Add(cfg); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RegisterFactory adds or replaces the factory for f.Type().
func (m *Memory) RegisterFactory(f runconfig.Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[f.Type()] = f
}

// All returns a snapshot of the registered configurations.
func (m *Memory) All() []runconfig.Configuration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]runconfig.Configuration, len(m.configs))
	copy(out, m.configs)
	return out
}

// Get returns the configuration named name.
func (m *Memory) Get(name string) (runconfig.Configuration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(name); i >= 0 {
		return m.configs[i], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Add registers cfg.
func (m *Memory) Add(cfg runconfig.Configuration) error {
	if cfg == nil {
		return errors.New("cannot add nil run configuration")
	}
	if cfg.Name() == "" {
		return errors.New("run configuration name must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(cfg.Name()); i >= 0 {
		existing := m.configs[i]
		if !existing.IsTemporary() || !cfg.IsTemporary() {
			return fmt.Errorf("%w: %q", ErrDuplicateName, cfg.Name())
		}
		if m.selected != nil && m.selected.Name() == cfg.Name() {
			m.selected = cfg
		}
		m.configs[i] = cfg
		return nil
	}
	m.configs = append(m.configs, cfg)
	return nil
}

// Select marks the registered configuration named like cfg as selected.
func (m *Memory) Select(cfg runconfig.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg == nil {
		m.selected = nil
		return nil
	}
	i := m.indexOf(cfg.Name())
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, cfg.Name())
	}
	m.selected = m.configs[i]
	return nil
}

// Selected returns the selected configuration, or nil.
func (m *Memory) Selected() runconfig.Configuration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// FactoryFor resolves the factory registered for typ.
func (m *Memory) FactoryFor(typ runconfig.TypeID) (runconfig.Factory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.factories[typ]
	return f, ok
}

func (m *Memory) indexOf(name string) int {
	for i, cfg := range m.configs {
		if cfg.Name() == name {
			return i
		}
	}
	return -1
}

// Eligible returns the non-temporary configurations whose type is in types,
// preserving registry order. An empty types list accepts every type.
func Eligible(reg Registry, types []runconfig.TypeID) []runconfig.Configuration {
	allowed := make(map[runconfig.TypeID]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	var out []runconfig.Configuration
	for _, cfg := range reg.All() {
		if cfg.IsTemporary() {
			continue
		}
		if len(allowed) > 0 && !allowed[cfg.Type()] {
			continue
		}
		out = append(out, cfg)
	}
	return out
}
