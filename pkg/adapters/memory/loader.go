package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Loader implements ports.DefinitionStore using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu    sync.RWMutex
	descs map[string]ports.Description
}

// NewLoader creates a new in-memory loader. Keys are names; the format is inferred from
// the key's extension, which is stripped from the name ("swap.yaml" -> "swap").
func NewLoader(data map[string]string) *Loader {
	l := &Loader{descs: make(map[string]ports.Description, len(data))}
	for key, content := range data {
		name := domain.TrimFormat(key)
		l.descs[name] = ports.Description{
			Name:   name,
			Format: domain.FormatFromName(key),
			Data:   []byte(content),
		}
	}
	return l
}

// GetDefinition retrieves a copy of the description.
func (l *Loader) GetDefinition(ctx context.Context, name string) (*ports.Description, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	desc, ok := l.descs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}
	desc.Data = append([]byte(nil), desc.Data...)
	return &desc, nil
}

// ListDefinitions returns all available names.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.descs))
	for name := range l.descs {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

// SaveDefinition stores a copy of desc.
func (l *Loader) SaveDefinition(ctx context.Context, desc *ports.Description) error {
	if desc.Name == "" {
		return fmt.Errorf("definition missing name")
	}
	copied := *desc
	copied.Data = append([]byte(nil), desc.Data...)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.descs[desc.Name] = copied
	return nil
}

// DeleteDefinition removes a description.
func (l *Loader) DeleteDefinition(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.descs, name)
	return nil
}
