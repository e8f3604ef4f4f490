package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// Description is a raw machine description as stored by an adapter.
// The compiler turns it into a domain.Definition.
type Description struct {
	Name   string
	Format domain.Format
	Data   []byte
}

// DefinitionLoader defines how machine descriptions are retrieved.
// This allows the storage layer (FS, Loam, Redis, Memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves the raw description registered under name.
	// Returns domain.ErrDefinitionNotFound if there is none.
	GetDefinition(ctx context.Context, name string) (*Description, error)

	// ListDefinitions returns the names of all available descriptions, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}
