package ports

import "context"

// DefinitionStore is a DefinitionLoader that descriptions can be published to.
// Only descriptions are stored; runs never persist tape or state.
type DefinitionStore interface {
	DefinitionLoader

	// SaveDefinition creates or replaces the description under desc.Name.
	SaveDefinition(ctx context.Context, desc *Description) error

	// DeleteDefinition removes a description. Deleting a missing name is not an error.
	DeleteDefinition(ctx context.Context, name string) error
}
