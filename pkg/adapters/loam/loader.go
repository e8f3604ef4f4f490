package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Loader adapts a Loam repository of Markdown machine documents to ports.DefinitionLoader.
// Documents without a "machine" key in their frontmatter are ignored.
type Loader struct {
	Repo *loam.TypedRepository[EntryMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[EntryMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[EntryMetadata](repo)), nil
}

// Entry is a library document: the machine plus its prose.
type Entry struct {
	Name  string
	Title string
	Body  string
	Desc  *ports.Description
}

// GetDefinition retrieves the machine embedded in the named document.
func (l *Loader) GetDefinition(ctx context.Context, name string) (*ports.Description, error) {
	entry, err := l.GetEntry(ctx, name)
	if err != nil {
		return nil, err
	}
	return entry.Desc, nil
}

// GetEntry retrieves the named document.
func (l *Loader) GetEntry(ctx context.Context, name string) (*Entry, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	docID, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}

	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	return &Entry{
		Name:  name,
		Title: doc.Data.Title,
		Body:  strings.TrimSpace(doc.Content),
		Desc: &ports.Description{
			Name:   name,
			Format: domain.FormatText,
			Data:   []byte(doc.Data.Machine),
		},
	}, nil
}

// ListDefinitions lists the machines of the library.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// index maps machine names to Loam document IDs.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	index := make(map[string]string, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Data.Machine) == "" {
			continue
		}
		// Use the name from metadata if available, otherwise the file name
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}

		// Collision Detection
		if existing, ok := index[name]; ok {
			return nil, fmt.Errorf("collision detected: machine '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		index[name] = doc.ID
	}
	return index, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
