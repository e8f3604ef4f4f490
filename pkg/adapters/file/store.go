package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// extensions in lookup order. The first one is used when saving text descriptions.
var extensions = []string{".tm", ".yaml", ".yml"}

// Store implements ports.DefinitionStore on a directory of description files
// (swap.tm, swap.yaml, ...). The name of a description is its file name without extension.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the current directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// GetDefinition reads the description file for name.
// The name is tried as a file name first, then with each known extension.
func (s *Store) GetDefinition(ctx context.Context, name string) (*ports.Description, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(extensions)+1)
	candidates = append(candidates, name)
	for _, ext := range extensions {
		candidates = append(candidates, name+ext)
	}

	for _, file := range candidates {
		path := filepath.Join(s.BasePath, file)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read definition file: %w", err)
		}
		return &ports.Description{
			Name:   domain.TrimFormat(name),
			Format: domain.FormatFromName(file),
			Data:   data,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
}

// ListDefinitions returns the names of all description files.
func (s *Store) ListDefinitions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isDescription(entry.Name()) {
			continue
		}
		name := domain.TrimFormat(entry.Name())
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// SaveDefinition writes the description file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
// Files of the same name in another format are removed.
func (s *Store) SaveDefinition(ctx context.Context, desc *ports.Description) error {
	if err := checkName(desc.Name); err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure definition directory: %w", err)
	}

	ext := ".tm"
	if desc.Format == domain.FormatYAML {
		ext = ".yaml"
	}
	destPath := filepath.Join(s.BasePath, desc.Name+ext)

	// 1. Create Temp File
	// we use the same directory to ensure we are on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+desc.Name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Cleanup temp file in case of failure
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(desc.Data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Drop other formats, then rename.
	// On Windows, os.Rename fails if dest exists, so it is removed first as well.
	for _, other := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, desc.Name+other))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing definition file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to definition: %w", err)
	}

	return nil
}

// DeleteDefinition removes every file stored under name.
func (s *Store) DeleteDefinition(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete definition file: %w", err)
		}
	}
	return nil
}

func isDescription(file string) bool {
	if strings.HasPrefix(file, "tmp-") {
		return false
	}
	return domain.TrimFormat(file) != file
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("definition name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid definition name %q", name)
	}
	return nil
}
