package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// setupData maps every name the loader holds to its expected raw content.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetDefinition (Success)
	t.Run("GetDefinition_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			desc, err := loader.GetDefinition(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting definition %s: %v", name, err)
			}
			if desc.Name != name {
				t.Errorf("name mismatch: got %q, want %q", desc.Name, name)
			}
			if desc.Format != domain.FormatText && desc.Format != domain.FormatYAML {
				t.Errorf("unexpected format %q for %s", desc.Format, name)
			}
			if string(desc.Data) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, desc.Data, expectedContent)
			}
		}
	})

	// 2. Test GetDefinition (NotFound)
	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "non-existent-machine")
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound, got %v", err)
		}
	})

	// 3. Test ListDefinitions
	t.Run("ListDefinitions", func(t *testing.T) {
		names, err := loader.ListDefinitions(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing definitions: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d definitions, got %d (%v)", len(setupData), len(names), names)
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range setupData {
			if !lookup[name] {
				t.Errorf("definition %s missing from list", name)
			}
		}
	})
}

// DefinitionStoreContractTest verifies the write side of ports.DefinitionStore.
// The store must start empty.
func DefinitionStoreContractTest(t *testing.T, store ports.DefinitionStore) {
	t.Helper()
	ctx := context.Background()

	swap := &ports.Description{Name: "swap", Format: domain.FormatText, Data: []byte("t e s n i\n_\n0\n1\n")}
	flip := &ports.Description{Name: "flip", Format: domain.FormatYAML, Data: []byte("blank: _\ninitial: 0\n")}

	t.Run("Save and Get", func(t *testing.T) {
		if err := store.SaveDefinition(ctx, swap); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.SaveDefinition(ctx, flip); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := store.GetDefinition(ctx, "flip")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Format != domain.FormatYAML || string(got.Data) != string(flip.Data) {
			t.Errorf("round trip mismatch: %+v", got)
		}
	})

	t.Run("Save Replaces", func(t *testing.T) {
		replaced := &ports.Description{Name: "swap", Format: domain.FormatText, Data: []byte("a\n_\n\n0\n")}
		if err := store.SaveDefinition(ctx, replaced); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.GetDefinition(ctx, "swap")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(got.Data) != string(replaced.Data) {
			t.Errorf("expected replaced content, got %q", got.Data)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.ListDefinitions(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(names) != 2 || names[0] != "flip" || names[1] != "swap" {
			t.Errorf("expected [flip swap], got %v", names)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.DeleteDefinition(ctx, "swap"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.GetDefinition(ctx, "swap"); !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound after delete, got %v", err)
		}
		if err := store.DeleteDefinition(ctx, "swap"); err != nil {
			t.Errorf("deleting a missing definition should not fail: %v", err)
		}
		names, _ := store.ListDefinitions(ctx)
		if len(names) != 1 {
			t.Errorf("expected one definition left, got %v", names)
		}
	})
}
