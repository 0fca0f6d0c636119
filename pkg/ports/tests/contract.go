package tests

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefinitionSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionSource.
func DefinitionSourceContractTest(t *testing.T, source ports.DefinitionSource, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Read (Success)
	t.Run("Read_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := source.Read(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error reading definition %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	// 2. Test Read (NotFound)
	t.Run("Read_NotFound", func(t *testing.T) {
		_, err := source.Read(ctx, "non-existent-definition")
		if err == nil {
			t.Fatal("expected error for non-existent definition, got nil")
		}
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := source.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing definitions: %v", err)
		}
		if len(names) != len(setupData) {
			t.Errorf("expected %d definitions, got %d (%v)", len(setupData), len(names), names)
		}
		for name := range setupData {
			if !slices.Contains(names, name) {
				t.Errorf("missing definition %s in list", name)
			}
		}
		if !slices.IsSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
	})
}
