package null_test

import (
	"context"
	"testing"

	"github.com/MichaelAJay/go-canonical/store"
	"github.com/MichaelAJay/go-canonical/store/providers/null"
)

func TestNullStore(t *testing.T) {
	provider := null.NewProvider()
	s, err := provider.Create(&store.Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if err := s.Put(ctx, "key", "value"); err != nil {
		t.Errorf("Put failed: %v", err)
	}

	value, exists, err := s.Get(ctx, "key")
	if err != nil {
		t.Errorf("Get failed: %v", err)
	}
	if exists || value != nil {
		t.Error("Null store should never return documents")
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Errorf("Keys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected no keys, got %d", len(keys))
	}

	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Errorf("Clear failed: %v", err)
	}
}
