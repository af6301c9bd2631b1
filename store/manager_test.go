package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	goserializer "github.com/MichaelAJay/go-serializer"

	"github.com/MichaelAJay/go-canonical/store"
	"github.com/MichaelAJay/go-canonical/store/providers/memory"
	"github.com/MichaelAJay/go-canonical/store/providers/null"
)

func TestManager_BasicOperations(t *testing.T) {
	manager := store.NewManager()
	defer manager.Close()

	// Register memory provider
	manager.RegisterProvider("memory", memory.NewProvider())

	// Test GetStore with non-existent provider
	_, err := manager.GetStore("nonexistent")
	if err == nil {
		t.Error("Expected error when getting store with non-existent provider")
	}

	// Test GetStore with valid provider
	s, err := manager.GetStore("memory",
		store.WithSerializerFormat(goserializer.JSON),
	)
	if err != nil {
		t.Fatalf("Failed to get store: %v", err)
	}
	if s == nil {
		t.Fatal("Expected non-nil store instance")
	}

	// Test that subsequent calls return the same instance
	s2, err := manager.GetStore("memory")
	if err != nil {
		t.Fatalf("Failed to get store second time: %v", err)
	}
	if s != s2 {
		t.Error("Expected same store instance on subsequent calls")
	}
}

func TestManager_GetStores(t *testing.T) {
	manager := store.NewManager()
	defer manager.Close()

	manager.RegisterProvider("memory", memory.NewProvider())
	manager.RegisterProvider("null", null.NewProvider())

	if _, err := manager.GetStore("memory"); err != nil {
		t.Fatalf("Failed to get memory store: %v", err)
	}
	if _, err := manager.GetStore("null"); err != nil {
		t.Fatalf("Failed to get null store: %v", err)
	}

	stores := manager.GetStores()
	if len(stores) != 2 {
		t.Errorf("Expected 2 stores, got %d", len(stores))
	}
	if _, ok := stores["memory"]; !ok {
		t.Error("Expected memory store in GetStores result")
	}
	if _, ok := stores["null"]; !ok {
		t.Error("Expected null store in GetStores result")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := store.NewManager()
	defer manager.Close()

	manager.RegisterProvider("memory", memory.NewProvider())

	var wg sync.WaitGroup
	numGoroutines := 10
	stores := make([]store.Store, numGoroutines)

	// Test concurrent GetStore calls
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(idx int) {
			defer wg.Done()
			s, err := manager.GetStore("memory")
			if err != nil {
				t.Errorf("Concurrent GetStore failed: %v", err)
			}
			stores[idx] = s
		}(i)
	}
	wg.Wait()

	// Verify all stores are the same instance
	first := stores[0]
	for i := 1; i < numGoroutines; i++ {
		if stores[i] != first {
			t.Errorf("Store instance %d is different from first store", i)
		}
	}
}

func TestManager_NullStoreDiscards(t *testing.T) {
	manager := store.NewManager()
	defer manager.Close()

	manager.RegisterProvider("null", null.NewProvider())

	s, err := manager.GetStore("null")
	if err != nil {
		t.Fatalf("Failed to get null store: %v", err)
	}

	ctx := context.Background()

	// Null store should accept operations but not keep documents
	if err := s.Put(ctx, "test", map[string]any{"a": 1}); err != nil {
		t.Errorf("Null store Put failed: %v", err)
	}

	_, exists, err := s.Get(ctx, "test")
	if err != nil {
		t.Errorf("Null store Get failed: %v", err)
	}
	if exists {
		t.Error("Null store should not return existing documents")
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Errorf("Null store Keys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Expected no keys from null store, got %d", len(keys))
	}
}

func TestManager_Close(t *testing.T) {
	manager := store.NewManager()

	manager.RegisterProvider("memory", memory.NewProvider())
	s, err := manager.GetStore("memory")
	if err != nil {
		t.Fatalf("Failed to get store: %v", err)
	}

	ctx := context.Background()
	if err := s.Put(ctx, "test", "value"); err != nil {
		t.Errorf("Store operation failed before close: %v", err)
	}

	if err := manager.Close(); err != nil {
		t.Errorf("Manager close failed: %v", err)
	}

	// Verify GetStores returns empty after close
	stores := manager.GetStores()
	if len(stores) != 0 {
		t.Errorf("Expected empty stores after close, got %d", len(stores))
	}

	// Close again - should not panic or error
	if err := manager.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestManager_ProviderCreateError(t *testing.T) {
	manager := store.NewManager()
	defer manager.Close()

	manager.RegisterProvider("error", &errorProvider{})

	_, err := manager.GetStore("error")
	if err == nil {
		t.Error("Expected error from failing provider")
	}
	if err.Error() != "failed to create store: provider error" {
		t.Errorf("Expected wrapped provider error, got: %v", err)
	}
}

// errorProvider is a mock provider that always returns an error
type errorProvider struct{}

func (p *errorProvider) Create(options *store.Options) (store.Store, error) {
	return nil, fmt.Errorf("provider error")
}
