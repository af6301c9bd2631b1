package serializer_test

import (
	"encoding/json"
	"testing"
	"time"

	goserializer "github.com/MichaelAJay/go-serializer"
	"github.com/google/uuid"

	"github.com/MichaelAJay/go-canonical"
	"github.com/MichaelAJay/go-canonical/serializer"
)

type event struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	At   time.Time `json:"at"`
}

func TestSerializer_MarshalJSON(t *testing.T) {
	s, err := serializer.New(goserializer.JSON)
	if err != nil {
		t.Fatalf("Failed to create serializer: %v", err)
	}

	e := event{
		ID:   uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Name: "created",
		At:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := s.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["id"] != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("Expected UUID string, got %v", decoded["id"])
	}
	if decoded["at"] != "2024-05-01T12:00:00Z" {
		t.Errorf("Expected RFC 3339 timestamp, got %v", decoded["at"])
	}
	if decoded["name"] != "created" {
		t.Errorf("Expected name, got %v", decoded["name"])
	}
}

func TestSerializer_EncodeOptionsApply(t *testing.T) {
	s, err := serializer.New(goserializer.JSON, canonical.WithExclude("name"))
	if err != nil {
		t.Fatalf("Failed to create serializer: %v", err)
	}

	data, err := s.Marshal(map[string]any{"name": "x", "kind": "y"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := decoded["name"]; ok {
		t.Error("Expected excluded key to be dropped")
	}
	if decoded["kind"] != "y" {
		t.Errorf("Expected kind, got %v", decoded["kind"])
	}
}

func TestSerializer_Unmarshal(t *testing.T) {
	s, err := serializer.New(goserializer.JSON)
	if err != nil {
		t.Fatalf("Failed to create serializer: %v", err)
	}

	data, err := s.Marshal(map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	value, err := s.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	m, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("Expected map, got %T", value)
	}
	if _, ok := m["a"]; !ok {
		t.Error("Expected key to round-trip")
	}
}

func TestSerializer_Msgpack(t *testing.T) {
	s, err := serializer.New(goserializer.Msgpack)
	if err != nil {
		t.Fatalf("Failed to create serializer: %v", err)
	}

	data, err := s.Marshal(map[string]any{"a": time.Minute})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected non-empty payload")
	}
}

func TestSerializer_MarshalErrorPropagates(t *testing.T) {
	s, err := serializer.New(goserializer.JSON)
	if err != nil {
		t.Fatalf("Failed to create serializer: %v", err)
	}

	if _, err := s.Marshal(make(chan int)); err == nil {
		t.Error("Expected canonicalization error for channel value")
	}
}
