package leads

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestInMemoryCreate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead := &Lead{Name: "Ada", Email: "ada@example.com", Message: "Hello", Source: "web"}

	stored, err := repo.Create(ctx, lead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if lead.ID != "" {
		t.Error("input lead must not be mutated")
	}
	if got := repo.Get(stored.ID); got == nil || got.Email != "ada@example.com" {
		t.Errorf("expected stored lead to be retrievable, got %+v", got)
	}
}

func TestInMemoryCreateUniqueIDs(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		stored, err := repo.Create(ctx, &Lead{Name: "Ada", Email: "ada@example.com", Message: "Hello", Source: "web"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[stored.ID] {
			t.Fatalf("duplicate id %s", stored.ID)
		}
		seen[stored.ID] = true
	}
	if repo.Len() != 50 {
		t.Errorf("expected 50 stored leads, got %d", repo.Len())
	}
}

func TestInMemoryCreateRejectsSchemaViolation(t *testing.T) {
	repo := NewInMemoryRepository()

	lead := &Lead{Name: strings.Repeat("a", MaxNameLen+1), Email: "ada@example.com", Message: "Hello", Source: "web"}

	_, err := repo.Create(context.Background(), lead)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if repo.Len() != 0 {
		t.Error("rejected lead must not be stored")
	}
}
