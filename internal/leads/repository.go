package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for durable lead storage. Create must
// complete the write before returning; a lead is never reported as accepted
// unless it was durably written.
type Repository interface {
	Create(ctx context.Context, lead *Lead) (*Lead, error)
}

// InMemoryRepository is a Repository backed by a map, used for development
// and tests. It applies the same schema checks as the DynamoDB store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*Lead),
	}
}

// Create stores a copy of the normalized lead, assigning its id and timestamps.
func (r *InMemoryRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	if err := checkSchema(lead); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := time.Now().UTC()
	stored := *lead
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.mu.Lock()
	r.leads[stored.ID] = &stored
	r.mu.Unlock()

	return &stored, nil
}

// Get returns a stored lead by id, or nil when absent. Test helper only; the
// service exposes no read path.
func (r *InMemoryRepository) Get(id string) *Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.leads[id]
}

// Len reports the number of stored leads.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
