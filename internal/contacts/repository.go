package contacts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for contact storage
type Repository interface {
	Create(ctx context.Context, draft Draft) (*Contact, error)
	Get(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps contacts in process memory. Used by tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
	order    []string
	now      func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		contacts: make(map[string]*Contact),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new contact with a fresh id.
func (r *InMemoryRepository) Create(ctx context.Context, draft Draft) (*Contact, error) {
	contact := newContact(uuid.New().String(), draft, r.now())

	r.mu.Lock()
	r.contacts[contact.ID] = contact
	r.order = append(r.order, contact.ID)
	r.mu.Unlock()

	return cloneContact(contact), nil
}

// Get retrieves a contact by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}
	return cloneContact(contact), nil
}

// List returns every contact, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Contact, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, cloneContact(r.contacts[r.order[i]]))
	}
	return out, nil
}

// Delete removes a contact permanently.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return ErrContactNotFound
	}
	delete(r.contacts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneContact(c *Contact) *Contact {
	cp := *c
	cp.Services = append([]string{}, c.Services...)
	return &cp
}
