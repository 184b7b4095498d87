package form

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrFormNotFound is returned for an id the registry does not hold.
var ErrFormNotFound = errors.New("form not found")

// Registry holds the live form instances, one Controller per id.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Controller
	build func() *Controller
}

// NewRegistry returns an empty registry. build is called once per Create.
func NewRegistry(build func() *Controller) *Registry {
	return &Registry{
		forms: make(map[string]*Controller),
		build: build,
	}
}

// Create starts a new, empty form and returns its id.
func (r *Registry) Create() (string, *Controller) {
	id := uuid.NewString()
	c := r.build()

	r.mu.Lock()
	r.forms[id] = c
	r.mu.Unlock()

	return id, c
}

// Get returns the form with the given id.
func (r *Registry) Get(id string) (*Controller, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrFormNotFound
	}

	r.mu.RLock()
	c, ok := r.forms[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrFormNotFound
	}
	return c, nil
}

// Delete discards the form with the given id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forms[id]; !ok {
		return ErrFormNotFound
	}
	delete(r.forms, id)
	return nil
}

// Len reports how many forms are live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}
