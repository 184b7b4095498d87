package form

import (
	"context"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

// Submitter sends a validated registration onward and returns its id.
type Submitter interface {
	Submit(ctx context.Context, reg types.Registration) (int64, error)
}

// SubmitterFunc adapts a plain function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, reg types.Registration) (int64, error)

func (f SubmitterFunc) Submit(ctx context.Context, reg types.Registration) (int64, error) {
	return f(ctx, reg)
}

// StorageSubmitter waits a fixed delay, standing in for a network round
// trip, and then persists the registration.
type StorageSubmitter struct {
	store storage.Storage
	delay time.Duration
}

// NewStorageSubmitter returns a StorageSubmitter. A zero delay persists
// immediately.
func NewStorageSubmitter(store storage.Storage, delay time.Duration) *StorageSubmitter {
	return &StorageSubmitter{store: store, delay: delay}
}

// Submit fails with the context's error if ctx ends before the delay does.
func (s *StorageSubmitter) Submit(ctx context.Context, reg types.Registration) (int64, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("submit registration: %w", ctx.Err())
		case <-timer.C:
		}
	}

	id, err := s.store.CreateRegistration(reg)
	if err != nil {
		return 0, fmt.Errorf("submit registration: %w", err)
	}
	return id, nil
}
