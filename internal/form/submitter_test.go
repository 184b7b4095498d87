package form

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
)

type memStore struct {
	mu   sync.Mutex
	regs []types.Registration
	err  error
}

func (m *memStore) CreateRegistration(reg types.Registration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.regs = append(m.regs, reg)
	return int64(len(m.regs)), nil
}

func (m *memStore) GetRegistrationByID(int64) (types.StoredRegistration, error) {
	return types.StoredRegistration{}, storage.ErrNotFound
}

func (m *memStore) GetRegistrations() ([]types.StoredRegistration, error) {
	return []types.StoredRegistration{}, nil
}

func (m *memStore) DeleteRegistrationByID(int64) error {
	return storage.ErrNotFound
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

func TestStorageSubmitterWaitsForDelay(t *testing.T) {
	store := &memStore{}
	const delay = 30 * time.Millisecond
	s := NewStorageSubmitter(store, delay)

	start := time.Now()
	id, err := s.Submit(context.Background(), filledRegistration())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("Submit() returned after %v, want at least %v", elapsed, delay)
	}
	if id != 1 || store.len() != 1 {
		t.Fatalf("id = %d, stored = %d; want 1, 1", id, store.len())
	}
}

func TestStorageSubmitterHonoursCancel(t *testing.T) {
	store := &memStore{}
	s := NewStorageSubmitter(store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, filledRegistration())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Submit() error = %v, want context.Canceled", err)
	}
	if store.len() != 0 {
		t.Fatalf("stored = %d, want 0", store.len())
	}
}

func TestStorageSubmitterWrapsStoreError(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStorageSubmitter(&memStore{err: boom}, 0)

	_, err := s.Submit(context.Background(), filledRegistration())
	if !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v, want it to wrap %v", err, boom)
	}
}

func TestControllerWithStorageSubmitter(t *testing.T) {
	store := &memStore{}
	c := New(NewStorageSubmitter(store, 5*time.Millisecond), nil)
	fill(t, c, filledRegistration())

	res, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.RegistrationID != 1 || store.len() != 1 {
		t.Fatalf("RegistrationID = %d, stored = %d; want 1, 1", res.RegistrationID, store.len())
	}
	if v := c.View(); v.RegistrationID != 1 || v.State != StateSubmitted {
		t.Fatalf("View() = %+v, want submitted with id 1", v)
	}
}

func TestLogNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	n.Notify(context.Background(), Notification{Level: "success", Message: SuccessMessage, RegistrationID: 12})

	out := buf.String()
	for _, want := range []string{SuccessMessage, "registration_id=12", "notification=success"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q does not contain %q", out, want)
		}
	}
}
