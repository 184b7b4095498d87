// Package form owns the registration form's lifecycle: field values,
// validation errors, and the editing/submitting/submitted transitions.
//
// A Controller is one form instance. It may be reached from several HTTP
// goroutines, so its state sits behind a mutex that is never held across
// the submit delay. A second Submit while one is pending is rejected
// rather than queued.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// Controller holds the state of one registration form.
type Controller struct {
	mu sync.Mutex

	state  State
	values types.Registration
	errors FieldErrors
	// attempted is set by the first Submit; from then on UpdateField
	// re-validates the field it changes.
	attempted bool
	submitErr error
	regID     int64

	submitter Submitter
	notifier  Notifier
	log       *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an empty form in the editing state. notifier may be nil.
func New(submitter Submitter, notifier Notifier, opts ...Option) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	c := &Controller{
		state:     StateEditing,
		submitter: submitter,
		notifier:  notifier,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result describes a successful submit.
type Result struct {
	RegistrationID int64        `json:"registrationId"`
	Notification   Notification `json:"notification"`
}

// View is a point-in-time copy of a form's state.
type View struct {
	State          State              `json:"state"`
	Values         types.Registration `json:"values"`
	Errors         FieldErrors        `json:"errors,omitempty"`
	SubmitError    string             `json:"submitError,omitempty"`
	RegistrationID int64              `json:"registrationId,omitempty"`
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a snapshot of the form.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:          c.state,
		Values:         c.values,
		Errors:         c.errors.clone(),
		RegistrationID: c.regID,
	}
	if c.submitErr != nil {
		v.SubmitError = c.submitErr.Error()
	}
	return v
}

// UpdateField sets one field's value. It has no effect on other fields.
func (c *Controller) UpdateField(name, value string) error {
	field, ok := types.LookupField(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}

	ref, _ := c.values.FieldRef(name)
	*ref = value

	if c.attempted {
		if fe, valid := validateField(field, value); valid {
			delete(c.errors, name)
		} else {
			if c.errors == nil {
				c.errors = FieldErrors{}
			}
			c.errors[name] = fe
		}
	}
	return nil
}

// Validate reports every required field that is empty or whitespace.
// It does not change the form.
func (c *Controller) Validate() FieldErrors {
	c.mu.Lock()
	reg := c.values
	c.mu.Unlock()

	return validateRegistration(reg)
}

// Submit validates the form and, if it is valid, hands the values to the
// submitter. On a validation failure the errors are surfaced on the form
// and returned as a *ValidationError; the submitter is not called. On a
// submitter failure the form returns to editing and a *SubmitError is
// returned. On success the form is submitted and one success
// notification is sent.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}

	c.attempted = true
	if errs := validateRegistration(c.values); len(errs) > 0 {
		c.errors = errs
		c.mu.Unlock()
		c.log.Debug("registration rejected", slog.Any("fields", errs.Names()))
		return Result{}, &ValidationError{Fields: errs.clone()}
	}

	c.errors = nil
	c.submitErr = nil
	c.state = StateSubmitting
	reg := c.values
	c.mu.Unlock()

	c.log.Info("submitting registration",
		slog.String("first_name", reg.FirstName),
		slog.String("last_name", reg.LastName))

	id, err := c.submitter.Submit(ctx, reg)

	c.mu.Lock()
	if err != nil {
		c.state = StateEditing
		c.submitErr = err
		c.mu.Unlock()
		c.log.Error("registration submit failed", slog.String("error", err.Error()))
		return Result{}, &SubmitError{Err: err}
	}
	c.state = StateSubmitted
	c.regID = id
	c.mu.Unlock()

	n := Notification{Level: "success", Message: SuccessMessage, RegistrationID: id}
	c.notifier.Notify(ctx, n)

	return Result{RegistrationID: id, Notification: n}, nil
}

// Reset empties the form and returns it to editing. It is refused only
// while a submit is pending.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrSubmitInProgress
	}

	c.state = StateEditing
	c.values = types.Registration{}
	c.errors = nil
	c.attempted = false
	c.submitErr = nil
	c.regID = 0
	return nil
}

// editable must be called with c.mu held.
func (c *Controller) editable() error {
	switch c.state {
	case StateEditing:
		return nil
	case StateSubmitting:
		return ErrSubmitInProgress
	default:
		return ErrNotEditing
	}
}
