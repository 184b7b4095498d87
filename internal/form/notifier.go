package form

import (
	"context"
	"log/slog"
)

// SuccessMessage is the notification text for a completed submit.
const SuccessMessage = "Registration submitted successfully!"

// Notification is a user-facing message raised by the form.
type Notification struct {
	Level          string `json:"level"`
	Message        string `json:"message"`
	RegistrationID int64  `json:"registrationId,omitempty"`
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes each notification as a structured log record.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, n.Message,
		slog.String("notification", n.Level),
		slog.Int64("registration_id", n.RegistrationID),
	)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}
