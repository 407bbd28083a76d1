package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niastore/nia-storefront/pkg/logger"
	"github.com/niastore/nia-storefront/pkg/mail"
	"github.com/niastore/nia-storefront/pkg/metrics"
)

// ContactMessage is the subset of a stored contact submission needed to notify the admin.
type ContactMessage struct {
	ID      uint
	Name    string
	Email   string
	Subject string
	Body    string
}

// Notifier delivers contact notifications. Implementations never fail the caller.
type Notifier interface {
	NotifyContact(ctx context.Context, msg ContactMessage) string
}

type outcomeCounter interface {
	IncNotification(outcome string)
}

// DispatcherParams configures a Dispatcher. Metrics and Logger are optional.
type DispatcherParams struct {
	Sender    mail.Sender
	Recipient string
	Logger    *logger.Logger
	Metrics   outcomeCounter
}

// Dispatcher sends best-effort email notifications to the store admin.
type Dispatcher struct {
	sender    mail.Sender
	recipient string
	logg      *logger.Logger
	metrics   outcomeCounter
}

func NewDispatcher(params DispatcherParams) *Dispatcher {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Dispatcher{
		sender:    params.Sender,
		recipient: strings.TrimSpace(params.Recipient),
		logg:      logg,
		metrics:   params.Metrics,
	}
}

// NotifyContact emails the admin about a contact submission and returns the
// outcome: sent, failed or skipped. Errors are logged, never returned.
func (d *Dispatcher) NotifyContact(ctx context.Context, msg ContactMessage) string {
	ctx = d.logg.WithFields(ctx, map[string]any{"message_id": msg.ID})

	if d.sender == nil || d.recipient == "" {
		d.logg.Warn(ctx, "notification.skipped")
		return d.record(metrics.NotificationSkipped)
	}

	err := d.sender.Send(ctx, mail.Message{
		To:      []string{d.recipient},
		Subject: ContactSubject(msg.Subject),
		Body:    ContactBody(msg.Name, msg.Email, msg.Body),
	})
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		d.logg.Warn(ctx, "notification.skipped")
		return d.record(metrics.NotificationSkipped)
	case err != nil:
		d.logg.Error(ctx, "notification.failed", err)
		return d.record(metrics.NotificationFailed)
	}
	d.logg.Info(ctx, "notification.sent")
	return d.record(metrics.NotificationSent)
}

func (d *Dispatcher) record(outcome string) string {
	if d.metrics != nil {
		d.metrics.IncNotification(outcome)
	}
	return outcome
}

// ContactSubject collapses line breaks so a submitted subject cannot inject headers.
func ContactSubject(subject string) string {
	return "New Contact Message: " + strings.Join(strings.Fields(subject), " ")
}

func ContactBody(name, email, body string) string {
	return fmt.Sprintf("From: %s <%s>\n\n%s", name, email, body)
}
