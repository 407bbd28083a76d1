package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/niastore/nia-storefront/internal/notifications"
	"github.com/niastore/nia-storefront/pkg/db/models"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
)

// Service handles contact intake and the admin message log.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*MessageDTO, error)
	List(ctx context.Context, limit int) ([]MessageDTO, error)
}

type messageStore interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	List(ctx context.Context, limit int) ([]models.Message, error)
}

type service struct {
	repo     messageStore
	notifier notifications.Notifier
}

// NewService wires the message store and the notifier.
func NewService(repo messageStore, notifier notifications.Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("message repository required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, notifier: notifier}, nil
}

// Submit persists the message and then notifies the admin. Notification
// outcome never affects the result.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*MessageDTO, error) {
	msg := &models.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := validate(msg); err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "message store unavailable")
	}

	s.notifier.NotifyContact(ctx, notifications.ContactMessage{
		ID:      stored.ID,
		Name:    stored.Name,
		Email:   stored.Email,
		Subject: stored.Subject,
		Body:    stored.Message,
	})

	dto := FromModel(stored)
	return &dto, nil
}

func (s *service) List(ctx context.Context, limit int) ([]MessageDTO, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "message store unavailable")
	}
	return FromModels(rows), nil
}

func validate(msg *models.Message) error {
	details := map[string]string{}
	for field, value := range map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,
	} {
		if value == "" {
			details[field] = "is required"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
