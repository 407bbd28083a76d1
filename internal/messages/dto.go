package messages

import (
	"time"

	"github.com/niastore/nia-storefront/pkg/db/models"
)

// MessageDTO is the public representation of a contact submission.
type MessageDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitInput is a validated contact form.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func FromModel(m *models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(rows []models.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
