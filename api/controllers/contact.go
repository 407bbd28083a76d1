package controllers

import (
	"net/http"
	"net/url"

	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/api/validators"
	"github.com/niastore/nia-storefront/internal/messages"
	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/niastore/nia-storefront/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *contactRequest) BindForm(values url.Values) {
	c.Name = validators.FormString(values, "name", 0)
	c.Email = validators.FormString(values, "email", 0)
	c.Subject = validators.FormString(values, "subject", 0)
	c.Message = validators.FormString(values, "message", 0)
}

var contactForm = FormDescriptor{
	Action: "/contact",
	Method: http.MethodPost,
	Fields: []FormField{
		{Name: "name", Type: "text", Required: true},
		{Name: "email", Type: "email", Required: true},
		{Name: "subject", Type: "text", Required: true},
		{Name: "message", Type: "textarea", Required: true},
	},
}

func ContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, contactForm)
	}
}

// ContactSubmit stores the message. The admin notification is best effort and
// never changes the response.
func ContactSubmit(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contactRequest
		if err := validators.DecodeBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.Submit(r.Context(), messages.SubmitInput{
			Name:    body.Name,
			Email:   body.Email,
			Subject: body.Subject,
			Message: body.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusCreated, msg, enums.FlashLevelSuccess, "Message sent successfully!", "/contact")
	}
}
