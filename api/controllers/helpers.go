package controllers

import (
	"net/http"

	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/types"
)

// FormField describes one input of a form descriptor returned by GET routes.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FormDescriptor tells a client how to submit a form.
type FormDescriptor struct {
	Action  string      `json:"action"`
	Method  string      `json:"method"`
	Enctype string      `json:"enctype,omitempty"`
	Fields  []FormField `json:"fields"`
}

func writeFlash(w http.ResponseWriter, status int, data any, level enums.FlashLevel, message, redirect string) {
	responses.WriteEnvelope(w, status, types.SuccessEnvelope{
		Data:     data,
		Flash:    types.NewFlash(level, message),
		Redirect: redirect,
	})
}

// visitorID returns the visitor cookie value set by middleware.Visitor.
func visitorID(r *http.Request) (string, error) {
	id := middleware.VisitorIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "visitor session missing")
	}
	return id, nil
}
