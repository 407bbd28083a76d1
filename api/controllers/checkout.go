package controllers

import (
	"net/http"
	"net/url"

	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/api/validators"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/checkout"
	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/niastore/nia-storefront/pkg/logger"
)

type checkoutRequest struct {
	UserName      string `json:"user_name" validate:"required,max=120"`
	Phone         string `json:"phone" validate:"required,max=40"`
	Address       string `json:"address" validate:"required,max=500"`
	MomoReference string `json:"momo_reference" validate:"max=120"`
}

func (c *checkoutRequest) BindForm(values url.Values) {
	c.UserName = validators.FormString(values, "user_name", 0)
	c.Phone = validators.FormString(values, "phone", 0)
	c.Address = validators.FormString(values, "address", 0)
	c.MomoReference = validators.FormString(values, "momo_reference", 0)
}

type checkoutSummary struct {
	Cart *cart.View     `json:"cart"`
	Form FormDescriptor `json:"form"`
}

var checkoutForm = FormDescriptor{
	Action: "/checkout",
	Method: http.MethodPost,
	Fields: []FormField{
		{Name: "user_name", Type: "text", Required: true},
		{Name: "phone", Type: "tel", Required: true},
		{Name: "address", Type: "textarea", Required: true},
		{Name: "momo_reference", Type: "text"},
	},
}

func CheckoutSummary(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Summary(r.Context(), visitor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutSummary{Cart: view, Form: checkoutForm})
	}
}

func CheckoutSubmit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkout.Input{
			UserName: body.UserName,
			Phone:    body.Phone,
			Address:  body.Address,
		}
		if body.MomoReference != "" {
			ref := body.MomoReference
			input.MomoReference = &ref
		}

		order, err := svc.Execute(r.Context(), visitor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"order_id": order.ID, "total": order.Total})
			logg.Info(ctx, "checkout.order_created")
		}
		writeFlash(w, http.StatusCreated, order, enums.FlashLevelSuccess, "Order placed successfully!", "/")
	}
}
