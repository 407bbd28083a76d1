package controllers

import (
	"net/http"

	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/api/validators"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/niastore/nia-storefront/pkg/logger"
)

func AddToCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, line, err := svc.Add(r.Context(), visitor, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusOK, view, enums.FlashLevelSuccess, line.Name+" added to cart!", "/products")
	}
}

func ViewCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Get(r.Context(), visitor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func RemoveFromCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Remove(r.Context(), visitor, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusOK, view, enums.FlashLevelInfo, "Item removed from cart!", "/cart")
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Clear(r.Context(), visitor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusOK, view, enums.FlashLevelInfo, "Cart cleared!", "/cart")
	}
}
