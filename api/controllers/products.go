package controllers

import (
	"context"
	"net/http"

	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/logger"
)

const catalogueUnavailableMessage = "Products are temporarily unavailable. Please try again shortly."

// Products lists the catalogue. A store outage degrades to an empty list with a
// warning flash.
func Products(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listProducts(r.Context(), w, svc, logg)
	}
}

func listProducts(ctx context.Context, w http.ResponseWriter, svc products.Service, logg *logger.Logger) {
	items, err := svc.List(ctx)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Error(ctx, "products.list_degraded", err)
		}
		writeFlash(w, http.StatusOK, []products.ProductDTO{}, enums.FlashLevelWarning, catalogueUnavailableMessage, "")
		return
	}
	responses.WriteSuccess(w, items)
}
