package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/api/validators"
	"github.com/niastore/nia-storefront/internal/media"
	"github.com/niastore/nia-storefront/internal/messages"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/logger"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
	imageField      = "image"
)

type adminProducts struct {
	Products []products.ProductDTO `json:"products"`
	Form     FormDescriptor        `json:"form"`
}

var productForm = FormDescriptor{
	Action:  "/admin",
	Method:  http.MethodPost,
	Enctype: "multipart/form-data",
	Fields: []FormField{
		{Name: "name", Type: "text", Required: true},
		{Name: "price", Type: "number", Required: true},
		{Name: "category", Type: "text", Required: true},
		{Name: "description", Type: "textarea"},
		{Name: "stock_quantity", Type: "number"},
		{Name: imageField, Type: "file", Required: true},
	},
}

// AdminProducts returns the catalogue alongside the create form.
func AdminProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if logg != nil {
				logg.Error(r.Context(), "admin.products_degraded", err)
			}
			writeFlash(w, http.StatusOK, adminProducts{Products: []products.ProductDTO{}, Form: productForm},
				enums.FlashLevelWarning, catalogueUnavailableMessage, "")
			return
		}
		responses.WriteSuccess(w, adminProducts{Products: items, Form: productForm})
	}
}

// AdminCreateProduct stores the uploaded image and creates the product. The
// image is removed again when the product cannot be created.
func AdminCreateProduct(svc products.Service, images media.ImageStore, uploads config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxBytes())
		if err := r.ParseMultipartForm(validators.DefaultMaxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "upload too large").
					WithDetails(map[string]any{"max_bytes": uploads.MaxBytes()}))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "multipart form required"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		input, err := productInputFromForm(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		file, header, err := r.FormFile(imageField)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{imageField: "is required"}))
			return
		}
		defer file.Close()

		stored, err := images.Save(ctx, header.Filename, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input.Image = stored

		product, err := svc.Create(ctx, input)
		if err != nil {
			discardImage(ctx, images, stored, logg)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeFlash(w, http.StatusCreated, product, enums.FlashLevelSuccess, "Product added successfully!", "/admin")
	}
}

func productInputFromForm(r *http.Request) (products.CreateProductInput, error) {
	values := r.MultipartForm.Value
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	details := map[string]string{}
	input := products.CreateProductInput{
		Name:     get("name"),
		Category: get("category"),
	}

	price, err := decimal.NewFromString(get("price"))
	switch {
	case err != nil:
		details["price"] = "must be a number"
	case price.IsNegative():
		details["price"] = "must be greater than or equal to 0"
	default:
		input.Price = price
	}

	if raw := get("stock_quantity"); raw != "" {
		qty, convErr := strconv.Atoi(raw)
		if convErr != nil || qty < 0 {
			details["stock_quantity"] = "must be a non-negative integer"
		}
		input.StockQuantity = qty
	}
	if desc := get("description"); desc != "" {
		input.Description = &desc
	}
	if input.Name == "" {
		details["name"] = "is required"
	}
	if input.Category == "" {
		details["category"] = "is required"
	}
	if len(details) > 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return input, nil
}

func discardImage(ctx context.Context, images media.ImageStore, path string, logg *logger.Logger) {
	if err := images.Remove(context.WithoutCancel(ctx), path); err != nil && logg != nil {
		logg.Error(logg.WithField(ctx, "image", path), "admin.image_cleanup_failed", err)
	}
}

// DeleteProduct removes a product. Deleting a missing id still succeeds.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusOK, nil, enums.FlashLevelSuccess, "Product deleted successfully!", "/admin")
	}
}

func AdminOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLogLimit, 1, maxLogLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminMessages(svc messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLogLimit, 1, maxLogLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
