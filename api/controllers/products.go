package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/caffeineveins/api/responses"
	"github.com/angelmondragon/caffeineveins/api/validators"
	"github.com/angelmondragon/caffeineveins/internal/catalog"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	maxNameLen        = 80
	maxDescriptionLen = 280
)

type productSizeRequest struct {
	Name  string          `json:"name" validate:"required,max=32"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// The admin form offers up to three sizes; the first is mandatory.
type createProductRequest struct {
	Name        string               `json:"name" validate:"required,max=80"`
	Description string               `json:"description" validate:"required,max=280"`
	Category    string               `json:"category" validate:"required,max=64"`
	Image       string               `json:"image,omitempty" validate:"omitempty,max=255"`
	Sizes       []productSizeRequest `json:"sizes" validate:"required,min=1,max=3,dive"`
	Available   *bool                `json:"available,omitempty"`
}

func (r createProductRequest) toInput() catalog.ProductInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return catalog.ProductInput{
		Name:        validators.SanitizeString(r.Name, maxNameLen),
		Description: validators.SanitizeString(r.Description, maxDescriptionLen),
		Category:    strings.TrimSpace(r.Category),
		Image:       strings.TrimSpace(r.Image),
		Sizes:       toSizes(r.Sizes),
		Available:   available,
	}
}

type updateProductRequest struct {
	Name        *string              `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Description *string              `json:"description,omitempty" validate:"omitempty,min=1,max=280"`
	Category    *string              `json:"category,omitempty" validate:"omitempty,min=1,max=64"`
	Image       *string              `json:"image,omitempty" validate:"omitempty,max=255"`
	Sizes       []productSizeRequest `json:"sizes,omitempty" validate:"omitempty,max=3,dive"`
	Available   *bool                `json:"available,omitempty"`
}

func (r updateProductRequest) toPatch() catalog.ProductPatch {
	patch := catalog.ProductPatch{
		Image:     r.Image,
		Sizes:     toSizes(r.Sizes),
		Available: r.Available,
	}
	if r.Name != nil {
		name := validators.SanitizeString(*r.Name, maxNameLen)
		patch.Name = &name
	}
	if r.Description != nil {
		description := validators.SanitizeString(*r.Description, maxDescriptionLen)
		patch.Description = &description
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		patch.Category = &category
	}
	return patch
}

func toSizes(in []productSizeRequest) []catalog.ProductSize {
	if len(in) == 0 {
		return nil
	}
	sizes := make([]catalog.ProductSize, 0, len(in))
	for _, s := range in {
		sizes = append(sizes, catalog.ProductSize{Name: strings.TrimSpace(s.Name), Price: s.Price})
	}
	return sizes
}

// AdminCreateProduct adds a product to the catalog.
func AdminCreateProduct(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := sess.AddProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct merges the provided fields into the product.
func AdminUpdateProduct(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, found, err := sess.UpdateProduct(r.Context(), productID, payload.toPatch())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		deleted, err := sess.DeleteProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !deleted {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
