package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/caffeineveins/api/responses"
	"github.com/angelmondragon/caffeineveins/api/validators"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartFetch returns the caller's cart lines, total and unit count.
func CartFetch(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.Cart())
	}
}

func CartClear(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.ClearCart()
		responses.WriteSuccess(w, sess.Cart())
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// CartAddItem adds one unit of a product size, merging with an existing line.
func CartAddItem(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := sess.AddToCart(strings.TrimSpace(payload.ProductID), strings.TrimSpace(payload.Size))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"quantity": quantity,
			"cart":     sess.Cart(),
		})
	}
}

// cart lines are addressed by product id and unit price
type updateCartItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity  *int            `json:"quantity" validate:"required"`
}

// CartUpdateItem sets a line's quantity; zero or less removes the line.
func CartUpdateItem(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.SetQuantity(strings.TrimSpace(payload.ProductID), payload.Price, *payload.Quantity)
		responses.WriteSuccess(w, sess.Cart())
	}
}

// CartRemoveItem drops the lines matching ?productId=&price=.
func CartRemoveItem(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := validators.ParseQueryString(r, "productId", 64)
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "productId is required"))
			return
		}
		price, err := decimal.NewFromString(validators.ParseQueryString(r, "price", 32))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be numeric"))
			return
		}

		removed := sess.RemoveFromCart(productID, price)
		responses.WriteSuccess(w, map[string]any{
			"removed": removed,
			"cart":    sess.Cart(),
		})
	}
}
