package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/caffeineveins/api/responses"
	"github.com/angelmondragon/caffeineveins/api/validators"
	"github.com/angelmondragon/caffeineveins/internal/orders"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/pagination"
)

func orderCursor(o orders.Order) pagination.Cursor {
	return pagination.Cursor{CreatedAt: o.Date, ID: o.ID}
}

// AdminOrders pages through the order history, newest first, optionally
// filtered by ?status=. The pending count is always over the full history.
func AdminOrders(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, _, err := validators.ParseQueryEnum(r, "status", enums.ParseOrderStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := sess.AllOrders(status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, next, err := pagination.Page(list, params, orderCursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").WithDetails(map[string]any{"field": "cursor"}))
			return
		}
		pending, err := sess.PendingCount()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orders":     page,
			"nextCursor": next,
			"pending":    pending,
		})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// AdminOrderStatus overwrites an order's status.
func AdminOrderStatus(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, found, err := sess.SetOrderStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}
