package controllers

import (
	"net/http"

	"github.com/angelmondragon/caffeineveins/api/responses"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
)

// OrderPlace turns the caller's cart into a pending order.
func OrderPlace(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := sess.PlaceOrder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersMine lists the caller's orders, newest first.
func OrdersMine(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.MyOrders())
	}
}
