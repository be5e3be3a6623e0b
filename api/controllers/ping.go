package controllers

import (
	"net/http"

	"github.com/angelmondragon/caffeineveins/api/middleware"
	"github.com/angelmondragon/caffeineveins/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

// PrivatePing echoes who the identity token says the caller is.
func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if user, ok := middleware.UserFromContext(r.Context()); ok {
			payload["username"] = user.Username
			payload["role"] = string(user.Role)
		}
		responses.WriteSuccess(w, payload)
	}
}
