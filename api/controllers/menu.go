package controllers

import (
	"net/http"

	"github.com/angelmondragon/caffeineveins/api/responses"
	"github.com/angelmondragon/caffeineveins/api/validators"
	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/shopspring/decimal"
)

type menuItem struct {
	catalog.Product
	FromPrice decimal.Decimal `json:"fromPrice"`
}

// MenuList returns the products in ?category= ("All" or absent lists everything).
func MenuList(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := validators.ParseQueryString(r, "category", 64)
		products := sess.Menu(category)
		items := make([]menuItem, 0, len(products))
		for _, p := range products {
			items = append(items, menuItem{Product: p, FromPrice: p.FromPrice()})
		}
		if category == "" {
			category = catalog.AllCategories
		}
		responses.WriteSuccess(w, map[string]any{"category": category, "products": items})
	}
}

func MenuCategories(provider SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.Categories())
	}
}
