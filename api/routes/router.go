package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/caffeineveins/api/controllers"
	"github.com/angelmondragon/caffeineveins/api/middleware"
	"github.com/angelmondragon/caffeineveins/pkg/config"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
)

// NewRouter mounts the consumer and admin surfaces. metricsHandler may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions controllers.SessionProvider,
	storage controllers.Pinger,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if len(cfg.App.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.App.CORSOrigins))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storage))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1", func(r chi.Router) {
			r.Get("/menu", controllers.MenuList(sessions, logg))
			r.Get("/menu/categories", controllers.MenuCategories(sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(sessions, logg))
				r.Delete("/", controllers.CartClear(sessions, logg))
				r.Post("/items", controllers.CartAddItem(sessions, logg))
				r.Patch("/items", controllers.CartUpdateItem(sessions, logg))
				r.Delete("/items", controllers.CartRemoveItem(sessions, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.OrderPlace(sessions, logg))
				r.Get("/mine", controllers.OrdersMine(sessions, logg))
			})
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(sessions, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(sessions, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(sessions, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrders(sessions, logg))
				r.Post("/{orderId}/status", controllers.AdminOrderStatus(sessions, logg))
			})
		})
	})

	return r
}
