package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonvela/storefront-backend/api/controllers"
	cartcontrollers "github.com/maisonvela/storefront-backend/api/controllers/cart"
	draftcontrollers "github.com/maisonvela/storefront-backend/api/controllers/drafts"
	"github.com/maisonvela/storefront-backend/api/middleware"
	"github.com/maisonvela/storefront-backend/internal/cart"
	checkoutsvc "github.com/maisonvela/storefront-backend/internal/checkout"
	"github.com/maisonvela/storefront-backend/internal/drafts"
	"github.com/maisonvela/storefront-backend/pkg/config"
	"github.com/maisonvela/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	carts *cart.Manager,
	draftRegistry *drafts.Registry,
	checkoutService checkoutsvc.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.Fetch(carts, logg))
				r.Delete("/", cartcontrollers.Clear(carts, logg))
				r.Post("/items", cartcontrollers.AddItem(carts, logg))
				r.Patch("/items/{productID}", cartcontrollers.UpdateQuantity(carts, logg))
				r.Delete("/items/{productID}", cartcontrollers.RemoveItem(carts, logg))
			})

			r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		})

		// admin drafts are keyed by form id, not shopper session
		r.Route("/drafts/{formID}", func(r chi.Router) {
			r.Get("/", draftcontrollers.Fetch(draftRegistry, logg))
			r.Put("/", draftcontrollers.Save(draftRegistry, logg))
			r.Delete("/", draftcontrollers.Discard(draftRegistry, logg))
			r.Patch("/enabled", draftcontrollers.SetEnabled(draftRegistry, logg))
		})
	})

	return r
}
