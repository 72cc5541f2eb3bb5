package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omerfq/stitchline-backend/api/controllers"
	"github.com/omerfq/stitchline-backend/api/middleware"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/redis"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	Health     *controllers.HealthController
	Cart       *controllers.CartController
	Checkout   *controllers.CheckoutController
	Orders     *controllers.OrdersController
	Products   *controllers.ProductsController
	Categories *controllers.CategoriesController
	Brands     *controllers.BrandsController
	Auth       *controllers.AuthController
}

// New assembles the full route tree.
func New(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	idempotencyStore redis.IdempotencyStore,
	ctl Controllers,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.RequestLogger(logg))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS(cfg.App.CORSAllowedOrigins))

	r.Get("/health/live", ctl.Health.Live)
	r.Get("/health/ready", ctl.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", ctl.Categories.List)
		r.Get("/categories/{categoryId}", ctl.Categories.Get)

		r.Get("/brands", ctl.Brands.List)
		r.Get("/brands/{brandId}", ctl.Brands.Get)

		r.Get("/products", ctl.Products.List)
		r.Get("/products/{productId}", ctl.Products.Get)

		r.Get("/orders/{orderId}", ctl.Checkout.GetOrder)

		r.Post("/auth/login", ctl.Auth.Login)
		if !cfg.App.IsProd() {
			r.Post("/auth/register", ctl.Auth.Register)
		}

		// Guest cart routes share the cart token middleware.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", ctl.Cart.Get)
				r.Delete("/", ctl.Cart.Clear)
				r.Post("/lines", ctl.Cart.AddLine)
				r.Patch("/lines/{lineId}", ctl.Cart.UpdateLine)
				r.Delete("/lines/{lineId}", ctl.Cart.RemoveLine)
				r.Post("/quote", ctl.Cart.Quote)
			})

			r.With(middleware.Idempotency(idempotencyStore, "checkout", logg)).
				Post("/checkout", ctl.Checkout.PlaceOrder)
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", ctl.Products.List)
			r.Post("/", ctl.Products.Create)
			r.Get("/{productId}", ctl.Products.Get)
			r.Patch("/{productId}", ctl.Products.Update)
			r.Put("/{productId}/variants", ctl.Products.ReplaceVariants)
			r.Put("/{productId}/images", ctl.Products.ReplaceImages)
			r.Delete("/{productId}", ctl.Products.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", ctl.Categories.List)
			r.Post("/", ctl.Categories.Create)
			r.Get("/{categoryId}", ctl.Categories.Get)
			r.Patch("/{categoryId}", ctl.Categories.Update)
			r.Delete("/{categoryId}", ctl.Categories.Delete)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", ctl.Brands.List)
			r.Post("/", ctl.Brands.Create)
			r.Get("/{brandId}", ctl.Brands.Get)
			r.Patch("/{brandId}", ctl.Brands.Update)
			r.Delete("/{brandId}", ctl.Brands.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ctl.Orders.List)
			r.Get("/{orderId}", ctl.Orders.Get)
			r.Patch("/{orderId}/status", ctl.Orders.UpdateStatus)
			r.Patch("/{orderId}/tracking", ctl.Orders.UpdateTracking)
			r.Patch("/{orderId}/notes", ctl.Orders.UpdateNotes)
		})
	})

	return r
}
