// Package storefront предоставляет маршруты витрины.
package storefront

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/celestialcentral/storefront/internal/authstate"
	"github.com/celestialcentral/storefront/internal/http/handlers/auth/login"
	"github.com/celestialcentral/storefront/internal/http/handlers/auth/register"
	"github.com/celestialcentral/storefront/internal/http/handlers/cart/read"
	"github.com/celestialcentral/storefront/internal/http/handlers/cart/remove"
	"github.com/celestialcentral/storefront/internal/http/handlers/checkedout/fulfill"
	"github.com/celestialcentral/storefront/internal/http/handlers/checkout/pay"
	"github.com/celestialcentral/storefront/internal/http/handlers/checkout/session"
	"github.com/celestialcentral/storefront/internal/http/handlers/checkout/setup"
	"github.com/celestialcentral/storefront/internal/http/handlers/products/debug"
	"github.com/celestialcentral/storefront/internal/http/handlers/products/list"
	productread "github.com/celestialcentral/storefront/internal/http/handlers/products/read"
	"github.com/celestialcentral/storefront/internal/http/middlewarectx"
	cartservice "github.com/celestialcentral/storefront/internal/services/cart"
	checkoutservice "github.com/celestialcentral/storefront/internal/services/checkout"
	fulfillmentservice "github.com/celestialcentral/storefront/internal/services/fulfillment"
	productsservice "github.com/celestialcentral/storefront/internal/services/products"
	userservice "github.com/celestialcentral/storefront/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты витрины.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authStore *authstate.Store,
	userService *userservice.Service, productsService *productsservice.Service,
	cartService *cartservice.Service, checkoutService *checkoutservice.Service,
	fulfillmentService *fulfillmentservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService, authStore).ServeHTTP)
		r.Get("/products", list.New(logger, productsService).ServeHTTP)
		r.Get("/products/{id}", productread.New(logger, productsService).ServeHTTP)
		r.Get("/debug", debug.New(logger, productsService).ServeHTTP)

		// Группа с аутентификацией по authState-куке
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authStore, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/cart", read.New(logger, cartService, authStore).ServeHTTP)
			r.Delete("/cart/{id}", remove.New(logger, cartService, authStore).ServeHTTP)
			r.Post("/checkout/setup", setup.New(logger, checkoutService, authStore).ServeHTTP)
			r.Post("/checkout/pay", pay.New(logger, checkoutService).ServeHTTP)
			r.Post("/checkout/session", session.New(logger, checkoutService, authStore).ServeHTTP)
			r.Post("/checkedout", fulfill.New(logger, fulfillmentService, authStore).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
