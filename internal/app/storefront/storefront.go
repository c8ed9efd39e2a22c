// Package storefront собирает и запускает HTTP-приложение витрины.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/celestialcentral/storefront/internal/authstate"
	"github.com/celestialcentral/storefront/internal/backend"
	"github.com/celestialcentral/storefront/internal/cache"
	"github.com/celestialcentral/storefront/internal/config"
	"github.com/celestialcentral/storefront/internal/paymentprovider"
	cartservice "github.com/celestialcentral/storefront/internal/services/cart"
	checkoutservice "github.com/celestialcentral/storefront/internal/services/checkout"
	fulfillmentservice "github.com/celestialcentral/storefront/internal/services/fulfillment"
	productsservice "github.com/celestialcentral/storefront/internal/services/products"
	userservice "github.com/celestialcentral/storefront/internal/services/user"
)

// App держит собранный HTTP-сервер витрины и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	cache  cache.Cache
}

// New собирает приложение: Redis-кэш, клиент backend, платёжный клиент,
// хранилище authState и все сервисы, после чего регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	backendClient := backend.New(cfg.BackendURL, logger)
	providerClient := paymentprovider.NewClient(cfg.Stripe.PublishableKey())
	authStore := authstate.New(cfg.AuthToken.SecretKey, cfg.AuthToken.TokenTTL)

	saver, err := fulfillmentservice.NewDiskSaver(cfg.Downloads.Dir)
	if err != nil {
		return nil, err
	}

	userService := userservice.New(backendClient, logger)
	productsService := productsservice.New(backendClient, cacheRedis, cfg.CatalogCacheTTL, logger)
	cartService := cartservice.New(backendClient, logger)
	checkoutService := checkoutservice.New(backendClient, providerClient, logger)
	fulfillmentService := fulfillmentservice.New(backendClient, saver, cfg.Downloads.Delay, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authStore,
		userService, productsService, cartService, checkoutService, fulfillmentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  *cacheRedis,
	}, nil
}

// Run запускает сервер и дожидается либо его ошибки, либо отмены контекста
// с последующей мягкой остановкой.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
