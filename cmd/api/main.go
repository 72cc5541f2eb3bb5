package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/omerfq/stitchline-backend/api/controllers"
	"github.com/omerfq/stitchline-backend/api/routes"
	"github.com/omerfq/stitchline-backend/api/server"
	authsvc "github.com/omerfq/stitchline-backend/internal/auth"
	"github.com/omerfq/stitchline-backend/internal/brands"
	"github.com/omerfq/stitchline-backend/internal/cart"
	"github.com/omerfq/stitchline-backend/internal/categories"
	"github.com/omerfq/stitchline-backend/internal/checkout"
	"github.com/omerfq/stitchline-backend/internal/orders"
	"github.com/omerfq/stitchline-backend/internal/products"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/metrics"
	"github.com/omerfq/stitchline-backend/pkg/migrate"
	"github.com/omerfq/stitchline-backend/pkg/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		println("config error:", err.Error())
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "stitchline-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, database.Close())
	}()

	cache, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, cache.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, database); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	conn := database.DB()

	productsSvc := products.NewService(products.NewRepo(conn), logg)
	categoriesSvc := categories.NewService(categories.NewRepo(conn))
	brandsSvc := brands.NewService(brands.NewRepo(conn))
	ordersSvc := orders.NewService(orders.NewRepo(conn), logg)

	cartStorage := cart.NewRedisStorage(cache, logg, cfg.Cart.TTL)
	cartSvc := cart.NewService(cartStorage, productsSvc, logg)

	checkoutSvc := checkout.NewService(cartSvc, orders.NewRepo(conn), database, cfg.Checkout, checkoutMetrics, logg)
	adminAuthSvc := authsvc.NewService(authsvc.NewRepo(conn), cfg, logg)

	router := routes.New(cfg, logg, registry, cache, routes.Controllers{
		Health:     controllers.NewHealthController(database, cache, logg),
		Cart:       controllers.NewCartController(cartSvc, checkoutSvc, logg),
		Checkout:   controllers.NewCheckoutController(checkoutSvc, ordersSvc, logg),
		Orders:     controllers.NewOrdersController(ordersSvc, logg),
		Products:   controllers.NewProductsController(productsSvc, logg),
		Categories: controllers.NewCategoriesController(categoriesSvc, logg),
		Brands:     controllers.NewBrandsController(brandsSvc, logg),
		Auth:       controllers.NewAuthController(adminAuthSvc, logg),
	})

	srv := server.New(cfg.App, router, logg)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		return multierr.Append(err, srv.Shutdown(context.Background()))
	case startErr := <-serveErr:
		return multierr.Append(err, startErr)
	}
}
