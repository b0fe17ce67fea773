package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/medcare/admin-api/internal/config"
	authhandler "github.com/medcare/admin-api/internal/handler/auth"
	dashboardhandler "github.com/medcare/admin-api/internal/handler/dashboard"
	"github.com/medcare/admin-api/internal/handler/health"
	modulehandler "github.com/medcare/admin-api/internal/handler/module"
	resourcehandler "github.com/medcare/admin-api/internal/handler/resource"
	"github.com/medcare/admin-api/internal/middleware"
	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/repository/sqlstore"
	"github.com/medcare/admin-api/internal/router"
	authservice "github.com/medcare/admin-api/internal/service/auth"
	"github.com/medcare/admin-api/internal/service/dashboard"
	"github.com/medcare/admin-api/internal/service/resource"
	"github.com/medcare/admin-api/pkg/logger"
	"github.com/medcare/admin-api/pkg/metrics"
)

const serviceName = "MedCare Hospital Management System"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.New(nil).Fatal(err, "failed to load configuration")
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if err := model.ValidateCatalog(); err != nil {
		log.Fatal(err, "invalid resource catalog")
	}

	db, err := sqlstore.Open(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("medcare")

	store := sqlstore.New(db, m)
	if err := store.EnsureSchema(context.Background(), model.Catalog()); err != nil {
		log.Fatal(err, "failed to ensure database schema")
	}

	resourceSvc := resource.NewService(store)
	authSvc, err := authservice.NewService(cfg.Auth)
	if err != nil {
		log.Fatal(err, "failed to initialize session service")
	}
	dashboardSvc := dashboard.NewService(store)

	sessions := middleware.NewSessionMiddleware(authSvc)

	authHandler := authhandler.NewHandler(authSvc)
	healthHandler := health.NewHandler(db)
	moduleHandler := modulehandler.NewHandler(serviceName)
	dashboardHandler := dashboardhandler.NewHandler(dashboardSvc)
	catalogHandler := resourcehandler.NewCatalogHandler()

	catalog := model.Catalog()
	resources := make([]router.Handler, 0, len(catalog))
	for _, schema := range catalog {
		resources = append(resources, resourcehandler.NewHandler(schema, resourceSvc))
	}

	r := router.NewRouter(
		log.Zerolog(),
		sessions,
		authHandler,
		healthHandler,
		moduleHandler,
		dashboardHandler,
		catalogHandler,
		resources,
		m,
		router.Config{
			Timeout:   cfg.Server.Timeout(),
			RateLimit: rate.Limit(cfg.RateLimit.RPS),
			RateBurst: cfg.RateLimit.Burst,
			CORS:      middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info(fmt.Sprintf("listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
