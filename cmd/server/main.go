// Command server runs the finance-tracking GraphQL API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fintrack-app/fintrack/internal/app"
	appstorage "github.com/fintrack-app/fintrack/internal/app/storage/postgres"
	"github.com/fintrack-app/fintrack/internal/auth"
	"github.com/fintrack-app/fintrack/internal/config"
	"github.com/fintrack-app/fintrack/internal/database"
	gql "github.com/fintrack-app/fintrack/internal/graphql"
	"github.com/fintrack-app/fintrack/internal/middleware"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", cfg.LogLevel)

	stores := app.Stores{}
	if cfg.DatabaseURL != "" {
		if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.WithError(err).Fatal("run migrations")
		}
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("connect to database")
		}
		defer db.Close()

		store := appstorage.New(db)
		stores = app.Stores{Users: store, Categories: store, Transactions: store}
	} else {
		log.Warn("DATABASE_URL not set; using in-memory store")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	application := app.New(stores, issuer, log)

	schema, err := gql.NewSchema(application)
	if err != nil {
		log.WithError(err).Fatal("build schema")
	}

	cors := middleware.NewCORSMiddleware([]string{cfg.CORSOrigin})
	identity := middleware.NewAuthMiddleware(issuer, log)

	r := chi.NewRouter()
	r.Use(cors.Handler, identity.Handler)
	r.Handle("/graphql", gql.NewHandler(schema, log))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"healthy","timestamp":%q}`, time.Now().Format(time.RFC3339))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.Port).Info("server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
