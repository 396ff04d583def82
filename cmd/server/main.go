// Package main initializes and starts the Listalia HTTP server,
// setting up configuration, logging, the persistence adapter, the
// identity provider, the entity and preferences stores, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/blink-new/listalia/internal/auth"
	"github.com/blink-new/listalia/internal/blob"
	"github.com/blink-new/listalia/internal/config"
	"github.com/blink-new/listalia/internal/db"
	"github.com/blink-new/listalia/internal/logger"
	"github.com/blink-new/listalia/internal/prefs"
	"github.com/blink-new/listalia/internal/server/handler/http"
	"github.com/blink-new/listalia/internal/store"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open the persistence adapter: PostgreSQL when a DSN is configured,
	// the local data file otherwise.
	var blobs blob.Store
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		blobs = blob.NewPostgresStore(postgresDB)
	} else {
		fileStore, err := blob.OpenFile(options.DataFile)
		if err != nil {
			zapLogger.Fatal("cannot open data file", zap.Error(err))
		}
		blobs = fileStore
	}

	// Initialize the identity provider and the per-user stores.
	identity := auth.New(blobs, zapLogger, time.Second)
	entities := store.New(blobs, zapLogger)
	preferences := prefs.New(blobs, zapLogger)

	// Every identity change re-scopes the stores to the new user.
	ctx := context.Background()
	identity.OnChange(func(userID string, authenticated bool) {
		if authenticated {
			entities.Attach(ctx, userID)
			preferences.Attach(ctx, userID)
			return
		}
		entities.Detach()
		preferences.Detach()
	})

	// Reload a persisted session, if any.
	identity.Restore(ctx)

	// Create HTTP handlers for auth, lists, and preferences endpoints.
	authHandler := &http.AuthHandler{AuthService: identity}
	listsHandler := &http.ListsHandler{Store: entities}
	prefsHandler := &http.PreferencesHandler{Prefs: preferences}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, listsHandler, prefsHandler, identity, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
