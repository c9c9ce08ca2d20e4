package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	router, err := setupRoutes(deps)
	if err != nil {
		deps.Logger.Error("Failed to set up routes", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			_ = deps.Close()
			os.Exit(1)
		}
	}

	if err := deps.Close(); err != nil {
		slog.Error("Database close error", "error", err)
	}
	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) (*chi.Mux, error) {
	var spec *swagger.Spec
	if path := deps.Config.App.SpecPath; path != "" {
		loaded, err := swagger.LoadSpec(context.Background(), path)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, deps.Handlers(), deps.Auth, spec, deps.Logger)
	return router, nil
}
