package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/parafind/internal/api"
	"github.com/dgallion1/parafind/internal/config"
	"github.com/dgallion1/parafind/internal/document"
	"github.com/dgallion1/parafind/internal/exports"
	"github.com/dgallion1/parafind/internal/sink"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer, err := sink.NewRenderer(cfg.Page(), nil)
	if err != nil {
		log.Error("invalid page configuration", "error", err)
		os.Exit(1)
	}

	docs := document.NewStore()
	exp := exports.NewStore(cfg.ExportTTL)
	go exp.Run(ctx, cfg.ExportCleanupInterval, log)

	srv := api.NewServer(docs, exp, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting parafind", "port", cfg.Port, "export_ttl", cfg.ExportTTL.String())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
