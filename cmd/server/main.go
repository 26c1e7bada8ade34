package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madhusmita6505/mads-poc/internal/config"
	"github.com/madhusmita6505/mads-poc/internal/httpserver"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

func main() {
	log := logging.Init()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	e := httpserver.New(cfg)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalw("server error", "err", err)
		}
	case sig := <-sigChan:
		log.Infow("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "err", err)
		_ = server.Close()
	}
}
