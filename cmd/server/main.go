package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/unisonhq/unison-backend/internal/config"
	"github.com/unisonhq/unison-backend/internal/logger"
	"github.com/unisonhq/unison-backend/internal/server"
	"github.com/unisonhq/unison-backend/internal/store"
)

func main() {
	cfg := config.Load()
	if cfg.Debug {
		logger.SetDebug()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	if cfg.PostgresURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Fatalf("postgres store: %v", err)
		}
		defer pg.Close()
		st = pg
		logger.Infof("using postgres-backed room store")
	} else {
		st = store.NewMemory()
		logger.Infof("POSTGRES_URL not set, using in-memory room store")
	}

	srv := server.New(cfg, st)

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
