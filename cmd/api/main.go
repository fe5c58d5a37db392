package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"product-details/internal/auth"
	"product-details/internal/config"
	"product-details/internal/db"
	"product-details/internal/httpserver"
	"product-details/internal/logging"
	productrepo "product-details/internal/repository/product"
	"product-details/internal/selection"
	productsvc "product-details/internal/service/product"
	"product-details/internal/service/recorder"
	"product-details/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New("api", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	cartService := recorder.New("cart", logger)
	wishlistService := recorder.New("wishlist", logger)
	viewLogger := logger.Named("selection")

	sessions := session.NewStore(cfg.Session.TTL, func(source *selection.SourceList, nav selection.Navigator) *selection.View {
		return selection.New(source, nav, auth.Context{}, cartService, wishlistService, selection.WithLogger(viewLogger))
	}, session.WithMaxSessions(cfg.Session.MaxSessions))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  productService,
		Sessions: sessions,
	}, httpserver.Options{
		SessionCookie:  cfg.Session.Cookie,
		SecureCookie:   cfg.Session.SecureCookie,
		SessionTTL:     cfg.Session.TTL,
		AuthUserHeader: cfg.AuthUserHeader,
		CORSOrigins:    cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, cfg.Session.SweepInterval, logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func sweepSessions(ctx context.Context, store *session.Store, every time.Duration, logger *zap.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug("swept sessions", zap.Int("removed", n), zap.Int("live", store.Len()), zap.Int("evicted", store.Evicted()))
			}
		}
	}
}
