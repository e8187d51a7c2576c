package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"equiptrack/internal/config"
	"equiptrack/internal/database"
	"equiptrack/internal/inventory"
	"equiptrack/internal/modules/events"
	"equiptrack/internal/modules/requests"
	jwtsvc "equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/logger"
	"equiptrack/internal/repository"
	"equiptrack/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel, !cfg.IsProdLike())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	policy, err := requests.ParseStockPolicy(cfg.StockPolicy)
	if err != nil {
		lg.Fatal("invalid stock policy", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// a store that cannot be opened or migrated still leaves the service usable
	// on the built-in fixture; writes then come back as warnings
	var store repository.DataStore
	db, err := database.Connect(cfg.DatabaseURL, lg)
	switch {
	case err != nil:
		lg.Error("database connection failed", zap.Error(err))
		store = repository.Offline{Cause: err}
	default:
		if err := repository.Migrate(db); err != nil {
			lg.Error("migration failed", zap.Error(err))
		}
		store = repository.NewStore(db)
	}

	inv := inventory.New(store, lg)
	if err := inv.Load(ctx); err != nil {
		lg.Warn("serving built-in fixture", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := events.NewHub(lg)
	defer hub.Close()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.Deps{
		Store:       store,
		Inventory:   inv,
		JWT:         j,
		Hub:         hub,
		StockPolicy: policy,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Log:         lg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("stock_policy", policy.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
