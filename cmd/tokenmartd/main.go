package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/app"
	"github.com/tokenmart/tokenmart/internal/api"
	"github.com/tokenmart/tokenmart/internal/config"
	"github.com/tokenmart/tokenmart/internal/log"
	"github.com/tokenmart/tokenmart/store"
)

func main() {
	cfg := config.Init()
	log.NewLogger(cfg.Debug)

	opts, err := loadGenesis(cfg.GenesisPath)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("path", cfg.GenesisPath)).Fatal("Cannot load genesis")
	}

	sm := app.NewMarketplace(store.MemStore(), api.Authenticator{})
	if err := sm.InitGenesis(opts, app.Initializers()...); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Cannot initialize state")
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewServer(sm).Router(),
	}

	go func() {
		zap.L().With(zap.String("addr", cfg.ListenAddr)).Info("Marketplace started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().With(zap.Error(err)).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.L().Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().With(zap.Error(err)).Error("Shutdown failed")
	}
}

func loadGenesis(path string) (tokenmart.Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var opts tokenmart.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
