package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/UFAZ-L2-CS1/DADLY/config"
	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
	"github.com/UFAZ-L2-CS1/DADLY/routes"
	"github.com/UFAZ-L2-CS1/DADLY/services"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("database")
	}

	var revoked services.RevocationStore = services.NewMemoryRevocationStore()
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("redis")
	}
	if rdb != nil {
		defer rdb.Close()
		revoked = services.NewRedisRevocationStore(rdb)
		logging.Info().Str("addr", cfg.Redis.Addr).Msg("revoked tokens kept in redis")
	}

	tokens, err := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.SigningMethod, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("jwt")
	}

	r, err := routes.SetupRouter(cfg, routes.NewServices(repository.New(db), tokens, revoked))
	if err != nil {
		logging.Fatal().Err(err).Msg("router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting DADLY API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown")
	}
}
