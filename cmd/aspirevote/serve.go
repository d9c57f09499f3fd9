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

	"aspirevote-backend/cmd/aspirevote/apis"
	"aspirevote-backend/cmd/aspirevote/database"
	"aspirevote-backend/cmd/aspirevote/model"
	"aspirevote-backend/cmd/aspirevote/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the event API server",
	RunE:  runServe,
}

// runServe refuses to start without a reachable store.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerCfg()
	if err != nil {
		return pkgerrors.Wrap(err, "load config")
	}
	configureLogging(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.RedisAddr != "" {
		cache := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to reach Redis, continuing without caching")
			_ = cache.Close()
		} else {
			defer cache.Close()
			store = repository.NewCachedEventRepo(store, cache, cfg.CacheTTL)
			log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("event list cache enabled")
		}
	}

	e := newServer(store, []byte(cfg.JWTSecret), cfg.Debug)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info().Str("addr", addr).Str("store", cfg.Store).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg ServerCfg) (repository.EventStore, func(), error) {
	switch cfg.Store {
	case storePostgres:
		db, err := database.OpenPostgres(cfg.postgres(), cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&model.Event{}); err != nil {
			return nil, nil, pkgerrors.Wrap(err, "migrate events")
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewEventRepo(db), closeDB, nil
	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() {
			_ = client.Disconnect(context.Background())
		}
		return repository.NewMongoEventRepo(client, cfg.MongoDatabase), closeClient, nil
	}
}

func newServer(store repository.EventStore, secret []byte, debug bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(apis.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	rootg := e.Group("")
	apig := rootg.Group("/api", apis.BearerAuth(secret))

	apis.
		NewHealthCheckAPI(store).
		Setup(rootg)

	apis.
		NewEventAPI(store).
		WithDebug(debug).
		Setup(apig)

	return e
}
