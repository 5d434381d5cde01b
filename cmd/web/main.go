package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/config"
	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/repository/memory"
	storage "github.com/njprem/thirdplace_finder_web/internal/repository/minio"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
	"github.com/njprem/thirdplace_finder_web/internal/repository/postgres"
	"github.com/njprem/thirdplace_finder_web/internal/repository/restapi"
	"github.com/njprem/thirdplace_finder_web/internal/service"
	transport "github.com/njprem/thirdplace_finder_web/internal/transport/http"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

const (
	favoritesAudience = "thirdplace-favorites"
	flashAudience     = "thirdplace-flash"
	favoritesTTL      = 365 * 24 * time.Hour
	flashTTL          = time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code once the logger has been flushed.
func realMain() int {
	cfg := config.Load()

	var extra []io.Writer
	var logstash *logging.LogstashWriter
	if cfg.LogstashTCPAddr != "" {
		w, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logstash disabled: %v\n", err)
		} else {
			logstash = w
			extra = append(extra, w)
		}
	}
	logger := logging.New(cfg.LogLevel, extra...)
	defer func() {
		_ = logger.Sync()
		if logstash != nil {
			_ = logstash.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	client, err := restapi.NewClient(cfg.APIBaseURL, restapi.WithTimeout(cfg.APITimeout))
	if err != nil {
		return fmt.Errorf("places api client: %w", err)
	}
	catalog := service.Catalog{
		Places:     client.Places(),
		Categories: client.Categories(),
		Regions:    client.Regions(),
		Events:     client.Events(),
	}

	favoritesKey, err := util.DeriveKey(cfg.SessionSecret, favoritesAudience)
	if err != nil {
		return fmt.Errorf("derive favorites key: %w", err)
	}
	flashKey, err := util.DeriveKey(cfg.SessionSecret, flashAudience)
	if err != nil {
		return fmt.Errorf("derive flash key: %w", err)
	}
	favoritesSigner := util.NewJWTManager(favoritesKey, favoritesAudience, favoritesTTL)
	flash := transport.NewFlashStore(util.NewJWTManager(flashKey, flashAudience, flashTTL), cfg.CookieSecure)

	hub := service.NewFavoriteHub()
	resolver, cleanup, err := favoritesResolver(ctx, cfg, favoritesSigner, hub, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	renderer, err := transport.NewTemplateRenderer()
	if err != nil {
		return err
	}

	e := transport.NewRouter(logger, cfg.AllowOrigins, renderer)
	e.Use(transport.BrowserIdentity(cfg.CookieSecure))
	e.Use(transport.WithFavorites(resolver))

	places := service.NewPlacesService(catalog)
	transport.RegisterPages(e, transport.PageServices{
		Home:        service.NewHomeService(catalog),
		Places:      places,
		PlaceDetail: service.NewPlaceDetailService(catalog),
		EventDetail: service.NewEventDetailService(catalog),
		AddPlace:    service.NewAddPlaceService(catalog),
		Favorites:   service.NewFavoritesViewService(catalog),
	}, flash, transport.PlaceFeatures{
		Create: cfg.EnablePlaceCreate,
		Update: cfg.EnablePlaceUpdate,
		Delete: cfg.EnablePlaceDelete,
	}, transport.MapSettings{
		Lat:  cfg.MapCenterLat,
		Lng:  cfg.MapCenterLng,
		Zoom: cfg.MapZoom,
	})
	transport.RegisterFavorites(e, hub)
	transport.RegisterPlaceAPI(e, places)
	transport.RegisterSwagger(e, transport.DefaultSwaggerSpec)

	return serve(ctx, e, ":"+cfg.Port, hub, logger)
}

// favoritesResolver builds the favorites store selected by FAVORITES_BACKEND.
func favoritesResolver(ctx context.Context, cfg config.Config, signer *util.JWTManager, hub *service.FavoriteHub, logger *zap.Logger) (transport.FavoritesResolver, func(), error) {
	noop := func() {}
	var backend ports.FavoriteStorage

	switch cfg.FavoritesBackend {
	case config.FavoritesBackendCookie:
		logger.Info("favorites stored in browser cookies")
		return transport.CookieFavorites(signer, hub, cfg.CookieSecure), noop, nil
	case config.FavoritesBackendPostgres:
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		pg := postgres.NewFavoriteStorage(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("prepare favorites table: %w", err)
		}
		backend = pg
		noop = func() { _ = db.Close() }
	case config.FavoritesBackendMinIO:
		client, err := storage.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect minio: %w", err)
		}
		objects := storage.NewObjectStorage(client)
		if err := objects.EnsureBucket(ctx, cfg.MinIOBucketFavorites); err != nil {
			return nil, noop, fmt.Errorf("prepare favorites bucket: %w", err)
		}
		backend = storage.NewFavoriteStorage(objects, cfg.MinIOBucketFavorites, cfg.MinIOObjectPrefix)
	case config.FavoritesBackendMemory:
		backend = memory.NewFavoriteStorage()
	default:
		return nil, noop, fmt.Errorf("unsupported favorites backend %q", cfg.FavoritesBackend)
	}

	logger.Info("favorites stored in shared backend", zap.String("backend", cfg.FavoritesBackend))
	return transport.SharedFavorites(service.NewFavoriteService(backend, hub, "")), noop, nil
}

func serve(ctx context.Context, e *echo.Echo, addr string, hub *service.FavoriteHub, logger *zap.Logger) error {
	// No write timeout: the favorites event stream stays open.
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
