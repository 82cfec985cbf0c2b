// Package app wires configuration, storage, the PDF reducer, services and
// HTTP handlers into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"pdfcompress/internal/config"
	"pdfcompress/internal/handler"
	"pdfcompress/internal/logging"
	"pdfcompress/internal/pdf"
	"pdfcompress/internal/port"
	"pdfcompress/internal/router"
	"pdfcompress/internal/service"
	"pdfcompress/internal/storage"
)

type App struct {
	cfg     *config.Config
	logger  log.Logger
	engine  *gin.Engine
	storage port.ObjectStorage
}

// Build creates every component. Storage is optional; without it only inline
// delivery works and link requests fail with STORAGE_NOT_CONFIGURED.
func Build(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var store port.ObjectStorage
	if cfg.Storage.Enabled() {
		level.Info(logger).Log("msg", "init storage", "bucket", cfg.Storage.Bucket)
		s, err := storage.New(ctx, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed init storage: %w", err)
		}
		store = s
	} else {
		level.Warn(logger).Log("msg", "storage not configured, link delivery disabled")
	}

	reducer := pdf.NewReducer(logging.Component(logger, "reducer"))
	compressSvc := service.NewCompressService(reducer, store, &cfg.Compress, &cfg.Storage, logging.Component(logger, "compress"))

	compressH := handler.NewCompressHandler(compressSvc, &cfg.Compress, logging.Component(logger, "handler"))
	healthH := handler.NewHealthHandler(store, cfg.Storage.Bucket)

	engine := router.Setup(cfg, logging.Component(logger, "http"), compressH, healthH)

	level.Info(logger).Log(
		"msg", "build ended",
		"delivery", cfg.Compress.Delivery,
		"max_upload_bytes", cfg.Compress.MaxUploadBytes,
		"function_key", cfg.Auth.FunctionKey != "",
	)
	return &App{cfg: cfg, logger: logger, engine: engine, storage: store}, nil
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Engine returns the gin engine, for hosts that adapt it to another transport.
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Run serves HTTP until ctx is canceled, then shuts the server down within
// the configured timeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		level.Info(a.logger).Log("msg", "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()

		level.Info(a.logger).Log("msg", "graceful shutdown of server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})
	return group.Wait()
}
