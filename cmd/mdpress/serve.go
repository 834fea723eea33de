package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/assets"
)

// HTTP server timeouts. Writes allow for a full render.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// runServe starts the HTTP API and blocks until ctx is cancelled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := applyTimeout(cfg, flags.timeout); err != nil {
		return err
	}
	if flags.changed("addr") {
		cfg.Server.Addr = flags.addr
	}
	if flags.changed("workers") {
		cfg.Render.Workers = flags.workers
	}

	logger, err := newLogger(flags.common, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	defer undo()

	opts := converterOptions(cfg, logger)

	preview, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = preview.Close() }()

	poolSize := mdpress.ResolvePoolSize(cfg.Render.Workers)
	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	var fontDir string
	if cfg.Assets.BasePath != "" {
		fontDir = filepath.Join(cfg.Assets.BasePath, assets.FontDirName)
	}

	srv := NewServer(ServerConfig{
		Pool:          pool,
		Preview:       preview,
		Defaults:      profileFromConfig(cfg),
		TOCTitle:      cfg.TOC.Title,
		FontDir:       fontDir,
		FontURLPrefix: cfg.Server.FontURLPrefix,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.TimeoutDuration() + readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.Info("server starting",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("pool_size", poolSize),
		zap.Strings("fonts", preview.Fonts().Registered()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
