package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"pdfcompress/internal/app"
	"pdfcompress/internal/config"
	"pdfcompress/internal/logging"
)

type exitCode int

const (
	exitSuccess exitCode = iota
	exitFailure
)

func main() {
	os.Exit(int(gracefulMain()))
}

// gracefulMain returns instead of calling os.Exit so deferred cleanup runs.
func gracefulMain() exitCode {
	bootLogger := logging.New(os.Stderr, config.LogConfig{Format: "logfmt", Level: "info"})

	cfg, err := config.Load()
	if err != nil {
		level.Error(bootLogger).Log("msg", "failed to load config", "err", err)
		return exitFailure
	}

	logger := logging.New(os.Stderr, cfg.Log)
	defer monitorPanic(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build application", "err", err)
		return exitFailure
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)
		select {
		case <-ctx.Done():
			return nil
		case s := <-sig:
			level.Info(logger).Log("msg", "signal received, terminating", "signal", s)
			cancel()
			return nil
		}
	})
	group.Go(func() error {
		err := a.Run(ctx)
		cancel()
		return err
	})

	if err := group.Wait(); err != nil {
		level.Error(logger).Log("msg", "server stopped with error", "err", err)
		return exitFailure
	}
	level.Info(logger).Log("msg", "server stopped")
	return exitSuccess
}

// monitorPanic logs a panic with its stack before re-raising it.
func monitorPanic(logger log.Logger) {
	if rec := recover(); rec != nil {
		err := fmt.Sprintf("panic: %v \n stack trace: %s", rec, debug.Stack())
		level.Error(logger).Log("err", err)
		panic(err)
	}
}
