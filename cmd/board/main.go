package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"departures.lillekyla.ee/internal/app"
	"departures.lillekyla.ee/internal/logging"
	"departures.lillekyla.ee/internal/stations"
	"departures.lillekyla.ee/internal/webui"
)

func main() {
	var cfg app.BoardConfig

	flag.IntVar(&cfg.Port, "port", 3000, "Board server port")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	cfg, err := app.LoadBoardConfig(cfg)
	if err != nil {
		logging.LogError(logger, "invalid configuration", err)
		os.Exit(1)
	}

	catalog, err := stations.LoadCatalog(cfg.StationsFile, logger)
	if err != nil {
		logging.LogError(logger, "failed to load stations", err)
		os.Exit(1)
	}

	client := webui.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.Refresh})
	board := webui.NewBoard(client, catalog, cfg.Refresh, logger)
	ui, err := webui.New(board, logger, cfg.Location, cfg.TimezoneLabel, cfg.Refresh)
	if err != nil {
		logging.LogError(logger, "failed to parse templates", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go board.Run(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      ui.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting board", "addr", srv.Addr, "api", cfg.APIURL, "refresh", cfg.Refresh.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.LogError(logger, "board server stopped", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(logger, "board shutdown failed", err)
	}
}
