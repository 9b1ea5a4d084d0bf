// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/docstring-checker/services/docstrings"
	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
)

var metricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Fix docstrings continuously as files change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatchCommand,
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Prometheus /metrics listen address (overrides config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr)
	}

	runner := docstrings.NewRunner(cfg, slog.Default())

	// Initial pass so the tree is clean before watching for deltas.
	runner.Run(ctx, docstrings.ModeFix, args)

	watcher := docstrings.NewWatcher(runner, cfg.WatchDebounce(), slog.Default())
	if err := watcher.Watch(ctx, args); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveMetrics exposes Prometheus metrics until the context is canceled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("serving metrics", slog.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics server failed", slog.Any("error", err))
	}
}
