/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unomon/internal/config"
	"github.com/phuonguno98/unomon/internal/server"
	"github.com/phuonguno98/unomon/pkg/version"
)

var (
	// Serve command specific flags
	serveListenAddr string
	serveInterval   time.Duration
	serveDataFile   string
	serveNoMonitor  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP reporting API",
	Long: `Run the HTTP reporting API. Background monitoring starts automatically
unless --no-monitor is given; the API exposes the current status, history,
alerts, statistics and threshold configuration.

Examples:
  # Serve on the default address with monitoring every 60s
  unomon serve

  # Custom address and tick interval
  unomon serve --listen 127.0.0.1:9090 --interval 15s`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListenAddr, "listen", config.DefaultListenAddr,
		"HTTP listen address (host:port)")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", config.DefaultInterval,
		"Monitoring tick interval (e.g., 5s, 30s, 1m)")
	serveCmd.Flags().StringVar(&serveDataFile, "data-file", config.DefaultDataFile,
		"Path of the JSON history file")
	serveCmd.Flags().BoolVar(&serveNoMonitor, "no-monitor", false,
		"Do not start background monitoring; clients start it via the API")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = config.Duration(serveInterval)
	}
	if cmd.Flags().Changed("data-file") {
		cfg.DataFile = serveDataFile
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = serveListenAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)
	logger.Info("Starting UnoMon",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())

	engine := buildEngine(cfg, logger)
	if !serveNoMonitor {
		if err := engine.Start(time.Duration(cfg.Interval)); err != nil {
			return fmt.Errorf("failed to start monitoring: %w", err)
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.NewServer(engine, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, initiating shutdown", "signal", sig)
	case err := <-errChan:
		logger.Error("HTTP server failed", "error", err)
		engine.Stop()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown failed", "error", err)
	}

	// Stops the loop and performs the final history save
	engine.Stop()

	logger.Info("Shutdown complete")
	return nil
}
