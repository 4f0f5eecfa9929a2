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
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unomon/internal/collector"
	"github.com/phuonguno98/unomon/internal/config"
	"github.com/phuonguno98/unomon/internal/monitor"
	"github.com/phuonguno98/unomon/internal/provider"
	"github.com/phuonguno98/unomon/internal/store"
)

var (
	// Global persistent flags (shared by subcommands)
	logLevel   string
	logFile    string
	configFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "unomon",
	Short: "UnoMon - Host resource monitoring with threshold alerting",
	Long: `UnoMon is a lightweight, cross-platform host resource monitor written in Go.
It samples CPU, memory, disk, network and process metrics on a fixed interval,
keeps a bounded rolling history, raises alerts when configurable thresholds
are exceeded, and computes windowed usage statistics.

Use 'unomon monitor' for the interactive console or 'unomon serve' for the
HTTP reporting API.`,
	// No RunE field, so it prints help by default
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel,
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path (empty = stdout)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to a YAML configuration file")
}

// InitLogger initializes and returns a slog.Logger based on the provided settings.
// It is shared by all commands to ensure consistent logging format.
func InitLogger(levelStr, fileStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if fileStr != "" {
		f, err := os.OpenFile(fileStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// loadConfig reads the config file (if any) and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if rootCmd.PersistentFlags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// buildEngine assembles the full monitoring stack from a configuration.
func buildEngine(cfg *config.Config, logger *slog.Logger) *monitor.Engine {
	sysProvider := provider.NewSystemProvider(0)
	snapCollector := collector.New(sysProvider, cfg.TopProcesses, logger)
	fileStore := store.NewFileStore(cfg.DataFile, cfg.HistorySize)

	return monitor.NewEngine(snapCollector, sysProvider, fileStore, monitor.Options{
		HistorySize:   cfg.HistorySize,
		AlertCapacity: cfg.AlertCapacity,
		Thresholds:    cfg.Thresholds,
	}, logger)
}
