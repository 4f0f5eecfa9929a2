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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unomon/internal/config"
	"github.com/phuonguno98/unomon/internal/monitor"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

var (
	// Monitor command specific flags
	monInterval time.Duration
	monDataFile string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the interactive monitoring console",
	Long: `Run the interactive monitoring console. The console drives the engine's
public operations: show the current status, start or stop background
monitoring, inspect alerts and statistics, and adjust thresholds.

Examples:
  # Run with default settings
  unomon monitor

  # Custom tick interval and history file
  unomon monitor --interval 30s --data-file /var/lib/unomon/history.json`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVar(&monInterval, "interval", config.DefaultInterval,
		"Monitoring tick interval (e.g., 5s, 30s, 1m)")
	monitorCmd.Flags().StringVar(&monDataFile, "data-file", config.DefaultDataFile,
		"Path of the JSON history file")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = config.Duration(monInterval)
	}
	if cmd.Flags().Changed("data-file") {
		cfg.DataFile = monDataFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := InitLogger(cfg.LogLevel, cfg.LogFile)
	engine := buildEngine(cfg, logger)

	fmt.Println("=== SYSTEM MONITOR ===")
	console := &console{
		engine:          engine,
		reader:          bufio.NewReader(os.Stdin),
		defaultInterval: time.Duration(cfg.Interval),
	}
	console.loop()

	// Final save happens inside Stop when the loop was running
	engine.Stop()
	fmt.Println("Goodbye!")
	return nil
}

// console is the interactive menu over the engine's reporting surface.
type console struct {
	engine          *monitor.Engine
	reader          *bufio.Reader
	defaultInterval time.Duration
}

func (c *console) loop() {
	for {
		fmt.Println("\n1. Show current status")
		fmt.Println("2. System information")
		fmt.Println("3. Start monitoring")
		fmt.Println("4. Stop monitoring")
		fmt.Println("5. Show alerts")
		fmt.Println("6. Statistics")
		fmt.Println("7. Configure thresholds")
		fmt.Println("8. Exit")

		choice, err := c.prompt("\nChoose an action (1-8): ")
		if err != nil {
			return
		}

		switch choice {
		case "1":
			printSnapshot(c.engine.CurrentStatus())
		case "2":
			info, err := c.engine.SystemInfo()
			if err != nil {
				fmt.Printf("Failed to read system information: %v\n", err)
				continue
			}
			printSystemInfo(info)
		case "3":
			c.startMonitoring()
		case "4":
			c.engine.Stop()
			fmt.Println("Monitoring stopped")
		case "5":
			printAlerts(c.engine.RecentAlerts(20), c.engine.AlertCount())
		case "6":
			c.showStatistics()
		case "7":
			c.configureThresholds()
		case "8":
			return
		default:
			fmt.Println("Invalid choice. Try again.")
		}

		fmt.Println("\n==================================================")
	}
}

func (c *console) startMonitoring() {
	if c.engine.Running() {
		fmt.Println("Monitoring is already running")
		return
	}

	interval := c.defaultInterval
	answer, err := c.prompt(fmt.Sprintf("Monitoring interval in seconds (default %.0f): ", interval.Seconds()))
	if err == nil && answer != "" {
		seconds, convErr := strconv.Atoi(answer)
		if convErr != nil || seconds < 1 {
			fmt.Printf("Using the default interval: %.0f seconds\n", interval.Seconds())
		} else {
			interval = time.Duration(seconds) * time.Second
		}
	}

	if err := c.engine.Start(interval); err != nil {
		if errors.Is(err, monitor.ErrAlreadyRunning) {
			fmt.Println("Monitoring is already running")
			return
		}
		fmt.Printf("Failed to start monitoring: %v\n", err)
		return
	}
	fmt.Printf("Monitoring started (interval: %.0f sec)\n", interval.Seconds())
}

func (c *console) showStatistics() {
	hours := 24
	answer, err := c.prompt("Statistics over how many hours? (default 24): ")
	if err == nil && answer != "" {
		parsed, convErr := strconv.Atoi(answer)
		if convErr != nil || parsed < 1 {
			fmt.Println("Enter a valid number; using 24 hours")
		} else {
			hours = parsed
		}
	}

	stats := c.engine.Statistics(hours)
	if stats == nil {
		fmt.Println("Not enough data for statistics")
		return
	}
	printStatistics(stats)
}

func (c *console) configureThresholds() {
	thresholds := c.engine.Thresholds()
	fmt.Println("\nTHRESHOLDS")
	fmt.Println("Current values:")
	fmt.Printf("1. CPU: %.0f%%\n", thresholds.CPUPercent)
	fmt.Printf("2. Memory: %.0f%%\n", thresholds.MemoryPercent)
	fmt.Printf("3. Disk: %.0f%%\n", thresholds.DiskPercent)

	choice, err := c.prompt("\nChange which setting? (1-3 or Enter to skip): ")
	if err != nil || choice == "" {
		return
	}

	var kind metrics.ThresholdKind
	var label string
	switch choice {
	case "1":
		kind, label = metrics.ThresholdCPU, "CPU"
	case "2":
		kind, label = metrics.ThresholdMemory, "memory"
	case "3":
		kind, label = metrics.ThresholdDisk, "disk"
	default:
		return
	}

	answer, err := c.prompt(fmt.Sprintf("New value for %s: ", label))
	if err != nil {
		return
	}
	value, convErr := strconv.ParseFloat(answer, 64)
	if convErr != nil {
		fmt.Println("Enter a valid numeric value")
		return
	}

	if err := c.engine.SetThreshold(kind, value); err != nil {
		fmt.Printf("Failed to set threshold: %v\n", err)
		return
	}
	fmt.Printf("%s threshold set: %.1f%%\n", label, value)
}

// prompt prints the message and reads one trimmed line. io.EOF ends the
// console loop.
func (c *console) prompt(message string) (string, error) {
	fmt.Print(message)
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
