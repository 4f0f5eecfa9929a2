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

// Package monitor implements the monitoring engine: bounded history,
// threshold alerting, windowed statistics and the background sampling loop.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phuonguno98/unomon/internal/collector"
	"github.com/phuonguno98/unomon/internal/provider"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultInterval is the default delay between monitoring ticks.
const DefaultInterval = 60 * time.Second

// saveEveryTicks is how often the history is persisted during monitoring.
const saveEveryTicks = 10

// ErrAlreadyRunning is returned by Start when the loop is active.
var ErrAlreadyRunning = errors.New("monitoring is already running")

// Store persists the snapshot history across restarts.
type Store interface {
	// Load returns the persisted snapshots, most recent last. A missing
	// store yields an empty slice, not an error.
	Load() ([]metrics.Snapshot, error)
	// Save overwrites the store with the given snapshots.
	Save(snapshots []metrics.Snapshot) error
}

// Options configures a new Engine. Zero values select the defaults.
type Options struct {
	HistorySize   int
	AlertCapacity int
	Thresholds    metrics.Thresholds
}

// Engine owns the monitoring state: snapshot history, alert buffer and
// thresholds. One background goroutine mutates the state while the
// interactive and HTTP surfaces read it; every shared structure carries its
// own lock and no code path holds two locks at once.
type Engine struct {
	collector *collector.Collector
	provider  provider.Provider
	store     Store
	history   *HistoryLog
	alerts    *AlertBuffer
	logger    *slog.Logger

	mu         sync.Mutex // guards thresholds and run state
	thresholds metrics.Thresholds
	running    bool
	stopping   bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewEngine creates an engine and loads the persisted history. A missing or
// corrupt store is downgraded to a warning and an empty history.
func NewEngine(c *collector.Collector, p provider.Provider, store Store, opts Options, logger *slog.Logger) *Engine {
	thresholds := opts.Thresholds
	if thresholds == (metrics.Thresholds{}) {
		thresholds = metrics.DefaultThresholds()
	}

	e := &Engine{
		collector:  c,
		provider:   p,
		store:      store,
		history:    NewHistoryLog(opts.HistorySize),
		alerts:     NewAlertBuffer(opts.AlertCapacity),
		logger:     logger,
		thresholds: thresholds,
	}

	loaded, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load history, starting empty", "error", err)
	} else if len(loaded) > 0 {
		e.history.Replace(loaded)
		logger.Info("History loaded", "snapshots", e.history.Len())
	}

	return e
}

// Start launches the background monitoring loop. Non-positive intervals
// fall back to DefaultInterval. Returns ErrAlreadyRunning when the loop is
// active; the engine state is untouched in that case.
func (e *Engine) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running || e.stopping {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.running = true
	e.cancel = cancel
	e.done = done

	go e.run(ctx, interval, done)

	e.logger.Info("Monitoring started", "interval", interval)
	return nil
}

// Stop signals the loop to exit, waits for the in-flight tick, and lets the
// loop perform its final save. Calling Stop while stopped is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running || e.stopping {
		e.mu.Unlock()
		return
	}
	e.stopping = true
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	cancel()
	<-done

	e.mu.Lock()
	e.stopping = false
	e.cancel = nil
	e.done = nil
	e.mu.Unlock()

	e.logger.Info("Monitoring stopped")
}

// Running reports whether the background loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// run executes ticks until cancelled. The sleep between ticks is a select
// on the ticker and the context, so a stop request never waits out the
// full interval.
func (e *Engine) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := 0
	for {
		e.tick(&tick)

		select {
		case <-ctx.Done():
			if err := e.saveHistory(); err != nil {
				e.logger.Warn("Failed to persist history on shutdown", "error", err)
			}
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			return
		case <-ticker.C:
		}
	}
}

// tick runs one collect/evaluate/persist cycle. Nothing in a tick is fatal:
// collection degrades per domain and a failed save is logged and retried on
// a later tick.
func (e *Engine) tick(count *int) {
	snapshot := e.collector.Collect()
	e.history.Append(*snapshot)

	alerts := Evaluate(snapshot, e.Thresholds())
	if len(alerts) > 0 {
		e.alerts.Push(alerts...)
		for _, a := range alerts {
			e.logger.Warn("Threshold exceeded", "type", string(a.Kind), "message", a.Message)
		}
	}

	*count++
	if *count%saveEveryTicks == 0 {
		if err := e.saveHistory(); err != nil {
			e.logger.Warn("Failed to persist history", "error", err)
		}
	}
}

func (e *Engine) saveHistory() error {
	return e.store.Save(e.history.All())
}

// CurrentStatus collects a fresh snapshot on demand, independent of the
// background loop.
func (e *Engine) CurrentStatus() *metrics.Snapshot {
	return e.collector.Collect()
}

// SystemInfo returns the static host descriptor.
func (e *Engine) SystemInfo() (metrics.SystemInfo, error) {
	return e.provider.SystemInfo()
}

// History returns all retained snapshots in chronological order.
func (e *Engine) History() []metrics.Snapshot {
	return e.history.All()
}

// HistorySince returns retained snapshots newer than the trailing window.
func (e *Engine) HistorySince(hours int) []metrics.Snapshot {
	return e.history.Since(time.Now().Add(-time.Duration(hours) * time.Hour))
}

// RecentAlerts returns the most recent n alerts in chronological order.
func (e *Engine) RecentAlerts(n int) []metrics.Alert {
	return e.alerts.Recent(n)
}

// AlertCount returns the number of retained alerts.
func (e *Engine) AlertCount() int {
	return e.alerts.Len()
}

// Statistics summarizes CPU and memory usage over the trailing window of
// whole hours. Returns nil when the window holds no snapshots.
func (e *Engine) Statistics(hours int) *metrics.Statistics {
	return ComputeStatistics(e.history, hours)
}

// Thresholds returns the current alerting limits.
func (e *Engine) Thresholds() metrics.Thresholds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.thresholds
}

// SetThreshold updates one alerting limit. The new value takes effect on
// the next evaluation.
func (e *Engine) SetThreshold(kind metrics.ThresholdKind, value float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case metrics.ThresholdCPU:
		e.thresholds.CPUPercent = value
	case metrics.ThresholdMemory:
		e.thresholds.MemoryPercent = value
	case metrics.ThresholdDisk:
		e.thresholds.DiskPercent = value
	default:
		return fmt.Errorf("unknown threshold kind: %s", kind)
	}

	e.logger.Info("Threshold updated", "kind", string(kind), "value", value)
	return nil
}
