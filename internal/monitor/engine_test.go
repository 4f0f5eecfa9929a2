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

package monitor

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/internal/collector"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

// stubProvider returns fixed readings for every domain.
type stubProvider struct {
	cpuPercent float64
}

func (p *stubProvider) CPU() (metrics.CPUReading, error) {
	return metrics.CPUReading{Percent: p.cpuPercent}, nil
}

func (p *stubProvider) Memory() (metrics.MemoryReading, error) {
	return metrics.MemoryReading{Percent: 50, Total: 16 * 1024 * 1024 * 1024}, nil
}

func (p *stubProvider) Disk() (metrics.DiskReading, error) {
	return metrics.DiskReading{
		Partitions: []metrics.PartitionUsage{{Device: "/dev/sda1", Mountpoint: "/", Percent: 40}},
	}, nil
}

func (p *stubProvider) Network() (metrics.NetworkReading, error) {
	return metrics.NetworkReading{}, nil
}

func (p *stubProvider) Processes() ([]metrics.ProcessSample, error) {
	return []metrics.ProcessSample{{PID: 1, Name: "init", CPUPercent: 0.1}}, nil
}

func (p *stubProvider) SystemInfo() (metrics.SystemInfo, error) {
	return metrics.SystemInfo{OS: "linux", Hostname: "testhost", LogicalCores: 4}, nil
}

// memStore is an in-memory Store that counts saves.
type memStore struct {
	mu        sync.Mutex
	snapshots []metrics.Snapshot
	saves     int
	loadErr   error
	saveErr   error
}

func (s *memStore) Load() ([]metrics.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.snapshots, nil
}

func (s *memStore) Save(snapshots []metrics.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snapshots = snapshots
	return nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(p *stubProvider, store *memStore) *Engine {
	logger := discardLogger()
	return NewEngine(collector.New(p, 10, logger), p, store, Options{
		HistorySize:   100,
		AlertCapacity: 10,
	}, logger)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestEngineStartStopImmediate(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(&stubProvider{cpuPercent: 10}, store)

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !engine.Running() {
		t.Error("Running() = false after Start")
	}

	// The first tick runs immediately; the loop then sleeps for an hour
	waitFor(t, func() bool { return len(engine.History()) == 1 }, "first tick")

	engine.Stop()

	if engine.Running() {
		t.Error("Running() = true after Stop")
	}
	if got := len(engine.History()); got != 1 {
		t.Errorf("history length after immediate stop = %d, want 1", got)
	}
	// Final persistence happens exactly once
	if got := store.saveCount(); got != 1 {
		t.Errorf("save count = %d, want 1", got)
	}
}

func TestEngineStartWhileRunning(t *testing.T) {
	engine := newTestEngine(&stubProvider{}, &memStore{})

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer engine.Stop()

	if err := engine.Start(time.Hour); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestEngineStopWhenStopped(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(&stubProvider{}, store)

	// Must be a no-op, not a panic or a save
	engine.Stop()
	engine.Stop()

	if got := store.saveCount(); got != 0 {
		t.Errorf("save count after no-op stops = %d, want 0", got)
	}
}

func TestEngineRestartAfterStop(t *testing.T) {
	engine := newTestEngine(&stubProvider{}, &memStore{})

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	engine.Stop()

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	engine.Stop()
}

func TestEngineAlertsOnThresholdBreach(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(&stubProvider{cpuPercent: 95}, store)

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitFor(t, func() bool { return engine.AlertCount() > 0 }, "alert from first tick")
	engine.Stop()

	alerts := engine.RecentAlerts(10)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != metrics.AlertCPUHigh {
		t.Errorf("Kind = %v, want %v", alerts[0].Kind, metrics.AlertCPUHigh)
	}
	if alerts[0].Value != 95 || alerts[0].Threshold != 80 {
		t.Errorf("alert value/threshold = %v/%v, want 95/80", alerts[0].Value, alerts[0].Threshold)
	}
}

func TestEnginePeriodicPersistence(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(&stubProvider{cpuPercent: 10}, store)

	if err := engine.Start(time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Every 10th tick persists; wait for at least one periodic save
	waitFor(t, func() bool { return store.saveCount() >= 1 }, "periodic save")
	engine.Stop()

	if got := len(engine.History()); got < 10 {
		t.Errorf("history length = %d, want >= 10 ticks", got)
	}
	if got := store.saveCount(); got < 2 {
		t.Errorf("save count = %d, want at least a periodic and a final save", got)
	}
}

func TestEngineSurvivesSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	engine := newTestEngine(&stubProvider{cpuPercent: 10}, store)

	if err := engine.Start(time.Millisecond); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitFor(t, func() bool { return store.saveCount() >= 2 }, "retried saves")
	if !engine.Running() {
		t.Error("loop stopped after save failure, want it to keep running")
	}
	engine.Stop()
}

func TestEngineLoadsPersistedHistory(t *testing.T) {
	base := time.Now()
	store := &memStore{snapshots: []metrics.Snapshot{
		snapshotWithCPU(base.Add(-2*time.Minute), 10),
		snapshotWithCPU(base.Add(-1*time.Minute), 20),
	}}

	engine := newTestEngine(&stubProvider{}, store)

	history := engine.History()
	if len(history) != 2 {
		t.Fatalf("loaded history length = %d, want 2", len(history))
	}
	if history[0].CPU.Percent != 10 || history[1].CPU.Percent != 20 {
		t.Errorf("loaded history = [%v, %v], want [10, 20]",
			history[0].CPU.Percent, history[1].CPU.Percent)
	}
}

func TestEngineLoadFailureStartsEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("corrupt store")}
	engine := newTestEngine(&stubProvider{}, store)

	if got := len(engine.History()); got != 0 {
		t.Errorf("history length after failed load = %d, want 0", got)
	}
}

func TestEngineThresholds(t *testing.T) {
	engine := newTestEngine(&stubProvider{}, &memStore{})

	defaults := engine.Thresholds()
	if defaults != metrics.DefaultThresholds() {
		t.Errorf("Thresholds() = %+v, want defaults", defaults)
	}

	if err := engine.SetThreshold(metrics.ThresholdCPU, 70); err != nil {
		t.Fatalf("SetThreshold() error = %v", err)
	}
	if got := engine.Thresholds().CPUPercent; got != 70 {
		t.Errorf("CPUPercent after set = %v, want 70", got)
	}

	if err := engine.SetThreshold("bogus", 50); err == nil {
		t.Error("SetThreshold(bogus) error = nil, want error")
	}
}

func TestEngineStatistics(t *testing.T) {
	engine := newTestEngine(&stubProvider{cpuPercent: 30}, &memStore{})

	if stats := engine.Statistics(24); stats != nil {
		t.Errorf("Statistics() with empty history = %+v, want nil", stats)
	}

	if err := engine.Start(time.Hour); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitFor(t, func() bool { return len(engine.History()) == 1 }, "first tick")
	engine.Stop()

	stats := engine.Statistics(24)
	if stats == nil {
		t.Fatal("Statistics() = nil, want statistics")
	}
	if stats.DataPoints != 1 || stats.CPU.Avg != 30 {
		t.Errorf("stats = %+v, want 1 data point with CPU avg 30", stats)
	}
}
