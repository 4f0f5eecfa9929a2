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

// Package collector assembles full system snapshots from a metrics provider.
package collector

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phuonguno98/unomon/internal/provider"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultTopProcesses is how many processes a snapshot keeps, ordered by
// CPU usage.
const DefaultTopProcesses = 10

// Collector assembles timestamped snapshots. Each of the five resource
// domains is queried independently; a failing domain yields its zero-value
// reading and a logged warning while the others still populate.
type Collector struct {
	provider     provider.Provider
	topProcesses int
	logger       *slog.Logger
}

// New creates a snapshot collector. topProcesses limits the retained
// process list; values below 1 fall back to DefaultTopProcesses.
func New(p provider.Provider, topProcesses int, logger *slog.Logger) *Collector {
	if topProcesses < 1 {
		topProcesses = DefaultTopProcesses
	}
	return &Collector{
		provider:     p,
		topProcesses: topProcesses,
		logger:       logger,
	}
}

// Collect gathers one snapshot. It never fails as a whole: domain queries
// run in parallel and each failure is downgraded to a warning.
func (c *Collector) Collect() *metrics.Snapshot {
	snapshot := &metrics.Snapshot{
		Timestamp: time.Now(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex // Protects snapshot updates
	)

	wg.Add(5)

	go func() {
		defer wg.Done()
		reading, err := c.provider.CPU()
		if err != nil {
			c.logger.Warn("Failed to collect CPU metrics", "error", err)
			return
		}
		mu.Lock()
		snapshot.CPU = reading
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		reading, err := c.provider.Memory()
		if err != nil {
			c.logger.Warn("Failed to collect memory metrics", "error", err)
			return
		}
		mu.Lock()
		snapshot.Memory = reading
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		reading, err := c.provider.Disk()
		if err != nil {
			c.logger.Warn("Failed to collect disk metrics", "error", err)
			return
		}
		mu.Lock()
		snapshot.Disk = reading
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		reading, err := c.provider.Network()
		if err != nil {
			c.logger.Warn("Failed to collect network metrics", "error", err)
			return
		}
		mu.Lock()
		snapshot.Network = reading
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		samples, err := c.provider.Processes()
		if err != nil {
			c.logger.Warn("Failed to collect process metrics", "error", err)
			return
		}
		reading := buildProcessReading(samples, c.topProcesses)
		mu.Lock()
		snapshot.Processes = reading
		mu.Unlock()
	}()

	wg.Wait()

	return snapshot
}

// buildProcessReading sorts samples descending by CPU percent and keeps the
// top limit entries. Total always reflects the full surviving list.
func buildProcessReading(samples []metrics.ProcessSample, limit int) metrics.ProcessReading {
	sorted := make([]metrics.ProcessSample, len(samples))
	copy(sorted, samples)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CPUPercent > sorted[j].CPUPercent
	})

	top := sorted
	if len(top) > limit {
		top = top[:limit]
	}

	return metrics.ProcessReading{
		Total: len(samples),
		Top:   top,
	}
}
