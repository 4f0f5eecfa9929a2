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
	"sync"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultHistorySize is the default snapshot retention capacity.
const DefaultHistorySize = 1000

// HistoryLog is a fixed-capacity, insertion-ordered snapshot store.
// When full, the oldest entry is silently evicted. Safe for concurrent use.
type HistoryLog struct {
	mu       sync.Mutex
	entries  []metrics.Snapshot
	capacity int
}

// NewHistoryLog creates a history log with the given capacity.
// Values below 1 fall back to DefaultHistorySize.
func NewHistoryLog(capacity int) *HistoryLog {
	if capacity < 1 {
		capacity = DefaultHistorySize
	}
	return &HistoryLog{
		entries:  make([]metrics.Snapshot, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a snapshot, evicting the oldest entry if the log is full.
func (h *HistoryLog) Append(s metrics.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, s)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// All returns every retained snapshot in chronological order.
func (h *HistoryLog) All() []metrics.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]metrics.Snapshot, len(h.entries))
	copy(result, h.entries)
	return result
}

// Since returns snapshots with a timestamp at or after cutoff,
// in chronological order.
func (h *HistoryLog) Since(cutoff time.Time) []metrics.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]metrics.Snapshot, 0)
	for _, entry := range h.entries {
		if !entry.Timestamp.Before(cutoff) {
			result = append(result, entry)
		}
	}
	return result
}

// Len returns the number of retained snapshots.
func (h *HistoryLog) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Capacity returns the configured retention capacity.
func (h *HistoryLog) Capacity() int {
	return h.capacity
}

// Replace swaps the log contents with snapshots, keeping only the most
// recent entries when the input exceeds capacity. Used at startup load.
func (h *HistoryLog) Replace(snapshots []metrics.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(snapshots) > h.capacity {
		snapshots = snapshots[len(snapshots)-h.capacity:]
	}
	h.entries = make([]metrics.Snapshot, len(snapshots))
	copy(h.entries, snapshots)
}
