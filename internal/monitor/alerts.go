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

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// DefaultAlertCapacity is the default alert retention capacity.
const DefaultAlertCapacity = 100

// AlertBuffer is a fixed-capacity alert store with oldest-first eviction.
// Safe for concurrent use.
type AlertBuffer struct {
	mu       sync.Mutex
	alerts   []metrics.Alert
	capacity int
}

// NewAlertBuffer creates an alert buffer with the given capacity.
// Values below 1 fall back to DefaultAlertCapacity.
func NewAlertBuffer(capacity int) *AlertBuffer {
	if capacity < 1 {
		capacity = DefaultAlertCapacity
	}
	return &AlertBuffer{
		alerts:   make([]metrics.Alert, 0, capacity),
		capacity: capacity,
	}
}

// Push adds alerts, evicting the oldest entries if the buffer overflows.
func (b *AlertBuffer) Push(alerts ...metrics.Alert) {
	if len(alerts) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.alerts = append(b.alerts, alerts...)
	if len(b.alerts) > b.capacity {
		b.alerts = b.alerts[len(b.alerts)-b.capacity:]
	}
}

// Recent returns the most recent n alerts in chronological order.
// n larger than the buffer returns everything retained.
func (b *AlertBuffer) Recent(n int) []metrics.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(b.alerts) {
		n = len(b.alerts)
	}

	result := make([]metrics.Alert, n)
	copy(result, b.alerts[len(b.alerts)-n:])
	return result
}

// Len returns the number of retained alerts.
func (b *AlertBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.alerts)
}
