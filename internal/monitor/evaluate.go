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
	"fmt"

	"github.com/google/uuid"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// Evaluate checks a snapshot against the given thresholds and returns the
// resulting alerts: CPU first, then memory, then one alert per offending
// disk partition in enumeration order. Comparisons are strict greater-than;
// a metric exactly at its threshold does not alert. Pure function of its
// inputs, no de-duplication across ticks.
func Evaluate(s *metrics.Snapshot, t metrics.Thresholds) []metrics.Alert {
	var alerts []metrics.Alert

	if s.CPU.Percent > t.CPUPercent {
		alerts = append(alerts, newAlert(s, metrics.AlertCPUHigh,
			fmt.Sprintf("High CPU load: %.1f%%", s.CPU.Percent),
			s.CPU.Percent, t.CPUPercent))
	}

	if s.Memory.Percent > t.MemoryPercent {
		alerts = append(alerts, newAlert(s, metrics.AlertMemoryHigh,
			fmt.Sprintf("High memory usage: %.1f%%", s.Memory.Percent),
			s.Memory.Percent, t.MemoryPercent))
	}

	for _, part := range s.Disk.Partitions {
		if part.Percent > t.DiskPercent {
			alerts = append(alerts, newAlert(s, metrics.AlertDiskHigh,
				fmt.Sprintf("Disk %s is %.1f%% full", part.Device, part.Percent),
				part.Percent, t.DiskPercent))
		}
	}

	return alerts
}

func newAlert(s *metrics.Snapshot, kind metrics.AlertKind, message string, value, threshold float64) metrics.Alert {
	return metrics.Alert{
		ID:        uuid.New().String(),
		Timestamp: s.Timestamp,
		Kind:      kind,
		Message:   message,
		Value:     value,
		Threshold: threshold,
	}
}
