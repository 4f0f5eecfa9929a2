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
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// ComputeStatistics summarizes CPU and memory usage over the trailing
// window of whole hours. Returns nil when no snapshot falls inside the
// window. A zero percent value counts as "no reading" and is skipped; if
// every value of a metric is skipped its summary stays at zero.
func ComputeStatistics(history *HistoryLog, hours int) *metrics.Statistics {
	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	recent := history.Since(cutoff)
	if len(recent) == 0 {
		return nil
	}

	cpuValues := make([]float64, 0, len(recent))
	memValues := make([]float64, 0, len(recent))
	for _, s := range recent {
		if s.CPU.Percent != 0 {
			cpuValues = append(cpuValues, s.CPU.Percent)
		}
		if s.Memory.Percent != 0 {
			memValues = append(memValues, s.Memory.Percent)
		}
	}

	return &metrics.Statistics{
		PeriodHours: hours,
		DataPoints:  len(recent),
		CPU:         summarize(cpuValues),
		Memory:      summarize(memValues),
	}
}

// summarize computes avg/max/min of values; an empty input yields zeros.
func summarize(values []float64) metrics.MetricSummary {
	if len(values) == 0 {
		return metrics.MetricSummary{}
	}

	sum := values[0]
	maxV := values[0]
	minV := values[0]
	for _, v := range values[1:] {
		sum += v
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}

	return metrics.MetricSummary{
		Avg: sum / float64(len(values)),
		Max: maxV,
		Min: minV,
	}
}
