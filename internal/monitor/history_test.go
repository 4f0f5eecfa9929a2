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
	"testing"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// snapshotWithCPU builds a snapshot whose identity is its CPU percent.
func snapshotWithCPU(ts time.Time, cpuPercent float64) metrics.Snapshot {
	return metrics.Snapshot{
		Timestamp: ts,
		CPU:       metrics.CPUReading{Percent: cpuPercent},
	}
}

func TestHistoryLogEviction(t *testing.T) {
	log := NewHistoryLog(3)
	base := time.Now()

	for i, cpuPercent := range []float64{10, 20, 30, 40} {
		log.Append(snapshotWithCPU(base.Add(time.Duration(i)*time.Second), cpuPercent))
	}

	all := log.All()
	if len(all) != 3 {
		t.Fatalf("Len after overflow = %d, want 3", len(all))
	}
	for i, want := range []float64{20, 30, 40} {
		if got := all[i].CPU.Percent; got != want {
			t.Errorf("all()[%d].CPU.Percent = %v, want %v", i, got, want)
		}
	}
}

func TestHistoryLogChronologicalOrder(t *testing.T) {
	log := NewHistoryLog(10)
	base := time.Now()

	for i := 0; i < 5; i++ {
		log.Append(snapshotWithCPU(base.Add(time.Duration(i)*time.Minute), float64(i)))
	}

	all := log.All()
	for i := 1; i < len(all); i++ {
		if all[i].Timestamp.Before(all[i-1].Timestamp) {
			t.Errorf("all()[%d] out of order: %v before %v", i, all[i].Timestamp, all[i-1].Timestamp)
		}
	}
}

func TestHistoryLogSince(t *testing.T) {
	log := NewHistoryLog(10)
	base := time.Now()

	log.Append(snapshotWithCPU(base.Add(-2*time.Hour), 10))
	log.Append(snapshotWithCPU(base.Add(-30*time.Minute), 20))
	log.Append(snapshotWithCPU(base, 30))

	recent := log.Since(base.Add(-1 * time.Hour))
	if len(recent) != 2 {
		t.Fatalf("Since() returned %d snapshots, want 2", len(recent))
	}
	if recent[0].CPU.Percent != 20 || recent[1].CPU.Percent != 30 {
		t.Errorf("Since() = [%v, %v], want [20, 30]", recent[0].CPU.Percent, recent[1].CPU.Percent)
	}

	// Cutoff equal to a timestamp includes that snapshot
	exact := log.Since(base)
	if len(exact) != 1 {
		t.Errorf("Since(exact timestamp) returned %d snapshots, want 1", len(exact))
	}
}

func TestHistoryLogAllReturnsCopy(t *testing.T) {
	log := NewHistoryLog(10)
	log.Append(snapshotWithCPU(time.Now(), 50))

	all := log.All()
	all[0].CPU.Percent = 99

	if got := log.All()[0].CPU.Percent; got != 50 {
		t.Errorf("internal entry mutated through All() result: got %v, want 50", got)
	}
}

func TestHistoryLogReplaceTruncates(t *testing.T) {
	log := NewHistoryLog(2)
	base := time.Now()

	log.Replace([]metrics.Snapshot{
		snapshotWithCPU(base, 1),
		snapshotWithCPU(base.Add(time.Second), 2),
		snapshotWithCPU(base.Add(2*time.Second), 3),
	})

	all := log.All()
	if len(all) != 2 {
		t.Fatalf("Len after Replace = %d, want 2", len(all))
	}
	if all[0].CPU.Percent != 2 || all[1].CPU.Percent != 3 {
		t.Errorf("Replace kept [%v, %v], want the most recent [2, 3]", all[0].CPU.Percent, all[1].CPU.Percent)
	}
}

func TestHistoryLogDefaultCapacity(t *testing.T) {
	log := NewHistoryLog(0)
	if log.Capacity() != DefaultHistorySize {
		t.Errorf("Capacity() = %d, want %d", log.Capacity(), DefaultHistorySize)
	}
}
