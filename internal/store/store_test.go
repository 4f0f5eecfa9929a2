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

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

func sampleSnapshot(ts time.Time, cpuPercent float64) metrics.Snapshot {
	return metrics.Snapshot{
		Timestamp: ts,
		CPU:       metrics.CPUReading{Percent: cpuPercent},
		Memory:    metrics.MemoryReading{Percent: 50},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewFileStore(path, 100)

	base := time.Now().UTC().Truncate(time.Second)
	want := []metrics.Snapshot{
		sampleSnapshot(base, 10),
		sampleSnapshot(base.Add(time.Minute), 20),
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(got))
	}
	for i := range want {
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("snapshot %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
		if got[i].CPU.Percent != want[i].CPU.Percent {
			t.Errorf("snapshot %d CPU = %v, want %v", i, got[i].CPU.Percent, want[i].CPU.Percent)
		}
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), 100)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d snapshots, want 0", len(got))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path, 100).Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestFileStoreLoadTruncatesToCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	base := time.Now().UTC()

	var snapshots []metrics.Snapshot
	for i := 0; i < 5; i++ {
		snapshots = append(snapshots, sampleSnapshot(base.Add(time.Duration(i)*time.Minute), float64(i*10)))
	}
	if err := NewFileStore(path, 0).Save(snapshots); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewFileStore(path, 3).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(got))
	}
	// The most recent snapshots survive
	if got[0].CPU.Percent != 20 || got[2].CPU.Percent != 40 {
		t.Errorf("kept CPU values [%v .. %v], want [20 .. 40]", got[0].CPU.Percent, got[2].CPU.Percent)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewFileStore(path, 100)
	base := time.Now().UTC()

	if err := s.Save([]metrics.Snapshot{sampleSnapshot(base, 10), sampleSnapshot(base, 20)}); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := s.Save([]metrics.Snapshot{sampleSnapshot(base, 99)}); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].CPU.Percent != 99 {
		t.Errorf("got %d snapshots (first CPU %v), want the overwritten single snapshot", len(got), got[0].CPU.Percent)
	}
}

func TestFileStoreSaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s := NewFileStore(path, 100)

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading store file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("nil history serialized as %q, want empty array", string(data))
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "history.json"), 100)

	if err := s.Save([]metrics.Snapshot{sampleSnapshot(time.Now(), 10)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "history.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only history.json", names)
	}
}
