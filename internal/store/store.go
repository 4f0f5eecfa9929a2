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

// Package store persists the snapshot history as a JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// FileStore saves the history as a pretty-printed JSON array. Writes are
// atomic: the data goes to a temp file first and is renamed into place, so
// a crash mid-save never leaves a truncated store behind.
type FileStore struct {
	path     string
	capacity int
}

// NewFileStore creates a store at path. Load results are truncated to the
// most recent capacity snapshots; capacity < 1 disables truncation.
func NewFileStore(path string, capacity int) *FileStore {
	return &FileStore{path: path, capacity: capacity}
}

// Path returns the store's file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted snapshots. A missing file is an empty history;
// a file that cannot be read or parsed is an error the caller downgrades
// to a warning.
func (s *FileStore) Load() ([]metrics.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", s.path, err)
	}

	var snapshots []metrics.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", s.path, err)
	}

	if s.capacity > 0 && len(snapshots) > s.capacity {
		snapshots = snapshots[len(snapshots)-s.capacity:]
	}

	return snapshots, nil
}

// Save overwrites the store with the given snapshots.
func (s *FileStore) Save(snapshots []metrics.Snapshot) error {
	if snapshots == nil {
		snapshots = []metrics.Snapshot{}
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any failure path.
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	success = true
	return nil
}
