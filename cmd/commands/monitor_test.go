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

package commands

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/phuonguno98/unomon/internal/collector"
	"github.com/phuonguno98/unomon/internal/monitor"
	"github.com/phuonguno98/unomon/pkg/metrics"
)

type consoleProvider struct{}

func (consoleProvider) CPU() (metrics.CPUReading, error) {
	return metrics.CPUReading{Percent: 5}, nil
}

func (consoleProvider) Memory() (metrics.MemoryReading, error) {
	return metrics.MemoryReading{Percent: 40}, nil
}

func (consoleProvider) Disk() (metrics.DiskReading, error) {
	return metrics.DiskReading{}, nil
}

func (consoleProvider) Network() (metrics.NetworkReading, error) {
	return metrics.NetworkReading{}, nil
}

func (consoleProvider) Processes() ([]metrics.ProcessSample, error) {
	return nil, nil
}

func (consoleProvider) SystemInfo() (metrics.SystemInfo, error) {
	return metrics.SystemInfo{Hostname: "testhost"}, nil
}

type consoleStore struct{}

func (consoleStore) Load() ([]metrics.Snapshot, error) { return nil, nil }
func (consoleStore) Save([]metrics.Snapshot) error     { return nil }

func newTestConsole(script string) *console {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := consoleProvider{}
	engine := monitor.NewEngine(collector.New(p, 10, logger), p, consoleStore{}, monitor.Options{
		HistorySize:   10,
		AlertCapacity: 10,
	}, logger)
	return &console{
		engine:          engine,
		reader:          bufio.NewReader(strings.NewReader(script)),
		defaultInterval: time.Hour,
	}
}

func TestConsoleExit(t *testing.T) {
	c := newTestConsole("8\n")
	c.loop()

	if c.engine.Running() {
		t.Error("engine running after exit")
	}
}

func TestConsoleEOFEndsLoop(t *testing.T) {
	c := newTestConsole("")
	c.loop()
}

func TestConsoleStartAndStop(t *testing.T) {
	// Start with the default interval (empty answer), then stop, then exit
	c := newTestConsole("3\n\n4\n8\n")
	c.loop()

	if c.engine.Running() {
		t.Error("engine running after menu stop")
	}
	if got := len(c.engine.History()); got != 1 {
		t.Errorf("history length = %d, want 1 immediate tick", got)
	}
}

func TestConsoleStartRejectsBadInterval(t *testing.T) {
	// A non-numeric interval answer falls back to the default
	c := newTestConsole("3\nsoon\n4\n8\n")
	c.loop()

	if c.engine.Running() {
		t.Error("engine running after menu stop")
	}
}

func TestConsoleConfigureThreshold(t *testing.T) {
	c := newTestConsole("7\n1\n70\n8\n")
	c.loop()

	if got := c.engine.Thresholds().CPUPercent; got != 70 {
		t.Errorf("CPU threshold = %v, want 70", got)
	}
}

func TestConsoleConfigureThresholdSkipped(t *testing.T) {
	c := newTestConsole("7\n\n8\n")
	c.loop()

	if got := c.engine.Thresholds(); got != metrics.DefaultThresholds() {
		t.Errorf("thresholds = %+v, want defaults unchanged", got)
	}
}

func TestConsoleInvalidChoice(t *testing.T) {
	c := newTestConsole("42\n8\n")
	c.loop()
}
