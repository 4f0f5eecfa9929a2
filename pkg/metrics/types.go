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

package metrics

import "time"

// Snapshot is a point-in-time reading of all monitored resource domains.
// A Snapshot is immutable once assembled; a domain that failed to collect
// is represented by its zero-value reading, never by a nil pointer.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	CPU       CPUReading     `json:"cpu"`
	Memory    MemoryReading  `json:"memory"`
	Disk      DiskReading    `json:"disk"`
	Network   NetworkReading `json:"network"`
	Processes ProcessReading `json:"processes"`
}

// CPUReading holds processor utilization data.
type CPUReading struct {
	Percent        float64      `json:"cpu_percent"`
	PerCore        []float64    `json:"cpu_per_core,omitempty"`
	FreqCurrentMHz float64      `json:"cpu_freq_current,omitempty"`
	FreqMinMHz     float64      `json:"cpu_freq_min,omitempty"`
	FreqMaxMHz     float64      `json:"cpu_freq_max,omitempty"`
	Load           *LoadAverage `json:"load_avg,omitempty"`
}

// LoadAverage is the classic 1/5/15 minute load triple (Unix only).
type LoadAverage struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// MemoryReading holds virtual memory and swap usage in bytes.
type MemoryReading struct {
	Total       uint64  `json:"memory_total"`
	Available   uint64  `json:"memory_available"`
	Used        uint64  `json:"memory_used"`
	Free        uint64  `json:"memory_free"`
	Percent     float64 `json:"memory_percent"`
	SwapTotal   uint64  `json:"swap_total"`
	SwapUsed    uint64  `json:"swap_used"`
	SwapFree    uint64  `json:"swap_free"`
	SwapPercent float64 `json:"swap_percent"`
}

// PartitionUsage holds space usage for a single mounted partition.
type PartitionUsage struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	Filesystem string  `json:"file_system"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
}

// DiskIOTotals holds I/O counters aggregated across all disk devices.
type DiskIOTotals struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadTime   uint64 `json:"read_time"`
	WriteTime  uint64 `json:"write_time"`
}

// DiskReading holds per-partition usage plus optional aggregate I/O counters.
type DiskReading struct {
	Partitions []PartitionUsage `json:"disks"`
	IO         *DiskIOTotals    `json:"disk_io,omitempty"`
}

// InterfaceAddr is one address bound to a network interface.
type InterfaceAddr struct {
	Family    string `json:"family"`
	Address   string `json:"address"`
	Netmask   string `json:"netmask,omitempty"`
	Broadcast string `json:"broadcast,omitempty"`
}

// InterfaceInfo describes a network interface and its addresses.
type InterfaceInfo struct {
	Name      string          `json:"name"`
	Up        bool            `json:"is_up"`
	Addresses []InterfaceAddr `json:"addresses"`
}

// NetIOTotals holds network I/O counters aggregated across interfaces.
type NetIOTotals struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrIn       uint64 `json:"errin"`
	ErrOut      uint64 `json:"errout"`
	DropIn      uint64 `json:"dropin"`
	DropOut     uint64 `json:"dropout"`
}

// NetworkReading holds interface descriptors plus optional aggregate counters.
type NetworkReading struct {
	Interfaces []InterfaceInfo `json:"interfaces"`
	IO         *NetIOTotals    `json:"network_io,omitempty"`
}

// ProcessSample is one entry in the top-processes list.
type ProcessSample struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Status        string  `json:"status"`
}

// ProcessReading holds the total process count and the top consumers,
// ordered descending by CPU percent.
type ProcessReading struct {
	Total int             `json:"total_processes"`
	Top   []ProcessSample `json:"top_processes"`
}

// ThresholdKind identifies one of the configurable alert thresholds.
type ThresholdKind string

// Supported threshold kinds.
const (
	ThresholdCPU    ThresholdKind = "cpu_percent"
	ThresholdMemory ThresholdKind = "memory_percent"
	ThresholdDisk   ThresholdKind = "disk_percent"
)

// Thresholds holds the alerting limits, in percent. All three values are
// always defined; zero is a legal (if noisy) threshold.
type Thresholds struct {
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent" yaml:"disk_percent"`
}

// DefaultThresholds returns the stock alerting limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CPUPercent:    80,
		MemoryPercent: 85,
		DiskPercent:   90,
	}
}

// AlertKind identifies the metric that triggered an alert.
type AlertKind string

// Supported alert kinds.
const (
	AlertCPUHigh    AlertKind = "cpu_high"
	AlertMemoryHigh AlertKind = "memory_high"
	AlertDiskHigh   AlertKind = "disk_high"
)

// Alert records a snapshot metric that exceeded its threshold.
// Immutable once created.
type Alert struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      AlertKind `json:"type"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
}

// MetricSummary holds the arithmetic mean, maximum and minimum of one metric.
type MetricSummary struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// Statistics summarizes CPU and memory usage over a trailing time window.
// Derived data, never persisted.
type Statistics struct {
	PeriodHours int           `json:"period_hours"`
	DataPoints  int           `json:"data_points"`
	CPU         MetricSummary `json:"cpu"`
	Memory      MetricSummary `json:"memory"`
}

// SystemInfo is a static host descriptor.
type SystemInfo struct {
	OS              string    `json:"system"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"release"`
	Hostname        string    `json:"node"`
	Arch            string    `json:"machine"`
	PhysicalCores   int       `json:"cpu_count"`
	LogicalCores    int       `json:"cpu_count_logical"`
	TotalMemory     uint64    `json:"memory_total"`
	BootTime        time.Time `json:"boot_time"`
}
