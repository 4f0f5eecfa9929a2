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
	"fmt"
	"time"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

const gib = 1024 * 1024 * 1024

// printSnapshot renders a snapshot for the console.
func printSnapshot(s *metrics.Snapshot) {
	fmt.Println("\nCURRENT SYSTEM STATUS")
	fmt.Println("==================================================")

	fmt.Println("\nCPU:")
	fmt.Printf("  Load: %.1f%%\n", s.CPU.Percent)
	if s.CPU.FreqCurrentMHz > 0 {
		fmt.Printf("  Frequency: %.0f MHz\n", s.CPU.FreqCurrentMHz)
	}
	if s.CPU.Load != nil {
		fmt.Printf("  Load average: %.2f %.2f %.2f\n",
			s.CPU.Load.Load1, s.CPU.Load.Load5, s.CPU.Load.Load15)
	}

	fmt.Println("\nMEMORY:")
	fmt.Printf("  Used: %.1f%%\n", s.Memory.Percent)
	fmt.Printf("  Size: %.1f GB / %.1f GB\n",
		float64(s.Memory.Used)/gib, float64(s.Memory.Total)/gib)

	fmt.Println("\nDISKS:")
	for _, part := range s.Disk.Partitions {
		fmt.Printf("  %s: %.1f%% (%.1f/%.1f GB)\n",
			part.Device, part.Percent,
			float64(part.Used)/gib, float64(part.Total)/gib)
	}

	fmt.Println("\nTOP PROCESSES by CPU:")
	top := s.Processes.Top
	if len(top) > 5 {
		top = top[:5]
	}
	for _, proc := range top {
		name := proc.Name
		if len(name) > 20 {
			name = name[:20]
		}
		fmt.Printf("  %-20s %6.1f%% CPU %6.1f%% RAM\n",
			name, proc.CPUPercent, proc.MemoryPercent)
	}
}

// printSystemInfo renders the static host descriptor.
func printSystemInfo(info metrics.SystemInfo) {
	fmt.Println("\nSYSTEM INFORMATION")
	fmt.Println("==================================================")
	fmt.Printf("System: %s %s\n", info.Platform, info.PlatformVersion)
	fmt.Printf("Host: %s\n", info.Hostname)
	fmt.Printf("Architecture: %s\n", info.Arch)
	fmt.Printf("CPU cores: %d physical, %d logical\n", info.PhysicalCores, info.LogicalCores)
	fmt.Printf("Memory: %.1f GB\n", float64(info.TotalMemory)/gib)

	if !info.BootTime.IsZero() {
		uptime := time.Since(info.BootTime)
		fmt.Printf("Boot time: %s\n", info.BootTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Uptime: %d days, %d hours\n",
			int(uptime.Hours())/24, int(uptime.Hours())%24)
	}
}

// printStatistics renders a statistics summary.
func printStatistics(stats *metrics.Statistics) {
	fmt.Printf("\nSTATISTICS for the last %d hours\n", stats.PeriodHours)
	fmt.Println("==================================================")
	fmt.Printf("Data points: %d\n", stats.DataPoints)
	fmt.Println("\nCPU:")
	fmt.Printf("  Average: %.1f%%\n", stats.CPU.Avg)
	fmt.Printf("  Maximum: %.1f%%\n", stats.CPU.Max)
	fmt.Printf("  Minimum: %.1f%%\n", stats.CPU.Min)
	fmt.Println("\nMemory:")
	fmt.Printf("  Average: %.1f%%\n", stats.Memory.Avg)
	fmt.Printf("  Maximum: %.1f%%\n", stats.Memory.Max)
	fmt.Printf("  Minimum: %.1f%%\n", stats.Memory.Min)
}

// printAlerts renders the most recent alerts, oldest first.
func printAlerts(alerts []metrics.Alert, total int) {
	fmt.Printf("\nALERTS (%d)\n", total)
	fmt.Println("==================================================")
	if len(alerts) == 0 {
		fmt.Println("No alerts")
		return
	}
	for _, alert := range alerts {
		fmt.Printf("[%s] %s\n", alert.Timestamp.Format("15:04:05"), alert.Message)
	}
}
