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

// Package provider abstracts the platform metrics source. The production
// implementation reads from gopsutil; tests substitute their own Provider.
package provider

import "github.com/phuonguno98/unomon/pkg/metrics"

// Provider returns current readings for each monitored resource domain.
// Each query fails independently; a failed domain never prevents the
// others from being collected.
type Provider interface {
	CPU() (metrics.CPUReading, error)
	Memory() (metrics.MemoryReading, error)
	Disk() (metrics.DiskReading, error)
	Network() (metrics.NetworkReading, error)
	// Processes returns one sample per live process, unsorted. Processes
	// that disappear mid-enumeration are silently skipped.
	Processes() ([]metrics.ProcessSample, error)
	SystemInfo() (metrics.SystemInfo, error)
}
