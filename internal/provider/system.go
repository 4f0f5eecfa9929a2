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

package provider

import (
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/phuonguno98/unomon/pkg/metrics"
)

// Dependency injection points for testing
var (
	cpuPercent     = cpu.Percent
	cpuInfo        = cpu.Info
	cpuCounts      = cpu.Counts
	loadAvg        = load.Avg
	virtualMemory  = mem.VirtualMemory
	swapMemory     = mem.SwapMemory
	diskPartitions = disk.Partitions
	diskUsage      = disk.Usage
	diskIOCounters = disk.IOCounters
	netInterfaces  = gopsnet.Interfaces
	netIOCounters  = gopsnet.IOCounters
	hostInfo       = host.Info
	processList    = process.Processes
)

// DefaultSampleDuration is how long the CPU percent query observes the
// system before computing utilization.
const DefaultSampleDuration = 1 * time.Second

// SystemProvider reads metrics from the local host via gopsutil.
type SystemProvider struct {
	sampleDuration time.Duration
}

// NewSystemProvider creates a provider that samples CPU utilization over
// sampleDuration. Zero or negative values fall back to DefaultSampleDuration.
func NewSystemProvider(sampleDuration time.Duration) *SystemProvider {
	if sampleDuration <= 0 {
		sampleDuration = DefaultSampleDuration
	}
	return &SystemProvider{sampleDuration: sampleDuration}
}

// CPU returns overall and per-core utilization, frequency stats and the
// load average where the platform supports them.
func (p *SystemProvider) CPU() (metrics.CPUReading, error) {
	perCore, err := cpuPercent(p.sampleDuration, true)
	if err != nil {
		return metrics.CPUReading{}, fmt.Errorf("failed to get CPU percent: %w", err)
	}
	if len(perCore) == 0 {
		return metrics.CPUReading{}, fmt.Errorf("no CPU utilization data available")
	}

	var sum float64
	for _, v := range perCore {
		sum += v
	}

	reading := metrics.CPUReading{
		Percent: sum / float64(len(perCore)),
		PerCore: perCore,
	}

	// Frequency and load average are best effort
	if infos, err := cpuInfo(); err == nil && len(infos) > 0 {
		reading.FreqCurrentMHz = infos[0].Mhz
	}
	if runtime.GOOS != "windows" {
		if avg, err := loadAvg(); err == nil && avg != nil {
			reading.Load = &metrics.LoadAverage{
				Load1:  avg.Load1,
				Load5:  avg.Load5,
				Load15: avg.Load15,
			}
		}
	}

	return reading, nil
}

// Memory returns virtual memory and swap usage.
func (p *SystemProvider) Memory() (metrics.MemoryReading, error) {
	vm, err := virtualMemory()
	if err != nil {
		return metrics.MemoryReading{}, fmt.Errorf("failed to get memory stats: %w", err)
	}

	reading := metrics.MemoryReading{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Free:      vm.Free,
		Percent:   vm.UsedPercent,
	}

	// Swap failure does not invalidate the RAM reading
	if swap, err := swapMemory(); err == nil && swap != nil {
		reading.SwapTotal = swap.Total
		reading.SwapUsed = swap.Used
		reading.SwapFree = swap.Free
		reading.SwapPercent = swap.UsedPercent
	}

	return reading, nil
}

// Disk returns per-partition usage and aggregate I/O counters. Partitions
// whose usage cannot be read (typically permission errors on pseudo
// filesystems) are skipped.
func (p *SystemProvider) Disk() (metrics.DiskReading, error) {
	partitions, err := diskPartitions(false)
	if err != nil {
		return metrics.DiskReading{}, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	reading := metrics.DiskReading{
		Partitions: make([]metrics.PartitionUsage, 0, len(partitions)),
	}

	for _, part := range partitions {
		usage, err := diskUsage(part.Mountpoint)
		if err != nil || usage == nil {
			continue
		}
		reading.Partitions = append(reading.Partitions, metrics.PartitionUsage{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Filesystem: part.Fstype,
			Total:      usage.Total,
			Used:       usage.Used,
			Free:       usage.Free,
			Percent:    usage.UsedPercent,
		})
	}

	if counters, err := diskIOCounters(); err == nil && len(counters) > 0 {
		totals := &metrics.DiskIOTotals{}
		for name := range counters {
			c := counters[name]
			totals.ReadCount += c.ReadCount
			totals.WriteCount += c.WriteCount
			totals.ReadBytes += c.ReadBytes
			totals.WriteBytes += c.WriteBytes
			totals.ReadTime += c.ReadTime
			totals.WriteTime += c.WriteTime
		}
		reading.IO = totals
	}

	return reading, nil
}

// Network returns interface descriptors and aggregate I/O counters.
func (p *SystemProvider) Network() (metrics.NetworkReading, error) {
	interfaces, err := netInterfaces()
	if err != nil {
		return metrics.NetworkReading{}, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	reading := metrics.NetworkReading{
		Interfaces: make([]metrics.InterfaceInfo, 0, len(interfaces)),
	}

	for _, iface := range interfaces {
		info := metrics.InterfaceInfo{
			Name:      iface.Name,
			Up:        hasFlag(iface.Flags, "up"),
			Addresses: make([]metrics.InterfaceAddr, 0, len(iface.Addrs)),
		}
		for _, addr := range iface.Addrs {
			info.Addresses = append(info.Addresses, parseInterfaceAddr(addr.Addr))
		}
		reading.Interfaces = append(reading.Interfaces, info)
	}

	if counters, err := netIOCounters(false); err == nil && len(counters) > 0 {
		c := counters[0]
		reading.IO = &metrics.NetIOTotals{
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
			ErrIn:       c.Errin,
			ErrOut:      c.Errout,
			DropIn:      c.Dropin,
			DropOut:     c.Dropout,
		}
	}

	return reading, nil
}

// Processes returns one sample per live process. Processes that exit
// between enumeration and read are skipped.
func (p *SystemProvider) Processes() ([]metrics.ProcessSample, error) {
	procs, err := processList()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	samples := make([]metrics.ProcessSample, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.Name()
		if err != nil {
			continue
		}
		sample := metrics.ProcessSample{
			PID:  proc.Pid,
			Name: name,
		}
		if cpuPct, err := proc.CPUPercent(); err == nil {
			sample.CPUPercent = cpuPct
		}
		if memPct, err := proc.MemoryPercent(); err == nil {
			sample.MemoryPercent = float64(memPct)
		}
		if status, err := proc.Status(); err == nil {
			sample.Status = strings.Join(status, ",")
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// SystemInfo returns the static host descriptor.
func (p *SystemProvider) SystemInfo() (metrics.SystemInfo, error) {
	info, err := hostInfo()
	if err != nil {
		return metrics.SystemInfo{}, fmt.Errorf("failed to get host info: %w", err)
	}

	si := metrics.SystemInfo{
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Hostname:        info.Hostname,
		Arch:            info.KernelArch,
		BootTime:        time.Unix(int64(info.BootTime), 0),
	}

	if physical, err := cpuCounts(false); err == nil {
		si.PhysicalCores = physical
	}
	if logical, err := cpuCounts(true); err == nil {
		si.LogicalCores = logical
	}
	if vm, err := virtualMemory(); err == nil && vm != nil {
		si.TotalMemory = vm.Total
	}

	return si, nil
}

// hasFlag reports whether an interface flag list contains the named flag.
func hasFlag(flags []string, name string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// parseInterfaceAddr converts a CIDR or plain address string into an
// InterfaceAddr. The netmask is derived from the prefix length; the
// broadcast address is computed for IPv4 networks only.
func parseInterfaceAddr(s string) metrics.InterfaceAddr {
	addr := metrics.InterfaceAddr{Address: s}

	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		if parsed := net.ParseIP(s); parsed != nil && parsed.To4() == nil {
			addr.Family = "AF_INET6"
		} else {
			addr.Family = "AF_INET"
		}
		return addr
	}

	addr.Address = ip.String()
	if ip.To4() != nil {
		addr.Family = "AF_INET"
		addr.Netmask = net.IP(ipNet.Mask).String()
		if bcast := broadcastAddr(ip.To4(), ipNet.Mask); bcast != nil {
			addr.Broadcast = bcast.String()
		}
	} else {
		addr.Family = "AF_INET6"
		ones, _ := ipNet.Mask.Size()
		addr.Netmask = fmt.Sprintf("/%d", ones)
	}

	return addr
}

// broadcastAddr computes the IPv4 broadcast address for the given network.
func broadcastAddr(ip net.IP, mask net.IPMask) net.IP {
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(ip) != net.IPv4len || len(mask) != net.IPv4len {
		return nil
	}
	bcast := make(net.IP, net.IPv4len)
	for i := range bcast {
		bcast[i] = ip[i] | ^mask[i]
	}
	return bcast
}
