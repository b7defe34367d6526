package system

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/openrport/sysdash/share/logger"
)

// ProcessSample is one row of the process table as read from the OS.
type ProcessSample struct {
	PID      int32
	Name     string
	CPUUsage float64
	RSS      uint64
}

type SysInfo interface {
	HostInfo(ctx context.Context) (*host.InfoStat, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemoryStats(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	DiskUsage(ctx context.Context, mountPoint string) (*disk.UsageStat, error)
	NetCounters(ctx context.Context) ([]net.IOCountersStat, error)
	Pids(ctx context.Context) ([]int32, error)
	Processes(ctx context.Context) ([]ProcessSample, error)
}

type realSystemInfo struct {
	cpuSampleInterval time.Duration
	logger            *logger.Logger
}

// NewSystemInfo returns a SysInfo backed by gopsutil. A zero interval makes
// CPUPercent compare against the previous call instead of blocking.
func NewSystemInfo(cpuSampleInterval time.Duration, l *logger.Logger) SysInfo {
	return &realSystemInfo{
		cpuSampleInterval: cpuSampleInterval,
		logger:            l,
	}
}

func (s *realSystemInfo) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

func (s *realSystemInfo) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, s.cpuSampleInterval, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("cpu percent not available")
	}
	return percents[0], nil
}

func (s *realSystemInfo) MemoryStats(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (s *realSystemInfo) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (s *realSystemInfo) DiskUsage(ctx context.Context, mountPoint string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, mountPoint)
}

func (s *realSystemInfo) NetCounters(ctx context.Context) ([]net.IOCountersStat, error) {
	return net.IOCountersWithContext(ctx, true)
}

func (s *realSystemInfo) Pids(ctx context.Context) ([]int32, error) {
	return process.PidsWithContext(ctx)
}

// Processes skips any process that exits or denies access while it is read.
func (s *realSystemInfo) Processes(ctx context.Context) ([]ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]ProcessSample, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			s.logger.Debugf("skipping process %d: %v", p.Pid, err)
			continue
		}
		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			s.logger.Debugf("skipping process %d: %v", p.Pid, err)
			continue
		}
		memInfo, err := p.MemoryInfoWithContext(ctx)
		if err != nil {
			s.logger.Debugf("skipping process %d: %v", p.Pid, err)
			continue
		}
		samples = append(samples, ProcessSample{
			PID:      p.Pid,
			Name:     name,
			CPUUsage: cpuPercent,
			RSS:      memInfo.RSS,
		})
	}
	return samples, nil
}
