package system

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

type MockSystemInfo struct {
	ReturnHostInfo         *host.InfoStat
	ReturnHostInfoError    error
	ReturnCPUPercent       float64
	ReturnCPUPercentError  error
	ReturnMemoryStat       *mem.VirtualMemoryStat
	ReturnMemoryError      error
	ReturnPartitions       []disk.PartitionStat
	ReturnPartitionsError  error
	ReturnDiskUsage        map[string]*disk.UsageStat
	ReturnNetCounters      []net.IOCountersStat
	ReturnNetCountersError error
	ReturnPids             []int32
	ReturnPidsError        error
	ReturnProcesses        []ProcessSample
	ReturnProcessesError   error
}

func (s *MockSystemInfo) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return s.ReturnHostInfo, s.ReturnHostInfoError
}

func (s *MockSystemInfo) CPUPercent(ctx context.Context) (float64, error) {
	return s.ReturnCPUPercent, s.ReturnCPUPercentError
}

func (s *MockSystemInfo) MemoryStats(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return s.ReturnMemoryStat, s.ReturnMemoryError
}

func (s *MockSystemInfo) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return s.ReturnPartitions, s.ReturnPartitionsError
}

// DiskUsage fails for mount points missing from ReturnDiskUsage.
func (s *MockSystemInfo) DiskUsage(ctx context.Context, mountPoint string) (*disk.UsageStat, error) {
	usage, ok := s.ReturnDiskUsage[mountPoint]
	if !ok {
		return nil, errMockNoUsage
	}
	return usage, nil
}

func (s *MockSystemInfo) NetCounters(ctx context.Context) ([]net.IOCountersStat, error) {
	return s.ReturnNetCounters, s.ReturnNetCountersError
}

func (s *MockSystemInfo) Pids(ctx context.Context) ([]int32, error) {
	return s.ReturnPids, s.ReturnPidsError
}

func (s *MockSystemInfo) Processes(ctx context.Context) ([]ProcessSample, error) {
	return s.ReturnProcesses, s.ReturnProcessesError
}

var errMockNoUsage = errors.New("usage not available")
