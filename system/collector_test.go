package system

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

var testLog = logger.NewLogger("collector", logger.LogOutput{File: os.Stdout}, logger.LogLevelDebug)

type inspectorMock struct {
	calls   int
	details models.NetworkInterfaceDetails
}

func (i *inspectorMock) Inspect(ctx context.Context) models.NetworkInterfaceDetails {
	i.calls++
	return i.details
}

func newHealthySysInfo() *MockSystemInfo {
	return &MockSystemInfo{
		ReturnHostInfo: &host.InfoStat{
			Hostname:      "build-mac",
			Uptime:        3600,
			Platform:      "darwin",
			KernelVersion: "23.1.0",
		},
		ReturnCPUPercent: 12.5,
		ReturnMemoryStat: &mem.VirtualMemoryStat{Total: 16 << 30, Available: 8 << 30},
		ReturnPartitions: []disk.PartitionStat{
			{Device: "/dev/disk1s1", Mountpoint: "/"},
			{Device: "/dev/disk2s1", Mountpoint: "/Volumes/Backup"},
		},
		ReturnDiskUsage: map[string]*disk.UsageStat{
			"/":               {Total: 400, Free: 300},
			"/Volumes/Backup": {Total: 0, Free: 0},
		},
		ReturnNetCounters: []net.IOCountersStat{
			{Name: "en0", BytesRecv: 1000, BytesSent: 500, PacketsRecv: 10, PacketsSent: 5, Errin: 1, Errout: 2},
		},
		ReturnPids: []int32{1, 2, 3},
	}
}

func TestCollectSnapshot(t *testing.T) {
	sysInfo := newHealthySysInfo()
	inspector := &inspectorMock{details: models.NewUnavailableNetworkDetails()}
	c := NewCollector(sysInfo, inspector, testLog)

	snapshot, err := c.CollectSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12.5, snapshot.CPUUsage)
	assert.Equal(t, uint64(8<<30), snapshot.MemoryUsage)
	assert.Equal(t, uint64(16<<30), snapshot.TotalMemory)
	assert.InDelta(t, 50, snapshot.MemoryPercent, 1e-9)
	assert.Equal(t, []models.DiskUsage{
		{Name: "/dev/disk1s1", MountPoint: "/", TotalSpace: 400, AvailableSpace: 300, UsedSpace: 100, UsagePercent: 25},
		{Name: "/dev/disk2s1", MountPoint: "/Volumes/Backup"},
	}, snapshot.DiskUsage)
	assert.Equal(t, []models.NetworkCounters{
		{InterfaceName: "en0", BytesReceived: 1000, BytesTransmitted: 500, PacketsReceived: 10, PacketsTransmitted: 5, ErrorsReceived: 1, ErrorsTransmitted: 2},
	}, snapshot.NetworkInterfaces)
	assert.Equal(t, models.NewUnavailableNetworkDetails(), snapshot.NetworkDetails)
	assert.Equal(t, 1, inspector.calls)
	assert.Equal(t, uint64(3), snapshot.ProcessCount)
	assert.Equal(t, uint64(3600), snapshot.Uptime)
	assert.Equal(t, "Darwin", snapshot.SystemName)
	assert.Equal(t, "23.1.0", snapshot.KernelVersion)
	assert.Equal(t, "build-mac", snapshot.HostName)
}

func TestCollectSnapshotIsFreshEachCall(t *testing.T) {
	sysInfo := newHealthySysInfo()
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	first, err := c.CollectSnapshot(context.Background())
	require.NoError(t, err)

	sysInfo.ReturnCPUPercent = 80
	sysInfo.ReturnPids = []int32{1}

	second, err := c.CollectSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12.5, first.CPUUsage)
	assert.Equal(t, 80.0, second.CPUUsage)
	assert.Equal(t, uint64(1), second.ProcessCount)
}

func TestCollectSnapshotSkipsUnreadableDisk(t *testing.T) {
	sysInfo := newHealthySysInfo()
	delete(sysInfo.ReturnDiskUsage, "/Volumes/Backup")
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	snapshot, err := c.CollectSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.DiskUsage, 1)
	assert.Equal(t, "/", snapshot.DiskUsage[0].MountPoint)
	for _, d := range snapshot.DiskUsage {
		assert.Equal(t, d.TotalSpace-d.AvailableSpace, d.UsedSpace)
	}
}

func TestCollectSnapshotZeroMemory(t *testing.T) {
	sysInfo := newHealthySysInfo()
	sysInfo.ReturnMemoryStat = &mem.VirtualMemoryStat{}
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	snapshot, err := c.CollectSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, snapshot.MemoryPercent)
	assert.Equal(t, uint64(0), snapshot.MemoryUsage)
}

func TestCollectSnapshotIdentityFallback(t *testing.T) {
	testCases := []struct {
		Name     string
		HostInfo *host.InfoStat
		HostErr  error
	}{
		{Name: "host info error", HostErr: errors.New("not supported")},
		{Name: "empty host info", HostInfo: &host.InfoStat{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			sysInfo := newHealthySysInfo()
			sysInfo.ReturnHostInfo = tc.HostInfo
			sysInfo.ReturnHostInfoError = tc.HostErr
			c := NewCollector(sysInfo, &inspectorMock{}, testLog)

			snapshot, err := c.CollectSnapshot(context.Background())
			require.NoError(t, err)

			assert.Equal(t, models.Unknown, snapshot.SystemName)
			assert.Equal(t, models.Unknown, snapshot.KernelVersion)
			assert.Equal(t, models.Unknown, snapshot.HostName)
			assert.Equal(t, uint64(0), snapshot.Uptime)
		})
	}
}

func TestCollectSnapshotHardFailures(t *testing.T) {
	testCases := []struct {
		Name          string
		Break         func(s *MockSystemInfo)
		ExpectedError string
	}{
		{
			Name:          "cpu",
			Break:         func(s *MockSystemInfo) { s.ReturnCPUPercentError = errors.New("boom") },
			ExpectedError: "failed to read cpu usage: boom",
		},
		{
			Name:          "memory",
			Break:         func(s *MockSystemInfo) { s.ReturnMemoryError = errors.New("boom") },
			ExpectedError: "failed to read memory stats: boom",
		},
		{
			Name:          "partitions",
			Break:         func(s *MockSystemInfo) { s.ReturnPartitionsError = errors.New("boom") },
			ExpectedError: "failed to list disk partitions: boom",
		},
		{
			Name:          "pids",
			Break:         func(s *MockSystemInfo) { s.ReturnPidsError = errors.New("boom") },
			ExpectedError: "failed to read process table: boom",
		},
		{
			Name:          "network counters",
			Break:         func(s *MockSystemInfo) { s.ReturnNetCountersError = errors.New("boom") },
			ExpectedError: "failed to read network counters: boom",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			sysInfo := newHealthySysInfo()
			tc.Break(sysInfo)
			c := NewCollector(sysInfo, &inspectorMock{}, testLog)

			snapshot, err := c.CollectSnapshot(context.Background())

			assert.EqualError(t, err, tc.ExpectedError)
			assert.Nil(t, snapshot)
		})
	}
}

func TestListTopProcesses(t *testing.T) {
	sysInfo := &MockSystemInfo{
		ReturnProcesses: []ProcessSample{
			{PID: 10, Name: "idle", CPUUsage: 0, RSS: 1},
			{PID: 11, Name: "compiler", CPUUsage: 95.5, RSS: 2048},
			{PID: 12, Name: "broken", CPUUsage: math.NaN(), RSS: 3},
			{PID: 13, Name: "browser", CPUUsage: 40, RSS: 4096},
			{PID: 14, Name: "editor", CPUUsage: 40, RSS: 512},
		},
	}
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	testCases := []struct {
		Name         string
		Limit        int
		ExpectedPIDs []uint32
	}{
		{Name: "all", Limit: 10, ExpectedPIDs: []uint32{11, 13, 14, 10, 12}},
		{Name: "truncated", Limit: 3, ExpectedPIDs: []uint32{11, 13, 14}},
		{Name: "zero", Limit: 0, ExpectedPIDs: []uint32{}},
		{Name: "negative", Limit: -1, ExpectedPIDs: []uint32{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			procs, err := c.ListTopProcesses(context.Background(), tc.Limit)
			require.NoError(t, err)
			require.NotNil(t, procs)

			pids := make([]uint32, 0, len(procs))
			for _, p := range procs {
				pids = append(pids, p.PID)
			}
			assert.Equal(t, tc.ExpectedPIDs, pids)
		})
	}
}

func TestListTopProcessesCopiesFields(t *testing.T) {
	sysInfo := &MockSystemInfo{
		ReturnProcesses: []ProcessSample{{PID: 42, Name: "sysdash", CPUUsage: 1.5, RSS: 1 << 20}},
	}
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	procs, err := c.ListTopProcesses(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []models.ProcessInfo{{PID: 42, Name: "sysdash", CPUUsage: 1.5, Memory: 1 << 20}}, procs)
}

func TestListTopProcessesError(t *testing.T) {
	sysInfo := &MockSystemInfo{ReturnProcessesError: errors.New("denied")}
	c := NewCollector(sysInfo, &inspectorMock{}, testLog)

	procs, err := c.ListTopProcesses(context.Background(), 10)

	assert.EqualError(t, err, "failed to read process table: denied")
	assert.Nil(t, procs)
}

func TestRealSystemInfoMemory(t *testing.T) {
	s := NewSystemInfo(0, testLog)

	memStat, err := s.MemoryStats(context.Background())
	require.NoError(t, err)

	assert.NotZero(t, memStat.Total)
}
