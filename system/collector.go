package system

import (
	"context"
	"strings"

	"github.com/jpillora/sizestr"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

type NetworkInspector interface {
	Inspect(ctx context.Context) models.NetworkInterfaceDetails
}

// Collector reads a fresh snapshot from the OS on every call and keeps no
// state between calls, so it is safe for concurrent use.
type Collector struct {
	sysInfo   SysInfo
	inspector NetworkInspector
	logger    *logger.Logger
}

func NewCollector(sysInfo SysInfo, inspector NetworkInspector, l *logger.Logger) *Collector {
	return &Collector{
		sysInfo:   sysInfo,
		inspector: inspector,
		logger:    l,
	}
}

func (c *Collector) CollectSnapshot(ctx context.Context) (*models.HostSnapshot, error) {
	cpuUsage, err := c.sysInfo.CPUPercent(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cpu usage")
	}

	memStat, err := c.sysInfo.MemoryStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read memory stats")
	}
	usedMemory := models.UsedSpace(memStat.Total, memStat.Available)

	disks, err := c.diskUsage(ctx)
	if err != nil {
		return nil, err
	}

	pids, err := c.sysInfo.Pids(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read process table")
	}

	counters, err := c.sysInfo.NetCounters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network counters")
	}
	interfaces := make([]models.NetworkCounters, 0, len(counters))
	for _, nc := range counters {
		interfaces = append(interfaces, models.NetworkCounters{
			InterfaceName:      nc.Name,
			BytesReceived:      nc.BytesRecv,
			BytesTransmitted:   nc.BytesSent,
			PacketsReceived:    nc.PacketsRecv,
			PacketsTransmitted: nc.PacketsSent,
			ErrorsReceived:     nc.Errin,
			ErrorsTransmitted:  nc.Errout,
		})
	}

	snapshot := &models.HostSnapshot{
		CPUUsage:          cpuUsage,
		MemoryUsage:       usedMemory,
		TotalMemory:       memStat.Total,
		MemoryPercent:     models.MemoryPercent(usedMemory, memStat.Total),
		DiskUsage:         disks,
		NetworkInterfaces: interfaces,
		NetworkDetails:    c.inspector.Inspect(ctx),
		ProcessCount:      uint64(len(pids)),
	}
	c.fillIdentity(ctx, snapshot)

	c.logger.Debugf("snapshot: cpu %.1f%%, memory %s of %s, %d disks, %d interfaces, %d processes",
		snapshot.CPUUsage,
		sizestr.ToString(int64(snapshot.MemoryUsage)),
		sizestr.ToString(int64(snapshot.TotalMemory)),
		len(snapshot.DiskUsage),
		len(snapshot.NetworkInterfaces),
		snapshot.ProcessCount,
	)

	return snapshot, nil
}

func (c *Collector) diskUsage(ctx context.Context) ([]models.DiskUsage, error) {
	partitions, err := c.sysInfo.Partitions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list disk partitions")
	}

	disks := make([]models.DiskUsage, 0, len(partitions))
	for _, p := range partitions {
		usage, err := c.sysInfo.DiskUsage(ctx, p.Mountpoint)
		if err != nil {
			c.logger.Debugf("skipping disk %s mounted on %s: %v", p.Device, p.Mountpoint, err)
			continue
		}
		disks = append(disks, models.NewDiskUsage(p.Device, p.Mountpoint, usage.Total, usage.Free))
	}
	return disks, nil
}

func (c *Collector) fillIdentity(ctx context.Context, snapshot *models.HostSnapshot) {
	snapshot.SystemName = models.Unknown
	snapshot.KernelVersion = models.Unknown
	snapshot.HostName = models.Unknown

	info, err := c.sysInfo.HostInfo(ctx)
	if err != nil || info == nil {
		c.logger.Debugf("host info not available: %v", err)
		return
	}

	snapshot.Uptime = info.Uptime
	if platform := strings.TrimSpace(info.Platform); platform != "" {
		snapshot.SystemName = cases.Title(language.English).String(platform)
	}
	if kernel := strings.TrimSpace(info.KernelVersion); kernel != "" {
		snapshot.KernelVersion = kernel
	}
	if hostname := strings.TrimSpace(info.Hostname); hostname != "" {
		snapshot.HostName = hostname
	}
}

// ListTopProcesses returns at most limit processes ordered by cpu usage,
// highest first.
func (c *Collector) ListTopProcesses(ctx context.Context, limit int) ([]models.ProcessInfo, error) {
	if limit <= 0 {
		return []models.ProcessInfo{}, nil
	}

	samples, err := c.sysInfo.Processes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read process table")
	}

	procs := make([]models.ProcessInfo, 0, len(samples))
	for _, s := range samples {
		procs = append(procs, models.ProcessInfo{
			PID:      uint32(s.PID),
			Name:     s.Name,
			CPUUsage: s.CPUUsage,
			Memory:   s.RSS,
		})
	}

	SortByCPUUsage(procs)

	if len(procs) > limit {
		procs = procs[:limit]
	}
	return procs, nil
}
