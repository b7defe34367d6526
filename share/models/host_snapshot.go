package models

// NotAvailable marks a network detail that could not be determined.
const NotAvailable = "N/A"

// Unknown marks a host identity field the OS did not report.
const Unknown = "Unknown"

type HostSnapshot struct {
	CPUUsage          float64                 `json:"cpu_usage"`
	MemoryUsage       uint64                  `json:"memory_usage"`
	TotalMemory       uint64                  `json:"total_memory"`
	MemoryPercent     float64                 `json:"memory_percent"`
	DiskUsage         []DiskUsage             `json:"disk_usage"`
	NetworkInterfaces []NetworkCounters       `json:"network_interfaces"`
	NetworkDetails    NetworkInterfaceDetails `json:"network_details"`
	ProcessCount      uint64                  `json:"process_count"`
	Uptime            uint64                  `json:"uptime"`
	SystemName        string                  `json:"system_name"`
	KernelVersion     string                  `json:"kernel_version"`
	HostName          string                  `json:"host_name"`
}

type DiskUsage struct {
	Name           string  `json:"name"`
	MountPoint     string  `json:"mount_point"`
	TotalSpace     uint64  `json:"total_space"`
	AvailableSpace uint64  `json:"available_space"`
	UsedSpace      uint64  `json:"used_space"`
	UsagePercent   float64 `json:"usage_percent"`
}

// NetworkCounters are cumulative since the interface came up, not deltas.
type NetworkCounters struct {
	InterfaceName      string `json:"interface_name"`
	BytesReceived      uint64 `json:"bytes_received"`
	BytesTransmitted   uint64 `json:"bytes_transmitted"`
	PacketsReceived    uint64 `json:"packets_received"`
	PacketsTransmitted uint64 `json:"packets_transmitted"`
	ErrorsReceived     uint64 `json:"errors_received"`
	ErrorsTransmitted  uint64 `json:"errors_transmitted"`
}

type ProcessInfo struct {
	PID      uint32  `json:"pid"`
	Name     string  `json:"name"`
	CPUUsage float64 `json:"cpu_usage"`
	Memory   uint64  `json:"memory"`
}

// NetworkInterfaceDetails is a best-effort summary of the primary interface.
type NetworkInterfaceDetails struct {
	IPv4Address    string   `json:"ipv4_address"`
	IPv6Address    string   `json:"ipv6_address"`
	MACAddress     string   `json:"mac_address"`
	Frequency      string   `json:"frequency"`
	SignalStrength string   `json:"signal_strength"`
	DNSServers     []string `json:"dns_servers"`
}

func NewUnavailableNetworkDetails() NetworkInterfaceDetails {
	return NetworkInterfaceDetails{
		IPv4Address:    NotAvailable,
		IPv6Address:    NotAvailable,
		MACAddress:     NotAvailable,
		Frequency:      NotAvailable,
		SignalStrength: NotAvailable,
		DNSServers:     []string{},
	}
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func MemoryPercent(used, total uint64) float64 {
	return Percent(used, total)
}

// UsedSpace is total minus available, floored at 0 for filesystems that
// report more free than total space.
func UsedSpace(total, available uint64) uint64 {
	if available > total {
		return 0
	}
	return total - available
}

func NewDiskUsage(name, mountPoint string, total, available uint64) DiskUsage {
	used := UsedSpace(total, available)
	return DiskUsage{
		Name:           name,
		MountPoint:     mountPoint,
		TotalSpace:     total,
		AvailableSpace: available,
		UsedSpace:      used,
		UsagePercent:   Percent(used, total),
	}
}
