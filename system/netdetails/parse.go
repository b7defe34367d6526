package netdetails

import (
	"net"
	"strings"
)

// IfconfigAddresses holds the first usable addresses found in ifconfig output.
// Empty fields were not found.
type IfconfigAddresses struct {
	IPv4 string
	IPv6 string
	MAC  string
}

// ParseIfconfig scans ifconfig output across all interfaces. The first
// non-loopback IPv4, the first global IPv6 and the first ether address win.
func ParseIfconfig(output string) IfconfigAddresses {
	var res IfconfigAddresses
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "inet":
			if res.IPv4 != "" {
				continue
			}
			ip := net.ParseIP(fields[1])
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			res.IPv4 = ip.String()
		case "inet6":
			if res.IPv6 != "" {
				continue
			}
			addr := fields[1]
			if i := strings.IndexByte(addr, '%'); i >= 0 {
				addr = addr[:i]
			}
			ip := net.ParseIP(addr)
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			res.IPv6 = addr
		case "ether":
			if res.MAC != "" {
				continue
			}
			if _, err := net.ParseMAC(fields[1]); err != nil {
				continue
			}
			res.MAC = fields[1]
		}
	}
	return res
}

// ParseScutilDNS returns every nameserver listed by scutil --dns in output
// order. Resolvers repeat across scopes, so duplicates are expected.
func ParseScutilDNS(output string) []string {
	servers := []string{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "nameserver[") {
			continue
		}
		parts := strings.SplitN(line, " : ", 2)
		if len(parts) != 2 {
			continue
		}
		if server := strings.TrimSpace(parts[1]); server != "" {
			servers = append(servers, server)
		}
	}
	return servers
}

// AirportInfo holds the formatted Wi-Fi values. Empty fields were not found.
type AirportInfo struct {
	Frequency      string
	SignalStrength string
}

// ParseAirport reads "airport -I" output. The channel value is reported as
// is with a GHz suffix.
func ParseAirport(output string) AirportInfo {
	var res AirportInfo
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if value == "" {
			continue
		}
		switch key {
		case "channel":
			if res.Frequency == "" {
				res.Frequency = value + " GHz"
			}
		case "agrCtlRSSI":
			if res.SignalStrength == "" {
				res.SignalStrength = value + " dBm"
			}
		}
	}
	return res
}
