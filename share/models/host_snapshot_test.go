package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPercent(t *testing.T) {
	testCases := []struct {
		Name     string
		Used     uint64
		Total    uint64
		Expected float64
	}{
		{Name: "half used", Used: 8 << 30, Total: 16 << 30, Expected: 50},
		{Name: "nothing used", Used: 0, Total: 1024, Expected: 0},
		{Name: "fully used", Used: 1024, Total: 1024, Expected: 100},
		{Name: "zero total", Used: 1024, Total: 0, Expected: 0},
		{Name: "zero both", Used: 0, Total: 0, Expected: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			assert.InDelta(t, tc.Expected, MemoryPercent(tc.Used, tc.Total), 1e-9)
		})
	}
}

func TestNewDiskUsage(t *testing.T) {
	testCases := []struct {
		Name            string
		Total           uint64
		Available       uint64
		ExpectedUsed    uint64
		ExpectedPercent float64
	}{
		{Name: "quarter used", Total: 400, Available: 300, ExpectedUsed: 100, ExpectedPercent: 25},
		{Name: "empty disk", Total: 400, Available: 400, ExpectedUsed: 0, ExpectedPercent: 0},
		{Name: "full disk", Total: 400, Available: 0, ExpectedUsed: 400, ExpectedPercent: 100},
		{Name: "zero total", Total: 0, Available: 0, ExpectedUsed: 0, ExpectedPercent: 0},
		{Name: "available above total", Total: 100, Available: 150, ExpectedUsed: 0, ExpectedPercent: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			d := NewDiskUsage("/dev/disk1s1", "/", tc.Total, tc.Available)

			assert.Equal(t, "/dev/disk1s1", d.Name)
			assert.Equal(t, "/", d.MountPoint)
			assert.Equal(t, tc.Total, d.TotalSpace)
			assert.Equal(t, tc.Available, d.AvailableSpace)
			assert.Equal(t, tc.ExpectedUsed, d.UsedSpace)
			assert.InDelta(t, tc.ExpectedPercent, d.UsagePercent, 1e-9)
			if tc.Available <= tc.Total {
				assert.Equal(t, d.TotalSpace-d.AvailableSpace, d.UsedSpace)
			}
		})
	}
}

func TestUnavailableNetworkDetailsJSON(t *testing.T) {
	b, err := json.Marshal(NewUnavailableNetworkDetails())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"ipv4_address": "N/A",
		"ipv6_address": "N/A",
		"mac_address": "N/A",
		"frequency": "N/A",
		"signal_strength": "N/A",
		"dns_servers": []
	}`, string(b))
}
