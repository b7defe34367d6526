package system

import (
	"math"
	"sort"

	"github.com/openrport/sysdash/share/models"
)

// SortByCPUUsage orders processes by cpu usage descending. The sort is stable
// and NaN values go last.
func SortByCPUUsage(procs []models.ProcessInfo) {
	sort.SliceStable(procs, func(i, j int) bool {
		return cpuUsageBefore(procs[i].CPUUsage, procs[j].CPUUsage)
	})
}

func cpuUsageBefore(a, b float64) bool {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN:
		return false
	case bNaN:
		return true
	default:
		return a > b
	}
}
