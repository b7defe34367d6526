package netdetails

import (
	"context"
	"time"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

// Inspector reports best-effort details of the primary network interface.
// It never fails: anything it cannot determine is "N/A".
type Inspector interface {
	Inspect(ctx context.Context) models.NetworkInterfaceDetails
}

// NewInspector picks the inspector for goos. Only darwin has a real
// implementation, every other platform reports sentinel values.
func NewInspector(goos string, runner Runner, l *logger.Logger, commandTimeout time.Duration) Inspector {
	switch goos {
	case "darwin":
		l.Debugf("using macOS network inspector")
		return &macOSInspector{
			runner:  runner,
			logger:  l,
			timeout: commandTimeout,
		}
	default:
		l.Debugf("network details are not supported on %s", goos)
		return SentinelInspector{}
	}
}

type SentinelInspector struct{}

func (SentinelInspector) Inspect(ctx context.Context) models.NetworkInterfaceDetails {
	return models.NewUnavailableNetworkDetails()
}
