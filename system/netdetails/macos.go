package netdetails

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

const airportPath = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"

var (
	ifconfigCmd = []string{"ifconfig"}
	scutilCmd   = []string{"scutil", "--dns"}
	airportCmd  = []string{airportPath, "-I"}
)

var errInvalidOutput = errors.New("output is not valid UTF-8")

type macOSInspector struct {
	runner  Runner
	logger  *logger.Logger
	timeout time.Duration
}

func (i *macOSInspector) Inspect(ctx context.Context) models.NetworkInterfaceDetails {
	details := models.NewUnavailableNetworkDetails()

	if out, err := i.run(ctx, ifconfigCmd); err == nil {
		addrs := ParseIfconfig(out)
		details.IPv4Address = orNotAvailable(addrs.IPv4)
		details.IPv6Address = orNotAvailable(addrs.IPv6)
		details.MACAddress = orNotAvailable(addrs.MAC)
	}

	if out, err := i.run(ctx, scutilCmd); err == nil {
		details.DNSServers = ParseScutilDNS(out)
	}

	if out, err := i.run(ctx, airportCmd); err == nil {
		wifi := ParseAirport(out)
		details.Frequency = orNotAvailable(wifi.Frequency)
		details.SignalStrength = orNotAvailable(wifi.SignalStrength)
	}

	return details
}

func (i *macOSInspector) run(ctx context.Context, args []string) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	out, err := i.runner.Run(ctx, args...)
	if err != nil {
		i.logger.Debugf("%s failed: %v", args[0], err)
		return "", err
	}
	if !utf8.ValidString(out) {
		i.logger.Debugf("%s: %v", args[0], errInvalidOutput)
		return "", errInvalidOutput
	}
	return out, nil
}

func orNotAvailable(v string) string {
	if v == "" {
		return models.NotAvailable
	}
	return v
}
