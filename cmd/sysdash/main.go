package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openrport/sysdash/cmd/sysdash/cli"
	chserver "github.com/openrport/sysdash/server"
	chshare "github.com/openrport/sysdash/share"
	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/system"
	"github.com/openrport/sysdash/system/netdetails"
)

var serverHelp = `
  Usage: sysdash [options]

  Host telemetry backend for the sysdash desktop dashboard. Serves live
  cpu, memory, disk, network and process metrics over a local HTTP API
  and drives dashboard windows through an attached desktop shell.

  Options:

    --config, -c, Path to a TOML config file. Defaults to ./sysdash.conf
    if present.

    --addr, -a, Address the API listens on. Defaults to "127.0.0.1:7777".

    --cors-origin, Origin allowed to call the API from a browser context.
    Can be used multiple times. Defaults to "tauri://localhost" and
    "http://localhost:1420".

    --doc-root, Directory with the dashboard front end to serve on /.
    Defaults to empty (not served).

    --max-request-bytes, Maximum size of a request body. Defaults to 10240.

    --log-file, -l, Specifies log file path. (defaults to empty string: log
    printed to stdout)

    --log-level, Specify log level. Values: "error", "info", "debug"
    (defaults to "info")

    --top-processes-limit, Number of processes returned by the top
    processes endpoint. Defaults to 10.

    --cpu-sample-interval, Time spent sampling cpu usage per snapshot.
    Defaults to '0s', comparing against the previous snapshot.

    --command-timeout, Maximum run time of each network utility on macOS.
    Defaults to '5s'. '0s' disables the limit.

    --min-window-width, --min-window-height, Minimum size of detached
    windows. Defaults to 300x200.

    --shell-reply-timeout, Maximum wait for the desktop shell to confirm a
    window command. Defaults to '10s'.

    --help, This help text

    --version, Print version info and exit

  Signals:
    The sysdash process shuts down gracefully on SIGINT and SIGTERM.

`

var RootCmd = &cobra.Command{
	Use:     chshare.AppName,
	Version: chshare.BuildVersion,
	Args:    cobra.NoArgs,
	RunE:    runMain,
}

func init() {
	pFlags := RootCmd.PersistentFlags()
	cli.SetPFlags(pFlags)

	RootCmd.SetUsageFunc(func(*cobra.Command) error {
		fmt.Print(serverHelp)
		return nil
	})
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	config, err := cli.DecodeConfig(cfgPath, cmd.Flags())
	if err != nil {
		log.Fatal(err)
	}

	err = config.Logging.LogOutput.Start()
	if err != nil {
		log.Fatal(err)
	}
	defer config.Logging.LogOutput.Shutdown()

	rootLogger := logger.NewLogger(chshare.AppName, config.Logging.LogOutput, config.Logging.LogLevel)
	rootLogger.Infof("%s %s starting on %s", chshare.AppName, chshare.BuildVersion, runtime.GOOS)

	inspector := netdetails.NewInspector(
		runtime.GOOS,
		&netdetails.RunnerImpl{},
		rootLogger.Fork("netdetails"),
		config.Telemetry.CommandTimeout,
	)
	collectorLogger := rootLogger.Fork("collector")
	collector := system.NewCollector(
		system.NewSystemInfo(config.Telemetry.CPUSampleInterval, collectorLogger),
		inspector,
		collectorLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := chserver.NewServer(config, collector, rootLogger)
	if err := s.Run(ctx); err != nil {
		rootLogger.Errorf("%v", err)
		return err
	}

	rootLogger.Infof("stopped")
	return nil
}
