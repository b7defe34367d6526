package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openrport/sysdash/server/chconfig"
)

func SetPFlags(pFlags *pflag.FlagSet) {
	pFlags.StringP("config", "c", "", "")

	// present in config file
	pFlags.StringP("addr", "a", "", "")
	pFlags.StringArray("cors-origin", []string{}, "")
	pFlags.String("doc-root", "", "")
	pFlags.Int64("max-request-bytes", 0, "")
	pFlags.StringP("log-file", "l", "", "")
	pFlags.String("log-level", "", "")
	pFlags.Int("top-processes-limit", 0, "")
	pFlags.Duration("cpu-sample-interval", 0, "")
	pFlags.Duration("command-timeout", 0, "")
	pFlags.Float64("min-window-width", 0, "")
	pFlags.Float64("min-window-height", 0, "")
	pFlags.Duration("shell-reply-timeout", 0, "")
}

func BindPFlagsToViperConfig(pFlags *pflag.FlagSet, viperCfg *viper.Viper) {
	// map config fields to CLI args:
	_ = viperCfg.BindPFlag("api.address", pFlags.Lookup("addr"))
	_ = viperCfg.BindPFlag("api.cors_origins", pFlags.Lookup("cors-origin"))
	_ = viperCfg.BindPFlag("api.doc_root", pFlags.Lookup("doc-root"))
	_ = viperCfg.BindPFlag("api.max_request_bytes", pFlags.Lookup("max-request-bytes"))

	_ = viperCfg.BindPFlag("logging.log_file", pFlags.Lookup("log-file"))
	_ = viperCfg.BindPFlag("logging.log_level", pFlags.Lookup("log-level"))

	_ = viperCfg.BindPFlag("telemetry.top_processes_limit", pFlags.Lookup("top-processes-limit"))
	_ = viperCfg.BindPFlag("telemetry.cpu_sample_interval", pFlags.Lookup("cpu-sample-interval"))
	_ = viperCfg.BindPFlag("telemetry.command_timeout", pFlags.Lookup("command-timeout"))

	_ = viperCfg.BindPFlag("windows.min_width", pFlags.Lookup("min-window-width"))
	_ = viperCfg.BindPFlag("windows.min_height", pFlags.Lookup("min-window-height"))
	_ = viperCfg.BindPFlag("windows.shell_reply_timeout", pFlags.Lookup("shell-reply-timeout"))
}

func SetViperConfigDefaults(viperCfg *viper.Viper) {
	for key, value := range chconfig.Defaults {
		viperCfg.SetDefault(key, value)
	}
}
