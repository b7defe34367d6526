package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openrport/sysdash/server/chconfig"
	chshare "github.com/openrport/sysdash/share"
)

const DefaultConfigName = "sysdash.conf"

// DecodeConfig reads the config file, lets CLI flags override it, and
// validates the result.
func DecodeConfig(cfgPath string, pFlags *pflag.FlagSet) (*chconfig.Config, error) {
	viperCfg := preconfigureViperReader(cfgPath)

	if pFlags != nil {
		BindPFlagsToViperConfig(pFlags, viperCfg)
	}

	config := &chconfig.Config{}
	if err := chshare.DecodeViperConfig(viperCfg, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func preconfigureViperReader(cfgPath string) *viper.Viper {
	viperCfg := viper.New()
	viperCfg.SetConfigType("toml")

	SetViperConfigDefaults(viperCfg)

	if cfgPath != "" {
		viperCfg.SetConfigFile(cfgPath)
	} else {
		viperCfg.AddConfigPath(".")
		viperCfg.SetConfigName(DefaultConfigName)
	}
	return viperCfg
}
