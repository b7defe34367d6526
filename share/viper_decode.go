package chshare

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/openrport/sysdash/share/logger"
)

var (
	logOutputType = reflect.TypeOf(logger.LogOutput{})
	logLevelType  = reflect.TypeOf(logger.LogLevel(0))
)

// decodeLogging turns the logging.log_file and logging.log_level strings
// into their logger types.
func decodeLogging(src reflect.Type, dst reflect.Type, srcVal interface{}) (interface{}, error) {
	if src.Kind() != reflect.String {
		return srcVal, nil
	}
	switch dst {
	case logOutputType:
		return logger.NewLogOutput(srcVal.(string)), nil
	case logLevelType:
		return logger.ParseLogLevel(srcVal.(string))
	default:
		return srcVal, nil
	}
}

var decoderConfigOptions = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decodeLogging,
		mapstructure.StringToTimeDurationHookFunc(),
		// cors_origins = "a,b" in a config file
		mapstructure.StringToSliceHookFunc(","),
	)),
}

// DecodeViperConfig reads the config file when there is one and decodes
// file values, bound flags and defaults into cfg. cfg must be a pointer.
// A missing file is not an error, a file that can not be parsed is.
func DecodeViperConfig(v *viper.Viper, cfg interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "error reading config file")
		}
	}

	if err := v.Unmarshal(cfg, decoderConfigOptions...); err != nil {
		return errors.Wrap(err, "error parsing config file")
	}
	return nil
}
