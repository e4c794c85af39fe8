// Package config wires application settings, defaults, and environment bindings through viper.
package config

import (
	"errors"
	"strings"

	"github.com/hydra-cli/hydra/constant"
	"github.com/hydra-cli/hydra/filesystem"
	"github.com/hydra-cli/hydra/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer converts dotted configuration keys into the form used
// inside environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, binds exposed environment variables, and reads
// the optional configuration file. A missing file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Hydra)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Hydra)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}
