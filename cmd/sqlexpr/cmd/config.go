//  Copyright (c) 2017-2018 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/utils"
	"gopkg.in/validator.v2"
)

// AddFlags adds the flags shared by all sub commands.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "sqlexpr config file")
	cmd.PersistentFlags().String("log_level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().String("separator", "", "separator between rendered function arguments")
	cmd.PersistentFlags().Int("capacity", 0, "expression cache capacity")
	cmd.PersistentFlags().Bool("metrics", false, "print metrics after the command finishes")
}

// ReadConfig populates SQLExprConfig from defaults, the config file,
// SQLEXPR_* environment variables and flags, in increasing precedence.
func ReadConfig(flags *pflag.FlagSet) (common.SQLExprConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	utils.BindEnvironments(v)

	// set defaults
	defaults := utils.DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
	v.SetDefault("printer.separator", defaults.Printer.Separator)

	// merge in config file
	if cfgFile, err := flags.GetString("config"); err == nil && cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return common.SQLExprConfig{}, utils.StackError(err, "failed to read config file %s", cfgFile)
		}
	}

	// bind command flags
	bindFlag(v, "log_level", flags.Lookup("log_level"))
	bindFlag(v, "printer.separator", flags.Lookup("separator"))
	bindFlag(v, "cache.capacity", flags.Lookup("capacity"))

	var cfg common.SQLExprConfig
	err := v.Unmarshal(&cfg, func(config *mapstructure.DecoderConfig) {
		config.TagName = "yaml"
	})
	if err != nil {
		return cfg, err
	}
	return cfg, validateConfig(cfg)
}

// validateConfig rejects type mappings missing a function or store type.
func validateConfig(cfg common.SQLExprConfig) error {
	for i, mapping := range cfg.TypeMappings {
		if err := validator.Validate(mapping); err != nil {
			return utils.StackError(err, "invalid type_mappings[%d] for function %q", i, mapping.Function)
		}
	}
	return nil
}

// bindFlag binds key to flag when the flag is defined.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag != nil {
		v.BindPFlag(key, flag)
	}
}
