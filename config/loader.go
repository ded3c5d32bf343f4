// Copyright 2021 The reqster Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable Load reads.
const EnvPrefix = "REQSTER"

type loader struct {
	envFile   string
	overrides []func(*Config)
}

// A LoadOption customizes Load.
type LoadOption func(*loader)

// WithEnvFile makes Load read variables from a .env file. Variables
// already set in the process environment take precedence over the
// file. The process environment is not modified.
func WithEnvFile(path string) LoadOption {
	return func(l *loader) { l.envFile = path }
}

// WithOverride makes Load call fn on the decoded configuration before
// defaults are applied and the result is validated. Command line flags
// use it to take precedence over every other source.
func WithOverride(fn func(*Config)) LoadOption {
	return func(l *loader) { l.overrides = append(l.overrides, fn) }
}

// Load reads the configuration from the file at path, which may be
// empty to use only defaults and the environment, applies defaults
// and validates the result.
func Load(path string, opts ...LoadOption) (*Config, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if l.envFile != "" {
		if err := overlayEnvFile(v, l.envFile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	for _, fn := range l.overrides {
		fn(&cfg)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key, which AutomaticEnv needs to find
// keys absent from the config file. Keys whose default depends on other
// settings are registered empty and filled in by ApplyDefaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", "0s")
	v.SetDefault("retry.max", 0)
	v.SetDefault("retry.statuses", DefaultRetryStatuses)
	v.SetDefault("retry.base_wait", DefaultBaseWait.String())
	v.SetDefault("retry.max_wait", DefaultMaxWait.String())
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 0)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
}

// overlayEnvFile applies the REQSTER_* variables of a .env file that
// are not set in the process environment.
func overlayEnvFile(v *viper.Viper, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	for _, key := range v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		value, ok := vars[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}
