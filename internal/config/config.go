// Package config merges shaidsum's flags with an optional config file and SHAIDSUM_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"strings"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type Config struct {
	Length    uint   `mapstructure:"length"`
	Base64    bool   `mapstructure:"base64"`
	Hyphenate bool   `mapstructure:"hyphenate"`
	NoCodes   bool   `mapstructure:"no-codes"`
	Quiet     bool   `mapstructure:"quiet"`
	Strict    bool   `mapstructure:"strict"`
	String    bool   `mapstructure:"string"`
	Time      bool   `mapstructure:"time"`
	IDs       uint   `mapstructure:"ids"`
	Check     bool   `mapstructure:"check"`
	Count     uint64 `mapstructure:"count"` /* 0 checks until interrupted */
	DB        string `mapstructure:"db"`
	Metrics   string `mapstructure:"metrics"`
}

var ErrLength = errors.New("digest length must be 128 or 160 bits")

// Load reads path (if non-empty), then the environment, then any flags that were set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("SHAIDSUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("length", 160)
	v.SetDefault("base64", false)
	v.SetDefault("hyphenate", false)
	v.SetDefault("no-codes", false)
	v.SetDefault("quiet", false)
	v.SetDefault("strict", false)
	v.SetDefault("string", false)
	v.SetDefault("time", false)
	v.SetDefault("ids", 0)
	v.SetDefault("check", false)
	v.SetDefault("count", 0)
	v.SetDefault("db", "")
	v.SetDefault("metrics", "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Quiet {
		cfg.NoCodes = true
	}
	if cfg.Length != 128 && cfg.Length != 160 {
		return nil, fmt.Errorf("%w: got %d", ErrLength, cfg.Length)
	}
	return &cfg, nil
}
