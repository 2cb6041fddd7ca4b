package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
)

// Version is filled at compile time with the git version of cowrie-analyzer
// git describe --abbrev=0 --tags
var Version = "v0.0.0+dev"

// ExactVersion is filled at compile time with the git version of cowrie-analyzer
// git describe --always --long --dirty --tags
var ExactVersion = "undefined"

const (
	userConfigPath   = ".cowrie-analyzer/config.yaml"
	systemConfigPath = "/etc/cowrie-analyzer/config.yaml"
)

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// LoadConfig initializes a Config struct with values read
// from a config file. An explicitly requested file must exist. Otherwise the
// user config and then the system config are tried, and the built-in
// defaults are used if neither is present.
func LoadConfig(userConfig string) (*Config, error) {
	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	cfgPath, err := findConfigFile(userConfig)
	if err != nil {
		return nil, err
	}

	if cfgPath != "" {
		if err := loadStaticConfig(cfgPath, &config.S); err != nil {
			return nil, err
		}
	} else {
		finalizeStaticConfig(&config.S)
	}

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}

// findConfigFile returns the first config file which exists in order of
// precedence, or "" if none do
func findConfigFile(userConfig string) (string, error) {
	if userConfig != "" {
		if _, err := os.Stat(userConfig); err != nil {
			return "", fmt.Errorf("could not read config file: %w", err)
		}
		return userConfig, nil
	}

	candidates := []string{systemConfigPath}
	if u, err := user.Current(); err == nil {
		candidates = append([]string{filepath.Join(u.HomeDir, userConfigPath)}, candidates...)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
