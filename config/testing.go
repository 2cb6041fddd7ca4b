package config

import (
	"github.com/creasty/defaults"
)

const testConfig = `
Paths:
    ImageDir: img
Filtering:
    Whitelist: ["127.0.0.1", "192.168.16.0/24"]
LogConfig:
    LogLevel: 3
    LogToFile: false
`

// LoadTestingConfig loads the hard coded testing config. root is used as
// Paths.Root so that tests can point the analyzer at a temporary directory.
func LoadTestingConfig(root string) (*Config, error) {
	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig([]byte(testConfig), &config.S); err != nil {
		return nil, err
	}

	config.S.Paths.Root = root
	config.S.Version = "v0.0.0+testing"
	config.S.ExactVersion = "v0.0.0+testing"

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}
