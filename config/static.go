package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Paths        PathsStaticCfg     `yaml:"Paths"`
		Filtering    FilteringStaticCfg `yaml:"Filtering"`
		Buckets      BucketsStaticCfg   `yaml:"Buckets"`
		Ranking      RankingStaticCfg   `yaml:"Ranking"`
		Charts       ChartsStaticCfg    `yaml:"Charts"`
		GeoIP        GeoIPStaticCfg     `yaml:"GeoIP"`
		Metrics      MetricsStaticCfg   `yaml:"Metrics"`
		Log          LogStaticCfg       `yaml:"LogConfig"`
		Version      string
		ExactVersion string
	}

	//PathsStaticCfg controls where log files are read from and charts are written to.
	//Relative LogDir and ImageDir values are resolved against Root.
	PathsStaticCfg struct {
		Root          string `yaml:"Root" default:"."`
		DefaultLogDir string `yaml:"DefaultLogDir" default:"log"`
		FilePattern   string `yaml:"FilePattern" default:"cowrie*.json"`
		ImageDir      string `yaml:"ImageDir" default:"img"`
	}

	//FilteringStaticCfg lists source addresses which are never counted
	FilteringStaticCfg struct {
		Whitelist []string `yaml:"Whitelist" default:"[\"192.168.100.100\",\"192.168.16.51\",\"192.168.16.50\",\"127.0.0.1\"]"`
	}

	//BucketsStaticCfg sets the width of the login volume time series
	BucketsStaticCfg struct {
		HourWidth int `yaml:"HourWidth" default:"24"`
	}

	//RankingStaticCfg sets how many entries each console ranking prints
	RankingStaticCfg struct {
		SourceIPs int `yaml:"SourceIPs" default:"10"`
		Usernames int `yaml:"Usernames" default:"30"`
		Passwords int `yaml:"Passwords" default:"30"`
		Pairs     int `yaml:"Pairs" default:"10"`
		Countries int `yaml:"Countries" default:"10"`
	}

	//ChartsStaticCfg sets the rendered chart size in inches
	ChartsStaticCfg struct {
		Width  float64 `yaml:"Width" default:"6.4"`
		Height float64 `yaml:"Height" default:"4.8"`
		Bars   int     `yaml:"Bars" default:"10"`
	}

	//GeoIPStaticCfg points at the MaxMind country database. Attribution is
	//skipped when the file does not exist.
	GeoIPStaticCfg struct {
		DatabasePath string `yaml:"DatabasePath" default:"GeoLite2-Country.mmdb"`
		Language     string `yaml:"Language" default:"en"`
	}

	//MetricsStaticCfg controls the prometheus textfile export
	MetricsStaticCfg struct {
		TextfilePath string `yaml:"TextfilePath"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"2"`
		LogPath   string `yaml:"LogPath" default:"$HOME/.cowrie-analyzer/logs"`
		LogToFile bool   `yaml:"LogToFile"`
	}
)

// loadStaticConfig attempts to parse a config file
func loadStaticConfig(cfgPath string, config *StaticCfg) error {
	cfgFile, err := os.ReadFile(cfgPath)
	if err != nil {
		return err
	}

	return parseStaticConfig(cfgFile, config)
}

// parseStaticConfig parses the yaml over top of the given static config
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	if err := yaml.Unmarshal(cfgFile, config); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	finalizeStaticConfig(config)
	return nil
}

// finalizeStaticConfig expands env variables, cleans up paths, and records
// the version constants set by the build process
func finalizeStaticConfig(config *StaticCfg) {
	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	config.Paths.Root = filepath.Clean(config.Paths.Root)
	if config.Log.LogPath != "" {
		config.Log.LogPath = filepath.Clean(config.Log.LogPath)
	}

	config.Version = Version
	config.ExactVersion = ExactVersion
}

// ResolvePath joins a relative path onto the configured root.
// Absolute paths are returned unchanged.
func (s *StaticCfg) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Paths.Root, path)
}
