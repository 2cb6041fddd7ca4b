package config

import (
	"fmt"
	"net"

	"github.com/activecm/cowrie-analyzer/util"
	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Filtering FilteringRunningCfg
		Version   semver.Version
	}

	//FilteringRunningCfg holds the parsed whitelist
	FilteringRunningCfg struct {
		Whitelist []*net.IPNet
	}
)

// initRunningConfig uses data in the static config initialize
// the passed in running config
func initRunningConfig(static *StaticCfg, config *RunningCfg) error {
	var err error

	config.Filtering.Whitelist, err = util.ParseSubnets(static.Filtering.Whitelist)
	if err != nil {
		return fmt.Errorf("invalid whitelist: %w", err)
	}

	config.Version, err = semver.ParseTolerant(static.Version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", static.Version, err)
	}
	return nil
}
