package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/resources"

	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags: []cli.Flag{
			configFlag,
		},
		Name:  "test-config",
		Usage: "Check the configuration file for validity",
		Action: func(c *cli.Context) error {
			if err := testConfiguration(os.Stdout, c.String("config")); err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(w io.Writer, configFile string) error {
	// First, print out the config as it was parsed
	conf, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to config: %w", err)
	}

	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", string(staticConfig))

	// Then test initializing the log files
	if _, err := resources.NewResources(conf); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}
