package main

import (
	"fmt"
	"os"

	"github.com/activecm/cowrie-analyzer/commands"
	"github.com/activecm/cowrie-analyzer/config"
	"github.com/urfave/cli"
)

// Entry point of cowrie-analyzer
func main() {
	app := cli.NewApp()
	app.Name = "cowrie-analyzer"
	app.Usage = "Summarize the login attempts recorded by a Cowrie honeypot."

	// Change the version string with updates so that a quick help command will
	// let the users know what version they're on
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("%s version %s (%s)\n", c.App.Name, c.App.Version, config.ExactVersion)
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
