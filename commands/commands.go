package commands

import (
	"github.com/urfave/cli"
)

var (
	allCommands []cli.Command

	// below are some prebuilt flags that get used often in various commands

	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "Print the rankings as aligned tables",
	}

	delimFlag = cli.StringFlag{
		Name:  "delimiter, d",
		Usage: "Change the delimiter used to separate the ranking columns",
		Value: ",",
	}

	limitFlag = cli.IntFlag{
		Name:  "limit, l",
		Usage: "Print at most `N` entries per ranking, overriding the configured limits",
		Value: 0,
	}

	htmlFlag = cli.BoolFlag{
		Name:  "html",
		Usage: "Write an HTML report next to the chart images",
	}

	openFlag = cli.BoolFlag{
		Name:  "open",
		Usage: "Open the HTML report in the default browser (implies --html)",
	}

	noProgressFlag = cli.BoolFlag{
		Name:  "no-progress",
		Usage: "Hide the parsing progress bar",
	}
)

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}
