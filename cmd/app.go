// Package cmd implements the CLI application to aggregate crypto
// acquisition records.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands to register on the commander.
// A main package iterates Commands and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&aggregateCmd{},
	&fetchCmd{},
	&networkCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const defaultAssets = "BTC,ETH"

// splitAssets parses the comma-separated asset list flag, preserving order.
func splitAssets(flagValue string) []string {
	var assets []string
	for _, a := range strings.Split(flagValue, ",") {
		if a = strings.TrimSpace(a); a != "" {
			assets = append(assets, a)
		}
	}
	return assets
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer is not available.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format, args...)
	return subcommands.ExitFailure
}
