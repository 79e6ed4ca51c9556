package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"coinsum/gemini"
)

// networkCmd holds the flags for the 'network' subcommand.
type networkCmd struct{}

func (*networkCmd) Name() string     { return "network" }
func (*networkCmd) Synopsis() string { return "show the blockchain network of a token" }
func (*networkCmd) Usage() string {
	return `coinsum network <token>...

  Queries the exchange for the blockchain network each token settles on.
`
}

func (c *networkCmd) SetFlags(f *flag.FlagSet) {}

func (c *networkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tokens := f.Args()
	if len(tokens) == 0 {
		return errorf("Error: no token given\n")
	}

	// the network endpoint is public, credentials are optional here
	client, err := gemini.FromEnv()
	if err != nil {
		client = gemini.NewClient("", "")
	}

	for _, token := range tokens {
		network, err := client.Network(token)
		if err != nil {
			return errorf("Error fetching network for %s: %v\n", token, err)
		}
		fmt.Printf("%s: %s\n", token, network)
	}
	return subcommands.ExitSuccess
}
