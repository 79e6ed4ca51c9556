package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"coinsum"
	"coinsum/gemini"
	"coinsum/renderer"
)

// aggregateCmd holds the flags for the 'aggregate' subcommand.
type aggregateCmd struct {
	assets    string
	dir       string
	remote    bool
	breakdown bool
}

func (*aggregateCmd) Name() string     { return "aggregate" }
func (*aggregateCmd) Synopsis() string { return "aggregate acquisition records per asset" }
func (*aggregateCmd) Usage() string {
	return `coinsum aggregate [-assets <tickers>] [-dir <exports>] [-remote] [-breakdown]

  Reconciles buy and staking records from the exchange exports into one
  aggregate summary per asset: date span, total quantity, subtotal, fees,
  total cost and estimated mean spot price.
`
}

func (c *aggregateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assets, "assets", defaultAssets, "Comma-separated asset tickers to aggregate, in output order.")
	f.StringVar(&c.dir, "dir", ".", "Directory holding the exchange export files.")
	f.BoolVar(&c.remote, "remote", false, "Fetch the Gemini transactions from the API instead of the export file.")
	f.BoolVar(&c.breakdown, "breakdown", false, "Show the per-source rows above each asset total.")
}

func (c *aggregateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets := splitAssets(c.assets)
	if len(assets) == 0 {
		return errorf("Error: no assets to aggregate\n")
	}

	var loader coinsum.TableLoader = coinsum.DirLoader{Dir: c.dir}
	if c.remote {
		client, err := gemini.FromEnv()
		if err != nil {
			return errorf("Error creating exchange client: %v\n", err)
		}
		loader = &gemini.Loader{Client: client, Assets: assets, Fallback: loader}
	}

	pipeline := coinsum.NewPipeline(loader)
	results, err := pipeline.Run(assets)

	opts := renderer.DefaultOptions()
	opts.Breakdown = c.breakdown
	if len(results) > 0 {
		printMarkdown(renderer.ReportMarkdown(results, opts))
	}

	if err != nil {
		return errorf("Error aggregating: %v\n", err)
	}
	return subcommands.ExitSuccess
}
