package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"coinsum"
	"coinsum/gemini"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	assets string
	dir    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch Gemini transactions into the exports directory" }
func (*fetchCmd) Usage() string {
	return `coinsum fetch [-assets <tickers>] [-dir <exports>]

  Downloads the account's past trades from the Gemini API and writes them as
  the transaction-history export file, ready for 'coinsum aggregate'.
  Requires GEMINI_API_KEY and GEMINI_API_SECRET (or a .env file).
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assets, "assets", defaultAssets, "Comma-separated asset tickers to fetch.")
	f.StringVar(&c.dir, "dir", ".", "Directory to write the export file into.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets := splitAssets(c.assets)
	if len(assets) == 0 {
		return errorf("Error: no assets to fetch\n")
	}

	client, err := gemini.FromEnv()
	if err != nil {
		return errorf("Error creating exchange client: %v\n", err)
	}

	table, err := client.Transactions(assets...)
	if err != nil {
		return errorf("Error fetching transactions: %v\n", err)
	}

	path := filepath.Join(c.dir, coinsum.GeminiTransactionsFile)
	out, err := os.Create(path)
	if err != nil {
		return errorf("Error creating %q: %v\n", path, err)
	}
	defer out.Close()
	if err := table.WriteCSV(out); err != nil {
		return errorf("Error writing %q: %v\n", path, err)
	}

	fmt.Printf("Successfully wrote %d transactions to %s\n", table.Len(), path)
	return subcommands.ExitSuccess
}
