package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
	"github.com/networth-report/networth/renderer"
)

// showCmd displays a snapshot in the terminal.
type showCmd struct {
	date        string
	portfolioID string
	hideAmounts bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a current or historical snapshot" }
func (*showCmd) Usage() string {
	return `nwr show [-date <YYYY-MM-DD>] [-portfolio-id <id>]

  Displays a snapshot as a report in the terminal. Without -date it
  uses today's stored snapshot, fetching a fresh one if needed.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Date of the snapshot to show (defaults to today)")
	f.StringVar(&c.portfolioID, "portfolio-id", "", "Portfolio ID or index (defaults to PORTFOLIO_ID)")
	f.BoolVar(&c.hideAmounts, "hide-amounts", false, "Mask amounts, keep percentages")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	if c.portfolioID != "" {
		cfg.PortfolioID = c.portfolioID
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var current *networth.Snapshot
	on := date.Today()
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -date: %v\n", err)
			return subcommands.ExitUsageError
		}
		if current, err = store.Load(on); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		if current, err = todaySnapshot(store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	// Compare against the daily comparison snapshot when it exists.
	var previous *networth.Snapshot
	available, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if comparison, ok := date.ResolveComparison(on, date.Daily, available); ok {
		if previous, err = store.Load(comparison); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	r := networth.CalculateDeltas(current, previous)
	printMarkdown(renderer.Markdown(r, date.Daily, renderer.Options{HideAmounts: c.hideAmounts}))
	return subcommands.ExitSuccess
}
