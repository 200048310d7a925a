package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/networth-report/networth/agent"
	"github.com/networth-report/networth/date"
)

// trendsCmd runs AI trend analysis over the stored history.
type trendsCmd struct {
	period string
}

func (*trendsCmd) Name() string     { return "trends" }
func (*trendsCmd) Synopsis() string { return "analyze net worth trends over the stored history" }
func (*trendsCmd) Usage() string {
	return `nwr trends [-p <period>]

  Builds the net worth series from every stored snapshot and asks the
  AI for a trend analysis over the given period.
`
}

func (c *trendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "week", "Period to analyze (day, week, month, quarter, year)")
}

func (c *trendsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loadConfig()

	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	dates, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var history date.History[float64]
	for _, d := range dates {
		snapshot, err := store.Load(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		history.Append(d, snapshot.NetWorth.AsFloat())
	}

	analyst, err := agent.NewAnalyst(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	log.Info("Analyzing...")
	analysis, err := analyst.Trends(ctx, &history, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(analysis)
	return subcommands.ExitSuccess
}
