package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/agent"
	"github.com/networth-report/networth/date"
)

// queryCmd asks the AI a question about the portfolio.
type queryCmd struct {
	portfolioID string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "ask the AI a question about the portfolio" }
func (*queryCmd) Usage() string {
	return `nwr query [-portfolio-id <id>] <question>

  Answers a free-form question over today's snapshot and, when
  yesterday's snapshot exists, the daily changes.

Usage Examples:
$ nwr query "how concentrated is my portfolio in tech stocks?"
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio-id", "", "Portfolio ID or index (defaults to PORTFOLIO_ID)")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.TrimSpace(strings.Join(f.Args(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Error: no question given")
		return subcommands.ExitUsageError
	}

	cfg := loadConfig()
	if c.portfolioID != "" {
		cfg.PortfolioID = c.portfolioID
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	current, err := todaySnapshot(store, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// The daily comparison gives the model change context when it
	// exists; the question still works without it.
	var previous *networth.Snapshot
	available, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if comparison, ok := date.ResolveComparison(date.Today(), date.Daily, available); ok {
		if previous, err = store.Load(comparison); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	analyst, err := agent.NewAnalyst(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	log.Info("Analyzing...")
	answer, err := analyst.Query(ctx, question, networth.CalculateDeltas(current, previous))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(answer)
	return subcommands.ExitSuccess
}
