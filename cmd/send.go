package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
)

// sendCmd regenerates the reports of a historical date.
type sendCmd struct {
	date        string
	email       string
	name        string
	noAI        bool
	dryRun      bool
	hideAmounts bool
}

func (*sendCmd) Name() string     { return "send" }
func (*sendCmd) Synopsis() string { return "send the email reports for a stored historical date" }
func (*sendCmd) Usage() string {
	return `nwr send -date <YYYY-MM-DD> [-email <address>] [-no-ai] [-dry-run] [-hide-amounts]

  Regenerates and sends every report that was due on the given date,
  using the stored snapshots. Useful to replay a missed delivery.
`
}

func (c *sendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Date of the snapshot to report on (YYYY-MM-DD)")
	f.StringVar(&c.email, "email", "", "Recipient address (defaults to REPORT_EMAIL)")
	f.StringVar(&c.name, "name", "", "Recipient name (defaults to REPORT_NAME)")
	f.BoolVar(&c.noAI, "no-ai", false, "Skip AI insights generation")
	f.BoolVar(&c.dryRun, "dry-run", false, "Generate reports without sending email")
	f.BoolVar(&c.hideAmounts, "hide-amounts", false, "Mask amounts, keep percentages")
}

func (c *sendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	if c.email != "" {
		cfg.Email = c.email
	}
	if c.name != "" {
		cfg.Name = c.name
	}

	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if cfg.Email == "" && !c.dryRun {
		fmt.Fprintln(os.Stderr, "Error: no email address, use -email or set REPORT_EMAIL")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	current, err := store.Load(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nUse 'nwr list' to see available dates.\n", err)
		return subcommands.ExitFailure
	}
	log.Infof("Loaded snapshot for %s (net worth %s)", on, current.NetWorth)

	available, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	due := date.ReportsDue(on, available)
	log.Infof("Generating %d report(s)", len(due))

	opts := reportOptions{noAI: c.noAI, dryRun: c.dryRun, hideAmounts: c.hideAmounts}
	for _, d := range due {
		var previous *networth.Snapshot
		if d.HasComparison {
			if previous, err = store.Load(d.Comparison); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		} else {
			log.Warnf("No comparison snapshot for the %s report, current balances only", d.Period)
		}
		if err := generateAndSend(ctx, cfg, current, previous, d.Period, on, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
