package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
	"github.com/networth-report/networth/renderer"
)

// exportCmd writes the HTML report of a date to a file.
type exportCmd struct {
	date        string
	output      string
	name        string
	reportType  string
	noAI        bool
	hideAmounts bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the HTML report for a date to a file" }
func (*exportCmd) Usage() string {
	return `nwr export -date <YYYY-MM-DD> [-o <file>] [-type <period>] [-no-ai] [-hide-amounts]

  Renders the report for a stored date into a standalone HTML file
  with collapsible sheet and section headers for local viewing. The
  period is auto-detected from the date unless -type forces one.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Date of the snapshot to export (YYYY-MM-DD)")
	f.StringVar(&c.output, "o", "", "Output file (default: report_<date>.html)")
	f.StringVar(&c.name, "name", "", "Recipient name (defaults to REPORT_NAME)")
	f.StringVar(&c.reportType, "type", "", "Report period (daily, weekly, monthly, quarterly, yearly)")
	f.BoolVar(&c.noAI, "no-ai", false, "Skip AI insights generation")
	f.BoolVar(&c.hideAmounts, "hide-amounts", false, "Mask amounts, keep percentages")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	if c.name != "" {
		cfg.Name = c.name
	}

	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -date: %v\n", err)
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
	available, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	period, comparison, hasComparison, err := c.resolvePeriod(on, available)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var previous *networth.Snapshot
	if hasComparison {
		if previous, err = store.Load(comparison); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		log.Warn("No comparison snapshot found, current balances only")
	}

	r := networth.CalculateDeltas(current, previous)

	var summary string
	if r.HasComparison() && !c.noAI {
		log.Info("Generating AI insights...")
		summary = aiSummary(ctx, r, period, c.hideAmounts)
	}

	html, err := renderer.HTML(r, period, renderer.Options{
		RecipientName: cfg.Name,
		AISummary:     summary,
		HideAmounts:   c.hideAmounts,
		Export:        true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = fmt.Sprintf("report_%s.html", on)
	}
	if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	abs, _ := filepath.Abs(output)
	log.Infof("Report exported to %s", abs)
	return subcommands.ExitSuccess
}

// resolvePeriod picks the report period: the -type flag when given,
// otherwise the finest period due on that date.
func (c *exportCmd) resolvePeriod(on date.Date, available []date.Date) (date.Period, date.Date, bool, error) {
	if c.reportType != "" {
		p, err := date.ParsePeriod(c.reportType)
		if err != nil {
			return date.Daily, date.Date{}, false, err
		}
		comparison, ok := date.ResolveComparison(on, p, available)
		return p, comparison, ok, nil
	}
	due := date.ReportsDue(on, available)
	d := due[0]
	return d.Period, d.Comparison, d.HasComparison, nil
}
