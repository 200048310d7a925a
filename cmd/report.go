package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/agent"
	"github.com/networth-report/networth/date"
	"github.com/networth-report/networth/mailer"
	"github.com/networth-report/networth/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	portfolioID   string
	email         string
	saveOnly      bool
	noAI          bool
	dryRun        bool
	hideAmounts   bool
	retentionDays int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "fetch today's snapshot and send every report due" }
func (*reportCmd) Usage() string {
	return `nwr report [-portfolio-id <id>] [-email <address>] [-save-only] [-no-ai] [-dry-run]

  Fetches a fresh snapshot (or reuses today's stored one), saves it,
  then generates and emails every report due today: always the daily
  one, plus weekly, monthly, quarterly and yearly reports on their
  milestone days. Old snapshots beyond the retention window are
  removed afterwards.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "portfolio-id", "", "Portfolio ID or index (defaults to PORTFOLIO_ID)")
	f.StringVar(&c.email, "email", "", "Recipient address (defaults to REPORT_EMAIL)")
	f.BoolVar(&c.saveOnly, "save-only", false, "Only save the snapshot, no report")
	f.BoolVar(&c.noAI, "no-ai", false, "Skip AI insights generation")
	f.BoolVar(&c.dryRun, "dry-run", false, "Generate reports without sending email")
	f.BoolVar(&c.hideAmounts, "hide-amounts", false, "Mask amounts, keep percentages")
	f.IntVar(&c.retentionDays, "retention-days", 60, "Days of non-milestone snapshots to keep")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	if c.portfolioID != "" {
		cfg.PortfolioID = c.portfolioID
	}
	if c.email != "" {
		cfg.Email = c.email
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
	if c.saveOnly {
		log.Info("Snapshot saved, no report generated")
		return subcommands.ExitSuccess
	}

	if cfg.Email == "" && !c.dryRun {
		fmt.Fprintln(os.Stderr, "Error: no email address, use -email or set REPORT_EMAIL")
		return subcommands.ExitUsageError
	}

	today := date.Today()
	if err := c.run(ctx, store, cfg, current, today); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	deleted, err := store.Cleanup(today, c.retentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if deleted > 0 {
		log.Infof("Removed %d old snapshot(s)", deleted)
	}
	return subcommands.ExitSuccess
}

// run generates and sends every report due for today.
func (c *reportCmd) run(ctx context.Context, store *networth.Store, cfg config, current *networth.Snapshot, today date.Date) error {
	available, err := store.List()
	if err != nil {
		return err
	}

	due := date.ReportsDue(today, available)
	log.Infof("Generating %d report(s)", len(due))

	opts := reportOptions{noAI: c.noAI, dryRun: c.dryRun, hideAmounts: c.hideAmounts}
	for _, d := range due {
		var previous *networth.Snapshot
		if d.HasComparison {
			if previous, err = store.Load(d.Comparison); err != nil {
				return err
			}
		} else {
			log.Warnf("No comparison snapshot for the %s report, current balances only", d.Period)
		}
		if err := generateAndSend(ctx, cfg, current, previous, d.Period, today, opts); err != nil {
			return err
		}
	}
	return nil
}

// reportOptions bundles the flags shared by report-producing commands.
type reportOptions struct {
	noAI        bool
	dryRun      bool
	hideAmounts bool
}

// generateAndSend renders one report and emails it, unless running
// dry. The markdown rendition doubles as the plain-text alternative.
func generateAndSend(ctx context.Context, cfg config, current, previous *networth.Snapshot, p date.Period, on date.Date, opts reportOptions) error {
	r := networth.CalculateDeltas(current, previous)

	var summary string
	if r.HasComparison() && !opts.noAI {
		log.Infof("Generating AI insights for the %s report...", p)
		summary = aiSummary(ctx, r, p, opts.hideAmounts)
	}

	ropts := renderer.Options{
		RecipientName: cfg.Name,
		AISummary:     summary,
		HideAmounts:   opts.hideAmounts,
	}
	html, err := renderer.HTML(r, p, ropts)
	if err != nil {
		return fmt.Errorf("cannot render %s report: %w", p, err)
	}
	log.Infof("Generated %s report", p)

	if opts.dryRun {
		log.Infof("%s report not sent (dry-run)", p)
		return nil
	}

	m := mailer.New(cfg.Email)
	subject := renderer.Subject(p, on)
	if err := m.Send(ctx, subject, renderer.Markdown(r, p, ropts), html); err != nil {
		return fmt.Errorf("cannot send %s report: %w", p, err)
	}
	log.Infof("Sent %s report to %s", p, cfg.Email)
	return nil
}

// aiSummary produces the AI commentary. Failure is not fatal: the
// report simply goes out without insights.
func aiSummary(ctx context.Context, r *networth.ReportData, p date.Period, hide bool) string {
	analyst, err := agent.NewAnalyst(ctx)
	if err != nil {
		log.Warnf("AI summary skipped: %v", err)
		return ""
	}
	summary, err := analyst.Summarize(ctx, r, p, hide)
	if err != nil {
		log.Warnf("AI summary generation failed: %v", err)
		return ""
	}
	return summary
}
