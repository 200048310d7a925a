package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/networth-report/networth/date"
	"github.com/robfig/cron/v3"
)

// scheduleCmd runs the report flow on a cron schedule.
type scheduleCmd struct {
	spec          string
	noAI          bool
	hideAmounts   bool
	retentionDays int
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "run the report flow on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `nwr schedule [-cron <spec>] [-no-ai] [-hide-amounts]

  Long-running mode: fires the full report flow (fetch, save, send
  every due report, cleanup) on the given cron spec, in local time.
  Stops gracefully on SIGINT or SIGTERM.

Usage Examples:
# Every morning at 06:30.
$ nwr schedule -cron "30 6 * * *"
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "cron", "0 6 * * *", "Cron spec for the report run")
	f.BoolVar(&c.noAI, "no-ai", false, "Skip AI insights generation")
	f.BoolVar(&c.hideAmounts, "hide-amounts", false, "Mask amounts, keep percentages")
	f.IntVar(&c.retentionDays, "retention-days", 60, "Days of non-milestone snapshots to keep")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()
	if cfg.Email == "" {
		fmt.Fprintln(os.Stderr, "Error: no email address, set REPORT_EMAIL")
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := cron.New()
	_, err := engine.AddFunc(c.spec, func() { c.runOnce(ctx, cfg) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid cron spec %q: %v\n", c.spec, err)
		return subcommands.ExitUsageError
	}

	log.Infof("Scheduler started, reports fire on %q", c.spec)
	engine.Start()
	<-ctx.Done()

	log.Info("Stopping scheduler...")
	<-engine.Stop().Done()
	log.Info("Scheduler stopped")
	return subcommands.ExitSuccess
}

// runOnce is one scheduled report run. Errors are logged, not fatal:
// the next tick gets another chance.
func (c *scheduleCmd) runOnce(ctx context.Context, cfg config) {
	log.Info("Scheduled report run triggered")

	store, err := openStore()
	if err != nil {
		log.Errorf("Report run failed: %v", err)
		return
	}
	current, err := todaySnapshot(store, cfg)
	if err != nil {
		log.Errorf("Report run failed: %v", err)
		return
	}

	today := date.Today()
	report := &reportCmd{noAI: c.noAI, hideAmounts: c.hideAmounts}
	if err := report.run(ctx, store, cfg, current, today); err != nil {
		log.Errorf("Report run failed: %v", err)
		return
	}

	deleted, err := store.Cleanup(today, c.retentionDays)
	if err != nil {
		log.Errorf("Cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Infof("Removed %d old snapshot(s)", deleted)
	}
	log.Info("Scheduled report run complete")
}
