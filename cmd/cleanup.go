package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/networth-report/networth/date"
)

// cleanupCmd runs retention manually.
type cleanupCmd struct {
	retentionDays int
}

func (*cleanupCmd) Name() string     { return "cleanup" }
func (*cleanupCmd) Synopsis() string { return "remove old snapshots beyond the retention window" }
func (*cleanupCmd) Usage() string {
	return `nwr cleanup [-retention-days <n>]

  Deletes stored snapshots older than the retention window. Today,
  yesterday and milestone dates (week, month, quarter and year starts)
  are always kept, since future reports compare against them.
`
}

func (c *cleanupCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.retentionDays, "retention-days", 60, "Days of non-milestone snapshots to keep")
}

func (c *cleanupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loadConfig()

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	deleted, err := store.Cleanup(date.Today(), c.retentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if deleted == 0 {
		log.Info("No old snapshots to remove")
	} else {
		log.Infof("Removed %d old snapshot(s)", deleted)
	}
	return subcommands.ExitSuccess
}
