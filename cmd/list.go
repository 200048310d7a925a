package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/networth-report/networth/date"
)

// listCmd lists stored snapshot dates.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all stored snapshot dates" }
func (*listCmd) Usage() string {
	return `nwr list

  Lists the dates of all stored snapshots in chronological order.
  Milestone dates, which survive cleanup forever, are marked.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if len(dates) == 0 {
		fmt.Println("No snapshots found.")
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Snapshots\n\nFound %d snapshot(s).\n\n", len(dates))
	fmt.Fprintln(&b, "| Date | Milestones |")
	fmt.Fprintln(&b, "|------|------------|")
	for _, d := range dates {
		var milestones []string
		for _, p := range date.Classify(d) {
			if p != date.Daily {
				milestones = append(milestones, p.String())
			}
		}
		fmt.Fprintf(&b, "| %s | %s |\n", d, strings.Join(milestones, ", "))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
