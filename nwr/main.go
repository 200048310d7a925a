package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/networth-report/networth/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: when invoked by the shell's completion hook
	// this prints candidates and exits.
	completion().Complete("nwr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	periods := predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"report":   {Flags: map[string]complete.Predictor{"portfolio-id": predict.Nothing, "email": predict.Nothing}},
			"send":     {Flags: map[string]complete.Predictor{"date": predict.Nothing, "email": predict.Nothing}},
			"export":   {Flags: map[string]complete.Predictor{"date": predict.Nothing, "o": predict.Files("*.html"), "type": periods}},
			"show":     {Flags: map[string]complete.Predictor{"date": predict.Nothing}},
			"list":     {},
			"query":    {},
			"trends":   {Flags: map[string]complete.Predictor{"p": predict.Set{"day", "week", "month", "quarter", "year"}}},
			"cleanup":  {},
			"schedule": {Flags: map[string]complete.Predictor{"cron": predict.Nothing}},
		},
	}
}
