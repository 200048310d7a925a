// Package cmd implements the CLI application that fetches portfolio
// snapshots, stores them, and turns them into periodic email reports.
package cmd

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
	"github.com/networth-report/networth/kubera"
	"github.com/sirupsen/logrus"
)

// Commands lists every subcommand for a main package to register.
var Commands = []subcommands.Command{
	subcommands.HelpCommand(),
	subcommands.FlagsCommand(),
	subcommands.CommandsCommand(),
	&reportCmd{},
	&sendCmd{},
	&exportCmd{},
	&showCmd{},
	&listCmd{},
	&queryCmd{},
	&trendsCmd{},
	&cleanupCmd{},
	&scheduleCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is
// ok to use global variables.

var dataDir = flag.String("data-dir", "", "Data directory (default: ~/.networth-report/data)")

var log = logrus.New()

// config is everything the commands read from the environment.
type config struct {
	Email       string // REPORT_EMAIL
	Name        string // REPORT_NAME
	APIKey      string // KUBERA_API_KEY
	APISecret   string // KUBERA_API_SECRET
	PortfolioID string // PORTFOLIO_ID
}

// loadConfig loads .env files (current directory then home, without
// overriding real environment variables), configures logging, and
// returns the environment-driven settings.
func loadConfig() config {
	_ = godotenv.Load()
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	return config{
		Email:       os.Getenv("REPORT_EMAIL"),
		Name:        os.Getenv("REPORT_NAME"),
		APIKey:      os.Getenv("KUBERA_API_KEY"),
		APISecret:   os.Getenv("KUBERA_API_SECRET"),
		PortfolioID: os.Getenv("PORTFOLIO_ID"),
	}
}

// openStore opens the snapshot store under the data directory.
func openStore() (*networth.Store, error) {
	dir := *dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".networth-report", "data")
	}
	return networth.NewStore(dir)
}

// fetchSnapshot pulls a fresh snapshot from the Kubera API.
func fetchSnapshot(cfg config) (*networth.Snapshot, error) {
	client, err := kubera.NewClient(cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return client.FetchSnapshot(cfg.PortfolioID)
}

// todaySnapshot returns today's stored snapshot, or fetches and saves
// a fresh one.
func todaySnapshot(store *networth.Store, cfg config) (*networth.Snapshot, error) {
	snapshot, err := store.Load(date.Today())
	switch {
	case err == nil:
		log.Infof("Using cached snapshot from today (net worth %s)", snapshot.NetWorth)
		return snapshot, nil
	case !errors.Is(err, networth.ErrNoSnapshot):
		return nil, err
	}

	log.Info("Fetching portfolio data...")
	snapshot, err = fetchSnapshot(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("Fetched %s (net worth %s)", snapshot.PortfolioName, snapshot.NetWorth)

	if err := store.Save(snapshot); err != nil {
		return nil, err
	}
	log.Info("Snapshot saved")
	return snapshot, nil
}
