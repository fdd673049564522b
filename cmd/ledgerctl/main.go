// Package main is the ledgerctl operator CLI. It runs the statistics engine
// directly against the configured database, without the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/config"
)

var (
	logLevel    string
	databaseURL string
	timezone    string

	rootCmd = &cobra.Command{
		Use:               "ledgerctl",
		Short:             "Inspect ledger statistics from the command line",
		Long:              `ledgerctl aggregates, compares, filters and sorts ledger transactions using the same engine as the API.`,
		SilenceUsage:      true,
		PersistentPreRunE: initLogging,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "database url (sqlite://path or postgres://...); defaults to DATABASE_URL")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA timezone used for calendar ranges; defaults to STATS_TIMEZONE")

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(seedCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	level := config.LogConfig{Level: logLevel}
	if logLevel == "" {
		level = config.Load().Log
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	})))
	return nil
}
