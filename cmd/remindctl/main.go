package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"taskreminder/internal/infrastructure/database/sqlite"
	"taskreminder/internal/pkg/config"
	"taskreminder/internal/pkg/logger"
)

var Version = "dev"

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "remindctl",
		Short:         "Manage tasks and check deadline reminders",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default $TASKS_DB_URL or tasks.db)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	// Add subcommands
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(tasksCmd())

	return rootCmd
}

// env bundles what every subcommand opens.
type env struct {
	cfg *config.Config
	db  *gorm.DB
	log logger.Logger
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.DBURL = path
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logger.NewWithWriter(os.Stderr, verbose || strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"))

	db, err := sqlite.NewDB(cfg.DBURL, cfg.DBLogLevel)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, log: log}, nil
}

func (e *env) Close() {
	if err := sqlite.CloseDB(e.db); err != nil {
		e.log.Error("Failed to close database", err)
	}
}
