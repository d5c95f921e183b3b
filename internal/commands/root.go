package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/config"
	"github.com/almasgali/planhub/internal/storage"
	"github.com/almasgali/planhub/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "planhub",
	Short: "A project management dashboard for the terminal",
	Long: `planhub tracks projects, tasks, team members and logged hours from the
command line. It ships a dashboard, a kanban board, a timeline, analytics
and a team roster, all backed by one local snapshot database.`,
}

// withStore wraps a command function: it loads the config, opens the
// snapshot database and constructs the store before running. The store
// is built per invocation and passed in explicitly.
func withStore(fn func(*store.Store, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			panic(err) // For now, panic on config failure
		}

		db, err := storage.Open(cfg.DatabasePath())
		if err != nil {
			panic(err) // For now, panic on DB init failure
		}
		defer db.Close()

		s, err := store.New(db, logrus.StandardLogger())
		if err != nil {
			panic(err)
		}

		fn(s, cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("planhub %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
