package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hjpark/healthtrackcli/internal/store"
	"github.com/hjpark/healthtrackcli/internal/tracker"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "healthtrackcli",
	Short: "Personal daily exercise, meal and health tracker",
	Long: `Tracks exercise reps, meal times and daily health checkpoints,
one record per calendar day, stored in a local embedded database.

Examples:
  healthtrackcli log squat -n 5      # add 5 squats
  healthtrackcli meal add oatmeal -t # log a meal with the current time
  healthtrackcli checkin wake        # stamp the wake-up time
  healthtrackcli stats               # weekly total, streak, fasting
  healthtrackcli dashboard           # interactive full-screen view`,
	SilenceUsage: true,
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db",
		filepath.Join(home, ".healthtrackcli"), "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openTracker opens the store, builds the tracker and runs the
// startup rollover check. The returned func closes the store.
func openTracker() (*tracker.Tracker, func(), error) {
	logger := newLogger()
	kv, err := store.Open(dbPath, logger)
	if err != nil {
		return nil, nil, err
	}
	t := tracker.New(kv, tracker.SystemClock(), logger)
	if _, err := t.CheckRollover(); err != nil {
		kv.Close()
		return nil, nil, fmt.Errorf("rollover check: %w", err)
	}
	return t, func() { _ = kv.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
