package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hjpark/healthtrackcli/internal/tracker"
)

var (
	logDelta     int
	resetAllFlag bool
	assumeYes    bool
)

var logCmd = &cobra.Command{
	Use:   "log <exercise>",
	Short: "Add reps to an exercise counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		id := args[0]
		if err := t.IncrementCount(id, logDelta); err != nil {
			return describeExerciseErr(t, err, id)
		}
		ex := findExercise(t, id)
		fmt.Printf("%s %s: %s\n",
			goodStyle.Render("✓"), ex.Name, accentStyle.Render(fmt.Sprintf("%d reps", ex.Count)))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [exercise]",
	Short: "Reset an exercise counter (or all of them) to zero",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		if resetAllFlag {
			status, err := t.ResetAll(assumeYes)
			if err != nil {
				return err
			}
			if status == tracker.StatusNeedsConfirmation {
				if !confirmPrompt("Reset ALL of today's counters? This cannot be undone.") {
					fmt.Println(mutedStyle.Render("Nothing reset."))
					return nil
				}
				if _, err := t.ResetAll(true); err != nil {
					return err
				}
			}
			fmt.Println(goodStyle.Render("✓ All counters reset."))
			return nil
		}

		if len(args) != 1 {
			return errors.New("name an exercise or pass --all")
		}
		if err := t.ResetCount(args[0]); err != nil {
			return describeExerciseErr(t, err, args[0])
		}
		fmt.Printf("%s %s reset to 0\n", goodStyle.Render("✓"), findExercise(t, args[0]).Name)
		return nil
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <exercise>",
	Short: "Toggle an exercise bookmark (max 5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		added, err := t.ToggleBookmark(args[0])
		if errors.Is(err, tracker.ErrBookmarkLimit) {
			return fmt.Errorf("bookmark limit: you already have 5 bookmarks; remove one first")
		}
		if err != nil {
			return describeExerciseErr(t, err, args[0])
		}
		name := findExercise(t, args[0]).Name
		if added {
			fmt.Printf("%s %s bookmarked\n", accentStyle.Render("★"), name)
		} else {
			fmt.Printf("%s %s bookmark removed\n", mutedStyle.Render("☆"), name)
		}
		return nil
	},
}

func findExercise(t *tracker.Tracker, id string) tracker.Exercise {
	for _, ex := range t.Exercises() {
		if ex.ID == id {
			return ex
		}
	}
	return tracker.Exercise{ID: id, Name: id}
}

func describeExerciseErr(t *tracker.Tracker, err error, id string) error {
	if errors.Is(err, tracker.ErrUnknownExercise) {
		ids := make([]string, 0, 6)
		for _, ex := range t.Exercises() {
			ids = append(ids, ex.ID)
		}
		return fmt.Errorf("unknown exercise %q (valid: %s)", id, strings.Join(ids, ", "))
	}
	return err
}

func init() {
	logCmd.Flags().IntVarP(&logDelta, "count", "n", 1,
		"reps to add (may be negative)")
	resetCmd.Flags().BoolVar(&resetAllFlag, "all", false,
		"reset every exercise counter")
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false,
		"skip the confirmation prompt")
	rootCmd.AddCommand(logCmd, resetCmd, bookmarkCmd)
}
