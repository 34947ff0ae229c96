package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hjpark/healthtrackcli/internal/tracker"
)

var reportRange string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an aggregate exercise report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		now, err := time.Parse("2006-01-02", t.Date())
		if err != nil {
			return err
		}

		switch reportRange {
		case "today":
			reportToday(t)
		case "week":
			start := now.AddDate(0, 0, -int(now.Weekday()))
			reportDaily(t, start, 7, fmt.Sprintf("for week starting %s", start.Format("2006-01-02")))
		case "month":
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			next := start.AddDate(0, 1, 0)
			days := int(next.Sub(start).Hours() / 24)
			reportDaily(t, start, days, fmt.Sprintf("for month %s", start.Format("2006-01")))
		default:
			return fmt.Errorf("unknown range %q (valid: today, week, month)", reportRange)
		}
		return nil
	},
}

func reportToday(t *tracker.Tracker) {
	fmt.Println("for " + t.Date())
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-20s | %s\n", "Exercise", "Reps")
	fmt.Println(strings.Repeat("-", 40))
	for _, ex := range t.Exercises() {
		fmt.Printf("%-20s | %d\n", ex.Name, ex.Count)
	}
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Total reps today : %d\n", t.TodayTotal())
	fmt.Printf("Daily goal progress: %s\n", formatGoalProgress(t.TodayTotal(), t.Config().DailyGoalReps))
}

// reportDaily prints a per-day total table over a date range, counting
// the live record for today and archived records for everything else.
func reportDaily(t *tracker.Tracker, start time.Time, days int, title string) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-15s | %s\n", "Date", "Reps")
	fmt.Println(strings.Repeat("-", 40))
	cfg := t.Config()
	total := 0
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		date := d.Format("2006-01-02")
		reps := 0
		if date == t.Date() {
			reps = t.TodayTotal()
		} else if rec, ok := t.History().FindByDate(date); ok {
			reps = rec.Total()
		}
		total += reps
		fmt.Printf("%-15s | %d\n", date, reps)
	}
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Total reps : %d\n", total)

	activeDays := 0
	for i := 0; i < days; i++ {
		if cfg.IsActiveDay(start.AddDate(0, 0, i)) {
			activeDays++
		}
	}
	if activeDays > 0 {
		fmt.Printf("Goal progress: %s\n", formatGoalProgress(total, activeDays*cfg.DailyGoalReps))
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportRange, "range", "today",
		"report range: today|week|month")
	rootCmd.AddCommand(reportCmd)
}
