package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's counters, bookmarks, checkpoints and fasting state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		fmt.Println(headerStyle.Render("🏃 " + t.Date()))

		fmt.Printf("%-20s | %-6s | %s\n", "Exercise", "Reps", "")
		fmt.Println(strings.Repeat("-", 36))
		for _, ex := range t.Exercises() {
			star := " "
			if t.IsBookmarked(ex.ID) {
				star = accentStyle.Render("★")
			}
			fmt.Printf("%-20s | %-6d | %s\n", ex.Name, ex.Count, star)
		}
		fmt.Println(strings.Repeat("-", 36))
		fmt.Printf("Total today: %s (%s)\n",
			accentStyle.Render(fmt.Sprintf("%d reps", t.TodayTotal())),
			formatGoalProgress(t.TodayTotal(), t.Config().DailyGoalReps))

		h := t.Health()
		fmt.Println()
		fmt.Printf("Wake %s  Sleep %s  Medicine %s / %s (doses: %d)\n",
			timeOrDash(h.WakeUpTime), timeOrDash(h.SleepTime),
			timeOrDash(h.MorningMedicineTime), timeOrDash(h.EveningMedicineTime),
			t.MedicineCount())
		fmt.Printf("Fasting window: %s\n", fastingLine(t.Fasting()))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly total, streak and daily average",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		fmt.Println(titleStyle.Render("📊 Stats"))
		fmt.Printf("This week:     %s\n", accentStyle.Render(fmt.Sprintf("%d reps", t.WeeklyTotal())))
		fmt.Printf("Streak:        %s\n", goodStyle.Render(fmt.Sprintf("%d days", t.Streak())))
		fmt.Printf("Daily average: %d reps\n", t.DailyAverage())
		fmt.Printf("Fasting:       %s\n", fastingLine(t.Fasting()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, statsCmd)
}
