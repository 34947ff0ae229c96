package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyDate string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived days, or show one day in detail",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		if historyDate != "" {
			rec, ok := t.History().FindByDate(historyDate)
			if !ok {
				return fmt.Errorf("no archived record for %s", historyDate)
			}
			fmt.Println(titleStyle.Render(rec.Date))
			for _, ex := range rec.Exercises {
				fmt.Printf("%-20s | %d\n", ex.Name, ex.Count)
			}
			fmt.Printf("Total: %d reps, streak through this day: %d\n",
				rec.Total(), t.StreakOn(rec.Date))
			fmt.Printf("Wake %s  Sleep %s  Medicine %s / %s\n",
				timeOrDash(rec.Health.WakeUpTime), timeOrDash(rec.Health.SleepTime),
				timeOrDash(rec.Health.MorningMedicineTime), timeOrDash(rec.Health.EveningMedicineTime))
			if rec.MealLog != "" {
				fmt.Println("\nMeals:")
				fmt.Println(rec.MealLog)
			}
			return nil
		}

		records := t.History().SortedDescending()
		if len(records) == 0 {
			fmt.Println(mutedStyle.Render("No archived days yet."))
			return nil
		}
		fmt.Printf("%-12s | %-6s | %s\n", "Date", "Reps", "Streak")
		fmt.Println(strings.Repeat("-", 32))
		for _, rec := range records {
			marker := " "
			if rec.Total() > 0 {
				marker = goodStyle.Render("●")
			}
			fmt.Printf("%-12s | %-6d | %d %s\n", rec.Date, rec.Total(), t.StreakOn(rec.Date), marker)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDate, "date", "",
		"show one archived day (YYYY-MM-DD)")
	rootCmd.AddCommand(historyCmd)
}
