package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config <key=value>",
	Short: "Update settings (dailygoal=120 or activedays=Mon-Fri)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.SplitN(args[0], "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config format, use key=value")
		}

		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		cfg := t.Config()
		switch parts[0] {
		case "dailygoal":
			reps, err := strconv.Atoi(parts[1])
			if err != nil || reps <= 0 {
				return fmt.Errorf("dailygoal must be a positive rep count")
			}
			cfg.DailyGoalReps = reps
		case "activedays":
			days, err := parseActiveDays(parts[1])
			if err != nil {
				return fmt.Errorf("invalid activedays: %w", err)
			}
			cfg.ActiveDays = days
		default:
			return fmt.Errorf("unknown config key %q (valid: dailygoal, activedays)", parts[0])
		}

		if err := t.SetConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("Config updated: %s=%s\n", parts[0], parts[1])
		return nil
	},
}

// parseActiveDays accepts either a range ("Mon-Fri") or a comma list
// ("Mon,Wed,Sat"), returning weekday numbers with Monday as 1.
func parseActiveDays(s string) ([]int, error) {
	dayMap := map[string]int{
		"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
	}

	var days []int
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid range format")
		}
		start, ok1 := dayMap[strings.ToLower(parts[0])]
		end, ok2 := dayMap[strings.ToLower(parts[1])]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid day names")
		}
		for i := start; i <= end; i++ {
			days = append(days, i)
		}
	} else {
		for _, part := range strings.Split(s, ",") {
			day, ok := dayMap[strings.ToLower(strings.TrimSpace(part))]
			if !ok {
				return nil, fmt.Errorf("invalid day name: %s", part)
			}
			days = append(days, day)
		}
	}
	return days, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
