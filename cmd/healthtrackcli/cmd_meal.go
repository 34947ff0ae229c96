package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var mealWithTime bool

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Work with today's meal log",
}

var mealAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Append a meal entry, optionally prefixed with the current time",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		if err := t.AppendMealEntry(strings.Join(args, " "), mealWithTime); err != nil {
			return err
		}
		fmt.Println(goodStyle.Render("✓ Meal logged."))
		fmt.Printf("Fasting window: %s\n", fastingLine(t.Fasting()))
		return nil
	},
}

var mealTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Start a new meal line stamped with the current time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		if err := t.AppendMealEntry("", true); err != nil {
			return err
		}
		fmt.Println(goodStyle.Render("✓ Time stamped. Edit the entry in the dashboard or with 'meal add'."))
		return nil
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's meal log and the fasting window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		fmt.Println(titleStyle.Render("Meals — " + t.Date()))
		if log := t.MealLog(); log == "" {
			fmt.Println(mutedStyle.Render("(no meals logged)"))
		} else {
			fmt.Println(log)
		}
		fmt.Printf("\nFasting window: %s\n", fastingLine(t.Fasting()))
		return nil
	},
}

func init() {
	mealAddCmd.Flags().BoolVarP(&mealWithTime, "time", "t", false,
		"prefix the entry with the current HH:MM")
	mealCmd.AddCommand(mealAddCmd, mealTimeCmd, mealShowCmd)
	rootCmd.AddCommand(mealCmd)
}
