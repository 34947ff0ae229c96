package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hjpark/healthtrackcli/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1).
			MarginBottom(1)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)
)

func createProgressBar(percentage int, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	filled := (percentage * width) / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return goodStyle.Render(bar)
}

func formatGoalProgress(reps, goalReps int) string {
	if goalReps == 0 {
		return "0%"
	}
	pct := (reps * 100) / goalReps
	return fmt.Sprintf("%d%% of %d reps", pct, goalReps)
}

// confirmPrompt asks a y/N question on the terminal and reports the
// user's decision. Anything but y/yes declines.
func confirmPrompt(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	rd := bufio.NewReader(os.Stdin)
	ans, _ := rd.ReadString('\n')
	ans = strings.TrimSpace(strings.ToLower(ans))
	return ans == "y" || ans == "yes"
}

// timeOrDash renders a checkpoint time, with a dash for "not recorded".
func timeOrDash(t string) string {
	if t == "" {
		return mutedStyle.Render("--:--")
	}
	return t
}

func fastingLine(res tracker.FastingResult) string {
	switch res.State {
	case tracker.FastingOngoing:
		return goodStyle.Render("fasting (no meal yet today)")
	case tracker.FastingUnknown:
		return mutedStyle.Render("unknown (no meal time logged yesterday)")
	default:
		return accentStyle.Render(fmt.Sprintf("%.1f hours", res.Hours))
	}
}
