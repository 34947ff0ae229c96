package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hjpark/healthtrackcli/internal/tracker"
)

type dashboardTab int

const (
	tabExercises dashboardTab = iota
	tabMeals
	tabHealth
	tabHistory
)

var tabNames = []string{"Exercises", "Meals", "Health", "History"}

// pendingConfirm marks an operation waiting on a y/n keypress.
type pendingConfirm int

const (
	confirmNone pendingConfirm = iota
	confirmResetAll
	confirmMorningMed
	confirmEveningMed
)

type tickMsg time.Time

// The rollover check must run at least once per minute while the
// dashboard is open.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262")).
				Padding(0, 2)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7DC6F"))
)

type dashboardModel struct {
	t *tracker.Tracker

	tab         dashboardTab
	cursor      int
	histCursor  int
	mealInput   textarea.Model
	editingMeal bool
	pending     pendingConfirm
	notice      string
	width       int
	height      int
}

func newDashboardModel(t *tracker.Tracker) dashboardModel {
	ta := textarea.New()
	ta.Placeholder = "08:15 oatmeal..."
	ta.SetValue(t.MealLog())
	ta.CharLimit = 0
	return dashboardModel{t: t, mealInput: ta}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mealInput.SetWidth(m.width - 8)
		m.mealInput.SetHeight(m.height - 12)
	case tickMsg:
		rolled, err := m.t.CheckRollover()
		if err != nil {
			m.notice = warnStyle.Render("rollover failed: " + err.Error())
		} else if rolled {
			m.mealInput.SetValue(m.t.MealLog())
			m.notice = "New day started: " + m.t.Date()
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending confirmation swallows every key until decided.
	if m.pending != confirmNone {
		return m.resolveConfirm(msg.String()), nil
	}

	if m.editingMeal {
		return m.handleMealKey(msg)
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % dashboardTab(len(tabNames))
		m.notice = ""
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + dashboardTab(len(tabNames)) - 1) % dashboardTab(len(tabNames))
		m.notice = ""
		return m, nil
	case "1", "2", "3", "4":
		m.tab = dashboardTab(int(msg.String()[0] - '1'))
		m.notice = ""
		return m, nil
	}

	switch m.tab {
	case tabExercises:
		return m.handleExerciseKey(msg.String()), nil
	case tabMeals:
		if msg.String() == "e" || msg.String() == "enter" {
			m.editingMeal = true
			m.mealInput.SetValue(m.t.MealLog())
			return m, m.mealInput.Focus()
		}
	case tabHealth:
		return m.handleHealthKey(msg.String()), nil
	case tabHistory:
		records := m.t.History().SortedDescending()
		switch msg.String() {
		case "up", "k":
			if m.histCursor > 0 {
				m.histCursor--
			}
		case "down", "j":
			if m.histCursor < len(records)-1 {
				m.histCursor++
			}
		}
	}
	return m, nil
}

func (m dashboardModel) handleExerciseKey(key string) dashboardModel {
	exs := m.t.Exercises()
	id := exs[m.cursor].ID
	m.notice = ""

	report := func(err error) {
		if err != nil {
			m.notice = warnStyle.Render(err.Error())
		}
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(exs)-1 {
			m.cursor++
		}
	case "+", "=", "l":
		report(m.t.IncrementCount(id, 1))
	case "5":
		report(m.t.IncrementCount(id, 5))
	case "-", "h":
		report(m.t.IncrementCount(id, -1))
	case "r":
		report(m.t.ResetCount(id))
	case "R":
		m.pending = confirmResetAll
	case "b":
		_, err := m.t.ToggleBookmark(id)
		if err == tracker.ErrBookmarkLimit {
			m.notice = warnStyle.Render("bookmark limit reached (max 5)")
		} else {
			report(err)
		}
	}
	return m
}

func (m dashboardModel) handleHealthKey(key string) dashboardModel {
	m.notice = ""
	record := func(kind tracker.Checkpoint, pending pendingConfirm) {
		status, err := m.t.RecordCheckpoint(kind, false)
		if err != nil {
			m.notice = warnStyle.Render(err.Error())
			return
		}
		if status == tracker.StatusNeedsConfirmation {
			m.pending = pending
			return
		}
		m.notice = goodStyle.Render(kind.Label() + " recorded")
	}

	switch key {
	case "w":
		record(tracker.CheckpointWakeUp, confirmNone)
	case "s":
		record(tracker.CheckpointSleep, confirmNone)
	case "m":
		record(tracker.CheckpointMorningMedicine, confirmMorningMed)
	case "e":
		record(tracker.CheckpointEveningMedicine, confirmEveningMed)
	}
	return m
}

func (m dashboardModel) handleMealKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editingMeal = false
		m.mealInput.Blur()
		if err := m.t.SetMealLog(m.mealInput.Value()); err != nil {
			m.notice = warnStyle.Render("save failed: " + err.Error())
		} else {
			m.notice = goodStyle.Render("meal log saved")
		}
		return m, nil
	case "ctrl+t":
		stamp := m.t.Clock().Now().Format("15:04") + " "
		if info := m.mealInput.LineInfo(); info.ColumnOffset > 0 {
			stamp = "\n" + stamp
		}
		m.mealInput.InsertString(stamp)
		return m, nil
	}
	var cmd tea.Cmd
	m.mealInput, cmd = m.mealInput.Update(msg)
	return m, cmd
}

func (m dashboardModel) resolveConfirm(key string) dashboardModel {
	pending := m.pending
	m.pending = confirmNone
	if key != "y" && key != "Y" {
		m.notice = mutedStyle.Render("kept as is")
		return m
	}
	var err error
	switch pending {
	case confirmResetAll:
		_, err = m.t.ResetAll(true)
		m.notice = goodStyle.Render("all counters reset")
	case confirmMorningMed:
		_, err = m.t.RecordCheckpoint(tracker.CheckpointMorningMedicine, true)
		m.notice = goodStyle.Render("morning medicine re-recorded")
	case confirmEveningMed:
		_, err = m.t.RecordCheckpoint(tracker.CheckpointEveningMedicine, true)
		m.notice = goodStyle.Render("evening medicine re-recorded")
	}
	if err != nil {
		m.notice = warnStyle.Render(err.Error())
	}
	return m
}

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("🏃 Health Tracker — %s", m.t.Date()))

	var tabs []string
	for i, name := range tabNames {
		if dashboardTab(i) == m.tab {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(name))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var content string
	switch m.tab {
	case tabExercises:
		content = m.viewExercises()
	case tabMeals:
		content = m.viewMeals()
	case tabHealth:
		content = m.viewHealth()
	case tabHistory:
		content = m.viewHistory()
	}

	footer := m.notice
	if m.pending != confirmNone {
		prompt := "Reset ALL counters?"
		if m.pending != confirmResetAll {
			prompt = "Medicine time already recorded. Overwrite?"
		}
		footer = warnStyle.Render(prompt + " (y/n)")
	}
	if footer == "" {
		footer = mutedStyle.Render(m.helpLine())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, content, footer)
}

func (m dashboardModel) helpLine() string {
	switch {
	case m.editingMeal:
		return "ctrl+t insert time • esc save and leave editor"
	case m.tab == tabExercises:
		return "↑/↓ select • + add 1 • 5 add 5 • - subtract • r reset • R reset all • b bookmark • tab switch • q quit"
	case m.tab == tabMeals:
		return "e edit meal log • tab switch • q quit"
	case m.tab == tabHealth:
		return "w wake • s sleep • m morning med • e evening med • tab switch • q quit"
	default:
		return "↑/↓ select day • tab switch • q quit"
	}
}

func (m dashboardModel) viewExercises() string {
	var b strings.Builder
	for i, ex := range m.t.Exercises() {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		star := " "
		if m.t.IsBookmarked(ex.ID) {
			star = accentStyle.Render("★")
		}
		fmt.Fprintf(&b, "%s%-20s %s %4d reps\n", marker, ex.Name, star, ex.Count)
	}

	goal := m.t.Config().DailyGoalReps
	pct := 0
	if goal > 0 {
		pct = (m.t.TodayTotal() * 100) / goal
	}
	barWidth := m.width - 20
	if barWidth < 20 {
		barWidth = 20
	}
	fmt.Fprintf(&b, "\nToday: %d reps\n%s %d%%",
		m.t.TodayTotal(), createProgressBar(pct, barWidth), pct)

	return boxStyle.Width(m.width - 4).Render(b.String())
}

func (m dashboardModel) viewMeals() string {
	var b strings.Builder
	if m.editingMeal {
		b.WriteString(m.mealInput.View())
	} else if log := m.t.MealLog(); log != "" {
		b.WriteString(log)
	} else {
		b.WriteString(mutedStyle.Render("(no meals logged — press e to edit)"))
	}
	fmt.Fprintf(&b, "\n\nFasting window: %s", fastingLine(m.t.Fasting()))
	return boxStyle.Width(m.width - 4).Render(b.String())
}

func (m dashboardModel) viewHealth() string {
	h := m.t.Health()
	var b strings.Builder
	fmt.Fprintf(&b, "🌅 Wake up          %s\n", timeOrDash(h.WakeUpTime))
	fmt.Fprintf(&b, "🌙 Sleep            %s\n", timeOrDash(h.SleepTime))
	fmt.Fprintf(&b, "💊 Morning medicine %s\n", timeOrDash(h.MorningMedicineTime))
	fmt.Fprintf(&b, "💊 Evening medicine %s\n", timeOrDash(h.EveningMedicineTime))
	fmt.Fprintf(&b, "\nDoses today: %d of 2", m.t.MedicineCount())
	return boxStyle.Width(m.width - 4).Render(b.String())
}

func (m dashboardModel) viewHistory() string {
	records := m.t.History().SortedDescending()

	var list strings.Builder
	if len(records) == 0 {
		list.WriteString(mutedStyle.Render("No archived days yet."))
	}
	maxRows := m.height - 14
	if maxRows < 3 {
		maxRows = 3
	}
	for i, rec := range records {
		if i >= maxRows {
			list.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(records)-maxRows)))
			break
		}
		marker := "  "
		if i == m.histCursor {
			marker = cursorStyle.Render("> ")
		}
		dot := " "
		if rec.Total() > 0 {
			dot = goodStyle.Render("●")
		}
		fmt.Fprintf(&list, "%s%s %s %4d reps  streak %d\n",
			marker, rec.Date, dot, rec.Total(), m.t.StreakOn(rec.Date))
	}

	stats := fmt.Sprintf("📊 THIS WEEK\n\nTotal: %d reps\nStreak: %d days\nDaily average: %d reps",
		m.t.WeeklyTotal(), m.t.Streak(), m.t.DailyAverage())

	half := m.width/2 - 3
	left := boxStyle.Width(half).Render(list.String())
	right := boxStyle.Width(half).Render(stats)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive full-screen dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		p := tea.NewProgram(newDashboardModel(t), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
