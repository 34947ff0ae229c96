package tracker

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FastingState classifies the fasting-window result.
type FastingState int

const (
	// FastingOngoing means no meal is logged today yet; the fast is
	// open-ended and has no duration.
	FastingOngoing FastingState = iota
	// FastingUnknown means today has a meal but yesterday's log holds
	// no usable time, so no duration can be computed.
	FastingUnknown
	// FastingKnown means Hours carries the computed duration.
	FastingKnown
)

// FastingResult is the outcome of the fasting-window calculation.
// Hours is meaningful only when State is FastingKnown.
type FastingResult struct {
	State FastingState
	Hours float64
}

// Meal-log lines count toward fasting only when they start with an
// HH:MM token; everything else is free text and is skipped.
var mealTimeRe = regexp.MustCompile(`^(\d{2}):(\d{2})`)

func parseMealLine(line string) (int, bool) {
	m := mealTimeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return hours*60 + mins, true
}

// firstMealMinutes returns the time of the first matching line, in
// minutes since midnight.
func firstMealMinutes(text string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if mins, ok := parseMealLine(line); ok {
			return mins, true
		}
	}
	return 0, false
}

// lastMealMinutes returns the time of the last matching line.
func lastMealMinutes(text string) (int, bool) {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if mins, ok := parseMealLine(lines[i]); ok {
			return mins, true
		}
	}
	return 0, false
}

// Fasting derives the fasting window from today's live meal log and
// yesterday's stored one: elapsed time from yesterday's last meal to
// today's first, in hours rounded to one decimal.
func (t *Tracker) Fasting() FastingResult {
	firstToday, ok := firstMealMinutes(t.mealLog)
	if !ok {
		return FastingResult{State: FastingOngoing}
	}
	yesterday := DateString(t.clock.Now().AddDate(0, 0, -1))
	lastYesterday, ok := lastMealMinutes(t.storedMealLog(yesterday))
	if !ok {
		return FastingResult{State: FastingUnknown}
	}
	minutes := firstToday + 24*60 - lastYesterday
	hours := math.Round(float64(minutes)/60*10) / 10
	return FastingResult{State: FastingKnown, Hours: hours}
}

// WeeklyTotal sums the archived exercise counts for the current week
// (starting Sunday) plus today's live counts. Days missing from the
// archive contribute nothing.
func (t *Tracker) WeeklyTotal() int {
	now := t.clock.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	total := 0
	for i := 0; i < 7; i++ {
		date := DateString(weekStart.AddDate(0, 0, i))
		if rec, ok := t.history.FindByDate(date); ok {
			total += rec.Total()
		}
	}
	return total + t.TodayTotal()
}

// DailyAverage is the weekly total averaged over seven days, rounded
// to the nearest rep. Zero when nothing has ever been archived.
func (t *Tracker) DailyAverage() int {
	if len(t.history.All()) == 0 {
		return 0
	}
	return int(math.Round(float64(t.WeeklyTotal()) / 7))
}

// Streak counts consecutive days with exercise, walking backward from
// today. Today joins the streak on its live total; every earlier day
// must be present in the archive under the exact expected date with a
// positive total. The first missing or zero day ends the walk — gaps
// are never skipped.
func (t *Tracker) Streak() int {
	streak := 0
	if t.TodayTotal() > 0 {
		streak = 1
	}
	day := t.clock.Now().AddDate(0, 0, -1)
	for {
		rec, ok := t.history.FindByDate(DateString(day))
		if !ok || rec.Total() == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// StreakOn performs the same backward walk anchored at an arbitrary
// date, for the calendar view. When the anchor is the current date the
// live counts qualify it; otherwise its archived record does.
func (t *Tracker) StreakOn(date string) int {
	anchor, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	streak := 0
	if date == t.date {
		if t.TodayTotal() > 0 {
			streak = 1
		}
	} else if rec, ok := t.history.FindByDate(date); ok && rec.Total() > 0 {
		streak = 1
	}
	day := anchor.AddDate(0, 0, -1)
	for {
		rec, ok := t.history.FindByDate(DateString(day))
		if !ok || rec.Total() == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
