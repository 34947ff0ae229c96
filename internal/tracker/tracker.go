// Package tracker holds the daily habit/health engine: one mutable
// record for the current calendar date, write-through persistence, a
// day-rollover transition, and the derived fasting/weekly/streak
// metrics. It owns no rendering; the cmd layer calls in and re-renders
// from the getters.
package tracker

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/hjpark/healthtrackcli/internal/store"
)

const (
	maxBookmarks     = 5
	maxMedicineDoses = 2
)

var (
	// ErrUnknownExercise reports an id outside the fixed catalog.
	ErrUnknownExercise = errors.New("unknown exercise id")
	// ErrBookmarkLimit reports an add beyond the bookmark cap.
	ErrBookmarkLimit = errors.New("bookmark limit reached")
)

// Status tells the caller whether an operation applied or is waiting on
// an explicit user confirmation. Declining is simply never re-calling
// with confirmed=true; state stays untouched either way.
type Status int

const (
	StatusApplied Status = iota
	StatusNeedsConfirmation
)

// Checkpoint identifies one of the four daily health time slots.
type Checkpoint int

const (
	CheckpointWakeUp Checkpoint = iota
	CheckpointSleep
	CheckpointMorningMedicine
	CheckpointEveningMedicine
)

func (c Checkpoint) isMedicine() bool {
	return c == CheckpointMorningMedicine || c == CheckpointEveningMedicine
}

// Label returns the display name of the checkpoint.
func (c Checkpoint) Label() string {
	switch c {
	case CheckpointWakeUp:
		return "wake up"
	case CheckpointSleep:
		return "sleep"
	case CheckpointMorningMedicine:
		return "morning medicine"
	case CheckpointEveningMedicine:
		return "evening medicine"
	}
	return "unknown"
}

// Tracker is the application state for the current date plus injected
// store and clock. All mutating operations persist before returning so
// the stored record always matches memory.
type Tracker struct {
	st      store.Store
	clock   Clock
	logger  *slog.Logger
	history *History

	date          string
	exercises     []Exercise
	bookmarks     []string
	medicineCount int
	mealLog       string
	health        HealthData
	config        Config
}

// New builds a Tracker and loads any state already stored for its
// date. It anchors at the stored current-date marker when one exists,
// not at the clock: a day that ended between process runs stays the
// live date until the next CheckRollover archives it.
func New(st store.Store, clock Clock, logger *slog.Logger) *Tracker {
	t := &Tracker{
		st:      st,
		clock:   clock,
		logger:  logger,
		history: NewHistory(st, logger),
		date:    DateString(clock.Now()),
	}
	if stored, ok := st.Get(currentDateKey); ok && stored != "" {
		t.date = stored
	} else if err := st.Set(currentDateKey, t.date); err != nil && logger != nil {
		logger.Warn("could not persist current date marker", slog.String("error", err.Error()))
	}
	t.exercises = DefaultCatalog()
	t.loadDay()
	t.loadMealLog()
	t.loadHealth()
	t.config = t.loadConfig()
	return t
}

// Date returns the calendar date the live record belongs to.
func (t *Tracker) Date() string { return t.date }

// Clock returns the injected time source, for callers that render
// times of their own (the dashboard's meal-stamp key).
func (t *Tracker) Clock() Clock { return t.clock }

// History exposes the archive index for the calendar/report views.
func (t *Tracker) History() *History { return t.history }

// Exercises returns a snapshot of the catalog with current counts.
func (t *Tracker) Exercises() []Exercise {
	out := make([]Exercise, len(t.exercises))
	copy(out, t.exercises)
	return out
}

// Bookmarks returns the bookmarked ids in insertion order.
func (t *Tracker) Bookmarks() []string {
	out := make([]string, len(t.bookmarks))
	copy(out, t.bookmarks)
	return out
}

// IsBookmarked reports bookmark membership for an exercise id.
func (t *Tracker) IsBookmarked(id string) bool {
	for _, b := range t.bookmarks {
		if b == id {
			return true
		}
	}
	return false
}

// MealLog returns the free-text meal log for the current date.
func (t *Tracker) MealLog() string { return t.mealLog }

// Health returns the checkpoint times for the current date.
func (t *Tracker) Health() HealthData { return t.health }

// MedicineCount returns how many medicine doses were recorded today.
func (t *Tracker) MedicineCount() int { return t.medicineCount }

// TodayTotal sums the live exercise counts.
func (t *Tracker) TodayTotal() int {
	total := 0
	for _, ex := range t.exercises {
		total += ex.Count
	}
	return total
}

func (t *Tracker) exerciseIndex(id string) int {
	for i := range t.exercises {
		if t.exercises[i].ID == id {
			return i
		}
	}
	return -1
}

// IncrementCount adds delta to one counter. Delta may be negative and
// counts are not clamped; the record is persisted before returning.
func (t *Tracker) IncrementCount(id string, delta int) error {
	i := t.exerciseIndex(id)
	if i < 0 {
		return ErrUnknownExercise
	}
	t.exercises[i].Count += delta
	if err := t.persistDay(); err != nil {
		t.exercises[i].Count -= delta
		return err
	}
	return nil
}

// ResetCount zeroes one counter and persists.
func (t *Tracker) ResetCount(id string) error {
	i := t.exerciseIndex(id)
	if i < 0 {
		return ErrUnknownExercise
	}
	old := t.exercises[i].Count
	t.exercises[i].Count = 0
	if err := t.persistDay(); err != nil {
		t.exercises[i].Count = old
		return err
	}
	return nil
}

// ResetAll zeroes every counter in one persisted write. It is
// irreversible, so the caller must pass confirmed=true; otherwise the
// operation declines and reports StatusNeedsConfirmation.
func (t *Tracker) ResetAll(confirmed bool) (Status, error) {
	if !confirmed {
		return StatusNeedsConfirmation, nil
	}
	old := t.Exercises()
	for i := range t.exercises {
		t.exercises[i].Count = 0
	}
	if err := t.persistDay(); err != nil {
		t.exercises = old
		return StatusApplied, err
	}
	return StatusApplied, nil
}

// ToggleBookmark adds the id when absent (rejecting the add with
// ErrBookmarkLimit once five are set) and removes it when present.
// Returns whether the id is bookmarked after the call.
func (t *Tracker) ToggleBookmark(id string) (bool, error) {
	if t.exerciseIndex(id) < 0 {
		return false, ErrUnknownExercise
	}
	old := t.Bookmarks()
	if t.IsBookmarked(id) {
		kept := t.bookmarks[:0]
		for _, b := range t.bookmarks {
			if b != id {
				kept = append(kept, b)
			}
		}
		t.bookmarks = kept
	} else {
		if len(t.bookmarks) >= maxBookmarks {
			return false, ErrBookmarkLimit
		}
		t.bookmarks = append(t.bookmarks, id)
	}
	if err := t.persistDay(); err != nil {
		t.bookmarks = old
		return t.IsBookmarked(id), err
	}
	return t.IsBookmarked(id), nil
}

// InsertMealEntry splices text into the meal log at byte offset pos
// (clamped to the text bounds). With timestamp=true the text is
// prefixed with the clock's "HH:MM " and, when pos is not at the start
// of a line, a leading newline. Returns the new log text and the
// cursor position just past the insertion.
func (t *Tracker) InsertMealEntry(pos int, text string, timestamp bool) (string, int, error) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.mealLog) {
		pos = len(t.mealLog)
	}
	before, after := t.mealLog[:pos], t.mealLog[pos:]

	insert := text
	if timestamp {
		insert = t.clock.Now().Format(clockLayout) + " " + text
		if before != "" && !strings.HasSuffix(before, "\n") {
			insert = "\n" + insert
		}
	}

	old := t.mealLog
	t.mealLog = before + insert + after
	if err := t.persistMealLog(); err != nil {
		t.mealLog = old
		return old, pos, err
	}
	return t.mealLog, pos + len(insert), nil
}

// AppendMealEntry adds text as a new line at the end of the meal log,
// optionally timestamp-prefixed.
func (t *Tracker) AppendMealEntry(text string, timestamp bool) error {
	if !timestamp && t.mealLog != "" && !strings.HasSuffix(t.mealLog, "\n") {
		text = "\n" + text
	}
	_, _, err := t.InsertMealEntry(len(t.mealLog), text, timestamp)
	return err
}

// SetMealLog replaces the whole meal log and persists it. This is the
// save path for the dashboard's text editor.
func (t *Tracker) SetMealLog(text string) error {
	old := t.mealLog
	t.mealLog = text
	if err := t.persistMealLog(); err != nil {
		t.mealLog = old
		return err
	}
	return nil
}

func (t *Tracker) healthSlot(kind Checkpoint) *string {
	switch kind {
	case CheckpointWakeUp:
		return &t.health.WakeUpTime
	case CheckpointSleep:
		return &t.health.SleepTime
	case CheckpointMorningMedicine:
		return &t.health.MorningMedicineTime
	case CheckpointEveningMedicine:
		return &t.health.EveningMedicineTime
	}
	return nil
}

// RecordCheckpoint stamps the current "HH:MM" into a health slot.
// Wake/sleep overwrite unconditionally. A medicine slot that already
// holds a time declines with StatusNeedsConfirmation until the caller
// retries with confirmed=true; the first dose of each medicine slot
// also bumps the daily dose counter (capped at two).
func (t *Tracker) RecordCheckpoint(kind Checkpoint, confirmed bool) (Status, error) {
	slot := t.healthSlot(kind)
	if slot == nil {
		return StatusApplied, errors.New("unknown checkpoint")
	}
	if kind.isMedicine() && *slot != "" && !confirmed {
		return StatusNeedsConfirmation, nil
	}

	oldTime, oldCount := *slot, t.medicineCount
	*slot = t.clock.Now().Format(clockLayout)
	if kind.isMedicine() && oldTime == "" && t.medicineCount < maxMedicineDoses {
		t.medicineCount++
	}
	if err := t.persistHealth(); err != nil {
		*slot, t.medicineCount = oldTime, oldCount
		return StatusApplied, err
	}
	if t.medicineCount != oldCount {
		if err := t.persistDay(); err != nil {
			*slot, t.medicineCount = oldTime, oldCount
			if perr := t.persistHealth(); perr != nil && t.logger != nil {
				t.logger.Warn("could not roll back health checkpoint", slog.String("error", perr.Error()))
			}
			return StatusApplied, err
		}
	}
	return StatusApplied, nil
}

// Snapshot captures the live record as an archival DailyRecord.
func (t *Tracker) Snapshot() DailyRecord {
	return DailyRecord{
		Date:      t.date,
		Exercises: t.Exercises(),
		MealLog:   t.mealLog,
		Health:    t.health,
	}
}

// SaveDay archives the live record into the history index, replacing
// any existing entry for the same date.
func (t *Tracker) SaveDay() error {
	return t.history.Upsert(t.Snapshot())
}

// CheckRollover compares the clock's date against the live record's
// date. On a mismatch it archives the outgoing day, resets the live
// record for the new date, and defensively reloads the new date's
// per-date keys. A call with no actual date change is a no-op, so the
// periodic check can fire as often as it likes.
func (t *Tracker) CheckRollover() (bool, error) {
	today := DateString(t.clock.Now())
	if today == t.date {
		return false, nil
	}
	if err := t.SaveDay(); err != nil {
		return false, err
	}
	if t.logger != nil {
		t.logger.Info("date rollover", slog.String("from", t.date), slog.String("to", today))
	}
	t.date = today
	t.exercises = DefaultCatalog()
	t.bookmarks = nil
	t.medicineCount = 0
	t.mealLog = ""
	t.health = HealthData{}
	if err := t.st.Set(currentDateKey, today); err != nil {
		return true, err
	}
	if err := t.persistDay(); err != nil {
		return true, err
	}
	t.loadMealLog()
	t.loadHealth()
	return true, nil
}
