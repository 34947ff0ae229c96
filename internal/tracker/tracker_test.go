package tracker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjpark/healthtrackcli/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T, clock Clock) (*Tracker, store.Store) {
	t.Helper()
	kv, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return New(kv, clock, nil), kv
}

func storedCounts(t *testing.T, st store.Store, date string) map[string]int {
	t.Helper()
	raw, ok := st.Get(dayKey(date))
	require.True(t, ok, "day key should exist")
	var p dayPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	counts := make(map[string]int)
	for _, ex := range p.Exercises {
		counts[ex.ID] = ex.Count
	}
	return counts
}

func TestIncrementWritesThrough(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, kv := newTestTracker(t, clock)

	require.NoError(t, tr.IncrementCount("squat", 5))
	require.NoError(t, tr.IncrementCount("squat", -1))
	require.NoError(t, tr.IncrementCount("pushup", 1))

	counts := storedCounts(t, kv, "2025-03-12")
	for _, ex := range tr.Exercises() {
		assert.Equal(t, ex.Count, counts[ex.ID], "stored count for %s", ex.ID)
	}
	assert.Equal(t, 4, counts["squat"])
	assert.Equal(t, 5, tr.TodayTotal())
}

func TestCountsMayGoNegative(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, _ := newTestTracker(t, clock)

	require.NoError(t, tr.IncrementCount("squat", -3))
	assert.Equal(t, -3, tr.Exercises()[0].Count)
}

func TestIncrementUnknownExercise(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, _ := newTestTracker(t, clock)

	assert.ErrorIs(t, tr.IncrementCount("jumping-jack", 1), ErrUnknownExercise)
}

func TestResetCount(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, kv := newTestTracker(t, clock)

	require.NoError(t, tr.IncrementCount("deadlift", 10))
	require.NoError(t, tr.ResetCount("deadlift"))

	assert.Equal(t, 0, storedCounts(t, kv, "2025-03-12")["deadlift"])
}

func TestResetAllNeedsConfirmation(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, _ := newTestTracker(t, clock)

	require.NoError(t, tr.IncrementCount("squat", 5))

	status, err := tr.ResetAll(false)
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsConfirmation, status)
	assert.Equal(t, 5, tr.TodayTotal(), "declined reset must not change state")

	status, err = tr.ResetAll(true)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, 0, tr.TodayTotal())
}

func TestBookmarkCap(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, _ := newTestTracker(t, clock)

	ids := []string{"squat", "bicep-curl", "tricep-extension", "inverted-row", "pushup"}
	for _, id := range ids {
		added, err := tr.ToggleBookmark(id)
		require.NoError(t, err)
		assert.True(t, added)
	}

	_, err := tr.ToggleBookmark("deadlift")
	assert.ErrorIs(t, err, ErrBookmarkLimit)
	assert.Equal(t, ids, tr.Bookmarks(), "rejected add must leave membership unchanged")

	// Removing one makes room again.
	added, err := tr.ToggleBookmark("squat")
	require.NoError(t, err)
	assert.False(t, added)
	added, err = tr.ToggleBookmark("deadlift")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestBookmarksSurviveReload(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, kv := newTestTracker(t, clock)

	_, err := tr.ToggleBookmark("pushup")
	require.NoError(t, err)

	reloaded := New(kv, clock, nil)
	assert.True(t, reloaded.IsBookmarked("pushup"))
}

func TestInsertMealEntryTimestamp(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 8, 15)}
	tr, _ := newTestTracker(t, clock)

	text, pos, err := tr.InsertMealEntry(0, "oatmeal", true)
	require.NoError(t, err)
	assert.Equal(t, "08:15 oatmeal", text)
	assert.Equal(t, len("08:15 oatmeal"), pos)

	// Inserting mid-line prepends a newline before the stamp.
	clock.now = at(2025, 3, 12, 12, 40)
	text, _, err = tr.InsertMealEntry(len(text), "salad", true)
	require.NoError(t, err)
	assert.Equal(t, "08:15 oatmeal\n12:40 salad", text)
}

func TestInsertMealEntryClampsPosition(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 8, 15)}
	tr, _ := newTestTracker(t, clock)

	require.NoError(t, tr.SetMealLog("line\n"))
	text, _, err := tr.InsertMealEntry(999, "toast", false)
	require.NoError(t, err)
	assert.Equal(t, "line\ntoast", text)
}

func TestMealLogLegacyKeyFallback(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	kv, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	require.NoError(t, kv.Set("mealDiary_2025-03-12", "07:00 rice"))

	tr := New(kv, clock, nil)
	assert.Equal(t, "07:00 rice", tr.MealLog())
}

func TestRecordCheckpointWakeOverwrites(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 7, 5)}
	tr, _ := newTestTracker(t, clock)

	status, err := tr.RecordCheckpoint(CheckpointWakeUp, false)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, "07:05", tr.Health().WakeUpTime)

	clock.now = at(2025, 3, 12, 7, 30)
	status, err = tr.RecordCheckpoint(CheckpointWakeUp, false)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, "07:30", tr.Health().WakeUpTime, "wake time overwrites without confirmation")
}

func TestRecordCheckpointMedicineConfirmFlow(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 8, 0)}
	tr, _ := newTestTracker(t, clock)

	status, err := tr.RecordCheckpoint(CheckpointMorningMedicine, false)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, "08:00", tr.Health().MorningMedicineTime)
	assert.Equal(t, 1, tr.MedicineCount())

	// Second attempt without confirmation declines and changes nothing.
	clock.now = at(2025, 3, 12, 8, 45)
	status, err = tr.RecordCheckpoint(CheckpointMorningMedicine, false)
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsConfirmation, status)
	assert.Equal(t, "08:00", tr.Health().MorningMedicineTime)
	assert.Equal(t, 1, tr.MedicineCount())

	// Confirmed overwrite replaces the time but is not a new dose.
	status, err = tr.RecordCheckpoint(CheckpointMorningMedicine, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, "08:45", tr.Health().MorningMedicineTime)
	assert.Equal(t, 1, tr.MedicineCount())

	clock.now = at(2025, 3, 12, 20, 10)
	_, err = tr.RecordCheckpoint(CheckpointEveningMedicine, false)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.MedicineCount())
}

// failingStore fails writes to chosen keys, for exercising the
// revert-on-persist-error paths.
type failingStore struct {
	store.Store
	failKeys map[string]bool
}

func (s *failingStore) Set(key, value string) error {
	if s.failKeys[key] {
		return errors.New("disk full")
	}
	return s.Store.Set(key, value)
}

func TestMedicineDoseRevertedWhenDayWriteFails(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 8, 0)}
	kv, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	fs := &failingStore{Store: kv, failKeys: map[string]bool{}}
	tr := New(fs, clock, nil)

	fs.failKeys[dayKey("2025-03-12")] = true
	_, err = tr.RecordCheckpoint(CheckpointMorningMedicine, false)
	require.Error(t, err)
	assert.Equal(t, 0, tr.MedicineCount(), "failed write must not leave a counted dose")
	assert.Equal(t, "", tr.Health().MorningMedicineTime)

	// Once the write succeeds the dose counts normally.
	fs.failKeys[dayKey("2025-03-12")] = false
	status, err := tr.RecordCheckpoint(CheckpointMorningMedicine, false)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, status)
	assert.Equal(t, 1, tr.MedicineCount())
	assert.Equal(t, "08:00", tr.Health().MorningMedicineTime)
}

func TestHealthSurvivesReload(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 7, 5)}
	tr, kv := newTestTracker(t, clock)

	_, err := tr.RecordCheckpoint(CheckpointSleep, false)
	require.NoError(t, err)

	reloaded := New(kv, clock, nil)
	assert.Equal(t, "07:05", reloaded.Health().SleepTime)
}

func TestRolloverArchivesAndResets(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 23, 50)}
	tr, _ := newTestTracker(t, clock)

	require.NoError(t, tr.IncrementCount("squat", 7))
	require.NoError(t, tr.SetMealLog("20:00 dinner"))

	clock.now = at(2025, 3, 13, 0, 1)
	rolled, err := tr.CheckRollover()
	require.NoError(t, err)
	assert.True(t, rolled)

	assert.Equal(t, "2025-03-13", tr.Date())
	assert.Equal(t, 0, tr.TodayTotal())
	assert.Equal(t, "", tr.MealLog())

	archived, ok := tr.History().FindByDate("2025-03-12")
	require.True(t, ok)
	assert.Equal(t, 7, archived.Total())
	assert.Equal(t, "20:00 dinner", archived.MealLog)
}

func TestRolloverIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 23, 50)}
	tr, _ := newTestTracker(t, clock)
	require.NoError(t, tr.IncrementCount("squat", 3))

	clock.now = at(2025, 3, 13, 0, 1)
	rolled, err := tr.CheckRollover()
	require.NoError(t, err)
	require.True(t, rolled)

	require.NoError(t, tr.IncrementCount("pushup", 2))

	rolled, err = tr.CheckRollover()
	require.NoError(t, err)
	assert.False(t, rolled, "no date change means no-op")
	assert.Equal(t, 2, tr.TodayTotal(), "second check must not reset counts")
	assert.Len(t, tr.History().All(), 1, "no second archive entry")
}

func TestRolloverArchivesDayFinishedBetweenRuns(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	kv, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	tr := New(kv, clock, nil)
	require.NoError(t, tr.IncrementCount("squat", 7))
	require.NoError(t, tr.SetMealLog("20:00 dinner"))

	// The process exits and a new one starts the next morning over
	// the same store; the startup check must archive yesterday.
	tr2 := New(kv, &fakeClock{now: at(2025, 3, 13, 8, 0)}, nil)
	assert.Equal(t, "2025-03-12", tr2.Date(), "fresh tracker anchors at the stored date")

	rolled, err := tr2.CheckRollover()
	require.NoError(t, err)
	assert.True(t, rolled)

	archived, ok := tr2.History().FindByDate("2025-03-12")
	require.True(t, ok, "the finished day must be archived on the next start")
	assert.Equal(t, 7, archived.Total())
	assert.Equal(t, "20:00 dinner", archived.MealLog)

	assert.Equal(t, "2025-03-13", tr2.Date())
	assert.Equal(t, 0, tr2.TodayTotal())
	assert.Equal(t, 1, tr2.Streak())

	// A third start on the same day changes nothing further.
	tr3 := New(kv, &fakeClock{now: at(2025, 3, 13, 9, 0)}, nil)
	rolled, err = tr3.CheckRollover()
	require.NoError(t, err)
	assert.False(t, rolled)
	assert.Len(t, tr3.History().All(), 1)
}

func TestClockIsTheInjectedOne(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 14, 45)}
	tr, _ := newTestTracker(t, clock)

	assert.Equal(t, "14:45", tr.Clock().Now().Format("15:04"))
}

func TestRolloverReloadsNewDateState(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 23, 50)}
	tr, kv := newTestTracker(t, clock)

	// The new date already has a meal log on disk; rollover must pick
	// it up instead of assuming emptiness.
	require.NoError(t, kv.Set(mealKey("2025-03-13"), "01:30 midnight snack"))

	clock.now = at(2025, 3, 13, 2, 0)
	_, err := tr.CheckRollover()
	require.NoError(t, err)
	assert.Equal(t, "01:30 midnight snack", tr.MealLog())
}

func TestMalformedDayPayloadDegradesToDefaults(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	kv, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	require.NoError(t, kv.Set(dayKey("2025-03-12"), "{definitely not json"))

	tr := New(kv, clock, nil)
	assert.Len(t, tr.Exercises(), 6)
	assert.Equal(t, 0, tr.TodayTotal())
}

func TestConfigRoundTrip(t *testing.T) {
	clock := &fakeClock{now: at(2025, 3, 12, 9, 0)}
	tr, kv := newTestTracker(t, clock)

	assert.Equal(t, 100, tr.Config().DailyGoalReps)

	cfg := tr.Config()
	cfg.DailyGoalReps = 150
	cfg.ActiveDays = []int{1, 3, 5}
	require.NoError(t, tr.SetConfig(cfg))

	reloaded := New(kv, clock, nil)
	assert.Equal(t, 150, reloaded.Config().DailyGoalReps)
	assert.Equal(t, []int{1, 3, 5}, reloaded.Config().ActiveDays)
}
