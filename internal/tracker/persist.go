package tracker

import (
	"encoding/json"
	"log/slog"
)

// loadDay pulls the current date's exercises, bookmarks and medicine
// count from the store. Absent or malformed data leaves the zeroed
// defaults in place; it is never an error.
func (t *Tracker) loadDay() {
	raw, ok := t.st.Get(dayKey(t.date))
	if !ok {
		return
	}
	var p dayPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.warnMalformed(dayKey(t.date), err)
		return
	}
	if len(p.Exercises) > 0 {
		t.exercises = p.Exercises
	}
	t.bookmarks = p.Bookmarks
	t.medicineCount = p.MedicineCount
}

func (t *Tracker) persistDay() error {
	p := dayPayload{
		Exercises:     t.exercises,
		Bookmarks:     t.bookmarks,
		MedicineCount: t.medicineCount,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return t.st.Set(dayKey(t.date), string(data))
}

// loadMealLog reads the current date's meal text, falling back to the
// key prefix used by earlier releases.
func (t *Tracker) loadMealLog() {
	if raw, ok := t.st.Get(mealKey(t.date)); ok {
		t.mealLog = raw
		return
	}
	if raw, ok := t.st.Get(legacyMealKey(t.date)); ok {
		t.mealLog = raw
		return
	}
	t.mealLog = ""
}

func (t *Tracker) persistMealLog() error {
	return t.st.Set(mealKey(t.date), t.mealLog)
}

func (t *Tracker) loadHealth() {
	t.health = t.storedHealth(t.date)
}

// storedHealth reads the health checkpoints for any date, degrading to
// the all-unrecorded zero value on absence or bad JSON.
func (t *Tracker) storedHealth(date string) HealthData {
	var h HealthData
	raw, ok := t.st.Get(healthKey(date))
	if !ok {
		return h
	}
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.warnMalformed(healthKey(date), err)
		return HealthData{}
	}
	return h
}

func (t *Tracker) persistHealth() error {
	data, err := json.Marshal(t.health)
	if err != nil {
		return err
	}
	return t.st.Set(healthKey(t.date), string(data))
}

// storedMealLog reads the meal text for any date (used by the fasting
// calculation for yesterday's log).
func (t *Tracker) storedMealLog(date string) string {
	if raw, ok := t.st.Get(mealKey(date)); ok {
		return raw
	}
	if raw, ok := t.st.Get(legacyMealKey(date)); ok {
		return raw
	}
	return ""
}

func (t *Tracker) warnMalformed(key string, err error) {
	if t.logger != nil {
		t.logger.Warn("stored value is malformed, using defaults",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
