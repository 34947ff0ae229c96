package tracker

import (
	"encoding/json"
	"time"
)

// Config holds user-tunable settings, stored in the same KV store as
// the daily records.
type Config struct {
	DailyGoalReps int   `json:"daily_goal_reps"`
	ActiveDays    []int `json:"active_days"` // 1=Monday, 7=Sunday
}

func defaultConfig() Config {
	return Config{
		DailyGoalReps: 100,
		ActiveDays:    []int{1, 2, 3, 4, 5, 6, 7},
	}
}

// IsActiveDay reports whether t falls on a configured active day.
func (c Config) IsActiveDay(t time.Time) bool {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	for _, day := range c.ActiveDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// Config returns the current settings.
func (t *Tracker) Config() Config { return t.config }

// SetConfig persists new settings and applies them to the live state.
func (t *Tracker) SetConfig(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := t.st.Set(configKey, string(data)); err != nil {
		return err
	}
	t.config = cfg
	return nil
}

func (t *Tracker) loadConfig() Config {
	cfg := defaultConfig()
	raw, ok := t.st.Get(configKey)
	if !ok {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.warnMalformed(configKey, err)
		return defaultConfig()
	}
	if cfg.DailyGoalReps == 0 {
		cfg.DailyGoalReps = defaultConfig().DailyGoalReps
	}
	if len(cfg.ActiveDays) == 0 {
		cfg.ActiveDays = defaultConfig().ActiveDays
	}
	return cfg
}
