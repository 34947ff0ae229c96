package tracker

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/hjpark/healthtrackcli/internal/store"
)

// History is the index of archived daily records, stored as a single
// JSON array under one aggregate key. At most one entry exists per
// date; re-archiving a date replaces its entry in place.
type History struct {
	st     store.Store
	logger *slog.Logger
}

// NewHistory returns a History reading and writing through st.
func NewHistory(st store.Store, logger *slog.Logger) *History {
	return &History{st: st, logger: logger}
}

// All returns every archived record in insertion order. A missing or
// malformed stored value degrades to an empty slice.
func (h *History) All() []DailyRecord {
	raw, ok := h.st.Get(historyKey)
	if !ok {
		return nil
	}
	var records []DailyRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		if h.logger != nil {
			h.logger.Warn("history is malformed, treating as empty", slog.String("error", err.Error()))
		}
		return nil
	}
	return records
}

// SortedDescending returns the archive ordered newest date first.
// Date keys are ISO-8601 so plain string comparison orders correctly.
func (h *History) SortedDescending() []DailyRecord {
	records := h.All()
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records
}

// FindByDate looks up the archived record for a date.
func (h *History) FindByDate(date string) (DailyRecord, bool) {
	for _, rec := range h.All() {
		if rec.Date == date {
			return rec, true
		}
	}
	return DailyRecord{}, false
}

// Upsert replaces the record matching rec.Date, or appends when the
// date is new, then persists the whole index.
func (h *History) Upsert(rec DailyRecord) error {
	records := h.All()
	replaced := false
	for i := range records {
		if records[i].Date == rec.Date {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return h.st.Set(historyKey, string(data))
}
