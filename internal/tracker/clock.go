package tracker

import "time"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Clock supplies the current wall-clock time. The tracker never reads
// time.Now directly so rollover and fasting logic stay reproducible in
// tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the real wall clock.
func SystemClock() Clock { return systemClock{} }

// DateString formats t as a calendar date key ("2006-01-02").
func DateString(t time.Time) string { return t.Format(dateLayout) }
