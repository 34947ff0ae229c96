package tracker

// Exercise is one entry of the fixed catalog. Count is the only field
// that changes after startup.
type Exercise struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DefaultCatalog returns the six tracked exercises with zeroed counts.
func DefaultCatalog() []Exercise {
	return []Exercise{
		{ID: "squat", Name: "Squat"},
		{ID: "bicep-curl", Name: "Bicep Curl"},
		{ID: "tricep-extension", Name: "Tricep Extension"},
		{ID: "inverted-row", Name: "Inverted Row"},
		{ID: "pushup", Name: "Push-up"},
		{ID: "deadlift", Name: "Deadlift"},
	}
}

// HealthData holds the per-day checkpoint times as "HH:MM" strings.
// An empty string means the checkpoint was not recorded.
type HealthData struct {
	WakeUpTime          string `json:"wakeUpTime"`
	SleepTime           string `json:"sleepTime"`
	MorningMedicineTime string `json:"morningMedicineTime"`
	EveningMedicineTime string `json:"eveningMedicineTime"`
}

// DailyRecord is the archived snapshot of one calendar day.
type DailyRecord struct {
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
	MealLog   string     `json:"mealLog"`
	Health    HealthData `json:"health"`
}

// Total sums the exercise counts of an archived day.
func (r DailyRecord) Total() int {
	total := 0
	for _, ex := range r.Exercises {
		total += ex.Count
	}
	return total
}

// dayPayload is the wire shape of the per-date tracker key.
type dayPayload struct {
	Exercises     []Exercise `json:"exercises"`
	Bookmarks     []string   `json:"bookmarks,omitempty"`
	MedicineCount int        `json:"medicineCount,omitempty"`
}

const (
	historyKey = "healthTrackerHistory"
	configKey  = "healthTrackerConfig"

	// currentDateKey marks which date the live (not yet archived)
	// record belongs to. It is what lets a process started after
	// midnight recognize the previous run's day and archive it.
	currentDateKey = "healthTrackerCurrentDate"
)

func dayKey(date string) string    { return "healthTracker_" + date }
func mealKey(date string) string   { return "mealLog_" + date }
func healthKey(date string) string { return "healthData_" + date }

// legacyMealKey is the prefix earlier releases stored the meal log
// under. Reads fall back to it so old data stays visible.
func legacyMealKey(date string) string { return "mealDiary_" + date }
