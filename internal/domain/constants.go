package domain

// Default booking policy values
const (
	DefaultReleaseThresholdMinutes = 15
	DefaultCheckInLeadMinutes      = 30
	DefaultMaxSeriesOccurrences    = 52
	DefaultSeriesCodeLength        = 8
)

// Business validation constants
const (
	MaxDurationHours = 24.0
	DaysInWeek       = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
