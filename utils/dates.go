package utils

import (
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

// DateKey formats a time as the DD-MM-YY snapshot key. Two times on the
// same calendar day produce the same key.
func DateKey(t time.Time) string {
	return t.Format(constants.TrackingDateFormat)
}

// ParseDateKey parses a DD-MM-YY snapshot key back into a time.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(constants.TrackingDateFormat, key)
}

// TodayKey returns the snapshot key for the current calendar day.
func TodayKey() string {
	return DateKey(time.Now())
}

// YesterdayKey returns the snapshot key for the previous calendar day.
func YesterdayKey() string {
	return DateKey(time.Now().AddDate(0, 0, -1))
}

// PreviousDayKey returns the key for the day before the given key.
// The error mirrors ParseDateKey for malformed input.
func PreviousDayKey(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, -1)), nil
}

// FormatDisplayDate renders a snapshot key in the MM/DD/YY form used in
// embed titles. Malformed keys are returned unchanged.
func FormatDisplayDate(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format(constants.DisplayDateFormat)
}

// FormatDateTime formats a full timestamp for logs.
func FormatDateTime(t time.Time) string {
	return t.Format(constants.DateTimeFormat)
}
