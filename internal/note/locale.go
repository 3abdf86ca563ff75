package note

import "time"

// weekdays is Sunday-indexed to line up with time.Weekday.
var weekdays = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// DayName returns the Korean weekday name for a date.
func DayName(t time.Time) string {
	return weekdays[int(t.Weekday())]
}

// Timestamp renders a wall-clock time as 24-hour HH:MM.
func Timestamp(t time.Time) string {
	return t.Format("15:04")
}

// FormatEntry renders a generic timestamped list entry.
func FormatEntry(text string, at time.Time) string {
	return "- " + text + " *(" + Timestamp(at) + ")*"
}
