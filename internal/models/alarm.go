// Package models provides data model definitions for the Asista core.
package models

import (
	"strconv"
	"time"
)

// DayFormat is the fixed rendering used for AlarmRecord.Day and for the
// current date during match checks: day.month.year with zero padding,
// e.g. "21.11.2025". Alarms are created and matched against this exact
// rendering; no date parsing is ever performed.
const DayFormat = "02.01.2006"

// FormatDay renders t in the alarm day format.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// AlarmRecord represents a single scheduled alert. Hour and minute are
// stored as the text the user entered; Day is compared by exact string
// equality against the current date's DayFormat rendering.
type AlarmRecord struct {
	ID     string `json:"id"`
	Day    string `json:"day"`
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// numericSentinel is returned for unparseable hour/minute fields. It can
// never equal a real clock reading, so a malformed record simply never
// matches instead of aborting a check.
const numericSentinel = -1

// HourValue returns the numeric hour, or a non-matching sentinel when
// the stored text is not a number.
func (a AlarmRecord) HourValue() int {
	return parseClockField(a.Hour)
}

// MinuteValue returns the numeric minute, or a non-matching sentinel
// when the stored text is not a number.
func (a AlarmRecord) MinuteValue() int {
	return parseClockField(a.Minute)
}

// Matches reports whether the record fires at the given instant: exact
// day string equality and numeric hour/minute equality.
func (a AlarmRecord) Matches(now time.Time) bool {
	return a.Day == FormatDay(now) &&
		a.HourValue() == now.Hour() &&
		a.MinuteValue() == now.Minute()
}

func parseClockField(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return numericSentinel
	}
	return n
}
