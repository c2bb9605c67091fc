package tremor

import (
	"math"
	"strconv"
	"time"
)

// Time layouts used on chart axes, tooltips, and tables.
const (
	ShortTimeLayout = "15:04:05"
	FullTimeLayout  = "2006-01-02 15:04:05"

	// InvalidDate is shown in place of a timestamp that cannot be formatted.
	InvalidDate = "Invalid date"
	// NotAvailable is shown where no timestamp exists at all.
	NotAvailable = "N/A"
)

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// ShortTime formats t as HH:mm:ss for axis labels.
func ShortTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return InvalidDate
	}
	return inLocation(t, loc).Format(ShortTimeLayout)
}

// FullTime formats t as yyyy-MM-dd HH:mm:ss for tooltips and the event log.
func FullTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return InvalidDate
	}
	return inLocation(t, loc).Format(FullTimeLayout)
}

// ClockTime formats the wall-clock time of a reading on the status card.
// Unlike ShortTime it reports a missing timestamp as N/A.
func ClockTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return NotAvailable
	}
	return inLocation(t, loc).Format(ShortTimeLayout)
}

// FormatFixed2 renders v with exactly two decimals.
func FormatFixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RoundBPM rounds a heart rate to whole beats, halves up. Heart rates are
// non-negative so floor(v+0.5) matches rounding half up.
func RoundBPM(v float64) int {
	return int(math.Floor(v + 0.5))
}

// FormatBPM renders a heart rate as whole beats.
func FormatBPM(v float64) string {
	return strconv.Itoa(RoundBPM(v))
}

// FormatGSR renders a GSR reading with the shortest exact representation,
// so integral readings print without a trailing fraction.
func FormatGSR(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
