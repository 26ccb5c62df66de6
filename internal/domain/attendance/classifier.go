package attendance

import (
	"fmt"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ClockTime is a time of day in whole seconds since midnight.
type ClockTime int

// Shift thresholds
const (
	EarlyInCutoff  ClockTime = 7*3600 + 59*60  // 07:59:00, at or before is early
	LateCutoff     ClockTime = 8*3600 + 15*60  // 08:15:00, after is late
	EarlyOutCutoff ClockTime = 17 * 3600       // 17:00:00, before is early out
	OvertimeCutoff ClockTime = 18 * 3600       // 18:00:00, after is overtime
	secondsPerDay  ClockTime = 24 * 3600
)

// Label is a derived, never persisted, in/out status
type Label string

const (
	LabelEarlyIn  Label = "Early In"
	LabelOnTime   Label = "On Time"
	LabelLate     Label = "Late"
	LabelEarlyOut Label = "Early Out"
	LabelOvertime Label = "Overtime"
	LabelPending  Label = "Pending"
)

func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClockTime parses HH:MM:SS or HH:MM.
func ParseClockTime(s string) (ClockTime, error) {
	t, ok := validator.IsValidClockTime(s)
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
}

func (c ClockTime) String() string {
	c = ((c % secondsPerDay) + secondsPerDay) % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", c/3600, (c%3600)/60, c%60)
}

// ClassifyIn labels a check-in time. A missing time_in is Pending.
func ClassifyIn(timeIn *ClockTime) Label {
	switch {
	case timeIn == nil:
		return LabelPending
	case *timeIn > LateCutoff:
		return LabelLate
	case *timeIn <= EarlyInCutoff:
		return LabelEarlyIn
	default:
		return LabelOnTime
	}
}

// ClassifyOut labels a check-out time. A missing time_out means the employee
// has not checked out yet and is reported as Pending.
func ClassifyOut(timeOut *ClockTime) Label {
	switch {
	case timeOut == nil:
		return LabelPending
	case *timeOut < EarlyOutCutoff:
		return LabelEarlyOut
	case *timeOut > OvertimeCutoff:
		return LabelOvertime
	default:
		return LabelOnTime
	}
}

// WorkingHours returns (time_out - time_in) in hours rounded to two decimals,
// or nil when either endpoint is missing.
func WorkingHours(timeIn, timeOut *ClockTime) *float64 {
	if timeIn == nil || timeOut == nil {
		return nil
	}
	seconds := decimal.NewFromInt(int64(*timeOut - *timeIn))
	hours, _ := seconds.Div(decimal.NewFromInt(3600)).Round(2).Float64()
	return &hours
}

// StoredStatus is the status persisted at check-in.
func StoredStatus(timeIn ClockTime) string {
	if timeIn > LateCutoff {
		return StatusLate
	}
	return StatusPresent
}

// LocalDate returns the calendar date (YYYY-MM-DD) at a fixed UTC offset.
// The offset is applied arithmetically so the host timezone never matters.
func LocalDate(now time.Time, offsetHours int) string {
	return now.UTC().Add(time.Duration(offsetHours) * time.Hour).Format("2006-01-02")
}
