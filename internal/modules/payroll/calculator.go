// README: Salary calculator; splits a shift into normal/overtime/night hours and prices them.
package payroll

import (
	"fmt"
	"math"
	"time"

	"getdriven/internal/modules/settings"
)

// Night window: 20:00 up to 06:00 the next morning, every calendar day.
const (
	nightWindowEndHour   = 6
	nightWindowStartHour = 20
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ValidationError reports a date or time field that could not be parsed.
// It is a deterministic input error; retrying is pointless.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Breakdown is the pay calculation result for a single shift. Every field
// is rounded to 2 decimals independently at the point of computation;
// downstream sums therefore work on already-rounded values.
type Breakdown struct {
	TotalHours    float64 `json:"total_hours"`
	NormalHours   float64 `json:"normal_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	NormalPay     float64 `json:"normal_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	NightPay      float64 `json:"night_pay"`
	GrossPay      float64 `json:"gross_pay"`
}

// Calculate computes the pay breakdown for a shift on the given date.
// A shift whose end is at or before its start is taken to cross midnight
// and ends the next day; shifts longer than 24 hours are out of scope.
func Calculate(date, startTime, endTime string, p settings.Policy) (Breakdown, error) {
	start, err := time.Parse(dateLayout+"T"+timeLayout, date+"T"+startTime)
	if err != nil {
		return Breakdown{}, &ValidationError{Field: "date/start_time", Value: date + "T" + startTime}
	}
	end, err := time.Parse(dateLayout+"T"+timeLayout, date+"T"+endTime)
	if err != nil {
		return Breakdown{}, &ValidationError{Field: "date/end_time", Value: date + "T" + endTime}
	}

	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	totalHours := end.Sub(start).Hours()
	normalHours := math.Min(totalHours, p.NormalHoursThreshold)
	overtimeHours := math.Max(0, totalHours-p.NormalHoursThreshold)

	nightHours := float64(nightMinutes(start, end)) / 60

	normalPay := normalHours * p.BaseRate
	overtimePay := overtimeHours * p.BaseRate * p.OvertimeMultiplier
	nightPay := nightHours * p.NightSurcharge
	grossPay := normalPay + overtimePay + nightPay

	return Breakdown{
		TotalHours:    round2(totalHours),
		NormalHours:   round2(normalHours),
		OvertimeHours: round2(overtimeHours),
		NightHours:    round2(nightHours),
		NormalPay:     round2(normalPay),
		OvertimePay:   round2(overtimePay),
		NightPay:      round2(nightPay),
		GrossPay:      round2(grossPay),
	}, nil
}

// nightMinutes counts the whole minutes of [start, end) that fall inside the
// recurring night window. Both instants are on whole minutes (HH:MM input),
// so overlapping the span with the two window halves of each calendar day
// gives exactly the minutes a one-minute scan would count.
func nightMinutes(start, end time.Time) int {
	total := 0
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		total += overlapMinutes(start, end, day, day.Add(nightWindowEndHour*time.Hour))
		total += overlapMinutes(start, end, day.Add(nightWindowStartHour*time.Hour), day.AddDate(0, 0, 1))
	}
	return total
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	s := aStart
	if bStart.After(s) {
		s = bStart
	}
	e := aEnd
	if bEnd.Before(e) {
		e = bEnd
	}
	if !e.After(s) {
		return 0
	}
	return int(e.Sub(s) / time.Minute)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
