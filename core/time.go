package core

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day, no time of day
// =============================================================================

const DateLayout = "2006-01-02"

// Date is a calendar day normalized to UTC midnight.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day in the timestamp's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals; it panics on malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() Month          { return Month{Year: d.t.Year(), Month: d.t.Month()} }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole days from -> to (negative when to is earlier).
func DaysBetween(from, to Date) int {
	return int((to.t.Unix() - from.t.Unix()) / secondsPerDay)
}

// =============================================================================
// MONTH - Payroll period
// =============================================================================

const MonthLayout = "2006-01"

type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (use YYYY-MM): %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Start() Date { return NewDate(m.Year, m.Month, 1) }
func (m Month) End() Date   { return NewDate(m.Year, m.Month+1, 1).AddDays(-1) }

func (m Month) Contains(d Date) bool { return d.Year() == m.Year && d.t.Month() == m.Month }

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// =============================================================================
// CLOCK TIME - Wall-clock HH:MM within a day
// =============================================================================

// ClockTime is minutes since midnight.
type ClockTime struct {
	minutes int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{minutes: hour*60 + minute}
}

// ParseClockTime parses HH:MM (24h).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q (use HH:MM): %w", s, err)
	}
	return NewClockTime(t.Hour(), t.Minute()), nil
}

func (c ClockTime) Minutes() int { return c.minutes }
func (c ClockTime) After(o ClockTime) bool { return c.minutes > o.minutes }
func (c ClockTime) AddMinutes(n int) ClockTime { return ClockTime{minutes: c.minutes + n} }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// ClockPtr is a convenience for optional clock fields.
func ClockPtr(c ClockTime) *ClockTime { return &c }
