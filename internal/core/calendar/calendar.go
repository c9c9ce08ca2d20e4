// Package calendar provides the date and year-month value types used by expenses and budgets.
//
// Dates are calendar days represented as time.Time at 00:00 UTC. A Month is a year plus a month
// with no day component; NullMonth is its optional form and is stored as the first day of the
// month (or NULL).
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	ErrInvalidDate  = errors.New("enter a valid date (YYYY-MM-DD)")
	ErrInvalidMonth = errors.New("enter a valid month (YYYY-MM)")
)

// storedLayouts are the textual forms a date column can come back as (sqlite keeps dates as text).
var storedLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	DateLayout,
}

// Date returns the calendar day y-m-d.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the clock part of t, keeping t's own year, month and day.
func TruncateDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today is the calendar day of now as seen from loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return TruncateDay(now.In(loc))
}

// ParseDate parses a YYYY-MM-DD literal.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return TruncateDay(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Month is a calendar year and month.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(year int, month time.Month) Month {
	return MonthOf(Date(year, month, 1))
}

// MonthOf returns the month containing day t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts "YYYY-MM" or a full "YYYY-MM-DD" date, whose day is ignored.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(MonthLayout, s); err == nil {
		return MonthOf(t), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return MonthOf(t), nil
	}
	return Month{}, ErrInvalidMonth
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// FirstDay is the stored representation of the month.
func (m Month) FirstDay() time.Time {
	return Date(m.Year, m.Month, 1)
}

// Range returns the half-open interval [first day, first day of next month).
func (m Month) Range() (from, to time.Time) {
	from = m.FirstDay()
	return from, from.AddDate(0, 1, 0)
}

// Contains reports whether day t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidMonth
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NullMonth is an optional Month. The zero value is absent.
type NullMonth struct {
	Month Month
	Valid bool
}

func NewNullMonth(m Month) NullMonth {
	return NullMonth{Month: m, Valid: true}
}

// Equal compares two optional months; two absent months are equal.
func (n NullMonth) Equal(other NullMonth) bool {
	if !n.Valid || !other.Valid {
		return n.Valid == other.Valid
	}
	return n.Month == other.Month
}

func (n NullMonth) String() string {
	if !n.Valid {
		return ""
	}
	return n.Month.String()
}

// Scan implements sql.Scanner.
func (n *NullMonth) Scan(value any) error {
	if value == nil {
		*n = NullMonth{}
		return nil
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := parseStored(v)
		if err != nil {
			return err
		}
		t = parsed
	case []byte:
		parsed, err := parseStored(string(v))
		if err != nil {
			return err
		}
		t = parsed
	default:
		return fmt.Errorf("calendar: cannot scan %T into NullMonth", value)
	}

	*n = NewNullMonth(MonthOf(t))
	return nil
}

// Value implements driver.Valuer.
func (n NullMonth) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Month.FirstDay(), nil
}

// GormDataType lets AutoMigrate create a date column.
func (NullMonth) GormDataType() string {
	return "date"
}

func (n NullMonth) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Month.MarshalJSON()
}

func (n *NullMonth) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullMonth{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidMonth
	}
	if strings.TrimSpace(s) == "" {
		*n = NullMonth{}
		return nil
	}
	m, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*n = NewNullMonth(m)
	return nil
}

func parseStored(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("calendar: unrecognised date %q", s)
}
