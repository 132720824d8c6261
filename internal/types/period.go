// Package types implements special types for the ledgera backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Italian month names, indexed by month number - 1.
var mesi = [12]string{
	"Gennaio",
	"Febbraio",
	"Marzo",
	"Aprile",
	"Maggio",
	"Giugno",
	"Luglio",
	"Agosto",
	"Settembre",
	"Ottobre",
	"Novembre",
	"Dicembre",
}

// MonthName returns the Italian name for a month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("Mese %d", month)
	}

	return mesi[month-1]
}

// Period is a calendar month in a specific year. It is the unit all
// expense lines are tagged with and all reports aggregate over.
type Period time.Time

// NewPeriod returns the Period for a year and a month number.
func NewPeriod(year, month int) Period {
	return Period(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
}

// PeriodOf returns the Period in which a time occurs in that time's location.
func PeriodOf(t time.Time) Period {
	year, month, _ := t.Date()
	return Period(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// ParsePeriod parses a "YYYY-MM" string and returns the Period it represents.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, err
	}

	return PeriodOf(t), nil
}

// Year returns the calendar year of the period.
func (p Period) Year() int {
	return time.Time(p).Year()
}

// Month returns the month number of the period, 1 to 12.
func (p Period) Month() int {
	return int(time.Time(p).Month())
}

// String returns the period formatted as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year(), time.Time(p).Month())
}

// Label returns the display label, e.g. "Gen 25".
func (p Period) Label() string {
	return fmt.Sprintf("%s %02d", MonthName(p.Month())[:3], p.Year()%100)
}

// FullLabel returns the long display label, e.g. "Gennaio 2025".
func (p Period) FullLabel() string {
	return fmt.Sprintf("%s %d", MonthName(p.Month()), p.Year())
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the result of p.String().
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// "YYYY-MM", "YYYY-MM-DD" and RFC3339 timestamps are accepted; everything
// but the year and month is ignored.
func (p *Period) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	pattern := "2006-01-02T15:04:05Z07:00"
	if match, _ := regexp.MatchString("^[0-9]{4}-[0-9]{2}$", value); match {
		pattern = "2006-01"
	} else if match, _ := regexp.MatchString("^[0-9]{4}-[0-9]{2}-[0-9]{2}$", value); match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*p = PeriodOf(t)
	return nil
}

// Scan reads the value from the database.
func (p *Period) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*p = Period(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (p Period) Value() (driver.Value, error) {
	return time.Date(p.Year(), time.Time(p).Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Period) GormDataType() string {
	return "date"
}

// IsZero reports if the period is the zero value.
func (p Period) IsZero() bool {
	return time.Time(p).IsZero()
}

// AddMonths adds a specified amount of months, rolling over year
// boundaries.
func (p Period) AddMonths(months int) Period {
	return Period(time.Time(p).AddDate(0, months, 0))
}

// Before reports whether the period p is before q.
func (p Period) Before(q Period) bool {
	return time.Time(p).Before(time.Time(q))
}

// After reports whether the period p is after q.
func (p Period) After(q Period) bool {
	return time.Time(p).After(time.Time(q))
}

// Equal reports whether p and q represent the same month.
func (p Period) Equal(q Period) bool {
	return time.Time(p).Equal(time.Time(q))
}

// PeriodRange expands an inclusive range into the ordered sequence of
// periods it spans, advancing one month at a time.
//
// When to is before from, the result is empty. No upper bound is enforced
// on the range size, callers presenting the result should cap their inputs.
func PeriodRange(from, to Period) []Period {
	periods := []Period{}

	for p := from; !p.After(to); p = p.AddMonths(1) {
		periods = append(periods, p)
	}

	return periods
}
