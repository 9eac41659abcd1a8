// Package date provides a calendar date without time of day, encoded as
// YYYY-MM-DD in JSON and stored as a DATE column.
package date

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const layout = time.DateOnly

// Date is a calendar date. The zero value is not a valid date.
type Date struct {
	t time.Time
}

// New builds a Date from its components.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of truncates t to its calendar date in t's location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	return d.t.Format(layout)
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner for DATE, TIMESTAMP and text columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = New(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into date", src)
	}
}
