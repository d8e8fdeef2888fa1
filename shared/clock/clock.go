// Package clock models wall-clock times of day and half-open ranges between them.
//
// A Clock is the number of minutes since midnight. It formats as "HH:MM", scans Postgres TIME
// columns and marshals to JSON as a string, so the same value travels from the schedule table
// through slot computation to the HTTP response unchanged.
package clock

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Layout        = "15:04"
	DateLayout    = "2006-01-02"
	MinutesPerDay = 24 * 60

	minutesPerHour = 60
)

var ErrInvalidClock = errors.New("invalid time of day")

type Clock int

func New(hour, minute int) Clock {
	return Clock(hour*minutesPerHour + minute)
}

// Parse accepts "HH:MM" and "HH:MM:SS".
func Parse(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	layout := Layout
	if strings.Count(value, ":") == 2 { //nolint:mnd
		layout = time.TimeOnly
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidClock, value)
	}

	return FromTime(parsed), nil
}

func FromTime(t time.Time) Clock {
	return New(t.Hour(), t.Minute())
}

func (c Clock) Hour() int {
	return int(c) / minutesPerHour
}

func (c Clock) Minute() int {
	return int(c) % minutesPerHour
}

func (c Clock) Minutes() int {
	return int(c)
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On places the time of day on the calendar date of d, in d's location.
func (c Clock) On(d time.Time) time.Time {
	year, month, day := d.Date()

	return time.Date(year, month, day, c.Hour(), c.Minute(), 0, 0, d.Location())
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = FromTime(v)

		return nil
	case []byte:
		return c.parseInto(string(v))
	case string:
		return c.parseInto(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidClock, src)
	}
}

func (c *Clock) parseInto(value string) error {
	parsed, err := Parse(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String()) //nolint:wrapcheck
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClock, err)
	}

	return c.parseInto(value)
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start Clock `db:"start_time" json:"start"`
	End   Clock `db:"end_time"   json:"end"`
}

func NewRange(start Clock, minutes int) Range {
	return Range{Start: start, End: start.Add(minutes)}
}

func (r Range) Minutes() int {
	return int(r.End - r.Start)
}

// Overlaps reports whether r and o share at least one minute. Touching ranges do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Weekday numbers days from Monday = 0 to Sunday = 6, the convention used by work schedules.
func Weekday(d time.Time) int {
	const daysPerWeek = 7

	return (int(d.Weekday()) + daysPerWeek - 1) % daysPerWeek
}

// Date truncates t to midnight of its calendar day in t's location.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses "2006-01-02" in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return parsed, nil
}
