// Package date provides a Date type with day granularity, the finest
// granularity exchange exports carry once timestamps are collapsed.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// readFormats are the layouts accepted by Parse, tried in order. Exchange
// exports disagree on timestamp encodings, so the list covers the known ones.
var readFormats = []string{
	readDateFormat,
	"2006-1-2 15:04:05",
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05.999 -0700",
	"01/02/2006",
}

// Date represent a date with no lower than day granularity.
//
// The zero value is the null date: it marks an unparseable or absent date and
// reports false from IsValid.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsValid reports whether d is a real date, as opposed to the null zero value.
func (d Date) IsValid() bool { return d != Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String format the date in its standard format. The null date formats as "".
func (d Date) String() string {
	if !d.IsValid() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1" as well as full timestamps, keeping only the day.
func Parse(str string) (Date, error) {
	for _, layout := range readFormats {
		if on, err := time.Parse(layout, str); err == nil {
			return New(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, readDateFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Min returns the earlier of a and b, ignoring null dates.
func Min(a, b Date) Date {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b, ignoring null dates.
func Max(a, b Date) Date {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}
	if b.After(a) {
		return b
	}
	return a
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*j = Date{}
		return nil
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
