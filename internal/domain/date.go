package domain

import (
	"fmt"
	"time"
)

// dateLayout is the only textual form dates take on the wire and in the
// store: two-digit day, two-digit month, four-digit year.
const dateLayout = "02/01/2006"

// Date is a calendar date without time-of-day or timezone. The zero value
// is "no date". Values are comparable with ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses the exact dd/MM/yyyy form. Anything else, including
// dates that do not exist on the Gregorian calendar, is rejected.
func ParseDate(s string) (Date, error) {
	if len(s) != len(dateLayout) || s[2] != '/' || s[5] != '/' {
		return Date{}, fmt.Errorf("date %q does not match dd/MM/yyyy", s)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q does not match dd/MM/yyyy: %v", s, err)
	}
	d := Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	// time.Parse tolerates unpadded components; a round-trip check keeps
	// the accepted language exactly dd/MM/yyyy.
	if d.String() != s {
		return Date{}, fmt.Errorf("date %q does not match dd/MM/yyyy", s)
	}
	return d, nil
}

// String renders the canonical dd/MM/yyyy form. ParseDate(d.String()) == d
// for every valid date.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// MarshalJSON emits the quoted wire form. Marshalling the zero value is a
// programming error surfaced as such.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("marshal of zero Date")
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a dd/MM/yyyy string, got %s", b)
	}
	v, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
