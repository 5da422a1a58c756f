package addressbook

import (
	"regexp"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// birthdayPattern enforces two-digit day and month and a four-digit year
// before time.Parse checks that the date exists.
var birthdayPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Birthday is a calendar date without a time component.
type Birthday struct {
	year  int
	month time.Month
	day   int
}

// ParseBirthday parses a DD.MM.YYYY string. Impossible dates such as
// 31.02.2000 are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	if !birthdayPattern.MatchString(raw) {
		return Birthday{}, ErrInvalidBirthday
	}
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, ErrInvalidBirthday
	}
	return BirthdayFromTime(t), nil
}

// BirthdayFromTime keeps only the calendar date of t.
func BirthdayFromTime(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{year: y, month: m, day: d}
}

func (b Birthday) Year() int         { return b.year }
func (b Birthday) Month() time.Month { return b.month }
func (b Birthday) Day() int          { return b.day }

// Time returns midnight UTC of the birth date.
func (b Birthday) Time() time.Time {
	return time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.Time().Format(config.DateFormatBirthday)
}
