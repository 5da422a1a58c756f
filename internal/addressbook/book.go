package addressbook

import (
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// AddressBook owns the records, keyed by name. Iteration follows insertion order.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record already stored under that
// name is replaced in place and keeps its position.
func (b *AddressBook) AddRecord(r *Record) {
	if _, exists := b.records[r.name]; !exists {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find looks a record up by exact name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return ErrRecordNotFound
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Records returns the records in insertion order. The slice is a copy.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Congratulation is the weekend-adjusted day to greet a contact.
type Congratulation struct {
	Name string
	Date time.Time
}

// CongratulationDate renders Date as DD.MM.YYYY.
func (c Congratulation) CongratulationDate() string {
	return c.Date.Format(config.DateFormatBirthday)
}

// UpcomingBirthdays lists contacts whose birthday falls within
// [today, today+7 days]. Saturday and Sunday birthdays move to the following
// Monday. Results follow the book's insertion order.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Congratulation {
	start := StartOfDay(today)
	end := start.AddDate(0, 0, config.UpcomingWindowDays)

	var out []Congratulation
	for _, name := range b.order {
		bday, ok := b.records[name].Birthday()
		if !ok {
			continue
		}
		next := NextOccurrence(start, bday)
		if next.After(end) {
			continue
		}
		out = append(out, Congratulation{Name: name, Date: ShiftOffWeekend(next)})
	}
	return out
}

// StartOfDay drops the clock part of t, keeping its calendar date in UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextOccurrence returns the first anniversary of bday on or after the
// calendar date of today. Feb 29 is observed on Mar 1 in non-leap years.
func NextOccurrence(today time.Time, bday Birthday) time.Time {
	start := StartOfDay(today)
	candidate := time.Date(start.Year(), bday.month, bday.day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(start) {
		candidate = time.Date(start.Year()+1, bday.month, bday.day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// ShiftOffWeekend moves Saturday by two days and Sunday by one, both to Monday.
func ShiftOffWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}
