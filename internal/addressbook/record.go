package addressbook

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Record is one contact: an immutable name, an ordered list of unique
// phones and an optional birthday.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record. Names are case-sensitive and must not be empty.
func NewRecord(name string) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	return &Record{name: name}, nil
}

// Name returns the record key.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it. It reports false without error
// when the number is already on the record.
func (r *Record) AddPhone(raw string) (bool, error) {
	phone, err := NewPhone(raw)
	if err != nil {
		return false, err
	}
	if r.indexOf(phone.value) >= 0 {
		return false, nil
	}
	r.phones = append(r.phones, phone)
	return true, nil
}

// RemovePhone deletes the first phone equal to raw.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return ErrNumberNotFound
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces oldRaw with newRaw at the same position in the list.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	phone, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	i := r.indexOf(oldRaw)
	if i < 0 {
		return ErrNumberNotFound
	}
	if oldRaw == newRaw {
		return nil
	}
	if r.indexOf(newRaw) >= 0 {
		return ErrPhoneExists
	}
	r.phones[i] = phone
	return nil
}

// FindPhone returns the phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, error) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, ErrNumberNotFound
	}
	return r.phones[i], nil
}

// AddBirthday parses raw and stores it, replacing any previous value.
// updated is true when the record already had a birthday.
func (r *Record) AddBirthday(raw string) (updated bool, err error) {
	b, err := ParseBirthday(raw)
	if err != nil {
		return false, err
	}
	updated = r.SetBirthday(b)
	return updated, nil
}

// SetBirthday stores an already validated birthday and reports whether one was replaced.
func (r *Record) SetBirthday(b Birthday) bool {
	had := r.birthday != nil
	r.birthday = &b
	return had
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// ShowBirthday renders the birthday or the "no information" placeholder.
func (r *Record) ShowBirthday() string {
	if r.birthday == nil {
		return config.NoInformation
	}
	return r.birthday.String()
}

func (r *Record) String() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return fmt.Sprintf(config.FormatRecord, r.name, strings.Join(values, config.PhoneSeparator), r.ShowBirthday())
}

func (r *Record) indexOf(raw string) int {
	for i, p := range r.phones {
		if p.value == raw {
			return i
		}
	}
	return -1
}
