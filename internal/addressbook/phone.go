package addressbook

import "github.com/tartampluch/go-contacts/internal/config"

// Phone is a validated phone number of exactly ten ASCII digits.
type Phone struct {
	value string
}

// NewPhone validates raw and returns it as a Phone.
// Separators, spaces and a leading '+' are all rejected.
func NewPhone(raw string) (Phone, error) {
	if len(raw) != config.PhoneDigits {
		return Phone{}, ErrInvalidPhone
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Phone{}, ErrInvalidPhone
		}
	}
	return Phone{value: raw}, nil
}

// String returns the digits.
func (p Phone) String() string {
	return p.value
}
