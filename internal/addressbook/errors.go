package addressbook

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Error kinds. Callers branch on these with errors.Is.
var (
	ErrInvalidValue = errors.New(config.ErrKindInvalidValue)
	ErrNotFound     = errors.New(config.ErrKindNotFound)
)

var (
	ErrInvalidPhone    = fmt.Errorf("%w: %s", ErrInvalidValue, config.ErrPhoneFormat)
	ErrInvalidBirthday = fmt.Errorf("%w: %s", ErrInvalidValue, config.ErrBirthdayFormat)
	ErrInvalidName     = fmt.Errorf("%w: %s", ErrInvalidValue, config.ErrNameEmpty)
	ErrPhoneExists     = fmt.Errorf("%w: %s", ErrInvalidValue, config.ErrPhoneDuplicate)

	ErrNumberNotFound = fmt.Errorf("%s %w", config.ErrNumberMissing, ErrNotFound)
	ErrRecordNotFound = fmt.Errorf("%s %w", config.ErrRecordMissing, ErrNotFound)
)
