package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tartampluch/go-contacts/internal/addressbook"
	"github.com/tartampluch/go-contacts/internal/config"
)

// appNamespace scopes every generated UID to this application.
var appNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID))

// recordUID is stable across runs for the same name and birth date,
// so calendar clients update events instead of duplicating them.
func recordUID(r *addressbook.Record) uuid.UUID {
	return uuid.NewSHA1(appNamespace, []byte(fmt.Sprintf(config.FormatHashInput, r.Name(), r.ShowBirthday())))
}
