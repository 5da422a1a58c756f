// Package addressbook holds the contact data model: validated phone numbers
// and birthdays, records, the address book and the upcoming-birthday query.
//
// The package never prints or logs. Failures are returned as errors that
// wrap ErrInvalidValue or ErrNotFound.
package addressbook
