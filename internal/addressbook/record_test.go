package addressbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/addressbook"
)

func newRecord(t *testing.T, name string, phones ...string) *addressbook.Record {
	t.Helper()
	r, err := addressbook.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		added, err := r.AddPhone(p)
		require.NoError(t, err)
		require.True(t, added)
	}
	return r
}

func phoneValues(r *addressbook.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestNewRecord_RejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := addressbook.NewRecord(name)
		assert.ErrorIs(t, err, addressbook.ErrInvalidName)
		assert.ErrorIs(t, err, addressbook.ErrInvalidValue)
	}
}

func TestRecord_AddPhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890")

	added, err := r.AddPhone("5555555555")
	require.NoError(t, err)
	assert.True(t, added)

	// Same number twice is a no-op, not an error.
	added, err = r.AddPhone("1234567890")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"1234567890", "5555555555"}, phoneValues(r))

	_, err = r.AddPhone("12345")
	assert.ErrorIs(t, err, addressbook.ErrInvalidPhone)
	assert.Len(t, r.Phones(), 2)
}

func TestRecord_PhonesReturnsCopy(t *testing.T) {
	r := newRecord(t, "John", "1234567890")
	phones := r.Phones()
	phones[0] = addressbook.Phone{}

	assert.Equal(t, []string{"1234567890"}, phoneValues(r))
}

func TestRecord_RemovePhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555", "1112223333")

	require.NoError(t, r.RemovePhone("5555555555"))
	assert.Equal(t, []string{"1234567890", "1112223333"}, phoneValues(r))

	err := r.RemovePhone("5555555555")
	assert.ErrorIs(t, err, addressbook.ErrNumberNotFound)
	assert.ErrorIs(t, err, addressbook.ErrNotFound)
}

func TestRecord_EditPhone_PreservesPosition(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")

	require.NoError(t, r.EditPhone("1234567890", "1112223333"))
	assert.Equal(t, []string{"1112223333", "5555555555"}, phoneValues(r))
	assert.Equal(t, "Contact name: John, phones: 1112223333; 5555555555, birthday: no information", r.String())
}

func TestRecord_EditPhone_Errors(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")

	t.Run("Old number missing", func(t *testing.T) {
		err := r.EditPhone("9999999999", "1112223333")
		assert.ErrorIs(t, err, addressbook.ErrNotFound)
	})

	t.Run("New number invalid", func(t *testing.T) {
		err := r.EditPhone("1234567890", "")
		assert.ErrorIs(t, err, addressbook.ErrInvalidPhone)
	})

	t.Run("New number already on record", func(t *testing.T) {
		err := r.EditPhone("1234567890", "5555555555")
		assert.ErrorIs(t, err, addressbook.ErrPhoneExists)
	})

	t.Run("Same number", func(t *testing.T) {
		assert.NoError(t, r.EditPhone("1234567890", "1234567890"))
	})

	assert.Equal(t, []string{"1234567890", "5555555555"}, phoneValues(r), "Failed edits must not mutate the record")
}

func TestRecord_FindPhone(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")

	p, err := r.FindPhone("5555555555")
	require.NoError(t, err)
	assert.Equal(t, "5555555555", p.String())

	_, err = r.FindPhone("5555555556")
	assert.ErrorIs(t, err, addressbook.ErrNumberNotFound)
}

func TestRecord_Birthday(t *testing.T) {
	r := newRecord(t, "John")
	assert.Equal(t, "no information", r.ShowBirthday())
	_, ok := r.Birthday()
	assert.False(t, ok)

	updated, err := r.AddBirthday("29.03.1993")
	require.NoError(t, err)
	assert.False(t, updated, "First birthday is an add")
	assert.Equal(t, "29.03.1993", r.ShowBirthday())

	updated, err = r.AddBirthday("30.03.1993")
	require.NoError(t, err)
	assert.True(t, updated, "Second birthday is an update")
	assert.Equal(t, "30.03.1993", r.ShowBirthday())

	_, err = r.AddBirthday("1993-03-30")
	assert.ErrorIs(t, err, addressbook.ErrInvalidBirthday)
	assert.Equal(t, "30.03.1993", r.ShowBirthday(), "Invalid input must keep the previous birthday")
}

func TestRecord_String(t *testing.T) {
	r := newRecord(t, "John", "1234567890", "5555555555")
	_, err := r.AddBirthday("29.03.1993")
	require.NoError(t, err)

	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555, birthday: 29.03.1993", r.String())
	assert.Equal(t, "Contact name: Jane, phones: , birthday: no information", newRecord(t, "Jane").String())
}
