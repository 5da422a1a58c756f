package assistant_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/addressbook"
	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/config"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls "today" for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockFetcher simulates remote vCard sources.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingPublisher captures calendar snapshots.
type recordingPublisher struct {
	mu        sync.Mutex
	snapshots [][]byte
}

func (p *recordingPublisher) Update(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, data)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

// Monday, June 10th 2024
var monday = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newAssistant(t *testing.T) *assistant.Assistant {
	t.Helper()
	a, err := assistant.New(addressbook.New(), MockClock{CurrentTime: monday}, nil)
	require.NoError(t, err)
	return a
}

// exec runs a sequence of lines and returns the reply to the last one.
func exec(t *testing.T, a *assistant.Assistant, lines ...string) string {
	t.Helper()
	var reply string
	for _, line := range lines {
		reply, _ = a.Handle(context.Background(), line)
	}
	return reply
}

// -----------------------------------------------------------------------------
// Parsing & Dispatch
// -----------------------------------------------------------------------------

func TestParseInput(t *testing.T) {
	cmd, args := assistant.ParseInput("  ADD John 1234567890 ")
	assert.Equal(t, "add", cmd)
	assert.Equal(t, []string{"John", "1234567890"}, args, "Arguments keep their case")

	cmd, args = assistant.ParseInput("   ")
	assert.Empty(t, cmd)
	assert.Empty(t, args)
}

func TestParseInput_Quoted(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`phone "John Smith"`, []string{"John Smith"}},
		{`add  "John  Smith"   1234567890`, []string{"John  Smith", "1234567890"}},
		{`add O'Brien 1234567890`, []string{"O'Brien", "1234567890"}},
		{`add Say"Hi" 1234567890`, []string{`Say"Hi"`, "1234567890"}},
		{`add "" 1234567890`, []string{"", "1234567890"}},
		{`phone "John Smith`, []string{"John Smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, args := assistant.ParseInput(tt.line)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestHandle_Basics(t *testing.T) {
	a := newAssistant(t)

	tests := []struct {
		line string
		want string
		done bool
	}{
		{"hello", "How can I help you?", false},
		{"HeLLo", "How can I help you?", false},
		{"fly-to-the-moon", "Invalid command.", false},
		{"", "", false},
		{"close", "Good bye!", true},
		{"exit", "Good bye!", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reply, done := a.Handle(context.Background(), tt.line)
			assert.Equal(t, tt.want, reply)
			assert.Equal(t, tt.done, done)
		})
	}
}

func TestHandle_Commands(t *testing.T) {
	reply := exec(t, newAssistant(t), "commands")

	assert.True(t, strings.HasPrefix(reply, "Available commands (wrap names with spaces in double quotes):\n 👉 hello"))
	assert.Contains(t, reply, "add [name] [phone]")
	assert.Contains(t, reply, "add-birthday [name] [DD.MM.YYYY]")
	assert.True(t, strings.HasSuffix(reply, "👉 close or exit"))
}

func TestHandle_MissingArguments(t *testing.T) {
	a := newAssistant(t)

	tests := map[string]string{
		"add":           "Give me name and phone please.",
		"add John":      "Give me name and phone please.",
		"change John 1": "Give me name, old phone, and new phone please.",
		"phone":         "Give me name please.",
		"add-birthday":  "Give me name please and birthday date.",
		"show-birthday": "Give me name please.",
		"delete":        "Give me name please.",
		"remove-phone":  "Give me name and phone please.",
		"find-phone X":  "Give me name and phone please.",
		"import":        "Give me a vCard file path or URL please.",
	}

	for line, want := range tests {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, want, exec(t, a, line))
		})
	}
}

// -----------------------------------------------------------------------------
// Contacts
// -----------------------------------------------------------------------------

func TestAdd_CreateThenUpdate(t *testing.T) {
	a := newAssistant(t)

	assert.Equal(t, "Contact added.", exec(t, a, "add John 1234567890"))
	assert.Equal(t, "Contact updated.", exec(t, a, "add John 5555555555"))
	assert.Equal(t, "Phone number 5555555555 already exists.", exec(t, a, "add John 5555555555"))

	record, ok := a.Book.Find("John")
	require.True(t, ok)
	assert.Len(t, record.Phones(), 2)
	assert.Equal(t, "John: 1234567890; 5555555555", exec(t, a, "phone John"))
}

func TestAdd_InvalidPhoneLeavesNoContact(t *testing.T) {
	a := newAssistant(t)

	assert.Equal(t, "Invalid number. It must contain only numbers and 10 digits.", exec(t, a, "add John 12345"))
	_, ok := a.Book.Find("John")
	assert.False(t, ok)
}

func TestChange(t *testing.T) {
	a := newAssistant(t)
	exec(t, a, "add John 1234567890", "add John 5555555555")

	assert.Equal(t, "Contact changed.", exec(t, a, "change John 1234567890 1112223333"))
	assert.Equal(t, "John: 1112223333; 5555555555", exec(t, a, "phone John"), "Edited phone keeps its position")

	assert.Equal(t, "Number is not found.", exec(t, a, "change John 1234567890 1112223333"))
	assert.Equal(t, "Contact is not found.", exec(t, a, "change Jane 1234567890 1112223333"))
	assert.Equal(t, "Invalid number. It must contain only numbers and 10 digits.", exec(t, a, "change John 1112223333 abc"))
	assert.Equal(t, "This number is already saved for the contact.", exec(t, a, "change John 1112223333 5555555555"))
}

func TestPhone_NotFound(t *testing.T) {
	assert.Equal(t, "Contact is not found.", exec(t, newAssistant(t), "phone Ghost"))
}

func TestAll(t *testing.T) {
	a := newAssistant(t)
	assert.Equal(t, "No contacts found.", exec(t, a, "all"))

	exec(t, a, "add John 1234567890", "add-birthday John 29.03.1993", "add Jane 9876543210")

	assert.Equal(t,
		"Contact name: John, phones: 1234567890, birthday: 29.03.1993\n"+
			"Contact name: Jane, phones: 9876543210, birthday: no information",
		exec(t, a, "all"))
}

func TestBirthday_AddUpdateShow(t *testing.T) {
	a := newAssistant(t)
	exec(t, a, "add John 1234567890")

	assert.Equal(t, "no information", exec(t, a, "show-birthday John"))
	assert.Equal(t, "Birthday added.", exec(t, a, "add-birthday John 29.03.1993"))
	assert.Equal(t, "Birthday updated.", exec(t, a, "add-birthday John 30.03.1993"))
	assert.Equal(t, "30.03.1993", exec(t, a, "show-birthday John"))

	assert.Equal(t, "Invalid date format. Use DD.MM.YYYY", exec(t, a, "add-birthday John 1993-03-30"))
	assert.Equal(t, "Invalid date format. Use DD.MM.YYYY", exec(t, a, "add-birthday John 31.02.1993"))
	assert.Equal(t, "Contact is not found.", exec(t, a, "add-birthday Jane 30.03.1993"))
	assert.Equal(t, "Contact is not found.", exec(t, a, "show-birthday Jane"))
}

func TestBirthdays(t *testing.T) {
	a := newAssistant(t)
	assert.Equal(t, "No upcoming birthdays.", exec(t, a, "birthdays"))

	exec(t, a,
		"add Anna 1234567890", "add-birthday Anna 15.06.1990", // Saturday -> Monday
		"add Bob 5555555555", "add-birthday Bob 18.06.1990", // 8 days out
		"add Cleo 1112223333", "add-birthday Cleo 11.06.1985",
	)

	assert.Equal(t, "Anna - 17.06.2024\nCleo - 11.06.2024", exec(t, a, "birthdays"))
}

func TestDeleteAndPhoneCommands(t *testing.T) {
	a := newAssistant(t)
	exec(t, a, "add John 1234567890", "add John 5555555555")

	assert.Equal(t, "John: 5555555555", exec(t, a, "find-phone John 5555555555"))
	assert.Equal(t, "Number is not found.", exec(t, a, "find-phone John 5555555556"))

	assert.Equal(t, "Phone number 1234567890 removed.", exec(t, a, "remove-phone John 1234567890"))
	assert.Equal(t, "Number is not found.", exec(t, a, "remove-phone John 1234567890"))
	assert.Equal(t, "John: 5555555555", exec(t, a, "phone John"))

	assert.Equal(t, "Contact deleted.", exec(t, a, "delete John"))
	assert.Equal(t, "Contact is not found.", exec(t, a, "delete John"))
	assert.Equal(t, "Contact is not found.", exec(t, a, "phone John"))
}

// -----------------------------------------------------------------------------
// Calendar, Export & Import
// -----------------------------------------------------------------------------

func TestCalendarAndExport(t *testing.T) {
	a := newAssistant(t)
	assert.Equal(t, "No contacts found.", exec(t, a, "export"))

	exec(t, a, "add Anna 1234567890", "add-birthday Anna 15.06.1990")

	ics := exec(t, a, "calendar")
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR"))
	assert.Contains(t, ics, "SUMMARY:Congratulate Anna 🎉", "Event wording comes from the catalog")
	assert.Contains(t, ics, "SUMMARY:🎂 Anna (34)")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240617")

	vcf := exec(t, a, "export")
	assert.True(t, strings.HasPrefix(vcf, "BEGIN:VCARD"))
	assert.Contains(t, vcf, "FN:Anna")
	assert.Contains(t, vcf, "BDAY:1990-06-15")
}

func TestImport_LocalFile(t *testing.T) {
	a := newAssistant(t)
	exec(t, a, "add Anna 1234567890")

	vcf := "BEGIN:VCARD\nVERSION:3.0\nFN:Anna\nTEL:555-123-4567\nBDAY:1990-06-15\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nFN:Ben\nTEL:9876543210\nEND:VCARD\n"
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(vcf), config.FilePermUserRW))

	assert.Equal(t, "Imported 2 contacts, skipped 0.", exec(t, a, "import "+path))
	assert.Equal(t, "Anna: 1234567890; 5551234567", exec(t, a, "phone Anna"))
	assert.Equal(t, "15.06.1990", exec(t, a, "show-birthday Anna"))
	assert.Equal(t, "Ben: 9876543210", exec(t, a, "phone Ben"))
}

func TestImport_MultiWordNames(t *testing.T) {
	a := newAssistant(t)

	vcf := "BEGIN:VCARD\nVERSION:3.0\nFN:John Smith\nTEL:1234567890\nEND:VCARD\n"
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(vcf), config.FilePermUserRW))

	assert.Equal(t, "Imported 1 contacts, skipped 0.", exec(t, a, "import "+path))
	assert.Equal(t, "John Smith: 1234567890", exec(t, a, `phone "John Smith"`))
	assert.Equal(t, "Contact changed.", exec(t, a, `change "John Smith" 1234567890 5555555555`))
	assert.Equal(t, "Birthday added.", exec(t, a, `add-birthday "John Smith" 01.02.1980`))
	assert.Equal(t, "Contact is not found.", exec(t, a, "phone John Smith"), "Unquoted words are separate arguments")

	assert.Equal(t, "Contact deleted.", exec(t, a, `delete "John Smith"`))
	assert.Equal(t, "No contacts found.", exec(t, a, "all"))
}

func TestAdd_EmptyQuotedName(t *testing.T) {
	a := newAssistant(t)

	assert.Equal(t, "Contact name cannot be empty.", exec(t, a, `add "" 1234567890`))
	assert.Equal(t, 0, a.Book.Len())
}

func TestImport_Failures(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://example.com/c.vcf", "", "").
		Return(nil, assert.AnError)

	a, err := assistant.New(addressbook.New(), MockClock{CurrentTime: monday}, mockFetcher)
	require.NoError(t, err)

	reply := exec(t, a, "import https://example.com/c.vcf")
	assert.True(t, strings.HasPrefix(reply, "Could not import contacts: "))
	assert.Contains(t, reply, assert.AnError.Error())

	reply = exec(t, a, "import "+filepath.Join(t.TempDir(), "missing.vcf"))
	assert.True(t, strings.HasPrefix(reply, "Could not import contacts: "))

	mockFetcher.AssertExpectations(t)
}

func TestPublisher_RefreshedOnMutations(t *testing.T) {
	a := newAssistant(t)
	pub := &recordingPublisher{}
	a.Publisher = pub

	exec(t, a, "add John 1234567890")
	assert.Equal(t, 1, pub.count())

	exec(t, a, "phone John", "all", "birthdays", "hello")
	assert.Equal(t, 1, pub.count(), "Read-only commands do not refresh the calendar")

	exec(t, a, "add-birthday John 12.06.1990")
	require.Equal(t, 2, pub.count())
	assert.Contains(t, string(pub.snapshots[1]), "SUMMARY:Congratulate John")

	exec(t, a, "delete Ghost")
	assert.Equal(t, 2, pub.count(), "Failed commands do not refresh the calendar")
}

// -----------------------------------------------------------------------------
// Command Loop
// -----------------------------------------------------------------------------

func TestRun_Session(t *testing.T) {
	a := newAssistant(t)
	pub := &recordingPublisher{}
	a.Publisher = pub

	in := strings.NewReader("hello\n\nadd John 1234567890\nbogus\nexit\nadd Late 1234567890\n")
	var out bytes.Buffer

	require.NoError(t, a.Run(context.Background(), in, &out))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome to the assistant bot!🤖\nAvailable commands"))
	assert.Contains(t, text, "Enter a command: How can I help you?\n")
	assert.Contains(t, text, "Contact added.\n")
	assert.Contains(t, text, "Invalid command.\n")
	assert.True(t, strings.HasSuffix(text, "Good bye!\n"))

	_, ok := a.Book.Find("Late")
	assert.False(t, ok, "Lines after exit are not processed")
	assert.Equal(t, 2, pub.count(), "Initial snapshot plus one mutation")
}

func TestRun_EndOfInput(t *testing.T) {
	a := newAssistant(t)
	var out bytes.Buffer

	require.NoError(t, a.Run(context.Background(), strings.NewReader("add John 1234567890"), &out))
	assert.True(t, strings.HasSuffix(out.String(), "Good bye!\n"))

	_, ok := a.Book.Find("John")
	assert.True(t, ok, "The last line is handled even without a trailing newline")
}

func TestRun_ContextCancelled(t *testing.T) {
	a := newAssistant(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, a.Run(ctx, strings.NewReader("add John 1234567890\n"), &out))

	_, ok := a.Book.Find("John")
	assert.False(t, ok)
}
