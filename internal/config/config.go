package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contacts"
	AppID             = "com.github.tartampluch.go-contacts"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagCalendarPort = "calendar-port"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescCalPort  = "Serve the birthday calendar on 127.0.0.1:<port> (disabled when empty)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Address Book Rules & Formats
// -----------------------------------------------------------------------------

const (
	// PhoneDigits is the exact length of a valid phone number.
	PhoneDigits = 10

	// DateFormatBirthday is the user-facing DD.MM.YYYY layout.
	DateFormatBirthday = "02.01.2006"

	// UpcomingWindowDays is the inclusive look-ahead for congratulations.
	UpcomingWindowDays = 7

	NoInformation  = "no information"
	PhoneSeparator = "; "
	FormatRecord   = "Contact name: %s, phones: %s, birthday: %s"
)

// -----------------------------------------------------------------------------
// Command Protocol
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdCommands     = "commands"
	CmdDelete       = "delete"
	CmdRemovePhone  = "remove-phone"
	CmdFindPhone    = "find-phone"
	CmdCalendar     = "calendar"
	CmdExport       = "export"
	CmdImport       = "import"
	CmdClose        = "close"
	CmdExit         = "exit"

	CommandBullet = "\n 👉 "
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome         = "msg_welcome"
	TKeyPrompt          = "msg_prompt"
	TKeyGoodbye         = "msg_goodbye"
	TKeyHello           = "msg_hello"
	TKeyInvalidCommand  = "msg_invalid_command"
	TKeyCommandsHeader  = "msg_commands_header"
	TKeyContactAdded    = "msg_contact_added"
	TKeyContactUpdated  = "msg_contact_updated"
	TKeyContactChanged  = "msg_contact_changed"
	TKeyContactDeleted  = "msg_contact_deleted"
	TKeyPhoneExists     = "msg_phone_exists"     // Requires Phone
	TKeyPhoneRemoved    = "msg_phone_removed"    // Requires Phone
	TKeyPhoneFound      = "msg_phone_found"      // Requires Name, Phone
	TKeyPhones          = "msg_phones"           // Requires Name, Phones
	TKeyBirthdayAdded   = "msg_birthday_added"   // Add, no previous value
	TKeyBirthdayUpdated = "msg_birthday_updated" // Overwrite
	TKeyNoContacts      = "msg_no_contacts"
	TKeyNoUpcoming      = "msg_no_upcoming"
	TKeyUpcomingLine    = "msg_upcoming_line" // Requires Name, Date
	TKeyImported        = "msg_imported"      // Requires Imported, Skipped

	// Calendar wording
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)
	TKeyEvtCongratulate = "event_congratulate"  // Requires Name

	// Command usage lines shown by "commands"
	TKeyUsageHello        = "usage_hello"
	TKeyUsageAdd          = "usage_add"
	TKeyUsageChange       = "usage_change"
	TKeyUsagePhone        = "usage_phone"
	TKeyUsageAll          = "usage_all"
	TKeyUsageAddBirthday  = "usage_add_birthday"
	TKeyUsageShowBirthday = "usage_show_birthday"
	TKeyUsageBirthdays    = "usage_birthdays"
	TKeyUsageDelete       = "usage_delete"
	TKeyUsageRemovePhone  = "usage_remove_phone"
	TKeyUsageFindPhone    = "usage_find_phone"
	TKeyUsageCalendar     = "usage_calendar"
	TKeyUsageExport       = "usage_export"
	TKeyUsageImport       = "usage_import"
	TKeyUsageCommands     = "usage_commands"
	TKeyUsageExit         = "usage_exit"

	// Missing arguments, one per command
	TKeyArgsAdd          = "err_args_add"
	TKeyArgsChange       = "err_args_change"
	TKeyArgsName         = "err_args_name"
	TKeyArgsAddBirthday  = "err_args_add_birthday"
	TKeyArgsNamePhone    = "err_args_name_phone"
	TKeyArgsImport       = "err_args_import"
	TKeyArgsDefault      = "err_args_default"
	TKeyErrContactNF     = "err_contact_not_found"
	TKeyErrNumberNF      = "err_number_not_found"
	TKeyErrInvalidPhone  = "err_invalid_phone"
	TKeyErrInvalidDate   = "err_invalid_date"
	TKeyErrInvalidName   = "err_invalid_name"
	TKeyErrPhoneConflict = "err_phone_conflict"
	TKeyErrImportFailed  = "err_import_failed"
	TKeyErrInternal      = "err_internal"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	LocalesDir      = "locales"
	LocalePrefix    = "active."
	LocaleSuffix    = ".json"
	FallbackName    = "Unknown"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Contacts//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocontacts"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// Congratulation events remind on the morning of the day.
	CongratulationTrigger = "PT9H"

	VCardVersion4 = "4.0"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & UID Generation
// -----------------------------------------------------------------------------

const (
	// Date layouts used for vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	FormatHashInput = "%s|%s"
	FormatUID       = "%s-%d@%s"
	FormatCongratID = "%s-congrats-%s@%s"

	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackCongratulate = "Congratulate %s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB of vCards is plenty for a personal book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/birthdays.ics"
	RouteHealth         = "/healthz"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	HealthOK            = "ok"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs and Data Layer)
// -----------------------------------------------------------------------------

const (
	// Data layer kinds and details
	ErrKindInvalidValue = "invalid value"
	ErrKindNotFound     = "not found"
	ErrKindMissingArgs  = "missing arguments"
	ErrPhoneFormat      = "phone number must contain exactly 10 digits"
	ErrBirthdayFormat   = "invalid date format, use DD.MM.YYYY"
	ErrNameEmpty        = "contact name cannot be empty"
	ErrPhoneDuplicate   = "phone number already exists"
	ErrNumberMissing    = "phone number"
	ErrRecordMissing    = "record"

	// Infrastructure
	ErrSourceEmpty    = "import error: source is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrReadInput      = "failed to read command input"
	ErrCommandFailed  = "command failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCtxCancel     = "Context cancelled, stopping command loop"
	MsgLoopStarted   = "Command loop started"
	MsgLoopEOF       = "End of input reached"
	MsgCommand       = "Command handled"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "vCard export finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeyRecords   = "records"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompAssistant = "assistant"
	CompEngine    = "engine"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompMain      = "main"
	CompI18n      = "i18n"
)
