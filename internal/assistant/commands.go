package assistant

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-contacts/internal/addressbook"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// ErrMissingArguments is returned when a command gets too few tokens.
var ErrMissingArguments = errors.New(config.ErrKindMissingArgs)

type command struct {
	usageKey string
	argsKey  string // Message shown on ErrMissingArguments
	minArgs  int
	mutates  bool // Triggers a calendar refresh on success
	run      func(ctx context.Context, args []string) (string, error)
}

func (a *Assistant) registerCommands() {
	a.commands = make(map[string]command)
	add := func(name string, c command) {
		a.commands[name] = c
		a.order = append(a.order, name)
	}

	add(config.CmdHello, command{usageKey: config.TKeyUsageHello, run: a.hello})
	add(config.CmdAdd, command{usageKey: config.TKeyUsageAdd, argsKey: config.TKeyArgsAdd, minArgs: 2, mutates: true, run: a.addContact})
	add(config.CmdChange, command{usageKey: config.TKeyUsageChange, argsKey: config.TKeyArgsChange, minArgs: 3, mutates: true, run: a.changeContact})
	add(config.CmdPhone, command{usageKey: config.TKeyUsagePhone, argsKey: config.TKeyArgsName, minArgs: 1, run: a.showPhone})
	add(config.CmdAll, command{usageKey: config.TKeyUsageAll, run: a.showAll})
	add(config.CmdAddBirthday, command{usageKey: config.TKeyUsageAddBirthday, argsKey: config.TKeyArgsAddBirthday, minArgs: 2, mutates: true, run: a.addBirthday})
	add(config.CmdShowBirthday, command{usageKey: config.TKeyUsageShowBirthday, argsKey: config.TKeyArgsName, minArgs: 1, run: a.showBirthday})
	add(config.CmdBirthdays, command{usageKey: config.TKeyUsageBirthdays, run: a.birthdays})
	add(config.CmdDelete, command{usageKey: config.TKeyUsageDelete, argsKey: config.TKeyArgsName, minArgs: 1, mutates: true, run: a.deleteContact})
	add(config.CmdRemovePhone, command{usageKey: config.TKeyUsageRemovePhone, argsKey: config.TKeyArgsNamePhone, minArgs: 2, mutates: true, run: a.removePhone})
	add(config.CmdFindPhone, command{usageKey: config.TKeyUsageFindPhone, argsKey: config.TKeyArgsNamePhone, minArgs: 2, run: a.findPhone})
	add(config.CmdCalendar, command{usageKey: config.TKeyUsageCalendar, run: a.calendar})
	add(config.CmdExport, command{usageKey: config.TKeyUsageExport, run: a.export})
	add(config.CmdImport, command{usageKey: config.TKeyUsageImport, argsKey: config.TKeyArgsImport, minArgs: 1, mutates: true, run: a.importContacts})
	add(config.CmdCommands, command{usageKey: config.TKeyUsageCommands, run: a.listCommands})
}

// commandList renders the bulleted help, ending with close/exit.
func (a *Assistant) commandList() string {
	usages := make([]string, 0, len(a.order)+1)
	for _, name := range a.order {
		usages = append(usages, a.msg(a.commands[name].usageKey, nil))
	}
	usages = append(usages, a.msg(config.TKeyUsageExit, nil))
	return a.msg(config.TKeyCommandsHeader, nil) + config.CommandBullet + strings.Join(usages, config.CommandBullet)
}

// errorReply maps an error to its catalog message.
func (a *Assistant) errorReply(cmd command, err error) string {
	switch {
	case errors.Is(err, ErrMissingArguments):
		if cmd.argsKey == "" {
			return a.msg(config.TKeyArgsDefault, nil)
		}
		return a.msg(cmd.argsKey, nil)
	case errors.Is(err, addressbook.ErrRecordNotFound):
		return a.msg(config.TKeyErrContactNF, nil)
	case errors.Is(err, addressbook.ErrNumberNotFound):
		return a.msg(config.TKeyErrNumberNF, nil)
	case errors.Is(err, addressbook.ErrInvalidPhone):
		return a.msg(config.TKeyErrInvalidPhone, nil)
	case errors.Is(err, addressbook.ErrInvalidBirthday):
		return a.msg(config.TKeyErrInvalidDate, nil)
	case errors.Is(err, addressbook.ErrInvalidName):
		return a.msg(config.TKeyErrInvalidName, nil)
	case errors.Is(err, addressbook.ErrPhoneExists):
		return a.msg(config.TKeyErrPhoneConflict, nil)
	default:
		slog.Error(config.ErrCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err,
		)
		return a.msg(config.TKeyErrInternal, nil)
	}
}

func (a *Assistant) find(name string) (*addressbook.Record, error) {
	record, ok := a.Book.Find(name)
	if !ok {
		return nil, addressbook.ErrRecordNotFound
	}
	return record, nil
}

func (a *Assistant) hello(context.Context, []string) (string, error) {
	return a.msg(config.TKeyHello, nil), nil
}

func (a *Assistant) listCommands(context.Context, []string) (string, error) {
	return a.commandList(), nil
}

// addContact creates the contact when needed, then attaches the phone.
// The record is only stored once the phone is valid.
func (a *Assistant) addContact(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]

	record, exists := a.Book.Find(name)
	if !exists {
		var err error
		if record, err = addressbook.NewRecord(name); err != nil {
			return "", err
		}
	}

	added, err := record.AddPhone(phone)
	if err != nil {
		return "", err
	}
	if !exists {
		a.Book.AddRecord(record)
		return a.msg(config.TKeyContactAdded, nil), nil
	}
	if !added {
		return a.msg(config.TKeyPhoneExists, map[string]any{"Phone": phone}), nil
	}
	return a.msg(config.TKeyContactUpdated, nil), nil
}

func (a *Assistant) changeContact(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return a.msg(config.TKeyContactChanged, nil), nil
}

func (a *Assistant) showPhone(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}

	phones := make([]string, 0, len(record.Phones()))
	for _, p := range record.Phones() {
		phones = append(phones, p.String())
	}
	list := strings.Join(phones, config.PhoneSeparator)
	if list == "" {
		list = config.NoInformation
	}
	return a.msg(config.TKeyPhones, map[string]any{"Name": record.Name(), "Phones": list}), nil
}

func (a *Assistant) showAll(context.Context, []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.msg(config.TKeyNoContacts, nil), nil
	}
	lines := make([]string, 0, a.Book.Len())
	for _, r := range a.Book.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) addBirthday(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	updated, err := record.AddBirthday(args[1])
	if err != nil {
		return "", err
	}
	if updated {
		return a.msg(config.TKeyBirthdayUpdated, nil), nil
	}
	return a.msg(config.TKeyBirthdayAdded, nil), nil
}

func (a *Assistant) showBirthday(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	return record.ShowBirthday(), nil
}

func (a *Assistant) birthdays(context.Context, []string) (string, error) {
	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now())
	if len(upcoming) == 0 {
		return a.msg(config.TKeyNoUpcoming, nil), nil
	}
	lines := make([]string, 0, len(upcoming))
	for _, c := range upcoming {
		lines = append(lines, a.msg(config.TKeyUpcomingLine, map[string]any{
			"Name": c.Name,
			"Date": c.CongratulationDate(),
		}))
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) deleteContact(_ context.Context, args []string) (string, error) {
	if err := a.Book.Delete(args[0]); err != nil {
		return "", err
	}
	return a.msg(config.TKeyContactDeleted, nil), nil
}

func (a *Assistant) removePhone(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := record.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return a.msg(config.TKeyPhoneRemoved, map[string]any{"Phone": args[1]}), nil
}

func (a *Assistant) findPhone(_ context.Context, args []string) (string, error) {
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	phone, err := record.FindPhone(args[1])
	if err != nil {
		return "", err
	}
	return a.msg(config.TKeyPhoneFound, map[string]any{"Name": record.Name(), "Phone": phone.String()}), nil
}

func (a *Assistant) calendar(ctx context.Context, _ []string) (string, error) {
	ics, err := a.Calendar.Generate(ctx, a.Book)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(ics), "\r\n"), nil
}

func (a *Assistant) export(context.Context, []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.msg(config.TKeyNoContacts, nil), nil
	}
	var buf bytes.Buffer
	if err := engine.ExportVCards(&buf, a.Book); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

// importContacts reports source failures as a reply; the book keeps whatever
// was merged before the failure.
func (a *Assistant) importContacts(ctx context.Context, args []string) (string, error) {
	stats, err := a.Importer.Import(ctx, args[0], a.Book)
	if err != nil {
		slog.Warn(config.ErrVCardParse,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err,
		)
		return a.msg(config.TKeyErrImportFailed, map[string]any{"Error": err.Error()}), nil
	}
	return a.msg(config.TKeyImported, map[string]any{
		"Imported": stats.Imported,
		"Skipped":  stats.Skipped,
	}), nil
}
