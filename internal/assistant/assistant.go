package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/addressbook"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// Publisher receives a fresh calendar after every change to the book.
// *server.CalendarServer satisfies it.
type Publisher interface {
	Update(data []byte)
}

// Assistant is the command layer: it parses lines, dispatches them against
// one AddressBook and renders the results as text.
type Assistant struct {
	Book      *addressbook.AddressBook
	Clock     engine.Clock
	Calendar  *engine.Generator
	Importer  *engine.Importer
	Publisher Publisher // Optional.

	localizer *i18n.Localizer
	commands  map[string]command
	order     []string
}

// New wires an assistant around book. The clock drives both the
// "birthdays" command and the generated calendar.
func New(book *addressbook.AddressBook, clock engine.Clock, fetcher engine.VCardFetcher) (*Assistant, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	a := &Assistant{
		Book:      book,
		Clock:     clock,
		Calendar:  &engine.Generator{Clock: clock},
		Importer:  &engine.Importer{Fetcher: fetcher},
		localizer: i18n.NewLocalizer(bundle, config.DefaultLanguage),
	}
	a.Calendar.FormatSummary = a.eventSummary
	a.Calendar.FormatCongratulation = func(name string) string {
		return a.msg(config.TKeyEvtCongratulate, map[string]any{"Name": name})
	}
	a.registerCommands()
	return a, nil
}

// ParseInput splits a line into a lower-cased command and its arguments.
// A double-quoted argument may contain spaces: phone "John Smith".
func ParseInput(line string) (string, []string) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// splitFields splits on whitespace. A '"' opening a field groups words until
// the next '"'; elsewhere quotes are literal. An unclosed quote runs to the
// end of the line.
func splitFields(line string) []string {
	var (
		fields  []string
		buf     strings.Builder
		inField bool
		quoted  bool
	)

	for _, r := range line {
		switch {
		case quoted:
			if r == '"' {
				quoted = false
				continue
			}
			buf.WriteRune(r)
		case unicode.IsSpace(r):
			if inField {
				fields = append(fields, buf.String())
				buf.Reset()
				inField = false
			}
		case r == '"' && !inField:
			quoted = true
			inField = true
		default:
			buf.WriteRune(r)
			inField = true
		}
	}
	if inField {
		fields = append(fields, buf.String())
	}
	return fields
}

// Handle executes one line and returns the reply. done is true for close/exit.
// Errors never escape: they are turned into messages.
func (a *Assistant) Handle(ctx context.Context, line string) (reply string, done bool) {
	name, args := ParseInput(line)
	switch name {
	case "":
		return "", false
	case config.CmdClose, config.CmdExit:
		return a.msg(config.TKeyGoodbye, nil), true
	}

	cmd, ok := a.commands[name]
	if !ok {
		return a.msg(config.TKeyInvalidCommand, nil), false
	}

	log := slog.With(
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, name,
	)

	if len(args) < cmd.minArgs {
		log.Debug(config.MsgCommand, config.LogKeyError, ErrMissingArguments)
		return a.errorReply(cmd, ErrMissingArguments), false
	}

	reply, err := cmd.run(ctx, args)
	if err != nil {
		log.Debug(config.MsgCommand, config.LogKeyError, err)
		return a.errorReply(cmd, err), false
	}
	log.Debug(config.MsgCommand, config.LogKeyArgs, len(args))

	if cmd.mutates {
		a.publish(ctx)
	}
	return reply, false
}

// Run reads commands from in until close/exit, end of input or cancellation.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := slog.With(config.LogKeyComponent, config.CompAssistant)
	log.Info(config.MsgLoopStarted)

	a.publish(ctx)

	fmt.Fprintln(out, a.msg(config.TKeyWelcome, nil))
	fmt.Fprintln(out, a.commandList())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, a.msg(config.TKeyPrompt, nil))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			log.Info(config.MsgLoopEOF)
			fmt.Fprintln(out)
			fmt.Fprintln(out, a.msg(config.TKeyGoodbye, nil))
			return nil
		}

		if ctx.Err() != nil {
			log.Info(config.MsgCtxCancel)
			return nil
		}

		reply, done := a.Handle(ctx, scanner.Text())
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
		if done {
			return nil
		}
	}
}

// publish regenerates the calendar for the optional feed.
func (a *Assistant) publish(ctx context.Context) {
	if a.Publisher == nil {
		return
	}
	ics, err := a.Calendar.Generate(ctx, a.Book)
	if err != nil {
		slog.Warn(config.ErrCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err,
		)
		return
	}
	a.Publisher.Update(ics)
}
