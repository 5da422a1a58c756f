package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-contacts/internal/addressbook"
	"github.com/tartampluch/go-contacts/internal/config"
)

// Generator renders an AddressBook as an iCalendar feed.
type Generator struct {
	Clock Clock // Interface for time mocking.

	// Optional wording hooks; assistant.New fills them from its catalog.
	FormatSummary        func(name string, age int) string
	FormatCongratulation func(name string) string
}

// Generate builds a VCALENDAR containing yearly birthday events for the
// previous, current and next year, plus one event per upcoming congratulation.
func (g *Generator) Generate(ctx context.Context, book *addressbook.AddressBook) ([]byte, error) {
	start := time.Now()

	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)

	// Non-standard property: SetText would add a VALUE=TEXT parameter.
	calName := ical.NewProp(config.PropXWRCalName)
	calName.Value = config.ICalCalName
	cal.Props.Set(calName)

	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ records, withBday, events int }{}

	for _, r := range book.Records() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.records++

		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		stats.withBday++

		for _, e := range g.birthdayEvents(r, bday, now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
			stats.events++
		}
	}

	for _, c := range book.UpcomingBirthdays(now) {
		r, _ := book.Find(c.Name)
		e := g.congratulationEvent(r, c)
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
		stats.events++
	}

	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.Info(config.MsgGenSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRecords, stats.records),
			slog.Int(config.LogKeyEvents, stats.events),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	// Clients flag a VCALENDAR without components as invalid.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// birthdayEvents generates all-day events for CurrentYear-1..CurrentYear+1,
// skipping years before the person was born.
func (g *Generator) birthdayEvents(r *addressbook.Record, bday addressbook.Birthday, now time.Time) []*ical.Event {
	currentYear := now.Year()
	uid := recordUID(r).String()

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < bday.Year() {
			continue
		}
		age := y - bday.Year()

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, g.summary(r.Name(), age))

		// Go normalizes Feb 29 to Mar 1 in non-leap years.
		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(time.Date(y, bday.Month(), bday.Day(), 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStart)

		events = append(events, event)
	}
	return events
}

func (g *Generator) summary(name string, age int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// congratulationEvent marks the weekend-adjusted greeting day with a morning alarm.
func (g *Generator) congratulationEvent(r *addressbook.Record, c addressbook.Congratulation) *ical.Event {
	summary := fmt.Sprintf(config.FallbackCongratulate, c.Name)
	if g.FormatCongratulation != nil {
		summary = g.FormatCongratulation(c.Name)
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatCongratID,
		recordUID(r).String(), c.Date.Format(config.DateFormatFullBasic), config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(c.Date)
	event.Props.Set(dtStart)

	addAlarm(event, config.CongratulationTrigger, summary)
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
