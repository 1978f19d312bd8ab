package gcal

import (
	"io"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/pkg/errors"
	"google.golang.org/api/calendar/v3"
)

// ParseICS decodes iCalendar data and returns one API event payload per
// VEVENT, ready for InsertEvent. Only the fields the calendar service
// accepts on insert are carried over.
func ParseICS(r io.Reader) ([]*calendar.Event, error) {
	dec := ical.NewDecoder(r)

	var events []*calendar.Event
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding calendar")
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			ev, err := eventFromVEvent(comp)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

func eventFromVEvent(comp *ical.Component) (*calendar.Event, error) {
	ev := &calendar.Event{}

	if p := comp.Props.Get(ical.PropUID); p != nil {
		ev.ICalUID = p.Value
	}
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		ev.Summary = p.Value
	}
	if p := comp.Props.Get(ical.PropDescription); p != nil {
		ev.Description = p.Value
	}
	if p := comp.Props.Get(ical.PropLocation); p != nil {
		ev.Location = p.Value
	}

	if p := comp.Props.Get(ical.PropDateTimeStart); p != nil {
		dt, err := icsBound(p)
		if err != nil {
			return nil, errors.Wrap(err, "event start")
		}
		ev.Start = dt
	}
	if p := comp.Props.Get(ical.PropDateTimeEnd); p != nil {
		dt, err := icsBound(p)
		if err != nil {
			return nil, errors.Wrap(err, "event end")
		}
		ev.End = dt
	}

	if p := comp.Props.Get(ical.PropStatus); p != nil {
		switch s := strings.ToLower(p.Value); s {
		case "confirmed", "tentative", "cancelled":
			ev.Status = s
		}
	}

	for _, p := range comp.Props.Values(ical.PropAttendee) {
		a := &calendar.EventAttendee{Email: stripMailto(p.Value)}
		if cn := p.Params.Get("CN"); cn != "" {
			a.DisplayName = cn
		}
		ev.Attendees = append(ev.Attendees, a)
	}

	for _, p := range comp.Props.Values(ical.PropRecurrenceRule) {
		ev.Recurrence = append(ev.Recurrence, "RRULE:"+p.Value)
	}

	return ev, nil
}

// icsBound maps an iCal DTSTART/DTEND property onto the API's one-of
// date/dateTime shape: VALUE=DATE (or a bare 8-digit stamp) becomes an
// all-day date, everything else a timed bound.
func icsBound(p *ical.Prop) (*calendar.EventDateTime, error) {
	value := p.Value

	if p.Params.Get("VALUE") == "DATE" || len(value) == len("20060102") {
		t, err := time.Parse("20060102", value)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing date %q", value)
		}
		return &calendar.EventDateTime{Date: t.Format("2006-01-02")}, nil
	}

	loc := time.UTC
	if tzid := p.Params.Get("TZID"); tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}
	for _, layout := range []string{"20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, value); err == nil {
			if layout == "20060102T150405" {
				t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
			}
			return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}, nil
		}
	}
	return nil, errors.Errorf("unparseable date-time %q", value)
}

func stripMailto(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "mailto:") {
		return s[len("mailto:"):]
	}
	return s
}
