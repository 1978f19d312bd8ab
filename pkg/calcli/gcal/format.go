package gcal

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

// untitled is the display placeholder for events without a summary.
const untitled = "(no title)"

// NormalizedEvent is the canonical display form of an event. It is derived
// purely from the raw record, recomputed per render and never cached.
type NormalizedEvent struct {
	ID            string                    `json:"id"`
	Summary       string                    `json:"summary"`
	Description   string                    `json:"description,omitempty"`
	Location      string                    `json:"location,omitempty"`
	Start         string                    `json:"start,omitempty"`
	End           string                    `json:"end,omitempty"`
	IsAllDay      bool                      `json:"isAllDay"`
	Status        string                    `json:"status,omitempty"`
	Created       string                    `json:"created,omitempty"`
	Updated       string                    `json:"updated,omitempty"`
	HTMLLink      string                    `json:"htmlLink,omitempty"`
	Attendees     []*calendar.EventAttendee `json:"attendees"`
	AttendeeCount int                       `json:"attendeeCount"`
	Organizer     *calendar.EventOrganizer  `json:"organizer,omitempty"`
	Recurrence    []string                  `json:"recurrence,omitempty"`
	Reminders     *calendar.EventReminders  `json:"reminders,omitempty"`
}

// Normalize converts a raw event into its canonical display form. It is
// total over any well-formed record: missing optional fields default, a
// missing start/end only leaves the corresponding bound empty.
func Normalize(ev *calendar.Event) NormalizedEvent {
	n := NormalizedEvent{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Status:      ev.Status,
		Created:     ev.Created,
		Updated:     ev.Updated,
		HTMLLink:    ev.HtmlLink,
		Attendees:   ev.Attendees,
		Organizer:   ev.Organizer,
		Recurrence:  ev.Recurrence,
		Reminders:   ev.Reminders,
	}
	if n.Summary == "" {
		n.Summary = untitled
	}
	if n.Attendees == nil {
		n.Attendees = []*calendar.EventAttendee{}
	}
	n.AttendeeCount = len(n.Attendees)

	if ev.Start != nil {
		if ev.Start.DateTime != "" {
			n.Start = ev.Start.DateTime
		} else if ev.Start.Date != "" {
			n.Start = ev.Start.Date
			n.IsAllDay = true
		}
	}
	if ev.End != nil {
		if ev.End.DateTime != "" {
			n.End = ev.End.DateTime
		} else if ev.End.Date != "" {
			n.End = ev.End.Date
		}
	}
	return n
}

// IsAllDay reports whether the raw event is an all-day event: its start
// carries a date and no dateTime.
func IsAllDay(ev *calendar.Event) bool {
	return ev.Start != nil && ev.Start.DateTime == "" && ev.Start.Date != ""
}

// FormatTimeRange renders "All day" for all-day events, otherwise the
// start-end clock times in loc (nil means the local zone), e.g.
// "10:00 AM - 11:30 AM". Unparseable bounds fall back to the raw strings.
func FormatTimeRange(ev *calendar.Event, loc *time.Location) string {
	if IsAllDay(ev) {
		return "All day"
	}
	if ev.Start == nil || ev.Start.DateTime == "" {
		return ""
	}
	return fmt.Sprintf("%s - %s", clockTime(ev.Start.DateTime, loc), clockTime(endDateTime(ev), loc))
}

func endDateTime(ev *calendar.Event) string {
	if ev.End == nil {
		return ""
	}
	return ev.End.DateTime
}

func clockTime(value string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("3:04 PM")
}

// SummaryOptions selects the continuation lines FormatSummaryLine appends
// below the one-line header.
type SummaryOptions struct {
	ShowLocation  bool
	ShowAttendees bool
	ShowStatus    bool
}

// summaryIndent lines continuation rows up under the title column (the time
// range is padded to 20 columns plus the separating space).
const summaryIndent = "                     "

// FormatSummaryLine renders the compact listing form: the time range padded
// to 20 columns, then the title. Location, attendee count and non-confirmed
// status are appended as indented lines only when the matching flag is set
// and the field carries information. With all flags off the result is
// always a single line.
func FormatSummaryLine(ev *calendar.Event, opts SummaryOptions, loc *time.Location) string {
	n := Normalize(ev)

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %s", FormatTimeRange(ev, loc), n.Summary)

	if opts.ShowLocation && n.Location != "" {
		b.WriteString("\n" + summaryIndent + "Location: " + n.Location)
	}
	if opts.ShowAttendees && n.AttendeeCount > 0 {
		fmt.Fprintf(&b, "\n%sAttendees: %d", summaryIndent, n.AttendeeCount)
	}
	if opts.ShowStatus && n.Status != "" && n.Status != "confirmed" {
		b.WriteString("\n" + summaryIndent + "Status: " + n.Status)
	}
	return b.String()
}

// FormatDate renders a single date as e.g. "Mon Jan 5 2026".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 2 2006")
}

// FormatDateRange collapses to one full date when both bounds fall on the
// same calendar day, otherwise shows "Jan 5 - Jan 7" (month and day only).
func FormatDateRange(start, end time.Time) string {
	if sameDay(start, end) {
		return FormatDate(start)
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartTime parses the event's start bound in loc. All-day dates parse at
// midnight in loc. ok is false when the event has no usable start.
func StartTime(ev *calendar.Event, loc *time.Location) (t time.Time, ok bool) {
	if ev.Start == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if ev.Start.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.In(loc), true
	}
	if ev.Start.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", ev.Start.Date, loc)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// EndTime is StartTime for the end bound.
func EndTime(ev *calendar.Event, loc *time.Location) (t time.Time, ok bool) {
	if ev.End == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if ev.End.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.In(loc), true
	}
	if ev.End.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", ev.End.Date, loc)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}
