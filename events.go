package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"google.golang.org/api/calendar/v3"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/config"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// Display truncation for upcoming/list. This is independent of the --max
// fetch limit: the window may hold more events than get printed.
const (
	displayLimitFull    = 50
	displayLimitSummary = 10

	maxAttendeesShown = 10
)

// summaryOptionsFor maps the display flags onto formatter options. The
// default shows the continuation lines; --summary collapses each event to
// one line.
func summaryOptionsFor(a *args.Parsed) gcal.SummaryOptions {
	if a.Bool("summary") {
		return gcal.SummaryOptions{}
	}
	return gcal.SummaryOptions{ShowLocation: true, ShowAttendees: true, ShowStatus: true}
}

// writeEventBlock prints one event in the mode selected by the flags.
func writeEventBlock(out *outputWriter, a *args.Parsed, ev *calendar.Event) {
	if a.Bool("full") {
		writeEventDetail(out, ev)
		return
	}
	out.writeMessage(gcal.FormatSummaryLine(ev, summaryOptionsFor(a), nil))
}

// runToday shows the local-midnight-to-midnight window.
func runToday(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	events, err := client.TodayEvents(ctx, calendarFor(a, cfg), gcal.ListEventsOptions{
		MaxResults: int64(a.Int("max", 0)),
	})
	if err != nil {
		return err
	}

	if out.json {
		return out.writeJSON(events)
	}

	out.writeMessage(out.header("Events for " + gcal.FormatDate(time.Now())))
	if len(events.Items) == 0 {
		out.writeMessage("No events today.")
		return nil
	}
	for _, ev := range events.Items {
		writeEventBlock(out, a, ev)
	}
	return nil
}

// runUpcoming shows the next N days. The positional day count overrides
// --days / -d.
func runUpcoming(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	days := a.Int("days", 7)
	if len(a.Positional) > 0 {
		n, err := strconv.Atoi(a.Positional[0])
		if err != nil || n <= 0 {
			return &usageError{
				msg:  fmt.Sprintf("invalid day count %q", a.Positional[0]),
				hint: "calcli upcoming [days]",
			}
		}
		days = n
	}
	return upcomingReport(ctx, client, a, out, days, calendarFor(a, cfg))
}

// runList is upcoming with a forced 365-day window; the optional positional
// selects the calendar.
func runList(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	calendarID := calendarFor(a, cfg)
	if len(a.Positional) > 0 {
		calendarID = a.Positional[0]
	}
	return upcomingReport(ctx, client, a, out, 365, calendarID)
}

func upcomingReport(ctx context.Context, client *gcal.Client, a *args.Parsed, out *outputWriter, days int, calendarID string) error {
	events, err := client.UpcomingEvents(ctx, days, calendarID, gcal.ListEventsOptions{
		MaxResults: int64(a.Int("max", 0)),
	})
	if err != nil {
		return err
	}

	if out.json {
		return out.writeJSON(events)
	}

	out.writeMessage(out.header(fmt.Sprintf("Events for the next %d days", days)))
	if len(events.Items) == 0 {
		out.writeMessage("No upcoming events.")
		return nil
	}

	limit := displayLimitFull
	if a.Bool("summary") {
		limit = displayLimitSummary
	}

	lastDay := ""
	for shown, ev := range events.Items {
		if shown == limit {
			out.writeMessage(out.subtle(fmt.Sprintf("... %d more", len(events.Items)-limit)))
			break
		}
		if start, ok := gcal.StartTime(ev, nil); ok {
			if day := gcal.FormatDate(start); day != lastDay {
				out.writeMessage(out.header("--- " + day + " ---"))
				lastDay = day
			}
		}
		writeEventBlock(out, a, ev)
	}
	return nil
}

// runSearch runs a free-text query, optionally bounded by --from / --to.
func runSearch(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	if len(a.Positional) == 0 {
		return &usageError{
			msg:  "search requires a query",
			hint: "calcli search <query> [--from DATE] [--to DATE] [--calendar ID] [--max N]",
		}
	}
	query := strings.Join(a.Positional, " ")

	opts := gcal.SearchOptions{
		CalendarID: calendarFor(a, cfg),
		MaxResults: int64(a.Int("max", 0)),
	}
	if v := a.String("from"); v != "" {
		t, err := parseDateArg(v)
		if err != nil {
			return &usageError{msg: fmt.Sprintf("invalid --from date %q", v), hint: "dates are YYYY-MM-DD or RFC3339"}
		}
		opts.TimeMin = t
	}
	if v := a.String("to"); v != "" {
		t, err := parseDateArg(v)
		if err != nil {
			return &usageError{msg: fmt.Sprintf("invalid --to date %q", v), hint: "dates are YYYY-MM-DD or RFC3339"}
		}
		opts.TimeMax = t
	}

	events, err := client.SearchEvents(ctx, query, opts)
	if err != nil {
		return err
	}

	if out.json {
		return out.writeJSON(events)
	}

	if len(events.Items) == 0 {
		out.writef("No events matching %q.", query)
		return nil
	}

	out.writeMessage(out.header(fmt.Sprintf("Events matching %q", query)))
	lastDay := ""
	for _, ev := range events.Items {
		if start, ok := gcal.StartTime(ev, nil); ok {
			if day := gcal.FormatDate(start); day != lastDay {
				out.writeMessage(out.header("--- " + day + " ---"))
				lastDay = day
			}
		}
		writeEventBlock(out, a, ev)
	}
	return nil
}

// parseDateArg accepts a calendar date or a full RFC3339 timestamp.
func parseDateArg(v string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// runEvent fetches one event and prints its full detail.
func runEvent(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	if len(a.Positional) == 0 {
		return &usageError{
			msg:  "event requires an event ID",
			hint: "calcli event <eventId> [--calendar ID]",
		}
	}

	ev, err := client.GetEvent(ctx, calendarFor(a, cfg), a.Positional[0])
	if err != nil {
		return err
	}

	if out.json {
		return out.writeJSON(ev)
	}

	writeEventDetail(out, ev)
	return nil
}

// writeEventDetail prints the full detail block for one event.
func writeEventDetail(out *outputWriter, ev *calendar.Event) {
	n := gcal.Normalize(ev)

	out.writeMessage(out.title(n.Summary))
	if rng := gcal.FormatTimeRange(ev, nil); rng != "" {
		out.writef("  Time:        %s", rng)
	}
	if start, ok := gcal.StartTime(ev, nil); ok {
		if end, ok := gcal.EndTime(ev, nil); ok {
			out.writef("  Date:        %s", gcal.FormatDateRange(start, end))
		} else {
			out.writef("  Date:        %s", gcal.FormatDate(start))
		}
	}
	if n.Location != "" {
		out.writef("  Location:    %s", n.Location)
	}
	if n.Description != "" {
		out.writef("  Description: %s", renderDescription(n.Description))
	}
	if n.AttendeeCount > 0 {
		out.writef("  Attendees (%d):", n.AttendeeCount)
		for i, att := range n.Attendees {
			if i == maxAttendeesShown {
				out.writeMessage(out.subtle(fmt.Sprintf("    ... %d more", n.AttendeeCount-maxAttendeesShown)))
				break
			}
			line := "    " + att.Email
			if att.DisplayName != "" {
				line = "    " + att.DisplayName + " <" + att.Email + ">"
			}
			if att.ResponseStatus != "" {
				line += " " + out.subtle("["+att.ResponseStatus+"]")
			}
			out.writeMessage(line)
		}
	}
	if n.Status != "" {
		out.writef("  Status:      %s", n.Status)
	}
	if n.Created != "" {
		out.writef("  Created:     %s", n.Created)
	}
	if n.Updated != "" {
		out.writef("  Updated:     %s", n.Updated)
	}
	if n.HTMLLink != "" {
		out.writef("  Link:        %s", n.HTMLLink)
	}
}

// renderDescription converts HTML descriptions (common on invites sent by
// other tools) to markdown; plain text passes through.
func renderDescription(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}
	converted, err := md.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(converted)
}
