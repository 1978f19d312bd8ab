package main

import (
	"context"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// runCalendars lists the calendars on the credential's calendar list. The
// default rendering is one line per calendar plus an indented metadata
// block; --summary keeps just the lines, --json passes the decoded response
// through verbatim.
func runCalendars(ctx context.Context, client *gcal.Client, a *args.Parsed, out *outputWriter) error {
	out.writeVerbose("Fetching calendars...")

	list, err := client.ListCalendars(ctx, gcal.ListCalendarsOptions{
		MaxResults: int64(a.Int("max", 0)),
	})
	if err != nil {
		return err
	}

	if out.json {
		return out.writeJSON(list)
	}

	if len(list.Items) == 0 {
		out.writeMessage("No calendars found.")
		return nil
	}

	for _, cal := range list.Items {
		line := out.title(cal.Summary)
		if cal.Primary {
			line += " " + out.ok("PRIMARY")
		}
		if cal.AccessRole != "" {
			line += " " + out.subtle("("+cal.AccessRole+")")
		}
		out.writeMessage(line)

		if a.Bool("summary") {
			continue
		}
		out.writef("    ID:          %s", cal.Id)
		if cal.Description != "" {
			out.writef("    Description: %s", cal.Description)
		}
		if cal.TimeZone != "" {
			out.writef("    Time zone:   %s", cal.TimeZone)
		}
	}
	return nil
}
