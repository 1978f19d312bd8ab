package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// authOutput is the JSON shape for a successful auth probe.
type authOutput struct {
	OK        bool   `json:"ok"`
	Calendars int    `json:"calendars"`
	Primary   string `json:"primary,omitempty"`
}

// runAuth verifies the credential with a one-item probe, then reports how
// many calendars are accessible and which one is primary.
func runAuth(ctx context.Context, client *gcal.Client, out *outputWriter) error {
	out.writeVerbose("Probing calendar list...")
	if _, err := client.ListCalendars(ctx, gcal.ListCalendarsOptions{MaxResults: 1}); err != nil {
		return errors.Wrap(err, "authentication check failed")
	}

	list, err := client.ListCalendars(ctx, gcal.ListCalendarsOptions{})
	if err != nil {
		return errors.Wrap(err, "listing calendars")
	}

	primary := ""
	for _, cal := range list.Items {
		if cal.Primary {
			primary = cal.Summary
			break
		}
	}

	if out.json {
		return out.writeJSON(authOutput{OK: true, Calendars: len(list.Items), Primary: primary})
	}

	out.writeMessage(out.ok("Authentication OK"))
	out.writef("%d calendars accessible", len(list.Items))
	if primary != "" {
		out.writef("Primary calendar: %s", primary)
	}
	return nil
}
