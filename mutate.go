package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/config"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

const createHint = "calcli create --title TEXT --start TIME --end TIME [--description TEXT] [--location TEXT] [--attendees a@x,b@y] [--timezone ZONE] [--reminder MINUTES]"

// eventInputFor builds the mutation payload from the recognized options.
func eventInputFor(a *args.Parsed, cfg *config.Config) gcal.EventInput {
	in := gcal.EventInput{
		Summary:     a.String("title"),
		Description: a.String("description"),
		Location:    a.String("location"),
		Start:       a.String("start"),
		End:         a.String("end"),
		TimeZone:    a.String("timezone"),
	}
	if in.TimeZone == "" && (in.Start != "" || in.End != "") {
		in.TimeZone = cfg.TimeZone
	}
	if v := a.String("attendees"); v != "" {
		for _, email := range strings.Split(v, ",") {
			if email = strings.TrimSpace(email); email != "" {
				in.Attendees = append(in.Attendees, email)
			}
		}
	}
	if a.Has("reminder") {
		minutes := int64(a.Int("reminder", 0))
		in.ReminderMinutes = &minutes
	}
	return in
}

// validWhen accepts an RFC3339 timestamp or a bare date (all-day bound).
func validWhen(v string) bool {
	if _, err := time.Parse("2006-01-02", v); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, v)
	return err == nil
}

// runCreate submits a new event. All field problems are collected and
// reported in one shot instead of one per invocation.
func runCreate(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	var errs *multierror.Error
	if a.String("title") == "" {
		errs = multierror.Append(errs, errors.New("--title is required"))
	}
	for _, key := range []string{"start", "end"} {
		v := a.String(key)
		if v == "" {
			errs = multierror.Append(errs, errors.Errorf("--%s is required", key))
		} else if !validWhen(v) {
			errs = multierror.Append(errs, errors.Errorf("--%s %q is not an RFC3339 time or YYYY-MM-DD date", key, v))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return &usageError{msg: err.Error(), hint: createHint}
	}

	created, err := client.CreateEvent(ctx, calendarFor(a, cfg), eventInputFor(a, cfg))
	if err != nil {
		return errors.Wrap(err, "creating event")
	}

	if out.json {
		return out.writeJSON(created)
	}
	out.writeMessage(out.ok("Created event ") + created.Id)
	if created.HtmlLink != "" {
		out.writef("Link: %s", created.HtmlLink)
	}
	return nil
}

// runUpdate patches an event with only the provided fields.
func runUpdate(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, out *outputWriter) error {
	if len(a.Positional) == 0 {
		return &usageError{
			msg:  "update requires an event ID",
			hint: "calcli update <eventId> [--title TEXT] [--start TIME] [--end TIME] ...",
		}
	}

	var errs *multierror.Error
	for _, key := range []string{"start", "end"} {
		if v := a.String(key); v != "" && !validWhen(v) {
			errs = multierror.Append(errs, errors.Errorf("--%s %q is not an RFC3339 time or YYYY-MM-DD date", key, v))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return &usageError{msg: err.Error(), hint: "times are RFC3339 or YYYY-MM-DD"}
	}

	updated, err := client.UpdateEvent(ctx, calendarFor(a, cfg), a.Positional[0], eventInputFor(a, cfg))
	if err != nil {
		return errors.Wrap(err, "updating event")
	}

	if out.json {
		return out.writeJSON(updated)
	}
	out.writeMessage(out.ok("Updated event ") + updated.Id)
	return nil
}

// runDelete removes an event. Without --yes the user must confirm on stdin
// before the call is issued.
func runDelete(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, stdin io.Reader, out *outputWriter) error {
	if len(a.Positional) == 0 {
		return &usageError{
			msg:  "delete requires an event ID",
			hint: "calcli delete <eventId> [--calendar ID] [--yes]",
		}
	}
	eventID := a.Positional[0]

	if !a.Bool("yes") {
		if !confirm(fmt.Sprintf("Delete event %s? [y/N]: ", eventID), stdin, out.writer) {
			out.writeMessage("Aborted.")
			return nil
		}
	}

	if err := client.DeleteEvent(ctx, calendarFor(a, cfg), eventID); err != nil {
		return errors.Wrap(err, "deleting event")
	}

	if out.json {
		return out.writeJSON(map[string]interface{}{"deleted": eventID})
	}
	out.writeMessage(out.ok("Deleted event ") + eventID)
	return nil
}

// confirm reads one line and accepts only an explicit yes.
func confirm(prompt string, in io.Reader, w io.Writer) bool {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
