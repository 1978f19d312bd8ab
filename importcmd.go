package main

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/config"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// runImport inserts events parsed from an ICS file ("-" reads stdin).
// --dry-run parses and reports without touching the calendar.
func runImport(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, stdin io.Reader, out *outputWriter) error {
	if len(a.Positional) == 0 {
		return &usageError{
			msg:  "import requires an ICS file path",
			hint: "calcli import <file> [--calendar ID] [--dry-run]  (use - for stdin)",
		}
	}

	var r io.Reader
	if a.Positional[0] == "-" {
		r = stdin
	} else {
		f, err := os.Open(a.Positional[0])
		if err != nil {
			return errors.Wrap(err, "opening ICS file")
		}
		defer f.Close()
		r = f
	}

	events, err := gcal.ParseICS(r)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		out.writeMessage("No events found in ICS input.")
		return nil
	}

	calendarID := calendarFor(a, cfg)
	dryRun := a.Bool("dry-run")

	for _, ev := range events {
		title := ev.Summary
		if title == "" {
			title = "(no title)"
		}
		if dryRun {
			out.writef("Would import: %s", title)
			continue
		}
		created, err := client.InsertEvent(ctx, calendarID, ev)
		if err != nil {
			return errors.Wrapf(err, "importing %q", title)
		}
		out.writef("Imported %s (%s)", title, created.Id)
	}

	if dryRun {
		out.writef("%d events parsed; none imported (dry run).", len(events))
	} else {
		out.writef("Imported %d events.", len(events))
	}
	return nil
}
