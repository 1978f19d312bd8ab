// calcli is a stateless command-line client for the Google Calendar API.
// Each invocation parses its arguments, resolves a host-managed credential,
// issues a short sequence of authenticated calls and exits. Token
// acquisition and refresh are the host's job; see pkg/calcli/creds.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/config"
	"github.com/wesnick/calcli/pkg/calcli/creds"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

var version = "dev"

// usageError is a malformed invocation: missing positional, bad date, and
// the like. It renders as the problem plus a one-line usage hint.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string {
	return e.msg + "\nUsage: " + e.hint
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole command lifecycle: parse, dispatch, report, exit code.
// No error propagates past it.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := args.Parse(argv)

	if a.Bool("no-color") {
		color.NoColor = true
	}
	log.SetOutput(stderr)
	if a.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	out := newOutputWriter(a.Bool("json"), a.Bool("verbose"), stdout, stderr)

	if a.Command == "" || a.Command == "help" || a.Bool("help") {
		printUsage(stdout)
		return 0
	}
	if a.Command == "version" {
		fmt.Fprintf(stdout, "calcli %s\n", version)
		return 0
	}
	if !knownCommand(a.Command) {
		out.writeError(fmt.Errorf("unknown command %q; run \"calcli help\" for usage", a.Command))
		return 1
	}

	dir, err := config.Dir(a.String("config"))
	if err != nil {
		out.writeError(err)
		return 1
	}
	cfg, err := config.Load(dir)
	if err != nil {
		out.writeError(err)
		return 1
	}
	source, err := creds.NewSource(dir)
	if err != nil {
		out.writeError(err)
		return 1
	}
	client, err := gcal.NewClient(source, cfg.Credential)
	if err != nil {
		out.writeError(err)
		return 1
	}

	ctx := context.Background()
	if err := dispatch(ctx, client, a, cfg, stdin, out); err != nil {
		out.writeError(err)
		return 1
	}
	return 0
}

// dispatch routes a parsed invocation to its command handler. Unrecognized
// options are ignored by handlers that do not read them; unrecognized
// commands are rejected here.
func dispatch(ctx context.Context, client *gcal.Client, a *args.Parsed, cfg *config.Config, stdin io.Reader, out *outputWriter) error {
	switch a.Command {
	case "auth":
		return runAuth(ctx, client, out)
	case "calendars":
		return runCalendars(ctx, client, a, out)
	case "today":
		return runToday(ctx, client, a, cfg, out)
	case "upcoming":
		return runUpcoming(ctx, client, a, cfg, out)
	case "list":
		return runList(ctx, client, a, cfg, out)
	case "search":
		return runSearch(ctx, client, a, cfg, out)
	case "event":
		return runEvent(ctx, client, a, cfg, out)
	case "create", "add":
		return runCreate(ctx, client, a, cfg, out)
	case "update", "edit":
		return runUpdate(ctx, client, a, cfg, out)
	case "delete", "remove":
		return runDelete(ctx, client, a, cfg, stdin, out)
	case "import":
		return runImport(ctx, client, a, cfg, stdin, out)
	default:
		return fmt.Errorf("unknown command %q; run \"calcli help\" for usage", a.Command)
	}
}

func knownCommand(cmd string) bool {
	switch cmd {
	case "auth", "calendars", "today", "upcoming", "list", "search", "event",
		"create", "add", "update", "edit", "delete", "remove", "import":
		return true
	}
	return false
}

// calendarFor resolves the calendar for a command: --calendar (or -c) wins,
// then the configured default.
func calendarFor(a *args.Parsed, cfg *config.Config) string {
	if v := a.String("calendar"); v != "" {
		return v
	}
	return cfg.Calendar
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `calcli %s - Google Calendar from the command line

Usage: calcli <command> [arguments] [options]

Commands:
  auth                     Verify the configured credential works
  calendars                List accessible calendars
  today                    Show today's events
  upcoming [days]          Show events for the next N days (default 7)
  list [calendar]          Show events for the next 365 days
  search <query>           Free-text search over events
  event <eventId>          Show full event details
  create | add             Create an event (--title --start --end required)
  update | edit <eventId>  Patch an event with the provided fields
  delete | remove <eventId>  Delete an event (asks unless --yes)
  import <file>            Import events from an ICS file (- for stdin)
  version                  Print the version
  help                     Print this text

Options:
  --calendar, -c <id>      Calendar ID (default from config, else primary)
  --max, -m <n>            Fetch limit
  --days, -d <n>           Day window for upcoming
  --from / --to <date>     Search window bounds (YYYY-MM-DD or RFC3339)
  --title, -t <text>       Event title (create/update)
  --start / --end <time>   Event bounds, RFC3339 or YYYY-MM-DD for all-day
  --description <text>     Event description
  --location <text>        Event location
  --attendees <emails>     Comma-separated attendee emails
  --timezone <zone>        Time zone for created events
  --reminder <minutes>     Popup reminder override
  --summary, -s            Compact one-line output
  --full, -f               Full detail blocks
  --yes, -y                Skip the delete confirmation
  --json, -j               Raw JSON output (errors get a JSON envelope)
  --config <dir>           Config directory (default ~/.config/calcli)
  --verbose, -v            Debug logging to stderr
  --no-color               Disable colored output
`, version)
}
