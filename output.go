package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// outputWriter handles formatted output (text or JSON). Results go to the
// writer, failures and verbose chatter to errWriter.
type outputWriter struct {
	json      bool
	verbose   bool
	writer    io.Writer
	errWriter io.Writer

	header func(a ...interface{}) string
	title  func(a ...interface{}) string
	ok     func(a ...interface{}) string
	fail   func(a ...interface{}) string
	subtle func(a ...interface{}) string
}

func newOutputWriter(useJSON, verbose bool, stdout, stderr io.Writer) *outputWriter {
	return &outputWriter{
		json:      useJSON,
		verbose:   verbose,
		writer:    stdout,
		errWriter: stderr,
		header:    color.New(color.FgCyan, color.Bold).SprintFunc(),
		title:     color.New(color.FgYellow, color.Bold).SprintFunc(),
		ok:        color.New(color.FgGreen, color.Bold).SprintFunc(),
		fail:      color.New(color.FgRed, color.Bold).SprintFunc(),
		subtle:    color.New(color.FgHiBlack).SprintFunc(),
	}
}

// writeJSON pretty-prints data as JSON.
func (o *outputWriter) writeJSON(data interface{}) error {
	enc := json.NewEncoder(o.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// writeMessage outputs a simple line.
func (o *outputWriter) writeMessage(msg string) {
	fmt.Fprintln(o.writer, msg)
}

// writef outputs a formatted line.
func (o *outputWriter) writef(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format+"\n", args...)
}

// errorEnvelope is the JSON failure shape emitted to stderr under --json.
type errorEnvelope struct {
	Error  string                 `json:"error"`
	Status int                    `json:"status"`
	Data   map[string]interface{} `json:"data"`
}

// writeError reports a failure to stderr. Under --json an error envelope is
// emitted alongside the plain message so scripted callers still get
// structured output on the failure path.
func (o *outputWriter) writeError(err error) {
	if o.json {
		env := errorEnvelope{Error: err.Error()}
		var apiErr *gcal.APIError
		if errors.As(err, &apiErr) {
			env.Status = apiErr.StatusCode
			env.Data = apiErr.Body
		}
		enc := json.NewEncoder(o.errWriter)
		enc.SetIndent("", "  ")
		_ = enc.Encode(env)
	}
	fmt.Fprintf(o.errWriter, "%s %v\n", o.fail("Error:"), err)
}

// writeVerbose outputs progress chatter to stderr when enabled.
func (o *outputWriter) writeVerbose(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(o.errWriter, format+"\n", args...)
	}
}
