package main

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/wesnick/calcli/pkg/calcli/args"
	"github.com/wesnick/calcli/pkg/calcli/config"
	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

func parseArgs(argv ...string) *args.Parsed {
	return args.Parse(argv)
}

func init() {
	// Keep test output free of ANSI sequences.
	color.NoColor = true
}

// fakeSource is a CredentialSource double: counts calls and serves canned
// responses without touching the network.
type fakeSource struct {
	calls    int
	requests []*http.Request
	respond  func(req *http.Request) (*http.Response, error)
}

func (f *fakeSource) IsAvailable(name string) bool { return true }

func (f *fakeSource) Do(name string, req *http.Request) (*http.Response, error) {
	f.calls++
	f.requests = append(f.requests, req)
	return f.respond(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testClient(t *testing.T, source *fakeSource) *gcal.Client {
	t.Helper()
	client, err := gcal.NewClient(source, "google-calendar")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func testConfig() *config.Config {
	return config.Default()
}

func testOutput(useJSON bool) (*outputWriter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return newOutputWriter(useJSON, false, &stdout, &stderr), &stdout, &stderr
}

func TestRunHelp(t *testing.T) {
	for _, argv := range [][]string{nil, {"help"}, {"--help"}, {"today", "--help"}} {
		var stdout, stderr bytes.Buffer
		code := run(argv, strings.NewReader(""), &stdout, &stderr)
		if code != 0 {
			t.Errorf("run(%v) = %d, want 0", argv, code)
		}
		if !strings.Contains(stdout.String(), "Usage: calcli") {
			t.Errorf("run(%v) did not print usage", argv)
		}
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"version"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run(version) = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "calcli") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"frobnicate"}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run(frobnicate) = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Errorf("stderr = %q, want unknown command message", stderr.String())
	}
	if !strings.Contains(stderr.String(), "help") {
		t.Errorf("stderr = %q, want a help hint", stderr.String())
	}
}

func TestWriteErrorJSONEnvelope(t *testing.T) {
	source := &fakeSource{respond: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(404, `{"error":{"code":404,"message":"Not Found","errors":[{"reason":"notFound"}]}}`), nil
	}}
	client := testClient(t, source)
	out, _, stderr := testOutput(true)

	err := runEvent(t.Context(), client, parseArgs("event", "missing-id"), testConfig(), out)
	if err == nil {
		t.Fatal("runEvent() expected error")
	}
	out.writeError(err)

	if !strings.Contains(stderr.String(), `"status": 404`) {
		t.Errorf("envelope missing status 404: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), `"error"`) {
		t.Errorf("envelope missing error field: %q", stderr.String())
	}
}
