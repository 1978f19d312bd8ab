// Package gcal is a thin typed client for the Google Calendar REST API.
// It does not own transport or token handling: every request goes through an
// injected CredentialSource that attaches the host-managed credential.
package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
)

const baseURL = "https://www.googleapis.com/calendar/v3"

// CredentialSource supplies authenticated HTTP round trips for a named,
// host-managed credential. Implementations must attach the bearer token and
// enforce their own request timeout.
type CredentialSource interface {
	IsAvailable(name string) bool
	Do(name string, req *http.Request) (*http.Response, error)
}

// Client issues calendar API calls using one named credential, resolved once
// at construction and reused for every request in the process.
type Client struct {
	creds CredentialSource
	name  string
	base  string
	now   func() time.Time
}

// NewClient fails fast when no credential source is present (environment
// error) or the named credential is unavailable (configuration error with
// setup instructions).
func NewClient(creds CredentialSource, name string) (*Client, error) {
	if creds == nil {
		return nil, ErrNoCredentialSource
	}
	if !creds.IsAvailable(name) {
		return nil, &ConfigError{Name: name}
	}
	return &Client{creds: creds, name: name, base: baseURL, now: time.Now}, nil
}

// request issues one authenticated call and decodes the JSON response into
// result (skipped when result is nil or the body is empty). Non-success
// statuses come back as *APIError; denied outbound dials come back as
// *NetworkPermissionError.
func (c *Client) request(ctx context.Context, method, path string, params *queryParams, body, result interface{}) error {
	u := c.base + path
	if params != nil {
		if qs := params.encode(); qs != "" {
			u += "?" + qs
		}
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.WithFields(log.Fields{"method": method, "url": u}).Debug("calendar API request")

	resp, err := c.creds.Do(c.name, req)
	if err != nil {
		if permissionDenied(err) {
			return &NetworkPermissionError{Host: req.URL.Host, Err: err}
		}
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading %s %s response", method, path)
	}

	log.WithFields(log.Fields{"status": resp.StatusCode, "bytes": len(data)}).Debug("calendar API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp, data)
	}

	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

// permissionDenied reports whether a transport error is the host refusing
// the outbound connection rather than an ordinary network failure.
func permissionDenied(err error) bool {
	if errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "operation not permitted") || strings.Contains(msg, "permission denied")
}

// decodeAPIError builds an *APIError from a non-success response, preferring
// the remote-reported message and keeping the full decoded body.
func decodeAPIError(resp *http.Response, data []byte) error {
	statusText := http.StatusText(resp.StatusCode)
	if statusText == "" {
		statusText = strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     statusText,
	}

	var envelope struct {
		Error struct {
			Code    int64  `json:"code"`
			Message string `json:"message"`
			Errors  []struct {
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			apiErr.Reason = envelope.Error.Errors[0].Reason
		}
	}

	var body map[string]interface{}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Body = body
	}
	return apiErr
}

// ListCalendarsOptions controls ListCalendars. A zero MaxResults means 250.
type ListCalendarsOptions struct {
	MaxResults  int64
	ShowDeleted bool
	ShowHidden  bool
}

// ListCalendars returns the calendars on the credential's calendar list.
func (c *Client) ListCalendars(ctx context.Context, opts ListCalendarsOptions) (*calendar.CalendarList, error) {
	if opts.MaxResults == 0 {
		opts.MaxResults = 250
	}
	params := &queryParams{}
	params.setInt("maxResults", opts.MaxResults)
	params.setBool("showDeleted", opts.ShowDeleted)
	params.setBool("showHidden", opts.ShowHidden)

	var list calendar.CalendarList
	if err := c.request(ctx, http.MethodGet, "/users/me/calendarList", params, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetCalendar fetches one calendar's metadata.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*calendar.Calendar, error) {
	var cal calendar.Calendar
	path := "/calendars/" + url.PathEscape(calendarID)
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}

// ListEventsOptions controls ListEvents. Zero values mean: no time bounds,
// no free-text query, 250 results, recurring events expanded into single
// instances (ordered chronologically by start), deleted events hidden.
type ListEventsOptions struct {
	TimeMin              time.Time
	TimeMax              time.Time
	Query                string
	MaxResults           int64
	KeepRecurringMasters bool
	ShowDeleted          bool
}

// ListEvents lists events on a calendar ("" means primary).
func (c *Client) ListEvents(ctx context.Context, calendarID string, opts ListEventsOptions) (*calendar.Events, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = 250
	}
	singleEvents := !opts.KeepRecurringMasters

	params := &queryParams{}
	params.setInt("maxResults", opts.MaxResults)
	params.setBool("singleEvents", singleEvents)
	if singleEvents {
		params.set("orderBy", "startTime")
	}
	params.setBool("showDeleted", opts.ShowDeleted)
	if !opts.TimeMin.IsZero() {
		params.set("timeMin", opts.TimeMin.Format(time.RFC3339))
	}
	if !opts.TimeMax.IsZero() {
		params.set("timeMax", opts.TimeMax.Format(time.RFC3339))
	}
	if opts.Query != "" {
		params.set("q", opts.Query)
	}

	var events calendar.Events
	path := "/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.request(ctx, http.MethodGet, path, params, nil, &events); err != nil {
		return nil, err
	}
	return &events, nil
}

// TodayEvents lists events between local midnight and the next local
// midnight. A zero MaxResults means 50.
func (c *Client) TodayEvents(ctx context.Context, calendarID string, opts ListEventsOptions) (*calendar.Events, error) {
	now := c.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	opts.TimeMin = start
	opts.TimeMax = start.AddDate(0, 0, 1)
	if opts.MaxResults == 0 {
		opts.MaxResults = 50
	}
	return c.ListEvents(ctx, calendarID, opts)
}

// UpcomingEvents lists events from now through now+days (7 when days <= 0).
// A zero MaxResults means 100.
func (c *Client) UpcomingEvents(ctx context.Context, days int, calendarID string, opts ListEventsOptions) (*calendar.Events, error) {
	if days <= 0 {
		days = 7
	}
	now := c.now()
	opts.TimeMin = now
	opts.TimeMax = now.Add(time.Duration(days) * 24 * time.Hour)
	if opts.MaxResults == 0 {
		opts.MaxResults = 100
	}
	return c.ListEvents(ctx, calendarID, opts)
}

// SearchOptions controls SearchEvents. CalendarID "" means primary; zero
// times leave the search unbounded on that side.
type SearchOptions struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}

// SearchEvents runs a free-text query over a calendar's events.
func (c *Client) SearchEvents(ctx context.Context, query string, opts SearchOptions) (*calendar.Events, error) {
	return c.ListEvents(ctx, opts.CalendarID, ListEventsOptions{
		TimeMin:    opts.TimeMin,
		TimeMax:    opts.TimeMax,
		Query:      query,
		MaxResults: opts.MaxResults,
	})
}

// GetEvent fetches a single event.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	var ev calendar.Event
	path := "/calendars/" + url.PathEscape(calendarID) + "/events/" + url.PathEscape(eventID)
	if err := c.request(ctx, http.MethodGet, path, nil, nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// EventInput carries the recognized fields for creating or patching an
// event. For updates, zero-valued fields are left out of the patch body.
type EventInput struct {
	Summary         string
	Description     string
	Location        string
	Start           string // RFC3339, or YYYY-MM-DD for all-day
	End             string
	TimeZone        string
	Attendees       []string
	ReminderMinutes *int64
}

// event builds the API payload from the provided fields.
func (in EventInput) event() *calendar.Event {
	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
	}
	if in.Start != "" {
		ev.Start = eventDateTime(in.Start, in.TimeZone)
	}
	if in.End != "" {
		ev.End = eventDateTime(in.End, in.TimeZone)
	}
	for _, email := range in.Attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
	}
	if in.ReminderMinutes != nil {
		ev.Reminders = &calendar.EventReminders{
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: *in.ReminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}
	return ev
}

// eventDateTime classifies a time string: a bare YYYY-MM-DD is an all-day
// bound, anything else is a timed one.
func eventDateTime(value, timeZone string) *calendar.EventDateTime {
	if len(value) == len("2006-01-02") {
		if _, err := time.Parse("2006-01-02", value); err == nil {
			return &calendar.EventDateTime{Date: value}
		}
	}
	return &calendar.EventDateTime{DateTime: value, TimeZone: timeZone}
}

// CreateEvent creates a new event on the calendar ("" means primary).
func (c *Client) CreateEvent(ctx context.Context, calendarID string, in EventInput) (*calendar.Event, error) {
	return c.InsertEvent(ctx, calendarID, in.event())
}

// InsertEvent posts a prebuilt event payload, used by the ICS import path.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, ev *calendar.Event) (*calendar.Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	var created calendar.Event
	path := "/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.request(ctx, http.MethodPost, path, nil, ev, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent patches an event with only the fields provided in the input.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, in EventInput) (*calendar.Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	var updated calendar.Event
	path := "/calendars/" + url.PathEscape(calendarID) + "/events/" + url.PathEscape(eventID)
	if err := c.request(ctx, http.MethodPatch, path, nil, in.event(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event. Confirmation is the caller's responsibility;
// by the time this is called the deletion is decided.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}
	path := "/calendars/" + url.PathEscape(calendarID) + "/events/" + url.PathEscape(eventID)
	return c.request(ctx, http.MethodDelete, path, nil, nil, nil)
}
