package gcal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICSTimedEvent(t *testing.T) {
	icsData := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//Test//EN
BEGIN:VEVENT
UID:meeting-1@example.com
DTSTART:20260314T100000Z
DTEND:20260314T110000Z
SUMMARY:Quarterly review
LOCATION:Boardroom
DESCRIPTION:Numbers and plans
STATUS:CONFIRMED
ATTENDEE;CN=Alice Example:mailto:alice@example.com
END:VEVENT
END:VCALENDAR`

	events, err := ParseICS(strings.NewReader(icsData))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "meeting-1@example.com", ev.ICalUID)
	assert.Equal(t, "Quarterly review", ev.Summary)
	assert.Equal(t, "Boardroom", ev.Location)
	assert.Equal(t, "confirmed", ev.Status)
	require.NotNil(t, ev.Start)
	assert.Equal(t, "2026-03-14T10:00:00Z", ev.Start.DateTime)
	assert.Empty(t, ev.Start.Date)
	require.Len(t, ev.Attendees, 1)
	assert.Equal(t, "alice@example.com", ev.Attendees[0].Email)
	assert.Equal(t, "Alice Example", ev.Attendees[0].DisplayName)
}

func TestParseICSAllDayEvent(t *testing.T) {
	icsData := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//Test//EN
BEGIN:VEVENT
UID:holiday@example.com
DTSTART;VALUE=DATE:20260315
DTEND;VALUE=DATE:20260316
SUMMARY:Public holiday
END:VEVENT
END:VCALENDAR`

	events, err := ParseICS(strings.NewReader(icsData))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	require.NotNil(t, ev.Start)
	assert.Equal(t, "2026-03-15", ev.Start.Date)
	assert.Empty(t, ev.Start.DateTime)
	assert.True(t, IsAllDay(ev))
}

func TestParseICSRecurrence(t *testing.T) {
	icsData := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//Test//EN
BEGIN:VEVENT
UID:standup@example.com
DTSTART:20260316T091500Z
DTEND:20260316T093000Z
SUMMARY:Standup
RRULE:FREQ=WEEKLY;BYDAY=MO
END:VEVENT
END:VCALENDAR`

	events, err := ParseICS(strings.NewReader(icsData))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}, events[0].Recurrence)
}
