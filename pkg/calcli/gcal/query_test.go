package gcal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParamsOrderAndZeroValues(t *testing.T) {
	q := &queryParams{}
	q.setInt("maxResults", 0)
	q.setBool("singleEvents", false)
	q.set("orderBy", "startTime")

	// Insertion order is preserved; 0 and false are real values.
	assert.Equal(t, "maxResults=0&singleEvents=false&orderBy=startTime", q.encode())
}

func TestQueryParamsEscaping(t *testing.T) {
	q := &queryParams{}
	q.set("q", "team lunch & sync")
	q.set("timeMin", "2026-01-05T00:00:00+08:00")

	encoded := q.encode()
	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, "team lunch & sync", values.Get("q"))
	assert.Equal(t, "2026-01-05T00:00:00+08:00", values.Get("timeMin"))
}

func TestQueryParamsEmpty(t *testing.T) {
	q := &queryParams{}
	assert.Equal(t, "", q.encode())
}

func TestQueryParamsRoundTrip(t *testing.T) {
	q := &queryParams{}
	q.set("a", "1")
	q.setBool("b", false)
	q.setInt("c", 0)

	values, err := url.ParseQuery(q.encode())
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "1", values.Get("a"))
	assert.Equal(t, "false", values.Get("b"))
	assert.Equal(t, "0", values.Get("c"))
}
