package creds

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestIsAvailableFromEnv(t *testing.T) {
	t.Setenv("CALCLI_TOKEN_GOOGLE_CALENDAR", "env-token")

	s, err := NewSource(t.TempDir())
	require.NoError(t, err)
	assert.True(t, s.IsAvailable("google-calendar"))
	assert.False(t, s.IsAvailable("some-other-credential"))
}

func TestIsAvailableFromTokenFile(t *testing.T) {
	dir := t.TempDir()
	tok, err := json.Marshal(oauth2.Token{AccessToken: "file-token"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "google-calendar.json"), tok, 0o600))

	s, err := NewSource(dir)
	require.NoError(t, err)
	assert.True(t, s.IsAvailable("google-calendar"))
}

func TestTokenFileWithoutAccessToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "google-calendar.json"), []byte(`{}`), 0o600))

	s, err := NewSource(dir)
	require.NoError(t, err)
	assert.False(t, s.IsAvailable("google-calendar"))
}

// recordingTransport captures the outgoing request instead of dialing.
type recordingTransport struct {
	req *http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.req = req
	return &http.Response{StatusCode: http.StatusOK, Header: make(http.Header), Body: http.NoBody}, nil
}

func TestDoAttachesBearerToken(t *testing.T) {
	t.Setenv("CALCLI_TOKEN_GOOGLE_CALENDAR", "env-token")

	s, err := NewSource(t.TempDir())
	require.NoError(t, err)
	rt := &recordingTransport{}
	s.base = rt

	req, err := http.NewRequest(http.MethodGet, "https://www.googleapis.com/calendar/v3/users/me/calendarList", nil)
	require.NoError(t, err)
	resp, err := s.Do("google-calendar", req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, rt.req)
	assert.Equal(t, "Bearer env-token", rt.req.Header.Get("Authorization"))
}
