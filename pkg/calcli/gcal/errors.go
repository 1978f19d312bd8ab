package gcal

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoCredentialSource means the process was started without a credential
// source at all. This is an environment problem, not a configuration one:
// the tool cannot run standalone.
var ErrNoCredentialSource = errors.New("no credential source available: calcli requires a host-managed OAuth credential and cannot authenticate on its own")

// ConfigError reports that the named credential is not configured. The
// message carries remediation instructions, following the setup-help style
// used for missing credentials elsewhere in this family of tools.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf(`credential %q is not configured

To set it up, either:
  1. Export the token in the environment:
       export %s=<oauth-bearer-token>
  2. Or store an oauth2 token JSON file at:
       ~/.config/calcli/%s.json

The token must be authorized for the Google Calendar API scope
(https://www.googleapis.com/auth/calendar).`, e.Name, TokenEnvVar(e.Name), e.Name)
}

// TokenEnvVar is the environment variable a host can export to supply the
// named credential, e.g. "google-calendar" -> "CALCLI_TOKEN_GOOGLE_CALENDAR".
func TokenEnvVar(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return "CALCLI_TOKEN_" + string(out)
}

// APIError is a non-success response from the calendar service. Message is
// the remote-reported error message when present, otherwise a generic
// "HTTP <status>: <statusText>" string. Body holds the full decoded error
// body for JSON passthrough.
type APIError struct {
	StatusCode int
	Status     string
	Code       int64
	Reason     string
	Message    string
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// NetworkPermissionError is a transport-level denial (sandboxed or
// firewalled environment refusing the outbound dial), remapped so the user
// sees which allowance is missing instead of a raw syscall error.
type NetworkPermissionError struct {
	Host string
	Err  error
}

func (e *NetworkPermissionError) Error() string {
	return fmt.Sprintf("network access to %s was denied by the host environment; allow outbound HTTPS to %s and retry", e.Host, e.Host)
}

func (e *NetworkPermissionError) Unwrap() error { return e.Err }
