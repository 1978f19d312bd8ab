// Package creds implements the host-managed credential boundary. Tokens are
// acquired and refreshed outside this process; we only look them up by name
// (environment variable first, then a token file in the config directory)
// and attach them to outgoing requests.
package creds

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/wesnick/calcli/pkg/calcli/gcal"
)

// requestTimeout bounds every outbound call. A timeout surfaces as a normal
// request failure.
const requestTimeout = 15 * time.Second

// Source resolves named credentials from the host environment.
type Source struct {
	dir  string
	base http.RoundTripper
}

// NewSource returns a Source rooted at the given config directory ("" means
// ~/.config/calcli).
func NewSource(configDir string) (*Source, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "determining home directory")
		}
		configDir = filepath.Join(home, ".config", "calcli")
	}
	return &Source{dir: configDir, base: http.DefaultTransport}, nil
}

// IsAvailable reports whether the named credential can be resolved.
func (s *Source) IsAvailable(name string) bool {
	_, err := s.token(name)
	return err == nil
}

// Do issues the request with the named credential's bearer token attached.
func (s *Source) Do(name string, req *http.Request) (*http.Response, error) {
	tok, err := s.token(name)
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Timeout: requestTimeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(tok),
			Base:   s.base,
		},
	}
	return client.Do(req)
}

// token resolves the credential: environment variable first, token file
// second.
func (s *Source) token(name string) (*oauth2.Token, error) {
	if raw := os.Getenv(gcal.TokenEnvVar(name)); raw != "" {
		return &oauth2.Token{AccessToken: raw}, nil
	}

	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading token file %s", path)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling token file %s", path)
	}
	if tok.AccessToken == "" {
		return nil, errors.Errorf("token file %s has no access_token", path)
	}
	return &tok, nil
}
