package api

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// StaticTokenSource wraps a fixed bearer token, for sessions configured
// with a long-lived API token.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

// fileTokenSource reads the token from a JSON file on every request, so
// an external refresher can rotate it without restarting the session.
type fileTokenSource struct {
	path string
}

// FileTokenSource returns a TokenSource backed by a JSON token file of
// the shape oauth2.Token marshals to.
func FileTokenSource(path string) oauth2.TokenSource {
	return &fileTokenSource{path: path}
}

func (s *fileTokenSource) Token() (*oauth2.Token, error) {
	f, err := os.Open(s.path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("token file %s holds no access token", s.path)
	}

	return token, nil
}
