package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// The collector never acquires or refreshes OAuth credentials itself; it
// reads the token a companion auth flow has already written. Anything
// implementing oauth2.TokenSource can be injected instead of the file
// source, e.g. a refreshing source wrapping the same token.

// tokenFile accepts both the "access_token" field name used by
// golang.org/x/oauth2 and the "token" name written by Google's Python
// credential helpers, so a token.json produced by either works.
type tokenFile struct {
	AccessToken  string    `json:"access_token"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
}

// FileTokenSource is an oauth2.TokenSource backed by a token file on
// disk. The file is re-read on every Token call so an external refresher
// rewriting it is picked up mid-run.
type FileTokenSource struct {
	path string
	now  func() time.Time
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path, now: time.Now}
}

func (s *FileTokenSource) Token() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("config: reading token file %s: %w", s.path, err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("config: parsing token file %s: %w", s.path, err)
	}

	access := tf.AccessToken
	if access == "" {
		access = tf.Token
	}
	if access == "" {
		return nil, fmt.Errorf("config: token file %s has no access token", s.path)
	}

	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: tf.RefreshToken,
		TokenType:    tf.TokenType,
		Expiry:       tf.Expiry,
	}
	if !tf.Expiry.IsZero() && !tf.Expiry.After(s.now()) {
		return nil, fmt.Errorf("config: token in %s expired at %s, re-run the auth flow", s.path, tf.Expiry.Format(time.RFC3339))
	}
	return tok, nil
}

// CheckClientSecret verifies the OAuth client secret file exists. Done
// before any network call so a missing credential fails fast.
func CheckClientSecret(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config: missing client secret file: %s", path)
		}
		return fmt.Errorf("config: client secret file %s: %w", path, err)
	}
	return nil
}
