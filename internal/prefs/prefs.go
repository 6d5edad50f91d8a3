// Package prefs persists client-local state across sessions: the
// last-used filter and sort choice (JSON-encoded), and the bearer token
// and display username under separate keys.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	prefsFile    = "prefs.json"
	tokenFile    = "token"
	usernameFile = "username"
)

// Preferences is the saved filter and sort choice.
type Preferences struct {
	Category  string `json:"category"`
	SortOrder string `json:"sortOrder"`
}

// DefaultPreferences is applied when nothing is saved or the saved value
// is unreadable.
func DefaultPreferences() Preferences {
	return Preferences{Category: "All", SortOrder: "date_desc"}
}

// Store reads and writes client-local state under a directory.
type Store struct {
	dir string
}

// NewStore creates the state directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// SavePreferences persists the filter/sort choice.
func (s *Store) SavePreferences(p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, prefsFile), data, 0o600)
}

// LoadPreferences returns the saved choice, falling back to defaults for
// missing or corrupt state.
func (s *Store) LoadPreferences() Preferences {
	data, err := os.ReadFile(filepath.Join(s.dir, prefsFile))
	if err != nil {
		return DefaultPreferences()
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPreferences()
	}
	if p.Category == "" {
		p.Category = "All"
	}
	if p.SortOrder == "" {
		p.SortOrder = "date_desc"
	}
	return p
}

// SaveToken persists the bearer credential.
func (s *Store) SaveToken(token string) error {
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

// Token returns the saved credential, or empty when logged out.
func (s *Store) Token() string {
	return s.read(tokenFile)
}

// SaveUsername persists the display username.
func (s *Store) SaveUsername(username string) error {
	return os.WriteFile(filepath.Join(s.dir, usernameFile), []byte(username), 0o600)
}

// Username returns the saved display username.
func (s *Store) Username() string {
	return s.read(usernameFile)
}

// ClearCredentials removes the token and username, as on logout. Saved
// filter/sort preferences survive.
func (s *Store) ClearCredentials() error {
	for _, name := range []string{tokenFile, usernameFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) read(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
