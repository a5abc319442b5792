// ABOUTME: Durable credential store backed by files in the user config dir
// ABOUTME: Holds the bearer token and cached user profile across runs

package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store persists session credentials under a directory. Two files mirror the
// two storage keys: "token" holds the plain bearer token, "user.json" the
// JSON-serialized profile. Neither is encrypted; the store is only as
// trustworthy as the account that owns the directory, so files are 0600.
type Store struct {
	dir string
}

// New creates a store rooted at the given directory. The directory is only
// created on the first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default config directory following the XDG spec.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sweetshop")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sweetshop")
}

// Save writes both values, overwriting any prior state. A nil user removes
// the cached profile so a later Read does not resurrect a stale one.
func (s *Store) Save(token string, user *api.User) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return err
	}
	if user == nil {
		return removeIfExists(filepath.Join(s.dir, userFile))
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
}

// Read returns the stored token and user. It never fails: a missing token
// reads as empty, and a missing or malformed user file reads as nil. Corrupt
// state on disk must not take the whole startup down.
func (s *Store) Read() (string, *api.User) {
	token := ""
	if data, err := os.ReadFile(filepath.Join(s.dir, tokenFile)); err == nil {
		token = strings.TrimSpace(string(data))
	}

	var user *api.User
	if data, err := os.ReadFile(filepath.Join(s.dir, userFile)); err == nil {
		var u api.User
		if json.Unmarshal(data, &u) == nil {
			user = &u
		}
	}

	return token, user
}

// Clear removes both values. Clearing an already-empty store is not an error.
func (s *Store) Clear() error {
	if err := removeIfExists(filepath.Join(s.dir, tokenFile)); err != nil {
		return err
	}
	return removeIfExists(filepath.Join(s.dir, userFile))
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
