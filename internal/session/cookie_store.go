// Package session persists the cookies of a YouTube Music session between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	configDirName  = "go-ytmusic"
	cookieFileName = "cookies.json"
)

// storedCookie is the on-disk form of a cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain,omitempty"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitzero"`
}

type cookieFile struct {
	SavedAt time.Time      `json:"savedAt"`
	Cookies []storedCookie `json:"cookies"`
}

// CookieStore handles persistent storage of session cookies.
type CookieStore struct {
	path string
}

// DefaultCookieStore returns a CookieStore using the default location:
// ~/.config/go-ytmusic/cookies.json
func DefaultCookieStore() (*CookieStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting user config dir: %w", err)
	}

	path := filepath.Join(configDir, configDirName, cookieFileName)
	return &CookieStore{path: path}, nil
}

// NewCookieStore creates a CookieStore with a custom path.
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// Path returns the file path where cookies are stored.
func (s *CookieStore) Path() string {
	return s.path
}

// Load reads saved cookies from disk. Expired cookies are dropped.
// Returns (nil, nil) if the cookie file does not exist.
func (s *CookieStore) Load() ([]*http.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cookie file: %w", err)
	}

	var f cookieFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing cookie file: %w", err)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(f.Cookies))
	for _, c := range f.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}
	return cookies, nil
}

// Save writes the cookies to disk, creating the parent directory if needed.
func (s *CookieStore) Save(cookies []*http.Cookie) error {
	if cookies == nil {
		return errors.New("cannot save nil cookies")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f := cookieFile{SavedAt: time.Now().UTC(), Cookies: make([]storedCookie, 0, len(cookies))}
	for _, c := range cookies {
		f.Cookies = append(f.Cookies, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cookies: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}

	return nil
}

// Delete removes the cookie file.
// Returns nil if the file does not exist.
func (s *CookieStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cookie file: %w", err)
	}
	return nil
}
