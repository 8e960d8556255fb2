package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the board client's saved connection: where the store lives and
// the session token from the last login.
type Profile struct {
	URL     string `yaml:"url"`
	Session string `yaml:"session,omitempty"`
}

const defaultStoreURL = "http://localhost:8080"

// DefaultProfilePath returns ~/.config/liteboard/profile.yaml (or the platform equivalent).
func DefaultProfilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "liteboard", "profile.yaml"), nil
}

// LoadProfile reads the profile at path. A missing file yields the defaults.
// LITEBOARD_URL and LITEBOARD_SESSION override the file.
func LoadProfile(path string) (*Profile, error) {
	p := &Profile{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parse profile %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read profile: %w", err)
	}

	if v := os.Getenv("LITEBOARD_URL"); v != "" {
		p.URL = v
	}
	if v := os.Getenv("LITEBOARD_SESSION"); v != "" {
		p.Session = v
	}
	if p.URL == "" {
		p.URL = defaultStoreURL
	}
	p.URL = strings.TrimRight(p.URL, "/")

	return p, nil
}

// SaveProfile writes the profile with owner-only permissions; it holds a session token.
func SaveProfile(path string, p *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
