// Package credentials persists the bearer token across client runs in a
// single well-known file under the user config directory.
package credentials

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName = "infocast"
	tokenFile     = "token"
)

// FileStore implements ports.CredentialStore on a plain file, mode 0600,
// written atomically via tmp+rename.
type FileStore struct {
	path string
}

// NewFileStore builds a store at the given path. An empty path resolves
// to $XDG_CONFIG_HOME/infocast/token (or the platform equivalent).
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, configDirName, tokenFile)
	}
	return &FileStore{path: path}, nil
}

// Load returns the stored token, or empty when none has been saved.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory when needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the stored token. Missing files are not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
