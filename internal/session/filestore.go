package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirName  = ".staffdesk"
	fileName = "session.json"
)

// DefaultPath returns ~/.staffdesk/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// FileStore keeps a session in a single owner-only file.
// No expiry, no refresh.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the session file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the session file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the stored session. A missing file is a signed-out session.
func (f *FileStore) Load() (Session, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return Decode(b)
}

// Save writes s, creating the parent directory with 0700.
func (f *FileStore) Save(s Session) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err = os.WriteFile(f.path, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing twice is fine.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
