package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-job-tracker/models"
)

const sessionFileMode = 0o600

// FileSessionStore keeps the token pair as JSON in a single file readable
// only by its owner.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore returns a store backed by path. The file is created
// on the first Save.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (models.TokenPair, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.TokenPair{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read session file: %w", err)
	}

	var tokens models.TokenPair
	if err = json.Unmarshal(data, &tokens); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode session file: %w", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return models.TokenPair{}, ErrNotLoggedIn
	}

	return tokens, nil
}

// Save writes tokens to a temporary file and renames it over the session
// file, so a crash never leaves a half-written pair behind.
func (s *FileSessionStore) Save(tokens models.TokenPair) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(sessionFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
