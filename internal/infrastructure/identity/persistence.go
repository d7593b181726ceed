package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/vadesa1/stans-events-web/domain"
)

// SessionPersistence stores the single credential across process restarts,
// the counterpart of the browser client's local storage.
type SessionPersistence interface {
	Load() (*domain.Session, error)
	Save(session *domain.Session) error
	Clear() error
}

// FileSessionStore keeps the session in a JSON file.
type FileSessionStore struct {
	path string
}

type persistedSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
}

// NewFileSessionStore creates a file-backed store. An empty path defaults
// to <user config dir>/stans-events/session.json.
func NewFileSessionStore(path string) (*FileSessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "stans-events", "session.json")
	}
	return &FileSessionStore{path: path}, nil
}

// Load returns the persisted session or nil when none exists.
func (s *FileSessionStore) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt file is treated as no session rather than a fatal
		// startup error.
		return nil, nil
	}
	if p.AccessToken == "" {
		return nil, nil
	}
	return &domain.Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresAt:    p.ExpiresAt,
		UserID:       p.UserID,
	}, nil
}

// Save writes the session, creating the parent directory when needed.
func (s *FileSessionStore) Save(session *domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(persistedSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		ExpiresAt:    session.ExpiresAt,
		UserID:       session.UserID,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted session; a missing file is not an error.
func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
