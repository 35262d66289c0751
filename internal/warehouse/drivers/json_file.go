package drivers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wareline/wareline/internal/warehouse"
	"github.com/wareline/wareline/internal/warehouse/model"
)

// JSONFileStore persists session snapshots as pretty-printed JSON files on
// local disk, one file per key. Suited to single-station deployments where
// the session used to live in browser storage.
type JSONFileStore struct {
	BaseDir string
}

// NewJSONFileStore creates the base directory if needed.
func NewJSONFileStore(baseDir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &JSONFileStore{BaseDir: baseDir}, nil
}

func (s *JSONFileStore) path(key string) string {
	return filepath.Join(s.BaseDir, key+".json")
}

func (s *JSONFileStore) Load(ctx context.Context, key string) (*model.Session, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, warehouse.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read session snapshot: %w", err)
	}

	session := model.NewSession()
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("corrupt session snapshot %q: %w", key, err)
	}
	return session, nil
}

func (s *JSONFileStore) Save(ctx context.Context, key string, session *model.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	// Write to a temp file first so a crash mid-write cannot corrupt the
	// previous snapshot.
	tmpPath := s.path(key) + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session snapshot: %w", err)
	}
	return nil
}
