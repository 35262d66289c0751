package warehouse

import (
	"context"
	"errors"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// ErrSnapshotNotFound is returned by Load when no snapshot exists under the
// given key. A fresh session is an expected state, not a storage failure.
var ErrSnapshotNotFound = errors.New("session snapshot not found")

// Store is the injected persistence collaborator. The core never talks to
// storage directly; the calling application invokes Load on startup and Save
// after a successful scan or list edit. Any other error than
// ErrSnapshotNotFound is a storage failure and must be surfaced, never
// swallowed.
type Store interface {
	// Load reads the session snapshot stored under key.
	Load(ctx context.Context, key string) (*model.Session, error)

	// Save writes the session snapshot under key, replacing any previous one.
	Save(ctx context.Context, key string, session *model.Session) error
}
