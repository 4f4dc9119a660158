// Package registry provides the chat registry: the mapping from GroupMe room
// ids to building floors. The Store capability interface has two
// implementations: a SQLite-backed store for normal operation and an
// in-memory store the process silently degrades to when the database cannot
// be opened. The choice is made exactly once, at startup, by Open; call
// sites never branch on the backing.
package registry

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/repo"
)

// Sentinel errors shared by both implementations. They alias the repo-layer
// values so errors.Is works regardless of backing.
var (
	// ErrNotFound indicates no registration exists for the requested room.
	ErrNotFound = repo.ErrNotFound

	// ErrDuplicateRoom indicates the room id is already registered.
	ErrDuplicateRoom = repo.ErrDuplicateRoom
)

// Store is the chat registry capability consumed by the services layer.
// Implementations must be safe for concurrent use.
type Store interface {
	// FindByRoomID returns the registration for roomID or ErrNotFound.
	FindByRoomID(ctx context.Context, roomID string) (*domain.ChatRegistration, error)

	// Insert persists a new registration. At most one registration may exist
	// per room id; violating that returns ErrDuplicateRoom.
	Insert(ctx context.Context, roomID string, buildingID, floor int, env string) (*domain.ChatRegistration, error)

	// FindByBuildingIDs maps each building id with at least one registration
	// to its registrations. Ids without registrations are absent, not errors.
	FindByBuildingIDs(ctx context.Context, ids []int) (map[int][]domain.ChatRegistration, error)

	// Count returns the total number of registrations.
	Count(ctx context.Context) (int64, error)

	// ListPage returns a page of registrations for the admin listing.
	ListPage(ctx context.Context, offset, limit int) ([]domain.ChatRegistration, error)
}

// Open selects and initializes the registry backing. A non-empty dbPath is
// opened as SQLite and migrated; any failure there degrades to the transient
// in-memory store rather than refusing to start. Registrations made while
// degraded are lost on restart, which is accepted and logged loudly.
//
// The returned *gorm.DB is nil when the memory store is selected; the HTTP
// layer uses it for ETag stats when present.
func Open(dbPath string, traceDB bool) (Store, *gorm.DB) {
	if dbPath == "" {
		log.Warn().Msg("registry: no DB_PATH configured, using transient in-memory store")
		return NewMemoryStore(), nil
	}
	db, err := repo.OpenSQLite(dbPath, traceDB)
	if err == nil {
		err = repo.AutoMigrate(db)
	}
	if err != nil {
		log.Warn().Err(err).Str("db_path", dbPath).
			Msg("registry: database unavailable, degrading to in-memory store (data lost on restart)")
		return NewMemoryStore(), nil
	}
	log.Info().Str("db_path", dbPath).Msg("registry: sqlite store ready")
	return NewSQLStore(db), db
}
