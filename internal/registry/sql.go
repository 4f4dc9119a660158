package registry

import (
	"context"

	"gorm.io/gorm"

	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/repo"
)

// SQLStore is the persistent registry implementation, a thin adapter over the
// repo free functions bound to one GORM handle. Room-id uniqueness is
// enforced by the table's unique index, not application locking.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an opened and migrated database handle.
func NewSQLStore(db *gorm.DB) *SQLStore { return &SQLStore{db: db} }

// FindByRoomID implements Store.
func (s *SQLStore) FindByRoomID(ctx context.Context, roomID string) (*domain.ChatRegistration, error) {
	return repo.GetRegistrationByRoomID(ctx, s.db, roomID)
}

// Insert implements Store.
func (s *SQLStore) Insert(ctx context.Context, roomID string, buildingID, floor int, env string) (*domain.ChatRegistration, error) {
	return repo.CreateRegistration(ctx, s.db, roomID, buildingID, floor, env)
}

// FindByBuildingIDs implements Store.
func (s *SQLStore) FindByBuildingIDs(ctx context.Context, ids []int) (map[int][]domain.ChatRegistration, error) {
	return repo.ListRegistrationsByBuildingIDs(ctx, s.db, ids)
}

// Count implements Store.
func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	return repo.CountRegistrations(ctx, s.db)
}

// ListPage implements Store.
func (s *SQLStore) ListPage(ctx context.Context, offset, limit int) ([]domain.ChatRegistration, error) {
	return repo.ListRegistrationsPage(ctx, s.db, offset, limit)
}
