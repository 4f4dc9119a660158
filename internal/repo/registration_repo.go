// Package repo implements the data persistence layer for chat registrations,
// backed by GORM. This file provides repository functions for the
// ChatRegistration model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a registration is not found, functions return ErrNotFound
//     (an alias for gorm.ErrRecordNotFound).
//   - Inserting a room id that already exists returns ErrDuplicateRoom.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resihall/relay-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateRoom indicates the room id already has a registration. The
// unique index on room_id is the source of truth; this error is the
// normalized form of the driver's unique-violation.
var ErrDuplicateRoom = errors.New("room already registered")

// CreateRegistration inserts a new ChatRegistration for roomID. The row gets
// a random UUID primary key and a UTC CreatedAt. A unique-constraint
// violation on room_id is mapped to ErrDuplicateRoom.
func CreateRegistration(ctx context.Context, db *gorm.DB, roomID string, buildingID, floor int, env string) (*domain.ChatRegistration, error) {
	reg := &domain.ChatRegistration{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		BuildingID:  buildingID,
		FloorNumber: floor,
		Environment: env,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(reg).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRoom
		}
		return nil, err
	}
	return reg, nil
}

// GetRegistrationByRoomID fetches the registration for a room id, or
// ErrNotFound when the room is not registered.
func GetRegistrationByRoomID(ctx context.Context, db *gorm.DB, roomID string) (*domain.ChatRegistration, error) {
	var reg domain.ChatRegistration
	err := db.WithContext(ctx).
		Where("room_id = ?", roomID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrationsByBuildingIDs returns every registration whose building id
// is in ids, grouped by building id. Buildings with no registration are
// simply absent from the map. An empty ids slice yields an empty map.
func ListRegistrationsByBuildingIDs(ctx context.Context, db *gorm.DB, ids []int) (map[int][]domain.ChatRegistration, error) {
	out := make(map[int][]domain.ChatRegistration)
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.ChatRegistration
	err := db.WithContext(ctx).
		Where("building_id IN ?", ids).
		Order("building_id asc, floor_number asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.BuildingID] = append(out[r.BuildingID], r)
	}
	return out, nil
}

// CountRegistrations returns the total number of registrations.
func CountRegistrations(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatRegistration{}).
		Count(&total).Error
	return total, err
}

// ListRegistrationsPage returns a paginated slice of registrations ordered by
// building id then floor. Use CountRegistrations for pagination metadata.
func ListRegistrationsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatRegistration, error) {
	var out []domain.ChatRegistration
	err := db.WithContext(ctx).
		Order("building_id asc, floor_number asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
