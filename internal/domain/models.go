// Package domain defines the persistence model for chat registrations and
// the static building reference record. ChatRegistration is mapped with GORM
// and forms the single table owned by this service.
package domain

import (
	"time"
)

// ChatRegistration links a GroupMe group chat to a building floor. Rows are
// created by the registration flow and never mutated afterwards; removal is
// an out-of-band operation.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - RoomID: GroupMe group id; unique, at most one registration per room.
//   - BuildingID: id of the building the chat serves (see buildings data).
//   - FloorNumber: floor within the building (0 = ground).
//   - Environment: deployment tag ("dev", "prod") stamped at insert time so
//     shared stores can hold rows from several environments.
//   - CreatedAt: timestamp managed by GORM.
type ChatRegistration struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	RoomID      string    `json:"room_id"      gorm:"type:varchar(64);not null;uniqueIndex:ux_registration_room"`
	BuildingID  int       `json:"building_id"  gorm:"not null;index:idx_registration_building"`
	FloorNumber int       `json:"floor_number" gorm:"not null"`
	Environment string    `json:"environment"  gorm:"type:varchar(16);not null;default:'dev'"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for ChatRegistration.
func (ChatRegistration) TableName() string { return "chat_registrations" }

// Building is one immutable record of the static reference list loaded at
// startup. Identity is the numeric id.
type Building struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}
