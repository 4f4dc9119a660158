// Package services – RegisterService
//
// This file implements the registration flow: parse a GroupMe join link,
// refuse rooms that are already mapped, join the group through the gateway,
// and persist the (room, building, floor) mapping in the registry.
package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/groupme"
	"github.com/resihall/relay-backend/internal/registry"
)

// Joiner is the gateway capability needed by the registration flow.
type Joiner interface {
	Join(ctx context.Context, roomID, shareToken string) (joined bool, status int, err error)
}

// RegisterService registers new floor chats. It owns the ordering invariant:
// the duplicate check happens before the join attempt so the bot never joins
// a room it will then refuse to persist.
type RegisterService struct {
	Store   registry.Store
	Gateway Joiner
	// Env is stamped onto every registration (see domain.ChatRegistration).
	Env string
}

// NewRegisterService wires the registration flow.
func NewRegisterService(store registry.Store, gw Joiner, env string) *RegisterService {
	return &RegisterService{Store: store, Gateway: gw, Env: env}
}

// Register validates the link, joins the room, and persists the mapping.
//
// Error mapping for handlers:
//   - ErrInvalidLink: link has no join marker or too few trailing segments
//   - ErrDuplicateRoom: room id already registered
//   - ErrJoinFailed: platform rejected the join (or no token configured)
//   - anything else: persistence failure
func (s *RegisterService) Register(ctx context.Context, link string, buildingID, floor int) (*domain.ChatRegistration, error) {
	roomID, shareToken, ok := groupme.ParseJoinLink(link)
	if !ok {
		return nil, ErrInvalidLink
	}

	if _, err := s.Store.FindByRoomID(ctx, roomID); err == nil {
		return nil, ErrDuplicateRoom
	} else if !errors.Is(err, registry.ErrNotFound) {
		return nil, err
	}

	joined, status, err := s.Gateway.Join(ctx, roomID, shareToken)
	if err != nil || !joined {
		log.Warn().Err(err).Str("room_id", roomID).Int("status", status).Msg("register: join failed")
		return nil, ErrJoinFailed
	}

	reg, err := s.Store.Insert(ctx, roomID, buildingID, floor, s.Env)
	if err != nil {
		// Lost a race with a concurrent registration of the same room.
		if errors.Is(err, registry.ErrDuplicateRoom) {
			return nil, ErrDuplicateRoom
		}
		return nil, err
	}

	log.Info().Str("room_id", roomID).Int("building_id", buildingID).Int("floor", floor).
		Msg("register: chat registered")
	return reg, nil
}
