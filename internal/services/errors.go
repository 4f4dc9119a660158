// Package services defines the business logic for registration, dispatch,
// and the auth gate. This file centralizes the service-level error values so
// they can be consistently returned by service methods and mapped to HTTP
// results by the handler layer.
package services

import "errors"

var (
	// ErrInvalidLink is returned when a submitted GroupMe link does not
	// contain the join marker followed by a room id and share token.
	ErrInvalidLink = errors.New("invalid GroupMe link")

	// ErrDuplicateRoom is returned when the room in a join link is already
	// registered to a building floor.
	ErrDuplicateRoom = errors.New("chat already exists")

	// ErrJoinFailed is returned when the platform rejects the join attempt,
	// or when no credential is configured and the join never leaves the
	// process.
	ErrJoinFailed = errors.New("failed to join the GroupMe group")

	// ErrInvalidBuildingID is returned when an explicit building id cannot
	// be parsed as an integer. This fails the whole request; it is not a
	// per-building outcome.
	ErrInvalidBuildingID = errors.New("building id must be an integer")

	// ErrNoBuildingsMatched is returned when neither the explicit ids nor
	// the requested regions resolve to any known building.
	ErrNoBuildingsMatched = errors.New("no buildings matched the request")

	// ErrNoChatsFound is returned when every resolved building has zero
	// registered chats. Partial coverage does not trigger this.
	ErrNoChatsFound = errors.New("no group chats found for the provided buildings")

	// ErrImageUploadFailed aborts a dispatch whose image could not be
	// uploaded; text-only downgrade would silently betray the sender's
	// intent.
	ErrImageUploadFailed = errors.New("failed to upload image to GroupMe")
)
