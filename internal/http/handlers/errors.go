// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail()
// helper and give clients a stable, machine-readable taxonomy alongside the
// human-readable message. Generic codes mirror common HTTP semantics;
// domain-specific codes cover relay outcomes a status alone cannot convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "no_chats_found",
//	  "message": "no group chats found for the provided buildings"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidLink        = "invalid_link"
	ErrCodeChatExists         = "chat_already_exists"
	ErrCodeJoinFailed         = "join_failed"
	ErrCodeNoBuildingsMatched = "no_buildings_matched"
	ErrCodeNoChatsFound       = "no_chats_found"
	ErrCodeImageUploadFailed  = "image_upload_failed"
	ErrCodeDispatchFailed     = "dispatch_failed"
	ErrCodeListFailed         = "list_failed"
)
