// Chat registration HTTP handlers.
//
// This file exposes REST endpoints for the chat registry:
//   - POST /chats/add  (register a floor chat from a GroupMe join link)
//   - GET  /chats      (list registrations, paginated, ETag support)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/resihall/relay-backend/internal/buildings"
	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/registry"
	"github.com/resihall/relay-backend/internal/repo"
	"github.com/resihall/relay-backend/internal/services"
	"github.com/resihall/relay-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// Registrar defines the chat registration flow consumed by HTTP handlers.
type Registrar interface {
	// Register parses the join link, joins the room, and persists the mapping.
	Register(ctx context.Context, link string, buildingID, floor int) (*domain.ChatRegistration, error)
}

// Dispatcher defines the announcement fan-out consumed by HTTP handlers.
type Dispatcher interface {
	// Dispatch resolves targets and posts the message to every room.
	Dispatch(ctx context.Context, req services.DispatchRequest) (*services.DispatchReport, error)
}

// Authenticator defines the admin credential check.
type Authenticator interface {
	Check(password string) bool
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for registration, dispatch, auth, and
// reference data. DB may be nil (in-memory registry); the ETag fast path is
// then skipped.
type Handlers struct {
	registrar  Registrar
	dispatcher Dispatcher
	auth       Authenticator
	store      registry.Store
	buildings  *buildings.Index
	db         *gorm.DB
}

// New constructs a Handlers instance bound to the given collaborators.
func New(reg Registrar, disp Dispatcher, auth Authenticator, store registry.Store, idx *buildings.Index, db *gorm.DB) *Handlers {
	return &Handlers{registrar: reg, dispatcher: disp, auth: auth, store: store, buildings: idx, db: db}
}

//
// DTOs
//

// AddChatRequest is the JSON payload for registering a floor chat.
type AddChatRequest struct {
	// GroupMeLink is the share link, e.g. https://groupme.com/join_group/123/TOKEN
	GroupMeLink string `json:"groupme_link" binding:"required" example:"https://groupme.com/join_group/12345678/SHARE"`
	// BuildingID identifies the building (see GET /buildings).
	BuildingID *int `json:"building_id" binding:"required" example:"10"`
	// FloorNumber is the floor within the building (0 = ground).
	FloorNumber *int `json:"floor_number" binding:"required" example:"3"`
}

// AddChatResponse wraps the created registration.
type AddChatResponse struct {
	Message string                   `json:"message" example:"Chat added successfully"`
	Chat    *domain.ChatRegistration `json:"chat"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListChatsResponse wraps a page of registrations.
type ListChatsResponse struct {
	Chats      []domain.ChatRegistration `json:"chats"`
	Pagination Pagination                `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// AddChat godoc
// @ID          addChat
// @Summary     Register a floor chat
// @Description Joins the GroupMe room behind the share link and maps it to a building floor.
// @Tags        Chats
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AddChatRequest  true  "Registration payload"
//
// @Success     200  {object}  handlers.AddChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields, invalid link, or room already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Join or persistence failure"
// @Router      /chats/add [post]
func (h *Handlers) AddChat(c *gin.Context) {
	var req AddChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing groupme_link, building_id, or floor_number")
		return
	}
	if strings.TrimSpace(req.GroupMeLink) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing groupme_link, building_id, or floor_number")
		return
	}
	if *req.FloorNumber < 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "floor_number must be >= 0")
		return
	}
	if !h.buildings.Contains(*req.BuildingID) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("unknown building id %d", *req.BuildingID))
		return
	}

	reg, err := h.registrar.Register(c.Request.Context(), req.GroupMeLink, *req.BuildingID, *req.FloorNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLink):
			fail(c, http.StatusBadRequest, ErrCodeInvalidLink, "invalid GroupMe link")
		case errors.Is(err, services.ErrDuplicateRoom):
			fail(c, http.StatusBadRequest, ErrCodeChatExists, "chat already exists")
		case errors.Is(err, services.ErrJoinFailed):
			fail(c, http.StatusInternalServerError, ErrCodeJoinFailed, "failed to join the GroupMe group")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to add chat")
		}
		return
	}

	ok(c, http.StatusOK, AddChatResponse{Message: "Chat added successfully", Chat: reg})
}

// ListChats godoc
// @ID          listChats
// @Summary     List chat registrations (paginated)
// @Description Returns a page of registrations. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Chats
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListChatsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chats [get]
func (h *Handlers) ListChats(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort; sqlite-backed registry only).
	if h.db != nil {
		count, maxTS, err := repo.RegistrationsStats(ctx, h.db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"chats:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	total, err := h.store.Count(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	items := []domain.ChatRegistration{}
	if total > 0 {
		items, err = h.store.ListPage(ctx, (page-1)*pageSize, pageSize)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListChatsResponse{
		Chats: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
