// Building reference data HTTP handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resihall/relay-backend/internal/domain"
)

// BuildingsResponse wraps the building catalog.
type BuildingsResponse struct {
	Buildings []domain.Building `json:"buildings"`
}

// ListBuildings godoc
// @ID          listBuildings
// @Summary     List known buildings
// @Description Returns the building catalog loaded at startup, sorted by id. Clients use these ids and regions when registering chats and sending announcements.
// @Tags        Buildings
// @Produce     json
//
// @Success     200  {object}  handlers.BuildingsResponse
// @Router      /buildings [get]
func (h *Handlers) ListBuildings(c *gin.Context) {
	ok(c, http.StatusOK, BuildingsResponse{Buildings: h.buildings.Records()})
}
