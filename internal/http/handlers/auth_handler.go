// Admin authentication HTTP handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequest is the JSON payload for the admin password check. Password is
// deliberately not required at binding time: an empty submission is a wrong
// password (401), not a malformed request.
type AuthRequest struct {
	Password string `json:"password" example:"hunter2"`
}

// AuthResponse signals a successful credential check.
type AuthResponse struct {
	Authenticated bool `json:"authenticated" example:"true"`
}

// Authenticate godoc
// @ID          authenticate
// @Summary     Check the admin password
// @Description Compares the submitted password against the configured admin secret. Stateless: no session or token is issued.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AuthRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed request body"
// @Failure     401  {object}  handlers.ErrorResponse  "Wrong or empty password, or no secret configured"
// @Router      /auth [post]
func (h *Handlers) Authenticate(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed request body")
		return
	}

	if !h.auth.Check(req.Password) {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid password")
		return
	}

	ok(c, http.StatusOK, AuthResponse{Authenticated: true})
}
