// Announcement dispatch HTTP handler.
//
// POST /messages/send accepts a multipart form (building ids and/or regions,
// the message body, and an optional image) and fans the message out to every
// registered floor chat in the selected buildings. The response is a grouped
// per-building delivery report; the HTTP status reflects the aggregate
// outcome (200 all sent, 207 partial, 502 all failed).
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resihall/relay-backend/internal/services"
)

// maxImageBytes bounds the uploaded image size (GroupMe caps around 10 MB).
const maxImageBytes = 10 << 20

// SendMessagesResponse documents the dispatch report shape for swagger.
// The wire format is services.DispatchReport.
type SendMessagesResponse struct {
	Status      string                            `json:"status" example:"sent"`
	PerBuilding map[string][]services.RoomOutcome `json:"per_building"`
	Sent        int                               `json:"sent" example:"12"`
	Failed      int                               `json:"failed" example:"0"`
}

// SendMessages godoc
// @ID          sendMessages
// @Summary     Send an announcement to building chats
// @Description Posts the message to every registered floor chat in the selected buildings. Accepts numeric building ids and/or region names ("all" targets every building). An optional image is uploaded once and attached to each message.
// @Tags        Messages
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       building_ids  formData  []string  false  "Numeric building ids (repeatable)"
// @Param       regions       formData  []string  false  "Region names, or 'all' (repeatable)"
// @Param       message_body  formData  string    true   "Announcement text"
// @Param       image_file    formData  file      false  "Image attachment"
//
// @Success     200  {object}  handlers.SendMessagesResponse  "Every send succeeded"
// @Success     207  {object}  handlers.SendMessagesResponse  "Mixed outcomes"
// @Failure     400  {object}  handlers.ErrorResponse         "Missing body, no targets, or non-numeric building id"
// @Failure     404  {object}  handlers.ErrorResponse         "No buildings matched or no chats registered"
// @Failure     500  {object}  handlers.ErrorResponse         "Image upload failure"
// @Failure     502  {object}  handlers.SendMessagesResponse  "Every send failed"
// @Router      /messages/send [post]
func (h *Handlers) SendMessages(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxImageBytes); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid multipart form")
		return
	}

	req := services.DispatchRequest{
		BuildingIDs: c.PostFormArray("building_ids"),
		Regions:     c.PostFormArray("regions"),
		Body:        c.PostForm("message_body"),
	}

	if req.Body == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message_body is required")
		return
	}
	if len(req.BuildingIDs) == 0 && len(req.Regions) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "at least one of building_ids or regions is required")
		return
	}

	if img, err := readImageFile(c); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read image_file")
		return
	} else if img != nil {
		req.Image = img
	}

	report, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBuildingID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "building_ids must be numeric")
		case errors.Is(err, services.ErrNoBuildingsMatched):
			fail(c, http.StatusNotFound, ErrCodeNoBuildingsMatched, "no buildings matched the provided regions")
		case errors.Is(err, services.ErrNoChatsFound):
			fail(c, http.StatusNotFound, ErrCodeNoChatsFound, "no group chats found for the provided buildings")
		case errors.Is(err, services.ErrImageUploadFailed):
			fail(c, http.StatusInternalServerError, ErrCodeImageUploadFailed, "image upload failed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeDispatchFailed, "dispatch failed")
		}
		return
	}

	ok(c, statusForReport(report), report)
}

// statusForReport maps the aggregate dispatch outcome to an HTTP status.
func statusForReport(r *services.DispatchReport) int {
	switch r.Status {
	case services.StatusSent:
		return http.StatusOK
	case services.StatusPartial:
		return http.StatusMultiStatus
	default:
		return http.StatusBadGateway
	}
}

// readImageFile extracts the optional image_file part. Returns (nil, nil)
// when the field is absent.
func readImageFile(c *gin.Context) (*services.ImageAttachment, error) {
	fh, err := c.FormFile("image_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, errors.New("image too large")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &services.ImageAttachment{Data: data, ContentType: ct}, nil
}
