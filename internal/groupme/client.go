package groupme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/resihall/relay-backend/internal/config"
)

// ErrNoAccessToken is returned (or implied by a fail-fast outcome) when no
// platform credential is configured. Gateway calls then never touch the
// network.
var ErrNoAccessToken = fmt.Errorf("no GroupMe access token configured")

// SendResult is the normalized outcome of a single post-message attempt.
// Ordinary HTTP failures populate StatusCode/Error; transport faults
// (timeout, DNS, connection refused) set Transport and leave StatusCode 0.
type SendResult struct {
	Success    bool
	StatusCode int
	Error      string
	Transport  bool
}

// Client calls the GroupMe v3 API and image service. Every operation is a
// single attempt: the dispatcher owns failure aggregation, so the gateway
// must not mask failures with retries.
type Client struct {
	apiBaseURL  string
	imageURL    string
	accessToken string
	http        *http.Client
}

// NewClient builds a Client from configuration. timeout bounds every
// outbound call so one unreachable room cannot stall a whole dispatch.
func NewClient(cfg config.GroupMeConfig, timeout time.Duration) *Client {
	return &Client{
		apiBaseURL:  cfg.APIBaseURL,
		imageURL:    cfg.ImageURL,
		accessToken: cfg.AccessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

// Join attempts to join the room identified by roomID using a share token.
// With no access token configured it fails fast without network I/O.
// HTTP 200 and 201 both count as joined; any other status is a non-fatal
// failure reported through the return values.
func (c *Client) Join(ctx context.Context, roomID, shareToken string) (joined bool, status int, err error) {
	if c.accessToken == "" {
		return false, 0, nil
	}

	u := fmt.Sprintf("%s/groups/%s/join/%s?token=%s",
		c.apiBaseURL, url.PathEscape(roomID), url.PathEscape(shareToken), url.QueryEscape(c.accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return false, 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, 0, err
	}
	defer drain(resp.Body)

	joined = resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	if !joined {
		log.Warn().Str("room_id", roomID).Int("status", resp.StatusCode).Msg("groupme: join rejected")
	}
	return joined, resp.StatusCode, nil
}

// uploadResponse mirrors the image service payload shape.
type uploadResponse struct {
	Payload struct {
		PictureURL string `json:"picture_url"`
	} `json:"payload"`
}

// UploadImage posts raw image bytes to the GroupMe image service and returns
// the hosted picture URL. Any non-200 status, a missing payload field, or a
// missing access token yields an error; the caller aborts the dispatch
// rather than downgrading to a text-only send.
func (c *Client) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if c.accessToken == "" {
		return "", ErrNoAccessToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.imageURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image upload rejected with status %d", resp.StatusCode)
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode image upload response: %w", err)
	}
	if out.Payload.PictureURL == "" {
		return "", fmt.Errorf("image upload response missing picture_url")
	}
	return out.Payload.PictureURL, nil
}

// messageAttachment is one entry of a message's attachments array.
type messageAttachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// messageEnvelope is the POST body for the group messages endpoint.
type messageEnvelope struct {
	Message struct {
		SourceGUID  string              `json:"source_guid"`
		Text        string              `json:"text"`
		Attachments []messageAttachment `json:"attachments,omitempty"`
	} `json:"message"`
}

// PostMessage sends text (and an optional single image attachment) to a
// room. A fresh source_guid makes each attempt idempotent on the platform
// side. HTTP 201 is the only success status. The result is always a value:
// upstream rejections populate StatusCode, transport faults set Transport.
func (c *Client) PostMessage(ctx context.Context, roomID, text, imageURL string) SendResult {
	if c.accessToken == "" {
		return SendResult{Error: ErrNoAccessToken.Error()}
	}

	var body messageEnvelope
	body.Message.SourceGUID = uuid.NewString()
	body.Message.Text = text
	if imageURL != "" {
		body.Message.Attachments = []messageAttachment{{Type: "image", URL: imageURL}}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return SendResult{Error: err.Error()}
	}

	u := fmt.Sprintf("%s/groups/%s/messages?token=%s",
		c.apiBaseURL, url.PathEscape(roomID), url.QueryEscape(c.accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return SendResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SendResult{Error: err.Error(), Transport: true}
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return SendResult{
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("send rejected with status %d", resp.StatusCode),
		}
	}
	return SendResult{Success: true, StatusCode: resp.StatusCode}
}

// drain consumes and closes a response body so the transport can reuse the
// connection.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
