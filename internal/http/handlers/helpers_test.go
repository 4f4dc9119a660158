package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/resihall/relay-backend/internal/buildings"
	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/registry"
	"github.com/resihall/relay-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ----- Fakes -----

type fakeRegistrar struct {
	reg *domain.ChatRegistration
	err error

	gotLink     string
	gotBuilding int
	gotFloor    int
	calls       int
}

func (f *fakeRegistrar) Register(_ context.Context, link string, buildingID, floor int) (*domain.ChatRegistration, error) {
	f.calls++
	f.gotLink, f.gotBuilding, f.gotFloor = link, buildingID, floor
	return f.reg, f.err
}

type fakeDispatcher struct {
	report *services.DispatchReport
	err    error

	gotReq services.DispatchRequest
	calls  int
}

func (f *fakeDispatcher) Dispatch(_ context.Context, req services.DispatchRequest) (*services.DispatchReport, error) {
	f.calls++
	f.gotReq = req
	return f.report, f.err
}

type fakeAuth struct{ want string }

func (f fakeAuth) Check(password string) bool { return f.want != "" && password == f.want }

// ----- Harness -----

func testBuildings(t *testing.T) *buildings.Index {
	t.Helper()
	idx, err := buildings.New([]domain.Building{
		{ID: 1, Name: "Alpha", Region: "North"},
		{ID: 2, Name: "Beta", Region: "South"},
	})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	return idx
}

// newTestRouter mounts a Handlers instance with the standard routes and no
// middleware stack; handler tests exercise status codes and envelopes only.
func newTestRouter(t *testing.T, h *Handlers) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.POST("/chats/add", h.AddChat)
	r.GET("/chats", h.ListChats)
	r.POST("/messages/send", h.SendMessages)
	r.POST("/auth", h.Authenticate)
	r.GET("/buildings", h.ListBuildings)
	return r
}

func defaultHandlers(t *testing.T, reg *fakeRegistrar, disp *fakeDispatcher, auth Authenticator) *Handlers {
	t.Helper()
	if reg == nil {
		reg = &fakeRegistrar{}
	}
	if disp == nil {
		disp = &fakeDispatcher{}
	}
	if auth == nil {
		auth = fakeAuth{}
	}
	return New(reg, disp, auth, registry.NewMemoryStore(), testBuildings(t), nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// multipartBody builds a multipart form with repeated fields and an optional
// file part named image_file.
func multipartBody(t *testing.T, fields map[string][]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(name, v); err != nil {
				t.Fatalf("write field %s: %v", name, err)
			}
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image_file", "poster.png")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, w.Body.String())
	}
	return out
}

func intPtr(n int) *int { return &n }
