package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resihall/relay-backend/internal/domain"
	"github.com/resihall/relay-backend/internal/registry"
	"github.com/resihall/relay-backend/internal/services"
)

// ----- AddChat -----

func TestAddChat_Success(t *testing.T) {
	reg := &fakeRegistrar{reg: &domain.ChatRegistration{
		ID: "id-1", RoomID: "12345678", BuildingID: 1, FloorNumber: 3, Environment: "dev",
	}}
	r := newTestRouter(t, defaultHandlers(t, reg, nil, nil))

	w := doJSON(t, r, http.MethodPost, "/chats/add", AddChatRequest{
		GroupMeLink: "https://groupme.com/join_group/12345678/SHARE",
		BuildingID:  intPtr(1),
		FloorNumber: intPtr(3),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var out AddChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Message != "Chat added successfully" || out.Chat == nil || out.Chat.RoomID != "12345678" {
		t.Fatalf("out = %+v", out)
	}
	if reg.gotBuilding != 1 || reg.gotFloor != 3 {
		t.Fatalf("registrar got building=%d floor=%d", reg.gotBuilding, reg.gotFloor)
	}
}

func TestAddChat_MissingFields(t *testing.T) {
	reg := &fakeRegistrar{}
	r := newTestRouter(t, defaultHandlers(t, reg, nil, nil))

	w := doJSON(t, r, http.MethodPost, "/chats/add", map[string]any{"groupme_link": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if decodeError(t, w).Code != ErrCodeBadRequest {
		t.Fatalf("body = %s", w.Body.String())
	}
	if reg.calls != 0 {
		t.Fatalf("registrar must not be called")
	}
}

func TestAddChat_UnknownBuilding(t *testing.T) {
	r := newTestRouter(t, defaultHandlers(t, nil, nil, nil))

	w := doJSON(t, r, http.MethodPost, "/chats/add", AddChatRequest{
		GroupMeLink: "https://groupme.com/join_group/1/t",
		BuildingID:  intPtr(99),
		FloorNumber: intPtr(1),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAddChat_NegativeFloor(t *testing.T) {
	r := newTestRouter(t, defaultHandlers(t, nil, nil, nil))

	w := doJSON(t, r, http.MethodPost, "/chats/add", AddChatRequest{
		GroupMeLink: "https://groupme.com/join_group/1/t",
		BuildingID:  intPtr(1),
		FloorNumber: intPtr(-1),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAddChat_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid link", services.ErrInvalidLink, http.StatusBadRequest, ErrCodeInvalidLink},
		{"duplicate", services.ErrDuplicateRoom, http.StatusBadRequest, ErrCodeChatExists},
		{"join failed", services.ErrJoinFailed, http.StatusInternalServerError, ErrCodeJoinFailed},
		{"persistence", fmt.Errorf("disk full"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t, defaultHandlers(t, &fakeRegistrar{err: tc.err}, nil, nil))
			w := doJSON(t, r, http.MethodPost, "/chats/add", AddChatRequest{
				GroupMeLink: "https://groupme.com/join_group/1/t",
				BuildingID:  intPtr(1),
				FloorNumber: intPtr(2),
			})
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tc.wantStatus)
			}
			if got := decodeError(t, w).Code; got != tc.wantCode {
				t.Fatalf("code = %q; want %q", got, tc.wantCode)
			}
		})
	}
}

// ----- ListChats -----

func TestListChats_PaginatesMemoryStore(t *testing.T) {
	store := registry.NewMemoryStore()
	for i := 0; i < 5; i++ {
		if _, err := store.Insert(context.Background(), fmt.Sprintf("g%d", i), i+1, 1, "dev"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := New(&fakeRegistrar{}, &fakeDispatcher{}, fakeAuth{}, store, testBuildings(t), nil)
	r := newTestRouter(t, h)

	req := httptest.NewRequest(http.MethodGet, "/chats?page=2&page_size=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var out ListChatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Chats) != 2 {
		t.Fatalf("chats = %+v", out.Chats)
	}
	p := out.Pagination
	if p.Page != 2 || p.PageSize != 2 || p.Total != 5 || p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("pagination = %+v", p)
	}
}

func TestListChats_Empty(t *testing.T) {
	r := newTestRouter(t, defaultHandlers(t, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out ListChatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Chats) != 0 || out.Pagination.Total != 0 || out.Pagination.HasNext {
		t.Fatalf("out = %+v", out)
	}
}

func TestListChats_ClampsBadParams(t *testing.T) {
	r := newTestRouter(t, defaultHandlers(t, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/chats?page=-3&page_size=9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out ListChatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Pagination.Page != 1 || out.Pagination.PageSize != 100 {
		t.Fatalf("pagination = %+v", out.Pagination)
	}
}
