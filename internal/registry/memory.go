package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resihall/relay-backend/internal/domain"
)

// MemoryStore is the transient fallback registry used when the database is
// unavailable. It holds registrations in a mutex-guarded slice scoped to the
// process lifetime. Tests also use it directly in place of globals.
type MemoryStore struct {
	mu   sync.RWMutex
	regs []domain.ChatRegistration
}

// NewMemoryStore returns an empty in-memory registry.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// FindByRoomID implements Store.
func (m *MemoryStore) FindByRoomID(_ context.Context, roomID string) (*domain.ChatRegistration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.regs {
		if m.regs[i].RoomID == roomID {
			reg := m.regs[i]
			return &reg, nil
		}
	}
	return nil, ErrNotFound
}

// Insert implements Store. Uniqueness is checked under the write lock, which
// is this store's equivalent of the SQL unique index.
func (m *MemoryStore) Insert(_ context.Context, roomID string, buildingID, floor int, env string) (*domain.ChatRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.regs {
		if m.regs[i].RoomID == roomID {
			return nil, ErrDuplicateRoom
		}
	}
	reg := domain.ChatRegistration{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		BuildingID:  buildingID,
		FloorNumber: floor,
		Environment: env,
		CreatedAt:   time.Now().UTC(),
	}
	m.regs = append(m.regs, reg)
	out := reg
	return &out, nil
}

// FindByBuildingIDs implements Store.
func (m *MemoryStore) FindByBuildingIDs(_ context.Context, ids []int) (map[int][]domain.ChatRegistration, error) {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int][]domain.ChatRegistration)
	for _, reg := range m.regs {
		if _, ok := want[reg.BuildingID]; ok {
			out[reg.BuildingID] = append(out[reg.BuildingID], reg)
		}
	}
	for id := range out {
		sort.Slice(out[id], func(a, b int) bool {
			return out[id][a].FloorNumber < out[id][b].FloorNumber
		})
	}
	return out, nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.regs)), nil
}

// ListPage implements Store.
func (m *MemoryStore) ListPage(_ context.Context, offset, limit int) ([]domain.ChatRegistration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := make([]domain.ChatRegistration, len(m.regs))
	copy(sorted, m.regs)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].BuildingID != sorted[b].BuildingID {
			return sorted[a].BuildingID < sorted[b].BuildingID
		}
		return sorted[a].FloorNumber < sorted[b].FloorNumber
	})

	if offset >= len(sorted) {
		return []domain.ChatRegistration{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}
