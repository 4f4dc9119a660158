// Package buildings loads the static building reference list and answers
// region/id resolution queries for the dispatcher. The list is read once at
// process start and never mutated, so the index is safe for concurrent use
// without locking.
package buildings

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/resihall/relay-backend/internal/domain"
)

// RegionAll is the sentinel region name that expands to every building.
const RegionAll = "all"

// Index is the immutable, queryable view over the loaded building records.
type Index struct {
	records  []domain.Building
	byRegion map[string][]int // lowercased region -> building ids
}

// Load reads the building list from a JSON file and builds the index.
// It fails on unreadable files, malformed JSON, an empty list, or duplicate
// building ids; all are deployment mistakes that should stop startup.
func Load(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read buildings file: %w", err)
	}
	var records []domain.Building
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse buildings file %s: %w", path, err)
	}
	return New(records)
}

// New builds an index from an in-memory record list. Exposed separately so
// tests can construct fixtures without touching the filesystem.
func New(records []domain.Building) (*Index, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("buildings list is empty")
	}
	idx := &Index{
		records:  make([]domain.Building, len(records)),
		byRegion: make(map[string][]int),
	}
	copy(idx.records, records)

	seen := make(map[int]struct{}, len(records))
	for _, b := range idx.records {
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("duplicate building id %d", b.ID)
		}
		seen[b.ID] = struct{}{}
		region := strings.ToLower(strings.TrimSpace(b.Region))
		idx.byRegion[region] = append(idx.byRegion[region], b.ID)
	}
	return idx, nil
}

// Records returns a copy of the full reference list, in file order.
func (idx *Index) Records() []domain.Building {
	out := make([]domain.Building, len(idx.records))
	copy(out, idx.records)
	return out
}

// AllIDs returns every building id, ascending.
func (idx *Index) AllIDs() []int {
	out := make([]int, 0, len(idx.records))
	for _, b := range idx.records {
		out = append(out, b.ID)
	}
	sort.Ints(out)
	return out
}

// IDsForRegions resolves a set of region names to the union of their building
// ids, ascending. Region matching is case-insensitive. The RegionAll sentinel
// anywhere in the set expands to every building. Unknown regions contribute
// nothing; a fully unknown set yields an empty slice.
func (idx *Index) IDsForRegions(regions []string) []int {
	set := make(map[int]struct{})
	for _, r := range regions {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == RegionAll {
			return idx.AllIDs()
		}
		for _, id := range idx.byRegion[r] {
			set[id] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Contains reports whether id is a known building.
func (idx *Index) Contains(id int) bool {
	for _, b := range idx.records {
		if b.ID == id {
			return true
		}
	}
	return false
}
