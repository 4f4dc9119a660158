package buildings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/resihall/relay-backend/internal/domain"
)

func testRecords() []domain.Building {
	return []domain.Building{
		{ID: 1, Name: "Alpha Hall", Region: "North"},
		{ID: 2, Name: "Beta Hall", Region: "North"},
		{ID: 3, Name: "Gamma Tower", Region: "South"},
		{ID: 4, Name: "Delta House", Region: "West"},
	}
}

func TestNew_RejectsEmptyList(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	recs := testRecords()
	recs = append(recs, domain.Building{ID: 1, Name: "Clone", Region: "South"})
	if _, err := New(recs); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestLoad_ReadsJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildings.json")
	raw := `[{"id":1,"name":"Alpha Hall","region":"North"},{"id":2,"name":"Beta Hall","region":"South"}]`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := idx.AllIDs(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("AllIDs = %v", got)
	}
}

func TestLoad_FailsOnMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_FailsOnMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestIDsForRegions(t *testing.T) {
	idx, err := New(testRecords())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name    string
		regions []string
		want    []int
	}{
		{"single region", []string{"North"}, []int{1, 2}},
		{"case insensitive", []string{"nOrTh"}, []int{1, 2}},
		{"union of two", []string{"South", "West"}, []int{3, 4}},
		{"duplicates collapse", []string{"North", "north"}, []int{1, 2}},
		{"all sentinel", []string{"all"}, []int{1, 2, 3, 4}},
		{"all wins over others", []string{"South", "ALL"}, []int{1, 2, 3, 4}},
		{"unknown region", []string{"East"}, []int{}},
		{"empty input", nil, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := idx.IDsForRegions(tc.regions); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("IDsForRegions(%v) = %v; want %v", tc.regions, got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	idx, err := New(testRecords())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !idx.Contains(3) {
		t.Fatalf("Contains(3) = false")
	}
	if idx.Contains(99) {
		t.Fatalf("Contains(99) = true")
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	idx, err := New(testRecords())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := idx.Records()
	out[0].Name = "mutated"
	if idx.Records()[0].Name == "mutated" {
		t.Fatalf("Records leaked internal slice")
	}
}
