package transfer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

func TestImport_SingleObjectBecomesOneElementArray(t *testing.T) {
	got, err := Import([]byte(`{"title":"X","content":"Y"}`))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one note, got %d", len(got))
	}
	n := got[0]
	if n.Title != "X" || n.Content != "Y" {
		t.Errorf("content lost: %+v", n)
	}
	if n.ID == "" {
		t.Error("expected a fresh id")
	}
	if n.CreatedAt == "" || n.UpdatedAt == "" {
		t.Error("expected fresh timestamps")
	}
	if n.Tags == nil || len(n.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", n.Tags)
	}
	if n.Type != models.TypeNote {
		t.Errorf("expected note type, got %q", n.Type)
	}
}

func TestImport_ArrayAssignsFreshIDs(t *testing.T) {
	input := `[{"id":"a","title":"1","isSelected":true},{"id":"a","title":"2"}]`

	got, err := Import([]byte(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two notes, got %d", len(got))
	}
	if got[0].ID == "a" || got[1].ID == "a" || got[0].ID == got[1].ID {
		t.Errorf("imported ids must be fresh and unique: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].IsSelected {
		t.Error("imported notes must not arrive selected")
	}
}

func TestImport_KeepsProvidedCreatedAt(t *testing.T) {
	got, err := Import([]byte(`{"title":"old","createdAt":"2020-05-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if got[0].CreatedAt != "2020-05-01T00:00:00Z" {
		t.Errorf("expected createdAt kept, got %q", got[0].CreatedAt)
	}
	if got[0].UpdatedAt == "2020-05-01T00:00:00Z" {
		t.Error("expected updatedAt refreshed")
	}
}

func TestImport_InvalidJSONIsFormatError(t *testing.T) {
	_, err := Import([]byte("not json at all"))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestExport_PrettyPrintedWithDefaultName(t *testing.T) {
	collection := []models.Note{{ID: "1", Title: "a", Tags: []string{}, Type: models.TypeNote}}

	a, err := Export(collection, "")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if a.Filename != DefaultFilename {
		t.Errorf("expected default filename, got %q", a.Filename)
	}
	if a.Count != 1 {
		t.Errorf("expected count 1, got %d", a.Count)
	}
	if !strings.Contains(string(a.Data), "\n  ") {
		t.Error("expected 2-space indented output")
	}

	var back []models.Note
	if err := json.Unmarshal(a.Data, &back); err != nil {
		t.Fatalf("exported document must parse back: %v", err)
	}
	if len(back) != 1 || back[0].ID != "1" {
		t.Errorf("roundtrip lost data: %+v", back)
	}
}

func TestExportSingle_FilenameFromTitle(t *testing.T) {
	a, err := ExportSingle(models.Note{Title: "Список покупок: хлеб и молоко"})
	if err != nil {
		t.Fatalf("ExportSingle failed: %v", err)
	}
	// First 20 characters, spaces and punctuation replaced, Cyrillic kept.
	if a.Filename != "Список_покупок__хлеб.json" {
		t.Errorf("unexpected filename: %q", a.Filename)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"hello world", "hello_world.json"},
		{"abc-123", "abc_123.json"},
		{"", ".json"},
		{"заметка", "заметка.json"},
		{"a very long title that keeps going", "a_very_long_title_th.json"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.title); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
