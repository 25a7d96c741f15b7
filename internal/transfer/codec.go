// Package transfer serializes note collections to portable JSON documents
// and parses them back, and delivers export artifacts through an ordered
// list of delivery mechanisms.
package transfer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/notes"
)

// ErrFormat is returned when imported content is not a valid notes document.
var ErrFormat = errors.New("invalid file format")

// DefaultFilename is the name used for bulk exports.
const DefaultFilename = "notes.json"

// Artifact is an export ready for delivery.
type Artifact struct {
	// Filename is the suggested name, always with a .json extension.
	Filename string
	// Data is the pretty-printed JSON document, UTF-8.
	Data []byte
	// Count is the number of notes in the document.
	Count int
}

// Export serializes the given notes to a pretty-printed JSON artifact.
// An empty filename falls back to DefaultFilename.
func Export(collection []models.Note, filename string) (Artifact, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Filename: filename, Data: data, Count: len(collection)}, nil
}

// ExportSingle serializes one note, deriving the filename from its title.
func ExportSingle(n models.Note) (Artifact, error) {
	return Export([]models.Note{n}, SanitizeFilename(n.Title))
}

// SanitizeFilename derives a file name from a note title: the first 20
// characters, with everything that is not a Latin letter, digit, or
// Cyrillic letter replaced by an underscore.
func SanitizeFilename(title string) string {
	runes := []rune(title)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r >= 'Ѐ' && r <= 'ӿ':
		default:
			runes[i] = '_'
		}
	}
	return string(runes) + ".json"
}

// Import parses fileContents as either an array of notes or a single note
// object. Parse failure yields ErrFormat. Imported notes always receive a
// fresh id, a refreshed update timestamp, and cleared selection, so they
// never collide with existing entries; deep validation is deferred to the
// migration pass, which is applied here for missing tags and type.
func Import(fileContents []byte) ([]models.Note, error) {
	var collection []models.Note
	if err := json.Unmarshal(fileContents, &collection); err != nil {
		var single models.Note
		if err := json.Unmarshal(fileContents, &single); err != nil {
			return nil, ErrFormat
		}
		collection = []models.Note{single}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	collection = notes.Migrate(collection)
	for i := range collection {
		collection[i].ID = uuid.NewString()
		if collection[i].CreatedAt == "" {
			collection[i].CreatedAt = now
		}
		collection[i].UpdatedAt = now
		collection[i].IsSelected = false
	}
	return collection, nil
}
