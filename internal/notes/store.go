// Package notes implements the in-memory note collection backed by a
// persistence adapter, including schema migration of legacy records and
// the display orderings.
package notes

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

// Store owns the note collection. All mutations go through it and are
// persisted immediately; the raw slice order is the manual display order.
type Store struct {
	mu      sync.Mutex
	notes   []models.Note
	adapter *kv.Adapter

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() string
}

// NewStore creates a store over the given adapter and loads the persisted
// collection, applying the migration pass to legacy records.
func NewStore(adapter *kv.Adapter) *Store {
	s := &Store{
		adapter: adapter,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.notes = Migrate(kv.Load(adapter, models.NotesKey, []models.Note{}))
	return s
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) persist() {
	kv.Save(s.adapter, models.NotesKey, s.notes)
}

// All returns a copy of the collection in raw (manual) order.
func (s *Store) All() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get returns the note with the given id, or nil if absent.
func (s *Store) Get(id string) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := s.notes[i]
			return &n
		}
	}
	return nil
}

// SelectedCount returns how many notes are currently selected.
func (s *Store) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.notes {
		if s.notes[i].IsSelected {
			count++
		}
	}
	return count
}

// Create allocates a new empty note of the given kind and prepends it to
// the collection, so the newest note comes first in raw order.
func (s *Store) Create(kind models.NoteType, fontSize models.FontSize) models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.timestamp()
	n := models.Note{
		ID:        s.newID(),
		CreatedAt: ts,
		UpdatedAt: ts,
		Color:     models.DefaultColor(models.ThemeLight),
		FontSize:  fontSize,
		Tags:      []string{},
		Type:      kind,
	}
	if kind == models.TypeList {
		n.ListItems = []models.ListItem{}
	}
	s.notes = append([]models.Note{n}, s.notes...)
	s.persist()
	return n
}

// Update replaces the stored note with the same id. It does not touch
// UpdatedAt; callers bump it when the change affects content. Unknown ids
// are a no-op.
func (s *Store) Update(n models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == n.ID {
			s.notes[i] = n
			s.persist()
			return
		}
	}
}

// Delete removes the note with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			s.persist()
			return
		}
	}
}

// ToggleSelect flips the selection flag of the note with the given id.
func (s *Store) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].IsSelected = !s.notes[i].IsSelected
			s.persist()
			return
		}
	}
}

// Reorder moves the dragged note immediately before the target note in raw
// order. Missing ids or dragging onto itself are a no-op. The resulting
// order is only user-visible under manual sort.
func (s *Store) Reorder(draggedID, targetID string) {
	if draggedID == targetID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from := -1
	for i := range s.notes {
		if s.notes[i].ID == draggedID {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	dragged := s.notes[from]
	rest := append(append([]models.Note{}, s.notes[:from]...), s.notes[from+1:]...)

	to := -1
	for i := range rest {
		if rest[i].ID == targetID {
			to = i
			break
		}
	}
	if to < 0 {
		return
	}
	s.notes = append(rest[:to], append([]models.Note{dragged}, rest[to:]...)...)
	s.persist()
}

// Prepend inserts already-built notes (e.g. imported ones) at the front of
// the collection.
func (s *Store) Prepend(incoming []models.Note) {
	if len(incoming) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(append([]models.Note{}, incoming...), s.notes...)
	s.persist()
}

// Migrate fills in fields that older persisted records lack: a nil tag list
// becomes empty and a missing type becomes a plain note. Conforming entries
// pass through unchanged, so applying it twice is the same as applying it
// once.
func Migrate(in []models.Note) []models.Note {
	out := make([]models.Note, len(in))
	for i, n := range in {
		if n.Tags == nil {
			n.Tags = []string{}
		}
		if n.Type == "" {
			n.Type = models.TypeNote
		}
		out[i] = n
	}
	return out
}
