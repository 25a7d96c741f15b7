package notes

import (
	"sort"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

// AddItem appends an empty, unchecked line to a checklist note and returns
// it. Returns nil if the note is absent or not a checklist.
func (s *Store) AddItem(noteID string) *models.ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findList(noteID)
	if n == nil {
		return nil
	}
	maxOrder := 0
	for _, it := range n.ListItems {
		if it.Order > maxOrder {
			maxOrder = it.Order
		}
	}
	item := models.ListItem{
		ID:    s.newID(),
		Order: maxOrder + 1,
	}
	n.ListItems = append(n.ListItems, item)
	n.UpdatedAt = s.timestamp()
	s.persist()
	return &item
}

// UpdateItemText replaces the text of one checklist line.
func (s *Store) UpdateItemText(noteID, itemID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findList(noteID)
	if n == nil {
		return
	}
	for i := range n.ListItems {
		if n.ListItems[i].ID == itemID {
			n.ListItems[i].Text = text
			n.UpdatedAt = s.timestamp()
			s.persist()
			return
		}
	}
}

// ToggleItemCompleted flips the completed flag of one checklist line and
// re-partitions the whole list: unchecked lines before checked ones, each
// side ordered by the item's Order key.
func (s *Store) ToggleItemCompleted(noteID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findList(noteID)
	if n == nil {
		return
	}
	for i := range n.ListItems {
		if n.ListItems[i].ID == itemID {
			n.ListItems[i].Completed = !n.ListItems[i].Completed
			PartitionItems(n.ListItems)
			n.UpdatedAt = s.timestamp()
			s.persist()
			return
		}
	}
}

// DeleteItem removes one checklist line.
func (s *Store) DeleteItem(noteID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findList(noteID)
	if n == nil {
		return
	}
	for i := range n.ListItems {
		if n.ListItems[i].ID == itemID {
			n.ListItems = append(n.ListItems[:i], n.ListItems[i+1:]...)
			n.UpdatedAt = s.timestamp()
			s.persist()
			return
		}
	}
}

// PartitionItems sorts checklist lines in place so that every unchecked
// line precedes every checked one, ordered by Order within each side.
func PartitionItems(items []models.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Completed != items[j].Completed {
			return !items[i].Completed
		}
		return items[i].Order < items[j].Order
	})
}

// findList returns a pointer into the collection for a checklist note.
// Callers must hold the mutex.
func (s *Store) findList(noteID string) *models.Note {
	for i := range s.notes {
		if s.notes[i].ID == noteID && s.notes[i].Type == models.TypeList {
			return &s.notes[i]
		}
	}
	return nil
}
