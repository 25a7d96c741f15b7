package notes

import (
	"testing"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

func checkPartition(t *testing.T, items []models.ListItem) {
	t.Helper()
	seenCompleted := false
	for i, it := range items {
		if it.Completed {
			seenCompleted = true
		} else if seenCompleted {
			t.Fatalf("incomplete item at %d after a completed one: %v", i, items)
		}
	}
}

func TestAddItem_AssignsIncreasingOrder(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeList, models.FontMedium)

	first := s.AddItem(n.ID)
	second := s.AddItem(n.ID)
	if first == nil || second == nil {
		t.Fatal("expected items to be added")
	}
	if second.Order <= first.Order {
		t.Errorf("expected increasing order keys: %d then %d", first.Order, second.Order)
	}
}

func TestAddItem_RejectsPlainNotes(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeNote, models.FontMedium)

	if item := s.AddItem(n.ID); item != nil {
		t.Errorf("plain note must not accept items, got %+v", item)
	}
}

func TestToggleItemCompleted_RepartitionsList(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeList, models.FontMedium)
	a := s.AddItem(n.ID)
	b := s.AddItem(n.ID)
	c := s.AddItem(n.ID)

	s.ToggleItemCompleted(n.ID, a.ID)
	got := s.Get(n.ID)
	checkPartition(t, got.ListItems)
	if got.ListItems[len(got.ListItems)-1].ID != a.ID {
		t.Errorf("completed item must move to the tail: %v", got.ListItems)
	}
	if got.ListItems[0].ID != b.ID || got.ListItems[1].ID != c.ID {
		t.Errorf("incomplete items must keep their order: %v", got.ListItems)
	}

	// Toggling back restores the unchecked partition by order key.
	s.ToggleItemCompleted(n.ID, a.ID)
	got = s.Get(n.ID)
	checkPartition(t, got.ListItems)
	if got.ListItems[0].ID != a.ID {
		t.Errorf("expected original order restored, got %v", got.ListItems)
	}
}

func TestToggleItemCompleted_BumpsUpdatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeList, models.FontMedium)
	item := s.AddItem(n.ID)
	before := s.Get(n.ID).UpdatedAt

	s.ToggleItemCompleted(n.ID, item.ID)
	if after := s.Get(n.ID).UpdatedAt; after == before {
		t.Error("expected UpdatedAt to change")
	}
}

func TestUpdateItemText(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeList, models.FontMedium)
	item := s.AddItem(n.ID)

	s.UpdateItemText(n.ID, item.ID, "молоко")
	got := s.Get(n.ID)
	if got.ListItems[0].Text != "молоко" {
		t.Errorf("text not updated: %v", got.ListItems)
	}
}

func TestDeleteItem(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Create(models.TypeList, models.FontMedium)
	a := s.AddItem(n.ID)
	b := s.AddItem(n.ID)

	s.DeleteItem(n.ID, a.ID)
	got := s.Get(n.ID)
	if len(got.ListItems) != 1 || got.ListItems[0].ID != b.ID {
		t.Errorf("unexpected items after delete: %v", got.ListItems)
	}
}

func TestPartitionItems_Property(t *testing.T) {
	items := []models.ListItem{
		{ID: "1", Order: 3, Completed: true},
		{ID: "2", Order: 1, Completed: false},
		{ID: "3", Order: 2, Completed: true},
		{ID: "4", Order: 4, Completed: false},
	}

	PartitionItems(items)
	checkPartition(t, items)
	if items[0].ID != "2" || items[1].ID != "4" {
		t.Errorf("incomplete side must be ordered by key: %v", items)
	}
	if items[2].ID != "3" || items[3].ID != "1" {
		t.Errorf("completed side must be ordered by key: %v", items)
	}
}
