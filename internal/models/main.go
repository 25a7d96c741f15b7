// Package models defines the core data structures for notes, list items,
// and application settings.
package models

// Note represents a single user note, either free text or a checklist.
type Note struct {
	// ID is the unique identifier for the note. Immutable after creation.
	ID string `json:"id"`
	// Title is the user-visible note title.
	Title string `json:"title"`
	// Content holds the note body. Authoritative only when Type is TypeNote.
	Content string `json:"content"`
	// CreatedAt is the RFC 3339 creation timestamp. Immutable after creation.
	CreatedAt string `json:"createdAt"`
	// UpdatedAt is the RFC 3339 timestamp of the last content-affecting change.
	UpdatedAt string `json:"updatedAt"`
	// Color is the background color, one of the palette values.
	Color string `json:"color"`
	// FontSize is the per-note font size.
	FontSize FontSize `json:"fontSize"`
	// IsSelected marks the note as selected in the UI. Persisted but not part
	// of note identity.
	IsSelected bool `json:"isSelected"`
	// Tags is the list of tags in insertion order, without duplicates.
	Tags []string `json:"tags"`
	// Type indicates the kind of note ("note" or "list").
	Type NoteType `json:"type"`
	// ListItems holds the checklist lines. Present only when Type is TypeList.
	ListItems []ListItem `json:"listItems,omitempty"`
}

// ListItem is one checkable line within a checklist note.
type ListItem struct {
	// ID is unique within the parent note.
	ID string `json:"id"`
	// Text is the line content.
	Text string `json:"text"`
	// Completed marks the line as done.
	Completed bool `json:"completed"`
	// Order is the stable sort key among items with equal Completed status.
	Order int `json:"order"`
}

// AppSettings holds user preferences, persisted across sessions.
type AppSettings struct {
	// Theme selects the light or dark palette.
	Theme Theme `json:"theme"`
	// GlobalFontSize is the default font size for new notes and the UI.
	GlobalFontSize FontSize `json:"globalFontSize"`
	// SortBy selects the display ordering of the note collection.
	SortBy SortMode `json:"sortBy"`
}

// DefaultSettings returns the settings used before the user changed anything.
func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:          ThemeLight,
		GlobalFontSize: FontMedium,
		SortBy:         SortByDate,
	}
}

// NoteType defines the set of valid note kinds.
type NoteType string

const (
	// TypeNote represents a free-text note.
	TypeNote NoteType = "note"
	// TypeList represents a checklist note.
	TypeList NoteType = "list"
)

// FontSize defines the set of valid font sizes.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Theme defines the set of valid color themes.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// SortMode defines the set of valid collection orderings.
type SortMode string

const (
	// SortByDate orders notes newest first by creation time.
	SortByDate SortMode = "date"
	// SortByTitle orders notes by locale-aware title comparison.
	SortByTitle SortMode = "title"
	// SortByTags orders notes by their space-joined tag list.
	SortByTags SortMode = "tags"
	// SortManual keeps the raw collection order maintained by reorder.
	SortManual SortMode = "manual"
)

// Persisted storage keys.
const (
	// NotesKey is the storage key holding the JSON note collection.
	NotesKey = "sticky-notes"
	// SettingsKey is the storage key holding the JSON settings object.
	SettingsKey = "app-settings"
)

// LightPalette lists the note background colors available in the light theme.
var LightPalette = []string{"#ffffff", "#fef3c7", "#dbeafe", "#dcfce7", "#fce7f3", "#f3e8ff"}

// DarkPalette lists the note background colors available in the dark theme.
var DarkPalette = []string{"#1f2937", "#374151", "#1e3a5f", "#14532d", "#581c87", "#7c2d12"}

// DefaultColor returns the default note background for the given theme.
func DefaultColor(theme Theme) string {
	if theme == ThemeDark {
		return DarkPalette[0]
	}
	return LightPalette[0]
}
