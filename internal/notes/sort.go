package notes

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

// SortedView returns the collection in display order for the given mode
// without mutating the input. Sorts are stable, so equal keys keep their
// raw relative order. Manual mode is the identity: it reflects the physical
// order maintained by Reorder.
func SortedView(in []models.Note, mode models.SortMode) []models.Note {
	out := make([]models.Note, len(in))
	copy(out, in)

	switch mode {
	case models.SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return parseTimestamp(out[i].CreatedAt).After(parseTimestamp(out[j].CreatedAt))
		})
	case models.SortByTitle:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	case models.SortByTags:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(tagKey(out[i]), tagKey(out[j])) < 0
		})
	}
	return out
}

// newCollator builds the locale-aware, case-insensitive comparer used for
// title and tag ordering. Russian tailoring matches the reference app's
// locale; collators are not safe for concurrent use, hence one per call.
func newCollator() *collate.Collator {
	return collate.New(language.Russian, collate.IgnoreCase)
}

// tagKey joins a note's tags with spaces; untagged notes yield the empty
// string and therefore sort first.
func tagKey(n models.Note) string {
	return strings.Join(n.Tags, " ")
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
