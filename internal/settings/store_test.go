package settings

import (
	"reflect"
	"testing"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(kv.NewAdapter(kv.NewMemMedium(), nil))

	got := s.Current()
	want := models.DefaultSettings()
	if got != want {
		t.Errorf("expected defaults %+v, got %+v", want, got)
	}
}

func TestUpdate_ShallowMerge(t *testing.T) {
	medium := kv.NewMemMedium()
	s := NewStore(kv.NewAdapter(medium, nil))

	dark := models.ThemeDark
	s.Update(Partial{Theme: &dark})

	got := s.Current()
	if got.Theme != models.ThemeDark {
		t.Errorf("theme not updated: %+v", got)
	}
	if got.GlobalFontSize != models.FontMedium || got.SortBy != models.SortByDate {
		t.Errorf("untouched fields changed: %+v", got)
	}

	// Persisted and reloadable.
	reloaded := NewStore(kv.NewAdapter(medium, nil))
	if reloaded.Current().Theme != models.ThemeDark {
		t.Errorf("settings not persisted: %+v", reloaded.Current())
	}
}

func TestUpdate_NotifiesSubscribers(t *testing.T) {
	s := NewStore(kv.NewAdapter(kv.NewMemMedium(), nil))
	ch := s.Subscribe()

	manual := models.SortManual
	s.Update(Partial{SortBy: &manual})

	select {
	case got := <-ch:
		if got.SortBy != models.SortManual {
			t.Errorf("unexpected notification: %+v", got)
		}
	default:
		t.Error("expected a notification")
	}
}

func TestThemeClasses_PureDerivation(t *testing.T) {
	got := ThemeClasses(models.AppSettings{
		Theme:          models.ThemeDark,
		GlobalFontSize: models.FontLarge,
	})
	want := []string{"dark", "global-font-large"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
