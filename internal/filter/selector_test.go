package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/gallery"
)

var universe = []string{"photos", "b-roll", "wallpaper-image"}

func entries() []gallery.MediaEntry {
	return []gallery.MediaEntry{
		{ID: "1", MediaType: "photos"},
		{ID: "2", MediaType: "b-roll"},
		{ID: "3", MediaType: "photos"},
		{ID: "4", MediaType: "wallpaper-image"},
	}
}

func ids(es []gallery.MediaEntry) []string {
	out := []string{}
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestNewSelectsEverything(t *testing.T) {
	s := New(append(universe, "photos"))
	assert.True(t, s.AllActive())
	assert.Equal(t, universe, s.Universe(), "duplicates dropped")
	assert.Equal(t, universe, s.Active())
}

func TestToggle(t *testing.T) {
	s := New(universe)
	require.NoError(t, s.Toggle("b-roll"))
	assert.False(t, s.IsActive("b-roll"))
	assert.False(t, s.AllActive())

	require.NoError(t, s.Toggle("b-roll"))
	assert.True(t, s.IsActive("b-roll"))
	assert.True(t, s.AllActive(), "all state follows toggles")

	assert.ErrorIs(t, s.Toggle("drone"), ErrUnknownTag)
}

func TestToggleAllClearsWhenEverythingSelected(t *testing.T) {
	s := New(universe)

	s.ToggleAll()
	assert.Empty(t, s.Active(), "pressing All when all are active clears")
	assert.False(t, s.AllActive())

	s.ToggleAll()
	assert.True(t, s.AllActive())
	assert.Equal(t, universe, s.Active())
}

func TestToggleAllFromPartialSelectsEverything(t *testing.T) {
	s := New(universe)
	require.NoError(t, s.Toggle("photos"))
	s.ToggleAll()
	assert.True(t, s.AllActive())
}

func TestAllActiveTracksManualSelection(t *testing.T) {
	s := New(universe)
	s.ToggleAll()
	for _, tag := range universe {
		assert.False(t, s.AllActive())
		require.NoError(t, s.Toggle(tag))
	}
	assert.True(t, s.AllActive())
}

func TestVisibleIsInclusiveOr(t *testing.T) {
	s := New(universe)
	require.NoError(t, s.Toggle("b-roll"))

	v := s.Visible(entries())
	assert.False(t, v.NeedsSelection)
	assert.Equal(t, []string{"1", "3", "4"}, ids(v.Entries))

	require.NoError(t, s.Toggle("wallpaper-image"))
	assert.Equal(t, []string{"1", "3"}, ids(s.Visible(entries()).Entries))
}

func TestVisibleWithEmptySetNeedsSelection(t *testing.T) {
	s := New(universe)
	s.ToggleAll()

	v := s.Visible(entries())
	assert.True(t, v.NeedsSelection)
	assert.Empty(t, v.Entries)
}

func TestVisibleNoMatchesIsNotNeedsSelection(t *testing.T) {
	s := New(universe)
	require.NoError(t, s.Toggle("photos"))
	require.NoError(t, s.Toggle("b-roll"))

	v := s.Visible([]gallery.MediaEntry{{ID: "1", MediaType: "photos"}})
	assert.False(t, v.NeedsSelection)
	assert.Empty(t, v.Entries)
}

func TestCountsFollowStore(t *testing.T) {
	store := gallery.NewStore("snow", catalog.DefaultAssets(), time.Time{})
	s := New(catalog.MediaTypes)

	before := s.Counts(store)
	_, err := store.Add(gallery.NewEntry{Title: "p", MimeType: "image/png", MediaType: "photos"})
	require.NoError(t, err)
	after := s.Counts(store)

	assert.Equal(t, before["photos"]+1, after["photos"])
	assert.Equal(t, before["b-roll"], after["b-roll"])
	assert.Len(t, after, len(catalog.MediaTypes))
}
