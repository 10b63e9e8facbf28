package gallery

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youruser/axismedia/internal/catalog"
)

var ErrUnsupportedMediaType = errors.New("unsupported media type")

// MediaEntry is one item of a category gallery. Entries are never mutated
// after they are stored.
type MediaEntry struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Kind       catalog.Kind `json:"kind"`
	SourceURL  string       `json:"source_url"`
	MimeType   string       `json:"mime_type,omitempty"`
	Category   string       `json:"category"`
	MediaType  string       `json:"media_type"`
	UploadedAt time.Time    `json:"uploaded_at"`
	UploadedBy string       `json:"uploaded_by,omitempty"`
	Thumbnail  string       `json:"thumbnail,omitempty"`
}

// NewEntry is the caller-supplied part of an upload.
type NewEntry struct {
	Title      string
	MimeType   string
	SourceURL  string
	Category   string
	MediaType  string
	UploadedBy string
	Thumbnail  string
}

// Classify maps a MIME type onto a media kind.
func Classify(mimeType string) (catalog.Kind, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return catalog.KindImage, nil
	case strings.HasPrefix(mt, "video/"):
		return catalog.KindVideo, nil
	case strings.HasPrefix(mt, "audio/"):
		return catalog.KindAudio, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
}

// Store is the ordered, in-memory gallery of one category.
type Store struct {
	category string
	now      func() time.Time

	mu      sync.RWMutex
	entries []MediaEntry
}

// NewStore creates a store seeded with the catalog assets of category.
// seededAt stamps the seed entries so every session derives them identically.
func NewStore(category string, seeds []catalog.Asset, seededAt time.Time) *Store {
	s := &Store{category: category, now: time.Now}
	n := 0
	for _, a := range seeds {
		if a.Category != category {
			continue
		}
		n++
		s.entries = append(s.entries, MediaEntry{
			ID:         fmt.Sprintf("%s-%d", category, n),
			Title:      a.Title,
			Kind:       a.Kind,
			SourceURL:  a.Path,
			Category:   category,
			MediaType:  a.MediaType,
			UploadedAt: seededAt,
		})
	}
	return s
}

// Category is the category the store was opened for.
func (s *Store) Category() string {
	return s.category
}

// Add stores a new entry with a fresh id. Entries whose MIME type is not an
// image, video or audio type are rejected and not stored.
func (s *Store) Add(e NewEntry) (MediaEntry, error) {
	kind, err := Classify(e.MimeType)
	if err != nil {
		return MediaEntry{}, err
	}
	category := e.Category
	if category == "" {
		category = s.category
	}
	entry := MediaEntry{
		ID:         uuid.NewString(),
		Title:      e.Title,
		Kind:       kind,
		SourceURL:  e.SourceURL,
		MimeType:   e.MimeType,
		Category:   category,
		MediaType:  e.MediaType,
		UploadedAt: s.now(),
		UploadedBy: e.UploadedBy,
		Thumbnail:  e.Thumbnail,
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return entry, nil
}

// Remove deletes the entry with id. It reports whether an entry was removed;
// removing an unknown id is not an error.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (MediaEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return MediaEntry{}, false
}

// All returns every entry in insertion order.
func (s *Store) All() []MediaEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MediaEntry(nil), s.entries...)
}

// ListByCategory returns the entries of category in insertion order.
func (s *Store) ListByCategory(category string) []MediaEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []MediaEntry{}
	for _, e := range s.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// CountByMediaType counts entries tagged mediaType.
func (s *Store) CountByMediaType(mediaType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.MediaType == mediaType {
			n++
		}
	}
	return n
}

// Len is the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
