package filter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/youruser/axismedia/internal/gallery"
)

var ErrUnknownTag = errors.New("unknown filter tag")

// Selector is the set of active mediaType tags over a fixed tag universe.
type Selector struct {
	universe []string

	mu     sync.RWMutex
	active map[string]struct{}
}

// New returns a selector with every tag of universe active.
func New(universe []string) *Selector {
	s := &Selector{active: map[string]struct{}{}}
	for _, t := range universe {
		if _, dup := s.active[t]; dup {
			continue
		}
		s.universe = append(s.universe, t)
		s.active[t] = struct{}{}
	}
	return s
}

// Universe returns every tag the selector knows about.
func (s *Selector) Universe() []string {
	return append([]string(nil), s.universe...)
}

// Known reports whether tag belongs to the universe.
func (s *Selector) Known(tag string) bool {
	for _, t := range s.universe {
		if t == tag {
			return true
		}
	}
	return false
}

// Toggle flips tag in or out of the active set.
func (s *Selector) Toggle(tag string) error {
	if !s.Known(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[tag]; ok {
		delete(s.active, tag)
	} else {
		s.active[tag] = struct{}{}
	}
	return nil
}

// ToggleAll clears the set when every tag is active, and selects the whole
// universe otherwise.
func (s *Selector) ToggleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) == len(s.universe) {
		s.active = map[string]struct{}{}
		return
	}
	for _, t := range s.universe {
		s.active[t] = struct{}{}
	}
}

// AllActive is the state of the "All" control.
func (s *Selector) AllActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active) == len(s.universe)
}

// IsActive reports whether tag is selected.
func (s *Selector) IsActive(tag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[tag]
	return ok
}

// Active returns the selected tags in universe order.
func (s *Selector) Active() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, t := range s.universe {
		if _, ok := s.active[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// View is the filtered gallery. NeedsSelection is set when no tag is active,
// which is distinct from active tags matching nothing.
type View struct {
	Entries        []gallery.MediaEntry `json:"entries"`
	NeedsSelection bool                 `json:"needs_selection"`
}

// Visible filters entries by the active tags. A tag match on any active tag
// makes an entry visible.
func (s *Selector) Visible(entries []gallery.MediaEntry) View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.active) == 0 {
		return View{Entries: []gallery.MediaEntry{}, NeedsSelection: true}
	}
	out := []gallery.MediaEntry{}
	for _, e := range entries {
		if _, ok := s.active[e.MediaType]; ok {
			out = append(out, e)
		}
	}
	return View{Entries: out}
}

// Counter is the part of the gallery store the badges need.
type Counter interface {
	CountByMediaType(mediaType string) int
}

// Counts returns the live badge count of every tag in the universe.
func (s *Selector) Counts(store Counter) map[string]int {
	out := make(map[string]int, len(s.universe))
	for _, t := range s.universe {
		out[t] = store.CountByMediaType(t)
	}
	return out
}
