package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/filter"
	"github.com/youruser/axismedia/internal/gallery"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownOp       = errors.New("unknown operation")
)

// Op names a compositing workspace.
type Op string

const (
	OpResize    Op = "resize"
	OpThumbnail Op = "thumbnail"
	OpWallpaper Op = "wallpaper"
)

// ParseOp validates an operation name.
func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpResize, OpThumbnail, OpWallpaper:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Source is the image a user picked for one operation.
type Source struct {
	Filename string
	DataURL  string
}

// Session is the state of one opened category. It lives from
// Manager.Open until Manager.Close; nothing in it is persisted.
type Session struct {
	ID        string           `json:"id"`
	Category  catalog.Category `json:"category"`
	CreatedAt time.Time        `json:"created_at"`

	Gallery *gallery.Store   `json:"-"`
	Filters *filter.Selector `json:"-"`

	mu      sync.RWMutex
	sources map[Op]Source
	slots   map[Op]*Slot
}

// SetSource replaces the source image of op and drops its stale results.
func (s *Session) SetSource(op Op, filename, dataURL string) {
	s.mu.Lock()
	s.sources[op] = Source{Filename: filename, DataURL: dataURL}
	slot := s.slots[op]
	s.mu.Unlock()
	slot.Reset()
}

// ClearSource forgets the source image of op.
func (s *Session) ClearSource(op Op) {
	s.mu.Lock()
	delete(s.sources, op)
	slot := s.slots[op]
	s.mu.Unlock()
	slot.Reset()
}

// Source returns the picked image of op, if any.
func (s *Session) Source(op Op) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[op]
	return src, ok
}

// Slot returns the result slot of op.
func (s *Session) Slot(op Op) *Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[op]
}

// Manager owns all open sessions.
type Manager struct {
	catalog *catalog.Catalog

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(c *catalog.Catalog) *Manager {
	return &Manager{catalog: c, sessions: map[string]*Session{}}
}

// Open starts a session for category with a freshly seeded gallery.
func (m *Manager) Open(category string) (*Session, error) {
	cat, ok := catalog.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s := &Session{
		ID:        uuid.NewString(),
		Category:  cat,
		CreatedAt: time.Now(),
		Gallery:   gallery.NewStore(cat.ID, m.catalog.Assets(cat.ID), m.catalog.LoadedAt()),
		Filters:   filter.New(m.catalog.Tags(cat.ID)),
		sources:   map[Op]Source{},
		slots: map[Op]*Slot{
			OpResize:    {},
			OpThumbnail: {},
			OpWallpaper: {},
		},
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close discards a session. Closing an unknown id is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len is the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
