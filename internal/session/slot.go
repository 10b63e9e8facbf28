package session

import (
	"sync"

	imagepkg "github.com/youruser/axismedia/internal/image"
)

// Result is an applied compositing output.
type Result struct {
	Seq      uint64            `json:"seq"`
	Label    string            `json:"label"`
	Filename string            `json:"filename"`
	Image    imagepkg.Rendered `json:"image"`
}

// Slot keeps the newest result of one operation. Every request takes a
// sequence number from Issue; a finished render only lands if no newer
// request was issued meanwhile.
type Slot struct {
	mu      sync.Mutex
	issued  uint64
	results []Result
}

// Issue returns the next sequence number.
func (s *Slot) Issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply stores results for seq if seq is still the latest issued.
func (s *Slot) Apply(seq uint64, results ...Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued {
		return false
	}
	for i := range results {
		results[i].Seq = seq
	}
	s.results = results
	return true
}

// Latest returns the last applied results.
func (s *Slot) Latest() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}

// Reset drops the applied results and invalidates in-flight requests.
func (s *Slot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.results = nil
}
