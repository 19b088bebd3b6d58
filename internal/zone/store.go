package zone

import "sync"

// Store holds the zone set in insertion order.
//
// The order is the order in which recognized fragments are joined into a
// filename. Zones are appended one at a time and only ever cleared together.
type Store struct {
	mu    sync.RWMutex
	zones []Rect
}

// NewStore returns an empty zone set.
func NewStore() *Store {
	return &Store{}
}

// Add appends r after normalizing its corners and returns the new count.
func (s *Store) Add(r Rect) int {
	r = NewRect(r.X1, r.Y1, r.X2, r.Y2)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones = append(s.zones, r)
	return len(s.zones)
}

// Clear removes every zone.
func (s *Store) Clear() {
	s.mu.Lock()
	s.zones = nil
	s.mu.Unlock()
}

// All returns a copy of the zones in insertion order.
func (s *Store) All() []Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rect, len(s.zones))
	copy(out, s.zones)
	return out
}

// Len returns the number of zones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.zones)
}
