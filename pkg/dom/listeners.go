package dom

import (
	"sort"
	"sync"
)

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// ListenerSet is an ordered per-event-type listener registry.
// Implementations of EventTarget embed one. The zero value is ready to use.
type ListenerSet struct {
	mu     sync.Mutex
	next   ListenerID
	byType map[string][]listenerEntry
}

// Add registers l for eventType and returns its id.
func (s *ListenerSet) Add(eventType string, l Listener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byType == nil {
		s.byType = make(map[string][]listenerEntry)
	}
	s.next++
	s.byType[eventType] = append(s.byType[eventType], listenerEntry{id: s.next, fn: l})
	return s.next
}

// Remove unregisters id. It reports whether a listener was removed and how
// many listeners remain for eventType.
func (s *ListenerSet) Remove(eventType string, id ListenerID) (removed bool, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byType[eventType]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		entries = append(entries[:i:i], entries[i+1:]...)
		if len(entries) == 0 {
			delete(s.byType, eventType)
		} else {
			s.byType[eventType] = entries
		}
		return true, len(entries)
	}
	return false, len(entries)
}

// Snapshot returns the listeners for eventType in registration order.
// Dispatch iterates a snapshot so listeners may remove themselves.
func (s *ListenerSet) Snapshot(eventType string) []Listener {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byType[eventType]
	out := make([]Listener, len(entries))
	for i, e := range entries {
		out[i] = e.fn
	}
	return out
}

// Count returns the number of listeners registered for eventType.
func (s *ListenerSet) Count(eventType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byType[eventType])
}

// Types returns the event types with at least one listener, sorted.
func (s *ListenerSet) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.byType))
	for t := range s.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Clear drops every listener.
func (s *ListenerSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType = nil
}
