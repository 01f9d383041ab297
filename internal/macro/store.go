package macro

import (
	"sort"
	"sync"
)

// Store maps macro names to the hex payload typed when the macro was set.
// Payloads are kept verbatim and only validated when sent.
type Store struct {
	mu     sync.RWMutex
	macros map[string]string
}

// NewStore creates an empty macro store
func NewStore() *Store {
	return &Store{
		macros: make(map[string]string),
	}
}

// Set stores payload under name, replacing any previous value
func (s *Store) Set(name, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.macros[name] = payload
}

// Get returns the payload stored under name
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.macros[name]
	return payload, ok
}

// Names returns every macro name in sorted order
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.macros))
	for name := range s.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored macros
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.macros)
}
