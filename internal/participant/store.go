package participant

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type Store struct {
	mu           sync.RWMutex
	participants map[string]*Participant
}

func NewStore() *Store {
	return &Store{
		participants: make(map[string]*Participant),
	}
}

func key(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Add inserts p, assigning the next free ID when p.ID is empty.
// An existing participant with the same ID is replaced.
func (s *Store) Add(p *Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextIDLocked()
	}
	s.participants[key(p.ID)] = p
}

// Get looks up a participant by ID, ignoring case.
func (s *Store) Get(id string) (*Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[key(id)]
	return p, ok
}

// All returns every participant ordered by ID.
func (s *Store) All() []*Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Participant, 0, len(s.participants))
	for _, p := range s.participants {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

// Remove deletes the participant with id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(id)
	if _, ok := s.participants[k]; !ok {
		return false
	}
	delete(s.participants, k)
	return true
}

// Replace swaps the whole pool, used after reloading from disk.
func (s *Store) Replace(ps []*Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make(map[string]*Participant, len(ps))
	for _, p := range ps {
		s.participants[key(p.ID)] = p
	}
}

// NextID returns the ID a new participant would receive: "P" followed by
// the highest numeric suffix plus one, zero-padded to three digits. IDs
// that are not of the form P<digits> are ignored.
func (s *Store) NextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() string {
	maxID := 0
	for _, p := range s.participants {
		if n, ok := numericID(p.ID); ok && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("P%03d", maxID+1)
}

func numericID(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if len(id) < 2 || (id[0] != 'P' && id[0] != 'p') {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
