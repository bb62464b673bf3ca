// Package store holds the authoritative fetched branch list and derives
// the enabled/disabled console views from it.
package store

import (
	"sync"

	"stolik/internal/model"
)

// EnabledBranch is a branch accepting reservations, annotated with its
// reservable-table count at read time.
type EnabledBranch struct {
	model.Branch
	ReservableTables int
}

// Store is the in-memory branch state. Branches are server-owned: the
// store only ever replaces whole records after a fetch, never edits them.
type Store struct {
	mu       sync.RWMutex
	branches []model.Branch
}

func New() *Store {
	return &Store{}
}

// Set replaces the branch list with a fresh fetch result.
func (s *Store) Set(branches []model.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches = make([]model.Branch, len(branches))
	copy(s.branches, branches)
}

// Update replaces the branch with the given id, if present.
func (s *Store) Update(id string, branch model.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branches {
		if s.branches[i].ID == id {
			s.branches[i] = branch
			return
		}
	}
}

// Branches returns a copy of the full list in fetch order.
func (s *Store) Branches() []model.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Branch, len(s.branches))
	copy(out, s.branches)
	return out
}

// Get returns the branch with the given id.
func (s *Store) Get(id string) (model.Branch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.branches {
		if b.ID == id {
			return b, true
		}
	}
	return model.Branch{}, false
}

// Enabled returns branches accepting reservations, in source order, each
// with its table count recomputed from current sections. The count is
// never cached.
func (s *Store) Enabled() []EnabledBranch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []EnabledBranch
	for _, b := range s.branches {
		if b.AcceptsReservations {
			out = append(out, EnabledBranch{Branch: b, ReservableTables: b.ReservableTableCount()})
		}
	}
	return out
}

// Disabled returns branches not accepting reservations, in source order.
func (s *Store) Disabled() []model.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Branch
	for _, b := range s.branches {
		if !b.AcceptsReservations {
			out = append(out, b)
		}
	}
	return out
}
