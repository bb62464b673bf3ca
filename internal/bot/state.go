package bot

import (
	"sync"

	"stolik/internal/confirm"
	"stolik/internal/form"
	"stolik/internal/model"
	"stolik/internal/schedule"
	"stolik/internal/timeinput"
)

type editStep string

const (
	stepNone     editStep = "none"
	stepMenu     editStep = "menu"
	stepDuration editStep = "duration"
	stepTime     editStep = "time"
)

// operatorState holds one operator's in-progress branch edit plus their
// confirmation dialog. Drafts never touch the store until saved.
type operatorState struct {
	Step       editStep
	BranchID   string
	BranchName string
	Values     model.FormValues
	Tables     []form.TableOption

	// time entry target
	Day       model.WeekDay
	SlotIndex int
	Field     schedule.SlotField
	Input     *timeinput.Field

	Page     int
	Confirms *confirm.Controller
}

type stateStore struct {
	mu sync.Mutex
	m  map[int64]*operatorState
}

func newStateStore() *stateStore {
	return &stateStore{m: make(map[int64]*operatorState)}
}

func (s *stateStore) get(userID int64) *operatorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.m[userID]
	if st == nil {
		st = &operatorState{Step: stepNone}
		s.m[userID] = st
	}
	return st
}

func (s *stateStore) reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
