// Package service implements the operator-facing branch operations:
// fetching, toggling and saving reservation settings against the remote
// API, with the console's loading/error bookkeeping around every call.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"stolik/internal/form"
	"stolik/internal/metrics"
	"stolik/internal/model"
	"stolik/internal/schedule"
	"stolik/internal/store"
)

// BranchAPI is the slice of the remote client the service depends on.
type BranchAPI interface {
	ListBranches(ctx context.Context) ([]model.Branch, error)
	GetBranch(ctx context.Context, id string) (*model.Branch, error)
	UpdateBranch(ctx context.Context, id string, payload any) (*model.Branch, error)
	EnableReservations(ctx context.Context, id string) (*model.Branch, error)
	DisableReservations(ctx context.Context, id string) (*model.Branch, error)
	DisableAll(ctx context.Context, ids []string) error
}

// AuditLog records operator actions. Recording failures never fail the
// operation itself.
type AuditLog interface {
	RecordAction(ctx context.Context, actor int64, action, branchID, branchName, details string) error
}

// Service owns the branch store and serializes operator-triggered work
// behind a single loading flag. All shared state is mutated from the
// console's one update loop; the mutex only guards the flag and error
// string against concurrent reads.
type Service struct {
	api    BranchAPI
	store  *store.Store
	audit  AuditLog
	logger *zerolog.Logger

	mu        sync.Mutex
	loading   bool
	lastError string
}

func New(api BranchAPI, st *store.Store, auditLog AuditLog, logger *zerolog.Logger) *Service {
	return &Service{api: api, store: st, audit: auditLog, logger: logger}
}

// Store exposes the branch store for read-side projections.
func (s *Service) Store() *store.Store {
	return s.store
}

// Loading reports whether an operation is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the stored error banner text, empty when clear.
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError clears the error banner.
func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// begin marks an operation start; the returned func always runs in a
// defer so the loading flag resets regardless of outcome.
func (s *Service) begin() func() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

// fail stores a short banner message, logs the underlying error and
// returns it so callers can also react.
func (s *Service) fail(banner string, err error) error {
	s.mu.Lock()
	s.lastError = banner
	s.mu.Unlock()
	s.logger.Error().Err(err).Msg(banner)
	return err
}

// FetchBranches refreshes the store from the remote list.
func (s *Service) FetchBranches(ctx context.Context) error {
	defer s.begin()()

	branches, err := s.api.ListBranches(ctx)
	if err != nil {
		metrics.IncAPIRequest("list_branches", "error")
		return s.fail("Failed to fetch branches", err)
	}
	metrics.IncAPIRequest("list_branches", "ok")
	s.store.Set(branches)
	return nil
}

// FetchBranch refreshes one branch in the store and returns it.
func (s *Service) FetchBranch(ctx context.Context, id string) (*model.Branch, error) {
	defer s.begin()()

	branch, err := s.api.GetBranch(ctx, id)
	if err != nil {
		metrics.IncAPIRequest("get_branch", "error")
		return nil, s.fail("Failed to fetch branch", err)
	}
	metrics.IncAPIRequest("get_branch", "ok")
	s.store.Update(id, *branch)
	return branch, nil
}

// EnableReservations enables reservations for every given branch. The
// requests run concurrently and all settle; any failure aborts the
// follow-up refetch and surfaces as one generic error for the batch.
func (s *Service) EnableReservations(ctx context.Context, actor int64, ids []string) error {
	defer s.begin()()

	errs := make(chan error, len(ids))
	for _, id := range ids {
		go func(id string) {
			_, err := s.api.EnableReservations(ctx, id)
			errs <- err
		}(id)
	}
	var first error
	for range ids {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		metrics.IncReservationToggle("enable_failed")
		return s.fail("Failed to enable reservations", first)
	}

	metrics.IncReservationToggle("enable")
	s.recordAction(ctx, actor, "enable_reservations", "", "", fmt.Sprintf("%d branches", len(ids)))
	return s.refetch(ctx, "Failed to enable reservations")
}

// DisableBranch disables reservations for one branch.
func (s *Service) DisableBranch(ctx context.Context, actor int64, id string) error {
	if id == "" {
		return nil
	}
	defer s.begin()()

	branch, err := s.api.DisableReservations(ctx, id)
	if err != nil {
		metrics.IncReservationToggle("disable_failed")
		return s.fail("Failed to disable reservations", err)
	}

	metrics.IncReservationToggle("disable")
	s.recordAction(ctx, actor, "disable_reservations", id, branch.Name, "")
	return s.refetch(ctx, "Failed to disable reservations")
}

// DisableAllReservations disables reservations for every currently
// enabled branch. A no-op when nothing is enabled.
func (s *Service) DisableAllReservations(ctx context.Context, actor int64) error {
	defer s.begin()()

	enabled := s.store.Enabled()
	if len(enabled) == 0 {
		return nil
	}
	ids := make([]string, len(enabled))
	for i, b := range enabled {
		ids[i] = b.ID
	}

	if err := s.api.DisableAll(ctx, ids); err != nil {
		metrics.IncReservationToggle("disable_all_failed")
		return s.fail("Failed to disable reservations", err)
	}

	metrics.IncReservationToggle("disable_all")
	s.recordAction(ctx, actor, "disable_all", "", "", fmt.Sprintf("%d branches", len(ids)))
	return s.refetch(ctx, "Failed to disable reservations")
}

// UpdateBranchSettings validates the draft and persists it. Validation
// failures block the submit and never reach the API; the message is the
// validator's own text.
func (s *Service) UpdateBranchSettings(ctx context.Context, actor int64, branchID string, values model.FormValues) error {
	if err := schedule.Validate(values.Schedules, values.ReservationDuration); err != nil {
		metrics.IncValidationReject()
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return err
	}

	defer s.begin()()

	payload := form.Payload(values)
	branch, err := s.api.UpdateBranch(ctx, branchID, payload)
	if err != nil {
		metrics.IncSettingsUpdate("error")
		return s.fail("Failed to update branch settings", err)
	}

	metrics.IncSettingsUpdate("ok")
	details, _ := json.Marshal(payload)
	s.recordAction(ctx, actor, "update_settings", branchID, branch.Name, string(details))
	return s.refetch(ctx, "Failed to update branch settings")
}

func (s *Service) refetch(ctx context.Context, banner string) error {
	branches, err := s.api.ListBranches(ctx)
	if err != nil {
		return s.fail(banner, err)
	}
	s.store.Set(branches)
	return nil
}

func (s *Service) recordAction(ctx context.Context, actor int64, action, branchID, branchName, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordAction(ctx, actor, action, branchID, branchName, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("audit record failed")
	}
}
