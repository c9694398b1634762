package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

// StateRepository abstracts the single-document store holding the
// serialized AppState.
type StateRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// MutationResult reports the outcome of one state mutation. Applied is
// false for idempotent no-ops (stale ids); Persisted is false when the
// in-memory state advanced but the store write failed, which handlers
// surface as a warning instead of losing the change silently.
type MutationResult struct {
	State     *models.AppState
	Applied   bool
	Persisted bool
}

// StateService owns the current AppState snapshot. The logical model is
// single-writer, but HTTP requests arrive concurrently, so the swap is
// guarded by a mutex; readers always observe a fully-formed snapshot.
type StateService struct {
	mu      sync.RWMutex
	state   *models.AppState
	repo    StateRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// StateServiceParams groups constructor dependencies.
type StateServiceParams struct {
	Repo    StateRepository
	Cache   *CacheService
	Metrics *MetricsService
	Logger  *zap.Logger
}

// NewStateService constructs a StateService. Call Init before use.
func NewStateService(params StateServiceParams) *StateService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateService{
		state:   models.DefaultState(),
		repo:    params.Repo,
		cache:   params.Cache,
		metrics: params.Metrics,
		logger:  logger,
	}
}

// Init loads the persisted snapshot. A missing document or a corrupt
// payload both fall back to the seed state; startup never crashes on
// bad data. The seed is not eagerly persisted; the first real
// mutation performs the first write.
func (s *StateService) Init(ctx context.Context) error {
	start := time.Now()
	data, err := s.repo.Load(ctx)
	if s.metrics != nil {
		s.metrics.ObserveStateLoad(time.Since(start))
	}
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrStateMissing.Code {
			s.logger.Info("no persisted state, starting from seed")
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "load state")
	}

	state := &models.AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		s.logger.Warn("persisted state unreadable, falling back to seed", zap.Error(err))
		s.mu.Lock()
		s.state = models.DefaultState()
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *StateService) Snapshot() *models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subject returns a copy of one subject by id.
func (s *StateService) Subject(id string) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub := s.state.FindSubject(id)
	if sub == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	clone := sub.Clone()
	return &clone, nil
}

// Reset clears the stored document and reinstates the seed state.
func (s *StateService) Reset(ctx context.Context) (*models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(ctx); err != nil {
		return nil, err
	}
	s.state = models.DefaultState()
	s.invalidate(ctx)
	return s.state.Clone(), nil
}

// mutate swaps the snapshot through a pure applier and persists the
// result. Each mutation triggers exactly one full-document write; a
// failed write keeps the in-memory state and flips Persisted off.
func (s *StateService) mutate(ctx context.Context, apply func(*models.AppState) (*models.AppState, bool)) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, applied := apply(s.state)
	if !applied {
		return MutationResult{State: s.state.Clone(), Applied: false, Persisted: true}
	}

	s.state = next
	result := MutationResult{State: next.Clone(), Applied: true, Persisted: true}

	data, err := json.Marshal(next)
	if err != nil {
		// Every defined field is JSON-serializable; treat this as a bug.
		s.logger.Error("state marshal failed", zap.Error(err))
		result.Persisted = false
	} else {
		start := time.Now()
		err = s.repo.Save(ctx, data)
		if s.metrics != nil {
			s.metrics.ObserveStateSave(time.Since(start), err == nil)
		}
		if err != nil {
			s.logger.Warn("state save failed, in-memory state kept", zap.Error(err))
			result.Persisted = false
		}
	}

	s.invalidate(ctx)
	return result
}

func (s *StateService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// SetUser applies the identity delivered by the external provider.
func (s *StateService) SetUser(ctx context.Context, user models.UserProfile) (MutationResult, error) {
	if user.ID == "" || user.Email == "" || user.Name == "" {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "id, email and name are required")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applySetUser(state, &user)
	}), nil
}

// ClearUser signs the user out; local data stays.
func (s *StateService) ClearUser(ctx context.Context) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applySetUser(state, nil)
	}), nil
}

// UpdateUser replaces the whole profile record by id.
func (s *StateService) UpdateUser(ctx context.Context, user models.UserProfile) (MutationResult, error) {
	if user.ID == "" {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyUpdateUser(state, user)
	}), nil
}

// AddSubject creates an empty subject; a random color is assigned when
// none is supplied.
func (s *StateService) AddSubject(ctx context.Context, name, color string) (MutationResult, error) {
	if isBlank(name) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyAddSubject(state, name, color)
	}), nil
}

// UpdateSubject replaces a subject record wholesale.
func (s *StateService) UpdateSubject(ctx context.Context, subject models.Subject) (MutationResult, error) {
	if isBlank(subject.Name) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyUpdateSubject(state, subject)
	}), nil
}

// DeleteSubject cascades to the subject's logs and syllabus. Routine
// references stay behind as dangling weak references.
func (s *StateService) DeleteSubject(ctx context.Context, id string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyDeleteSubject(state, id)
	}), nil
}

// AddAttendanceRecord logs one dated class for a subject.
func (s *StateService) AddAttendanceRecord(ctx context.Context, subjectID, date string, status models.AttendanceStatus) (MutationResult, error) {
	if models.ParseDate(date).IsZero() {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if !status.Valid() {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "status must be P, A or H")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyAddAttendanceRecord(state, subjectID, date, status)
	}), nil
}

// RemoveAttendanceRecord filters a log entry out.
func (s *StateService) RemoveAttendanceRecord(ctx context.Context, subjectID, recordID string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyRemoveAttendanceRecord(state, subjectID, recordID)
	}), nil
}

// ToggleSyllabusItem flips a topic's completion flag.
func (s *StateService) ToggleSyllabusItem(ctx context.Context, subjectID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyToggleSyllabusItem(state, subjectID, itemID)
	}), nil
}

// AddSyllabusItem appends a topic to a subject's curriculum.
func (s *StateService) AddSyllabusItem(ctx context.Context, subjectID, title string) (MutationResult, error) {
	if isBlank(title) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyAddSyllabusItem(state, subjectID, title)
	}), nil
}

// RemoveSyllabusItem filters a topic out.
func (s *StateService) RemoveSyllabusItem(ctx context.Context, subjectID, itemID string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyRemoveSyllabusItem(state, subjectID, itemID)
	}), nil
}

// AddHoliday inserts a holiday keeping the collection date-sorted.
func (s *StateService) AddHoliday(ctx context.Context, name, date string) (MutationResult, error) {
	if isBlank(name) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if models.ParseDate(date).IsZero() {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyAddHoliday(state, name, date)
	}), nil
}

// RemoveHoliday filters a holiday out.
func (s *StateService) RemoveHoliday(ctx context.Context, id string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyRemoveHoliday(state, id)
	}), nil
}

// AddRoutineEntry inserts a weekly class occurrence.
func (s *StateService) AddRoutineEntry(ctx context.Context, subjectID, day, startTime, endTime, room string) (MutationResult, error) {
	if !models.ValidDay(day) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "day must be a weekday name")
	}
	if !models.ValidTimeOfDay(startTime) || !models.ValidTimeOfDay(endTime) {
		return MutationResult{}, appErrors.Clone(appErrors.ErrValidation, "times must be zero-padded HH:MM")
	}
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyAddRoutineEntry(state, subjectID, day, startTime, endTime, room)
	}), nil
}

// RemoveRoutineEntry filters a routine entry out.
func (s *StateService) RemoveRoutineEntry(ctx context.Context, id string) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applyRemoveRoutineEntry(state, id)
	}), nil
}

// SetTargetPercentage updates the attendance target, clamped to [0,100].
func (s *StateService) SetTargetPercentage(ctx context.Context, target float64) (MutationResult, error) {
	return s.mutate(ctx, func(state *models.AppState) (*models.AppState, bool) {
		return applySetTargetPercentage(state, target)
	}), nil
}

func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
