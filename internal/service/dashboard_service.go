package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/uniflow-app/uniflow-api/internal/dto"
	"github.com/uniflow-app/uniflow-api/internal/models"
)

type snapshotProvider interface {
	Snapshot() *models.AppState
}

// DashboardService composes the home-screen summary from the current
// snapshot. Nothing is derived ahead of time; every miss recomputes
// from source records.
type DashboardService struct {
	state  snapshotProvider
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	ttl    time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	State    snapshotProvider
	Cache    *CacheService
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{
		state:  params.State,
		cache:  params.Cache,
		logger: logger,
		now:    time.Now,
		ttl:    ttl,
	}
}

// Summary returns the composed dashboard and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	day := s.today()
	cacheKey := fmt.Sprintf("dash:summary:%s", day)

	if s.cache.Enabled() {
		cached := &dto.DashboardResponse{}
		if hit, err := s.cache.Get(ctx, cacheKey, cached); err == nil && hit {
			return cached, true, nil
		}
	}

	state := s.state.Snapshot()
	summary := &dto.DashboardResponse{
		User:             state.User,
		Attendance:       AggregateAttendance(state.Subjects),
		Syllabus:         SyllabusCompletion(state.Subjects),
		BelowTarget:      SubjectsBelowTarget(state.Subjects, state.TargetPercentage),
		TargetPercentage: state.TargetPercentage,
		Day:              day,
		TodaysSchedule:   ScheduleFor(state.Routine, state.Subjects, day),
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("dashboard cache store failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

// Today returns the current weekday label used for schedule filtering.
func (s *DashboardService) Today() string {
	return s.today()
}

func (s *DashboardService) today() string {
	return s.now().UTC().Weekday().String()
}
